package state

import (
	"fmt"
	"time"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the persisted controller state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPersistence()
		if err != nil {
			return err
		}

		states, err := p.ListControllerStates()
		if err != nil {
			return err
		}
		if len(states) == 0 {
			ui.Info("No controller state saved yet")
			return nil
		}

		var rows [][]string
		for _, id := range util.SortedKeys(states) {
			state := states[id]
			rows = append(rows, []string{
				id,
				fmt.Sprintf("%.3f", state.Kp),
				fmt.Sprintf("%.3f", state.Ki),
				fmt.Sprintf("%.3f", state.Kd),
				fmt.Sprintf("%.1f", state.SetPoint),
				state.SavedAt.Format(time.RFC3339),
			})
		}

		tableString, err := global.RenderTable([]string{"ID", "P", "I", "D", "Setpoint", "Saved"}, rows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}

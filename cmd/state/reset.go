package state

import (
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [id]",
	Short: "Deletes the persisted controller state",
	Long:  `The configured tunings and setpoint are used again on the next start. Defaults to the configured actuator id.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPersistence()
		if err != nil {
			return err
		}

		id := configuration.CurrentConfig.Actuator.Id
		if len(args) > 0 {
			id = args[0]
		}

		if err := p.DeleteControllerState(id); err != nil {
			return err
		}
		ui.Success("Deleted controller state of %s", id)
		return nil
	},
}

func init() {
	Command.AddCommand(resetCmd)
}

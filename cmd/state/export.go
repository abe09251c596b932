package state

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var outputPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports the persisted controller state as YAML",
	Long:  `Writes to stdout, or atomically replaces the file given with --output.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(outputPath) <= 0 {
			pterm.DisableOutput()
		}

		p, err := openPersistence()
		if err != nil {
			return err
		}
		states, err := p.ListControllerStates()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(states)
		if err != nil {
			return err
		}

		if len(outputPath) <= 0 {
			fmt.Print(string(data))
			return nil
		}

		if err := util.WriteBytesToFileAtomic(data, outputPath); err != nil {
			return err
		}
		ui.Success("Exported %d controller state(s) to %s", len(states), outputPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file")
	Command.AddCommand(exportCmd)
}

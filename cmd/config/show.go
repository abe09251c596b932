package config

import (
	"fmt"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration, including defaults",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// keep stdout parseable
		pterm.DisableOutput()
		if _, err := global.LoadConfig(); err != nil {
			return err
		}

		data, err := yaml.Marshal(configuration.CurrentConfig)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}

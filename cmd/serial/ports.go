package serial

import (
	"github.com/markusressel/heat2go/internal/link"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Lists the serial ports of this system",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := link.Ports()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			ui.Info("No serial ports found")
			return nil
		}
		for _, port := range ports {
			ui.Printfln("%s", port)
		}
		return nil
	},
}

func init() {
	Command.AddCommand(portsCmd)
}

package serial

import (
	"fmt"
	"strconv"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/link"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	portName string
	baudRate int
)

var sendCmd = &cobra.Command{
	Use:   "send <s|p|i|d> <value>",
	Short: "Sends a command frame to a regulator",
	Long: `Sends a setpoint (s) or gain (p, i, d) to the regulator on the other
end of a serial port, f.ex. "heat2go serial send s 45.5".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args[0]) != 1 {
			return fmt.Errorf("invalid command tag '%s', use one of: s | p | i | d", args[0])
		}
		tag := args[0][0]
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value '%s': %w", args[1], err)
		}
		if _, err := link.EncodeFrame(tag, value); err != nil {
			return err
		}

		if len(portName) <= 0 {
			if _, err := global.LoadConfig(); err != nil {
				return err
			}
			portName = configuration.CurrentConfig.Serial.Port
			if !cmd.Flags().Changed("baud") {
				baudRate = configuration.CurrentConfig.Serial.BaudRate
			}
		}

		l, err := link.Open(portName, baudRate)
		if err != nil {
			return err
		}
		defer func() {
			_ = l.Close()
		}()

		if err := l.Send(tag, value); err != nil {
			return err
		}
		ui.Success("Sent %c=%.2f to %s", tag, value, portName)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVarP(&portName, "port", "p", "", "Serial port, defaults to the configured port")
	sendCmd.Flags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate")
	Command.AddCommand(sendCmd)
}

package cmd

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/simulation"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
	"github.com/spf13/cobra"
)

var (
	simulationTicks    int
	simulationSetPoint float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Runs the regulator against a thermal model and plots the result",
	Long: `Runs the configured PID loop against a first order model of the heater
(see the simulation section of the config) without touching any hardware.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := configuration.DetectConfigFile()
		if err != nil {
			ui.Warning("No configuration file found, using defaults: %v", err)
		} else {
			ui.Info("Using configuration file at: %s", configPath)
		}
		configuration.LoadConfig()
		configuration.CurrentConfig.Simulation.Enabled = true
		if cmd.Flags().Changed("setpoint") {
			configuration.CurrentConfig.Pid.SetPoint = simulationSetPoint
		}
		if err := configuration.Validate(configPath); err != nil {
			return err
		}

		config := configuration.CurrentConfig
		samples, err := simulation.Run(cmd.Context(), config, simulationTicks)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return nil
		}

		temperatures := make([]float64, 0, len(samples))
		setPoints := make([]float64, 0, len(samples))
		peak := samples[0]
		for _, sample := range samples {
			temperatures = append(temperatures, sample.Plant)
			setPoints = append(setPoints, sample.SetPoint)
			if sample.Plant > peak.Plant {
				peak = sample
			}
		}
		last := samples[len(samples)-1]

		tableString, err := global.RenderTable(
			[]string{"Ticks", "Setpoint", "Final", "Min", "Peak", "Peak Tick", "Final Duty"},
			[][]string{{
				fmt.Sprintf("%d", len(samples)),
				fmt.Sprintf("%.1f", last.SetPoint),
				fmt.Sprintf("%.2f", last.Plant),
				fmt.Sprintf("%.2f", util.Min(temperatures)),
				fmt.Sprintf("%.2f", peak.Plant),
				fmt.Sprintf("%d", peak.Tick),
				fmt.Sprintf("%d%%", last.Duty),
			}},
		)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)

		caption := fmt.Sprintf("Temperature / Setpoint (P=%.2f I=%.2f D=%.2f)", config.Pid.P, config.Pid.I, config.Pid.D)
		graph := asciigraph.PlotMany(
			[][]float64{temperatures, setPoints},
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption(caption),
		)
		ui.Printfln("%s", graph)
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVarP(&simulationTicks, "ticks", "t", 300, "Number of ticks to simulate")
	simulateCmd.Flags().Float64VarP(&simulationSetPoint, "setpoint", "s", 0, "Setpoint to regulate to, defaults to the configured one")
	rootCmd.AddCommand(simulateCmd)
}

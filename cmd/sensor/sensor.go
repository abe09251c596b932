package sensor

import (
	"context"
	"fmt"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/markusressel/heat2go/internal/simulation"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Reads the temperature sensor and the setpoint input once",
	Long: `Performs one conversion of each analog input. With --id only the
value of the given input is printed, f.ex. for use in scripts.`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(sensorId) > 0 {
			pterm.DisableOutput()
		}

		configPath, err := global.LoadConfig()
		if err != nil {
			return err
		}
		ui.Info("Using configuration file at: %s", configPath)

		sensorMap, err := createSensors(configuration.CurrentConfig)
		if err != nil {
			return err
		}

		if len(sensorId) > 0 {
			sensor, ok := sensorMap.Get(sensorId)
			if !ok {
				return fmt.Errorf("no sensor with id found: %s, options: %s", sensorId, sensorMap.SortedIds())
			}
			value, err := read(cmd.Context(), sensor)
			if err != nil {
				return err
			}
			fmt.Printf("%.1f", value)
			return nil
		}

		var rows [][]string
		for _, id := range sensorMap.SortedIds() {
			sensor, _ := sensorMap.Get(id)
			value, err := read(cmd.Context(), sensor)
			valueText := fmt.Sprintf("%.1f", value)
			if err != nil {
				valueText = "N/A"
				ui.Warning("%v", err)
			}
			rows = append(rows, []string{id, fmt.Sprintf("%d", sensor.GetRaw()), valueText})
		}

		tableString, err := global.RenderTable([]string{"ID", "Raw", "Value"}, rows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		fmt.Sprintf("Only print the value of this input (%s | %s)", sensors.TemperatureSensorId, sensors.SetpointSourceId),
	)
}

func createSensors(config configuration.Configuration) (sensors.SensorMap, error) {
	if config.Simulation.Enabled {
		rig := simulation.NewRig(config)
		return sensors.NewSensorMap(rig.Temperature, rig.Setpoint), nil
	}
	temperature, setpoint, err := sensors.NewSensors(config)
	if err != nil {
		return sensors.SensorMap{}, err
	}
	return sensors.NewSensorMap(temperature, setpoint), nil
}

// read performs one conversion. The temperature is returned unfiltered, a
// single sample would only reach alpha * T otherwise.
func read(ctx context.Context, sensor sensors.Sensor) (float64, error) {
	value, err := sensor.Read(ctx)
	if err != nil {
		return value, err
	}
	if temperature, ok := sensor.(*sensors.TemperatureSensor); ok {
		return temperature.ToCelsius(temperature.GetRaw()), nil
	}
	return value, nil
}

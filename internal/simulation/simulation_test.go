package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSimulationConfig() configuration.SimulationConfig {
	return configuration.SimulationConfig{
		Enabled:            true,
		AmbientTemperature: 20,
		HeaterGain:         0.5,
		CoolingRate:        0.02,
	}
}

func createTemperatureConfig() configuration.TemperatureConfig {
	return configuration.TemperatureConfig{
		Adc: configuration.AdcConfig{
			Resolution: 16,
			Timeout:    100 * time.Millisecond,
		},
		VoltageMax:          3.3,
		MillivoltsPerDegree: 10,
		FilterAlpha:         1,
	}
}

func createConfig() configuration.Configuration {
	return configuration.Configuration{
		TickRate:                     time.Second,
		DisplayRefreshDivider:        3,
		TemperatureRollingWindowSize: 10,
		Temperature:                  createTemperatureConfig(),
		Setpoint: configuration.SetpointConfig{
			Adc: configuration.AdcConfig{
				Resolution: 16,
				Timeout:    100 * time.Millisecond,
			},
			Min: 20,
			Max: 60,
		},
		Pid: configuration.PidConfig{
			P:                    60,
			I:                    4,
			D:                    8,
			SetPoint:             30,
			AntiWindupUpperLimit: 100,
			AntiWindupLowerLimit: 0,
			AntiWindupMode:       configuration.AntiWindupModeTerm,
		},
		Actuator: configuration.ActuatorConfig{
			Id:     "heater",
			Period: 999,
		},
		Simulation: createSimulationConfig(),
	}
}

func TestPlant_Step(t *testing.T) {
	// GIVEN
	plant := NewPlant(createSimulationConfig(), createTemperatureConfig())

	// WHEN
	heated := plant.Step(100)
	cooled := plant.Step(0)

	// THEN
	assert.InDelta(t, 20.5, heated, 1e-9)
	assert.InDelta(t, 20.49, cooled, 1e-9)
	assert.Equal(t, 2, plant.Steps())
	assert.Equal(t, 0, plant.Duty())
}

func TestPlant_StepClampsDuty(t *testing.T) {
	// GIVEN
	plant := NewPlant(createSimulationConfig(), createTemperatureConfig())

	// WHEN
	plant.Step(250)

	// THEN
	assert.Equal(t, 100, plant.Duty())
	assert.InDelta(t, 20.5, plant.Temperature(), 1e-9)
}

func TestPlant_ConvergesToEquilibrium(t *testing.T) {
	// GIVEN
	plant := NewPlant(createSimulationConfig(), createTemperatureConfig())

	// WHEN
	for i := 0; i < 2000; i++ {
		plant.Step(40)
	}

	// THEN
	assert.InDelta(t, 30.0, plant.Equilibrium(40), 1e-9)
	assert.InDelta(t, plant.Equilibrium(40), plant.Temperature(), 0.01)
}

func TestPlant_WriteUpdatesConverter(t *testing.T) {
	// GIVEN
	plant := NewPlant(createSimulationConfig(), createTemperatureConfig())
	sensor := sensors.NewTemperatureSensor(sensors.TemperatureSensorId, plant.Converter(), createTemperatureConfig())

	// WHEN
	err := plant.Write(1000, 100)
	require.NoError(t, err)
	value, err := sensor.Read(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 20.5, value, 0.01)
}

func TestTemperatureToRaw(t *testing.T) {
	// GIVEN
	config := createTemperatureConfig()
	sensor := sensors.NewTemperatureSensor(sensors.TemperatureSensorId, nil, config)

	for _, celsius := range []float64{0, 20, 42.5, 330} {
		// WHEN
		raw := TemperatureToRaw(config, celsius)

		// THEN
		assert.InDelta(t, celsius, sensor.ToCelsius(raw), 0.01)
	}
	assert.Equal(t, uint16(0), TemperatureToRaw(config, -10))
	assert.Equal(t, uint16(65535), TemperatureToRaw(config, 500))
}

func TestRun_SettlesAtSetPoint(t *testing.T) {
	// GIVEN
	config := createConfig()

	// WHEN
	samples, err := Run(context.Background(), config, 1000)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, samples, 1000)
	assert.Equal(t, 100, samples[0].Duty)
	last := samples[len(samples)-1]
	assert.Equal(t, uint64(1000), last.Tick)
	assert.Equal(t, 30.0, last.SetPoint)
	assert.InDelta(t, 30.0, last.Plant, 0.5)
}

func TestRun_Cancelled(t *testing.T) {
	// GIVEN
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	samples, err := Run(ctx, createConfig(), 10)

	// THEN
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, samples)
}

func TestNewRig_SetpointFollowsConfig(t *testing.T) {
	// GIVEN
	config := createConfig()
	config.Simulation.SetpointRaw = 65535
	rig := NewRig(config)

	// WHEN
	value, err := rig.Setpoint.Read(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 60.0, value)
	assert.Equal(t, "heater", rig.Actuator.GetId())
}

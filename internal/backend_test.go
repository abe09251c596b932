package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig(t *testing.T) configuration.Configuration {
	adc := configuration.AdcConfig{Resolution: 16, Timeout: 100 * time.Millisecond}
	return configuration.Configuration{
		DbPath:                       filepath.Join(t.TempDir(), "db", "heat2go.db"),
		TickRate:                     time.Second,
		DisplayRefreshDivider:        3,
		TemperatureRollingWindowSize: 10,
		Temperature: configuration.TemperatureConfig{
			Adc:                 adc,
			VoltageMax:          3.3,
			MillivoltsPerDegree: 10,
			FilterAlpha:         1,
		},
		Setpoint: configuration.SetpointConfig{Adc: adc, Min: 20, Max: 60},
		Pid: configuration.PidConfig{
			P:                    60,
			I:                    4,
			D:                    8,
			SetPoint:             20,
			AntiWindupUpperLimit: 100,
			AntiWindupLowerLimit: 0,
			AntiWindupMode:       configuration.AntiWindupModeTerm,
		},
		Actuator: configuration.ActuatorConfig{Id: "heater", Period: 999},
		Display:  configuration.DisplayConfig{Enabled: true, Columns: 16, Rows: 2},
		Simulation: configuration.SimulationConfig{
			AmbientTemperature: 20,
			HeaterGain:         0.5,
			CoolingRate:        0.02,
		},
	}
}

func TestInitializeObjects_Simulation(t *testing.T) {
	// GIVEN
	config := createTestConfig(t)
	config.Simulation.Enabled = true
	config.Pid.SetPoint = 30

	// WHEN
	objects, err := InitializeObjects(config)
	require.NoError(t, err)
	defer objects.Close()
	for i := 0; i < 3; i++ {
		objects.Regulator.Tick(context.Background())
	}

	// THEN
	assert.NotNil(t, objects.Plant)
	assert.Equal(t, 3, objects.Plant.Steps())
	assert.Greater(t, objects.Plant.Temperature(), 20.0)
	assert.Equal(t, []string{"setpoint", "temperature"}, objects.Sensors.SortedIds())
	assert.True(t, strings.HasPrefix(objects.Screen.Lines()[0], "TEMP: "))
}

func TestInitializeObjects_Hardware(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	temperaturePath := filepath.Join(dir, "temperature")
	pwmPath := filepath.Join(dir, "pwm")
	require.NoError(t, os.WriteFile(temperaturePath, []byte("0\n"), 0644))

	config := createTestConfig(t)
	config.Temperature.Adc.File = &configuration.FileAdcConfig{Path: temperaturePath}
	config.Setpoint.Adc.Virtual = &configuration.VirtualAdcConfig{Value: 0}
	config.Actuator.File = &configuration.FilePwmConfig{Path: pwmPath}

	// WHEN
	objects, err := InitializeObjects(config)
	require.NoError(t, err)
	defer objects.Close()
	status := objects.Regulator.Tick(context.Background())

	// THEN
	assert.Nil(t, objects.Plant)
	assert.Equal(t, 0.0, status.Temperature)
	assert.Equal(t, 100, status.Duty)
	assert.Equal(t, 20.0, status.Candidate)
	data, err := os.ReadFile(pwmPath)
	require.NoError(t, err)
	assert.Equal(t, "1000", strings.TrimSpace(string(data)))
}

func TestInitializeObjects_MissingConverter(t *testing.T) {
	// GIVEN
	config := createTestConfig(t)

	// WHEN
	_, err := InitializeObjects(config)

	// THEN
	assert.EqualError(t, err, "no matching converter type for adc: temperature")
}

func TestInitializeObjects_RestoresState(t *testing.T) {
	// GIVEN
	config := createTestConfig(t)
	config.Simulation.Enabled = true
	p := persistence.NewPersistence(config.DbPath)
	require.NoError(t, p.Init())
	require.NoError(t, p.SaveControllerState("heater", persistence.ControllerState{Kp: 1, Ki: 2, Kd: 3, SetPoint: 45}))

	// WHEN
	objects, err := InitializeObjects(config)
	require.NoError(t, err)
	defer objects.Close()

	// THEN
	kp, ki, kd := objects.Regulator.GetTunings()
	assert.Equal(t, []float64{1, 2, 3}, []float64{kp, ki, kd})
	assert.Equal(t, 45.0, objects.Regulator.Status().SetPoint)
}

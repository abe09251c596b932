package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return Configuration{
		DbPath:                       "/tmp/heat2go.db",
		TickRate:                     1 * time.Second,
		DisplayRefreshDivider:        3,
		TemperatureRollingWindowSize: 10,
		Temperature: TemperatureConfig{
			Adc: AdcConfig{
				Resolution: 16,
				Timeout:    100 * time.Millisecond,
				File:       &FileAdcConfig{Path: "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"},
			},
			VoltageMax:          3.3,
			MillivoltsPerDegree: 10,
			FilterAlpha:         0.1,
		},
		Setpoint: SetpointConfig{
			Adc: AdcConfig{
				Resolution: 16,
				Timeout:    100 * time.Millisecond,
				Virtual:    &VirtualAdcConfig{Value: 0},
			},
			Min: 20,
			Max: 60,
		},
		Pid: PidConfig{
			P:                    60,
			I:                    4,
			D:                    8,
			SetPoint:             20,
			AntiWindupUpperLimit: 100,
			AntiWindupLowerLimit: 0,
			AntiWindupMode:       AntiWindupModeTerm,
		},
		Actuator: ActuatorConfig{
			Id:     "heater",
			Period: 999,
			File:   &FilePwmConfig{Path: "/tmp/heater"},
		},
		Display: DisplayConfig{
			Enabled: true,
			Columns: 16,
			Rows:    2,
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateTickRate(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.TickRate = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "tickRate must be > 0, got 0s")
}

func TestValidateDisplayRefreshDivider(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.DisplayRefreshDivider = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "displayRefreshDivider must be >= 1, got 0")
}

func TestValidateAdcSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Temperature.Adc.File = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "temperature adc: sub-configuration is missing, use one of: file | cmd | virtual")
}

func TestValidateAdcMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Setpoint.Adc.File = &FileAdcConfig{Path: "/tmp/pot"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "setpoint adc: only one converter type can be used")
}

func TestValidateAdcResolution(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Temperature.Adc.Resolution = 24

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "temperature adc: invalid resolution 24, must be in [1..16]")
}

func TestValidateVirtualAdcValueOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Setpoint.Adc.Resolution = 12
	config.Setpoint.Adc.Virtual.Value = 4096

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "setpoint adc: virtual value 4096 is out of range for 12 bit")
}

func TestValidateFilterAlpha(t *testing.T) {
	tests := []struct {
		name    string
		alpha   float64
		wantErr bool
	}{
		{name: "zero", alpha: 0, wantErr: true},
		{name: "negative", alpha: -0.1, wantErr: true},
		{name: "above one", alpha: 1.1, wantErr: true},
		{name: "default", alpha: 0.1, wantErr: false},
		{name: "one", alpha: 1, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			config := createValidConfig()
			config.Temperature.FilterAlpha = tt.alpha

			// WHEN
			err := validateConfig(&config, "")

			// THEN
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "temperature: filterAlpha must be in (0..1]")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMillivoltsPerDegree(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Temperature.MillivoltsPerDegree = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "temperature: millivoltsPerDegree must not be 0")
}

func TestValidateSetpointRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Setpoint.Min = 40
	config.Setpoint.Max = 40

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "setpoint: min and max must not be equal, got 40")
}

func TestValidatePidLimits(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Pid.AntiWindupLowerLimit = 50
	config.Pid.AntiWindupUpperLimit = 10

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "pid: antiWindupLowerLimit (50) must not be greater than antiWindupUpperLimit (10)")
}

func TestValidatePidEqualLimitsAreAllowed(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Pid.AntiWindupLowerLimit = 10
	config.Pid.AntiWindupUpperLimit = 10

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidatePidAntiWindupMode(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Pid.AntiWindupMode = "clamp"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "pid: unknown antiWindupMode 'clamp', use one of: term | accumulator")
}

func TestValidateActuatorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Actuator.File = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "actuator heater: sub-configuration is missing, use one of: file | sysfs | cmd | virtual")
}

func TestValidateActuatorMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Actuator.Virtual = &VirtualPwmConfig{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "actuator heater: only one output type can be used")
}

func TestValidateActuatorPeriod(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Actuator.Period = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "actuator heater: period must be > 0, got 0")
}

func TestValidateSimulationSkipsHardware(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Temperature.Adc.File = nil
	config.Setpoint.Adc.Virtual = nil
	config.Actuator.File = nil
	config.Simulation = SimulationConfig{
		Enabled:            true,
		AmbientTemperature: 20,
		HeaterGain:         0.5,
		CoolingRate:        0.02,
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateDisplayRows(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Display.Rows = 5

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "display: rows must be in [1..4], got 5")
}

func TestValidateDisabledDisplayIsNotChecked(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Display.Enabled = false
	config.Display.Rows = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateDisplayI2cAddress(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Display.I2c = &I2cDisplayConfig{Device: "/dev/i2c-1", Address: 0x80}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "display: invalid i2c address 0x80")
}

func TestValidateSerialPortMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Serial = SerialConfig{Enabled: true, BaudRate: 115200}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "serial: missing port")
}

func TestValidateButtonPathMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Button.File = &FileButtonConfig{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "button: no file path provided")
}

func TestValidateCmdRequiresConfigPermissions(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Actuator.File = nil
	config.Actuator.Cmd = &CmdPwmConfig{Exec: "/usr/bin/heater-pwm"}

	// WHEN
	err := validateConfig(&config, "/this/path/does/not/exist.yaml")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file '/this/path/does/not/exist.yaml' has invalid permissions")
}

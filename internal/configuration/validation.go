package configuration

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/util"
	"golang.org/x/exp/slices"
)

var antiWindupModes = []AntiWindupMode{AntiWindupModeTerm, AntiWindupModeAccumulator}

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if config.TickRate <= 0 {
		return fmt.Errorf("tickRate must be > 0, got %v", config.TickRate)
	}
	if config.DisplayRefreshDivider < 1 {
		return fmt.Errorf("displayRefreshDivider must be >= 1, got %d", config.DisplayRefreshDivider)
	}
	if config.TemperatureRollingWindowSize < 1 {
		return fmt.Errorf("temperatureRollingWindowSize must be >= 1, got %d", config.TemperatureRollingWindowSize)
	}

	validators := []func(*Configuration) error{
		validateTemperature,
		validateSetpoint,
		validatePid,
		validateActuator,
		validateDisplay,
		validateSerial,
		validateButton,
		validateSimulation,
	}
	for _, validator := range validators {
		if err := validator(config); err != nil {
			return err
		}
	}

	if containsCmdConfigs(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCmdConfigs(config *Configuration) bool {
	if config.Simulation.Enabled {
		return false
	}
	return config.Temperature.Adc.Cmd != nil || config.Setpoint.Adc.Cmd != nil || config.Actuator.Cmd != nil
}

func validateAdc(name string, adc AdcConfig, simulated bool) error {
	if adc.Resolution < 1 || adc.Resolution > 16 {
		return fmt.Errorf("%s adc: invalid resolution %d, must be in [1..16]", name, adc.Resolution)
	}
	if adc.Timeout <= 0 {
		return fmt.Errorf("%s adc: timeout must be > 0", name)
	}

	if simulated {
		return nil
	}

	subConfigs := 0
	if adc.File != nil {
		subConfigs++
	}
	if adc.Cmd != nil {
		subConfigs++
	}
	if adc.Virtual != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("%s adc: only one converter type can be used", name)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("%s adc: sub-configuration is missing, use one of: file | cmd | virtual", name)
	}

	if adc.File != nil && len(adc.File.Path) <= 0 {
		return fmt.Errorf("%s adc: no file path provided", name)
	}
	if adc.Cmd != nil && len(adc.Cmd.Exec) <= 0 {
		return fmt.Errorf("%s adc: executable is missing", name)
	}
	if adc.Virtual != nil {
		if adc.Virtual.Value < 0 || adc.Virtual.Value > int(util.AdcRegisterMax(adc.Resolution)) {
			return fmt.Errorf("%s adc: virtual value %d is out of range for %d bit", name, adc.Virtual.Value, adc.Resolution)
		}
	}
	return nil
}

func validateTemperature(config *Configuration) error {
	temperature := config.Temperature
	if err := validateAdc("temperature", temperature.Adc, config.Simulation.Enabled); err != nil {
		return err
	}
	if temperature.VoltageMax <= 0 {
		return fmt.Errorf("temperature: voltageMax must be > 0, got %v", temperature.VoltageMax)
	}
	if temperature.MillivoltsPerDegree == 0 {
		return fmt.Errorf("temperature: millivoltsPerDegree must not be 0")
	}
	if temperature.FilterAlpha <= 0 || temperature.FilterAlpha > 1 {
		return fmt.Errorf("temperature: filterAlpha must be in (0..1], got %v", temperature.FilterAlpha)
	}
	return nil
}

func validateSetpoint(config *Configuration) error {
	setpoint := config.Setpoint
	if err := validateAdc("setpoint", setpoint.Adc, config.Simulation.Enabled); err != nil {
		return err
	}
	if setpoint.Min == setpoint.Max {
		return fmt.Errorf("setpoint: min and max must not be equal, got %v", setpoint.Min)
	}
	return nil
}

func validatePid(config *Configuration) error {
	pid := config.Pid
	if pid.AntiWindupLowerLimit > pid.AntiWindupUpperLimit {
		return fmt.Errorf("pid: antiWindupLowerLimit (%v) must not be greater than antiWindupUpperLimit (%v)", pid.AntiWindupLowerLimit, pid.AntiWindupUpperLimit)
	}
	if !slices.Contains(antiWindupModes, pid.AntiWindupMode) {
		return fmt.Errorf("pid: unknown antiWindupMode '%s', use one of: %s | %s", pid.AntiWindupMode, AntiWindupModeTerm, AntiWindupModeAccumulator)
	}
	return nil
}

func validateActuator(config *Configuration) error {
	actuator := config.Actuator
	if len(actuator.Id) <= 0 {
		return fmt.Errorf("actuator: missing id")
	}
	if actuator.Period <= 0 {
		return fmt.Errorf("actuator %s: period must be > 0, got %d", actuator.Id, actuator.Period)
	}

	if config.Simulation.Enabled {
		return nil
	}

	subConfigs := 0
	if actuator.File != nil {
		subConfigs++
	}
	if actuator.Sysfs != nil {
		subConfigs++
	}
	if actuator.Cmd != nil {
		subConfigs++
	}
	if actuator.Virtual != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("actuator %s: only one output type can be used", actuator.Id)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("actuator %s: sub-configuration is missing, use one of: file | sysfs | cmd | virtual", actuator.Id)
	}

	if actuator.File != nil && len(actuator.File.Path) <= 0 {
		return fmt.Errorf("actuator %s: no file path provided", actuator.Id)
	}
	if actuator.Sysfs != nil && len(actuator.Sysfs.Path) <= 0 {
		return fmt.Errorf("actuator %s: no sysfs channel path provided", actuator.Id)
	}
	if actuator.Cmd != nil && len(actuator.Cmd.Exec) <= 0 {
		return fmt.Errorf("actuator %s: executable is missing", actuator.Id)
	}
	return nil
}

func validateDisplay(config *Configuration) error {
	display := config.Display
	if !display.Enabled {
		return nil
	}
	if display.Rows < 1 || display.Rows > 4 {
		return fmt.Errorf("display: rows must be in [1..4], got %d", display.Rows)
	}
	if display.Columns < 1 || display.Columns > 40 {
		return fmt.Errorf("display: columns must be in [1..40], got %d", display.Columns)
	}
	if display.I2c != nil {
		if len(display.I2c.Device) <= 0 {
			return fmt.Errorf("display: missing i2c device")
		}
		if display.I2c.Address < 0x03 || display.I2c.Address > 0x77 {
			return fmt.Errorf("display: invalid i2c address 0x%02x", display.I2c.Address)
		}
	}
	return nil
}

func validateSerial(config *Configuration) error {
	serial := config.Serial
	if !serial.Enabled {
		return nil
	}
	if len(serial.Port) <= 0 {
		return fmt.Errorf("serial: missing port")
	}
	if serial.BaudRate <= 0 {
		return fmt.Errorf("serial: baudRate must be > 0, got %d", serial.BaudRate)
	}
	return nil
}

func validateButton(config *Configuration) error {
	button := config.Button
	if button.File != nil {
		if len(button.File.Path) <= 0 {
			return fmt.Errorf("button: no file path provided")
		}
		if button.File.PollRate < 0 {
			return fmt.Errorf("button: pollRate must not be negative")
		}
	}
	if button.Indicator != nil && len(button.Indicator.Path) <= 0 {
		return fmt.Errorf("button: no indicator file path provided")
	}
	return nil
}

func validateSimulation(config *Configuration) error {
	simulation := config.Simulation
	if !simulation.Enabled {
		return nil
	}
	if simulation.CoolingRate < 0 || simulation.CoolingRate > 1 {
		return fmt.Errorf("simulation: coolingRate must be in [0..1], got %v", simulation.CoolingRate)
	}
	if simulation.SetpointRaw < 0 || simulation.SetpointRaw > int(util.AdcRegisterMax(config.Setpoint.Adc.Resolution)) {
		return fmt.Errorf("simulation: setpointRaw %d is out of range", simulation.SetpointRaw)
	}
	return nil
}

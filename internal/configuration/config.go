package configuration

import (
	"os"
	"time"

	"github.com/markusressel/heat2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath" yaml:"dbPath"`

	// TickRate is the period of the regulator loop
	TickRate time.Duration `json:"tickRate" yaml:"tickRate"`
	// DisplayRefreshDivider refreshes the display on every n-th tick
	DisplayRefreshDivider int `json:"displayRefreshDivider" yaml:"displayRefreshDivider"`
	// TemperatureRollingWindowSize is the number of ticks averaged for statistics and the API
	TemperatureRollingWindowSize int `json:"temperatureRollingWindowSize" yaml:"temperatureRollingWindowSize"`

	Temperature TemperatureConfig `json:"temperature" yaml:"temperature"`
	Setpoint    SetpointConfig    `json:"setpoint" yaml:"setpoint"`
	Pid         PidConfig         `json:"pid" yaml:"pid"`
	Actuator    ActuatorConfig    `json:"actuator" yaml:"actuator"`
	Display     DisplayConfig     `json:"display" yaml:"display"`
	Serial      SerialConfig      `json:"serial" yaml:"serial"`
	Button      ButtonConfig      `json:"button" yaml:"button"`

	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
	Api        ApiConfig        `json:"api" yaml:"api"`
	Profiling  ProfilingConfig  `json:"profiling" yaml:"profiling"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("heat2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/heat2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/heat2go/heat2go.db")
	viper.SetDefault("tickRate", 1*time.Second)
	viper.SetDefault("displayRefreshDivider", 3)
	viper.SetDefault("temperatureRollingWindowSize", 10)

	viper.SetDefault("temperature.adc.resolution", 16)
	viper.SetDefault("temperature.adc.timeout", 100*time.Millisecond)
	viper.SetDefault("temperature.voltageMax", 3.3)
	viper.SetDefault("temperature.millivoltsPerDegree", 10.0)
	viper.SetDefault("temperature.calibrationOffset", 0.0)
	viper.SetDefault("temperature.filterAlpha", 0.1)

	viper.SetDefault("setpoint.adc.resolution", 16)
	viper.SetDefault("setpoint.adc.timeout", 100*time.Millisecond)
	viper.SetDefault("setpoint.min", 20.0)
	viper.SetDefault("setpoint.max", 60.0)

	viper.SetDefault("pid.p", 60.0)
	viper.SetDefault("pid.i", 4.0)
	viper.SetDefault("pid.d", 8.0)
	viper.SetDefault("pid.setPoint", 20.0)
	viper.SetDefault("pid.antiWindupUpperLimit", 100.0)
	viper.SetDefault("pid.antiWindupLowerLimit", 0.0)
	viper.SetDefault("pid.antiWindupMode", AntiWindupModeTerm)

	viper.SetDefault("actuator.id", "heater")
	viper.SetDefault("actuator.period", 999)

	viper.SetDefault("display.enabled", true)
	viper.SetDefault("display.columns", 16)
	viper.SetDefault("display.rows", 2)

	viper.SetDefault("serial.enabled", false)
	viper.SetDefault("serial.baudRate", 115200)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)

	viper.SetDefault("simulation.enabled", false)
	viper.SetDefault("simulation.ambientTemperature", 20.0)
	viper.SetDefault("simulation.heaterGain", 0.5)
	viper.SetDefault("simulation.coolingRate", 0.02)
	viper.SetDefault("simulation.setpointRaw", 0)
	viper.SetDefault("simulation.noise", 0.0)
}

// ReadConfigFile reads, decodes and validates the configuration file.
// Any problem is fatal.
func ReadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	ui.Info("Using configuration file at: %s", viper.ConfigFileUsed())

	LoadConfig()

	if err := Validate(viper.ConfigFileUsed()); err != nil {
		ui.Fatal("Config Validation Error: %v", err)
	}
}

// DetectConfigFile reads the configuration file without validating it and
// returns the path of the file that was used.
func DetectConfigFile() (string, error) {
	if err := viper.ReadInConfig(); err != nil {
		return "", err
	}
	return viper.ConfigFileUsed(), nil
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHooks()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		AntiWindupModeHookFunc(),
	)
}

package global

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/configuration"
)

// LoadConfig reads, decodes and validates the configuration file and returns its path
func LoadConfig() (string, error) {
	configPath, err := configuration.DetectConfigFile()
	if err != nil {
		return "", fmt.Errorf("unable to read config file: %w", err)
	}
	configuration.LoadConfig()
	if err := configuration.Validate(configPath); err != nil {
		return configPath, fmt.Errorf("validation failed: %w", err)
	}
	return configPath, nil
}

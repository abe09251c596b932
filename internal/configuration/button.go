package configuration

import "time"

type ButtonConfig struct {
	File      *FileButtonConfig    `json:"file,omitempty" yaml:"file,omitempty"`
	Indicator *FileIndicatorConfig `json:"indicator,omitempty" yaml:"indicator,omitempty"`
}

type FileButtonConfig struct {
	Path     string        `json:"path" yaml:"path"`
	PollRate time.Duration `json:"pollRate" yaml:"pollRate"`
}

type FileIndicatorConfig struct {
	Path string `json:"path" yaml:"path"`
}

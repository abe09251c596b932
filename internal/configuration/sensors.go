package configuration

import "time"

// AdcConfig describes the converter a raw sample is read from
type AdcConfig struct {
	// Resolution of the converter in bits
	Resolution int `json:"resolution" yaml:"resolution"`
	// Timeout bounds a single conversion
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	File    *FileAdcConfig    `json:"file,omitempty" yaml:"file,omitempty"`
	Cmd     *CmdAdcConfig     `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	Virtual *VirtualAdcConfig `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

type FileAdcConfig struct {
	Path string `json:"path" yaml:"path"`
}

type CmdAdcConfig struct {
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args" yaml:"args"`
}

type VirtualAdcConfig struct {
	Value int `json:"value" yaml:"value"`
}

type TemperatureConfig struct {
	Adc AdcConfig `json:"adc" yaml:"adc"`
	// VoltageMax is the reference voltage of the converter in volts
	VoltageMax          float64 `json:"voltageMax" yaml:"voltageMax"`
	MillivoltsPerDegree float64 `json:"millivoltsPerDegree" yaml:"millivoltsPerDegree"`
	CalibrationOffset   float64 `json:"calibrationOffset" yaml:"calibrationOffset"`
	FilterAlpha         float64 `json:"filterAlpha" yaml:"filterAlpha"`
}

type SetpointConfig struct {
	Adc AdcConfig `json:"adc" yaml:"adc"`
	Min float64   `json:"min" yaml:"min"`
	Max float64   `json:"max" yaml:"max"`
}

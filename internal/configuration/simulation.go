package configuration

type SimulationConfig struct {
	Enabled            bool    `json:"enabled" yaml:"enabled"`
	AmbientTemperature float64 `json:"ambientTemperature" yaml:"ambientTemperature"`
	// HeaterGain is the temperature rise per tick at 100% duty
	HeaterGain float64 `json:"heaterGain" yaml:"heaterGain"`
	// CoolingRate is the fraction of the difference to ambient lost per tick
	CoolingRate float64 `json:"coolingRate" yaml:"coolingRate"`
	// SetpointRaw is the raw potentiometer sample the simulation reports
	SetpointRaw int `json:"setpointRaw" yaml:"setpointRaw"`
	// Noise is the amplitude of uniform noise added to the simulated temperature
	Noise float64 `json:"noise" yaml:"noise"`
}

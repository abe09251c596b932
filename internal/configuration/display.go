package configuration

type DisplayConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Columns int  `json:"columns" yaml:"columns"`
	Rows    int  `json:"rows" yaml:"rows"`

	// I2c is optional, without it the display only exists in memory (REST API)
	I2c *I2cDisplayConfig `json:"i2c,omitempty" yaml:"i2c,omitempty"`
}

type I2cDisplayConfig struct {
	Device  string `json:"device" yaml:"device"`
	Address int    `json:"address" yaml:"address"`
}

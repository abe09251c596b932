package configuration

type SerialConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Port     string `json:"port" yaml:"port"`
	BaudRate int    `json:"baudRate" yaml:"baudRate"`
}

package configuration

type ActuatorConfig struct {
	Id string `json:"id" yaml:"id"`
	// Period is the auto-reload value of the PWM timer, the compare value
	// written for a duty cycle d is round(d*(period+1)/100)
	Period int `json:"period" yaml:"period"`

	File    *FilePwmConfig    `json:"file,omitempty" yaml:"file,omitempty"`
	Sysfs   *SysfsPwmConfig   `json:"sysfs,omitempty" yaml:"sysfs,omitempty"`
	Cmd     *CmdPwmConfig     `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	Virtual *VirtualPwmConfig `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

type FilePwmConfig struct {
	Path string `json:"path" yaml:"path"`
}

// SysfsPwmConfig points at a channel directory like /sys/class/pwm/pwmchip0/pwm0
type SysfsPwmConfig struct {
	Path string `json:"path" yaml:"path"`
	// PeriodNs is written to the channel's period file when > 0
	PeriodNs int `json:"periodNs" yaml:"periodNs"`
}

type CmdPwmConfig struct {
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args" yaml:"args"`
}

type VirtualPwmConfig struct {
}

package control_loop

import "github.com/markusressel/heat2go/internal/configuration"

// NewPidControlLoopFromConfig creates a PidControlLoop with the gains, setpoint
// and integral limits of the given configuration
func NewPidControlLoopFromConfig(config configuration.PidConfig) (*PidControlLoop, error) {
	mode, err := ParseAntiWindupMode(string(config.AntiWindupMode))
	if err != nil {
		return nil, err
	}
	l := NewPidControlLoop(
		config.P, config.I, config.D,
		config.SetPoint,
		config.AntiWindupUpperLimit,
		config.AntiWindupLowerLimit,
	)
	l.SetAntiWindupMode(mode)
	return l, nil
}

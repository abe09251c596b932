package actuators

import (
	"fmt"
	"sync"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

const (
	MinDuty = 0
	MaxDuty = 100
)

// PwmOutput is the hardware side of an actuator, f.ex. a timer compare register
type PwmOutput interface {
	// Write applies a new compare value. duty is the percentage it was derived from.
	Write(compare int, duty int) error
}

type Actuator interface {
	GetId() string

	// WriteDuty clamps percent to [0..100], applies it and returns the clamped value.
	// The clamped value is returned even if the output could not be written.
	WriteDuty(percent int) (int, error)

	// ReadDuty returns the last applied duty cycle in percent
	ReadDuty() int

	// GetCompare returns the compare value that belongs to the last duty cycle
	GetCompare() int
}

// PwmActuator drives a PwmOutput with a timer period
type PwmActuator struct {
	id     string
	period int
	output PwmOutput

	mu      sync.RWMutex
	duty    int
	compare int
}

func NewPwmActuator(id string, period int, output PwmOutput) *PwmActuator {
	return &PwmActuator{
		id:     id,
		period: period,
		output: output,
	}
}

func NewActuator(config configuration.ActuatorConfig) (Actuator, error) {
	output, err := NewPwmOutput(config)
	if err != nil {
		return nil, err
	}
	return NewPwmActuator(config.Id, config.Period, output), nil
}

func NewPwmOutput(config configuration.ActuatorConfig) (PwmOutput, error) {
	if config.File != nil {
		return &FileOutput{Path: config.File.Path}, nil
	}

	if config.Sysfs != nil {
		return &SysfsOutput{
			Path:     config.Sysfs.Path,
			Period:   config.Period,
			PeriodNs: config.Sysfs.PeriodNs,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdOutput{
			Exec: config.Cmd.Exec,
			Args: config.Cmd.Args,
		}, nil
	}

	if config.Virtual != nil {
		return &VirtualOutput{}, nil
	}

	return nil, fmt.Errorf("no matching output type for actuator: %s", config.Id)
}

// DutyToCompare converts a duty cycle percentage to the compare value of a timer
// that counts from 0 to period.
func DutyToCompare(duty int, period int) int {
	return util.RoundToInt(float64(duty) * float64(period+1) / 100)
}

func (a *PwmActuator) GetId() string {
	return a.id
}

func (a *PwmActuator) WriteDuty(percent int) (int, error) {
	duty := util.Coerce(percent, MinDuty, MaxDuty)
	compare := DutyToCompare(duty, a.period)

	a.mu.Lock()
	a.duty = duty
	a.compare = compare
	a.mu.Unlock()

	if err := a.output.Write(compare, duty); err != nil {
		return duty, fmt.Errorf("actuator %s: %w", a.id, err)
	}
	return duty, nil
}

func (a *PwmActuator) ReadDuty() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.duty
}

func (a *PwmActuator) GetCompare() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.compare
}

func (a *PwmActuator) GetPeriod() int {
	return a.period
}

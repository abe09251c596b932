package actuators

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/markusressel/heat2go/internal/util"
)

// SysfsOutput drives a channel of the Linux PWM subsystem,
// f.ex. /sys/class/pwm/pwmchip0/pwm0
type SysfsOutput struct {
	Path string `json:"path"`
	// Period is the timer period the compare values refer to
	Period int `json:"period"`
	// PeriodNs is written to the channel on first use when > 0,
	// otherwise the configured period of the channel is used
	PeriodNs int `json:"periodNs"`

	once     sync.Once
	initErr  error
	periodNs int
}

func (o *SysfsOutput) init() error {
	o.once.Do(func() {
		if o.PeriodNs > 0 {
			if err := util.WriteIntToFile(o.PeriodNs, filepath.Join(o.Path, "period")); err != nil {
				o.initErr = fmt.Errorf("unable to set pwm period: %w", err)
				return
			}
			o.periodNs = o.PeriodNs
		} else {
			periodNs, err := util.ReadIntFromFile(filepath.Join(o.Path, "period"))
			if err != nil {
				o.initErr = fmt.Errorf("unable to read pwm period: %w", err)
				return
			}
			o.periodNs = periodNs
		}

		if err := util.WriteIntToFile(1, filepath.Join(o.Path, "enable")); err != nil {
			o.initErr = fmt.Errorf("unable to enable pwm channel: %w", err)
		}
	})
	return o.initErr
}

func (o *SysfsOutput) Write(compare int, duty int) error {
	if err := o.init(); err != nil {
		return err
	}
	dutyNs := compare * o.periodNs / (o.Period + 1)
	return util.WriteIntToFile(dutyNs, filepath.Join(o.Path, "duty_cycle"))
}

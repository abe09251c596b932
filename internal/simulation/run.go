package simulation

import (
	"context"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/control_loop"
	"github.com/markusressel/heat2go/internal/controller"
)

// Sample is the state of a simulated run after one tick
type Sample struct {
	Tick        uint64
	Temperature float64
	Plant       float64
	SetPoint    float64
	Duty        int
}

// Run ticks a regulator against the thermal model as fast as possible
func Run(ctx context.Context, config configuration.Configuration, ticks int) ([]Sample, error) {
	rig := NewRig(config)
	loop, err := control_loop.NewPidControlLoopFromConfig(config.Pid)
	if err != nil {
		return nil, err
	}

	regulator := controller.NewRegulator(controller.Params{
		Id:                    config.Actuator.Id,
		Temperature:           rig.Temperature,
		Setpoint:              rig.Setpoint,
		Loop:                  loop,
		Actuator:              rig.Actuator,
		TickRate:              config.TickRate,
		DisplayRefreshDivider: config.DisplayRefreshDivider,
		TemperatureWindowSize: config.TemperatureRollingWindowSize,
	})

	samples := make([]Sample, 0, ticks)
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return samples, err
		}
		status := regulator.Tick(ctx)
		samples = append(samples, Sample{
			Tick:        status.Tick,
			Temperature: status.Temperature,
			Plant:       rig.Plant.Temperature(),
			SetPoint:    status.SetPoint,
			Duty:        status.Duty,
		})
	}
	return samples, nil
}

package simulation

import (
	"github.com/markusressel/heat2go/internal/actuators"
	"github.com/markusressel/heat2go/internal/adc"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/sensors"
)

// Rig replaces the hardware of a configuration with the thermal model
type Rig struct {
	Plant             *Plant
	SetpointConverter *adc.VirtualConverter
	Temperature       *sensors.TemperatureSensor
	Setpoint          *sensors.SetpointSource
	Actuator          *actuators.PwmActuator
}

func NewRig(config configuration.Configuration) *Rig {
	plant := NewPlant(config.Simulation, config.Temperature)
	setpointConverter := adc.NewVirtualConverter(sensors.SetpointSourceId, uint16(config.Simulation.SetpointRaw))

	return &Rig{
		Plant:             plant,
		SetpointConverter: setpointConverter,
		Temperature:       sensors.NewTemperatureSensor(sensors.TemperatureSensorId, plant.Converter(), config.Temperature),
		Setpoint:          sensors.NewSetpointSource(sensors.SetpointSourceId, setpointConverter, config.Setpoint),
		Actuator:          actuators.NewPwmActuator(config.Actuator.Id, config.Actuator.Period, plant),
	}
}

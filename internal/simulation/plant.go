package simulation

import (
	"math"
	"math/rand"
	"sync"

	"github.com/markusressel/heat2go/internal/adc"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

// Plant is a first order thermal model of a heated body. Every write of a duty
// cycle advances the model by one tick:
//
//	T' = T + heaterGain * duty/100 - coolingRate * (T - ambient) + noise
//
// The resulting temperature is fed back into a virtual temperature converter
// as the raw sample a real sensor would produce.
type Plant struct {
	mu sync.Mutex

	ambient     float64
	heaterGain  float64
	coolingRate float64
	noise       float64
	rnd         *rand.Rand

	temperature float64
	duty        int
	steps       int

	sensor    configuration.TemperatureConfig
	converter *adc.VirtualConverter
}

func NewPlant(config configuration.SimulationConfig, sensor configuration.TemperatureConfig) *Plant {
	p := &Plant{
		ambient:     config.AmbientTemperature,
		heaterGain:  config.HeaterGain,
		coolingRate: config.CoolingRate,
		noise:       config.Noise,
		rnd:         rand.New(rand.NewSource(1)),
		temperature: config.AmbientTemperature,
		sensor:      sensor,
		converter:   adc.NewVirtualConverter("temperature", 0),
	}
	p.converter.Set(TemperatureToRaw(sensor, p.temperature))
	return p
}

// Write implements actuators.PwmOutput
func (p *Plant) Write(compare int, duty int) error {
	p.Step(duty)
	return nil
}

// Step advances the model by one tick with the given heater duty cycle in
// percent and returns the new temperature
func (p *Plant) Step(duty int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	duty = util.Coerce(duty, 0, 100)
	heating := p.heaterGain * float64(duty) / 100
	cooling := p.coolingRate * (p.temperature - p.ambient)
	p.temperature += heating - cooling
	if p.noise > 0 {
		p.temperature += p.rnd.NormFloat64() * p.noise
	}
	p.duty = duty
	p.steps++

	p.converter.Set(TemperatureToRaw(p.sensor, p.temperature))
	return p.temperature
}

func (p *Plant) Temperature() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.temperature
}

func (p *Plant) Duty() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

func (p *Plant) Steps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.steps
}

// Converter returns the temperature converter that follows the model
func (p *Plant) Converter() *adc.VirtualConverter {
	return p.converter
}

// Equilibrium returns the temperature the model settles at for a constant duty cycle
func (p *Plant) Equilibrium(duty int) float64 {
	if p.coolingRate == 0 {
		return math.Inf(1)
	}
	return p.ambient + p.heaterGain*float64(util.Coerce(duty, 0, 100))/100/p.coolingRate
}

// TemperatureToRaw returns the register value a sensor with the given
// configuration reports for a temperature
func TemperatureToRaw(config configuration.TemperatureConfig, celsius float64) uint16 {
	scale := util.NewAdcScale(config.Adc.Resolution, 0, config.VoltageMax*1000)
	millivolts := (celsius - config.CalibrationOffset) * config.MillivoltsPerDegree
	raw := util.Coerce(math.Round(scale.Inverse(millivolts)), 0, scale.RawMax)
	return uint16(raw)
}

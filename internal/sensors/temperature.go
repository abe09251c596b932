package sensors

import (
	"context"
	"sync"
	"time"

	"github.com/markusressel/heat2go/internal/adc"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

// TemperatureSensor converts raw samples of an analog temperature sensor
// (f.ex. an LM35) to filtered degrees Celsius.
type TemperatureSensor struct {
	id        string
	converter adc.Converter
	timeout   time.Duration

	// raw sample to millivolts
	scale               util.LinearScale
	millivoltsPerDegree float64
	calibrationOffset   float64

	mu     sync.RWMutex
	filter *util.ExponentialFilter
	raw    uint16
}

func NewTemperatureSensor(id string, converter adc.Converter, config configuration.TemperatureConfig) *TemperatureSensor {
	return &TemperatureSensor{
		id:                  id,
		converter:           converter,
		timeout:             timeoutOrDefault(config.Adc.Timeout),
		scale:               util.NewAdcScale(config.Adc.Resolution, 0, config.VoltageMax*1000),
		millivoltsPerDegree: config.MillivoltsPerDegree,
		calibrationOffset:   config.CalibrationOffset,
		filter:              util.NewExponentialFilter(config.FilterAlpha),
	}
}

func (sensor *TemperatureSensor) GetId() string {
	return sensor.id
}

// ToCelsius converts a raw sample to an unfiltered temperature
func (sensor *TemperatureSensor) ToCelsius(raw uint16) float64 {
	millivolts := sensor.scale.Map(float64(raw))
	return millivolts/sensor.millivoltsPerDegree + sensor.calibrationOffset
}

func (sensor *TemperatureSensor) Read(ctx context.Context) (float64, error) {
	raw, err := adc.ReadWithTimeout(ctx, sensor.converter, sensor.timeout)
	if err != nil {
		return sensor.GetValue(), readError(sensor.id, err)
	}

	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.raw = raw
	return sensor.filter.Update(sensor.ToCelsius(raw)), nil
}

func (sensor *TemperatureSensor) GetValue() float64 {
	sensor.mu.RLock()
	defer sensor.mu.RUnlock()
	return sensor.filter.GetValue()
}

func (sensor *TemperatureSensor) GetRaw() uint16 {
	sensor.mu.RLock()
	defer sensor.mu.RUnlock()
	return sensor.raw
}

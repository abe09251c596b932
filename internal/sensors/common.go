package sensors

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/markusressel/heat2go/internal/adc"
	"github.com/markusressel/heat2go/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	TemperatureSensorId = "temperature"
	SetpointSourceId    = "setpoint"
)

type Sensor interface {
	GetId() string

	// Read performs a conversion and returns the new value. If the conversion
	// failed the previous value is returned together with the error.
	Read(ctx context.Context) (float64, error)

	// GetValue returns the most recent value without performing a conversion
	GetValue() float64

	// GetRaw returns the most recent raw sample
	GetRaw() uint16
}

// SensorMap holds all sensors of a regulator by id
type SensorMap struct {
	cmap.ConcurrentMap[string, Sensor]
}

func NewSensorMap(sensors ...Sensor) SensorMap {
	m := SensorMap{cmap.New[Sensor]()}
	for _, sensor := range sensors {
		m.Set(sensor.GetId(), sensor)
	}
	return m
}

// SortedIds returns the ids of all registered sensors in alphabetical order
func (m SensorMap) SortedIds() []string {
	ids := m.Keys()
	sort.Strings(ids)
	return ids
}

// NewSensors creates the temperature sensor and the setpoint source of a configuration
func NewSensors(config configuration.Configuration) (*TemperatureSensor, *SetpointSource, error) {
	temperatureConverter, err := adc.NewConverter(TemperatureSensorId, config.Temperature.Adc)
	if err != nil {
		return nil, nil, err
	}
	setpointConverter, err := adc.NewConverter(SetpointSourceId, config.Setpoint.Adc)
	if err != nil {
		return nil, nil, err
	}

	return NewTemperatureSensor(TemperatureSensorId, temperatureConverter, config.Temperature),
		NewSetpointSource(SetpointSourceId, setpointConverter, config.Setpoint),
		nil
}

func timeoutOrDefault(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 100 * time.Millisecond
	}
	return timeout
}

func readError(id string, err error) error {
	return fmt.Errorf("sensor %s: %w", id, err)
}

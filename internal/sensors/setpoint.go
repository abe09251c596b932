package sensors

import (
	"context"
	"sync"
	"time"

	"github.com/markusressel/heat2go/internal/adc"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

// SetpointSource maps a potentiometer sample linearly into the setpoint range.
// The value starts at the lower end of the range.
type SetpointSource struct {
	id        string
	converter adc.Converter
	timeout   time.Duration
	scale     util.LinearScale

	mu    sync.RWMutex
	value float64
	raw   uint16
}

func NewSetpointSource(id string, converter adc.Converter, config configuration.SetpointConfig) *SetpointSource {
	scale := util.NewAdcScale(config.Adc.Resolution, config.Min, config.Max)
	return &SetpointSource{
		id:        id,
		converter: converter,
		timeout:   timeoutOrDefault(config.Adc.Timeout),
		scale:     scale,
		value:     scale.Map(0),
	}
}

func (source *SetpointSource) GetId() string {
	return source.id
}

func (source *SetpointSource) Read(ctx context.Context) (float64, error) {
	raw, err := adc.ReadWithTimeout(ctx, source.converter, source.timeout)
	if err != nil {
		return source.GetValue(), readError(source.id, err)
	}

	source.mu.Lock()
	defer source.mu.Unlock()
	source.raw = raw
	source.value = source.scale.Map(float64(raw))
	return source.value, nil
}

func (source *SetpointSource) GetValue() float64 {
	source.mu.RLock()
	defer source.mu.RUnlock()
	return source.value
}

func (source *SetpointSource) GetRaw() uint16 {
	source.mu.RLock()
	defer source.mu.RUnlock()
	return source.raw
}

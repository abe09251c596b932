package adc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

var ErrConversionTimeout = errors.New("adc conversion timed out")

// Converter provides raw samples of an analog input
type Converter interface {
	GetId() string

	// Read performs a single conversion and returns the raw register value
	Read(ctx context.Context) (uint16, error)
}

func NewConverter(id string, config configuration.AdcConfig) (Converter, error) {
	if config.File != nil {
		return &FileConverter{
			Id:         id,
			Path:       config.File.Path,
			Resolution: config.Resolution,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdConverter{
			Id:         id,
			Exec:       config.Cmd.Exec,
			Args:       config.Cmd.Args,
			Resolution: config.Resolution,
		}, nil
	}

	if config.Virtual != nil {
		return NewVirtualConverter(id, uint16(config.Virtual.Value)), nil
	}

	return nil, fmt.Errorf("no matching converter type for adc: %s", id)
}

type readResult struct {
	value uint16
	err   error
}

// ReadWithTimeout bounds a single conversion of c to the given timeout.
// An exceeded timeout is reported as ErrConversionTimeout.
func ReadWithTimeout(ctx context.Context, c Converter, timeout time.Duration) (uint16, error) {
	conversionCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make(chan readResult, 1)
	go func() {
		value, err := c.Read(conversionCtx)
		results <- readResult{value: value, err: err}
	}()

	select {
	case result := <-results:
		if errors.Is(result.err, context.DeadlineExceeded) {
			return 0, ErrConversionTimeout
		}
		return result.value, result.err
	case <-conversionCtx.Done():
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, ErrConversionTimeout
	}
}

// clampToResolution limits value to the register range of a converter with the given resolution
func clampToResolution(value int, resolution int) uint16 {
	if resolution <= 0 || resolution > 16 {
		resolution = 16
	}
	return uint16(util.Coerce(value, 0, int(util.AdcRegisterMax(resolution))))
}

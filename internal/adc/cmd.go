package adc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/markusressel/heat2go/internal/util"
)

const cmdTimeout = 2 * time.Second

// CmdConverter runs an executable that prints a single raw sample to stdout
type CmdConverter struct {
	Id         string   `json:"id"`
	Exec       string   `json:"exec"`
	Args       []string `json:"args"`
	Resolution int      `json:"resolution"`
}

func (c CmdConverter) GetId() string {
	return c.Id
}

func (c CmdConverter) Read(ctx context.Context) (uint16, error) {
	result, err := util.SafeCmdExecutionContext(ctx, c.Exec, c.Args, cmdTimeout)
	if errors.Is(err, context.DeadlineExceeded) {
		return 0, ErrConversionTimeout
	}
	if err != nil {
		return 0, fmt.Errorf("adc %s: %w", c.Id, err)
	}

	value, err := strconv.Atoi(result)
	if err != nil {
		return 0, fmt.Errorf("adc %s: unable to parse command output %q: %w", c.Id, result, err)
	}

	return clampToResolution(value, c.Resolution), nil
}

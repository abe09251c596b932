package adc

import (
	"context"
	"fmt"

	"github.com/markusressel/heat2go/internal/util"
)

// FileConverter reads a raw sample from a file, f.ex. an IIO in_voltageX_raw attribute
type FileConverter struct {
	Id         string `json:"id"`
	Path       string `json:"path"`
	Resolution int    `json:"resolution"`
}

func (c FileConverter) GetId() string {
	return c.Id
}

func (c FileConverter) Read(ctx context.Context) (uint16, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	filePath, err := util.ExpandHomeDir(c.Path)
	if err != nil {
		return 0, err
	}

	value, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("adc %s: unable to read sample from %s: %w", c.Id, filePath, err)
	}

	return clampToResolution(value, c.Resolution), nil
}

package button

import (
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

// Indicator shows whether the regulator is in edit mode, f.ex. a LED
type Indicator interface {
	Set(on bool) error
}

func NewIndicator(config configuration.ButtonConfig) Indicator {
	if config.Indicator == nil {
		return NoopIndicator{}
	}
	return &FileIndicator{Path: config.Indicator.Path}
}

// FileIndicator writes 1 or 0 to a value file
type FileIndicator struct {
	Path string
}

func (i *FileIndicator) Set(on bool) error {
	value := 0
	if on {
		value = 1
	}
	return util.WriteIntToFile(value, i.Path)
}

type NoopIndicator struct{}

func (NoopIndicator) Set(on bool) error {
	return nil
}

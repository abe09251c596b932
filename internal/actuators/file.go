package actuators

import (
	"github.com/markusressel/heat2go/internal/util"
)

// FileOutput writes the compare value to a file
type FileOutput struct {
	Path string `json:"path"`
}

func (o *FileOutput) Write(compare int, duty int) error {
	filePath, err := util.ExpandHomeDir(o.Path)
	if err != nil {
		return err
	}
	return util.WriteIntToFile(compare, filePath)
}

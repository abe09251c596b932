package actuators

import (
	"strconv"
	"time"

	"github.com/markusressel/heat2go/internal/util"
)

// CmdOutput runs an executable for every change, "%compare%" and "%duty%"
// in its arguments are replaced with the new values.
type CmdOutput struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

func (o *CmdOutput) Write(compare int, duty int) error {
	args := util.ReplacePlaceholders(o.Args, map[string]string{
		"compare": strconv.Itoa(compare),
		"duty":    strconv.Itoa(duty),
	})

	timeout := 2 * time.Second
	_, err := util.SafeCmdExecution(o.Exec, args, timeout)
	return err
}

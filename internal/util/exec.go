package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/markusressel/heat2go/internal/ui"
)

func SafeCmdExecution(executable string, args []string, timeout time.Duration) (string, error) {
	return SafeCmdExecutionContext(context.Background(), executable, args, timeout)
}

func SafeCmdExecutionContext(parent context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", errors.New(fmt.Sprintf("Cannot execute %s: %s", executable, err))
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Warning("Command timed out: %s", executable)
		return "", ctx.Err()
	}

	if err != nil {
		ui.Warning("Command failed to execute: %s", executable)
		return "", err
	}

	strout := string(out)
	strout = strings.Trim(strout, "\n")

	return strout, nil
}

// ReplacePlaceholders replaces all "%key%" occurrences in args with the given values
func ReplacePlaceholders(args []string, values map[string]string) []string {
	var result = []string{}
	for _, arg := range args {
		replaced := arg
		for key, value := range values {
			replaced = strings.ReplaceAll(replaced, "%"+key+"%", value)
		}
		result = append(result, replaced)
	}
	return result
}

package configuration

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type AntiWindupMode string

const (
	// AntiWindupModeTerm clamps the integral contribution only, the sum keeps growing
	AntiWindupModeTerm AntiWindupMode = "term"
	// AntiWindupModeAccumulator also back-calculates the sum when the contribution is clamped
	AntiWindupModeAccumulator AntiWindupMode = "accumulator"
)

type PidConfig struct {
	P        float64 `json:"p" yaml:"p"`
	I        float64 `json:"i" yaml:"i"`
	D        float64 `json:"d" yaml:"d"`
	SetPoint float64 `json:"setPoint" yaml:"setPoint"`

	AntiWindupUpperLimit float64        `json:"antiWindupUpperLimit" yaml:"antiWindupUpperLimit"`
	AntiWindupLowerLimit float64        `json:"antiWindupLowerLimit" yaml:"antiWindupLowerLimit"`
	AntiWindupMode       AntiWindupMode `json:"antiWindupMode" yaml:"antiWindupMode"`
}

// AntiWindupModeHookFunc normalizes and checks the anti-windup mode while decoding.
func AntiWindupModeHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {

		if t != reflect.TypeOf(AntiWindupModeTerm) {
			return data, nil
		}

		value, ok := data.(string)
		if !ok {
			return data, nil
		}

		mode := AntiWindupMode(strings.ToLower(strings.TrimSpace(value)))
		switch mode {
		case "":
			return AntiWindupModeTerm, nil
		case AntiWindupModeTerm, AntiWindupModeAccumulator:
			return mode, nil
		default:
			return nil, fmt.Errorf("unknown anti-windup mode %q, use one of: %s | %s", value, AntiWindupModeTerm, AntiWindupModeAccumulator)
		}
	}
}

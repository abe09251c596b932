package link

import (
	"fmt"
	"math"
)

// FrameSize is the fixed length of a command frame: one tag byte followed by
// four bytes of a decimal integer carrying the value times 100.
const FrameSize = 5

const (
	TagSetPoint byte = 's'
	TagKp       byte = 'p'
	TagKi       byte = 'i'
	TagKd       byte = 'd'
)

// Target is the receiver of serial commands
type Target interface {
	SetReference(setPoint float64)
	SetTunings(kp, ki, kd float64)
	GetTunings() (kp, ki, kd float64)
}

type Command struct {
	Tag   byte
	Value float64
}

func (c Command) String() string {
	return fmt.Sprintf("%c=%.2f", c.Tag, c.Value)
}

// ParseFrame decodes a command frame. Frames with an unknown tag or of the
// wrong length are reported as not ok.
func ParseFrame(frame []byte) (Command, bool) {
	if len(frame) != FrameSize {
		return Command{}, false
	}

	tag := frame[0]
	switch tag {
	case TagSetPoint, TagKp, TagKi, TagKd:
	default:
		return Command{}, false
	}

	return Command{
		Tag:   tag,
		Value: float64(parseDecimalPrefix(frame[1:])) / 100,
	}, true
}

// parseDecimalPrefix parses like strtol with base 10: leading whitespace and a
// sign are accepted, parsing stops at the first non digit, no digits yields 0.
func parseDecimalPrefix(b []byte) int64 {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}

	negative := false
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		negative = b[i] == '-'
		i++
	}

	var value int64
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		value = value*10 + int64(b[i]-'0')
	}

	if negative {
		return -value
	}
	return value
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Apply executes the command on target. Changing one gain keeps the other two.
func (c Command) Apply(target Target) {
	kp, ki, kd := target.GetTunings()
	switch c.Tag {
	case TagSetPoint:
		target.SetReference(c.Value)
	case TagKp:
		target.SetTunings(c.Value, ki, kd)
	case TagKi:
		target.SetTunings(kp, c.Value, kd)
	case TagKd:
		target.SetTunings(kp, ki, c.Value)
	}
}

// EncodeFrame builds the frame that sets the value of tag
func EncodeFrame(tag byte, value float64) ([]byte, error) {
	switch tag {
	case TagSetPoint, TagKp, TagKi, TagKd:
	default:
		return nil, fmt.Errorf("unknown command tag '%c', use one of: s | p | i | d", tag)
	}

	fixed := int64(math.Round(value * 100))
	var digits string
	switch {
	case fixed >= 0 && fixed <= 9999:
		digits = fmt.Sprintf("%04d", fixed)
	case fixed < 0 && fixed >= -999:
		digits = fmt.Sprintf("-%03d", -fixed)
	default:
		return nil, fmt.Errorf("value %.2f does not fit into a frame, must be in [-9.99..99.99]", value)
	}

	return append([]byte{tag}, digits...), nil
}

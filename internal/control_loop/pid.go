package control_loop

import "fmt"

// AntiWindupMode selects how the integral part is limited
type AntiWindupMode int

const (
	// AntiWindupTerm clamps the integral term only, the accumulated sum is unbounded
	AntiWindupTerm AntiWindupMode = iota
	// AntiWindupAccumulator clamps the integral term and resets the sum
	// to the value that produces the clamped term
	AntiWindupAccumulator
)

func (m AntiWindupMode) String() string {
	switch m {
	case AntiWindupTerm:
		return "term"
	case AntiWindupAccumulator:
		return "accumulator"
	default:
		return fmt.Sprintf("AntiWindupMode(%d)", int(m))
	}
}

// ParseAntiWindupMode converts the configuration name of a mode
func ParseAntiWindupMode(name string) (AntiWindupMode, error) {
	switch name {
	case "", "term":
		return AntiWindupTerm, nil
	case "accumulator":
		return AntiWindupAccumulator, nil
	default:
		return AntiWindupTerm, fmt.Errorf("unknown anti-windup mode: %s", name)
	}
}

// dt is the fixed virtual time between two calls of Calculate
const dt = 1.0

// PidTerms are the individual contributions of the last calculation
type PidTerms struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
}

// PidControlLoop is a discrete PID controller advanced once per tick.
// It is not safe for concurrent use.
type PidControlLoop struct {
	kp float64
	ki float64
	kd float64

	setPoint float64

	// limits of the integral term
	antiWindupUpper float64
	antiWindupLower float64
	antiWindupMode  AntiWindupMode

	integralSum     float64
	lastError       float64
	output          float64
	lastMeasurement float64
	terms           PidTerms
}

// NewPidControlLoop creates a PidControlLoop with zeroed error history
func NewPidControlLoop(
	kp, ki, kd float64,
	setPoint float64,
	antiWindupUpper float64,
	antiWindupLower float64,
) *PidControlLoop {
	l := &PidControlLoop{}
	l.Init(kp, ki, kd, setPoint, antiWindupUpper, antiWindupLower)
	return l
}

// Init sets tunings, setpoint and the integral limits.
// The error history is kept, call Reset for a clean start.
func (l *PidControlLoop) Init(kp, ki, kd, setPoint, antiWindupUpper, antiWindupLower float64) {
	l.SetTunings(kp, ki, kd)
	l.SetReference(setPoint)
	l.antiWindupUpper = antiWindupUpper
	l.antiWindupLower = antiWindupLower
}

// Reset zeroes the accumulated error state
func (l *PidControlLoop) Reset() {
	l.integralSum = 0
	l.lastError = 0
}

// SetTunings replaces the gains, effective on the next Calculate
func (l *PidControlLoop) SetTunings(kp, ki, kd float64) {
	l.kp = kp
	l.ki = ki
	l.kd = kd
}

func (l *PidControlLoop) SetReference(setPoint float64) {
	l.setPoint = setPoint
}

func (l *PidControlLoop) SetAntiWindupMode(mode AntiWindupMode) {
	l.antiWindupMode = mode
}

// Calculate advances the controller by one tick. The returned output is not
// limited, only the integral term is.
func (l *PidControlLoop) Calculate(measured float64) float64 {
	err := l.setPoint - measured

	l.integralSum += err * dt
	derivative := (err - l.lastError) / dt

	pTerm := l.kp * err
	iTerm := l.ki * l.integralSum
	dTerm := l.kd * derivative

	if iTerm >= l.antiWindupUpper {
		iTerm = l.antiWindupUpper
		l.backCalculate(iTerm)
	} else if iTerm <= l.antiWindupLower {
		iTerm = l.antiWindupLower
		l.backCalculate(iTerm)
	}

	l.output = pTerm + iTerm + dTerm

	l.lastError = err
	l.lastMeasurement = measured
	l.terms = PidTerms{P: pTerm, I: iTerm, D: dTerm}

	return l.output
}

func (l *PidControlLoop) backCalculate(clampedTerm float64) {
	if l.antiWindupMode != AntiWindupAccumulator || l.ki == 0 {
		return
	}
	l.integralSum = clampedTerm / l.ki
}

func (l *PidControlLoop) GetSetPoint() float64 {
	return l.setPoint
}

func (l *PidControlLoop) GetTunings() (kp, ki, kd float64) {
	return l.kp, l.ki, l.kd
}

func (l *PidControlLoop) GetLimits() (upper, lower float64) {
	return l.antiWindupUpper, l.antiWindupLower
}

func (l *PidControlLoop) GetAntiWindupMode() AntiWindupMode {
	return l.antiWindupMode
}

func (l *PidControlLoop) GetIntegralSum() float64 {
	return l.integralSum
}

func (l *PidControlLoop) GetLastError() float64 {
	return l.lastError
}

func (l *PidControlLoop) GetOutput() float64 {
	return l.output
}

func (l *PidControlLoop) GetLastMeasurement() float64 {
	return l.lastMeasurement
}

func (l *PidControlLoop) GetTerms() PidTerms {
	return l.terms
}

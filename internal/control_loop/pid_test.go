package control_loop

import (
	"testing"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestPidControlLoop_Proportional(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(1, 0, 0, 10, 100, 0)

	// WHEN
	output := loop.Calculate(7)

	// THEN
	assert.Equal(t, 3.0, output)
	assert.Equal(t, 3.0, loop.GetOutput())
	assert.Equal(t, 3.0, loop.GetLastError())
	assert.Equal(t, 7.0, loop.GetLastMeasurement())
}

func TestPidControlLoop_IntegralAccumulatesWithoutTimeScaling(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(0, 1, 0, 10, 100, 0)

	// WHEN
	loop.Calculate(8)
	output := loop.Calculate(8)

	// THEN
	assert.Equal(t, 4.0, loop.GetIntegralSum())
	assert.Equal(t, 4.0, loop.GetTerms().I)
	assert.Equal(t, 4.0, output)
}

func TestPidControlLoop_IntegralTermIsClamped(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(1, 10, 0, 10, 5, 0)

	// WHEN
	output := loop.Calculate(8)

	// THEN
	terms := loop.GetTerms()
	assert.Equal(t, 5.0, terms.I)
	assert.Equal(t, 2.0, terms.P)
	// p and d are added after clamping
	assert.Equal(t, 7.0, output)
	// the accumulator is not limited
	assert.Equal(t, 2.0, loop.GetIntegralSum())
}

func TestPidControlLoop_OutputExceedsLimits(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(60, 4, 8, 50, 100, 0)

	// WHEN
	output := loop.Calculate(20)

	// THEN
	// 60*30 + min(4*30, 100) + 8*30
	assert.Equal(t, 1800.0+100.0+240.0, output)
}

func TestPidControlLoop_LowerClampAppliesToNegativeTerm(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(0, 1, 0, 10, 100, 0)

	// WHEN
	output := loop.Calculate(15)

	// THEN
	assert.Equal(t, 0.0, loop.GetTerms().I)
	assert.Equal(t, 0.0, output)
	assert.Equal(t, -5.0, loop.GetIntegralSum())
}

func TestPidControlLoop_TermModeSumGrowsUnbounded(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(0, 1, 0, 10, 5, 0)

	// WHEN
	for i := 0; i < 10; i++ {
		loop.Calculate(8)
	}

	// THEN
	assert.Equal(t, 20.0, loop.GetIntegralSum())
	assert.Equal(t, 5.0, loop.GetTerms().I)
}

func TestPidControlLoop_AccumulatorModeLimitsSum(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(0, 2, 0, 10, 5, 0)
	loop.SetAntiWindupMode(AntiWindupAccumulator)

	// WHEN
	for i := 0; i < 10; i++ {
		loop.Calculate(8)
	}

	// THEN
	assert.Equal(t, 2.5, loop.GetIntegralSum())
	assert.Equal(t, 5.0, loop.GetTerms().I)

	// WHEN the error reverses, the term leaves saturation immediately
	output := loop.Calculate(11)

	// THEN
	assert.Equal(t, 1.5, loop.GetIntegralSum())
	assert.Equal(t, 3.0, output)
}

func TestPidControlLoop_AccumulatorModeWithoutIntegralGain(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(1, 0, 0, 10, 5, 1)
	loop.SetAntiWindupMode(AntiWindupAccumulator)

	// WHEN
	output := loop.Calculate(8)

	// THEN
	assert.Equal(t, 2.0, loop.GetIntegralSum())
	assert.Equal(t, 1.0, loop.GetTerms().I)
	assert.Equal(t, 3.0, output)
}

func TestPidControlLoop_Derivative(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(0, 0, 2, 10, 100, 0)

	// WHEN
	first := loop.Calculate(8)
	second := loop.Calculate(9)

	// THEN
	// error 2 after lastError 0
	assert.Equal(t, 4.0, first)
	// error 1 after lastError 2
	assert.Equal(t, -2.0, second)
}

func TestPidControlLoop_ZeroErrorStaysZero(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(60, 4, 8, 20, 100, 0)

	for i := 0; i < 5; i++ {
		// WHEN
		output := loop.Calculate(20)

		// THEN
		assert.Equal(t, 0.0, output)
		assert.Equal(t, 0.0, loop.GetIntegralSum())
	}
}

func TestPidControlLoop_ResetReproducesFreshController(t *testing.T) {
	// GIVEN
	fresh := NewPidControlLoop(60, 4, 8, 25, 100, 0)
	used := NewPidControlLoop(60, 4, 8, 25, 100, 0)
	for i := 0; i < 7; i++ {
		used.Calculate(float64(10 + i))
	}

	// WHEN
	used.Reset()

	// THEN
	assert.Equal(t, fresh.Calculate(21.3), used.Calculate(21.3))
}

func TestPidControlLoop_ResetKeepsConfiguration(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(1, 2, 3, 25, 50, -50)
	loop.Calculate(20)

	// WHEN
	loop.Reset()

	// THEN
	kp, ki, kd := loop.GetTunings()
	upper, lower := loop.GetLimits()
	assert.Equal(t, []float64{1, 2, 3}, []float64{kp, ki, kd})
	assert.Equal(t, 25.0, loop.GetSetPoint())
	assert.Equal(t, 50.0, upper)
	assert.Equal(t, -50.0, lower)
	assert.Equal(t, 0.0, loop.GetIntegralSum())
	assert.Equal(t, 0.0, loop.GetLastError())
}

func TestPidControlLoop_InitKeepsHistory(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(0, 1, 0, 10, 100, 0)
	loop.Calculate(8)

	// WHEN
	loop.Init(1, 1, 1, 20, 100, 0)

	// THEN
	assert.Equal(t, 2.0, loop.GetIntegralSum())
	assert.Equal(t, 2.0, loop.GetLastError())
	assert.Equal(t, 20.0, loop.GetSetPoint())
}

func TestPidControlLoop_SetTuningsTakesEffectImmediately(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(1, 0, 0, 10, 100, 0)
	assert.Equal(t, 2.0, loop.Calculate(8))

	// WHEN
	loop.SetTunings(10, 0, 0)

	// THEN
	assert.Equal(t, 20.0, loop.Calculate(8))
}

func TestPidControlLoop_SetReference(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(1, 0, 0, 10, 100, 0)

	// WHEN
	loop.SetReference(30)

	// THEN
	assert.Equal(t, 30.0, loop.GetSetPoint())
	assert.Equal(t, 10.0, loop.Calculate(20))
}

func TestParseAntiWindupMode(t *testing.T) {
	mode, err := ParseAntiWindupMode("accumulator")
	assert.NoError(t, err)
	assert.Equal(t, AntiWindupAccumulator, mode)
	assert.Equal(t, "accumulator", mode.String())

	mode, err = ParseAntiWindupMode("")
	assert.NoError(t, err)
	assert.Equal(t, AntiWindupTerm, mode)

	_, err = ParseAntiWindupMode("clamp")
	assert.EqualError(t, err, "unknown anti-windup mode: clamp")
}

func TestNewPidControlLoopFromConfig(t *testing.T) {
	// GIVEN
	config := configuration.PidConfig{
		P:                    60,
		I:                    4,
		D:                    8,
		SetPoint:             20,
		AntiWindupUpperLimit: 100,
		AntiWindupLowerLimit: 0,
		AntiWindupMode:       configuration.AntiWindupModeAccumulator,
	}

	// WHEN
	l, err := NewPidControlLoopFromConfig(config)

	// THEN
	assert.NoError(t, err)
	kp, ki, kd := l.GetTunings()
	assert.Equal(t, []float64{60, 4, 8}, []float64{kp, ki, kd})
	assert.Equal(t, 20.0, l.GetSetPoint())
	assert.Equal(t, AntiWindupAccumulator, l.GetAntiWindupMode())
}

func TestNewPidControlLoopFromConfig_UnknownMode(t *testing.T) {
	// GIVEN
	config := configuration.PidConfig{AntiWindupMode: "clamp"}

	// WHEN
	_, err := NewPidControlLoopFromConfig(config)

	// THEN
	assert.EqualError(t, err, "unknown anti-windup mode: clamp")
}

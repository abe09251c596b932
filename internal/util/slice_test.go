package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	// GIVEN
	values := []float64{21.5, 19.25, 30, 25}

	// WHEN
	min := Min(values)
	max := Max(values)

	// THEN
	assert.Equal(t, 19.25, min)
	assert.Equal(t, 30.0, max)
}

func TestMinMax_Negative(t *testing.T) {
	// GIVEN
	values := []int{-3, -7, -1}

	// WHEN
	min := Min(values)
	max := Max(values)

	// THEN
	assert.Equal(t, -7, min)
	assert.Equal(t, -1, max)
}

func TestMinMax_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Min([]float64{}))
	assert.Equal(t, 0.0, Max([]float64{}))
}

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[string]int{
		"setpoint":    1,
		"heater":      2,
		"temperature": 3,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []string{"heater", "setpoint", "temperature"}, result)
}

package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Integer | constraints.Float](value, min, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// LinearTransform maps x from the range [aMin..aMax] to the range [bMin..bMax].
// aMax - aMin must not be 0.
func LinearTransform(x, aMin, aMax, bMin, bMax float64) float64 {
	return Ratio(x, aMin, aMax)*(bMax-bMin) + bMin
}

// UpdateSimpleMovingAvg calculates the new moving average, based on an existing average and buffer size
func UpdateSimpleMovingAvg(oldAvg float64, n int, newValue float64) float64 {
	return oldAvg + (1/float64(n))*(newValue-oldAvg)
}

// UpdateExponentialMovingAvg calculates alpha*newValue + (1-alpha)*oldAvg
func UpdateExponentialMovingAvg(oldAvg float64, alpha float64, newValue float64) float64 {
	return alpha*newValue + (1.0-alpha)*oldAvg
}

// RoundToInt rounds half away from zero
func RoundToInt(value float64) int {
	return int(math.Round(value))
}

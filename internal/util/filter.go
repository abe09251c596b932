package util

// ExponentialFilter is an exponential moving average low-pass filter.
// The filtered value starts at 0.
type ExponentialFilter struct {
	alpha float64
	value float64
}

// NewExponentialFilter creates a filter with the smoothing factor alpha (0 < alpha <= 1).
func NewExponentialFilter(alpha float64) *ExponentialFilter {
	return &ExponentialFilter{
		alpha: alpha,
	}
}

// Update feeds a new sample into the filter and returns the new filtered value
func (f *ExponentialFilter) Update(sample float64) float64 {
	f.value = UpdateExponentialMovingAvg(f.value, f.alpha, sample)
	return f.value
}

func (f *ExponentialFilter) GetValue() float64 {
	return f.value
}

func (f *ExponentialFilter) GetAlpha() float64 {
	return f.alpha
}

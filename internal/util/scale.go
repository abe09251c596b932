package util

// LinearScale maps raw converter samples to a physical unit.
// RawMin must differ from RawMax.
type LinearScale struct {
	RawMin float64 `json:"rawMin"`
	RawMax float64 `json:"rawMax"`
	OutMin float64 `json:"outMin"`
	OutMax float64 `json:"outMax"`
}

// NewAdcScale creates a LinearScale covering the full register range of an
// ADC with the given resolution.
func NewAdcScale(resolutionBits int, outMin, outMax float64) LinearScale {
	return LinearScale{
		RawMin: 0,
		RawMax: AdcRegisterMax(resolutionBits),
		OutMin: outMin,
		OutMax: outMax,
	}
}

// Map converts a raw value into the output range
func (s LinearScale) Map(raw float64) float64 {
	return LinearTransform(raw, s.RawMin, s.RawMax, s.OutMin, s.OutMax)
}

// Inverse converts a value of the output range back into the raw range
func (s LinearScale) Inverse(value float64) float64 {
	return LinearTransform(value, s.OutMin, s.OutMax, s.RawMin, s.RawMax)
}

// AdcRegisterMax returns the highest register value of an ADC with the given resolution,
// f.ex. 65535 for 16 bits.
func AdcRegisterMax(resolutionBits int) float64 {
	return float64((uint64(1) << uint(resolutionBits)) - 1)
}

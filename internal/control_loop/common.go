package control_loop

type ControlLoop interface {
	// Calculate advances the control loop by one tick and returns the new output
	Calculate(measured float64) float64
}

package link

import "fmt"

// Telemetry is the status line sent once per tick
type Telemetry struct {
	Temperature float64
	Duty        int
	SetPoint    float64
	Kp          float64
	Ki          float64
	Kd          float64
}

func FormatTelemetry(t Telemetry) string {
	return fmt.Sprintf("T: %.1f, PWM: %d, S: %.1f, P: %.3f, I: %.3f, D: %.3f   \n",
		t.Temperature, t.Duty, t.SetPoint, t.Kp, t.Ki, t.Kd)
}

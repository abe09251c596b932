package display

import "fmt"

// Readings are the values shown on the status screen
type Readings struct {
	Temperature float64
	SetPoint    float64
	Candidate   float64
	Duty        int
	EditMode    bool
}

const valueColumn = 12

type placement struct {
	col, row int
	text     string
}

// StatusScreen renders the regulator state onto a two row display.
// The committed setpoint is shown at the end of the first row, the pending
// candidate at the end of the second row while it is being edited.
type StatusScreen struct{}

func (s StatusScreen) Render(d Display, r Readings) error {
	candidate := "    "
	if r.EditMode {
		candidate = fmt.Sprintf("%.1f ", r.Candidate)
	}

	placements := []placement{
		{0, 0, fmt.Sprintf("TEMP: %.1f   ", r.Temperature)},
		{0, 1, fmt.Sprintf("PWM: %d%%   ", r.Duty)},
		{valueColumn, 0, fmt.Sprintf("%.1f   ", r.SetPoint)},
		{valueColumn, 1, candidate},
	}

	for _, p := range placements {
		if err := d.SetCursor(p.col, p.row); err != nil {
			return err
		}
		if err := d.WriteString(p.text); err != nil {
			return err
		}
	}
	return nil
}

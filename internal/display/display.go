package display

// Display is a character display addressed by column and row
type Display interface {
	Clear() error
	SetCursor(col, row int) error
	WriteString(s string) error

	Columns() int
	Rows() int
}

// RowOffsets are the DDRAM start addresses of the rows of a HD44780 display
var RowOffsets = [4]int{0x00, 0x40, 0x14, 0x54}

// ClampRow limits row to the rows of a display the same way the controller
// firmware does: only rows beyond the row count are moved to the last row,
// row == rows is passed through.
func ClampRow(row int, rows int) int {
	if row > rows {
		return rows - 1
	}
	return row
}

// rowOffset returns the DDRAM address of row, rows outside of the offset table
// are mapped to its last entry
func rowOffset(row int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(RowOffsets) {
		row = len(RowOffsets) - 1
	}
	return RowOffsets[row]
}

// Mirror forwards every call to all of its displays and returns the first error
type Mirror struct {
	displays []Display
}

func NewMirror(displays ...Display) *Mirror {
	return &Mirror{displays: displays}
}

func (m *Mirror) each(f func(d Display) error) error {
	var result error
	for _, d := range m.displays {
		if err := f(d); err != nil && result == nil {
			result = err
		}
	}
	return result
}

func (m *Mirror) Clear() error {
	return m.each(func(d Display) error { return d.Clear() })
}

func (m *Mirror) SetCursor(col, row int) error {
	return m.each(func(d Display) error { return d.SetCursor(col, row) })
}

func (m *Mirror) WriteString(s string) error {
	return m.each(func(d Display) error { return d.WriteString(s) })
}

func (m *Mirror) Columns() int {
	if len(m.displays) == 0 {
		return 0
	}
	return m.displays[0].Columns()
}

func (m *Mirror) Rows() int {
	if len(m.displays) == 0 {
		return 0
	}
	return m.displays[0].Rows()
}

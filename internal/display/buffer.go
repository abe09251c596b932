package display

import (
	"strings"
	"sync"
)

// TextBuffer is an in-memory Display. Characters written past the last
// column or to a row that does not exist are dropped.
type TextBuffer struct {
	columns int
	rows    int

	mu     sync.RWMutex
	cells  [][]byte
	col    int
	row    int
	writes int
}

func NewTextBuffer(columns int, rows int) *TextBuffer {
	b := &TextBuffer{
		columns: columns,
		rows:    rows,
	}
	b.cells = make([][]byte, rows)
	b.clear()
	return b
}

func (b *TextBuffer) Columns() int {
	return b.columns
}

func (b *TextBuffer) Rows() int {
	return b.rows
}

func (b *TextBuffer) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear()
	return nil
}

func (b *TextBuffer) clear() {
	for row := range b.cells {
		b.cells[row] = []byte(strings.Repeat(" ", b.columns))
	}
	b.col = 0
	b.row = 0
}

func (b *TextBuffer) SetCursor(col, row int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.col = col
	b.row = ClampRow(row, b.rows)
	return nil
}

func (b *TextBuffer) WriteString(s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes++
	for i := 0; i < len(s); i++ {
		if b.row >= 0 && b.row < b.rows && b.col >= 0 && b.col < b.columns {
			b.cells[b.row][b.col] = s[i]
		}
		b.col++
	}
	return nil
}

// Lines returns the content of every row
func (b *TextBuffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	lines := make([]string, len(b.cells))
	for i, row := range b.cells {
		lines[i] = string(row)
	}
	return lines
}

// Writes returns the number of WriteString calls since creation
func (b *TextBuffer) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

func (b *TextBuffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

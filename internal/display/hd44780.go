package display

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// commands
const (
	lcdClearDisplay   = 0x01
	lcdReturnHome     = 0x02
	lcdEntryModeSet   = 0x04
	lcdDisplayControl = 0x08
	lcdCursorShift    = 0x10
	lcdFunctionSet    = 0x20
	lcdSetCgramAddr   = 0x40
	lcdSetDdramAddr   = 0x80
)

// flags
const (
	lcdEntryLeft           = 0x02
	lcdEntryShiftDecrement = 0x00

	lcdDisplayOn = 0x04
	lcdCursorOn  = 0x02
	lcdBlinkOn   = 0x01

	lcdDisplayMove = 0x08
	lcdMoveRight   = 0x04
	lcdMoveLeft    = 0x00

	lcd4BitMode = 0x00
	lcd2Line    = 0x08
	lcd5x8Dots  = 0x00
)

// PCF8574 backpack pins
const (
	backlightBit = 0x08
	enableBit    = 0x04
	registerBit  = 0x01
)

// Bus transfers single bytes to the I/O expander of the display
type Bus interface {
	io.ByteWriter
	io.Closer
}

// Hd44780 drives a HD44780 compatible character LCD through a PCF8574 I2C
// backpack in 4-bit mode.
type Hd44780 struct {
	bus     Bus
	columns int
	rows    int

	mu          sync.Mutex
	displayCtrl byte
	backlight   byte

	sleep func(time.Duration)
}

func NewHd44780(bus Bus, columns int, rows int) *Hd44780 {
	return &Hd44780{
		bus:     bus,
		columns: columns,
		rows:    rows,
		sleep:   time.Sleep,
	}
}

// Init runs the 4-bit initialization sequence, turns the backlight on and clears the display
func (d *Hd44780) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	steps := []struct {
		cmd   byte
		delay time.Duration
	}{
		{0x30, 5 * time.Millisecond},
		{0x30, 5 * time.Millisecond},
		{0x30, 150 * time.Microsecond},
		{0x02, 0},
		{lcdFunctionSet | lcd4BitMode | lcd2Line | lcd5x8Dots, 0},
		{lcdDisplayControl | lcdDisplayOn, 0},
		{lcdEntryModeSet | lcdEntryLeft | lcdEntryShiftDecrement, 0},
	}
	for _, step := range steps {
		if err := d.command(step.cmd); err != nil {
			return fmt.Errorf("lcd init: %w", err)
		}
		if step.delay > 0 {
			d.sleep(step.delay)
		}
	}

	d.displayCtrl = lcdDisplayOn
	d.backlight = backlightBit

	return d.clear()
}

func (d *Hd44780) Columns() int {
	return d.columns
}

func (d *Hd44780) Rows() int {
	return d.rows
}

func (d *Hd44780) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clear()
}

func (d *Hd44780) clear() error {
	err := d.command(lcdClearDisplay)
	d.sleep(2 * time.Millisecond)
	return err
}

func (d *Hd44780) Home() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.command(lcdReturnHome)
	d.sleep(2 * time.Millisecond)
	return err
}

func (d *Hd44780) SetCursor(col, row int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	row = ClampRow(row, d.rows)
	return d.command(lcdSetDdramAddr | byte(col+rowOffset(row)))
}

func (d *Hd44780) WriteChar(c byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.send(c, registerBit)
}

func (d *Hd44780) WriteString(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < len(s); i++ {
		if err := d.send(s[i], registerBit); err != nil {
			return err
		}
	}
	return nil
}

func (d *Hd44780) ShiftLeft() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.command(lcdCursorShift | lcdDisplayMove | lcdMoveLeft)
}

func (d *Hd44780) ShiftRight() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.command(lcdCursorShift | lcdDisplayMove | lcdMoveRight)
}

func (d *Hd44780) SetBacklight(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		d.backlight = backlightBit
	} else {
		d.backlight = 0
	}
	return d.expanderWrite(0)
}

func (d *Hd44780) SetDisplayOn(on bool) error {
	return d.setControlFlag(lcdDisplayOn, on)
}

func (d *Hd44780) SetCursorVisible(on bool) error {
	return d.setControlFlag(lcdCursorOn, on)
}

func (d *Hd44780) SetBlink(on bool) error {
	return d.setControlFlag(lcdBlinkOn, on)
}

func (d *Hd44780) setControlFlag(flag byte, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		d.displayCtrl |= flag
	} else {
		d.displayCtrl &^= flag
	}
	return d.command(lcdDisplayControl | d.displayCtrl)
}

// CreateCustomChar stores a 5x8 glyph in one of the 8 CGRAM slots
func (d *Hd44780) CreateCustomChar(index byte, charMap [8]byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	index &= 0x07
	if err := d.command(lcdSetCgramAddr | (index << 3)); err != nil {
		return err
	}
	for _, line := range charMap {
		if err := d.send(line, registerBit); err != nil {
			return err
		}
	}
	return nil
}

func (d *Hd44780) PrintCustomChar(index byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.send(index, registerBit)
}

func (d *Hd44780) Close() error {
	return d.bus.Close()
}

func (d *Hd44780) command(cmd byte) error {
	return d.send(cmd, 0)
}

func (d *Hd44780) send(value byte, mode byte) error {
	high := value & 0xF0
	low := (value << 4) & 0xF0
	if err := d.write4Bits(high | mode); err != nil {
		return err
	}
	return d.write4Bits(low | mode)
}

func (d *Hd44780) write4Bits(value byte) error {
	if err := d.expanderWrite(value); err != nil {
		return err
	}
	return d.pulseEnable(value)
}

func (d *Hd44780) pulseEnable(value byte) error {
	if err := d.expanderWrite(value | enableBit); err != nil {
		return err
	}
	d.sleep(2 * time.Microsecond)
	if err := d.expanderWrite(value &^ enableBit); err != nil {
		return err
	}
	d.sleep(50 * time.Microsecond)
	return nil
}

func (d *Hd44780) expanderWrite(value byte) error {
	return d.bus.WriteByte(value | d.backlight)
}

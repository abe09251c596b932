package display

import (
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var hostInit = sync.OnceValue(func() error {
	_, err := host.Init()
	return err
})

// I2cBus writes to the I/O expander of a display at a fixed address
type I2cBus struct {
	dev    *i2c.Dev
	closer io.Closer
}

// OpenI2cBus opens an I2C bus by name (f.ex. /dev/i2c-1 or 1) and
// addresses the device at address on it.
func OpenI2cBus(name string, address int) (*I2cBus, error) {
	if err := hostInit(); err != nil {
		return nil, fmt.Errorf("unable to initialize i2c drivers: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", name, err)
	}
	return NewI2cBus(bus, address), nil
}

// NewI2cBus addresses the device at address on bus. The bus is closed
// with the I2cBus if it implements io.Closer.
func NewI2cBus(bus i2c.Bus, address int) *I2cBus {
	b := &I2cBus{
		dev: &i2c.Dev{Addr: uint16(address), Bus: bus},
	}
	if closer, ok := bus.(io.Closer); ok {
		b.closer = closer
	}
	return b
}

func (b *I2cBus) WriteByte(c byte) error {
	if _, err := b.dev.Write([]byte{c}); err != nil {
		return fmt.Errorf("i2c write to 0x%02x failed: %w", b.dev.Addr, err)
	}
	return nil
}

func (b *I2cBus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

package adc

import (
	"context"
	"sync"
	"time"
)

// VirtualConverter returns a settable value, used by the simulation and in tests
type VirtualConverter struct {
	Id string

	mu      sync.Mutex
	value   uint16
	timeout bool
	err     error
	delay   time.Duration
	reads   int
}

func NewVirtualConverter(id string, value uint16) *VirtualConverter {
	return &VirtualConverter{
		Id:    id,
		value: value,
	}
}

func (c *VirtualConverter) GetId() string {
	return c.Id
}

func (c *VirtualConverter) Read(ctx context.Context) (uint16, error) {
	c.mu.Lock()
	c.reads++
	value, timeout, err, delay := c.value, c.timeout, c.err, c.delay
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	if timeout {
		return 0, ErrConversionTimeout
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (c *VirtualConverter) Set(value uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
}

// SetTimeout makes every following conversion fail with ErrConversionTimeout
func (c *VirtualConverter) SetTimeout(timeout bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
}

func (c *VirtualConverter) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// SetDelay blocks every conversion for the given duration
func (c *VirtualConverter) SetDelay(delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = delay
}

// Reads returns the number of conversions that were started
func (c *VirtualConverter) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

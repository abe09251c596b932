package actuators

import "sync"

// VirtualOutput keeps the applied values in memory
type VirtualOutput struct {
	mu      sync.Mutex
	compare int
	duty    int
	writes  int
	err     error
}

func (o *VirtualOutput) Write(compare int, duty int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.writes++
	if o.err != nil {
		return o.err
	}
	o.compare = compare
	o.duty = duty
	return nil
}

func (o *VirtualOutput) GetCompare() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.compare
}

func (o *VirtualOutput) GetDuty() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.duty
}

func (o *VirtualOutput) GetWrites() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.writes
}

// SetError makes every following write fail
func (o *VirtualOutput) SetError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
}

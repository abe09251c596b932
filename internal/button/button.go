package button

import (
	"context"
	"time"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
)

const defaultPollRate = 50 * time.Millisecond

// Button emits an event for every press
type Button interface {
	// Presses returns a channel that receives one value per press until ctx is done
	Presses(ctx context.Context) <-chan struct{}
}

func NewButton(config configuration.ButtonConfig) Button {
	if config.File == nil {
		return NoopButton{}
	}
	pollRate := config.File.PollRate
	if pollRate <= 0 {
		pollRate = defaultPollRate
	}
	return &FileButton{
		Path:     config.File.Path,
		PollRate: pollRate,
	}
}

// FileButton polls a value file, f.ex. /sys/class/gpio/gpio17/value,
// and reports a press on every change from 0 to 1.
type FileButton struct {
	Path     string
	PollRate time.Duration
}

func (b *FileButton) Presses(ctx context.Context) <-chan struct{} {
	presses := make(chan struct{})
	last := b.read()
	go func() {
		defer close(presses)

		tick := time.NewTicker(b.PollRate)
		defer tick.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				current := b.read()
				pressed := current && !last
				last = current
				if !pressed {
					continue
				}
				select {
				case presses <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return presses
}

func (b *FileButton) read() bool {
	value, err := util.ReadIntFromFile(b.Path)
	if err != nil {
		ui.Debug("Unable to read button state from %s: %v", b.Path, err)
		return false
	}
	return value != 0
}

// NoopButton never reports a press
type NoopButton struct{}

func (NoopButton) Presses(ctx context.Context) <-chan struct{} {
	presses := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(presses)
	}()
	return presses
}

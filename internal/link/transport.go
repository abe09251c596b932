package link

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"
)

// Link exchanges command frames and telemetry lines over a serial port
type Link struct {
	port io.ReadWriteCloser

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Open opens a serial port with 8N1 framing
func Open(portName string, baudRate int) (*Link, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("unable to open serial port %s: %w", portName, err)
	}
	return NewLink(port), nil
}

func NewLink(port io.ReadWriteCloser) *Link {
	return &Link{port: port}
}

// Ports lists the serial ports of this system
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// ReadFrames reads complete frames and sends them to frames until ctx is done
// or the port fails. The port is closed when ctx is done.
func (l *Link) ReadFrames(ctx context.Context, frames chan<- []byte) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = l.Close()
		case <-done:
		}
	}()

	for {
		frame := make([]byte, FrameSize)
		if _, err := io.ReadFull(l.port, frame); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("serial read: %w", err)
		}

		select {
		case frames <- frame:
		case <-ctx.Done():
			return nil
		}
	}
}

// WriteTelemetry sends a single telemetry line
func (l *Link) WriteTelemetry(t Telemetry) error {
	return l.write([]byte(FormatTelemetry(t)))
}

// Send transmits a command frame
func (l *Link) Send(tag byte, value float64) error {
	frame, err := EncodeFrame(tag, value)
	if err != nil {
		return err
	}
	return l.write(frame)
}

func (l *Link) write(data []byte) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	_, err := l.port.Write(data)
	return err
}

func (l *Link) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.port.Close()
	})
	return l.closeErr
}

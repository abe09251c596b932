package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/heat2go/internal/actuators"
	"github.com/markusressel/heat2go/internal/adc"
	"github.com/markusressel/heat2go/internal/button"
	"github.com/markusressel/heat2go/internal/control_loop"
	"github.com/markusressel/heat2go/internal/display"
	"github.com/markusressel/heat2go/internal/link"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
)

// TelemetryWriter receives one status line per tick
type TelemetryWriter interface {
	WriteTelemetry(t link.Telemetry) error
}

// Statistics are counters of a running regulator
type Statistics struct {
	Ticks             uint64 `json:"ticks"`
	DisplayRefreshes  uint64 `json:"displayRefreshes"`
	AdcTimeouts       uint64 `json:"adcTimeouts"`
	SensorErrors      uint64 `json:"sensorErrors"`
	ActuatorErrors    uint64 `json:"actuatorErrors"`
	DisplayErrors     uint64 `json:"displayErrors"`
	TelemetryErrors   uint64 `json:"telemetryErrors"`
	ReceivedFrames    uint64 `json:"receivedFrames"`
	DroppedFrames     uint64 `json:"droppedFrames"`
	ButtonPresses     uint64 `json:"buttonPresses"`
	PersistenceErrors uint64 `json:"persistenceErrors"`
}

// Status is a snapshot of the regulator after a tick or a change
type Status struct {
	Id string `json:"id"`

	Temperature    float64 `json:"temperature"`
	AvgTemperature float64 `json:"avgTemperature"`
	SetPoint       float64 `json:"setPoint"`
	Candidate      float64 `json:"candidate"`
	EditMode       bool    `json:"editMode"`

	Output      float64               `json:"output"`
	Duty        int                   `json:"duty"`
	Compare     int                   `json:"compare"`
	Kp          float64               `json:"kp"`
	Ki          float64               `json:"ki"`
	Kd          float64               `json:"kd"`
	Terms       control_loop.PidTerms `json:"terms"`
	IntegralSum float64               `json:"integralSum"`
	LastError   float64               `json:"lastError"`

	Tick             uint64    `json:"tick"`
	DisplayRefreshed bool      `json:"displayRefreshed"`
	Time             time.Time `json:"time"`
}

// Telemetry converts the status to the serial status line
func (s Status) Telemetry() link.Telemetry {
	return link.Telemetry{
		Temperature: s.Temperature,
		Duty:        s.Duty,
		SetPoint:    s.SetPoint,
		Kp:          s.Kp,
		Ki:          s.Ki,
		Kd:          s.Kd,
	}
}

type Params struct {
	Id string

	Temperature sensors.Sensor
	Setpoint    sensors.Sensor
	Loop        *control_loop.PidControlLoop
	Actuator    actuators.Actuator

	// optional
	Display     display.Display
	Indicator   button.Indicator
	Telemetry   TelemetryWriter
	Persistence persistence.Persistence

	TickRate              time.Duration
	DisplayRefreshDivider int
	TemperatureWindowSize int
}

// Regulator runs the control loop once per tick and handles the asynchronous
// inputs of the panel and the serial link.
type Regulator struct {
	id string

	temperature sensors.Sensor
	setpoint    sensors.Sensor
	actuator    actuators.Actuator
	display     display.Display
	screen      display.StatusScreen
	indicator   button.Indicator
	telemetry   TelemetryWriter
	persistence persistence.Persistence

	tickRate       time.Duration
	refreshDivider int
	windowSize     int

	mu                sync.RWMutex
	loop              *control_loop.PidControlLoop
	candidate         float64
	editMode          bool
	refreshCounter    int
	temperatureWindow *rolling.PointPolicy
	windowFilled      bool
	status            Status
	stats             Statistics

	// holds at most the latest unsaved state
	pendingState chan persistence.ControllerState

	subscribersMu sync.Mutex
	subscribers   map[int]chan Status
	nextId        int
}

func NewRegulator(params Params) *Regulator {
	indicator := params.Indicator
	if indicator == nil {
		indicator = button.NoopIndicator{}
	}
	divider := params.DisplayRefreshDivider
	if divider < 1 {
		divider = 3
	}
	windowSize := params.TemperatureWindowSize
	if windowSize < 1 {
		windowSize = 1
	}

	r := &Regulator{
		id:                params.Id,
		temperature:       params.Temperature,
		setpoint:          params.Setpoint,
		loop:              params.Loop,
		actuator:          params.Actuator,
		display:           params.Display,
		indicator:         indicator,
		telemetry:         params.Telemetry,
		persistence:       params.Persistence,
		tickRate:          params.TickRate,
		refreshDivider:    divider,
		windowSize:        windowSize,
		refreshCounter:    1,
		temperatureWindow: util.CreateRollingWindow(windowSize),
		candidate:         params.Setpoint.GetValue(),
		subscribers:       map[int]chan Status{},
		pendingState:      make(chan persistence.ControllerState, 1),
	}
	r.status = r.snapshot(0, false)
	return r
}

func (r *Regulator) GetId() string {
	return r.id
}

// RestoreState applies the persisted tunings and setpoint, if any
func (r *Regulator) RestoreState() error {
	if r.persistence == nil {
		return nil
	}
	state, err := r.persistence.LoadControllerState(r.id)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loop.SetTunings(state.Kp, state.Ki, state.Kd)
	r.loop.SetReference(state.SetPoint)
	r.status = r.snapshot(r.status.Tick, false)
	ui.Info("Restored controller state of %s: P=%.3f I=%.3f D=%.3f S=%.1f", r.id, state.Kp, state.Ki, state.Kd, state.SetPoint)
	return nil
}

// Run drives the regulator until ctx is done. It is the only consumer of
// the ticker, the button presses and the received frames.
func (r *Regulator) Run(ctx context.Context, presses <-chan struct{}, frames <-chan []byte) error {
	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Tick(ctx)
		case _, ok := <-presses:
			if !ok {
				presses = nil
				continue
			}
			r.PressButton()
		case frame, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			r.HandleFrame(frame)
		}
	}
}

// Tick samples the inputs, advances the control loop and updates the outputs
func (r *Regulator) Tick(ctx context.Context) Status {
	candidate, candidateErr := r.setpoint.Read(ctx)
	temperature, temperatureErr := r.temperature.Read(ctx)

	r.mu.Lock()

	r.stats.Ticks++
	r.countReadError(candidateErr)
	r.countReadError(temperatureErr)

	r.candidate = candidate

	output := r.loop.Calculate(temperature)
	if _, err := r.actuator.WriteDuty(util.RoundToInt(output)); err != nil {
		r.stats.ActuatorErrors++
		ui.Warning("Unable to apply duty cycle: %v", err)
	}

	r.updateTemperatureWindow(temperature)

	refreshed := false
	if r.refreshCounter%r.refreshDivider == 0 {
		r.refreshCounter = 1
		refreshed = r.refreshDisplay()
	} else {
		r.refreshCounter++
	}

	status := r.snapshot(r.stats.Ticks, refreshed)
	r.status = status
	r.mu.Unlock()

	if r.telemetry != nil {
		if err := r.telemetry.WriteTelemetry(status.Telemetry()); err != nil {
			r.mu.Lock()
			r.stats.TelemetryErrors++
			r.mu.Unlock()
			ui.Debug("Unable to send telemetry: %v", err)
		}
	}

	r.publish(status)
	return status
}

func (r *Regulator) countReadError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, adc.ErrConversionTimeout) {
		r.stats.AdcTimeouts++
		ui.Debug("%v, using last known value", err)
		return
	}
	r.stats.SensorErrors++
	ui.Warning("%v, using last known value", err)
}

func (r *Regulator) updateTemperatureWindow(temperature float64) {
	if !r.windowFilled {
		util.FillWindow(r.temperatureWindow, r.windowSize, temperature)
		r.windowFilled = true
		return
	}
	r.temperatureWindow.Append(temperature)
}

func (r *Regulator) refreshDisplay() bool {
	if r.display == nil {
		return false
	}
	r.stats.DisplayRefreshes++
	err := r.screen.Render(r.display, display.Readings{
		Temperature: r.temperature.GetValue(),
		SetPoint:    r.loop.GetSetPoint(),
		Candidate:   r.candidate,
		Duty:        r.actuator.ReadDuty(),
		EditMode:    r.editMode,
	})
	if err != nil {
		r.stats.DisplayErrors++
		ui.Warning("Unable to update display: %v", err)
	}
	return true
}

// PressButton toggles the edit mode. Leaving the edit mode commits the
// setpoint candidate to the control loop. Returns the new edit mode.
func (r *Regulator) PressButton() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.ButtonPresses++
	if !r.editMode {
		r.editMode = true
		ui.Info("Editing setpoint")
	} else {
		r.loop.SetReference(r.candidate)
		r.editMode = false
		ui.Info("Setpoint changed to %.1f", r.candidate)
		r.persist()
	}

	if err := r.indicator.Set(r.editMode); err != nil {
		ui.Warning("Unable to set edit mode indicator: %v", err)
	}

	r.changed()
	return r.editMode
}

// HandleFrame applies a command frame received over the serial link.
// Unknown frames are dropped.
func (r *Regulator) HandleFrame(frame []byte) bool {
	command, ok := link.ParseFrame(frame)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !ok {
		r.stats.DroppedFrames++
		ui.Debug("Dropping serial frame %q", string(frame))
		return false
	}

	r.stats.ReceivedFrames++
	command.Apply(r.loop)
	ui.Info("Applied serial command %s", command)
	r.persist()
	r.changed()
	return true
}

// SetReference replaces the setpoint of the control loop
func (r *Regulator) SetReference(setPoint float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loop.SetReference(setPoint)
	r.persist()
	r.changed()
}

// SetTunings replaces the gains of the control loop
func (r *Regulator) SetTunings(kp, ki, kd float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loop.SetTunings(kp, ki, kd)
	r.persist()
	r.changed()
}

func (r *Regulator) GetTunings() (kp, ki, kd float64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loop.GetTunings()
}

// Reset clears the error history of the control loop
func (r *Regulator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loop.Reset()
	r.changed()
}

func (r *Regulator) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *Regulator) Statistics() Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

// persist queues the tunings and setpoint for SaveStates, replacing an
// unsaved older state. r.mu must be held.
func (r *Regulator) persist() {
	if r.persistence == nil {
		return
	}
	kp, ki, kd := r.loop.GetTunings()
	state := persistence.ControllerState{
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		SetPoint: r.loop.GetSetPoint(),
		SavedAt:  time.Now(),
	}
	select {
	case <-r.pendingState:
	default:
	}
	// only senders hold r.mu, so there is room after draining
	r.pendingState <- state
}

// SaveStates writes queued controller states until ctx is done, then
// writes what is still pending.
func (r *Regulator) SaveStates(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return r.FlushState()
		case state := <-r.pendingState:
			if err := r.saveState(state); err != nil {
				ui.Warning("Unable to save controller state: %v", err)
			}
		}
	}
}

// FlushState writes the pending controller state, if any
func (r *Regulator) FlushState() error {
	select {
	case state := <-r.pendingState:
		return r.saveState(state)
	default:
		return nil
	}
}

func (r *Regulator) saveState(state persistence.ControllerState) error {
	err := r.persistence.SaveControllerState(r.id, state)
	if err != nil {
		r.mu.Lock()
		r.stats.PersistenceErrors++
		r.mu.Unlock()
	}
	return err
}

// changed refreshes the status after a change outside of a tick, r.mu must be held
func (r *Regulator) changed() {
	r.status = r.snapshot(r.status.Tick, false)
	r.publish(r.status)
}

func (r *Regulator) snapshot(tick uint64, refreshed bool) Status {
	kp, ki, kd := r.loop.GetTunings()
	avg := r.temperature.GetValue()
	if r.windowFilled {
		avg = util.GetWindowAvg(r.temperatureWindow)
	}
	return Status{
		Id:               r.id,
		Temperature:      r.temperature.GetValue(),
		AvgTemperature:   avg,
		SetPoint:         r.loop.GetSetPoint(),
		Candidate:        r.candidate,
		EditMode:         r.editMode,
		Output:           r.loop.GetOutput(),
		Duty:             r.actuator.ReadDuty(),
		Compare:          r.actuator.GetCompare(),
		Kp:               kp,
		Ki:               ki,
		Kd:               kd,
		Terms:            r.loop.GetTerms(),
		IntegralSum:      r.loop.GetIntegralSum(),
		LastError:        r.loop.GetLastError(),
		Tick:             tick,
		DisplayRefreshed: refreshed,
		Time:             time.Now(),
	}
}

// Subscribe returns a channel that receives every new status. Slow receivers
// miss updates. The returned function ends the subscription.
func (r *Regulator) Subscribe() (<-chan Status, func()) {
	r.subscribersMu.Lock()
	defer r.subscribersMu.Unlock()

	id := r.nextId
	r.nextId++
	ch := make(chan Status, 1)
	r.subscribers[id] = ch

	return ch, func() {
		r.subscribersMu.Lock()
		defer r.subscribersMu.Unlock()
		if _, ok := r.subscribers[id]; ok {
			delete(r.subscribers, id)
			close(ch)
		}
	}
}

func (r *Regulator) publish(status Status) {
	r.subscribersMu.Lock()
	defer r.subscribersMu.Unlock()
	for _, ch := range r.subscribers {
		select {
		case ch <- status:
		default:
		}
	}
}

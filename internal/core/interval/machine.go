package interval

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"focusroom/internal/core/model"
	"focusroom/internal/core/notify"
)

// MessageCueFailed is pushed when the completion cue cannot be played.
const MessageCueFailed = "Completion sound could not be played."

// Notifier receives user-facing messages.
type Notifier interface {
	Push(message string, severity notify.Severity) notify.ID
}

// CuePlayer plays the audible completion cue.
type CuePlayer interface {
	PlayCompletionCue() error
}

// Config contains runtime options for Machine.
type Config struct {
	// Go runs fire-and-forget work such as the completion cue. Defaults to
	// starting a goroutine.
	Go  func(func())
	Now func() time.Time
}

// Machine owns the interval timer state. All operations are serialized by a
// mutex so a tick never interleaves with a user action.
type Machine struct {
	mu       sync.Mutex
	config   model.TimerConfig
	options  Config
	state    State
	notifier Notifier
	cue      CuePlayer
	log      logrus.FieldLogger
	events   []chan Event
	closed   bool
}

// New creates a Machine in the work phase with the provided configuration.
func New(config model.TimerConfig, options Config) *Machine {
	if options.Go == nil {
		options.Go = func(fn func()) { go fn() }
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	config = config.Normalize()

	return &Machine{
		config:  config,
		options: options,
		state:   NewState(config),
		log:     logrus.StandardLogger().WithField("component", "interval"),
	}
}

// SetNotifier injects the notification sink.
func (machine *Machine) SetNotifier(notifier Notifier) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.notifier = notifier
}

// SetCuePlayer injects the completion cue player. A nil player disables the cue.
func (machine *Machine) SetCuePlayer(cue CuePlayer) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.cue = cue
}

// SetLogger replaces the logger.
func (machine *Machine) SetLogger(logger logrus.FieldLogger) {
	if logger == nil {
		return
	}
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.log = logger.WithField("component", "interval")
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than block the machine.
func (machine *Machine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed {
		close(ch)
		return ch
	}
	machine.events = append(machine.events, ch)
	return ch
}

// Snapshot returns a copy of the current state.
func (machine *Machine) Snapshot() State {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.state
}

// Config returns the active configuration.
func (machine *Machine) Config() model.TimerConfig {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.config
}

// Start activates the countdown.
func (machine *Machine) Start() {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed || machine.state.Active {
		return
	}
	next, effects := machine.state.Start()
	machine.commitLocked(EventStarted, next, effects)
}

// Pause stops the countdown.
func (machine *Machine) Pause() {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed || !machine.state.Active {
		return
	}
	next, effects := machine.state.Pause()
	machine.commitLocked(EventPaused, next, effects)
}

// Reset stops the countdown and refills the current phase.
func (machine *Machine) Reset() {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed {
		return
	}
	next, effects := machine.state.Reset(machine.config)
	machine.commitLocked(EventReset, next, effects)
}

// SelectPhase switches phase manually without counting a completion.
func (machine *Machine) SelectPhase(phase model.Phase) error {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed {
		return nil
	}
	next, effects, err := machine.state.SelectPhase(machine.config, phase)
	if err != nil {
		return err
	}
	machine.commitLocked(EventPhaseSelected, next, effects)
	return nil
}

// Tick advances the countdown by one second. It is a no-op while the timer
// is inactive or after Close.
func (machine *Machine) Tick() {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed || !machine.state.Active {
		return
	}

	previous := machine.state
	next, effects := previous.Tick(machine.config)
	if previous.Remaining > 0 {
		machine.commitLocked(EventTick, next, effects)
		return
	}

	machine.log.WithFields(logrus.Fields{
		"completed": previous.Phase,
		"next":      next.Phase,
		"count":     next.CompletedWork,
	}).Info("phase completed")
	machine.state = next
	machine.runEffectsLocked(effects)
	machine.emitLocked(Event{
		Type:      EventPhaseCompleted,
		State:     next,
		Completed: previous.Phase,
		At:        machine.options.Now(),
	})
}

// ResetProgress clears the completed work counter.
func (machine *Machine) ResetProgress() {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed {
		return
	}
	machine.commitLocked(EventProgressReset, machine.state.ResetProgress(), nil)
}

// UpdateConfig swaps durations and goal. An inactive timer is refilled only
// when the duration of its current phase changed, so a paused countdown
// survives saving unrelated preferences.
func (machine *Machine) UpdateConfig(config model.TimerConfig) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed {
		return
	}
	previous := machine.config.Seconds(machine.state.Phase)
	machine.config = config.Normalize()
	next := machine.state.WithGoal(machine.config.Goal)
	if seconds := machine.config.Seconds(next.Phase); !next.Active && seconds != previous {
		next.Remaining = seconds
	}
	machine.commitLocked(EventConfigChanged, next, nil)
}

// Close tears the machine down. Later calls are ignored and observer
// channels are closed.
func (machine *Machine) Close() {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.closed = true
	machine.state.Active = false
	events := machine.events
	machine.events = nil
	machine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (machine *Machine) commitLocked(eventType EventType, next State, effects []Effect) {
	machine.state = next
	machine.runEffectsLocked(effects)
	machine.emitLocked(Event{
		Type:  eventType,
		State: next,
		At:    machine.options.Now(),
	})
}

func (machine *Machine) runEffectsLocked(effects []Effect) {
	for _, effect := range effects {
		switch effect.Kind {
		case EffectNotify:
			if machine.notifier != nil {
				machine.notifier.Push(effect.Message, effect.Severity)
			}
		case EffectCue:
			machine.playCueLocked()
		}
	}
}

func (machine *Machine) playCueLocked() {
	cue := machine.cue
	if cue == nil {
		return
	}
	notifier := machine.notifier
	logger := machine.log
	machine.options.Go(func() {
		if err := cue.PlayCompletionCue(); err != nil {
			logger.WithError(err).Warn("completion cue failed")
			if notifier != nil {
				notifier.Push(MessageCueFailed, notify.SeverityWarning)
			}
		}
	})
}

func (machine *Machine) emitLocked(event Event) {
	for _, ch := range machine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

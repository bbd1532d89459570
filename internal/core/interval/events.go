package interval

import (
	"time"

	"focusroom/internal/core/model"
	"focusroom/internal/core/notify"
)

// EffectKind defines the side effect a transition asks for.
type EffectKind string

const (
	EffectNotify EffectKind = "notify"
	EffectCue    EffectKind = "cue"
)

// Effect is a side effect requested by a pure transition. The Machine
// executes effects; State methods never perform them.
type Effect struct {
	Kind     EffectKind
	Message  string
	Severity notify.Severity
}

func notifyEffect(severity notify.Severity, message string) Effect {
	return Effect{Kind: EffectNotify, Message: message, Severity: severity}
}

// EventType defines the type of Machine event.
type EventType string

const (
	EventStarted        EventType = "started"
	EventPaused         EventType = "paused"
	EventReset          EventType = "reset"
	EventPhaseSelected  EventType = "phase_selected"
	EventTick           EventType = "tick"
	EventPhaseCompleted EventType = "phase_completed"
	EventProgressReset  EventType = "progress_reset"
	EventConfigChanged  EventType = "config_changed"
)

// Event represents a Machine update for observers.
type Event struct {
	Type      EventType
	State     State
	Completed model.Phase
	At        time.Time
}

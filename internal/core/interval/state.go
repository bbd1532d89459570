package interval

import (
	"errors"
	"fmt"

	"focusroom/internal/core/model"
	"focusroom/internal/core/notify"
)

// ErrUnknownPhase is returned when selecting a phase that does not exist.
var ErrUnknownPhase = errors.New("unknown phase")

// Notification texts emitted by transitions.
const (
	MessageWorkComplete  = "Interval complete, time for a break."
	MessageLongBreak     = "Time for a long break. Stretch and hydrate."
	MessageBreakComplete = "Break over, back to work."
)

// State is an immutable snapshot of the interval timer. Transition methods
// return a new State together with the effects the caller must execute.
type State struct {
	Phase         model.Phase
	Remaining     int
	Active        bool
	CompletedWork int
	Goal          int
}

// NewState returns an inactive work phase with a full countdown.
func NewState(config model.TimerConfig) State {
	config = config.Normalize()
	return State{
		Phase:     model.PhaseWork,
		Remaining: config.Seconds(model.PhaseWork),
		Goal:      config.Goal,
	}
}

// Start activates the countdown. Starting an active timer does nothing.
func (state State) Start() (State, []Effect) {
	if state.Active {
		return state, nil
	}
	state.Active = true
	return state, []Effect{notifyEffect(notify.SeverityInfo, "Starting "+state.Phase.Label())}
}

// Pause stops the countdown.
func (state State) Pause() (State, []Effect) {
	state.Active = false
	return state, nil
}

// Reset stops the countdown and refills the current phase.
func (state State) Reset(config model.TimerConfig) (State, []Effect) {
	state.Active = false
	state.Remaining = config.Seconds(state.Phase)
	return state, nil
}

// SelectPhase switches to phase manually. It never counts as a completion.
func (state State) SelectPhase(config model.TimerConfig, phase model.Phase) (State, []Effect, error) {
	if !phase.Valid() {
		return state, nil, fmt.Errorf("select phase %q: %w", phase, ErrUnknownPhase)
	}
	state.Active = false
	state.Phase = phase
	state.Remaining = config.Seconds(phase)
	return state, nil, nil
}

// Tick advances the countdown by one second. A tick that finds the
// countdown at zero completes the phase and pauses the timer.
func (state State) Tick(config model.TimerConfig) (State, []Effect) {
	if !state.Active {
		return state, nil
	}
	if state.Remaining > 0 {
		state.Remaining--
		return state, nil
	}

	next, effects := state.complete(config)
	next.Active = false
	return next, effects
}

func (state State) complete(config model.TimerConfig) (State, []Effect) {
	var effects []Effect
	if state.Phase == model.PhaseWork {
		state.CompletedWork++
		effects = append(effects, notifyEffect(notify.SeveritySuccess, MessageWorkComplete))
		every := config.LongBreakEvery
		if every < 1 {
			every = 1
		}
		if state.CompletedWork%every == 0 {
			state.Phase = model.PhaseLongBreak
			effects = append(effects, notifyEffect(notify.SeverityInfo, MessageLongBreak))
		} else {
			state.Phase = model.PhaseShortBreak
		}
	} else {
		state.Phase = model.PhaseWork
		effects = append(effects, notifyEffect(notify.SeverityInfo, MessageBreakComplete))
	}
	state.Remaining = config.Seconds(state.Phase)
	effects = append(effects, Effect{Kind: EffectCue})
	return state, effects
}

// ResetProgress clears the completed work counter.
func (state State) ResetProgress() State {
	state.CompletedWork = 0
	return state
}

// WithGoal replaces the goal, clamped to at least one.
func (state State) WithGoal(goal int) State {
	state.Goal = model.ClampGoal(goal)
	return state
}

// FormatRemaining renders seconds as mm:ss.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

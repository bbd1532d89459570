package model

import "time"

// Default phase durations and counters.
const (
	DefaultWorkDuration       = 25 * time.Minute
	DefaultShortBreakDuration = 5 * time.Minute
	DefaultLongBreakDuration  = 15 * time.Minute
	DefaultGoal               = 8
	DefaultLongBreakEvery     = 4
)

// Phase identifies the interval the timer is counting down.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Valid reports whether phase is one of the known phases.
func (phase Phase) Valid() bool {
	switch phase {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
		return true
	}
	return false
}

// Label returns a human readable phase name.
func (phase Phase) Label() string {
	switch phase {
	case PhaseWork:
		return "work session"
	case PhaseShortBreak:
		return "short break"
	case PhaseLongBreak:
		return "long break"
	}
	return string(phase)
}

// TimerConfig contains runtime settings for the interval state machine.
type TimerConfig struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	// Goal is the number of work intervals aimed for per progress period.
	Goal int
	// LongBreakEvery selects a long break after every n-th completed work interval.
	LongBreakEvery int
}

// DefaultTimerConfig returns the classic 25/5/15 schedule.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Work:           DefaultWorkDuration,
		ShortBreak:     DefaultShortBreakDuration,
		LongBreak:      DefaultLongBreakDuration,
		Goal:           DefaultGoal,
		LongBreakEvery: DefaultLongBreakEvery,
	}
}

// Normalize clamps invalid values. Durations below one second fall back to
// the defaults, counters below one are raised to one.
func (config TimerConfig) Normalize() TimerConfig {
	if config.Work < time.Second {
		config.Work = DefaultWorkDuration
	}
	if config.ShortBreak < time.Second {
		config.ShortBreak = DefaultShortBreakDuration
	}
	if config.LongBreak < time.Second {
		config.LongBreak = DefaultLongBreakDuration
	}
	config.Goal = ClampGoal(config.Goal)
	if config.LongBreakEvery < 1 {
		config.LongBreakEvery = 1
	}
	return config
}

// Duration returns the configured length of phase.
func (config TimerConfig) Duration(phase Phase) time.Duration {
	switch phase {
	case PhaseShortBreak:
		return config.ShortBreak
	case PhaseLongBreak:
		return config.LongBreak
	default:
		return config.Work
	}
}

// Seconds returns the configured length of phase in whole seconds.
func (config TimerConfig) Seconds(phase Phase) int {
	return int(config.Duration(phase) / time.Second)
}

// ClampGoal raises non-positive goals to one.
func ClampGoal(goal int) int {
	if goal < 1 {
		return 1
	}
	return goal
}

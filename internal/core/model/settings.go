package model

import "time"

// Settings defines editable user preferences that survive restarts.
type Settings struct {
	Goal               int
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakEvery     int
	CueFile            string
}

// DefaultSettings returns the default preferences.
func DefaultSettings() Settings {
	return Settings{
		Goal:               DefaultGoal,
		WorkDuration:       DefaultWorkDuration,
		ShortBreakDuration: DefaultShortBreakDuration,
		LongBreakDuration:  DefaultLongBreakDuration,
		LongBreakEvery:     DefaultLongBreakEvery,
	}
}

// TimerConfig converts settings to a normalized TimerConfig.
func (settings Settings) TimerConfig() TimerConfig {
	return TimerConfig{
		Work:           settings.WorkDuration,
		ShortBreak:     settings.ShortBreakDuration,
		LongBreak:      settings.LongBreakDuration,
		Goal:           settings.Goal,
		LongBreakEvery: settings.LongBreakEvery,
	}.Normalize()
}

package model

import (
	"testing"
	"time"
)

func TestDurationLookup(t *testing.T) {
	config := DefaultTimerConfig()
	tests := map[Phase]time.Duration{
		PhaseWork:       25 * time.Minute,
		PhaseShortBreak: 5 * time.Minute,
		PhaseLongBreak:  15 * time.Minute,
	}
	for phase, want := range tests {
		if got := config.Duration(phase); got != want {
			t.Fatalf("Duration(%s) = %s, want %s", phase, got, want)
		}
		if got := config.Seconds(phase); got != int(want/time.Second) {
			t.Fatalf("Seconds(%s) = %d", phase, got)
		}
	}
}

func TestNormalizeClampsInvalidValues(t *testing.T) {
	config := TimerConfig{Work: -time.Minute, ShortBreak: 0, LongBreak: time.Millisecond, Goal: 0, LongBreakEvery: -2}.Normalize()
	want := TimerConfig{
		Work:           DefaultWorkDuration,
		ShortBreak:     DefaultShortBreakDuration,
		LongBreak:      DefaultLongBreakDuration,
		Goal:           1,
		LongBreakEvery: 1,
	}
	if config != want {
		t.Fatalf("unexpected config: %#v", config)
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	config := TimerConfig{Work: 50 * time.Minute, ShortBreak: 10 * time.Minute, LongBreak: 30 * time.Minute, Goal: 6, LongBreakEvery: 3}
	if got := config.Normalize(); got != config {
		t.Fatalf("valid config changed: %#v", got)
	}
}

func TestPhaseValid(t *testing.T) {
	for _, phase := range []Phase{PhaseWork, PhaseShortBreak, PhaseLongBreak} {
		if !phase.Valid() {
			t.Fatalf("%s should be valid", phase)
		}
	}
	if Phase("nap").Valid() {
		t.Fatal("unknown phase reported valid")
	}
}

func TestSettingsTimerConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.Goal = -1
	settings.WorkDuration = 45 * time.Minute
	config := settings.TimerConfig()
	if config.Goal != 1 || config.Work != 45*time.Minute || config.LongBreakEvery != DefaultLongBreakEvery {
		t.Fatalf("unexpected config: %#v", config)
	}
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{name: "no due date", task: Task{}, want: false},
		{name: "past due", task: Task{DueDate: &yesterday}, want: true},
		{name: "done", task: Task{Completed: true, DueDate: &yesterday}, want: false},
	}
	for _, tc := range tests {
		if got := tc.task.Overdue(now); got != tc.want {
			t.Fatalf("%s: Overdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

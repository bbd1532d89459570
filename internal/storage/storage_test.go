package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"focusroom/internal/core/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(t.TempDir())
	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings != model.DefaultSettings() {
		t.Fatalf("expected defaults, got %#v", settings)
	}
}

func TestSaveThenLoadSettings(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested"))
	want := model.Settings{
		Goal:               6,
		WorkDuration:       50 * time.Minute,
		ShortBreakDuration: 10 * time.Minute,
		LongBreakDuration:  30 * time.Minute,
		LongBreakEvery:     3,
		CueFile:            "/tmp/bell.ogg",
	}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestLoadSettingsClampsGoalAndKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, settingsFileName, "goal_intervals: -4\nwork_minutes: 0\nshort_break_minutes: 7\n")

	settings, err := NewStore(dir).LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.Goal != 1 {
		t.Fatalf("expected goal clamped to 1, got %d", settings.Goal)
	}
	if settings.WorkDuration != model.DefaultWorkDuration || settings.ShortBreakDuration != 7*time.Minute {
		t.Fatalf("unexpected durations: %#v", settings)
	}
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, settingsFileName, "goal_intervals: [unterminated\n")

	settings, err := NewStore(dir).LoadSettings()
	if err == nil || !strings.Contains(err.Error(), "parse settings yaml") {
		t.Fatalf("expected parse error, got %v", err)
	}
	if settings != model.DefaultSettings() {
		t.Fatalf("expected defaults alongside the error, got %#v", settings)
	}
}

func TestLoadTasks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, tasksFileName, `tasks:
  - id: 7
    text: Finish the lab
    completed: false
    priority: HIGH
    category: frontend
    due_date: 2024-05-02T10:00:00Z
  - text: Review docs
    completed: true
`)

	tasks, err := NewStore(dir).LoadTasks()
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	first, second := tasks[0], tasks[1]
	if first.ID != 7 || first.Priority != model.PriorityHigh || first.Category != "frontend" || first.DueDate == nil {
		t.Fatalf("unexpected first task: %#v", first)
	}
	if !first.DueDate.Equal(time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected due date: %s", first.DueDate)
	}
	if second.ID != 2 || !second.IsCompleted() || second.Priority != model.PriorityMedium || second.Category != "other" {
		t.Fatalf("unexpected second task: %#v", second)
	}
}

func TestLoadTasksMissingFile(t *testing.T) {
	tasks, err := NewStore(t.TempDir()).LoadTasks()
	if err != nil || len(tasks) != 0 {
		t.Fatalf("expected empty list, got %v %v", tasks, err)
	}
}

func TestSaveTasksWritesLoadableFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewStore(dir)
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	err := store.SaveTasks([]model.Task{
		{ID: 3, Text: "ship release", Completed: true, Priority: model.PriorityHigh, Category: "work", DueDate: &due},
		{ID: 4, Text: "water plants", Priority: model.PriorityLow, Category: "home"},
	})
	if err != nil {
		t.Fatalf("save tasks: %v", err)
	}

	tasks, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if !tasks[0].Completed || tasks[0].ID != 3 || tasks[0].DueDate == nil || !tasks[0].DueDate.Equal(due) {
		t.Fatalf("unexpected first task: %#v", tasks[0])
	}
	if tasks[1].Completed || tasks[1].Priority != model.PriorityLow || tasks[1].Category != "home" {
		t.Fatalf("unexpected second task: %#v", tasks[1])
	}
}

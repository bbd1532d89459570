package tasks

import (
	"errors"
	"testing"
	"time"

	"focusroom/internal/core/model"
)

type recordingSaver struct {
	saved [][]model.Task
	err   error
}

func (s *recordingSaver) SaveTasks(tasks []model.Task) error {
	s.saved = append(s.saved, tasks)
	return s.err
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
}

func TestAddAssignsIDsAndDefaults(t *testing.T) {
	saver := &recordingSaver{}
	list := New([]model.Task{{ID: 7, Text: "existing"}}, Config{Saver: saver, Now: fixedNow})

	task, err := list.Add("  write report ", "", "", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.ID != 8 || task.Text != "write report" {
		t.Fatalf("unexpected task: %#v", task)
	}
	if task.Priority != model.PriorityMedium || task.Category != DefaultCategory {
		t.Fatalf("expected defaults, got %s/%s", task.Priority, task.Category)
	}
	if !task.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected created at %s", task.CreatedAt)
	}
	if len(saver.saved) != 1 || len(saver.saved[0]) != 2 {
		t.Fatalf("expected one save of two tasks, got %v", saver.saved)
	}
}

func TestAddRejectsEmptyText(t *testing.T) {
	list := New(nil, Config{})
	if _, err := list.Add("   ", model.PriorityHigh, "work", nil); !errors.Is(err, ErrEmptyTask) {
		t.Fatalf("expected ErrEmptyTask, got %v", err)
	}
	if len(list.Snapshot()) != 0 {
		t.Fatal("empty task must not be added")
	}
}

func TestToggleFlipsCompletionAndNotifies(t *testing.T) {
	saver := &recordingSaver{}
	list := New([]model.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}, Config{Saver: saver})
	changes := 0
	list.OnChange(func() {
		changes++
		_ = list.Snapshot()
	})

	task, err := list.Toggle(2)
	if err != nil || !task.Completed {
		t.Fatalf("expected completed task, got %#v, %v", task, err)
	}
	if !list.Snapshot()[1].Completed {
		t.Fatal("snapshot should reflect the toggle")
	}

	task, _ = list.Toggle(2)
	if task.Completed {
		t.Fatal("second toggle should reopen the task")
	}
	if changes != 2 || len(saver.saved) != 2 {
		t.Fatalf("expected 2 changes and saves, got %d and %d", changes, len(saver.saved))
	}
}

func TestUnknownIDIsReported(t *testing.T) {
	list := New([]model.Task{{ID: 1, Text: "a"}}, Config{})
	changes := 0
	list.OnChange(func() { changes++ })

	if _, err := list.Toggle(9); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound from toggle, got %v", err)
	}
	if err := list.Delete(9); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound from delete, got %v", err)
	}
	if changes != 0 {
		t.Fatalf("failed operations must not notify, got %d", changes)
	}
}

func TestDeleteRemovesTask(t *testing.T) {
	list := New([]model.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}, Config{})
	if err := list.Delete(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snapshot := list.Snapshot()
	if len(snapshot) != 1 || snapshot[0].ID != 2 {
		t.Fatalf("unexpected tasks after delete: %#v", snapshot)
	}
}

func TestSaveFailureKeepsChange(t *testing.T) {
	failure := errors.New("disk full")
	list := New([]model.Task{{ID: 1, Text: "a"}}, Config{Saver: &recordingSaver{err: failure}})

	_, err := list.Toggle(1)
	if !errors.Is(err, failure) {
		t.Fatalf("expected save error, got %v", err)
	}
	if !list.Snapshot()[0].Completed {
		t.Fatal("change should stay in memory after a failed save")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	list := New([]model.Task{{ID: 1, Text: "a"}}, Config{})
	snapshot := list.Snapshot()
	snapshot[0].Completed = true
	if list.Snapshot()[0].Completed {
		t.Fatal("snapshot mutation leaked into the list")
	}
}

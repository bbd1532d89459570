// Package tasks keeps the editable task list the dashboard shows next to the
// timer. Every change is written through to the configured Saver.
package tasks

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"focusroom/internal/core/model"
)

var (
	// ErrTaskNotFound is returned for operations on an unknown task ID.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmptyTask is returned when adding a task without text.
	ErrEmptyTask = errors.New("task text is empty")
)

// DefaultCategory is used for tasks added without a category.
const DefaultCategory = "other"

// Saver persists the full task list.
type Saver interface {
	SaveTasks(tasks []model.Task) error
}

// Config contains runtime options for List.
type Config struct {
	Saver Saver
	Now   func() time.Time
}

// List is a mutex-guarded task collection. A failed save keeps the change in
// memory and is reported to the caller.
type List struct {
	mu       sync.Mutex
	tasks    []model.Task
	nextID   int64
	options  Config
	onChange func()
}

// New creates a List seeded with tasks.
func New(tasks []model.Task, options Config) *List {
	if options.Now == nil {
		options.Now = time.Now
	}
	list := &List{
		tasks:   slices.Clone(tasks),
		options: options,
	}
	for _, task := range tasks {
		list.nextID = max(list.nextID, task.ID)
	}
	return list
}

// OnChange registers a callback invoked after every successful mutation. It
// runs outside the list lock.
func (list *List) OnChange(fn func()) {
	list.mu.Lock()
	defer list.mu.Unlock()
	list.onChange = fn
}

// Snapshot returns a copy of the tasks in insertion order.
func (list *List) Snapshot() []model.Task {
	list.mu.Lock()
	defer list.mu.Unlock()
	return slices.Clone(list.tasks)
}

// Add appends an open task.
func (list *List) Add(text string, priority model.Priority, category string, due *time.Time) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyTask
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	if priority == "" {
		priority = model.PriorityMedium
	}

	list.mu.Lock()
	list.nextID++
	task := model.Task{
		ID:        list.nextID,
		Text:      text,
		Priority:  priority,
		Category:  category,
		CreatedAt: list.options.Now(),
		DueDate:   due,
	}
	list.tasks = append(list.tasks, task)
	return task, list.commitLocked("add")
}

// Toggle flips the completion flag of the task with id and returns the
// updated task.
func (list *List) Toggle(id int64) (model.Task, error) {
	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return model.Task{}, fmt.Errorf("toggle %d: %w", id, ErrTaskNotFound)
	}
	list.tasks[index].Completed = !list.tasks[index].Completed
	task := list.tasks[index]
	return task, list.commitLocked("toggle")
}

// Delete removes the task with id.
func (list *List) Delete(id int64) error {
	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return fmt.Errorf("delete %d: %w", id, ErrTaskNotFound)
	}
	list.tasks = slices.Delete(list.tasks, index, index+1)
	return list.commitLocked("delete")
}

func (list *List) indexLocked(id int64) int {
	return slices.IndexFunc(list.tasks, func(task model.Task) bool {
		return task.ID == id
	})
}

// commitLocked saves the list, releases the lock and notifies the change
// callback. The in-memory change stands even when saving fails.
func (list *List) commitLocked(op string) error {
	var err error
	if list.options.Saver != nil {
		if saveErr := list.options.Saver.SaveTasks(slices.Clone(list.tasks)); saveErr != nil {
			err = fmt.Errorf("%s task: %w", op, saveErr)
		}
	}
	onChange := list.onChange
	list.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return err
}

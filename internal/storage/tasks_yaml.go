package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"focusroom/internal/core/model"
)

type yamlTask struct {
	ID        int64      `yaml:"id"`
	Text      string     `yaml:"text"`
	Completed bool       `yaml:"completed"`
	Priority  string     `yaml:"priority,omitempty"`
	Category  string     `yaml:"category,omitempty"`
	CreatedAt time.Time  `yaml:"created_at,omitempty"`
	DueDate   *time.Time `yaml:"due_date,omitempty"`
}

type yamlTaskFile struct {
	Tasks []yamlTask `yaml:"tasks"`
}

// LoadTasks reads the task list. A missing file is an empty list.
func (store *Store) LoadTasks() ([]model.Task, error) {
	rawData, err := os.ReadFile(store.path(tasksFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var fileData yamlTaskFile
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse tasks yaml: %w", err)
	}

	tasks := make([]model.Task, 0, len(fileData.Tasks))
	for i, entry := range fileData.Tasks {
		id := entry.ID
		if id == 0 {
			id = int64(i + 1)
		}
		category := strings.TrimSpace(entry.Category)
		if category == "" {
			category = "other"
		}
		tasks = append(tasks, model.Task{
			ID:        id,
			Text:      entry.Text,
			Completed: entry.Completed,
			Priority:  parsePriority(entry.Priority),
			Category:  category,
			CreatedAt: entry.CreatedAt,
			DueDate:   entry.DueDate,
		})
	}
	return tasks, nil
}

func parsePriority(value string) model.Priority {
	switch model.Priority(strings.ToLower(strings.TrimSpace(value))) {
	case model.PriorityLow:
		return model.PriorityLow
	case model.PriorityHigh:
		return model.PriorityHigh
	default:
		return model.PriorityMedium
	}
}

// SaveTasks writes the full task list.
func (store *Store) SaveTasks(tasks []model.Task) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlTaskFile{Tasks: make([]yamlTask, 0, len(tasks))}
	for _, task := range tasks {
		fileData.Tasks = append(fileData.Tasks, yamlTask{
			ID:        task.ID,
			Text:      task.Text,
			Completed: task.Completed,
			Priority:  string(task.Priority),
			Category:  task.Category,
			CreatedAt: task.CreatedAt,
			DueDate:   task.DueDate,
		})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal tasks yaml: %w", err)
	}

	if err := os.WriteFile(store.path(tasksFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}

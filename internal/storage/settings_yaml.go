package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"focusroom/internal/core/model"
)

const (
	settingsFileName = "settings.yaml"
	tasksFileName    = "tasks.yaml"
)

// Store reads and writes user files in a single directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore returns a Store under the OS configuration directory.
func DefaultStore(appName string) (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return NewStore(filepath.Join(configDir, appName)), nil
}

// Dir returns the directory the store uses.
func (store *Store) Dir() string {
	return store.dir
}

type yamlSettings struct {
	GoalIntervals     int    `yaml:"goal_intervals"`
	WorkMinutes       int    `yaml:"work_minutes"`
	ShortBreakMinutes int    `yaml:"short_break_minutes"`
	LongBreakMinutes  int    `yaml:"long_break_minutes"`
	LongBreakEvery    int    `yaml:"long_break_every"`
	CompletionCueFile string `yaml:"completion_cue_file,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the settings file does not exist, default settings are returned.
func (store *Store) LoadSettings() (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(store.path(settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func (store *Store) SaveSettings(settings model.Settings) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		GoalIntervals:     model.ClampGoal(settings.Goal),
		WorkMinutes:       int(settings.WorkDuration / time.Minute),
		ShortBreakMinutes: int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:  int(settings.LongBreakDuration / time.Minute),
		LongBreakEvery:    settings.LongBreakEvery,
		CompletionCueFile: settings.CueFile,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path(settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func (store *Store) path(name string) string {
	return filepath.Join(store.dir, name)
}

// applyYamlSettings keeps defaults for missing or non-positive values; a
// goal written as zero or less is clamped to one.
func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.GoalIntervals != 0 {
		settings.Goal = model.ClampGoal(fileData.GoalIntervals)
	}
	if fileData.WorkMinutes > 0 {
		settings.WorkDuration = time.Duration(fileData.WorkMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.LongBreakEvery > 0 {
		settings.LongBreakEvery = fileData.LongBreakEvery
	}
	settings.CueFile = strings.TrimSpace(fileData.CompletionCueFile)
}

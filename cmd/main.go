package main

import (
	"context"
	"errors"
	"time"

	"focusroom/internal/audio"
	"focusroom/internal/config"
	"focusroom/internal/core/clock"
	"focusroom/internal/core/interval"
	"focusroom/internal/core/model"
	"focusroom/internal/core/notify"
	"focusroom/internal/core/progress"
	"focusroom/internal/logger"
	"focusroom/internal/platform"
	"focusroom/internal/scheduler"
	"focusroom/internal/storage"
	"focusroom/internal/tasks"
	"focusroom/internal/ui/dashboard"
	"focusroom/internal/ui/preferences"
	"focusroom/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
)

const (
	appID                   = "com.focusroom.app"
	messageSettingsFallback = "Settings could not be loaded, using defaults."
	messageTasksUnavailable = "Task list could not be loaded."
	messageSettingsNotSaved = "Settings could not be saved."
	messageTasksNotSaved    = "Task list could not be saved."
	messageTaskAdded        = "Task added."
	messageTaskCompleted    = "Task completed, well done."
	messageTaskRemoved      = "Task removed."
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log := logger.New(cfg)

	guard, err := platform.AcquireSession(cfg.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrSessionActive) {
			log.WithError(err).Warn("Another dashboard is already running")
			return
		}
		log.WithError(err).Fatal("Failed to acquire session")
	}
	defer func() {
		_ = guard.Release()
	}()

	bus := notify.New(notify.Config{TTL: cfg.NotificationTTL})
	bus.SetLogger(log)

	store, err := storage.DefaultStore(cfg.AppName)
	if err != nil {
		log.WithError(err).Error("No configuration directory, settings stay in memory")
		bus.Push(messageSettingsFallback, notify.SeverityError)
	}
	settings, loadedTasks, tasksLoaded := loadUserData(store, log, bus)

	// An unreadable task file is left untouched; edits then stay in memory.
	taskConfig := tasks.Config{}
	if store != nil && tasksLoaded {
		taskConfig.Saver = store
	}
	taskList := tasks.New(loadedTasks, taskConfig)
	taskFailed := func(err error) {
		log.WithError(err).Error("Task update failed")
		if errors.Is(err, tasks.ErrTaskNotFound) || errors.Is(err, tasks.ErrEmptyTask) {
			return
		}
		bus.Push(messageTasksNotSaved, notify.SeverityError)
	}

	machine := interval.New(settings.TimerConfig(), interval.Config{})
	machine.SetNotifier(bus)
	machine.SetLogger(log)
	if settings.CueFile != "" {
		machine.SetCuePlayer(audio.Load(settings.CueFile, log))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := clock.New(cfg.TickInterval, machine.Tick)
	ticker.Start(ctx)

	var resetScheduler *scheduler.ProgressScheduler
	if cfg.ProgressResetEnabled() {
		resetScheduler = scheduler.NewProgressScheduler(machine, bus, log, cfg.ProgressResetCron)
		if err := resetScheduler.Start(); err != nil {
			log.WithError(err).Error("Progress reset disabled")
			resetScheduler = nil
		}
	}

	selectPhase := func(phase model.Phase) {
		if err := machine.SelectPhase(phase); err != nil {
			log.WithError(err).Warn("Phase selection rejected")
		}
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())

	dash := dashboard.New(fyneApp, cfg.AppName, dashboard.Controls{
		OnStart:       machine.Start,
		OnPause:       machine.Pause,
		OnReset:       machine.Reset,
		OnSelectPhase: selectPhase,
		OnDismiss:     bus.Dismiss,
		OnAddTask: func(text string, priority model.Priority, category string) {
			if _, err := taskList.Add(text, priority, category, nil); err != nil {
				taskFailed(err)
				return
			}
			bus.Push(messageTaskAdded, notify.SeveritySuccess)
		},
		OnToggleTask: func(id int64) {
			task, err := taskList.Toggle(id)
			if err != nil {
				taskFailed(err)
				return
			}
			if task.Completed {
				bus.Push(messageTaskCompleted, notify.SeveritySuccess)
			}
		},
		OnDeleteTask: func(id int64) {
			if err := taskList.Delete(id); err != nil {
				taskFailed(err)
				return
			}
			bus.Push(messageTaskRemoved, notify.SeverityInfo)
		},
	})

	prefsWindow := preferences.New(fyneApp, cfg.AppName, settings, func(updated model.Settings) {
		if updated.CueFile != settings.CueFile {
			if updated.CueFile == "" {
				machine.SetCuePlayer(nil)
			} else {
				machine.SetCuePlayer(audio.Load(updated.CueFile, log))
			}
		}
		settings = updated
		machine.UpdateConfig(settings.TimerConfig())
		saveSettings(store, settings, log, bus)
	})

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, cfg.AppName, tray.Callbacks{
			OnShow:        dash.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle: func() {
				if machine.Snapshot().Active {
					machine.Pause()
				} else {
					machine.Start()
				}
			},
			OnReset:       machine.Reset,
			OnSelectPhase: selectPhase,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.MediaPauseIcon())
	} else {
		log.Info("system tray unsupported, closing the dashboard quits")
		dash.SetOnClose(fyneApp.Quit)
	}

	render := func() {
		snapshot := machine.Snapshot()
		currentTasks := taskList.Snapshot()
		dash.Render(dashboard.View{
			Timer:         snapshot,
			Progress:      progress.Summarize(currentTasks, snapshot),
			Notifications: bus.List(),
			Tasks:         currentTasks,
			Now:           time.Now(),
		})
		if trayManager == nil {
			return
		}
		fyne.Do(func() {
			trayManager.SetStatus(snapshot.Phase.Label() + " " + interval.FormatRemaining(snapshot.Remaining))
			if trayManager.Active() != snapshot.Active {
				trayManager.SetActive(snapshot.Active)
				if snapshot.Active {
					desktopApp.SetSystemTrayIcon(theme.MediaPlayIcon())
				} else {
					desktopApp.SetSystemTrayIcon(theme.MediaPauseIcon())
				}
			}
		})
	}

	// Machine and bus callbacks may run under their own locks, so rendering
	// happens on a separate goroutine and requests are coalesced.
	refresh := make(chan struct{}, 1)
	requestRender := func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-refresh:
				render()
			}
		}
	}()

	events := machine.Subscribe(8)
	go func() {
		for range events {
			requestRender()
		}
	}()
	bus.OnChange(requestRender)
	taskList.OnChange(requestRender)

	fyneApp.Lifecycle().SetOnStopped(func() {
		ticker.Stop()
		if resetScheduler != nil {
			resetScheduler.Stop()
		}
		machine.Close()
		bus.Close()
		cancel()
	})

	requestRender()
	dash.Show()
	fyneApp.Run()
	log.Info("shutdown complete")
}

// loadUserData reads persisted settings and tasks. Failures fall back to
// defaults and surface as error notifications. The last result reports
// whether the task file was read successfully.
func loadUserData(store *storage.Store, log logrus.FieldLogger, bus *notify.Bus) (model.Settings, []model.Task, bool) {
	if store == nil {
		return model.DefaultSettings(), nil, false
	}

	settings, err := store.LoadSettings()
	if err != nil {
		log.WithError(err).WithField("dir", store.Dir()).Error("Failed to load settings")
		bus.Push(messageSettingsFallback, notify.SeverityError)
		settings = model.DefaultSettings()
	}

	loaded, err := store.LoadTasks()
	tasksLoaded := err == nil
	if err != nil {
		log.WithError(err).WithField("dir", store.Dir()).Error("Failed to load tasks")
		bus.Push(messageTasksUnavailable, notify.SeverityError)
		loaded = nil
	}

	log.WithFields(logrus.Fields{
		"goal":  settings.Goal,
		"work":  settings.WorkDuration,
		"tasks": len(loaded),
	}).Info("user data loaded")
	return settings, loaded, tasksLoaded
}

func saveSettings(store *storage.Store, settings model.Settings, log logrus.FieldLogger, bus *notify.Bus) {
	if store == nil {
		bus.Push(messageSettingsNotSaved, notify.SeverityError)
		return
	}
	if err := store.SaveSettings(settings); err != nil {
		log.WithError(err).Error("Failed to save settings")
		bus.Push(messageSettingsNotSaved, notify.SeverityError)
		return
	}
	log.WithField("dir", store.Dir()).Info("settings saved")
}

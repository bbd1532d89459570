package dashboard

import (
	"fmt"
	"image/color"
	"slices"
	"strings"
	"time"

	"focusroom/internal/core/interval"
	"focusroom/internal/core/model"
	"focusroom/internal/core/notify"
	"focusroom/internal/core/progress"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Controls defines dashboard action handlers.
type Controls struct {
	OnStart       func()
	OnPause       func()
	OnReset       func()
	OnSelectPhase func(model.Phase)
	OnDismiss     func(notify.ID)
	OnAddTask     func(text string, priority model.Priority, category string)
	OnToggleTask  func(id int64)
	OnDeleteTask  func(id int64)
}

// View is everything the dashboard renders.
type View struct {
	Timer         interval.State
	Progress      progress.Summary
	Notifications []notify.Notification
	Tasks         []model.Task
	Now           time.Time
}

// Window manages the dashboard UI.
type Window struct {
	window        fyne.Window
	controls      Controls
	phaseLabel    *canvas.Text
	timerLabel    *canvas.Text
	startButton   *widget.Button
	pauseButton   *widget.Button
	taskBar       *widget.ProgressBar
	taskLabel     *widget.Label
	intervalBar   *widget.ProgressBar
	intervalLabel *widget.Label
	toasts        *fyne.Container
	taskRows      *fyne.Container
	taskEntry     *widget.Entry
	taskCategory  *widget.Entry
	taskPriority  *widget.Select
	shownTasks    []model.Task
	shownAt       time.Time
}

var (
	timerColor   = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	textColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	overdueColor = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
)

var priorityOptions = []string{
	string(model.PriorityLow),
	string(model.PriorityMedium),
	string(model.PriorityHigh),
}

// New creates the dashboard window.
func New(app fyne.App, title string, controls Controls) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	phaseLabel := canvas.NewText("", textColor)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 18

	timerLabel := canvas.NewText("--:--", timerColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 56

	dash := &Window{
		window:        window,
		controls:      controls,
		phaseLabel:    phaseLabel,
		timerLabel:    timerLabel,
		taskBar:       widget.NewProgressBar(),
		taskLabel:     widget.NewLabel(""),
		intervalBar:   widget.NewProgressBar(),
		intervalLabel: widget.NewLabel(""),
		toasts:        container.NewVBox(),
		taskRows:      container.NewVBox(),
		taskEntry:     widget.NewEntry(),
		taskCategory:  widget.NewEntry(),
		taskPriority:  widget.NewSelect(priorityOptions, nil),
	}
	dash.taskEntry.SetPlaceHolder("New task")
	dash.taskEntry.OnSubmitted = func(string) { dash.submitTask() }
	dash.taskCategory.SetPlaceHolder("Category")
	dash.taskPriority.SetSelected(string(model.PriorityMedium))

	dash.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if dash.controls.OnStart != nil {
			dash.controls.OnStart()
		}
	})
	dash.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		if dash.controls.OnPause != nil {
			dash.controls.OnPause()
		}
	})
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if dash.controls.OnReset != nil {
			dash.controls.OnReset()
		}
	})

	phases := container.NewGridWithColumns(3,
		dash.phaseButton("Work", model.PhaseWork),
		dash.phaseButton("Short break", model.PhaseShortBreak),
		dash.phaseButton("Long break", model.PhaseLongBreak),
	)

	timerCard := widget.NewCard("Focus timer", "", container.NewVBox(
		phases,
		phaseLabel,
		timerLabel,
		container.NewGridWithColumns(3, dash.startButton, dash.pauseButton, resetButton),
	))
	progressCard := widget.NewCard("Progress", "", container.NewVBox(
		dash.taskLabel, dash.taskBar,
		dash.intervalLabel, dash.intervalBar,
	))

	addButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), dash.submitTask)
	taskCard := widget.NewCard("Tasks", "", container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, nil, addButton, dash.taskEntry),
			container.NewGridWithColumns(2, dash.taskPriority, dash.taskCategory),
		),
		nil, nil, nil,
		container.NewVScroll(dash.taskRows),
	))

	top := container.NewVBox(timerCard, progressCard)
	content := container.NewBorder(top, dash.toasts, nil, nil, taskCard)
	window.SetContent(content)
	window.Resize(fyne.NewSize(440, 780))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return dash
}

// Show displays the dashboard.
func (dash *Window) Show() {
	dash.window.Show()
	dash.window.RequestFocus()
}

// SetOnClose replaces the default close behaviour, which hides the window.
func (dash *Window) SetOnClose(fn func()) {
	dash.window.SetCloseIntercept(fn)
}

// Render refreshes all widgets from view. It hops onto the UI goroutine.
func (dash *Window) Render(view View) {
	fyne.Do(func() {
		dash.renderUnsafe(view)
	})
}

func (dash *Window) renderUnsafe(view View) {
	dash.phaseLabel.Text = phaseTitle(view.Timer)
	dash.phaseLabel.Refresh()
	dash.timerLabel.Text = interval.FormatRemaining(view.Timer.Remaining)
	dash.timerLabel.Refresh()

	if view.Timer.Active {
		dash.startButton.Disable()
		dash.pauseButton.Enable()
	} else {
		dash.startButton.Enable()
		dash.pauseButton.Disable()
	}

	summary := view.Progress
	dash.taskLabel.SetText(fmt.Sprintf("%d of %d tasks done (%d%%)", summary.TasksCompleted, summary.TasksTotal, summary.TaskPercent))
	dash.taskBar.SetValue(float64(summary.TaskPercent) / 100)
	dash.intervalLabel.SetText(fmt.Sprintf("%d of %d intervals (%d%%)", summary.IntervalsCompleted, summary.IntervalsGoal, summary.IntervalPercent))
	dash.intervalBar.SetValue(float64(summary.IntervalPercent) / 100)

	dash.toasts.Objects = dash.toastObjects(view.Notifications)
	dash.toasts.Refresh()

	now := view.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.Truncate(time.Minute)
	if !now.Equal(dash.shownAt) || !slices.EqualFunc(view.Tasks, dash.shownTasks, sameTask) {
		dash.shownTasks = slices.Clone(view.Tasks)
		dash.shownAt = now
		dash.taskRows.Objects = dash.taskObjects(view.Tasks, now)
		dash.taskRows.Refresh()
	}
}

func (dash *Window) submitTask() {
	if dash.controls.OnAddTask == nil || strings.TrimSpace(dash.taskEntry.Text) == "" {
		return
	}
	dash.controls.OnAddTask(dash.taskEntry.Text, model.Priority(dash.taskPriority.Selected), dash.taskCategory.Text)
	dash.taskEntry.SetText("")
	dash.taskCategory.SetText("")
}

func (dash *Window) taskObjects(tasks []model.Task, now time.Time) []fyne.CanvasObject {
	if len(tasks) == 0 {
		return []fyne.CanvasObject{widget.NewLabel("No tasks yet.")}
	}
	objects := make([]fyne.CanvasObject, 0, len(tasks))
	for _, task := range tasks {
		id := task.ID
		check := widget.NewCheck(task.Text, nil)
		check.SetChecked(task.Completed)
		check.OnChanged = func(bool) {
			if dash.controls.OnToggleTask != nil {
				dash.controls.OnToggleTask(id)
			}
		}
		remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			if dash.controls.OnDeleteTask != nil {
				dash.controls.OnDeleteTask(id)
			}
		})
		remove.Importance = widget.LowImportance

		details := container.NewHBox(widget.NewLabel(taskDetails(task)))
		if task.Overdue(now) {
			marker := canvas.NewText("overdue", overdueColor)
			marker.TextStyle = fyne.TextStyle{Bold: true}
			details.Add(marker)
		}
		objects = append(objects, container.NewBorder(nil, nil, nil, remove, container.NewVBox(check, details)))
	}
	return objects
}

func (dash *Window) phaseButton(label string, phase model.Phase) *widget.Button {
	return widget.NewButton(label, func() {
		if dash.controls.OnSelectPhase != nil {
			dash.controls.OnSelectPhase(phase)
		}
	})
}

func (dash *Window) toastObjects(notifications []notify.Notification) []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(notifications))
	for _, notification := range notifications {
		id := notification.ID
		marker := canvas.NewRectangle(severityColor(notification.Severity))
		marker.SetMinSize(fyne.NewSize(6, 0))
		message := widget.NewLabel(notification.Message)
		message.Wrapping = fyne.TextWrapWord
		dismiss := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
			if dash.controls.OnDismiss != nil {
				dash.controls.OnDismiss(id)
			}
		})
		dismiss.Importance = widget.LowImportance
		objects = append(objects, container.NewBorder(nil, nil, marker, dismiss, message))
	}
	return objects
}

func taskDetails(task model.Task) string {
	details := fmt.Sprintf("%s priority, %s", task.Priority, task.Category)
	if task.DueDate != nil {
		details += ", due " + task.DueDate.Format("Jan 2")
	}
	return details
}

func sameTask(a, b model.Task) bool {
	if a.ID != b.ID || a.Text != b.Text || a.Completed != b.Completed ||
		a.Priority != b.Priority || a.Category != b.Category {
		return false
	}
	if a.DueDate == nil || b.DueDate == nil {
		return a.DueDate == b.DueDate
	}
	return a.DueDate.Equal(*b.DueDate)
}

func phaseTitle(state interval.State) string {
	title := state.Phase.Label()
	if !state.Active {
		title += " (paused)"
	}
	return title
}

func severityColor(severity notify.Severity) color.Color {
	switch severity {
	case notify.SeveritySuccess:
		return color.NRGBA{R: 34, G: 197, B: 94, A: 255}
	case notify.SeverityWarning:
		return color.NRGBA{R: 234, G: 179, B: 8, A: 255}
	case notify.SeverityError:
		return color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	default:
		return color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	}
}

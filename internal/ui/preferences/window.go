package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"focusroom/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   model.Settings
	onSave     func(model.Settings)
	goal       *widget.Entry
	work       *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	longEvery  *widget.Entry
	cueFile    *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, title string, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow(title + " Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		goal:       widget.NewEntry(),
		work:       widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		longEvery:  widget.NewEntry(),
		cueFile:    widget.NewEntry(),
	}
	prefs.cueFile.SetPlaceHolder("path to .ogg or .wav")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Intervals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Daily goal"), prefs.goal, widget.NewLabel("intervals")),
		container.NewHBox(widget.NewLabel("Work session"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.longEvery, widget.NewLabel("intervals")),
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Completion cue"),
		prefs.cueFile,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 380))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.goal.SetText(strconv.Itoa(settings.Goal))
	prefs.work.SetText(minutesText(settings.WorkDuration))
	prefs.shortBreak.SetText(minutesText(settings.ShortBreakDuration))
	prefs.longBreak.SetText(minutesText(settings.LongBreakDuration))
	prefs.longEvery.SetText(strconv.Itoa(settings.LongBreakEvery))
	prefs.cueFile.SetText(settings.CueFile)
}

func (prefs *Window) handleSave() {
	settings := ApplyForm(prefs.settings, Form{
		Goal:           prefs.goal.Text,
		WorkMinutes:    prefs.work.Text,
		ShortMinutes:   prefs.shortBreak.Text,
		LongMinutes:    prefs.longBreak.Text,
		LongBreakEvery: prefs.longEvery.Text,
		CueFile:        prefs.cueFile.Text,
	})

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// Form holds the raw text of every preferences field.
type Form struct {
	Goal           string
	WorkMinutes    string
	ShortMinutes   string
	LongMinutes    string
	LongBreakEvery string
	CueFile        string
}

// ApplyForm returns settings updated with every valid field in form.
// A goal of zero or less is clamped to one. Durations and the long break
// cadence that are empty or not a positive integer keep their current value.
func ApplyForm(settings model.Settings, form Form) model.Settings {
	if goal, err := strconv.Atoi(strings.TrimSpace(form.Goal)); err == nil {
		settings.Goal = model.ClampGoal(goal)
	}
	if minutes, ok := parsePositiveInt(form.WorkMinutes); ok {
		settings.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(form.ShortMinutes); ok {
		settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(form.LongMinutes); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if every, ok := parsePositiveInt(form.LongBreakEvery); ok {
		settings.LongBreakEvery = every
	}
	settings.CueFile = strings.TrimSpace(form.CueFile)
	return settings
}

func minutesText(duration time.Duration) string {
	return fmt.Sprintf("%d", int(duration.Minutes()))
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

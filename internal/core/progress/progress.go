package progress

import (
	"math"

	"focusroom/internal/core/interval"
)

// Completer is anything that can report whether it is done.
type Completer interface {
	IsCompleted() bool
}

// Summary is a derived view of task and interval progress.
type Summary struct {
	TasksCompleted     int
	TasksTotal         int
	TaskPercent        int
	IntervalsCompleted int
	IntervalsGoal      int
	IntervalPercent    int
}

// Summarize derives progress from the task list and a timer snapshot.
func Summarize[T Completer](tasks []T, timer interval.State) Summary {
	done := 0
	for _, task := range tasks {
		if task.IsCompleted() {
			done++
		}
	}

	goal := timer.Goal
	if goal < 1 {
		goal = 1
	}
	return Summary{
		TasksCompleted:     done,
		TasksTotal:         len(tasks),
		TaskPercent:        TaskPercent(done, len(tasks)),
		IntervalsCompleted: timer.CompletedWork,
		IntervalsGoal:      goal,
		IntervalPercent:    IntervalPercent(timer.CompletedWork, goal),
	}
}

// TaskPercent returns the rounded share of completed tasks, 0 for an empty list.
func TaskPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return percent(completed, total)
}

// IntervalPercent returns the rounded share of the goal reached, capped at 100.
func IntervalPercent(completed, goal int) int {
	if goal < 1 {
		goal = 1
	}
	return min(100, percent(completed, goal))
}

func percent(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}

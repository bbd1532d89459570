package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"focusroom/internal/core/notify"
)

// MessageProgressReset is pushed after the interval counter was reset.
const MessageProgressReset = "New day, interval progress was reset."

// ProgressResetter clears completed interval counters.
type ProgressResetter interface {
	ResetProgress()
}

// Notifier receives user-facing messages.
type Notifier interface {
	Push(message string, severity notify.Severity) notify.ID
}

// ProgressScheduler resets interval progress on a cron schedule.
type ProgressScheduler struct {
	cronEngine *cron.Cron
	resetter   ProgressResetter
	notifier   Notifier
	logger     logrus.FieldLogger
	spec       string
}

// NewProgressScheduler creates a scheduler using the local time zone.
func NewProgressScheduler(resetter ProgressResetter, notifier Notifier, logger logrus.FieldLogger, spec string) *ProgressScheduler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProgressScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		resetter:   resetter,
		notifier:   notifier,
		logger:     logger.WithField("component", "scheduler"),
		spec:       spec,
	}
}

// Start registers the reset job and starts the cron engine.
func (s *ProgressScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.spec, s.ResetNow); err != nil {
		return fmt.Errorf("add progress reset job %q: %w", s.spec, err)
	}
	s.cronEngine.Start()
	s.logger.WithField("spec", s.spec).Info("progress reset scheduled")
	return nil
}

// ResetNow runs the reset job immediately.
func (s *ProgressScheduler) ResetNow() {
	s.logger.Info("resetting interval progress")
	s.resetter.ResetProgress()
	if s.notifier != nil {
		s.notifier.Push(MessageProgressReset, notify.SeverityInfo)
	}
}

// Next returns the next scheduled run, or the zero time when not started.
func (s *ProgressScheduler) Next() time.Time {
	entries := s.cronEngine.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop stops the engine and waits for a running job to finish.
func (s *ProgressScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("progress scheduler stopped")
}

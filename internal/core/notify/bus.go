// Package notify holds the transient notification queue shown as toasts.
// Entries expire a fixed delay after creation unless dismissed earlier;
// every entry owns exactly one cancellable expiry timer.
package notify

import (
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

// ID identifies a notification. IDs are allocated from a counter and are
// never reused within a Bus.
type ID uint64

// Notification is a transient user-facing message.
type Notification struct {
	ID        ID
	Message   string
	Severity  Severity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Timer is a pending expiry that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Config contains runtime options for Bus.
type Config struct {
	TTL       time.Duration
	Scheduler Scheduler
	Now       func() time.Time
}

type entry struct {
	notification Notification
	timer        Timer
}

// Bus is an ordered set of live notifications.
type Bus struct {
	mu       sync.Mutex
	options  Config
	nextID   ID
	entries  []entry
	onChange func()
	log      logrus.FieldLogger
	closed   bool
}

// New creates a Bus.
func New(options Config) *Bus {
	if options.TTL <= 0 {
		options.TTL = DefaultTTL
	}
	if options.Scheduler == nil {
		options.Scheduler = realScheduler{}
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Bus{
		options: options,
		log:     logrus.StandardLogger().WithField("component", "notify"),
	}
}

// SetLogger replaces the logger.
func (bus *Bus) SetLogger(logger logrus.FieldLogger) {
	if logger == nil {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.log = logger.WithField("component", "notify")
}

// OnChange registers a callback invoked after every push, dismissal or
// expiry. The callback runs outside the bus lock.
func (bus *Bus) OnChange(fn func()) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.onChange = fn
}

// Push appends a notification and schedules its expiry.
func (bus *Bus) Push(message string, severity Severity) ID {
	bus.mu.Lock()
	if bus.closed {
		bus.mu.Unlock()
		return 0
	}
	bus.nextID++
	id := bus.nextID
	now := bus.options.Now()
	notification := Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(bus.options.TTL),
	}
	// The expiry callback needs the lock, so it cannot observe the entry
	// before it is appended.
	timer := bus.options.Scheduler.AfterFunc(bus.options.TTL, func() {
		bus.remove(id, "expired")
	})
	bus.entries = append(bus.entries, entry{notification: notification, timer: timer})
	bus.log.WithFields(logrus.Fields{"id": id, "severity": severity}).Debug(message)
	onChange := bus.onChange
	bus.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return id
}

// Dismiss removes a notification and cancels its expiry. Unknown IDs are ignored.
func (bus *Bus) Dismiss(id ID) {
	bus.remove(id, "dismissed")
}

// List returns live notifications, oldest first.
func (bus *Bus) List() []Notification {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	notifications := make([]Notification, 0, len(bus.entries))
	for _, item := range bus.entries {
		notifications = append(notifications, item.notification)
	}
	return notifications
}

// All yields live notifications oldest first. Each iteration reads a fresh
// snapshot, so the sequence can be ranged over repeatedly.
func (bus *Bus) All() iter.Seq[Notification] {
	return func(yield func(Notification) bool) {
		for _, notification := range bus.List() {
			if !yield(notification) {
				return
			}
		}
	}
}

// Len returns the number of live notifications.
func (bus *Bus) Len() int {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	return len(bus.entries)
}

// Close cancels every pending expiry and drops all notifications.
func (bus *Bus) Close() {
	bus.mu.Lock()
	if bus.closed {
		bus.mu.Unlock()
		return
	}
	bus.closed = true
	for _, item := range bus.entries {
		item.timer.Stop()
	}
	bus.entries = nil
	bus.mu.Unlock()
}

func (bus *Bus) remove(id ID, reason string) {
	bus.mu.Lock()
	index := slices.IndexFunc(bus.entries, func(item entry) bool {
		return item.notification.ID == id
	})
	if index < 0 {
		bus.mu.Unlock()
		return
	}
	bus.entries[index].timer.Stop()
	bus.entries = slices.Delete(bus.entries, index, index+1)
	bus.log.WithFields(logrus.Fields{"id": id, "reason": reason}).Debug("notification removed")
	onChange := bus.onChange
	bus.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

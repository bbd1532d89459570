package clock

import (
	"context"
	"sync"
	"time"
)

// Ticker calls a function on every interval from a single goroutine.
type Ticker struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New creates a stopped Ticker. Non-positive intervals default to one second.
func New(interval time.Duration, fn func()) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval, fn: fn}
}

// Start launches the ticking loop. Calling Start on a running ticker does nothing.
func (ticker *Ticker) Start(ctx context.Context) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.running {
		return
	}
	ticker.running = true
	ticker.stopCh = make(chan struct{})
	ticker.doneCh = make(chan struct{})

	go ticker.run(ctx, ticker.stopCh, ticker.doneCh)
}

// Stop halts the loop and waits for it to exit. Once Stop returns the
// callback is not invoked again. Stop must not be called from the callback.
func (ticker *Ticker) Stop() {
	ticker.mu.Lock()
	if !ticker.running {
		ticker.mu.Unlock()
		return
	}
	ticker.running = false
	stopCh, doneCh := ticker.stopCh, ticker.doneCh
	ticker.mu.Unlock()

	close(stopCh)
	<-doneCh
}

// Running reports whether the loop is active.
func (ticker *Ticker) Running() bool {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	return ticker.running
}

func (ticker *Ticker) run(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	timer := time.NewTicker(ticker.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			ticker.mu.Lock()
			if ticker.doneCh == doneCh {
				ticker.running = false
			}
			ticker.mu.Unlock()
			return
		case <-stopCh:
			return
		case <-timer.C:
			// A stop that raced with this tick wins.
			select {
			case <-stopCh:
				return
			default:
			}
			ticker.fn()
		}
	}
}

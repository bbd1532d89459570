package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTickerCallsUntilStopped(t *testing.T) {
	var calls atomic.Int64
	ticker := New(2*time.Millisecond, func() { calls.Add(1) })
	ticker.Start(context.Background())
	ticker.Start(context.Background())

	waitFor(t, func() bool { return calls.Load() >= 3 })
	ticker.Stop()

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != after {
		t.Fatalf("tick fired after Stop returned: %d -> %d", after, calls.Load())
	}
	if ticker.Running() {
		t.Fatal("ticker still reports running")
	}
	ticker.Stop()
}

func TestTickerStopWaitsForCallback(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	var once atomic.Bool
	ticker := New(time.Millisecond, func() {
		if once.CompareAndSwap(false, true) {
			close(entered)
			<-release
			finished.Store(true)
		}
	})
	ticker.Start(context.Background())
	<-entered

	stopped := make(chan struct{})
	go func() {
		ticker.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a tick was still running")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	<-stopped
	if !finished.Load() {
		t.Fatal("callback did not finish before Stop returned")
	}
}

func TestTickerStopsOnContextCancel(t *testing.T) {
	var calls atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	ticker := New(time.Millisecond, func() { calls.Add(1) })
	ticker.Start(ctx)
	waitFor(t, func() bool { return calls.Load() > 0 })

	cancel()
	waitFor(t, func() bool { return !ticker.Running() })

	ticker.Start(context.Background())
	t.Cleanup(ticker.Stop)
	if !ticker.Running() {
		t.Fatal("ticker should restart after cancellation")
	}
}

func TestNewDefaultsInterval(t *testing.T) {
	if ticker := New(0, func() {}); ticker.interval != time.Second {
		t.Fatalf("expected one second default, got %s", ticker.interval)
	}
}

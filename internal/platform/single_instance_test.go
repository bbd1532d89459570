package platform

import (
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
)

func TestSessionAddressIsStable(t *testing.T) {
	if SessionAddress("FocusRoom") != SessionAddress(" focusroom ") {
		t.Fatal("address should ignore case and surrounding spaces")
	}
}

func TestAcquireSessionIsExclusive(t *testing.T) {
	name := fmt.Sprintf("focusroom-test-%d", time.Now().UnixNano())
	guard, err := AcquireSession(name)
	if err != nil {
		t.Skipf("loopback port unavailable: %v", err)
	}

	if _, err := AcquireSession(name); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}

	again, err := AcquireSession(name)
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	_ = again.Release()
}

func TestAcquireSessionReportsOtherListenErrors(t *testing.T) {
	original := listen
	t.Cleanup(func() { listen = original })
	failure := errors.New("permission denied")
	listen = func(network, address string) (net.Listener, error) {
		return nil, &net.OpError{Op: "listen", Net: network, Err: failure}
	}

	_, err := AcquireSession("focusroom")
	if errors.Is(err, ErrSessionActive) {
		t.Fatalf("unrelated listen failure reported as active session: %v", err)
	}
	if !errors.Is(err, failure) {
		t.Fatalf("expected wrapped listen error, got %v", err)
	}
}

package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
)

// ErrSessionActive indicates another dashboard already owns the session.
var ErrSessionActive = errors.New("focus session already open")

var listen = net.Listen

const (
	minPort = 20000
	maxPort = 39999
)

// SessionGuard keeps a single dashboard per user by holding a localhost port
// derived from the application name.
type SessionGuard struct {
	listener net.Listener
}

// AcquireSession claims the session for appName.
func AcquireSession(appName string) (*SessionGuard, error) {
	listener, err := listen("tcp", SessionAddress(appName))
	if err != nil {
		if isAddrInUse(err) {
			return nil, fmt.Errorf("%w: %v", ErrSessionActive, err)
		}
		return nil, fmt.Errorf("listen for session: %w", err)
	}
	return &SessionGuard{listener: listener}, nil
}

// Release frees the session.
func (guard *SessionGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// SessionAddress returns the loopback address used for appName.
func SessionAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(strings.ToLower(strings.TrimSpace(appName))))
	port := minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
	return fmt.Sprintf("127.0.0.1:%d", port)
}

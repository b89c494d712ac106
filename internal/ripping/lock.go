package ripping

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the session lock file inside the state directory.
const LockFileName = "showbrake.lock"

// ErrSessionActive reports that another session holds the lock.
var ErrSessionActive = errors.New("another showbrake session is already running")

// AcquireLock takes the session lock in stateDir. Callers release it with
// Unlock on the returned lock.
func AcquireLock(stateDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	lock := flock.New(filepath.Join(stateDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrSessionActive
	}
	return lock, nil
}

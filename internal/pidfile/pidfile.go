// Package pidfile persists and reads daemon process IDs, and guards a daemon
// instance with an advisory lock next to its PID file.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// Write records pid at path, creating parent directories as needed.
func Write(path string, pid int) error {
	if path == "" {
		return errors.New("pid file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create pid file directory: %w", err)
	}
	value := strconv.Itoa(pid) + "\n"
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write pid file %q: %w", path, err)
	}
	return nil
}

// Read returns the process ID recorded at path.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read pid file %q: %w", path, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("pid file %q does not contain a process id", path)
	}
	return pid, nil
}

// Remove deletes the PID file. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove pid file %q: %w", path, err)
	}
	return nil
}

// Lock holds the advisory lock guarding one daemon instance.
type Lock struct {
	lock *flock.Flock
	path string
}

// ErrAlreadyLocked indicates another process holds the instance lock.
var ErrAlreadyLocked = errors.New("another instance is already running")

// Acquire takes the instance lock stored alongside the PID file. It fails
// immediately when another process holds it.
func Acquire(pidPath string) (*Lock, error) {
	lockPath := strings.TrimSuffix(pidPath, filepath.Ext(pidPath)) + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %q: %w", lockPath, err)
	}
	if !ok {
		return nil, ErrAlreadyLocked
	}
	return &Lock{lock: fl, path: lockPath}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

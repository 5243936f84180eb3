package docset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Extension is the bundle directory suffix.
const Extension = ".docset"

var (
	// ErrDestinationExists is returned when the bundle path is taken and
	// overwriting was not requested.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrLocked is returned when another conversion holds the bundle lock.
	ErrLocked = errors.New("docset is being converted by another process")
)

// BundleName strips a trailing ".docset" from name.
func BundleName(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), Extension)
}

// Destination returns the bundle path for name inside dir.
func Destination(dir, name string) string {
	return filepath.Join(dir, BundleName(name)+Extension)
}

// SetupDestination resolves the bundle path and makes sure it is free. With
// force an existing file or directory at that path is removed.
func SetupDestination(dir, name string, force bool) (string, error) {
	dest := Destination(dir, name)
	if _, err := os.Lstat(dest); err == nil {
		if !force {
			return "", fmt.Errorf("%w: %s", ErrDestinationExists, dest)
		}
		if err := os.RemoveAll(dest); err != nil {
			return "", fmt.Errorf("remove existing docset: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat destination: %w", err)
	}
	return dest, nil
}

// Lock guards a bundle path against concurrent conversions.
type Lock struct {
	path string
	fl   *flock.Flock
}

// AcquireLock takes the lock file next to bundle without blocking.
func AcquireLock(bundle string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(bundle), 0o755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}
	path := bundle + ".lock"
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

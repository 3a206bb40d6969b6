// Package save writes assembled instruction text to disk. The core
// generator performs no I/O itself; this is the external-collaborator
// side of the contract. Writes are atomic (temp file + rename) and
// serialized per destination path with an advisory lock, since
// independent generation runs may target the same output file.
package save

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// WriteFile writes instruction lines to path as newline-joined text
// with a trailing newline.
func WriteFile(path string, instructions []string) error {
	lock, err := acquireLock(path)
	if err != nil {
		return err
	}
	defer releaseLock(lock)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save: unable to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(strings.Join(instructions, "\n") + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("save: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save: close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save: rename %s -> %s: %w", tmpName, path, err)
	}
	return nil
}

// acquireLock takes an exclusive advisory lock on a sidecar lock file.
// The lock file persists; only the flock serializes writers.
func acquireLock(path string) (*os.File, error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("save: unable to open lock file %s: %w", lockPath, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("save: unable to lock %s: %w", lockPath, err)
	}
	return f, nil
}

// releaseLock drops the advisory lock.
func releaseLock(f *os.File) {
	unix.Flock(int(f.Fd()), unix.LOCK_UN)
	f.Close()
}

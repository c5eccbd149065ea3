package safeio

import (
	"fmt"
	"os"
	"syscall"
)

// FileLock is an advisory lock backed by flock(2). Registry writers take it
// around read-modify-write cycles so concurrent hooktier invocations against
// the same hooks root serialize instead of clobbering each other.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns a lock handle for path. The lock file is created on
// first Lock and left in place afterwards.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (l *FileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file %s: %w", l.path, err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	l.file = f
	return nil
}

// TryLock attempts to acquire the lock without blocking. Returns false when
// another process already holds it.
func (l *FileLock) TryLock() (bool, error) {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return false, fmt.Errorf("open lock file %s: %w", l.path, err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if err == syscall.EWOULDBLOCK {
			return false, nil
		}
		return false, fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	l.file = f
	return true, nil
}

// Unlock releases the lock. Safe to call when the lock is not held.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		_ = f.Close()
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return f.Close()
}

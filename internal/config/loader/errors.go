package loader

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrFileTooLarge indicates a file reports a size above the read cap,
	// or a size that cannot be represented.
	ErrFileTooLarge = errors.New("file too large")

	// ErrShortRead indicates fewer bytes were read than the file reported.
	ErrShortRead = errors.New("short read")
)

// IOError is returned when a file system operation fails.
type IOError struct {
	// Op names the failed operation ("open", "read", "write", "sync",
	// "rename", "mkdir", ...).
	Op string
	// Path is the file the operation was applied to.
	Path string
	// Code is the platform error number, or 0 when none is available.
	Code syscall.Errno
	// Err is the underlying error.
	Err error
}

func newIOError(op, path string, err error) *IOError {
	e := &IOError{Op: op, Path: path, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		e.Code = errno
	}
	return e
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s %s: %v (code %d)", e.Op, e.Path, e.Err, uintptr(e.Code))
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// SizeError describes a rejected file size.
type SizeError struct {
	Path  string
	Size  int64
	Limit int64
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: size %d exceeds limit %d", e.Path, e.Size, e.Limit)
}

// Is matches ErrFileTooLarge.
func (e *SizeError) Is(target error) bool {
	return target == ErrFileTooLarge
}

package terminal

import (
	"errors"
	"fmt"
)

var (
	// ErrInit matches every *InitError
	ErrInit = errors.New("terminal init failed")

	// ErrWriteZero is returned by a flush when the device accepted no bytes without reporting an error
	ErrWriteZero = errors.New("failed to write data")

	// ErrOutOfBounds matches every *BoundsError
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrSessionActive is returned when another session already owns the device
	ErrSessionActive = errors.New("session already active for device")

	// ErrClosed is returned by operations on a closed session
	ErrClosed = errors.New("session closed")
)

// InitError reports a failure while taking ownership of the terminal.
// No session exists after an InitError.
type InitError struct {
	Op  string
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("terminal init: %s: %v", e.Op, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

func (e *InitError) Is(target error) bool {
	return target == ErrInit
}

// BoundsError reports a cell coordinate outside the session geometry
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

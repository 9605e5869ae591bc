//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import (
	"errors"
	"fmt"
)

// Settings is an opaque snapshot of the terminal line discipline.
// Platforms without termios carry no state.
type Settings struct{}

func (s Settings) raw() Settings {
	return s
}

// OpenDevice is unsupported without termios; use New with a custom Device
func OpenDevice(path string) (Device, error) {
	return nil, fmt.Errorf("open %s: %w", path, errors.ErrUnsupported)
}

func isInterrupted(err error) bool {
	return false
}

func resetTerminalMode() {}

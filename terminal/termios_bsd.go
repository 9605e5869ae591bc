//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios = unix.TIOCGETA
	// TIOCSETAF is tcsetattr(TCSAFLUSH)
	ioctlWriteTermiosFlush = unix.TIOCSETAF
)

func tcdrain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TIOCDRAIN, 0)
}

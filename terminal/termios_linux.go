//go:build linux

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios = unix.TCGETS
	// TCSETSF is tcsetattr(TCSAFLUSH)
	ioctlWriteTermiosFlush = unix.TCSETSF
)

func tcdrain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCSBRK, 1)
}

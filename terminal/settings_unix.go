//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

// Settings is an opaque snapshot of the terminal line discipline.
// Values are comparable with ==.
type Settings struct {
	termios unix.Termios
}

// raw derives the raw-mode form of s, leaving s untouched
func (s Settings) raw() Settings {
	t := s.termios
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	// Reads return immediately with whatever is available
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0
	return Settings{termios: t}
}

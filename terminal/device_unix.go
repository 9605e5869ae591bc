//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type ttyDevice struct {
	f    *os.File
	fd   int
	path string
}

// OpenDevice opens the terminal at path for simultaneous read/write access
func OpenDevice(path string) (Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	// Fd switches the descriptor to blocking mode, which raw writes rely on
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		f.Close()
		return nil, fmt.Errorf("%s is not a terminal", path)
	}
	return &ttyDevice{f: f, fd: fd, path: path}, nil
}

func (d *ttyDevice) Name() string {
	return d.path
}

func (d *ttyDevice) GetAttr() (Settings, error) {
	t, err := unix.IoctlGetTermios(d.fd, ioctlReadTermios)
	if err != nil {
		return Settings{}, err
	}
	return Settings{termios: *t}, nil
}

func (d *ttyDevice) SetAttr(s Settings) error {
	return unix.IoctlSetTermios(d.fd, ioctlWriteTermiosFlush, &s.termios)
}

// Window size sources, tried in order
var (
	ioctlWinsize = func(fd int) (int, int, error) {
		ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
		if err != nil {
			return 0, 0, err
		}
		return int(ws.Col), int(ws.Row), nil
	}
	fallbackWinsize = term.GetSize
)

func (d *ttyDevice) Size() (int, int, error) {
	w, h, err := ioctlWinsize(d.fd)
	if err != nil || w <= 0 || h <= 0 {
		w, h, err = fallbackWinsize(d.fd)
	}
	if err != nil {
		return 0, 0, err
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%s reported empty geometry %dx%d", d.path, w, h)
	}
	return w, h, nil
}

func (d *ttyDevice) Read(p []byte) (int, error) {
	n, err := unix.Read(d.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Write issues a single write(2); short writes and EINTR are left to the caller
func (d *ttyDevice) Write(p []byte) (int, error) {
	n, err := unix.Write(d.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (d *ttyDevice) Drain() error {
	for {
		err := tcdrain(d.fd)
		if !isInterrupted(err) {
			return err
		}
	}
}

func (d *ttyDevice) Close() error {
	return d.f.Close()
}

// isInterrupted reports whether err is a transient EINTR
func isInterrupted(err error) bool {
	return err != nil && errors.Is(err, unix.EINTR)
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	tty, err := os.OpenFile(DefaultTTYPath, os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if t, err := unix.IoctlGetTermios(fd, ioctlReadTermios); err == nil {
		t.Iflag |= unix.ICRNL | unix.IXON
		t.Oflag |= unix.OPOST
		t.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		t.Cc[unix.VMIN] = 1
		unix.IoctlSetTermios(fd, ioctlWriteTermiosFlush, t)
	}
}

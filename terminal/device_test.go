//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

// writeResult scripts one Write call; n < 0 accepts the whole slice
type writeResult struct {
	n   int
	err error
}

// fakeDevice records every call a session makes against a terminal
type fakeDevice struct {
	name          string
	attr          Settings
	width, height int

	getErr   error
	setErr   error // applied to every SetAttr
	setErrAt int   // 1-based SetAttr call that fails with setErr; 0 means all
	sizeErr  error
	drainErr error
	closeErr error

	script []writeResult

	setCalls   []Settings
	writeCalls int
	drains     int
	closes     int
	out        bytes.Buffer
}

func newFakeDevice(name string, width, height int) *fakeDevice {
	return &fakeDevice{
		name:   name,
		attr:   cookedSettings(),
		width:  width,
		height: height,
	}
}

// cookedSettings resembles a freshly opened interactive terminal
func cookedSettings() Settings {
	var t unix.Termios
	t.Iflag = unix.BRKINT | unix.ICRNL | unix.IXON
	t.Oflag = unix.OPOST
	t.Cflag = unix.CS7 | unix.PARENB | unix.CREAD
	t.Lflag = unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 5
	return Settings{termios: t}
}

func (d *fakeDevice) Name() string { return d.name }

func (d *fakeDevice) GetAttr() (Settings, error) {
	if d.getErr != nil {
		return Settings{}, d.getErr
	}
	return d.attr, nil
}

func (d *fakeDevice) SetAttr(s Settings) error {
	d.setCalls = append(d.setCalls, s)
	if d.setErr != nil && (d.setErrAt == 0 || d.setErrAt == len(d.setCalls)) {
		return d.setErr
	}
	d.attr = s
	return nil
}

func (d *fakeDevice) Size() (int, int, error) {
	if d.sizeErr != nil {
		return 0, 0, d.sizeErr
	}
	return d.width, d.height, nil
}

func (d *fakeDevice) Read(p []byte) (int, error) {
	return 0, io.EOF
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	d.writeCalls++
	if len(d.script) == 0 {
		d.out.Write(p)
		return len(p), nil
	}
	r := d.script[0]
	d.script = d.script[1:]
	n := r.n
	if n < 0 || n > len(p) {
		n = len(p)
	}
	d.out.Write(p[:n])
	return n, r.err
}

func (d *fakeDevice) Drain() error {
	d.drains++
	return d.drainErr
}

func (d *fakeDevice) Close() error {
	d.closes++
	return d.closeErr
}

var errDevice = errors.New("device failure")

package terminal

// DefaultTTYPath is the controlling terminal device opened by Open
const DefaultTTYPath = "/dev/tty"

// Device abstracts the controlling terminal.
// Everything above this interface is platform independent; the unix
// implementation talks termios ioctls on /dev/tty.
type Device interface {
	// Name identifies the device for session exclusivity and logging
	Name() string

	// GetAttr reads the current line-discipline settings
	GetAttr() (Settings, error)

	// SetAttr applies settings, discarding pending input and output first
	SetAttr(s Settings) error

	// Size returns the window geometry in columns and rows
	Size() (width, height int, err error)

	Read(p []byte) (int, error)
	Write(p []byte) (int, error)

	// Drain blocks until written output has been transmitted
	Drain() error

	Close() error
}

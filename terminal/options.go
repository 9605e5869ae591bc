package terminal

import (
	"os"

	"github.com/sirupsen/logrus"
)

// config holds session construction parameters
type config struct {
	ttyPath string
	log     logrus.FieldLogger
	repaint Repaint
}

// Option configures Open and New
type Option func(*config)

// WithTTYPath sets the device opened by Open (default DefaultTTYPath)
func WithTTYPath(path string) Option {
	return func(c *config) {
		c.ttyPath = path
	}
}

// WithLogger sets the logger used for lifecycle and teardown reporting
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithRepaint selects the Present strategy (default RepaintFull)
func WithRepaint(r Repaint) Option {
	return func(c *config) {
		c.repaint = r
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		ttyPath: DefaultTTYPath,
		repaint: RepaintFull,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = defaultLogger()
	}
	return c
}

// defaultLogger reports warnings and above on stderr
func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

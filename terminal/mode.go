package terminal

import (
	"github.com/sirupsen/logrus"
)

// ModeController owns the line-discipline state of a device.
// Capture and ApplyRaw happen once at session start; Restore runs at most once.
type ModeController struct {
	dev Device
	log logrus.FieldLogger

	orig     Settings
	captured bool
	restored bool
}

// NewModeController creates a controller for dev
func NewModeController(dev Device, log logrus.FieldLogger) *ModeController {
	if log == nil {
		log = defaultLogger()
	}
	return &ModeController{dev: dev, log: log}
}

// Capture reads the current settings. The first successful capture is kept as
// the snapshot that Restore reapplies.
func (m *ModeController) Capture() (Settings, error) {
	s, err := m.dev.GetAttr()
	if err != nil {
		return Settings{}, &InitError{Op: "capture settings", Err: err}
	}
	if !m.captured {
		m.orig = s
		m.captured = true
	}
	return s, nil
}

// ApplyRaw derives the raw-mode form of s and applies it to the device
func (m *ModeController) ApplyRaw(s Settings) (Settings, error) {
	raw := s.raw()
	if err := m.dev.SetAttr(raw); err != nil {
		return Settings{}, &InitError{Op: "apply raw mode", Err: err}
	}
	return raw, nil
}

// Original returns the captured snapshot
func (m *ModeController) Original() (Settings, bool) {
	return m.orig, m.captured
}

// Restore reapplies the captured snapshot verbatim.
// Failures are logged and returned; later calls are no-ops.
func (m *ModeController) Restore() error {
	if !m.captured || m.restored {
		return nil
	}
	m.restored = true

	if err := m.dev.SetAttr(m.orig); err != nil {
		m.log.WithFields(logrus.Fields{
			"device": m.dev.Name(),
			"op":     "restore settings",
		}).WithError(err).Warn("terminal settings not restored")
		return err
	}
	m.log.WithField("device", m.dev.Name()).Debug("terminal settings restored")
	return nil
}

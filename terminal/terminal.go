package terminal

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type sessionState uint8

const (
	stateUninitialized sessionState = iota
	stateActive
	stateClosed
)

// owners records devices held by an active session in this process
var owners = struct {
	sync.Mutex
	names map[string]struct{}
}{names: make(map[string]struct{})}

func claimDevice(name string) error {
	owners.Lock()
	defer owners.Unlock()
	if _, ok := owners.names[name]; ok {
		return fmt.Errorf("%w: %s", ErrSessionActive, name)
	}
	owners.names[name] = struct{}{}
	return nil
}

func releaseDevice(name string) {
	owners.Lock()
	delete(owners.names, name)
	owners.Unlock()
}

// Session owns a terminal in raw mode and the cell grids drawn onto it.
// Close must be called on every exit path; it is safe to call more than once.
type Session struct {
	mu sync.Mutex

	dev       Device
	ownDevice bool
	mode      *ModeController
	out       *outputBuffer
	log       logrus.FieldLogger

	front   *Grid // last rendered
	back    *Grid // pending edits
	width   int
	height  int
	repaint Repaint

	state   sessionState
	painted bool // a Present has moved the cursor off home
}

// Open opens the controlling terminal and starts a session on it
func Open(opts ...Option) (*Session, error) {
	cfg := newConfig(opts)

	dev, err := OpenDevice(cfg.ttyPath)
	if err != nil {
		return nil, &InitError{Op: "open device", Err: err}
	}

	s, err := start(dev, true, cfg)
	if err != nil {
		dev.Close()
		return nil, err
	}
	return s, nil
}

// New starts a session on an already open device.
// The caller keeps ownership of dev and closes it after the session.
func New(dev Device, opts ...Option) (*Session, error) {
	return start(dev, false, newConfig(opts))
}

func start(dev Device, ownDevice bool, cfg *config) (*Session, error) {
	name := dev.Name()
	if err := claimDevice(name); err != nil {
		return nil, err
	}

	s := &Session{
		dev:       dev,
		ownDevice: ownDevice,
		mode:      NewModeController(dev, cfg.log),
		out:       newOutputBuffer(dev),
		log:       cfg.log.WithField("device", name),
		repaint:   cfg.repaint,
		state:     stateUninitialized,
	}

	if err := s.activate(); err != nil {
		releaseDevice(name)
		return nil, err
	}
	return s, nil
}

// activate performs the Uninitialized -> Active transition, undoing partial work on failure
func (s *Session) activate() error {
	orig, err := s.mode.Capture()
	if err != nil {
		return err
	}

	if _, err := s.mode.ApplyRaw(orig); err != nil {
		s.mode.Restore()
		return err
	}

	w, h, err := s.dev.Size()
	if err != nil {
		s.mode.Restore()
		return &InitError{Op: "query size", Err: err}
	}

	s.width, s.height = w, h
	s.back = NewGrid(w, h, BlankCell)
	s.front = s.back.Clone()

	for _, seq := range enterSequences {
		s.out.Write(seq.Bytes())
	}
	if err := s.out.Flush(); err != nil {
		for _, seq := range exitSequences {
			s.out.Write(seq.Bytes())
		}
		s.out.Close()
		s.mode.Restore()
		return &InitError{Op: "enter alternate screen", Err: err}
	}

	s.state = stateActive
	s.log.WithFields(logrus.Fields{
		"width":   w,
		"height":  h,
		"repaint": s.repaint.String(),
	}).Debug("terminal session active")
	return nil
}

// Size returns the session geometry, fixed at start
func (s *Session) Size() (width, height int) {
	return s.width, s.height
}

// SetCell sets one cell of the back grid
func (s *Session) SetCell(x, y int, style Style, fg, bg Color, ch rune) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateActive {
		return ErrClosed
	}
	return s.back.Set(x, y, Cell{Ch: ch, Fg: fg, Bg: bg, Style: style})
}

// Cell returns the pending content of a back grid cell
func (s *Session) Cell(x, y int) (Cell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateActive {
		return Cell{}, ErrClosed
	}
	return s.back.Get(x, y)
}

// Fill sets every back grid cell to c
func (s *Session) Fill(c Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateActive {
		return ErrClosed
	}
	s.back.Fill(c)
	return nil
}

// Clear resets the back grid to BlankCell
func (s *Session) Clear() error {
	return s.Fill(BlankCell)
}

// Present renders the back grid and makes it the front grid.
// Output is flushed once after the whole grid is serialized.
//
// A full repaint writes cells back to back from the top-left corner with no
// positioning between them. Every full repaint after the first starts with a
// cursor-home sequence (ESC [1;1H), since the previous pass leaves the cursor
// past the bottom-right cell.
func (s *Session) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateActive {
		return ErrClosed
	}

	switch {
	case s.repaint == RepaintDiff && s.painted:
		renderDiff(s.out, s.front, s.back)
	default:
		if s.painted {
			// Previous pass left the cursor at the bottom-right corner
			writeCursorPos(s.out, 0, 0)
		}
		renderFull(s.out, s.back)
	}
	s.front.CopyFrom(s.back)
	s.painted = true

	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// Close restores the terminal: exit sequences, flush, original settings.
// Teardown failures are logged; the first one is returned.
//
// The returned error is advisory. Every teardown step runs regardless and each
// failure is already logged, so a deferred Close that discards the error loses
// nothing. Check it only when a caller needs to know restoration was clean.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateActive {
		return nil
	}
	s.state = stateClosed
	return s.teardown()
}

func (s *Session) teardown() error {
	var first error

	for _, seq := range exitSequences {
		s.out.Write(seq.Bytes())
	}
	if err := s.out.Flush(); err != nil {
		s.log.WithField("op", "flush").WithError(err).Warn("terminal teardown output incomplete")
		first = err
	}

	if err := s.mode.Restore(); err != nil && first == nil {
		first = err
	}

	if s.ownDevice {
		if err := s.dev.Close(); err != nil {
			s.log.WithField("op", "close").WithError(err).Warn("terminal device close failed")
			if first == nil {
				first = err
			}
		}
	}

	releaseDevice(s.dev.Name())
	s.front, s.back = nil, nil
	s.log.Debug("terminal session closed")
	return first
}

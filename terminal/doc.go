// Package terminal provides a raw-mode terminal session with a grid of styled cells.
//
// Features:
//   - Raw line discipline with guaranteed restoration of the original settings
//   - Alternate screen, hidden cursor and keypad transmit mode for the session lifetime
//   - Double-buffered cell grid rendered with 256-color SGR sequences
//   - Buffered output that survives short writes and EINTR
//   - Optional diff repaint and signal-driven teardown
//
// A session is exclusive per device; geometry is sampled once at start.
//
//	s, err := terminal.Open()
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	s.SetCell(0, 0, terminal.StyleBold, terminal.ColorRed, terminal.ColorBlack, '@')
//	s.Present()
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal

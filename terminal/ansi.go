package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi = []byte("\x1b[")

	// Screen modes
	// The trailing XTWINOPS pair saves/restores the window title around the alternate screen
	csiAltScreenEnter = []byte("\x1b[?1049h\x1b[22;0;0t")
	csiAltScreenExit  = []byte("\x1b[?1049l\x1b[23;0;0t")
	csiClear          = []byte("\x1b[H\x1b[2J")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// SGR0 followed by SI (shift in) to leave any alternate character set
	csiSGR0 = []byte("\x1b[m\x0f")

	// Keypad transmit mode (DECKPAM / DECKPNM)
	escKeypadEnter = []byte("\x1b=")
	escKeypadExit  = []byte("\x1b>")

	// Color prefixes
	csiFg256 = []byte("\x1b[38;5;") // followed by N m
	csiBg256 = []byte("\x1b[48;5;") // followed by N m

	// Attribute sequences
	csiAttrUnderline = []byte("\x1b[4m")
	csiAttrBold      = []byte("\x1b[1m")
	csiAttrBlink     = []byte("\x1b[5m")
	csiAttrReverse   = []byte("\x1b[7m")
)

// Sequence names a fixed, parameterless control sequence
type Sequence uint8

const (
	SeqEnterAltScreen Sequence = iota
	SeqExitAltScreen
	SeqClearScreen
	SeqHideCursor
	SeqShowCursor
	SeqResetAttrs
	SeqEnterKeypad
	SeqExitKeypad
)

// Bytes returns the exact byte content of the sequence.
// The returned slice is shared and must not be modified.
func (s Sequence) Bytes() []byte {
	switch s {
	case SeqEnterAltScreen:
		return csiAltScreenEnter
	case SeqExitAltScreen:
		return csiAltScreenExit
	case SeqClearScreen:
		return csiClear
	case SeqHideCursor:
		return csiCursorHide
	case SeqShowCursor:
		return csiCursorShow
	case SeqResetAttrs:
		return csiSGR0
	case SeqEnterKeypad:
		return escKeypadEnter
	case SeqExitKeypad:
		return escKeypadExit
	}
	return nil
}

func (s Sequence) String() string {
	switch s {
	case SeqEnterAltScreen:
		return "enter-alt-screen"
	case SeqExitAltScreen:
		return "exit-alt-screen"
	case SeqClearScreen:
		return "clear-screen"
	case SeqHideCursor:
		return "hide-cursor"
	case SeqShowCursor:
		return "show-cursor"
	case SeqResetAttrs:
		return "reset-attrs"
	case SeqEnterKeypad:
		return "enter-keypad"
	case SeqExitKeypad:
		return "exit-keypad"
	}
	return "unknown"
}

// enterSequences is emitted in order when a session becomes active
var enterSequences = []Sequence{
	SeqEnterAltScreen,
	SeqEnterKeypad,
	SeqHideCursor,
	SeqResetAttrs,
	SeqClearScreen,
}

// exitSequences is emitted in order when a session closes
var exitSequences = []Sequence{
	SeqShowCursor,
	SeqClearScreen,
	SeqExitAltScreen,
	SeqExitKeypad,
}

// byteSink is the subset of the output buffer used by the sequence writers
type byteSink interface {
	Write(p []byte) (int, error)
	WriteByte(c byte) error
}

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w byteSink, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeFg256 writes a 256-color foreground sequence
func writeFg256(w byteSink, idx uint8) {
	w.Write(csiFg256)
	writeInt(w, int(idx))
	w.WriteByte('m')
}

// writeBg256 writes a 256-color background sequence
func writeBg256(w byteSink, idx uint8) {
	w.Write(csiBg256)
	writeInt(w, int(idx))
	w.WriteByte('m')
}

// writeStyle writes the style fragment; StyleNormal writes nothing
func writeStyle(w byteSink, s Style) {
	if seq := s.sequence(); seq != nil {
		w.Write(seq)
	}
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w byteSink, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

const (
	enterBytes = "\x1b[?1049h\x1b[22;0;0t" + "\x1b=" + "\x1b[?25l" + "\x1b[m\x0f" + "\x1b[H\x1b[2J"
	exitBytes  = "\x1b[?25h" + "\x1b[H\x1b[2J" + "\x1b[?1049l\x1b[23;0;0t" + "\x1b>"

	// blank cell as rendered: reset, fg 7, bg 0, space
	blankBytes = "\x1b[m\x0f\x1b[38;5;7m\x1b[48;5;0m "
)

func newTestSession(t *testing.T, w, h int, opts ...Option) (*Session, *fakeDevice) {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	dev := newFakeDevice(t.Name(), w, h)
	s, err := New(dev, append([]Option{WithLogger(log)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dev
}

func (d *fakeDevice) resetCounts() {
	d.out.Reset()
	d.writeCalls = 0
	d.drains = 0
}

func TestSessionStart(t *testing.T) {
	s, dev := newTestSession(t, 80, 24)

	w, h := s.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	assert.Equal(t, enterBytes, dev.out.String())
	assert.Equal(t, 1, dev.drains)
	require.Len(t, dev.setCalls, 1)
	assert.Equal(t, cookedSettings().raw(), dev.setCalls[0])

	c, err := s.Cell(79, 23)
	require.NoError(t, err)
	assert.Equal(t, BlankCell, c)
	assert.Equal(t, s.back.Cells(), s.front.Cells())
}

func TestPresentExample(t *testing.T) {
	s, dev := newTestSession(t, 3, 2)
	dev.resetCounts()

	require.NoError(t, s.SetCell(0, 0, StyleNormal, ColorWhite, ColorBlack, 'A'))
	require.NoError(t, s.Present())

	want := "\x1b[m\x0f" + "\x1b[38;5;7m" + "\x1b[48;5;0m" + "A" + strings.Repeat(blankBytes, 5)
	assert.Equal(t, want, dev.out.String())
	assert.Equal(t, 1, dev.writeCalls, "one flush for the whole grid")
	assert.Equal(t, 1, dev.drains)
}

func TestPresentAttributeOrdering(t *testing.T) {
	s, dev := newTestSession(t, 5, 1)
	dev.resetCounts()

	require.NoError(t, s.SetCell(0, 0, StyleUnderline, ColorRed, ColorBlack, 'u'))
	require.NoError(t, s.SetCell(1, 0, StyleBold, ColorBlack, ColorWhite, 'b'))
	require.NoError(t, s.SetCell(2, 0, StyleBlink, ColorWhite, ColorRed, 'k'))
	require.NoError(t, s.SetCell(3, 0, StyleReverse, ColorRed, ColorRed, 'r'))
	require.NoError(t, s.SetCell(4, 0, StyleNormal, Color(0x1FF&0xFF), ColorBlack, 'λ'))
	require.NoError(t, s.Present())

	want := "" +
		"\x1b[m\x0f\x1b[4m\x1b[38;5;1m\x1b[48;5;0mu" +
		"\x1b[m\x0f\x1b[1m\x1b[38;5;0m\x1b[48;5;7mb" +
		"\x1b[m\x0f\x1b[5m\x1b[38;5;7m\x1b[48;5;1mk" +
		"\x1b[m\x0f\x1b[7m\x1b[38;5;1m\x1b[48;5;1mr" +
		"\x1b[m\x0f\x1b[38;5;255m\x1b[48;5;0mλ"
	assert.Equal(t, want, dev.out.String())
}

func TestPresentFullRepaint(t *testing.T) {
	s, dev := newTestSession(t, 4, 3)

	for i := 0; i < 3; i++ {
		dev.resetCounts()
		if i == 1 {
			require.NoError(t, s.SetCell(3, 2, StyleBold, ColorRed, ColorBlack, '#'))
		}
		require.NoError(t, s.Present())

		out := dev.out.String()
		assert.Equal(t, 4*3, strings.Count(out, "\x1b[m\x0f"), "frame %d", i)
		if i > 0 {
			assert.True(t, strings.HasPrefix(out, "\x1b[1;1H"), "frame %d re-homes the cursor", i)
		}
		assert.Equal(t, 1, dev.drains)
	}
	assert.Equal(t, s.back.Cells(), s.front.Cells())
}

func TestPresentNulRendersSpace(t *testing.T) {
	s, dev := newTestSession(t, 1, 1)
	dev.resetCounts()

	require.NoError(t, s.SetCell(0, 0, StyleNormal, ColorWhite, ColorBlack, 0))
	require.NoError(t, s.Present())
	assert.Equal(t, blankBytes, dev.out.String())
}

func TestPresentDiff(t *testing.T) {
	s, dev := newTestSession(t, 3, 2, WithRepaint(RepaintDiff))

	// First frame is always complete
	dev.resetCounts()
	require.NoError(t, s.Present())
	assert.Equal(t, strings.Repeat(blankBytes, 6), dev.out.String())

	dev.resetCounts()
	require.NoError(t, s.SetCell(1, 1, StyleBold, ColorRed, ColorBlack, 'x'))
	require.NoError(t, s.SetCell(2, 1, StyleNormal, ColorRed, ColorBlack, 'y'))
	require.NoError(t, s.SetCell(0, 0, StyleReverse, ColorWhite, ColorBlack, 'z'))
	require.NoError(t, s.Present())
	assert.Equal(t, ""+
		"\x1b[1;1H\x1b[m\x0f\x1b[7m\x1b[38;5;7m\x1b[48;5;0mz"+
		"\x1b[2;2H\x1b[m\x0f\x1b[1m\x1b[38;5;1m\x1b[48;5;0mx"+
		"\x1b[m\x0f\x1b[38;5;1m\x1b[48;5;0my",
		dev.out.String())

	// Nothing changed, nothing written
	dev.resetCounts()
	require.NoError(t, s.Present())
	assert.Equal(t, 0, dev.writeCalls)
}

func TestPresentWriteError(t *testing.T) {
	s, dev := newTestSession(t, 2, 1)
	dev.resetCounts()
	dev.script = []writeResult{{n: 0}}

	err := s.Present()
	assert.ErrorIs(t, err, ErrWriteZero)

	// Retry delivers the remainder
	require.NoError(t, s.Present())
	assert.Equal(t, strings.Repeat(blankBytes, 2)+"\x1b[1;1H"+strings.Repeat(blankBytes, 2), dev.out.String())
}

func TestSetCellErrors(t *testing.T) {
	s, _ := newTestSession(t, 3, 2)

	err := s.SetCell(3, 0, StyleNormal, ColorRed, ColorBlack, 'x')
	assert.ErrorIs(t, err, ErrOutOfBounds)
	err = s.SetCell(0, -1, StyleNormal, ColorRed, ColorBlack, 'x')
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = s.Cell(0, 2)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.SetCell(0, 0, StyleNormal, ColorRed, ColorBlack, 'x'), ErrClosed)
	assert.ErrorIs(t, s.Present(), ErrClosed)
	assert.ErrorIs(t, s.Clear(), ErrClosed)
	_, err = s.Cell(0, 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestFillAndClear(t *testing.T) {
	s, _ := newTestSession(t, 2, 2)
	red := Cell{Ch: '+', Fg: ColorRed, Bg: ColorRed, Style: StyleBlink}

	require.NoError(t, s.Fill(red))
	for _, c := range s.back.Cells() {
		assert.Equal(t, red, c)
	}

	require.NoError(t, s.Clear())
	for _, c := range s.back.Cells() {
		assert.Equal(t, BlankCell, c)
	}
}

func TestSessionCloseRestores(t *testing.T) {
	s, dev := newTestSession(t, 3, 2)
	orig := cookedSettings()
	captured, ok := s.mode.Original()
	require.True(t, ok)
	require.Equal(t, orig, captured)
	assert.NotEqual(t, orig, dev.attr, "device is raw while the session is active")
	require.NoError(t, s.SetCell(0, 0, StyleBold, ColorRed, ColorBlack, 'A'))
	require.NoError(t, s.Present())
	dev.resetCounts()

	require.NoError(t, s.Close())
	assert.Equal(t, exitBytes, dev.out.String())
	assert.Equal(t, orig, dev.attr, "settings after teardown equal the captured snapshot")
	require.Len(t, dev.setCalls, 2)
	assert.Equal(t, orig, dev.setCalls[1])
	assert.Equal(t, 0, dev.closes, "New does not own the device")

	// Idempotent
	require.NoError(t, s.Close())
	assert.Len(t, dev.setCalls, 2)
	assert.Equal(t, exitBytes, dev.out.String())

	// Device is free again
	s2, err := New(dev)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestSessionCloseErrorsSuppressed(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	dev := newFakeDevice(t.Name(), 2, 2)
	orig := dev.attr
	s, err := New(dev, WithLogger(log))
	require.NoError(t, err)

	dev.script = []writeResult{{n: 0, err: unix.EIO}}
	var closeErr error
	assert.NotPanics(t, func() { closeErr = s.Close() })
	assert.ErrorIs(t, closeErr, unix.EIO)

	// Restore still ran after the failed flush
	assert.Equal(t, orig, dev.attr)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["op"] == "flush" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestSessionExclusive(t *testing.T) {
	s, dev := newTestSession(t, 2, 2)

	_, err := New(dev)
	assert.ErrorIs(t, err, ErrSessionActive)
	assert.Len(t, dev.setCalls, 1, "rejected session must not touch the device")

	require.NoError(t, s.Close())
}

func TestSessionInitFailures(t *testing.T) {
	t.Run("capture", func(t *testing.T) {
		dev := newFakeDevice(t.Name(), 2, 2)
		dev.getErr = unix.ENOTTY

		s, err := New(dev)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, ErrInit)
		assert.Empty(t, dev.setCalls)
		assert.Zero(t, dev.out.Len())

		// Ownership released
		dev.getErr = nil
		s, err = New(dev)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	})

	t.Run("apply", func(t *testing.T) {
		dev := newFakeDevice(t.Name(), 2, 2)
		orig := dev.attr
		dev.setErr = unix.EIO
		dev.setErrAt = 1

		_, err := New(dev)
		assert.ErrorIs(t, err, ErrInit)
		assert.Equal(t, orig, dev.attr)
	})

	t.Run("size", func(t *testing.T) {
		dev := newFakeDevice(t.Name(), 2, 2)
		orig := dev.attr
		dev.sizeErr = unix.EINVAL

		_, err := New(dev)
		var ie *InitError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, "query size", ie.Op)
		require.Len(t, dev.setCalls, 2, "raw mode rolled back")
		assert.Equal(t, orig, dev.attr)
	})

	t.Run("enter", func(t *testing.T) {
		dev := newFakeDevice(t.Name(), 2, 2)
		orig := dev.attr
		dev.script = []writeResult{{n: 0}}

		_, err := New(dev)
		assert.ErrorIs(t, err, ErrInit)
		assert.ErrorIs(t, err, ErrWriteZero)
		assert.Equal(t, orig, dev.attr)
		assert.True(t, strings.HasSuffix(dev.out.String(), exitBytes))
	})
}

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/cellbox/terminal"
)

var (
	ttyFlag     = flag.String("tty", terminal.DefaultTTYPath, "Terminal device to take over")
	repaintFlag = flag.String("repaint", "full", "Repaint mode: full, diff")
	framesFlag  = flag.Int("frames", 60, "Number of frames to render before exiting")
	delayFlag   = flag.Duration("delay", 50*time.Millisecond, "Delay between frames")
	verboseFlag = flag.Bool("v", false, "Log session lifecycle to stderr")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the demo crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCELLBOX-DEMO CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if *verboseFlag {
		log.SetLevel(logrus.DebugLevel)
	}

	var repaint terminal.Repaint
	switch *repaintFlag {
	case "full":
		repaint = terminal.RepaintFull
	case "diff":
		repaint = terminal.RepaintDiff
	default:
		fmt.Fprintf(os.Stderr, "unknown repaint mode %q\n", *repaintFlag)
		os.Exit(2)
	}

	if err := run(log, repaint); err != nil {
		fmt.Fprintf(os.Stderr, "cellbox-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(log logrus.FieldLogger, repaint terminal.Repaint) error {
	s, err := terminal.Open(
		terminal.WithTTYPath(*ttyFlag),
		terminal.WithLogger(log),
		terminal.WithRepaint(repaint),
	)
	if err != nil {
		return err
	}
	// Normal exit terminal cleanup
	defer s.Close()

	guard := terminal.GuardSignals(s, nil)
	defer guard.Stop()

	w, h := s.Size()
	title := "cellbox"
	titleStyle := tcell.StyleDefault.
		Foreground(tcell.ColorSilver).
		Background(tcell.ColorMaroon).
		Bold(true)

	for frame := 0; frame < *framesFlag; frame++ {
		if err := s.Clear(); err != nil {
			return err
		}
		drawBorder(s, w, h)

		for i, r := range title {
			x := (w-len(title))/2 + i
			if x > 0 && x < w-1 && h > 2 {
				if err := s.SetTcellCell(x, h/2, r, titleStyle); err != nil {
					return err
				}
			}
		}

		// Marker runs along the inner top row
		if w > 2 && h > 2 {
			mx := 1 + frame%(w-2)
			if err := s.SetCell(mx, 1, terminal.StyleReverse, terminal.ColorRed, terminal.ColorWhite, '*'); err != nil {
				return err
			}
		}

		if err := s.Present(); err != nil {
			return err
		}
		time.Sleep(*delayFlag)
	}
	return nil
}

func drawBorder(s *terminal.Session, w, h int) {
	for x := 0; x < w; x++ {
		s.SetCell(x, 0, terminal.StyleBold, terminal.ColorRed, terminal.ColorBlack, '#')
		s.SetCell(x, h-1, terminal.StyleBold, terminal.ColorRed, terminal.ColorBlack, '#')
	}
	for y := 1; y < h-1; y++ {
		s.SetCell(0, y, terminal.StyleBold, terminal.ColorRed, terminal.ColorBlack, '#')
		s.SetCell(w-1, y, terminal.StyleBold, terminal.ColorRed, terminal.ColorBlack, '#')
	}
}

package terminal

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
)

// DefaultGuardSignals terminate the process unless handled.
// SIGINT only arrives from outside the terminal, since raw mode disables ISIG.
var DefaultGuardSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGHUP,
	syscall.SIGQUIT,
}

// SignalGuard closes a session when the process receives a terminating signal
type SignalGuard struct {
	sess     *Session
	onSignal func(os.Signal)
	sigCh    chan os.Signal
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// GuardSignals starts watching sigs (DefaultGuardSignals when empty).
// On delivery the session is closed, then onSignal runs; a nil onSignal exits
// the process with status 128+signo.
func GuardSignals(s *Session, onSignal func(os.Signal), sigs ...os.Signal) *SignalGuard {
	if len(sigs) == 0 {
		sigs = DefaultGuardSignals
	}
	if onSignal == nil {
		onSignal = exitOnSignal
	}
	g := &SignalGuard{
		sess:     s,
		onSignal: onSignal,
		sigCh:    make(chan os.Signal, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	signal.Notify(g.sigCh, sigs...)
	go g.watchLoop()
	return g
}

// Stop stops watching; the session is left as is
func (g *SignalGuard) Stop() {
	signal.Stop(g.sigCh)
	select {
	case <-g.stopCh:
	default:
		close(g.stopCh)
	}
	<-g.doneCh
}

func (g *SignalGuard) watchLoop() {
	defer close(g.doneCh)

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\nSIGNAL GUARD CRASHED: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	select {
	case <-g.stopCh:
		return
	case sig := <-g.sigCh:
		// Later signals get their default action again
		signal.Stop(g.sigCh)
		g.sess.Close()
		g.onSignal(sig)
	}
}

func exitOnSignal(sig os.Signal) {
	code := 1
	if s, ok := sig.(syscall.Signal); ok {
		code = 128 + int(s)
	}
	os.Exit(code)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Close cannot be called normally
func EmergencyReset(w io.Writer) {
	for _, seq := range exitSequences {
		w.Write(seq.Bytes())
	}
	w.Write(csiSGR0)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/xyproto/env/v2"
	"golang.org/x/term"
)

// signalGuard defers asynchronous interrupt/hangup/window-resize delivery
// around critical sections: every structural edit frames itself with
// disable()/enable() of signal delivery. Nesting is counted so an inner
// critical section started while an outer one is already active does not
// prematurely re-enable delivery.
//
// Go does not surface an interrupted blocking read the way a signal
// handler unwinding with EINTR does in C, so delivery here only ever sets
// "pending" for the editor to notice at its next safe point: runCommand
// (api.go) checks right after get_stdin_line returns a command line, and
// appendLoop checks before reading each line of text. Both checks run
// inside runCommand, which recovers the resulting abort into an ordinary
// error.
type signalGuard struct {
	mu       sync.Mutex
	depth    int
	pending  os.Signal
	ready    chan struct{}
	sigch    chan os.Signal
	onResize func()
}

func newSignalGuard() *signalGuard {
	g := &signalGuard{sigch: make(chan os.Signal, 4), ready: make(chan struct{}, 1)}
	signal.Notify(g.sigch, syscall.SIGHUP, syscall.SIGINT, syscall.SIGWINCH)
	go g.pump()
	return g
}

func (g *signalGuard) pump() {
	for sig := range g.sigch {
		if sig == syscall.SIGWINCH {
			if g.onResize != nil {
				g.onResize()
			}
			continue
		}
		g.mu.Lock()
		g.pending = sig
		g.mu.Unlock()
		select {
		case g.ready <- struct{}{}:
		default:
		}
	}
}

// disable begins a critical section, deferring interrupt/hangup delivery.
func (g *signalGuard) disable() {
	g.mu.Lock()
	g.depth++
	g.mu.Unlock()
}

// enable ends a critical section. A signal noticed while disabled is not
// replayed here — runCommand and appendLoop poll takePending() at their
// own safe points, so enable only needs to track nesting.
func (g *signalGuard) enable() {
	g.mu.Lock()
	g.depth--
	g.mu.Unlock()
}

// takePending returns, and clears, a signal observed since the last call, but
// only once the outermost critical section (if any) has exited.
func (g *signalGuard) takePending() os.Signal {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.depth > 0 {
		return nil
	}
	sig := g.pending
	g.pending = nil
	return sig
}

func (g *signalGuard) stop() {
	signal.Stop(g.sigch)
	close(g.sigch)
}

// checkAbort aborts the current command if a signal has arrived, called by
// the command loop at each safe point outside any critical section.
func (e *Editor) checkAbort() {
	if e.sig == nil {
		return
	}
	switch e.sig.takePending() {
	case syscall.SIGINT:
		e.abort(errInterrupt)
	case syscall.SIGHUP:
		e.abort(errHangup)
	}
}

// withCritical runs f with signal delivery deferred, unconditionally
// re-enabling afterward even if f panics (a structural edit aborted
// partway through still needs its signal mask restored).
func (e *Editor) withCritical(f func() error) error {
	if e.sig == nil {
		return f()
	}
	e.sig.disable()
	defer e.sig.enable()
	return f()
}

// windowSize answers the window-size-change signal with a clamped
// (rows, cols) pair (ws_row-2 clamped to [2,600], ws_col-8 clamped to
// [8,1800]), using golang.org/x/term for the underlying ioctl.
func windowSize(fd int) (rows, cols int, ok bool) {
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, false
	}
	rows = clamp(h-2, 2, 600)
	cols = clamp(w-8, 8, 1800)
	return rows, cols, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hangupDumpPath resolves where to save the buffer on SIGHUP: the current
// directory's ed.hup, falling back to $HOME/ed.hup via
// github.com/xyproto/env/v2 for the lookup.
func hangupDumpPath() string {
	const name = "ed.hup"
	if wd, err := os.Getwd(); err == nil {
		probe := wd + "/." + name + ".tmp"
		if f, err := os.Create(probe); err == nil {
			f.Close()
			os.Remove(probe)
			return wd + "/" + name
		}
	}
	if home := env.Str("HOME", ""); home != "" {
		return home + "/" + name
	}
	return name
}

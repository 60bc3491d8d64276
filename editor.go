package main

import (
	"os"

	"github.com/jcorbin/goed/internal/flushio"
	"github.com/jcorbin/goed/internal/logio"
)

// editorFlags holds the scattered booleans/bookkeeping the dispatcher and
// I/O layer flip, broken out from Editor itself rather than left as loose
// fields.
type editorFlags struct {
	modified     bool // unsaved structural edits since last w
	binary       bool // an embedded NUL was seen on read
	unterminated int  // handle of the line missing a trailing newline, or 0
	extended     bool // -E: ERE syntax; false is -G traditional BRE
	stripCR      bool // --strip-trailing-cr
	restricted   bool // -r / invoked as `red`
	scripted     bool // -s/--quiet/--silent
	verbose      bool // -v, or toggled by H
	promptOn     bool // P toggles; -p also sets this true
	isTTY        bool // stdin is a terminal; gates whether the prompt is ever echoed
	looseExit    bool // -l
	emodPending  bool // a q/e was just refused for a modified buffer; repeating overrides
	lastError    error
	lastShellCmd string
	lang         string // -H LANG, passed through to Highlighter
}

// Editor is the full in-memory state of one editing session: the line
// sequence (buffer.go), its backing scratch file (scratch.go), the undo
// stack (undo.go), marks (marks.go), the global-command active set
// (globalset.go), and the regex pool (regexfacade.go).
type Editor struct {
	logging

	arena   *lineArena
	scratch *scratchStore

	current int
	last    int

	locCacheAddr int
	locCacheH    int

	yank     []scratchLoc
	marksTbl marksTable

	undoStk undoStack
	global  globalSet
	re      regexEngine

	filename string
	prompt   string
	mods     editorFlags

	shell     Shell
	highlight Highlighter
	sig       *signalGuard

	in  *cursorReader
	out flushio.WriteFlusher

	diag logio.Logger

	closers []closer
}

type closer interface {
	Close() error
}

// New constructs an Editor ready to run, applying options in order.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		locCacheAddr: -1,
		shell:        execShell{},
		highlight:    noopHighlighter{},
	}
	store, err := newScratchStore()
	if err != nil {
		return nil, err
	}
	e.scratch = store
	e.arena = newLineArena()
	e.diag.SetOutput(noCloseWriter{os.Stderr})

	Options(opts...).apply(e)
	return e, nil
}

// noCloseWriter adapts an io.Writer that must not be closed (standard
// error, shared with the rest of the process) into the io.WriteCloser
// logio.Logger requires.
type noCloseWriter struct{ w *os.File }

func (n noCloseWriter) Write(p []byte) (int, error) { return n.w.Write(p) }
func (noCloseWriter) Close() error                  { return nil }

// Close releases the scratch file and any reader/writer closers acquired
// by options, most-recently-added first.
func (e *Editor) Close() error {
	var err error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if cerr := e.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	if e.scratch != nil {
		if cerr := e.scratch.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

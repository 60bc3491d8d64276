package main

import (
	"errors"
	"io"
	"os"

	"github.com/jcorbin/goed/internal/panicerr"
)

// quitRequest is the abort payload a successful q/Q/wq raises to unwind out
// of the command loop (dispatch.go's cmdQuit/cmdWrite), distinct from a
// plain nil error so Run can tell "stop looping, cleanly" apart from
// "command ran with no error".
type quitRequest struct{}

func (quitRequest) Error() string { return "quit" }

// Run drives the command loop until end of input, a quit command, or a
// hang-up. It returns a process exit code.
//
// The loop itself runs inside panicerr.Recover: any goroutine panic that
// escapes it (an internal bookkeeping bug, not a user-facing editor error)
// becomes exit code 3 instead of crashing the process.
func (e *Editor) Run() int {
	if e.sig != nil {
		defer e.sig.stop()
	}

	var code int
	err := panicerr.Recover("goed", func() error {
		code = e.loop()
		return nil
	})
	if err != nil {
		e.reportFatal(err)
		return 3
	}
	return code
}

func (e *Editor) loop() int {
	for {
		if e.mods.promptOn && e.prompt != "" && e.mods.isTTY {
			if err := e.writeString(e.prompt); err != nil {
				e.reportFatal(err)
				return 1
			}
		}

		raw, err := e.getStdinLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return e.finalExitCode(nil)
			}
			e.reportFatal(err)
			return 1
		}

		cmdErr := e.runCommand(string(raw))
		if cmdErr == nil {
			continue
		}

		var quit quitRequest
		if errors.As(cmdErr, &quit) {
			return e.finalExitCode(nil)
		}
		if errors.Is(cmdErr, errHangup) {
			if e.saveHangupDump() {
				return 0
			}
			return 1
		}

		var fe fatalError
		if errors.As(cmdErr, &fe) {
			e.reportFatal(cmdErr)
			return 1
		}

		e.reportCommandError(cmdErr)
		if e.mods.scripted {
			return e.finalExitCode(cmdErr)
		}
	}
}

// runCommand executes one top-level command-input line, first delivering
// any pending interrupt or hang-up, and converts a panic'd abortSignal
// (interrupt, hang-up, or a q/Q/wq quit request) back into a plain error
// return (core.go: abort). recover is called directly by the deferred
// function, which Go requires for it to stop the panic.
func (e *Editor) runCommand(line string) (err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case abortSignal:
			err = r.err
		default:
			panic(r)
		}
	}()
	e.checkAbort()
	return e.execLine(line, false)
}

// finalExitCode maps a possibly-nil terminal error to a process exit code,
// honoring -l (loose exit status: always report success).
func (e *Editor) finalExitCode(err error) int {
	if e.mods.looseExit {
		return 0
	}
	if err == nil {
		return 0
	}
	return 2
}

// reportCommandError prints "?" for a failed command (and the message, if
// verbose or via a later `h`); the last error is retained for `h` and for
// EMOD bookkeeping. In scripted mode the message is additionally logged
// with its input line number, through the same diagnostic logger verbose
// mode uses.
func (e *Editor) reportCommandError(err error) {
	e.mods.lastError = err
	_ = e.writeString("?\n")
	if e.mods.verbose {
		e.diag.Printf("", "%s", err.Error())
	}
	if e.mods.scripted {
		e.diag.Errorf("script, line %d: %s", e.in.scriptLine, err.Error())
	}
}

// reportFatal logs an unrecoverable error, bypassing the "?" convention
// used for ordinary command errors.
func (e *Editor) reportFatal(err error) {
	e.diag.Errorf("%s", err.Error())
}

// saveHangupDump writes the live buffer to ./ed.hup, falling back to
// $HOME/ed.hup.
func (e *Editor) saveHangupDump() bool {
	path := hangupDumpPath()
	f, err := os.Create(path)
	if err != nil {
		return false
	}
	defer f.Close()
	for a := 1; a <= e.last; a++ {
		text, err := e.lineText(a)
		if err != nil {
			return false
		}
		if _, err := f.Write(text); err != nil {
			return false
		}
		if _, err := f.Write([]byte{'\n'}); err != nil {
			return false
		}
	}
	return true
}

// openInitialFile loads a file named on the command line at startup, the
// same effect an `e` command has but without the EMOD modified-buffer
// check (there is nothing to lose yet) and without opening an undo frame
// (the initial load is not itself undoable, matching cmdEdit's own load).
func (e *Editor) openInitialFile(name string) error {
	e.filename = name
	_, err := e.readFile(name, 0)
	e.mods.modified = false
	return err
}

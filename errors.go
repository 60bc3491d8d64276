package main

import (
	"fmt"

	"golang.org/x/xerrors"
)

// errKind implements the fixed, parameterless error messages enumerated in
// the editor's error handling design: each surfaces verbatim as "?" followed
// by this text, never as a panic or exception.
type errKind string

func (k errKind) Error() string { return string(k) }

const (
	errInvalidAddress            errKind = "Invalid address"
	errInvalidCommandSuffix      errKind = "Invalid command suffix"
	errInvalidDestination        errKind = "Invalid destination"
	errInvalidMarkCharacter      errKind = "Invalid mark character"
	errInvalidPatternDelimiter   errKind = "Invalid pattern delimiter"
	errMissingPatternDelimiter   errKind = "Missing pattern delimiter"
	errUnbalancedBrackets        errKind = "Unbalanced brackets"
	errTrailingBackslash         errKind = "Trailing backslash"
	errNoPreviousPattern         errKind = "No previous pattern"
	errNoPreviousSubstitution    errKind = "No previous substitution"
	errNoPreviousCommand         errKind = "No previous command"
	errNoCurrentFilename         errKind = "No current filename"
	errNoMatch                   errKind = "No match"
	errNothingToPut              errKind = "Nothing to put"
	errNothingToUndo             errKind = "Nothing to undo"
	errCannotNestGlobal          errKind = "Cannot nest global commands"
	errShellAccessRestricted     errKind = "Shell access restricted"
	errDirectoryAccessRestricted errKind = "Directory access restricted"
	errFilenameTooLong           errKind = "Filename too long"
	errTooManyLines              errKind = "Too many lines"
	errTooManyMatchingLines      errKind = "Too many matching lines"
	errUndoStackTooLong          errKind = "Undo stack too long"
	errLineTooLong               errKind = "Line too long"
	errMemoryExhausted           errKind = "Out of memory"
	errInterrupt                 errKind = "Interrupt"
	errHangup                    errKind = "Hangup"
	errBufferModified            errKind = "Warning: buffer modified"
	errInfiniteSubstitutionLoop  errKind = "Infinite substitution loop"
)

// ioError wraps a failed file/pipe operation, e.g. IOError(op, name) from the
// error handling design. The underlying cause is preserved with
// golang.org/x/xerrors so %+v formatting (and errors.As) still reaches it,
// the same role xerrors plays in godoctor's refactoring error paths.
type ioError struct {
	op, name string
	err      error
}

func newIOError(op, name string, cause error) error {
	return &ioError{op: op, name: name, err: xerrors.Errorf("%s %s: %w", op, name, cause)}
}

func (e *ioError) Error() string { return fmt.Sprintf("cannot %s %q", e.op, e.name) }
func (e *ioError) Unwrap() error { return e.err }

// regexError wraps a pattern compilation or execution failure.
type regexError struct {
	text string
	err  error
}

func newRegexError(text string, cause error) error {
	return &regexError{text: text, err: xerrors.Errorf("regex %q: %w", text, cause)}
}

func (e *regexError) Error() string { return fmt.Sprintf("%s: %v", e.text, e.err) }
func (e *regexError) Unwrap() error { return e.err }

// fatalError marks an error that should terminate the process even in
// interactive mode (corrupt internal state, an unrecoverable I/O failure on
// the controlling terminal).
type fatalError struct{ err error }

func (e fatalError) Error() string {
	if e.err == nil {
		return "Fatal error"
	}
	return fmt.Sprintf("Fatal error: %v", e.err)
}
func (e fatalError) Unwrap() error { return e.err }

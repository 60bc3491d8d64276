package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/goed/internal/growbuf"
	"github.com/jcorbin/goed/internal/runeio"
)

// cursorReader buffers the command-input stream rune by rune and counts
// lines for script-mode error reporting. Runes come from a runeio.Reader;
// for an input that is not already one (such as os.Stdin) that is a
// bufio.Reader, which may read ahead of the current line from the
// underlying descriptor.
type cursorReader struct {
	r          runeio.Reader
	buf        growbuf.Buffer
	scriptLine int
}

func newCursorReader(r io.Reader) *cursorReader {
	return &cursorReader{r: runeio.NewReader(r)}
}

// readLine returns one line, including its trailing newline, or io.EOF.
// The line accumulates in a reusable growbuf.Buffer rather than a fresh
// slice per call, so a long scripted run doesn't churn the allocator one
// line at a time.
func (cr *cursorReader) readLine() ([]byte, error) {
	cr.buf.Reset()
	for {
		r, _, err := cr.r.ReadRune()
		if err != nil {
			if cr.buf.Len() > 0 {
				return cr.buf.Bytes(), nil
			}
			return nil, err
		}
		if _, err := cr.buf.Append([]byte(string(r))); err != nil {
			return nil, err
		}
		if r == '\n' {
			cr.scriptLine++
			return cr.buf.Bytes(), nil
		}
	}
}

// writeRune emits one rune to standard output, using the ANSI-safe
// encoding in internal/runeio, so control characters round-trip the same
// way regardless of which stream prints them.
func (e *Editor) writeRune(r rune) error {
	_, err := runeio.WriteANSIRune(e.out, r)
	return err
}

func (e *Editor) writeString(s string) error {
	if _, err := runeio.WriteANSIString(e.out, s); err != nil {
		return err
	}
	return e.out.Flush()
}

// printLine writes one line's text per the l/n/p suffix flags: n prefixes
// the address, l renders unprintable/control bytes in caret form and
// marks the true end of line with '$', p is the bare default.
func (e *Editor) printLine(addr int, withNumber, caret bool) error {
	text, err := e.lineText(addr)
	if err != nil {
		return err
	}
	var sb strings.Builder
	if withNumber {
		fmt.Fprintf(&sb, "%d\t", addr)
	}
	if caret {
		for _, r := range string(text) {
			if cf := runeio.CaretForm(r); cf != "" {
				sb.WriteString(cf)
			} else {
				sb.WriteRune(r)
			}
		}
		sb.WriteByte('$')
	} else {
		sb.Write(e.highlight.Highlight(text, e.mods.lang))
	}
	sb.WriteByte('\n')
	return e.writeString(sb.String())
}

// abortSignal unwinds a command (or a global command's whole body) back to
// the top of the command loop using panic/recover as a longjmp equivalent
// for deeply nested evaluation. It is caught by the command loop and
// reported as an ordinary error; only a true fatalError propagates out of
// Run.
type abortSignal struct{ err error }

func (e *Editor) abort(err error) {
	panic(abortSignal{err})
}

// recoverAbort turns a pending abortSignal panic into an error return,
// leaving any other panic to propagate. Mirrors panicerr.Recover's
// recovery logic, but applied per-command rather than per-goroutine.
func recoverAbort() error {
	switch r := recover().(type) {
	case nil:
		return nil
	case abortSignal:
		return r.err
	default:
		panic(r)
	}
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

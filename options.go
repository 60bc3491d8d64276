package main

import (
	"io"
	"os"

	"github.com/jcorbin/goed/internal/flushio"
	"golang.org/x/term"
)

// Option configures an Editor at construction.
type Option interface{ apply(e *Editor) }

// Options flattens a list of options into one, so a caller can pass around
// a single saved Option value.
func Options(opts ...Option) Option {
	var res optionList
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noOption:
		case optionList:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noOption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noOption struct{}

func (noOption) apply(*Editor) {}

type optionList []Option

func (opts optionList) apply(e *Editor) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(e)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (fn withLogfn) apply(e *Editor) { e.logfn = fn }

// WithLogf sets the editor's diagnostic trace-logging function, used for
// the occasional internal "#" mark noted in ioops.go.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

type inputOption struct{ io.Reader }

// WithInput sets the command-input stream (default: none; main.go supplies
// stdin). When r is a terminal, the editor's prompt (-p / P) is eligible
// to be echoed; a non-tty input (a script piped on stdin, or any other
// io.Reader) never prints one even if a prompt string was configured.
func WithInput(r io.Reader) Option { return inputOption{r} }

func (i inputOption) apply(e *Editor) {
	e.in = newCursorReader(i.Reader)
	if f, ok := i.Reader.(*os.File); ok {
		e.mods.isTTY = term.IsTerminal(int(f.Fd()))
	}
}

type outputOption struct{ io.Writer }

// WithOutput sets the standard-output stream.
func WithOutput(w io.Writer) Option { return outputOption{w} }

func (o outputOption) apply(e *Editor) {
	e.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(closer); ok {
		e.closers = append(e.closers, cl)
	}
}

type shellOption struct{ Shell }

// WithShell overrides the default os/exec-backed Shell, e.g. with a fake
// for tests.
func WithShell(s Shell) Option { return shellOption{s} }

func (o shellOption) apply(e *Editor) { e.shell = o.Shell }

type highlighterOption struct{ Highlighter }

// WithHighlighter overrides the no-op default Highlighter.
func WithHighlighter(h Highlighter) Option { return highlighterOption{h} }

func (o highlighterOption) apply(e *Editor) { e.highlight = o.Highlighter }

type restrictedOption bool

// WithRestricted enables restricted mode (-r / invoked as `red`).
func WithRestricted(v bool) Option { return restrictedOption(v) }

func (v restrictedOption) apply(e *Editor) { e.mods.restricted = bool(v) }

type extendedOption bool

// WithExtendedRegex selects ERE syntax (-E) over the default BRE (-G).
func WithExtendedRegex(v bool) Option { return extendedOption(v) }

func (v extendedOption) apply(e *Editor) { e.mods.extended = bool(v) }

type stripCROption bool

// WithStripCR enables --strip-trailing-cr.
func WithStripCR(v bool) Option { return stripCROption(v) }

func (v stripCROption) apply(e *Editor) { e.mods.stripCR = bool(v) }

type scriptedOption bool

// WithScripted enables -s/--quiet/--silent.
func WithScripted(v bool) Option { return scriptedOption(v) }

func (v scriptedOption) apply(e *Editor) { e.mods.scripted = bool(v) }

type verboseOption bool

// WithVerbose enables -v.
func WithVerbose(v bool) Option { return verboseOption(v) }

func (v verboseOption) apply(e *Editor) { e.mods.verbose = bool(v) }

type looseExitOption bool

// WithLooseExit enables -l.
func WithLooseExit(v bool) Option { return looseExitOption(v) }

func (v looseExitOption) apply(e *Editor) { e.mods.looseExit = bool(v) }

type promptOption string

// WithPrompt sets the prompt string and turns it on (-p STR).
func WithPrompt(s string) Option { return promptOption(s) }

func (s promptOption) apply(e *Editor) {
	e.prompt = string(s)
	e.mods.promptOn = true
}

type highlightLangOption string

// WithHighlightLang sets -H LANG.
func WithHighlightLang(lang string) Option { return highlightLangOption(lang) }

func (s highlightLangOption) apply(e *Editor) { e.mods.lang = string(s) }

type filenameOption string

// WithFilename sets the default filename, as if set by a prior e/r/w.
func WithFilename(name string) Option { return filenameOption(name) }

func (s filenameOption) apply(e *Editor) { e.filename = string(s) }

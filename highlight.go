package main

// Highlighter is an opaque transformation from (text, lang) to styled
// bytes, left as a pluggable collaborator rather than built in. printLine
// passes each line it prints without the l flag through it, with -H LANG
// (e.mods.lang). The default, used unless a caller supplies one via
// WithHighlighter, returns the text unchanged.
type Highlighter interface {
	Highlight(text []byte, lang string) []byte
}

type noopHighlighter struct{}

func (noopHighlighter) Highlight(text []byte, _ string) []byte { return text }

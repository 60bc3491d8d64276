package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestEditor builds an Editor with output captured to a buffer and no
// input stream, for tests that drive execLine directly.
func newTestEditor(t *testing.T, opts ...Option) (*Editor, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	e, err := New(append([]Option{WithOutput(&out)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e, &out
}

// runScript builds an Editor over a whole script of command-input lines and
// runs it to completion via Run, for end-to-end scenario tests.
func runScript(t *testing.T, script string, opts ...Option) (*Editor, string) {
	t.Helper()
	var out bytes.Buffer
	e, err := New(append([]Option{WithInput(strings.NewReader(script)), WithOutput(&out)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	e.Run()
	return e, out.String()
}

// loadLines appends each string as a line at the end of the buffer, bypassing
// command parsing, for tests that want a preloaded buffer without caring how
// `a` works.
func loadLines(t *testing.T, e *Editor, lines ...string) {
	t.Helper()
	texts := make([][]byte, len(lines))
	for i, l := range lines {
		texts[i] = []byte(l)
	}
	_, err := e.insertLines(e.last, texts)
	require.NoError(t, err)
}

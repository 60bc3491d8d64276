package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseAddr_bases(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c", "d", "e")
	e.current = 3

	for _, tc := range []struct {
		name string
		in   string
		want int
	}{
		{"dot", ".", 3},
		{"dollar", "$", 5},
		{"number", "4", 4},
		{"plus default", ".+1", 4},
		{"minus default", ".-1", 2},
		{"plus n", ".+2", 5},
		{"bare plus", "+", 4},
		{"bare minus", "-", 2},
		{"chained offsets", ".+1-2", 2},
		{"spaced offset", ". +1", 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := newCursor(tc.in)
			addr, ok, err := e.parseAddr(c)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tc.want, addr)
			assert.True(t, c.atEnd())
		})
	}
}

func Test_parseAddr_noBase(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b")
	e.current = 2
	c := newCursor("")
	addr, ok, err := e.parseAddr(c)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, addr)
}

func Test_parseAddr_mark(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c")
	require.NoError(t, e.setMark(2, 'x'))

	c := newCursor("'x")
	addr, ok, err := e.parseAddr(c)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, addr)
}

func Test_parseAddr_invalidMarkChar(t *testing.T) {
	e, _ := newTestEditor(t)
	c := newCursor("'")
	_, _, err := e.parseAddr(c)
	assert.Equal(t, errInvalidMarkCharacter, err)
}

func Test_parseAddr_search(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "alpha", "beta", "gamma")
	e.current = 1

	c := newCursor("/gamma/")
	addr, ok, err := e.parseAddr(c)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, addr)

	e.current = 3
	c = newCursor("?alpha?")
	addr, ok, err = e.parseAddr(c)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, addr)
}

func Test_parseAddrList_percentIsFullRange(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c")
	c := newCursor("%")
	first, second, count, err := e.parseAddrList(c)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, second)
	assert.Equal(t, 2, count)
}

func Test_parseAddrList_comma(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c", "d")
	e.current = 2

	c := newCursor("1,3")
	first, second, count, err := e.parseAddrList(c)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, second)
	assert.Equal(t, 2, count)
}

// Test_parseAddrList_semicolonSetsCurrent exercises the design's rule that
// ';' additionally sets current to the previous second address, which
// affects how a trailing bare address resolves.
func Test_parseAddrList_semicolonSetsCurrent(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c", "d", "e")
	e.current = 1

	c := newCursor("2;+1")
	first, second, count, err := e.parseAddrList(c)
	require.NoError(t, err)
	assert.Equal(t, 2, first)
	assert.Equal(t, 3, second) // current was reset to 2 before "+1" resolved
	assert.Equal(t, 2, count)
}

func Test_parseAddrList_singleAddress(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c")
	c := newCursor("2")
	first, second, count, err := e.parseAddrList(c)
	require.NoError(t, err)
	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, count)
}

func Test_parseAddrList_empty(t *testing.T) {
	e, _ := newTestEditor(t)
	c := newCursor("")
	first, second, count, err := e.parseAddrList(c)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, first)
	assert.Equal(t, 0, second)
}

func Test_readDelimited_escapesDelimiter(t *testing.T) {
	c := newCursor(`/a\/b/`)
	body, err := c.readDelimited('/')
	require.NoError(t, err)
	assert.Equal(t, "a/b", body)
}

func Test_readDelimited_unrecognizedEscapeKeepsBackslash(t *testing.T) {
	c := newCursor(`/a\.b/`)
	body, err := c.readDelimited('/')
	require.NoError(t, err)
	assert.Equal(t, `a\.b`, body)
}

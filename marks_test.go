package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_marks_setAndResolve(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c")

	require.NoError(t, e.setMark(2, 'b'))
	addr, err := e.markAddr('b')
	require.NoError(t, err)
	assert.Equal(t, 2, addr)
}

func Test_marks_invalidCharacter(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a")
	assert.Equal(t, errInvalidMarkCharacter, e.setMark(1, 'A'))
	assert.Equal(t, errInvalidMarkCharacter, e.setMark(1, '0'))
	_, err := e.markAddr('!')
	assert.Equal(t, errInvalidMarkCharacter, err)
}

func Test_marks_unsetIsInvalidAddress(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a")
	_, err := e.markAddr('z')
	assert.Equal(t, errInvalidAddress, err)
}

func Test_marks_clearedWhenLineFreed(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c")
	require.NoError(t, e.setMark(2, 'm'))

	e.openFrame()
	require.NoError(t, e.deleteRange(2, 2, false))
	e.discardFrame() // releases the DEL-owned range, as a later openFrame would

	_, err := e.markAddr('m')
	assert.Equal(t, errInvalidAddress, err)
}

func Test_marks_trackAddressAfterStructuralShift(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a", "b", "c")
	require.NoError(t, e.setMark(3, 'z')) // mark "c"

	e.openFrame()
	require.NoError(t, e.deleteRange(1, 1, false)) // remove "a"

	addr, err := e.markAddr('z')
	require.NoError(t, err)
	assert.Equal(t, 2, addr, "c is now address 2, not 3")
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildActive_matchingSense(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "apple", "banana", "avocado", "kiwi")

	require.NoError(t, e.buildActive(1, 4, "^a", false, false, true))
	var got []int
	for {
		h, ok := e.global.next()
		if !ok {
			break
		}
		addr, err := e.addrOfHandle(h)
		require.NoError(t, err)
		got = append(got, addr)
	}
	assert.Equal(t, []int{1, 3}, got)
}

func Test_buildActive_nonMatchingSense(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "apple", "banana", "avocado", "kiwi")

	require.NoError(t, e.buildActive(1, 4, "^a", false, false, false))
	var got []int
	for {
		h, ok := e.global.next()
		if !ok {
			break
		}
		addr, err := e.addrOfHandle(h)
		require.NoError(t, err)
		got = append(got, addr)
	}
	assert.Equal(t, []int{2, 4}, got)
}

func Test_globalSet_nextSkipsTombstones(t *testing.T) {
	var g globalSet
	g.add(10)
	g.add(20)
	g.add(30)
	g.handles[1] = 0 // simulate a deleted entry

	var got []int
	for {
		h, ok := g.next()
		if !ok {
			break
		}
		got = append(got, h)
	}
	assert.Equal(t, []int{10, 30}, got)
}

func Test_globalSet_addDedupes(t *testing.T) {
	var g globalSet
	g.add(5)
	g.add(5)
	assert.Equal(t, []int{5}, g.handles)
}

func Test_globalSet_unsetChain(t *testing.T) {
	a := newLineArena()
	h1 := a.alloc(scratchLoc{})
	h2 := a.alloc(scratchLoc{})
	h3 := a.alloc(scratchLoc{})
	a.nodes[h1].next = h2
	a.nodes[h2].next = h3

	var g globalSet
	g.add(h1)
	g.add(h2)
	g.add(h3)

	g.unsetChain(a, h1, h2)

	h, ok := g.next()
	require.True(t, ok)
	assert.Equal(t, h3, h)
	_, ok = g.next()
	assert.False(t, ok)
}

func Test_cmdGlobal_rejectsNesting(t *testing.T) {
	e, _ := newTestEditor(t)
	loadLines(t, e, "a")
	e.global.running = true
	err := e.execLine("g/a/d", false)
	assert.Equal(t, errCannotNestGlobal, err)
}

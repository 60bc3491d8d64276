package main

import "github.com/bits-and-blooms/bitset"

// globalSet is the active set built by a global command: an ordered list
// of line handles (never addresses — addresses shift as the
// command list executes structural edits), traversed by a monotonically
// non-decreasing cursor. Entries are nulled (handle 0) rather than removed
// when their line is deleted or moved, so the cursor position stays valid.
//
// The ordered slice is the traversal structure; present tracks membership
// by handle so build/unset can check "is this handle already active"
// without a linear scan, the same role github.com/bits-and-blooms/bitset
// plays for godoctor's conflict-set tracking.
type globalSet struct {
	handles []int
	cursor  int
	present *bitset.BitSet
	running bool // set while a global command's body is executing
}

func (g *globalSet) clear() {
	g.handles = g.handles[:0]
	g.cursor = 0
	if g.present != nil {
		g.present.ClearAll()
	}
}

func (g *globalSet) add(h int) {
	if g.present == nil {
		g.present = bitset.New(64)
	}
	if g.present.Test(uint(h)) {
		return
	}
	g.present.Set(uint(h))
	g.handles = append(g.handles, h)
}

// next returns the next non-null handle, advancing the cursor past any
// tombstones, or ok=false once the set is exhausted.
func (g *globalSet) next() (h int, ok bool) {
	for g.cursor < len(g.handles) {
		h = g.handles[g.cursor]
		g.cursor++
		if h != 0 {
			return h, true
		}
	}
	return 0, false
}

// unsetChain nulls out every active entry whose handle lies in the
// detached-but-linked chain [head..tail] (internal next pointers within the
// chain are untouched by a delete's or move's splice, so this walk is
// valid both right after deleteRange unlinks the range and right after
// moveRange resplices it elsewhere).
func (g *globalSet) unsetChain(arena *lineArena, head, tail int) {
	if g.present == nil {
		return
	}
	for idx := head; ; {
		next := arena.nodes[idx].next
		if g.present.Test(uint(idx)) {
			g.present.Clear(uint(idx))
			for i, h := range g.handles {
				if h == idx {
					g.handles[i] = 0
				}
			}
		}
		if idx == tail {
			break
		}
		idx = next
	}
}

func (e *Editor) buildActive(first, second int, pattern string, ignoreCase, extended, matchSense bool) error {
	m, err := e.compilePattern(pattern, ignoreCase, extended)
	if err != nil {
		return err
	}

	e.global.clear()
	for a := first; a <= second; a++ {
		h := e.locate(a)
		text, err := e.scratch.Get(e.arena.nodes[h].loc)
		if err != nil {
			return err
		}
		if m.Match(text) == matchSense {
			e.global.add(h)
		}
	}
	return nil
}

// unsetActiveRange is the convenience used by deleteRange and moveRange:
// they pass the head and tail handles of the range (still a contiguous,
// internally-linked chain at the moment of the call), and it delegates to
// unsetChain.
func (e *Editor) unsetActiveRange(head, tail int) {
	e.global.unsetChain(e.arena, head, tail)
}

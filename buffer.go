package main

// lineNode is one element of the line sequence: an intrusive node in a
// doubly-linked ring, addressed through a stable arena index rather than a
// pointer so the yank buffer and undo stack can hold the same identity
// across structural edits.
type lineNode struct {
	loc  scratchLoc
	next int
	prev int
}

// lineArena owns every line node ever allocated in a session. Index 0 is the
// permanent sentinel: arena.nodes[0].next is the first live line (address
// 1), arena.nodes[0].prev is the last live line (address `last`).
type lineArena struct {
	nodes []lineNode
	free  []int
}

func newLineArena() *lineArena {
	return &lineArena{nodes: []lineNode{{}}} // nodes[0]: sentinel, next=prev=0 (empty ring)
}

func (a *lineArena) alloc(loc scratchLoc) int {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[idx] = lineNode{loc: loc}
		return idx
	}
	a.nodes = append(a.nodes, lineNode{loc: loc})
	return len(a.nodes) - 1
}

func (a *lineArena) release(idx int) {
	a.free = append(a.free, idx)
}

// spliceAfter inserts an already-linked chain [head..tail] into the ring
// immediately after at.
func (a *lineArena) spliceAfter(at, head, tail int) {
	next := a.nodes[at].next
	a.nodes[at].next = head
	a.nodes[head].prev = at
	a.nodes[tail].next = next
	a.nodes[next].prev = tail
}

// unlinkRange detaches [head..tail] (a contiguous run reachable by next
// pointers) from the ring. Internal links within the range, and head.prev /
// tail.next, are left untouched so a matching relinkRange can restore
// the range to the exact position it was cut from.
func (a *lineArena) unlinkRange(head, tail int) {
	p, n := a.nodes[head].prev, a.nodes[tail].next
	a.nodes[p].next = n
	a.nodes[n].prev = p
}

// relinkRange reverses an unlinkRange using the range's still-intact
// head.prev/tail.next pointers.
func (a *lineArena) relinkRange(head, tail int) {
	p, n := a.nodes[head].prev, a.nodes[tail].next
	a.nodes[p].next = head
	a.nodes[n].prev = tail
}

// chainOf builds a new, not-yet-spliced chain of nodes for each loc, in
// order, suitable for a single spliceAfter call.
func (a *lineArena) chainOf(locs []scratchLoc) (head, tail int) {
	for i, loc := range locs {
		idx := a.alloc(loc)
		if i == 0 {
			head = idx
		} else {
			a.nodes[tail].next = idx
			a.nodes[idx].prev = tail
		}
		tail = idx
	}
	return head, tail
}

// releaseRange walks a detached [head..tail] chain by next pointers,
// clearing any mark that points into it, and returns the nodes to the free
// list. Called only once a DEL atom is finally discarded by the undo
// stack, which is what frees the records it referenced.
func (e *Editor) releaseRange(head, tail int) {
	for idx := head; ; {
		next := e.arena.nodes[idx].next
		e.clearMarksTo(idx)
		if e.mods.unterminated == idx {
			e.mods.unterminated = 0
		}
		e.arena.release(idx)
		if idx == tail {
			break
		}
		idx = next
	}
}

// --- address arithmetic ---

func (e *Editor) incAddr(a int) int {
	if a == e.last {
		return 0
	}
	return a + 1
}

func (e *Editor) decAddr(a int) int {
	if a == 0 {
		return e.last
	}
	return a - 1
}

// locate resolves an address to its line node, walking from whichever of
// the cached locator, the head, or the tail is nearest. Invalidated by any
// structural change via invalidateLocator.
func (e *Editor) locate(addr int) int {
	if addr == 0 {
		return 0
	}

	bestAddr, bestH, bestDist := 0, 0, addr

	if d := abs(addr - e.locCacheAddr); e.locCacheAddr >= 0 && d < bestDist {
		bestAddr, bestH, bestDist = e.locCacheAddr, e.locCacheH, d
	}
	if d := e.last - addr; d >= 0 && d < bestDist {
		bestAddr, bestH, bestDist = e.last+1, 0, d // walk backward from the sentinel (address last+1)
	}

	h := bestH
	for bestAddr < addr {
		h = e.arena.nodes[h].next
		bestAddr++
	}
	for bestAddr > addr {
		h = e.arena.nodes[h].prev
		bestAddr--
	}

	e.locCacheAddr, e.locCacheH = addr, h
	return h
}

func (e *Editor) invalidateLocator() {
	e.locCacheAddr = -1
	e.locCacheH = 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// --- structural edits ---

// insertLines splices newly-written text after `at` (address 0 meaning
// before the first line), recording a single ADD atom. Returns the address
// of the last inserted line, which also becomes current.
func (e *Editor) insertLines(at int, texts [][]byte) (int, error) {
	if len(texts) == 0 {
		return at, nil
	}

	locs := make([]scratchLoc, len(texts))
	for i, t := range texts {
		loc, err := e.scratch.Put(t)
		if err != nil {
			return at, err
		}
		locs[i] = loc
	}

	err := e.withCritical(func() error {
		head, tail := e.arena.chainOf(locs)
		atH := e.locate(at)
		e.arena.spliceAfter(atH, head, tail)
		e.invalidateLocator()

		e.pushAdd(head, tail)
		e.last += len(texts)
		e.current = at + len(texts)
		e.mods.modified = true
		return nil
	})
	return e.current, err
}

// deleteRange yanks [from,to] then unlinks it (still retained, owned by the
// undo stack, until that frame is discarded).
func (e *Editor) deleteRange(from, to int, isGlobal bool) error {
	if err := e.yankRange(from, to); err != nil {
		return err
	}

	return e.withCritical(func() error {
		head, tail := e.locate(from), e.locate(to)
		e.arena.unlinkRange(head, tail)
		e.invalidateLocator()

		if isGlobal {
			e.unsetActiveRange(head, tail)
		}

		e.pushDel(head, tail)
		e.last -= (to - from + 1)
		if from > e.last {
			e.current = e.last
		} else {
			e.current = from - 1
			if e.current < 0 {
				e.current = 0
			}
		}
		e.mods.modified = true
		return nil
	})
}

// copyRange duplicates [first,second] (sharing scratch offsets, never
// copying text) and splices the duplicates after dest. The edge case the
// design calls out — dest inside [first,second) — needs no special pass
// here: every source location is resolved from the live ring and captured
// by value before the single splice happens, so there is nothing "freshly
// inserted" for a later lookup to alias.
func (e *Editor) copyRange(first, second, dest int) error {
	n := second - first + 1
	locs := make([]scratchLoc, n)
	for a := first; a <= second; a++ {
		locs[a-first] = e.arena.nodes[e.locate(a)].loc
	}

	return e.withCritical(func() error {
		head, tail := e.arena.chainOf(locs)
		e.arena.spliceAfter(e.locate(dest), head, tail)
		e.invalidateLocator()
		e.pushAdd(head, tail)
		e.last += n
		e.current = dest + n
		e.mods.modified = true
		return nil
	})
}

// moveRange splices [first,second] to after dest. dest == first-1 or
// dest == second is a structural no-op (current is still updated).
func (e *Editor) moveRange(first, second, dest int, isGlobal bool) error {
	if dest == first-1 || dest == second {
		e.current = second
		return nil
	}

	return e.withCritical(func() error {
		head, tail := e.locate(first), e.locate(second)
		srcAnchor := e.arena.nodes[head].prev
		dstAnchor := e.locate(dest)

		e.arena.unlinkRange(head, tail)
		e.arena.spliceAfter(dstAnchor, head, tail)
		e.invalidateLocator()

		if isGlobal {
			e.unsetActiveRange(head, tail)
		}

		e.pushMove(srcAnchor, dstAnchor, head, tail)

		n := second - first + 1
		if dest < first {
			e.current = dest + n
		} else {
			e.current = dest
		}
		e.mods.modified = true
		return nil
	})
}

// joinRange concatenates [from,to] into a single line.
func (e *Editor) joinRange(from, to int, isGlobal bool) error {
	if from == to {
		e.current = from
		return nil
	}

	var joined []byte
	for a := from; a <= to; a++ {
		h := e.locate(a)
		text, err := e.scratch.Get(e.arena.nodes[h].loc)
		if err != nil {
			return err
		}
		joined = append(joined, text...)
	}
	joined = append(joined, '\n')

	if err := e.deleteRange(from, to, isGlobal); err != nil {
		return err
	}
	_, err := e.insertLines(from-1, [][]byte{joined})
	return err
}

// yankRange clears the yank buffer then duplicates [from,to] into it,
// sharing scratch offsets with the live lines.
func (e *Editor) yankRange(from, to int) error {
	return e.withCritical(func() error {
		e.yank = e.yank[:0]
		for a := from; a <= to; a++ {
			e.yank = append(e.yank, e.arena.nodes[e.locate(a)].loc)
		}
		return nil
	})
}

// putYank duplicates the yank buffer after at.
func (e *Editor) putYank(at int) error {
	if len(e.yank) == 0 {
		return errNothingToPut
	}
	return e.withCritical(func() error {
		locs := append([]scratchLoc(nil), e.yank...)
		head, tail := e.arena.chainOf(locs)
		e.arena.spliceAfter(e.locate(at), head, tail)
		e.invalidateLocator()
		e.pushAdd(head, tail)
		e.last += len(locs)
		e.current = at + len(locs)
		e.mods.modified = true
		return nil
	})
}

// lineText returns a line's text, without its terminating newline.
func (e *Editor) lineText(addr int) ([]byte, error) {
	h := e.locate(addr)
	return e.scratch.Get(e.arena.nodes[h].loc)
}

package main

// undoTag classifies an undo atom.
type undoTag uint8

const (
	undoAdd undoTag = iota
	undoDel
	undoMov
	undoVmov
)

// undoAtom is one reversible structural edit. The meaning of a,b depends on
// tag:
//   - ADD/DEL: a, b are the head/tail of an inserted/unlinked line range.
//   - MOV:     a, b are the ring nodes immediately before the range at its
//     source and destination positions (the "anchors" a relink needs).
//   - VMOV:    a, b are the head/tail of the moved range itself — constant
//     regardless of where the range currently sits.
//
// A move pushes a MOV/VMOV pair, in that order; undoing a VMOV peeks at the
// MOV beneath it on the stack to find the anchors, then swaps that MOV's
// anchors in place so a second undo re-applies the move.
type undoAtom struct {
	tag  undoTag
	a, b int
}

// undoFrame is the single undoable group opened by one top-level command
// (or, for a global command, by the global verb itself — sub-commands run
// by the global engine accumulate into the same frame rather than each
// opening their own).
type undoFrame struct {
	atoms        []undoAtom
	prevCurrent  int
	prevLast     int
	prevModified bool
}

// undoStack holds at most one live frame: ed's undo is single-level, so a
// new top-level command simply replaces the old frame (after releasing any
// DEL-tagged ranges it still owned).
type undoStack struct {
	frame *undoFrame
}

// openFrame starts a new undo frame, discarding (and freeing) the previous
// one. Called once per top-level command, never by sub-commands a global
// verb runs.
func (e *Editor) openFrame() {
	e.discardFrame()
	e.undoStk.frame = &undoFrame{
		prevCurrent:  e.current,
		prevLast:     e.last,
		prevModified: e.mods.modified,
	}
}

// discardFrame releases any DEL-tagged ranges the current frame still owns
// (their nodes are not reachable from the live sequence, so no one else
// holds them) and forgets the frame.
func (e *Editor) discardFrame() {
	f := e.undoStk.frame
	if f == nil {
		return
	}
	for _, a := range f.atoms {
		if a.tag == undoDel {
			e.releaseRange(a.a, a.b)
		}
	}
	e.undoStk.frame = nil
}

func (e *Editor) pushAdd(head, tail int) {
	e.appendAtom(undoAtom{undoAdd, head, tail})
}

func (e *Editor) pushDel(head, tail int) {
	e.appendAtom(undoAtom{undoDel, head, tail})
}

func (e *Editor) pushMove(srcAnchor, dstAnchor, head, tail int) {
	e.appendAtom(undoAtom{undoMov, srcAnchor, dstAnchor})
	e.appendAtom(undoAtom{undoVmov, head, tail})
}

func (e *Editor) appendAtom(a undoAtom) {
	if e.undoStk.frame == nil {
		// A structural edit outside any opened frame (e.g. during buffer
		// load) is not undoable; nothing to record.
		return
	}
	const maxUndoAtoms = 1 << 20
	if len(e.undoStk.frame.atoms) >= maxUndoAtoms {
		// Not fatal: the edit already happened, it just won't be undoable.
		// This atom is not recorded, so the frame stops growing.
		return
	}
	e.undoStk.frame.atoms = append(e.undoStk.frame.atoms, a)
}

// undo reverses the current frame's atoms in LIFO order, then reverses
// their order in place (so a second undo re-applies them), and swaps back
// the (current, last, modified) snapshot — making undo an involution.
func (e *Editor) undo(isGlobal bool) error {
	f := e.undoStk.frame
	if f == nil {
		return errNothingToUndo
	}

	return e.withCritical(func() error {
		for i := len(f.atoms) - 1; i >= 0; {
			switch a := f.atoms[i]; a.tag {
			case undoAdd:
				e.arena.unlinkRange(a.a, a.b)
				f.atoms[i] = undoAtom{undoDel, a.a, a.b}
				i--
			case undoDel:
				e.arena.relinkRange(a.a, a.b)
				f.atoms[i] = undoAtom{undoAdd, a.a, a.b}
				i--
			case undoVmov:
				mov := f.atoms[i-1]
				e.arena.unlinkRange(a.a, a.b)
				e.arena.spliceAfter(mov.a, a.a, a.b)
				f.atoms[i-1] = undoAtom{undoMov, mov.b, mov.a}
				i -= 2
			case undoMov:
				// Only ever reached if a VMOV is missing its pair, which would
				// be an internal bookkeeping bug; treat as a no-op.
				i--
			}
		}
		reverseAtoms(f.atoms)
		e.invalidateLocator()

		e.current, f.prevCurrent = f.prevCurrent, e.current
		e.last, f.prevLast = f.prevLast, e.last
		e.mods.modified, f.prevModified = f.prevModified, e.mods.modified

		if isGlobal {
			e.global.clear()
		}
		return nil
	})
}

// reverseAtoms reverses the order of the frame's atoms so a second undo
// call re-applies them, but treats each MOV/VMOV pair as a single unit:
// pushMove always appends MOV immediately followed by VMOV, and undo's
// VMOV case finds its anchors by looking at the immediately preceding
// slot, so a pair must stay adjacent with MOV first, VMOV second. A flat
// slice reversal would separate and flip such a pair, corrupting the next
// undo's scan (and panicking when the pair starts the frame). Only the
// order of groups — single atoms and MOV/VMOV pairs — is reversed; each
// pair's internal order is preserved.
func reverseAtoms(a []undoAtom) {
	type group struct{ start, n int }
	var groups []group
	for i := 0; i < len(a); {
		if a[i].tag == undoMov && i+1 < len(a) && a[i+1].tag == undoVmov {
			groups = append(groups, group{i, 2})
			i += 2
		} else {
			groups = append(groups, group{i, 1})
			i++
		}
	}
	out := make([]undoAtom, 0, len(a))
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		out = append(out, a[g.start:g.start+g.n]...)
	}
	copy(a, out)
}

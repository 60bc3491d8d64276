package main

// marksTable is the fixed a…z label table: a flat array rather than a
// lookup chain, since 26 slots is cheap to scan outright.
type marksTable [26]int

func markIndex(c byte) (int, error) {
	if c < 'a' || c > 'z' {
		return 0, errInvalidMarkCharacter
	}
	return int(c - 'a'), nil
}

// setMark labels the line at addr with c.
func (e *Editor) setMark(addr int, c byte) error {
	i, err := markIndex(c)
	if err != nil {
		return err
	}
	e.marksTbl[i] = e.locate(addr)
	return nil
}

// markAddr returns the current address of the line labeled c, walking the
// live sequence once.
func (e *Editor) markAddr(c byte) (int, error) {
	i, err := markIndex(c)
	if err != nil {
		return 0, err
	}
	h := e.marksTbl[i]
	if h == 0 {
		return 0, errInvalidAddress
	}
	addr := 0
	for n := e.arena.nodes[0].next; n != 0; n = e.arena.nodes[n].next {
		addr++
		if n == h {
			return addr, nil
		}
	}
	return 0, errInvalidAddress
}

// clearMarksTo clears every mark referencing handle h, called when h is
// finally freed so no mark can dangle on a recycled arena slot.
func (e *Editor) clearMarksTo(h int) {
	for i, m := range e.marksTbl {
		if m == h {
			e.marksTbl[i] = 0
		}
	}
}

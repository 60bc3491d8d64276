package main

import (
	"io"
	"strings"
)

// printFlags collects the l/n/p suffix letters: each may appear at most
// once, in any order.
type printFlags struct {
	l, n, p bool
}

func parsePrintFlags(c *cursor) (printFlags, error) {
	var pf printFlags
	for {
		switch c.peek() {
		case 'l':
			if pf.l {
				return pf, errInvalidCommandSuffix
			}
			pf.l = true
			c.next()
		case 'n':
			if pf.n {
				return pf, errInvalidCommandSuffix
			}
			pf.n = true
			c.next()
		case 'p':
			if pf.p {
				return pf, errInvalidCommandSuffix
			}
			pf.p = true
			c.next()
		default:
			if !c.atEnd() {
				return pf, errInvalidCommandSuffix
			}
			return pf, nil
		}
	}
}

// printResult renders the given address per pf, falling back to a bare
// print if no flag was given but the command conventionally prints on
// request (callers decide whether to call this at all).
func (e *Editor) printResult(addr int, pf printFlags) error {
	if !pf.l && !pf.n && !pf.p {
		return nil
	}
	return e.printLine(addr, pf.n, pf.l)
}

// execLine parses and executes one command-input line. isGlobal is true
// when called as a sub-command from within a running global body.
func (e *Editor) execLine(raw string, isGlobal bool) error {
	line := strings.TrimRight(raw, "\n")
	c := newCursor(line)

	emodRepeat := e.mods.emodPending
	e.mods.emodPending = false

	first, second, count, err := e.parseAddrList(c)
	if err != nil {
		return err
	}
	c.skipBlanks()
	verb := c.next()

	if verb == 0 {
		addr := e.current + 1
		if count > 0 {
			addr = second
		}
		if addr < 1 || addr > e.last {
			return errInvalidAddress
		}
		e.current = addr
		return e.printLine(addr, false, false)
	}

	switch verb {
	case 'a':
		return e.cmdAppend(defaultAddr1(count, second, e.current), c, isGlobal)
	case 'i':
		return e.cmdInsert(defaultAddr1(count, second, e.current), c, isGlobal)
	case 'c':
		f, s := defaultRange(count, first, second, e.current, e.current)
		return e.cmdChange(f, s, c, isGlobal)
	case 'd':
		f, s := defaultRange(count, first, second, e.current, e.current)
		return e.cmdDelete(f, s, c, isGlobal)
	case 'm':
		f, s := defaultRange(count, first, second, e.current, e.current)
		return e.cmdMove(f, s, c, isGlobal)
	case 't':
		f, s := defaultRange(count, first, second, e.current, e.current)
		return e.cmdCopy(f, s, c, isGlobal)
	case 'j':
		f, s := defaultRange(count, first, second, e.current, e.current+1)
		return e.cmdJoin(f, s, c, isGlobal)
	case 's':
		f, s := defaultRange(count, first, second, e.current, e.current)
		return e.cmdSubstitute(f, s, c, isGlobal)
	case 'g', 'v', 'G', 'V':
		f, s := defaultRange(count, first, second, 1, e.last)
		return e.cmdGlobal(f, s, verb, c)
	case 'e', 'E':
		return e.cmdEdit(c, verb == 'E', emodRepeat)
	case 'r':
		addr := e.last
		if count > 0 {
			addr = second
		}
		return e.cmdRead(addr, c, isGlobal)
	case 'w', 'W':
		quit := false
		if c.peek() == 'q' {
			c.next()
			quit = true
		}
		f, s := defaultRange(count, first, second, 1, e.last)
		return e.cmdWrite(f, s, c, verb == 'W', quit)
	case 'u':
		return e.cmdUndo(isGlobal)
	case 'k':
		return e.cmdMark(defaultAddr1(count, second, e.current), c)
	case 'p', 'n', 'l':
		f, s := defaultRange(count, first, second, e.current, e.current)
		return e.cmdPrint(f, s, verb)
	case 'z':
		return e.cmdScroll(defaultAddr1(count, second, e.current), c)
	case '=':
		addr := e.last
		if count > 0 {
			addr = second
		}
		return e.writeString(itoa(addr) + "\n")
	case '!':
		return e.cmdShell(c)
	case '#':
		return nil
	case 'q', 'Q':
		return e.cmdQuit(verb == 'Q', emodRepeat)
	case 'P':
		e.mods.promptOn = !e.mods.promptOn
		return nil
	case 'H':
		e.mods.verbose = !e.mods.verbose
		return nil
	case 'h':
		if e.mods.lastError != nil {
			return e.writeString(e.mods.lastError.Error() + "\n")
		}
		return nil
	}
	return errInvalidAddress
}

func defaultAddr1(count, addr, cur int) int {
	if count == 0 {
		return cur
	}
	return addr
}

func defaultRange(count, first, second, defFirst, defSecond int) (int, int) {
	if count == 0 {
		return defFirst, defSecond
	}
	return first, second
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func validateRange(first, second, last int) error {
	if first < 1 || first > second || second > last {
		return errInvalidAddress
	}
	return nil
}

// --- text-entry commands (a/i/c) ---

// appendLoop reads lines from e.in one at a time, inserting each
// immediately after the previous one, until a lone "." or end of input.
// Inserting line-by-line (rather than collecting the whole block first)
// means an interrupt partway through an `a` leaves exactly the lines
// already read in place: each insertLines call appends one more ADD atom
// to the frame opened before the loop started, so `u` afterward reverts
// the whole command regardless of how far it got.
func (e *Editor) appendLoop(at int, isGlobal bool) error {
	cur := at
	for {
		if !isGlobal {
			e.checkAbort()
		}
		raw, err := e.getStdinLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		text := strings.TrimRight(string(raw), "\n")
		if text == "." {
			return nil
		}
		next, err := e.insertLines(cur, [][]byte{[]byte(text)})
		if err != nil {
			return err
		}
		cur = next
	}
}

func (e *Editor) cmdAppend(at int, c *cursor, isGlobal bool) error {
	if at < 0 || at > e.last {
		return errInvalidAddress
	}
	if _, err := parsePrintFlags(c); err != nil {
		return err
	}
	if !isGlobal {
		e.openFrame()
	}
	return e.appendLoop(at, isGlobal)
}

func (e *Editor) cmdInsert(at int, c *cursor, isGlobal bool) error {
	if at < 0 || at > e.last {
		return errInvalidAddress
	}
	if at == 0 {
		// inserting before line 0 (the empty-buffer/beginning case) is the
		// same place as appending after line 0.
		return e.cmdAppend(0, c, isGlobal)
	}
	return e.cmdAppend(at-1, c, isGlobal)
}

func (e *Editor) cmdChange(first, second int, c *cursor, isGlobal bool) error {
	if err := validateRange(first, second, e.last); err != nil {
		return err
	}
	if _, err := parsePrintFlags(c); err != nil {
		return err
	}
	if !isGlobal {
		e.openFrame()
	}
	if err := e.deleteRange(first, second, isGlobal); err != nil {
		return err
	}
	return e.appendLoop(first-1, isGlobal)
}

// --- structural commands ---

func (e *Editor) cmdDelete(first, second int, c *cursor, isGlobal bool) error {
	if err := validateRange(first, second, e.last); err != nil {
		return err
	}
	if _, err := parsePrintFlags(c); err != nil {
		return err
	}
	if !isGlobal {
		e.openFrame()
	}
	return e.deleteRange(first, second, isGlobal)
}

func (e *Editor) cmdMove(first, second int, c *cursor, isGlobal bool) error {
	if err := validateRange(first, second, e.last); err != nil {
		return err
	}
	dest, _, err := e.parseAddr(c)
	if err != nil {
		return err
	}
	if _, err := parsePrintFlags(c); err != nil {
		return err
	}
	if dest >= first && dest < second {
		return errInvalidDestination
	}
	if !isGlobal {
		e.openFrame()
	}
	return e.moveRange(first, second, dest, isGlobal)
}

func (e *Editor) cmdCopy(first, second int, c *cursor, isGlobal bool) error {
	if err := validateRange(first, second, e.last); err != nil {
		return err
	}
	dest, _, err := e.parseAddr(c)
	if err != nil {
		return err
	}
	if _, err := parsePrintFlags(c); err != nil {
		return err
	}
	if !isGlobal {
		e.openFrame()
	}
	return e.copyRange(first, second, dest)
}

func (e *Editor) cmdJoin(first, second int, c *cursor, isGlobal bool) error {
	if err := validateRange(first, second, e.last); err != nil {
		return err
	}
	if _, err := parsePrintFlags(c); err != nil {
		return err
	}
	if !isGlobal {
		e.openFrame()
	}
	return e.joinRange(first, second, isGlobal)
}

// --- substitution ---

func (e *Editor) cmdSubstitute(first, second int, c *cursor, isGlobal bool) error {
	if err := validateRange(first, second, e.last); err != nil {
		return err
	}
	if c.peek() == 0 {
		return errInvalidCommandSuffix
	}
	delim := c.peek()
	pattern, err := c.readDelimited(delim)
	if err != nil {
		return err
	}
	repl, err := c.readDelimited(delim)
	if err != nil {
		return err
	}

	var pf printFlags
	kind := substFirst
	nth := 1
	ignoreCase := false
	reuse := false
loop:
	for {
		switch c.peek() {
		case 'g':
			kind = substAll
			c.next()
		case 'i', 'I':
			ignoreCase = true
			c.next()
		case 'r':
			reuse = true
			c.next()
		case 'l':
			pf.l = true
			c.next()
		case 'n':
			pf.n = true
			c.next()
		case 'p':
			pf.p = true
			c.next()
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			kind = substNth
			nth = c.readNumber()
		default:
			break loop
		}
	}
	if !c.atEnd() {
		return errInvalidCommandSuffix
	}

	var pat Pattern
	if reuse {
		pat, err = e.compilePattern("", ignoreCase, e.mods.extended)
	} else {
		pat, err = e.compileSubst(pattern, ignoreCase, e.mods.extended)
	}
	if err != nil {
		return err
	}
	if repl == "%" {
		if len(e.re.lastRepl) == 0 {
			return errNoPreviousSubstitution
		}
		repl = string(e.re.lastRepl)
	}
	e.re.lastRepl = []byte(repl)

	if !isGlobal {
		e.openFrame()
	}

	lastAddr := 0
	count := 0
	for a := first; a <= second; a++ {
		text, err := e.lineText(a)
		if err != nil {
			return err
		}
		out, n, err := substitute(pat, text, []byte(repl), kind, nth)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		count++
		out = append(out, '\n')
		if err := e.deleteRange(a, a, isGlobal); err != nil {
			return err
		}
		if _, err := e.insertLines(a-1, [][]byte{out[:len(out)-1]}); err != nil {
			return err
		}
		lastAddr = a
	}
	if count == 0 {
		return errNoMatch
	}
	e.current = lastAddr
	return e.printResult(lastAddr, pf)
}

// --- global ---

func (e *Editor) cmdGlobal(first, second int, verb rune, c *cursor) error {
	if e.global.running {
		return errCannotNestGlobal
	}
	if err := validateRange(first, second, e.last); err != nil {
		return err
	}
	delim := c.peek()
	if delim == 0 {
		return errInvalidCommandSuffix
	}
	pattern, err := c.readDelimited(delim)
	if err != nil {
		return err
	}
	matchSense := verb == 'g' || verb == 'G'
	if err := e.buildActive(first, second, pattern, false, e.mods.extended, matchSense); err != nil {
		return err
	}

	interactive := verb == 'G' || verb == 'V'
	var cmdList string
	if !interactive {
		cmdList = readContinuedLine(c.rest(), e)
	}

	e.openFrame()
	e.global.running = true
	defer func() { e.global.running = false }()

	var lastInteractiveCmd string
	for {
		h, ok := e.global.next()
		if !ok {
			break
		}
		addr, err := e.addrOfHandle(h)
		if err != nil {
			continue
		}
		e.current = addr

		if interactive {
			if err := e.printLine(addr, false, false); err != nil {
				return err
			}
			raw, err := e.getStdinLine()
			if err != nil {
				return err
			}
			cmd := strings.TrimRight(string(raw), "\n")
			if cmd == "" {
				continue
			}
			if cmd == "&" {
				cmd = lastInteractiveCmd
			} else {
				lastInteractiveCmd = cmd
			}
			if err := e.execLine(cmd, true); err != nil {
				return err
			}
			continue
		}

		for _, sub := range strings.Split(cmdList, "\n") {
			if sub == "" {
				continue
			}
			if err := e.execLine(sub, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// readContinuedLine joins the remainder of the global command's own line
// with any following lines that end in a trailing backslash, the same way
// the command list after a g/v verb can span multiple input lines.
func readContinuedLine(rest string, e *Editor) string {
	var sb strings.Builder
	sb.WriteString(rest)
	for strings.HasSuffix(sb.String(), "\\") {
		s := sb.String()
		sb.Reset()
		sb.WriteString(s[:len(s)-1])
		sb.WriteByte('\n')
		raw, err := e.getStdinLine()
		if err != nil {
			break
		}
		sb.WriteString(strings.TrimRight(string(raw), "\n"))
	}
	return sb.String()
}

// addrOfHandle walks the live sequence to find a handle's current address,
// the same O(N) approach marks.go uses (the global active set stores
// handles precisely so it survives address shifts; finding one back out
// again is no cheaper than a mark lookup).
func (e *Editor) addrOfHandle(h int) (int, error) {
	addr := 0
	for n := e.arena.nodes[0].next; n != 0; n = e.arena.nodes[n].next {
		addr++
		if n == h {
			return addr, nil
		}
	}
	return 0, errInvalidAddress
}

// --- file/quit commands ---

func (e *Editor) cmdEdit(c *cursor, unconditional, repeat bool) error {
	name := strings.TrimSpace(c.rest())
	if !unconditional && e.mods.modified && !repeat {
		e.mods.lastError = errBufferModified
		e.mods.emodPending = true
		return errBufferModified
	}
	if name != "" {
		e.filename = name
	}
	if e.last > 0 {
		if err := e.deleteRange(1, e.last, false); err != nil {
			return err
		}
	}
	e.undoStk.frame = nil
	e.global.clear()
	for i := range e.marksTbl {
		e.marksTbl[i] = 0
	}
	_, err := e.readFile(e.filename, 0)
	e.mods.modified = false
	return err
}

func (e *Editor) cmdRead(at int, c *cursor, isGlobal bool) error {
	name := strings.TrimSpace(c.rest())
	if at < 0 || at > e.last {
		return errInvalidAddress
	}
	if !isGlobal {
		e.openFrame()
	}
	n, err := e.readFile(name, at)
	if err != nil {
		return err
	}
	if e.filename == "" && name != "" {
		e.filename = name
	}
	_ = n
	return nil
}

func (e *Editor) cmdWrite(first, second int, c *cursor, appendMode, quit bool) error {
	// The default range on an empty buffer degenerates to 1,0 (no lines);
	// writing zero lines is legitimate, so that exact shape is let through
	// even though it would otherwise fail validateRange's first<=second check.
	if !(first == 1 && second == 0 && e.last == 0) {
		if err := validateRange(first, second, e.last); err != nil {
			return err
		}
	}
	name := strings.TrimSpace(c.rest())
	mode := "w"
	if appendMode {
		mode = "a"
	}
	n, err := e.writeFile(name, mode, first, second)
	if err != nil {
		return err
	}
	e.mods.modified = false
	if !e.mods.scripted {
		if err := e.writeString(itoa(n) + "\n"); err != nil {
			return err
		}
	}
	if quit {
		e.abort(quitRequest{})
	}
	return nil
}

func (e *Editor) cmdQuit(unconditional, repeat bool) error {
	if !unconditional && e.mods.modified && !repeat {
		e.mods.lastError = errBufferModified
		e.mods.emodPending = true
		return errBufferModified
	}
	e.abort(quitRequest{})
	return nil
}

func (e *Editor) cmdMark(at int, c *cursor) error {
	if at < 1 || at > e.last {
		return errInvalidAddress
	}
	m := c.next()
	if m == 0 {
		return errInvalidMarkCharacter
	}
	return e.setMark(at, byte(m))
}

func (e *Editor) cmdPrint(first, second int, verb rune) error {
	if err := validateRange(first, second, e.last); err != nil {
		return err
	}
	for a := first; a <= second; a++ {
		if err := e.printLine(a, verb == 'n', verb == 'l'); err != nil {
			return err
		}
	}
	e.current = second
	return nil
}

func (e *Editor) cmdScroll(at int, c *cursor) error {
	if at < 1 || at > e.last {
		return errInvalidAddress
	}
	if _, err := parsePrintFlags(c); err != nil {
		return err
	}
	rows, _, ok := windowSize(1)
	if !ok {
		rows = 22
	}
	end := at + rows
	if end > e.last {
		end = e.last
	}
	for a := at; a <= end; a++ {
		if err := e.printLine(a, false, false); err != nil {
			return err
		}
	}
	e.current = end
	return nil
}

func (e *Editor) cmdShell(c *cursor) error {
	resolved, err := e.shellCommand(c.rest())
	if err != nil {
		return err
	}
	return e.runShell(resolved)
}

func (e *Editor) cmdUndo(isGlobal bool) error {
	return e.undo(isGlobal)
}

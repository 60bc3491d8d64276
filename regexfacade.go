package main

import (
	"regexp"
	"strconv"
)

// Pattern is a single compiled regular expression, the unit held by the
// pool of three caches below. The concrete BRE/ERE engine is left pluggable;
// regexCompiler below is only the stand-in used when the editor is wired
// without a caller-supplied one.
type Pattern interface {
	// Match reports whether text contains a match anywhere.
	Match(text []byte) bool
	// FindSubmatchIndex returns index pairs as regexp.FindSubmatchIndex
	// does: [start, end, g1start, g1end, ...], or nil for no match.
	FindSubmatchIndex(text []byte) []int
}

// MatchCompiler compiles pattern source into a Pattern. extended selects
// ERE-like grammar (-E) versus BRE-like (-G, the default).
type MatchCompiler interface {
	Compile(pattern string, ignoreCase, extended bool) (Pattern, error)
}

// regexCompiler is the default MatchCompiler, backed by stdlib regexp.
// regexp's syntax is close enough to ERE that only BRE's backslashed
// metacharacters need translating, and ignore_case is folded in as an
// inline flag.
type regexCompiler struct{}

func (regexCompiler) Compile(pattern string, ignoreCase, extended bool) (Pattern, error) {
	expr := pattern
	if !extended {
		expr = translateBRE(expr)
	}
	if ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, newRegexError(pattern, err)
	}
	return re, nil
}

// translateBRE rewrites a basic-RE pattern's backslashed grouping and
// interval metacharacters into their unescaped (extended-RE-like) forms,
// and unescapes bare '(' ')' '{' '}' '|' '+' '?' to literals, since those
// are ordinary characters in BRE but metacharacters in the engine
// underneath.
func translateBRE(pattern string) string {
	var out []byte
	r := []rune(pattern)
	for i := 0; i < len(r); i++ {
		c := r[i]
		if c == '\\' && i+1 < len(r) {
			n := r[i+1]
			switch n {
			case '(', ')', '{', '}', '|', '+', '?':
				out = append(out, byte(n))
				i++
				continue
			}
			out = append(out, '\\', byte(n))
			i++
			continue
		}
		switch c {
		case '(', ')', '{', '}', '|', '+', '?':
			out = append(out, '\\', byte(c))
		default:
			out = append(out, string(c)...)
		}
	}
	return string(out)
}

// compiledEntry is one pool slot.
type compiledEntry struct {
	text       string
	ignoreCase bool
	extended   bool
	pat        Pattern
}

func (c compiledEntry) matches(text string, ignoreCase, extended bool) bool {
	return c.pat != nil && c.text == text && c.ignoreCase == ignoreCase && c.extended == extended
}

// regexEngine is the pool of three compiled matchers: the last search RE,
// the last substitution RE, and a free working slot used while compiling
// so a bad pattern never corrupts either cache. Slots are indexed by role
// rather than walked as an LRU, since there are only ever these two named
// roles plus a scratch slot.
type regexEngine struct {
	compiler MatchCompiler
	search   compiledEntry
	subst    compiledEntry
	lastRepl []byte
}

func (e *Editor) compiler() MatchCompiler {
	if e.re.compiler == nil {
		e.re.compiler = regexCompiler{}
	}
	return e.re.compiler
}

// compilePattern implements compile(pattern, ignore_case, extended): an
// empty pattern reuses "last search RE". On success it becomes the new
// "last search RE" and "last substitution RE" both — most commands that
// take a pattern at all (g/v/G/V, the address search forms, and bare s//)
// want exactly this sharing. An `s` command that supplies its own pattern
// goes through compileSubst, which sets both slots the same way.
func (e *Editor) compilePattern(pattern string, ignoreCase, extended bool) (Pattern, error) {
	if pattern == "" {
		if e.re.search.pat == nil {
			return nil, errNoPreviousPattern
		}
		return e.re.search.pat, nil
	}
	if e.re.search.matches(pattern, ignoreCase, extended) {
		return e.re.search.pat, nil
	}
	pat, err := e.compiler().Compile(pattern, ignoreCase, extended)
	if err != nil {
		return nil, err
	}
	entry := compiledEntry{text: pattern, ignoreCase: ignoreCase, extended: extended, pat: pat}
	e.re.search = entry
	e.re.subst = entry
	return pat, nil
}

// compileSubst is compile's counterpart for the `s` command's own pattern
// slot: same empty-reuses-previous rule, but against "last substitution
// RE" so `s//repl/` after a `g//p` keeps substituting with `g`'s pattern.
// A successful compile here also becomes the new "last search RE", so a
// following bare `/pat/` address reuses the `s` command's pattern.
func (e *Editor) compileSubst(pattern string, ignoreCase, extended bool) (Pattern, error) {
	if pattern == "" {
		if e.re.subst.pat == nil {
			return nil, errNoPreviousPattern
		}
		return e.re.subst.pat, nil
	}
	if e.re.subst.matches(pattern, ignoreCase, extended) {
		return e.re.subst.pat, nil
	}
	pat, err := e.compiler().Compile(pattern, ignoreCase, extended)
	if err != nil {
		return nil, err
	}
	entry := compiledEntry{text: pattern, ignoreCase: ignoreCase, extended: extended, pat: pat}
	e.re.subst = entry
	e.re.search = entry
	return pat, nil
}

// compileSearch is the address parser's entry point for `/pat/` and
// `?pat?`: no case-folding or extended-syntax suffix is available
// mid-address, so it always compiles (or reuses) under the editor's
// standing -E/-G mode.
func (e *Editor) compileSearch(pattern string) (Pattern, error) {
	return e.compilePattern(pattern, false, e.mods.extended)
}

// substKind selects how many matches per line substitute() rewrites.
type substKind int

const (
	substFirst substKind = iota
	substAll
	substNth
)

// substitute replaces matches in text per kind, expanding template's
// `&`/`\1`-`\9`/`\\` escapes against each match's submatches. Returns the
// rewritten text and the number of replacements made.
func substitute(pat Pattern, text []byte, template []byte, kind substKind, nth int) ([]byte, int, error) {
	var out []byte
	pos := 0
	count := 0
	matchIndex := 0
	lastEnd := -1
	lastZeroWidth := false

	for pos <= len(text) {
		loc := pat.FindSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		zeroWidth := start == end

		if zeroWidth && lastZeroWidth && start == lastEnd {
			// A second consecutive zero-width match at the same position
			// would never advance; tolerated once (Open Questions), an
			// error after. A zero-width match trailing a prior non-empty
			// match at the same offset (e.g. `a*` on "ba") is not a loop.
			return nil, 0, errInfiniteSubstitutionLoop
		}
		lastEnd = end
		lastZeroWidth = zeroWidth

		matchIndex++
		doReplace := false
		switch kind {
		case substFirst:
			doReplace = matchIndex == 1
		case substAll:
			doReplace = true
		case substNth:
			doReplace = matchIndex == nth
		}

		out = append(out, text[pos:start]...)
		if doReplace {
			relLoc := make([]int, len(loc))
			for i, v := range loc {
				if v < 0 {
					relLoc[i] = v
					continue
				}
				relLoc[i] = v - loc[0] // rebased so matchText[0] == text[start]
			}
			out = append(out, expandTemplate(template, text[start:end], relLoc)...)
			count++
		} else {
			out = append(out, text[start:end]...)
		}

		if zeroWidth {
			if end < len(text) {
				out = append(out, text[end])
			}
			pos = end + 1
		} else {
			pos = end
		}

		if doReplace && (kind == substFirst || kind == substNth) {
			break
		}
	}

	if pos < len(text) {
		out = append(out, text[pos:]...)
	}
	return out, count, nil
}

// expandTemplate expands &, \1-\9, \\ against loc (indices relative to
// matchText, as returned by FindSubmatchIndex). Any other \x keeps the
// backslash unchanged.
func expandTemplate(template []byte, matchText []byte, loc []int) []byte {
	var out []byte
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '\\' && c != '&' {
			out = append(out, c)
			continue
		}
		if c == '&' {
			out = append(out, matchText[loc[0]:loc[1]]...)
			continue
		}
		// c == '\\'
		if i+1 >= len(template) {
			out = append(out, '\\')
			break
		}
		n := template[i+1]
		i++
		if n == '\\' {
			out = append(out, '\\')
			continue
		}
		if n >= '1' && n <= '9' {
			g, _ := strconv.Atoi(string(n))
			gi := g * 2
			if gi+1 < len(loc) && loc[gi] >= 0 {
				out = append(out, matchText[loc[gi]:loc[gi+1]]...)
			}
			continue
		}
		out = append(out, '\\', n)
	}
	return out
}

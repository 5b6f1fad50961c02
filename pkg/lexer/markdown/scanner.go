package markdown

import "github.com/yaklabco/mdhl/pkg/lexer"

// step is the outcome of one dispatch: whether the cursor moves on or the
// same byte is offered again under the new state.
type step struct {
	advance bool
}

//nolint:gochecknoglobals // Immutable step values
var (
	stepForward = step{advance: true}
	stepHold    = step{advance: false}
)

// scanner is the per-call state of one Lex invocation.
type scanner struct {
	sc     *lexer.Cursor
	endPos int

	// precharCount counts leading spaces consumed on the current line.
	precharCount int

	// linkDestination is set between "](" and the closing ")".
	linkDestination bool

	// scanStart is set until the first position has been dispatched.
	scanStart bool

	// lineBeginAt is the last position the line-begin rules ran at. Default
	// never hands a position back to them twice.
	lineBeginAt int

	// fenced is set while the open CodeBlock was started by a "~~~" line.
	// Such a block ends only at a "~~~" line, whatever the indentation.
	fenced bool
}

func newScanner(startPos, length int, initStyle lexer.Style, acc lexer.Accessor) *scanner {
	return &scanner{
		sc:          lexer.NewCursor(startPos, length, initStyle, acc),
		endPos:      startPos + length,
		scanStart:   true,
		lineBeginAt: -1,
		fenced:      initStyle == CodeBlock && fencedBlockAt(acc, startPos),
	}
}

// fencedBlockAt reports whether the CodeBlock run ending just before pos
// was opened by a "~~~" line. Indented blocks start after their indentation,
// never at a line start.
func fencedBlockAt(acc lexer.Accessor, pos int) bool {
	start := pos
	for start > 0 && acc.StyleAt(start-1) == CodeBlock {
		start--
	}
	if start+3 > pos || acc.LineStart(acc.LineOf(start)) != start {
		return false
	}
	return acc.CharAt(start) == '~' && acc.CharAt(start+1) == '~' && acc.CharAt(start+2) == '~'
}

// Lex colours [startPos, startPos+length) of acc.
//
// A call starting past the beginning of the document restarts at the first
// byte of the previous line, taking its initial state from the style stored
// just before that line, so setext underlines see the line they belong to.
// Header and link states are never resumed into.
func Lex(startPos, length int, initStyle lexer.Style, acc lexer.Accessor) {
	if startPos > 0 {
		newStart := acc.LineStart(max(acc.LineOf(startPos)-1, 0))
		length += startPos - newStart
		startPos = newStart

		initStyle = Default
		if startPos > 0 {
			initStyle = acc.StyleAt(startPos - 1)
		}
	}

	if initStyle > CodeBlock {
		initStyle = Default
	}

	newScanner(startPos, length, initStyle, acc).run()
}

func (s *scanner) run() {
	for s.sc.More() {
		next := s.dispatch()
		s.scanStart = false
		if next.advance {
			s.sc.Forward()
		}
	}
	s.sc.Complete()
}

// dispatch applies the rules for the byte under the cursor. Rule groups run
// in order and each one sees the state left by the previous group.
func (s *scanner) dispatch() step {
	sc := s.sc

	// End the previous line's span here so a later retag stays on this line.
	if sc.AtLineStart() && sc.State == LineBegin {
		sc.SetState(LineBegin)
	}

	if sc.Ch() == '\\' {
		// An escaped marker means the line holds plain text.
		switch {
		case sc.State == PreChar && s.indentedCodeStart():
			sc.SetState(CodeBlock)
			s.fenced = false
		case sc.State == LineBegin || sc.State == PreChar || sc.State == BlockQuote:
			sc.SetState(Default)
		}
		s.escape()
		return stepHold
	}

	// A quote marker only tags itself; the rest of the line starts over.
	if sc.State == BlockQuote {
		sc.SetState(LineBegin)
	}

	s.closeRules()

	if sc.State == LineBegin {
		s.lineBeginRules()
	}

	if sc.State == PreChar {
		if next := s.precharRules(); !next.advance {
			return next
		}
	}

	if sc.State == Link {
		s.linkRules()
	}

	if sc.State == Default {
		return s.defaultRules()
	}

	return stepForward
}

// escape consumes a backslash and the byte it escapes, leaving the state
// untouched. A backslash before a line terminator escapes nothing.
func (s *scanner) escape() {
	sc := s.sc
	sc.Forward()
	if sc.More() && sc.Ch() != 0 && !lexer.IsNewline(sc.Ch()) {
		sc.Forward()
	}
}

func (s *scanner) closeRules() {
	sc := s.sc

	switch sc.State {
	case Code2:
		if sc.Match("```") {
			sc.ForwardN(3)
			sc.SetState(Default)
		}

	case Code:
		if sc.Ch() == '`' && sc.ChPrev() != ' ' {
			sc.ForwardSetState(Default)
		}

	case CodeBlock:
		if !sc.AtLineStart() {
			return
		}
		if !s.fenced {
			if sc.Ch() != '\t' && !sc.Match("    ") {
				sc.SetState(LineBegin)
			}
			return
		}
		if sc.Match("~~~") {
			i := 1
			for !lexer.IsNewline(sc.Relative(i)) && sc.Pos()+i < s.endPos {
				i++
			}
			sc.ForwardN(i)
			sc.SetState(Default)
			s.fenced = false
		}

	case Strong1:
		if sc.Match("**") && sc.ChPrev() != ' ' {
			sc.ForwardN(2)
			sc.SetState(Default)
		}

	case Strong2:
		if sc.Match("__") && sc.ChPrev() != ' ' {
			sc.ForwardN(2)
			sc.SetState(Default)
		}

	case Strikeout:
		if sc.Match("~~") && sc.ChPrev() != ' ' {
			sc.ForwardN(2)
			sc.SetState(Default)
		}

	case Header1, Header2, Header3, Header4, Header5, Header6:
		if lexer.IsNewline(sc.Ch()) {
			sc.SetState(LineBegin)
		}
	}
}

//nolint:gochecknoglobals // Read-only lookup table
var atxHeaders = []struct {
	marker string
	style  lexer.Style
}{
	{"######", Header6},
	{"#####", Header5},
	{"####", Header4},
	{"###", Header3},
	{"##", Header2},
	{"#", Header1},
}

func (s *scanner) lineBeginRules() {
	sc := s.sc
	s.lineBeginAt = sc.Pos()

	for _, hdr := range atxHeaders {
		if sc.Match(hdr.marker) {
			sc.SetState(hdr.style)
			return
		}
	}

	switch {
	case sc.Match("~~~"):
		if s.isPrevLineEmpty() {
			sc.SetState(CodeBlock)
			s.fenced = true
		} else {
			sc.SetState(Default)
		}

	case s.isUnderlinedHeader('='):
		sc.SetState(Header1)

	case sc.Ch() == '=':
		if !s.hasPrevLineContent() || !s.followToLineEnd('=', Header1) {
			sc.SetState(Default)
		}

	case s.isUnderlinedHeader('-'):
		sc.SetState(Header2)

	case sc.Ch() == '-':
		if !s.hasPrevLineContent() || !s.followToLineEnd('-', Header2) {
			s.precharCount = 0
			sc.SetState(PreChar)
		}

	case lexer.IsNewline(sc.Ch()):
		sc.SetState(LineBegin)

	default:
		s.precharCount = 0
		sc.SetState(PreChar)
	}
}

// precharRules handle the indentation and prefix markers of a line.
func (s *scanner) precharRules() step {
	sc := s.sc

	switch ch := sc.Ch(); {
	case ch == '>' && s.precharCount < 5:
		sc.SetState(BlockQuote)

	case s.indentedCodeStart():
		sc.SetState(CodeBlock)
		s.fenced = false

	case ch == '-' || ch == '*' || ch == '_':
		s.isValidHrule()

	case ch == '#' && s.precharCount < 4:
		sc.SetState(LineBegin)
		return stepHold

	case ch == ' ':
		s.precharCount++

	default:
		sc.SetState(Default)
	}

	return stepForward
}

// indentedCodeStart reports whether the indentation read so far opens an
// indented code block.
func (s *scanner) indentedCodeStart() bool {
	return s.isPrevLineEmpty() && (s.sc.ChPrev() == '\t' || s.precharCount >= 4)
}

func (s *scanner) linkRules() {
	sc := s.sc
	escaped := sc.Relative(-1) == '\\'

	switch {
	case sc.Match("](") && !escaped:
		sc.ForwardN(2)
		s.linkDestination = true

	case sc.Match("]:") && !escaped:
		sc.ForwardN(2)
		sc.SetState(Default)

	case !s.linkDestination && sc.Ch() == ']' && !escaped:
		sc.ForwardSetState(Default)

	case s.linkDestination && sc.Ch() == ')' && !escaped:
		sc.ForwardSetState(Default)
		s.linkDestination = false
	}
}

// defaultRules open inline spans and detect headers at line starts.
func (s *scanner) defaultRules() step {
	sc := s.sc

	if sc.AtLineStart() && s.lineBeginAt != sc.Pos() && (s.scanStart || sc.Ch() == '#' ||
		s.isUnderlinedHeader('=') || s.isUnderlinedHeader('-')) {
		sc.SetState(LineBegin)
		return stepHold
	}

	switch {
	case sc.Match("```") && s.atTermStart():
		sc.SetState(Code2)
		sc.Forward()

	case sc.Ch() == '`' && opensRun(sc.ChNext()) && s.atTermStart():
		sc.SetState(Code)

	case sc.Match("**") && opensRun(sc.Relative(2)) && s.atTermStart():
		sc.SetState(Strong1)
		sc.Forward()

	case sc.Match("__") && opensRun(sc.Relative(2)) && s.atTermStart():
		sc.SetState(Strong2)
		sc.Forward()

	case sc.Match("~~") && opensRun(sc.Relative(2)) && s.atTermStart():
		sc.SetState(Strikeout)
		sc.Forward()

	case lexer.IsNewline(sc.Ch()):
		sc.SetState(LineBegin)
	}

	return stepForward
}

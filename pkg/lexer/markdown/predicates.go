package markdown

import "github.com/yaklabco/mdhl/pkg/lexer"

// followToLineEnd succeeds when the run of marker under the cursor, plus
// trailing blanks, reaches the end of the line or range. On success the
// cursor moves past the run, the open span is retagged as target and a
// LineBegin span is opened.
func (s *scanner) followToLineEnd(marker byte, target lexer.Style) bool {
	sc := s.sc

	i := 1
	for sc.Relative(i) == marker {
		i++
	}
	for lexer.IsSpaceOrTab(sc.Relative(i)) && sc.Pos()+i < s.endPos {
		i++
	}

	if !lexer.IsNewline(sc.Relative(i)) && sc.Pos()+i != s.endPos {
		return false
	}

	sc.ForwardN(i)
	sc.ChangeState(target)
	sc.SetState(LineBegin)
	return true
}

// prevLineTerminator returns the relative offset of the terminator ending the
// previous line (the LF of a CRLF pair). ok is false on the first line.
func (s *scanner) prevLineTerminator() (int, bool) {
	sc := s.sc

	i := -1
	for sc.Pos()+i >= 0 && !lexer.IsNewline(sc.Relative(i)) {
		i--
	}
	if sc.Pos()+i < 0 {
		return 0, false
	}
	return i, true
}

// hasPrevLineContent reports whether the previous line holds anything other
// than spaces and tabs.
func (s *scanner) hasPrevLineContent() bool {
	sc := s.sc

	i, ok := s.prevLineTerminator()
	if !ok {
		return false
	}
	if sc.Relative(i) == '\n' && sc.Relative(i-1) == '\r' {
		i--
	}

	for i--; sc.Pos()+i >= 0; i-- {
		ch := sc.Relative(i)
		if lexer.IsNewline(ch) {
			break
		}
		if !lexer.IsSpaceOrTab(ch) {
			return true
		}
	}
	return false
}

// isPrevLineEmpty reports whether the previous line is only a terminator, or
// whether the current line is the first one.
func (s *scanner) isPrevLineEmpty() bool {
	sc := s.sc

	i, ok := s.prevLineTerminator()
	if !ok {
		return true
	}
	if sc.Relative(i) == '\n' && sc.Relative(i-1) == '\r' {
		i -= 2
	} else {
		i--
	}

	return lexer.IsNewline(sc.Relative(i)) || sc.Pos()+i < 0
}

// atTermStart reports whether the cursor starts a word.
func (s *scanner) atTermStart() bool {
	sc := s.sc
	return sc.Pos() == 0 || sc.ChPrev() == 0 || lexer.IsSpace(sc.ChPrev())
}

// isValidHrule checks for three or more of the marker under the cursor,
// optionally separated by blanks, alone on a line that follows a line
// without content. A match is tagged HRule and LineBegin is opened after it;
// otherwise the scanner drops to Default without consuming anything.
func (s *scanner) isValidHrule() bool {
	sc := s.sc
	marker := sc.Ch()
	count := 1

	for i := 1; ; i++ {
		ch := sc.Relative(i)
		if ch == marker {
			count++
			continue
		}
		if lexer.IsSpaceOrTab(ch) && sc.Pos()+i != s.endPos {
			continue
		}

		atEnd := lexer.IsNewline(ch) || sc.Pos()+i == s.endPos
		if atEnd && count >= 3 && !s.hasPrevLineContent() {
			sc.SetState(HRule)
			sc.ForwardN(i)
			sc.SetState(LineBegin)
			return true
		}

		sc.SetState(Default)
		return false
	}
}

// isUnderlinedHeader reports whether the current line has content and the
// next line is a run of marker, optionally followed by blanks, to its end.
// It does not move the cursor.
func (s *scanner) isUnderlinedHeader(marker byte) bool {
	sc := s.sc

	i := 0
	hasContent := false
	for sc.Pos()+i < s.endPos {
		ch := sc.Relative(i)
		if lexer.IsNewline(ch) {
			break
		}
		if !lexer.IsSpaceOrTab(ch) {
			hasContent = true
		}
		i++
	}

	ch := sc.Relative(i)
	if !hasContent || !lexer.IsNewline(ch) {
		return false
	}

	if ch == '\r' && sc.Relative(i+1) == '\n' {
		i += 2
	} else {
		i++
	}

	if sc.Relative(i) != marker {
		return false
	}
	for sc.Pos()+i < s.endPos && sc.Relative(i) == marker {
		i++
	}
	for sc.Pos()+i < s.endPos && lexer.IsSpaceOrTab(sc.Relative(i)) {
		i++
	}

	return lexer.IsNewline(sc.Relative(i)) || sc.Pos()+i == s.endPos
}

// opensRun reports whether ch may follow an opening marker: anything but a
// blank, a line terminator or the end of the range.
func opensRun(ch byte) bool {
	return ch != 0 && !lexer.IsSpace(ch)
}

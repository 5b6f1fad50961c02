// Package searchresult colours and folds the output of a find-in-files run.
//
// A results document is made of search header lines starting with 'S', file
// header lines starting with a space, and result lines of the form
// "\tLine NNN: text". The matched range of each result line is supplied by
// the host through the MarkingsProperty of the accessor.
package searchresult

import "github.com/yaklabco/mdhl/pkg/lexer"

// Classifications.
const (
	Default lexer.Style = iota
	SearchHeader
	FileHeader
	LineNumber
	WordToSearch
	CurrentLine
)

// Catalog identifiers.
const (
	ID   = 150
	Name = "searchresult"
)

// Accessor property keys.
const (
	// MarkingsProperty holds a []Marking indexed by document line.
	MarkingsProperty = "searchresult.markings"

	// FoldCompactProperty is a bool; blank lines are flagged white when set.
	// It defaults to true.
	FoldCompactProperty = "fold.compact"
)

// Fold levels of the three line kinds.
const (
	SearchHeaderLevel = lexer.FoldLevelBase + 1 + iota
	FileHeaderLevel
	ResultLevel
)

// maxLineLength bounds the scan for the line-number separator.
const maxLineLength = 2048

// resultPrefixLen is the length of the "\tLine" prefix of a result line.
const resultPrefixLen = 5

// Marking is the matched byte range of one result line, as 0-based columns
// [Start, End) within the line.
type Marking struct {
	Start int
	End   int
}

//nolint:gochecknoglobals // Read-only lookup table
var styleNames = []string{
	Default:      "default",
	SearchHeader: "search-header",
	FileHeader:   "file-header",
	LineNumber:   "line-number",
	WordToSearch: "word-to-search",
	CurrentLine:  "current-line",
}

// Module is the registration record of the search result scanner.
//
//nolint:gochecknoglobals // Registration record
var Module = lexer.Module{
	ID:          ID,
	Name:        Name,
	Description: "Find-in-files result listings",
	Filenames:   []string{"*.search"},
	Lex:         Lex,
	Fold:        Fold,
	StyleNames:  styleNames,
}

func init() {
	lexer.DefaultRegistry.Register(Module)
}

func markings(acc lexer.Accessor) []Marking {
	props, ok := acc.(lexer.PropertyReader)
	if !ok {
		return nil
	}
	value, ok := props.Property(MarkingsProperty)
	if !ok {
		return nil
	}
	marks, _ := value.([]Marking)
	return marks
}

func foldCompact(acc lexer.Accessor) bool {
	props, ok := acc.(lexer.PropertyReader)
	if !ok {
		return true
	}
	value, ok := props.Property(FoldCompactProperty)
	if !ok {
		return true
	}
	compact, ok := value.(bool)
	return !ok || compact
}

func atEOL(acc lexer.Accessor, pos int) bool {
	ch := acc.CharAt(pos)
	return ch == '\n' || (ch == '\r' && acc.CharAt(pos+1) != '\n')
}

// Lex colours whole lines of [startPos, startPos+length). A start inside a
// line is moved back to the line start.
func Lex(startPos, length int, _ lexer.Style, acc lexer.Accessor) {
	endPos := startPos + length
	startPos = acc.LineStart(acc.LineOf(startPos))

	acc.StartAt(startPos)
	acc.StartSegment(startPos)

	marks := markings(acc)
	lineStart := startPos

	for pos := startPos; pos < endPos; pos++ {
		if atEOL(acc, pos) {
			colouriseLine(acc, marks, lineStart, pos)
			lineStart = pos + 1
		}
	}
	if lineStart < endPos {
		colouriseLine(acc, marks, lineStart, endPos-1)
	}
}

// colouriseLine styles the line occupying [lineStart, lineEnd].
func colouriseLine(acc lexer.Accessor, marks []Marking, lineStart, lineEnd int) {
	switch acc.CharAt(lineStart) {
	case ' ':
		acc.ColourTo(lineEnd, FileHeader)
		return
	case 'S':
		acc.ColourTo(lineEnd, SearchHeader)
		return
	}

	colon := -1
	for col := resultPrefixLen; col < maxLineLength && lineStart+col <= lineEnd; col++ {
		if acc.CharAt(lineStart+col) == ':' {
			colon = col
			break
		}
	}
	if colon < 0 {
		acc.ColourTo(lineEnd, Default)
		return
	}

	acc.ColourTo(lineStart+resultPrefixLen-1, Default)
	acc.ColourTo(lineStart+colon-1, LineNumber)

	line := acc.LineOf(lineStart)
	tail := Default
	if line < len(marks) {
		mark := marks[line]
		matchStart := lineStart + mark.Start - 1
		matchEnd := lineStart + mark.End - 1
		if mark.End > mark.Start && matchStart <= lineEnd {
			acc.ColourTo(matchStart, Default)
			if matchEnd <= lineEnd {
				acc.ColourTo(matchEnd, WordToSearch)
			} else {
				tail = WordToSearch
			}
		}
	}
	acc.ColourTo(lineEnd, tail)
}

// Fold assigns fold levels to the lines touching [startPos, startPos+length).
// It reads the styles written by Lex.
func Fold(startPos, length int, _ lexer.Style, acc lexer.Accessor) {
	compact := foldCompact(acc)
	endPos := startPos + length

	lineCurrent := acc.LineOf(startPos)
	visibleChars := 0
	headerLevel := 0

	for pos := startPos; pos < endPos; pos++ {
		ch := acc.CharAt(pos)

		switch acc.StyleAt(pos) {
		case FileHeader:
			headerLevel = FileHeaderLevel
		case SearchHeader:
			headerLevel = SearchHeaderLevel
		}

		if atEOL(acc, pos) {
			level := ResultLevel
			if headerLevel != 0 {
				level = lexer.FoldLevelHeaderFlag | headerLevel
			}
			if visibleChars == 0 && compact {
				level |= lexer.FoldLevelWhiteFlag
			}
			if level != acc.LevelAt(lineCurrent) {
				acc.SetLevel(lineCurrent, level)
			}

			lineCurrent++
			visibleChars = 0
			headerLevel = 0
		}

		if !lexer.IsSpace(ch) {
			visibleChars++
		}
	}

	acc.SetLevel(lineCurrent, lexer.FoldLevelBase)
}

// Package lexer defines the contract between highlighting scanners and the
// buffers they colour: the Accessor a scanner reads from and writes style
// spans to, the Cursor scanners walk documents with, and the Module record a
// scanner registers itself under.
package lexer

// Style is a scanner-specific classification attached to each position of a
// document. Its meaning is defined by the scanner that produced it.
type Style uint8

// Accessor is the buffer a scanner works against.
//
// Reads outside the document return 0. Styling is segment based: StartAt
// marks where restyling begins, StartSegment opens a segment, and ColourTo
// closes the open segment at pos (inclusive), tagging every position in it.
type Accessor interface {
	// CharAt returns the byte at pos, or 0 when pos is outside the document.
	CharAt(pos int) byte

	// Len returns the document length in bytes.
	Len() int

	// LineOf returns the 0-based line containing pos.
	LineOf(pos int) int

	// LineStart returns the offset of the first byte of line.
	// Negative lines map to 0, lines past the end map to Len.
	LineStart(line int) int

	// StyleAt returns the style stored at pos.
	StyleAt(pos int) Style

	// StartAt marks pos as the first position being restyled.
	StartAt(pos int)

	// StartSegment opens a new style segment at pos.
	StartSegment(pos int)

	// ColourTo closes the open segment at pos (inclusive) with style.
	// Positions before the open segment are ignored.
	ColourTo(pos int, style Style)

	// LevelAt returns the fold level stored for line.
	LevelAt(line int) int

	// SetLevel stores the fold level for line.
	SetLevel(line, level int)
}

// PropertyReader is implemented by accessors that carry host-supplied
// properties, such as per-document data a scanner needs beyond the text.
type PropertyReader interface {
	Property(key string) (any, bool)
}

// IsNewline reports whether ch terminates a line.
func IsNewline(ch byte) bool {
	return ch == '\n' || ch == '\r'
}

// IsSpaceOrTab reports whether ch is a space or a horizontal tab.
func IsSpaceOrTab(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// IsSpace reports whether ch is ASCII whitespace.
func IsSpace(ch byte) bool {
	return ch == ' ' || (ch >= 0x09 && ch <= 0x0d)
}

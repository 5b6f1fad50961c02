package lexer

import (
	"errors"
	"strconv"
)

// ErrUnknownLexer is returned when a lexer lookup fails.
var ErrUnknownLexer = errors.New("unknown lexer")

// LexFunc colours [startPos, startPos+length) of acc. initStyle is the state
// in effect at startPos.
type LexFunc func(startPos, length int, initStyle Style, acc Accessor)

// FoldFunc computes fold levels for the lines touching [startPos, startPos+length).
type FoldFunc func(startPos, length int, initStyle Style, acc Accessor)

// Module is the registration record of a scanner: the entry points plus the
// identifiers a host uses to find it.
type Module struct {
	// ID is a stable numeric identifier.
	ID int

	// Name is the human-readable identifier, e.g. "markdown".
	Name string

	// Description is a one-line summary for listings.
	Description string

	// Filenames are glob patterns of files this scanner is meant for.
	Filenames []string

	// Lex is the colouring entry point.
	Lex LexFunc

	// Fold is the optional folding entry point.
	Fold FoldFunc

	// StyleNames maps each Style value to a display name.
	StyleNames []string
}

// StyleName returns the display name of style, or "style<N>" when unnamed.
func (m Module) StyleName(style Style) string {
	if int(style) < len(m.StyleNames) {
		return m.StyleNames[style]
	}
	return "style" + strconv.Itoa(int(style))
}

// ParseStyle resolves a display name back to its Style.
func (m Module) ParseStyle(name string) (Style, bool) {
	for i, n := range m.StyleNames {
		if n == name {
			return Style(i), true
		}
	}
	return 0, false
}

// CanFold reports whether the module provides a folder.
func (m Module) CanFold() bool {
	return m.Fold != nil
}

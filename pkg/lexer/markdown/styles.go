// Package markdown implements an incremental Markdown highlighting scanner.
//
// The scanner classifies runs of text into headers, emphasis, code spans and
// blocks, block quotes, horizontal rules and strike-out. It is single pass
// with bounded lookahead and can resume at any line of a previously coloured
// buffer.
package markdown

import "github.com/yaklabco/mdhl/pkg/lexer"

// Classifications. The numeric order matters: resuming in any state after
// CodeBlock falls back to Default.
const (
	Default lexer.Style = iota
	LineBegin
	Strong1
	Strong2
	Strikeout
	Code
	Code2
	CodeBlock
	Header1
	Header2
	Header3
	Header4
	Header5
	Header6
	HRule
	BlockQuote
	PreChar
	Link
)

// ID is the catalog identifier of the Markdown scanner.
const ID = 98

// Name is the registry name of the Markdown scanner.
const Name = "markdown"

//nolint:gochecknoglobals // Read-only lookup table
var styleNames = []string{
	Default:    "default",
	LineBegin:  "line-begin",
	Strong1:    "strong1",
	Strong2:    "strong2",
	Strikeout:  "strikeout",
	Code:       "code",
	Code2:      "code2",
	CodeBlock:  "code-block",
	Header1:    "header1",
	Header2:    "header2",
	Header3:    "header3",
	Header4:    "header4",
	Header5:    "header5",
	Header6:    "header6",
	HRule:      "hrule",
	BlockQuote: "blockquote",
	PreChar:    "prechar",
	Link:       "link",
}

// Module is the registration record of the Markdown scanner.
//
//nolint:gochecknoglobals // Registration record
var Module = lexer.Module{
	ID:          ID,
	Name:        Name,
	Description: "Markdown headers, emphasis, code, quotes and rules",
	Filenames:   []string{"*.md", "*.markdown", "*.mdown", "*.mkd"},
	Lex:         Lex,
	StyleNames:  styleNames,
}

func init() {
	lexer.DefaultRegistry.Register(Module)
	lexer.DefaultRegistry.RegisterAlias("md", Name)
}

// StyleName returns the display name of a Markdown classification.
func StyleName(style lexer.Style) string {
	return Module.StyleName(style)
}

// ParseStyle resolves a display name to its classification.
func ParseStyle(name string) (lexer.Style, bool) {
	return Module.ParseStyle(name)
}

// IsHeader reports whether style is one of Header1..Header6.
func IsHeader(style lexer.Style) bool {
	return style >= Header1 && style <= Header6
}

// HeaderLevel returns 1..6 for header classifications and 0 otherwise.
func HeaderLevel(style lexer.Style) int {
	if !IsHeader(style) {
		return 0
	}
	return int(style-Header1) + 1
}

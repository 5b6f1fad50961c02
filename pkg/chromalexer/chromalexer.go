// Package chromalexer exposes registered scanners as chroma lexers so the
// chroma formatter and style catalog can render their output.
package chromalexer

import (
	"context"
	"fmt"

	"github.com/alecthomas/chroma"

	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer"
)

// tokenTypes maps style names of all built-in scanners to chroma token types.
//
//nolint:gochecknoglobals // Read-only lookup table
var tokenTypes = map[string]chroma.TokenType{
	// markdown
	"default":    chroma.Text,
	"line-begin": chroma.Text,
	"strong1":    chroma.GenericStrong,
	"strong2":    chroma.GenericStrong,
	"strikeout":  chroma.GenericDeleted,
	"code":       chroma.LiteralStringBacktick,
	"code2":      chroma.LiteralStringBacktick,
	"code-block": chroma.LiteralStringHeredoc,
	"header1":    chroma.GenericHeading,
	"header2":    chroma.GenericSubheading,
	"header3":    chroma.GenericSubheading,
	"header4":    chroma.GenericSubheading,
	"header5":    chroma.GenericSubheading,
	"header6":    chroma.GenericSubheading,
	"hrule":      chroma.Punctuation,
	"blockquote": chroma.GenericEmph,
	"prechar":    chroma.CommentPreproc,
	"link":       chroma.NameTag,

	// searchresult
	"search-header":  chroma.GenericHeading,
	"file-header":    chroma.GenericSubheading,
	"line-number":    chroma.LiteralNumberInteger,
	"word-to-search": chroma.GenericInserted,
	"current-line":   chroma.GenericOutput,
}

// TokenType returns the chroma token type used for a style name. Unknown
// names map to chroma.Text.
func TokenType(styleName string) chroma.TokenType {
	if tt, ok := tokenTypes[styleName]; ok {
		return tt
	}
	return chroma.Text
}

// Lexer adapts a scanner module to chroma.Lexer.
type Lexer struct {
	module lexer.Module
	config *chroma.Config
}

// New wraps module.
func New(module lexer.Module) *Lexer {
	return &Lexer{
		module: module,
		config: &chroma.Config{
			Name:      "mdhl-" + module.Name,
			Aliases:   []string{module.Name},
			Filenames: module.Filenames,
		},
	}
}

// Config implements chroma.Lexer.
func (l *Lexer) Config() *chroma.Config {
	return l.config
}

// Tokenise implements chroma.Lexer. The whole text is coloured in one pass.
func (l *Lexer) Tokenise(_ *chroma.TokeniseOptions, text string) (chroma.Iterator, error) {
	doc := highlight.New([]byte(text), l.module)
	if err := doc.ColouriseAll(context.Background()); err != nil {
		return nil, fmt.Errorf("colourise: %w", err)
	}
	return chroma.Literator(Tokens(doc)...), nil
}

// Tokens converts the styled part of doc into chroma tokens, one per span.
func Tokens(doc *highlight.Document) []chroma.Token {
	content := doc.Content()
	spans := doc.Spans()

	tokens := make([]chroma.Token, 0, len(spans))
	for _, span := range spans {
		tokens = append(tokens, chroma.Token{
			Type:  TokenType(doc.Module().StyleName(span.Style)),
			Value: string(span.Text(content)),
		})
	}
	return tokens
}

// Iterator returns a chroma iterator over the tokens of an already coloured
// document.
func Iterator(doc *highlight.Document) chroma.Iterator {
	return chroma.Literator(Tokens(doc)...)
}

// All wraps every module in reg.
func All(reg *lexer.Registry) []chroma.Lexer {
	modules := reg.Modules()
	out := make([]chroma.Lexer, 0, len(modules))
	for _, module := range modules {
		out = append(out, New(module))
	}
	return out
}

// Package langdetect picks the scanner for a file and guesses the language
// of fenced code blocks. Detection is backed by go-enry.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/mdhl/pkg/lexer"
)

// enryLexers maps go-enry language names to registered scanner names.
//
//nolint:gochecknoglobals // Read-only lookup table
var enryLexers = map[string]string{
	"Markdown":  "markdown",
	"RMarkdown": "markdown",
	"MDX":       "markdown",
}

// LexerFor returns the name of the scanner in reg that should colour path.
// Filename patterns declared by registered modules win; go-enry's filename,
// extension and content heuristics are consulted next. It returns "" when no
// scanner fits.
func LexerFor(reg *lexer.Registry, path string, content []byte) string {
	base := filepath.Base(path)

	for _, module := range reg.Modules() {
		for _, pattern := range module.Filenames {
			if ok, err := filepath.Match(pattern, base); err == nil && ok {
				return module.Name
			}
		}
	}

	lang := enry.GetLanguage(base, content)
	if lang == "" {
		return ""
	}

	name, ok := enryLexers[lang]
	if !ok {
		name = strings.ToLower(lang)
	}
	if _, registered := reg.Get(name); !registered {
		return ""
	}
	return name
}

// IsMarkdownPath reports whether path looks like a Markdown document by name
// alone. Extensions such as ".md" are shared with other languages, so any
// Markdown candidate counts.
func IsMarkdownPath(path string) bool {
	for _, lang := range enry.GetLanguagesByExtension(path, nil, nil) {
		if enryLexers[lang] == "markdown" {
			return true
		}
	}
	return false
}

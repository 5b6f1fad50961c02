package render

import (
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/styles"

	"github.com/yaklabco/mdhl/pkg/chromalexer"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/highlight"
)

// ClassPrefix namespaces CSS classes emitted with config.HTMLConfig.Classes.
const ClassPrefix = "mdhl-"

func htmlFormatter(cfg config.HTMLConfig) *chromahtml.Formatter {
	return chromahtml.New(
		chromahtml.WithClasses(cfg.Classes),
		chromahtml.ClassPrefix(ClassPrefix),
		chromahtml.WithLineNumbers(cfg.LineNumbers),
		chromahtml.Standalone(cfg.Standalone),
	)
}

// Style resolves a chroma style by name, falling back to chroma's default.
func Style(name string) *chroma.Style {
	return styles.Get(name)
}

// HTML writes doc, which must be coloured, as HTML through chroma.
func HTML(w io.Writer, doc *highlight.Document, cfg config.HTMLConfig) error {
	if err := htmlFormatter(cfg).Format(w, Style(cfg.Style), chromalexer.Iterator(doc)); err != nil {
		return fmt.Errorf("format html: %w", err)
	}
	return nil
}

// CSS writes the stylesheet matching HTML output with classes enabled.
func CSS(w io.Writer, cfg config.HTMLConfig) error {
	if err := htmlFormatter(cfg).WriteCSS(w, Style(cfg.Style)); err != nil {
		return fmt.Errorf("write css: %w", err)
	}
	return nil
}

// Chroma writes doc through a named chroma formatter such as "terminal256"
// using a chroma style, as an alternative to the themed terminal output.
func Chroma(w io.Writer, doc *highlight.Document, formatter, style string) error {
	if !slices.Contains(formatters.Names(), formatter) {
		return fmt.Errorf("unknown chroma formatter %q", formatter)
	}
	if err := formatters.Get(formatter).Format(w, Style(style), chromalexer.Iterator(doc)); err != nil {
		return fmt.Errorf("format %s: %w", formatter, err)
	}
	return nil
}

// Formatters lists the chroma formatter names accepted by Chroma.
func Formatters() []string {
	return formatters.Names()
}

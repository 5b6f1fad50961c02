// Package outline derives document structure from highlighted Markdown: the
// heading outline and the list of code blocks. A goldmark parse provides a
// reference outline the scanner's view can be checked against.
package outline

import (
	"bytes"

	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
)

// Heading is one entry of a document outline.
type Heading struct {
	// Level is 1 through 6.
	Level int `json:"level" yaml:"level"`

	// Title is the heading text without markers.
	Title string `json:"title" yaml:"title"`

	// Line is the 1-based line holding the heading text.
	Line int `json:"line" yaml:"line"`
}

// FromDocument builds the outline of a Markdown document coloured by the
// markdown scanner. Each line whose first header-styled span carries text
// becomes a heading. Setext underline lines are not headings of their own.
func FromDocument(doc *highlight.Document) []Heading {
	content := doc.Content()
	spans := doc.Spans()

	var headings []Heading
	for line := range doc.Buffer().LineCount() {
		for _, span := range doc.LineSpans(line, spans) {
			if !markdown.IsHeader(span.Style) {
				continue
			}

			text := span.Text(content)
			if isUnderline(text) {
				break
			}

			title := headingTitle(text)
			if title != "" {
				headings = append(headings, Heading{
					Level: markdown.HeaderLevel(span.Style),
					Title: title,
					Line:  line + 1,
				})
			}
			break
		}
	}
	return headings
}

// isUnderline reports whether text is a setext underline: only '=' or only
// '-', ignoring surrounding blanks.
func isUnderline(text []byte) bool {
	trimmed := bytes.TrimSpace(text)
	if len(trimmed) == 0 {
		return false
	}
	marker := trimmed[0]
	if marker != '=' && marker != '-' {
		return false
	}
	return len(bytes.Trim(trimmed, string(marker))) == 0
}

// headingTitle strips ATX markers: leading '#'s and an optional closing
// sequence of '#'s.
func headingTitle(text []byte) string {
	title := bytes.TrimSpace(text)
	title = bytes.TrimLeft(title, "#")
	title = bytes.TrimSpace(title)

	if closing := bytes.TrimRight(title, "#"); len(closing) < len(title) {
		if len(closing) == 0 || closing[len(closing)-1] == ' ' || closing[len(closing)-1] == '\t' {
			title = bytes.TrimSpace(closing)
		}
	}
	return string(title)
}

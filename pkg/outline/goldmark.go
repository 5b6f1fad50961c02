package outline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdhl/pkg/textbuf"
)

// Flavors understood by Reference.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Reference builds outlines with a full CommonMark parser.
type Reference struct {
	flavor string
	md     goldmark.Markdown
}

// NewReference creates a reference parser. Unknown flavors fall back to
// CommonMark.
func NewReference(flavor string) *Reference {
	f := flavorOrDefault(flavor)
	return &Reference{flavor: f, md: newGoldmarkInstance(f)}
}

// Flavor returns the configured Markdown flavor.
func (r *Reference) Flavor() string {
	return r.flavor
}

// Outline parses content and returns its headings in document order.
// Headings without text are skipped.
func (r *Reference) Outline(ctx context.Context, content []byte) ([]Heading, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	lines := textbuf.BuildLines(content)
	root := r.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var headings []Heading
	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		title := string(bytes.TrimSpace(inlineText(heading, content)))
		if title == "" || heading.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		start := heading.Lines().At(0).Start
		headings = append(headings, Heading{
			Level: heading.Level,
			Title: title,
			Line:  textbuf.LineOfOffset(lines, start) + 1,
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}

	return headings, nil
}

// inlineText concatenates the literal text below node.
func inlineText(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(source))
			if n.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(n.Value)
		default:
			buf.Write(inlineText(child, source))
		}
	}
	return buf.Bytes()
}

// flavorOrDefault returns the flavor if valid, otherwise CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	if flavor == FlavorGFM {
		return goldmark.New(goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New()
}

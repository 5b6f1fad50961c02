// Package render turns a styled document into terminal text or HTML.
package render

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/textbuf"
)

// Painter styles a piece of single-line text by style name.
type Painter interface {
	Render(name, text string) string
}

// Plain paints nothing.
type Plain struct{}

// Render returns text unchanged.
func (Plain) Render(_, text string) string { return text }

// TerminalOptions controls Terminal output.
type TerminalOptions struct {
	// Wrap is the column at which lines are word wrapped. 0 disables.
	Wrap int

	// LineNumbers prefixes every source line with its 1-based number.
	LineNumbers bool
}

// Lines renders source lines [from, to) of doc. Only the styled part of the
// document is painted; text past EndStyled is written raw.
func Lines(doc *highlight.Document, painter Painter, from, to int) []string {
	if painter == nil {
		painter = Plain{}
	}
	buf := doc.Buffer()
	to = min(to, buf.LineCount())
	if from >= to {
		return nil
	}

	spans := doc.Spans()
	content := doc.Content()
	out := make([]string, 0, to-from)
	for line := from; line < to; line++ {
		info, _ := buf.Line(line)
		out = append(out, renderLine(doc, content, spans, info, painter))
	}
	return out
}

func renderLine(doc *highlight.Document, content []byte, spans []highlight.Span, info textbuf.LineInfo, painter Painter) string {
	var b strings.Builder

	pos := info.StartOffset
	first := sort.Search(len(spans), func(i int) bool { return spans[i].End > info.StartOffset })
	for i := first; i < len(spans) && spans[i].Start < info.NewlineStart; i++ {
		end := min(spans[i].End, info.NewlineStart)
		b.WriteString(painter.Render(doc.Module().StyleName(spans[i].Style), string(content[pos:end])))
		pos = end
	}
	if pos < info.NewlineStart {
		b.Write(content[pos:info.NewlineStart])
	}
	return b.String()
}

// Wrap word wraps a rendered line at width columns, breaking words longer
// than width. Escape sequences do not count towards the width.
func Wrap(line string, width int) string {
	if width <= 0 {
		return line
	}
	return wrap.String(wordwrap.String(line, width), width)
}

// Terminal writes the whole of doc, which must be coloured, to w.
func Terminal(w io.Writer, doc *highlight.Document, painter Painter, opts TerminalOptions) error {
	if doc.Len() == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)

	count := doc.Buffer().LineCount()
	// Content ending in a terminator has a final empty line that is not printed.
	if count > 1 {
		if last, _ := doc.Buffer().Line(count - 1); last.StartOffset == last.EndOffset {
			count--
		}
	}

	gutter := len(strconv.Itoa(count))
	for i, line := range Lines(doc, painter, 0, count) {
		if opts.LineNumbers {
			line = fmt.Sprintf("%*d  %s", gutter, i+1, line)
		}
		if _, err := bw.WriteString(Wrap(line, opts.Wrap) + "\n"); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

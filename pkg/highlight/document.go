// Package highlight drives a scanner over a document the way an editor host
// does: it remembers how far the text is styled, restyles incrementally after
// edits, and exposes the result as merged spans.
package highlight

import (
	"context"

	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/textbuf"
)

// DefaultChunkSize is the approximate number of bytes styled between
// cancellation checks.
const DefaultChunkSize = 64 * 1024

// Document couples a buffer with the scanner that colours it.
type Document struct {
	buf       *textbuf.Buffer
	module    lexer.Module
	chunkSize int
}

// New creates a document over content, coloured by module.
func New(content []byte, module lexer.Module) *Document {
	return &Document{
		buf:       textbuf.New(content),
		module:    module,
		chunkSize: DefaultChunkSize,
	}
}

// Buffer returns the underlying buffer.
func (d *Document) Buffer() *textbuf.Buffer { return d.buf }

// Module returns the scanner colouring the document.
func (d *Document) Module() lexer.Module { return d.module }

// Content returns the document text. The slice must not be modified.
func (d *Document) Content() []byte { return d.buf.Bytes() }

// Len returns the document length in bytes.
func (d *Document) Len() int { return d.buf.Len() }

// EndStyled returns the first position whose style is not current.
func (d *Document) EndStyled() int { return d.buf.EndStyled() }

// SetProperty passes a host property through to the scanner.
func (d *Document) SetProperty(key string, value any) {
	d.buf.SetProperty(key, value)
}

// StyleAt returns the style at pos. Call Colourise first.
func (d *Document) StyleAt(pos int) lexer.Style { return d.buf.StyleAt(pos) }

// Colourise styles the document up to upTo (exclusive). Styling resumes at
// the start of the line holding the first stale position, in chunks of whole
// lines; ctx is checked between chunks.
func (d *Document) Colourise(ctx context.Context, upTo int) error {
	if err := d.buf.ValidRange(0, upTo); err != nil {
		return err
	}

	for d.buf.EndStyled() < upTo {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := d.buf.LineStart(d.buf.LineOf(d.buf.EndStyled()))
		end := upTo
		if end-start > d.chunkSize {
			end = d.buf.LineStart(d.buf.LineOf(start+d.chunkSize) + 1)
			if end <= start || end > upTo {
				end = upTo
			}
		}

		d.styleRange(start, end)
	}

	return nil
}

// ColouriseAll styles the whole document.
func (d *Document) ColouriseAll(ctx context.Context) error {
	return d.Colourise(ctx, d.buf.Len())
}

func (d *Document) styleRange(start, end int) {
	var initStyle lexer.Style
	if start > 0 {
		initStyle = d.buf.StyleAt(start - 1)
	}

	d.module.Lex(start, end-start, initStyle, d.buf)
	if d.module.Fold != nil {
		d.module.Fold(start, end-start, initStyle, d.buf)
	}

	// A scanner that leaves a tail unstyled must not stall the loop.
	if d.buf.EndStyled() < end {
		d.buf.StartAt(end)
	}
}

// Replace edits the document and marks everything from the line above the
// edit as stale.
func (d *Document) Replace(offset, deleteLen int, text []byte) error {
	return d.buf.Replace(offset, deleteLen, text)
}

// Restore reuses styles computed for an earlier version of the document.
// Styles are kept up to the start of the line above the first line that
// differs between previous and the current content, since that line may
// have looked ahead into the change. Only identical content is kept whole.
func (d *Document) Restore(previous []byte, styles []lexer.Style) int {
	content := d.buf.Bytes()
	limit := min(len(previous), len(content), len(styles))

	diff := 0
	for diff < limit && previous[diff] == content[diff] {
		diff++
	}

	keep := 0
	switch {
	case diff == len(content) && len(previous) == len(content) && len(styles) >= len(content):
		keep = len(content)
	case diff > 0:
		keep = d.buf.LineStart(d.buf.LineOf(diff) - 1)
	}

	d.buf.RestoreStyles(styles, keep)
	return keep
}

// RestoreLevels installs fold levels saved alongside styles restored with
// Restore. upTo is the value Restore returned.
func (d *Document) RestoreLevels(levels []int, upTo int) {
	lines := d.buf.LineOf(upTo)
	if upTo >= d.buf.Len() {
		lines = d.buf.LineCount()
	}
	for line := range min(lines, len(levels)) {
		d.buf.SetLevel(line, levels[line])
	}
}

// Levels returns the fold level of every line.
func (d *Document) Levels() []int {
	levels := make([]int, d.buf.LineCount())
	for line := range levels {
		levels[line] = d.buf.LevelAt(line)
	}
	return levels
}

// Counts returns the number of styled bytes per style name.
func (d *Document) Counts() map[string]int {
	counts := make(map[string]int)
	for _, style := range d.buf.Styles()[:d.buf.EndStyled()] {
		counts[d.module.StyleName(style)]++
	}
	return counts
}

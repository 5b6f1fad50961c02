// Package textbuf provides the in-memory document buffer scanners colour:
// byte content, a line table, per-position style storage and per-line fold
// levels. Buffer implements lexer.Accessor.
package textbuf

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdhl/pkg/lexer"
)

// ErrInvalidRange is returned when a range falls outside the buffer.
var ErrInvalidRange = errors.New("invalid range")

// Compile-time interface checks.
var (
	_ lexer.Accessor       = (*Buffer)(nil)
	_ lexer.PropertyReader = (*Buffer)(nil)
)

// Buffer is a mutable document with style and fold storage.
// It is not safe for concurrent use.
type Buffer struct {
	content []byte
	lines   []LineInfo
	styles  []lexer.Style
	levels  []int
	props   map[string]any

	// endStyled is the first position whose style is not known to be current.
	endStyled int

	// segStart is the first position of the open style segment.
	segStart int
}

// New creates a buffer over a copy of content.
func New(content []byte) *Buffer {
	buf := &Buffer{
		content: append([]byte(nil), content...),
		props:   make(map[string]any),
	}
	buf.lines = BuildLines(buf.content)
	buf.styles = make([]lexer.Style, len(buf.content))
	buf.levels = newLevels(len(buf.lines))
	return buf
}

func newLevels(n int) []int {
	levels := make([]int, n)
	for i := range levels {
		levels[i] = lexer.FoldLevelBase
	}
	return levels
}

// Bytes returns the buffer content. The slice must not be modified.
func (b *Buffer) Bytes() []byte { return b.content }

// Len returns the content length in bytes.
func (b *Buffer) Len() int { return len(b.content) }

// CharAt returns the byte at pos, or 0 outside the content.
func (b *Buffer) CharAt(pos int) byte {
	if pos < 0 || pos >= len(b.content) {
		return 0
	}
	return b.content[pos]
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the metadata of a 0-based line.
func (b *Buffer) Line(line int) (LineInfo, bool) {
	if line < 0 || line >= len(b.lines) {
		return LineInfo{}, false
	}
	return b.lines[line], true
}

// LineOf returns the 0-based line containing pos.
func (b *Buffer) LineOf(pos int) int {
	return lineIndex(b.lines, pos)
}

// LineStart returns the offset of the first byte of line.
func (b *Buffer) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(b.lines) {
		return len(b.content)
	}
	return b.lines[line].StartOffset
}

// LineEnd returns the offset just past the terminator of line.
func (b *Buffer) LineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lines) {
		return len(b.content)
	}
	return b.lines[line].EndOffset
}

// LineContent returns the text of a 0-based line without its terminator.
func (b *Buffer) LineContent(line int) []byte {
	info, ok := b.Line(line)
	if !ok {
		return nil
	}
	return b.content[info.StartOffset:info.NewlineStart]
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
func (b *Buffer) LineAt(offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	idx := b.LineOf(offset)
	return idx + 1, offset - b.lines[idx].StartOffset + 1
}

// ValidRange reports whether [start, start+length) lies within the buffer.
func (b *Buffer) ValidRange(start, length int) error {
	if start < 0 || length < 0 || start+length > len(b.content) {
		return fmt.Errorf("%w: [%d, %d) in buffer of length %d", ErrInvalidRange, start, start+length, len(b.content))
	}
	return nil
}

// StyleAt returns the style stored at pos.
func (b *Buffer) StyleAt(pos int) lexer.Style {
	if pos < 0 || pos >= len(b.styles) {
		return 0
	}
	return b.styles[pos]
}

// Styles returns the style storage. The slice must not be modified.
func (b *Buffer) Styles() []lexer.Style { return b.styles }

// EndStyled returns the first position whose style is not current.
func (b *Buffer) EndStyled() int { return b.endStyled }

// StartAt marks pos as the start of restyling.
func (b *Buffer) StartAt(pos int) {
	b.endStyled = clamp(pos, 0, len(b.content))
}

// StartSegment opens a style segment at pos.
func (b *Buffer) StartSegment(pos int) {
	b.segStart = clamp(pos, 0, len(b.content))
}

// ColourTo tags [segStart, pos] with style and opens the next segment after pos.
func (b *Buffer) ColourTo(pos int, style lexer.Style) {
	if pos < b.segStart {
		return
	}
	if pos >= len(b.styles) {
		pos = len(b.styles) - 1
	}
	for i := b.segStart; i <= pos; i++ {
		b.styles[i] = style
	}
	b.segStart = pos + 1
	b.endStyled = pos + 1
}

// RestoreStyles installs previously computed styles for [0, upTo) and marks
// them current, so the next colouring pass resumes at upTo.
func (b *Buffer) RestoreStyles(styles []lexer.Style, upTo int) {
	upTo = min(upTo, len(styles), len(b.styles))
	copy(b.styles[:upTo], styles[:upTo])
	b.endStyled = max(upTo, 0)
}

// LevelAt returns the fold level of line.
func (b *Buffer) LevelAt(line int) int {
	if line < 0 || line >= len(b.levels) {
		return lexer.FoldLevelBase
	}
	return b.levels[line]
}

// SetLevel stores the fold level of line.
func (b *Buffer) SetLevel(line, level int) {
	if line < 0 || line >= len(b.levels) {
		return
	}
	b.levels[line] = level
}

// SetProperty attaches a host property read by scanners.
func (b *Buffer) SetProperty(key string, value any) {
	b.props[key] = value
}

// Property implements lexer.PropertyReader.
func (b *Buffer) Property(key string) (any, bool) {
	value, ok := b.props[key]
	return value, ok
}

// Replace deletes deleteLen bytes at offset and inserts text there.
// Styles after the edit shift with the text; the styled watermark drops to
// the start of the line above the edit.
func (b *Buffer) Replace(offset, deleteLen int, text []byte) error {
	if err := b.ValidRange(offset, deleteLen); err != nil {
		return err
	}

	editLine := b.LineOf(offset)

	content := make([]byte, 0, len(b.content)-deleteLen+len(text))
	content = append(content, b.content[:offset]...)
	content = append(content, text...)
	content = append(content, b.content[offset+deleteLen:]...)

	styles := make([]lexer.Style, 0, len(content))
	styles = append(styles, b.styles[:offset]...)
	styles = append(styles, make([]lexer.Style, len(text))...)
	styles = append(styles, b.styles[offset+deleteLen:]...)

	b.content = content
	b.styles = styles
	b.lines = BuildLines(content)

	levels := newLevels(len(b.lines))
	copy(levels[:min(editLine, len(levels))], b.levels)
	b.levels = levels

	// Lookahead from the line above may have read the edited bytes.
	stale := b.LineStart(b.LineOf(offset) - 1)
	b.endStyled = min(b.endStyled, stale)
	b.segStart = min(b.segStart, stale)

	return nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

package highlight

import "github.com/yaklabco/mdhl/pkg/lexer"

// Span is a maximal run of positions sharing one style.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int

	// Style classifies every byte of the span.
	Style lexer.Style
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the source text of the span from the given content.
func (s Span) Text(content []byte) []byte {
	if s.Start < 0 || s.End > len(content) || s.Start > s.End {
		return nil
	}
	return content[s.Start:s.End]
}

// Spans returns the styled part of the document as merged spans.
func (d *Document) Spans() []Span {
	return SpansOf(d.buf.Styles()[:d.buf.EndStyled()])
}

// SpansOf merges per-position styles into spans.
func SpansOf(styles []lexer.Style) []Span {
	var spans []Span
	for pos, style := range styles {
		if n := len(spans); n > 0 && spans[n-1].Style == style {
			spans[n-1].End = pos + 1
			continue
		}
		spans = append(spans, Span{Start: pos, End: pos + 1, Style: style})
	}
	return spans
}

// LineSpans splits spans at line boundaries and returns the pieces lying on
// the 0-based line. Terminator bytes are excluded.
func (d *Document) LineSpans(line int, spans []Span) []Span {
	info, ok := d.buf.Line(line)
	if !ok {
		return nil
	}

	var out []Span
	for _, span := range spans {
		if span.End <= info.StartOffset {
			continue
		}
		if span.Start >= info.NewlineStart {
			break
		}
		out = append(out, Span{
			Start: max(span.Start, info.StartOffset),
			End:   min(span.End, info.NewlineStart),
			Style: span.Style,
		})
	}
	return out
}

// ValidateSpans checks that spans are non-empty, contiguous and
// non-overlapping, and that together they cover [0, contentLen).
func ValidateSpans(spans []Span, contentLen int) bool {
	if len(spans) == 0 {
		return contentLen == 0
	}

	// First span must start at 0.
	if spans[0].Start != 0 {
		return false
	}

	// Last span must end at contentLen.
	if spans[len(spans)-1].End != contentLen {
		return false
	}

	for i := range spans {
		if spans[i].Len() <= 0 {
			return false
		}
		if i > 0 && spans[i].Start != spans[i-1].End {
			return false
		}
	}

	return true
}

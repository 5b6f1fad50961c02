package textbuf

import "sort"

// LineInfo holds metadata for a single line of a buffer.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins.
	// For lines without a terminator (the last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the terminator (or end of content).
	EndOffset int
}

// BuildLines constructs line metadata from content.
// LF, CR and CRLF all terminate a line; a CRLF pair counts once.
// The result always has at least one entry, and content ending in a
// terminator has a final empty line.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, len(content)/40+1)
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		switch content[idx] {
		case '\n':
			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: idx,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		case '\r':
			newlineStart := idx
			if idx+1 < len(content) && content[idx+1] == '\n' {
				idx++
			}
			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Last line (may be empty, may lack a terminator).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// lineIndex returns the 0-based index of the line containing offset.
// Offsets at or past the end map to the last line.
func lineIndex(lines []LineInfo, offset int) int {
	if offset <= 0 {
		return 0
	}
	idx := sort.Search(len(lines), func(i int) bool {
		return lines[i].EndOffset > offset
	})
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	return idx
}

// LineOfOffset returns the 0-based line of lines containing offset.
func LineOfOffset(lines []LineInfo, offset int) int {
	return lineIndex(lines, offset)
}

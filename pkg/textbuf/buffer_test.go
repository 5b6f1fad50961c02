package textbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/textbuf"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []textbuf.LineInfo
	}{
		{
			name:    "empty content",
			content: "",
			expected: []textbuf.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 0},
			},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []textbuf.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []textbuf.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "CRLF counts once",
			content: "a\r\nb",
			expected: []textbuf.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 4},
			},
		},
		{
			name:    "lone CR",
			content: "a\rb",
			expected: []textbuf.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 3, EndOffset: 3},
			},
		},
		{
			name:    "mixed terminators",
			content: "a\nb\r\nc\r",
			expected: []textbuf.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 3, EndOffset: 5},
				{StartOffset: 5, NewlineStart: 6, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, textbuf.BuildLines([]byte(testCase.content)))
		})
	}
}

func TestBuffer_LineQueries(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("line1\nline2\r\nline3"))

	assert.Equal(t, 3, buf.LineCount())
	assert.Equal(t, 0, buf.LineOf(0))
	assert.Equal(t, 0, buf.LineOf(5))
	assert.Equal(t, 1, buf.LineOf(6))
	assert.Equal(t, 1, buf.LineOf(12))
	assert.Equal(t, 2, buf.LineOf(13))
	assert.Equal(t, 2, buf.LineOf(100))

	assert.Equal(t, 0, buf.LineStart(-1))
	assert.Equal(t, 6, buf.LineStart(1))
	assert.Equal(t, 13, buf.LineStart(2))
	assert.Equal(t, buf.Len(), buf.LineStart(3))

	assert.Equal(t, []byte("line2"), buf.LineContent(1))
	assert.Nil(t, buf.LineContent(7))
}

func TestBuffer_LineAt(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("line1\nline2\nline3"))

	tests := []struct {
		name         string
		offset       int
		expectedLine int
		expectedCol  int
	}{
		{"start of file", 0, 1, 1},
		{"newline of line 1", 5, 1, 6},
		{"start of line 2", 6, 2, 1},
		{"end of file", 16, 3, 5},
		{"negative offset", -1, 0, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			line, col := buf.LineAt(testCase.offset)
			assert.Equal(t, testCase.expectedLine, line)
			assert.Equal(t, testCase.expectedCol, col)
		})
	}
}

func TestBuffer_CharAtOutOfRange(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("ab"))

	assert.Equal(t, byte('a'), buf.CharAt(0))
	assert.Equal(t, byte('b'), buf.CharAt(1))
	assert.Zero(t, buf.CharAt(-1))
	assert.Zero(t, buf.CharAt(2))
}

func TestBuffer_ColourTo(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("abcdef"))
	buf.StartAt(0)
	buf.StartSegment(0)

	buf.ColourTo(1, 3)
	buf.ColourTo(0, 9) // before the open segment: ignored
	buf.ColourTo(4, 5)

	assert.Equal(t, []lexer.Style{3, 3, 5, 5, 5, 0}, buf.Styles())
	assert.Equal(t, 5, buf.EndStyled())

	buf.ColourTo(50, 7)
	assert.Equal(t, lexer.Style(7), buf.StyleAt(5))
	assert.Equal(t, 6, buf.EndStyled())
}

func TestBuffer_ValidRange(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("abc"))

	require.NoError(t, buf.ValidRange(0, 3))
	require.NoError(t, buf.ValidRange(3, 0))
	require.ErrorIs(t, buf.ValidRange(-1, 1), textbuf.ErrInvalidRange)
	require.ErrorIs(t, buf.ValidRange(2, 2), textbuf.ErrInvalidRange)
	require.ErrorIs(t, buf.ValidRange(0, -1), textbuf.ErrInvalidRange)
}

func TestBuffer_Replace(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("ab\ncd\nef"))
	buf.StartAt(0)
	buf.StartSegment(0)
	buf.ColourTo(7, 2)
	buf.SetLevel(0, lexer.FoldLevelBase+1)
	buf.SetLevel(2, lexer.FoldLevelBase+3)
	require.Equal(t, 8, buf.EndStyled())

	require.NoError(t, buf.Replace(3, 2, []byte("xyz\nw")))

	assert.Equal(t, "ab\nxyz\nw\nef", string(buf.Bytes()))
	assert.Equal(t, 4, buf.LineCount())
	assert.Zero(t, buf.EndStyled(), "the line above the edit is stale too")

	styles := buf.Styles()
	require.Len(t, styles, buf.Len())
	assert.Equal(t, lexer.Style(2), styles[2])
	assert.Equal(t, lexer.Style(0), styles[3])
	assert.Equal(t, lexer.Style(2), styles[len(styles)-1])

	assert.Equal(t, lexer.FoldLevelBase+1, buf.LevelAt(0))
	assert.Equal(t, lexer.FoldLevelBase, buf.LevelAt(3))

	require.ErrorIs(t, buf.Replace(100, 0, nil), textbuf.ErrInvalidRange)
}

func TestBuffer_ReplaceAtEnd(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("one\ntwo\n==="))
	buf.StartAt(0)
	buf.StartSegment(0)
	buf.ColourTo(buf.Len()-1, 1)

	require.NoError(t, buf.Replace(8, 3, nil))
	assert.Equal(t, "one\ntwo\n", string(buf.Bytes()))
	assert.Equal(t, 4, buf.EndStyled())
	assert.Less(t, buf.EndStyled(), buf.Len())
}

func TestBuffer_RestoreStyles(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("abcd"))
	buf.RestoreStyles([]lexer.Style{1, 2, 3, 4, 5, 6}, 3)

	assert.Equal(t, []lexer.Style{1, 2, 3, 0}, buf.Styles())
	assert.Equal(t, 3, buf.EndStyled())
}

func TestBuffer_Properties(t *testing.T) {
	t.Parallel()

	buf := textbuf.New(nil)

	_, ok := buf.Property("fold.compact")
	assert.False(t, ok)

	buf.SetProperty("fold.compact", false)
	value, ok := buf.Property("fold.compact")
	require.True(t, ok)
	assert.Equal(t, false, value)
}

package searchresult_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/lexer/searchresult"
	"github.com/yaklabco/mdhl/pkg/textbuf"
)

const results = "Search \"foo\" (2 hits in 1 file)\n" +
	"  docs/a.md (2 hits)\n" +
	"\tLine 3: a foo b\n" +
	"\tLine 12: foo\n"

func lexResults(t *testing.T, marks []searchresult.Marking) *textbuf.Buffer {
	t.Helper()

	buf := textbuf.New([]byte(results))
	if marks != nil {
		buf.SetProperty(searchresult.MarkingsProperty, marks)
	}
	searchresult.Lex(0, buf.Len(), searchresult.Default, buf)
	return buf
}

func styleOf(buf *textbuf.Buffer, line, col int) lexer.Style {
	return buf.StyleAt(buf.LineStart(line) + col)
}

func TestLex_LineKinds(t *testing.T) {
	t.Parallel()

	buf := lexResults(t, []searchresult.Marking{2: {Start: 11, End: 14}, 3: {Start: 10, End: 13}})

	header := buf.LineContent(0)
	for col := range len(header) + 1 {
		assert.Equal(t, searchresult.SearchHeader, styleOf(buf, 0, col), "search header col %d", col)
	}
	assert.Equal(t, searchresult.FileHeader, styleOf(buf, 1, 0))
	assert.Equal(t, searchresult.FileHeader, styleOf(buf, 1, 5))

	// "\tLine 3: a foo b"
	assert.Equal(t, searchresult.Default, styleOf(buf, 2, 0))
	assert.Equal(t, searchresult.Default, styleOf(buf, 2, 4))
	assert.Equal(t, searchresult.LineNumber, styleOf(buf, 2, 5))
	assert.Equal(t, searchresult.LineNumber, styleOf(buf, 2, 6))
	assert.Equal(t, searchresult.Default, styleOf(buf, 2, 7))
	assert.Equal(t, searchresult.Default, styleOf(buf, 2, 10))
	for col := 11; col < 14; col++ {
		assert.Equal(t, searchresult.WordToSearch, styleOf(buf, 2, col), "match col %d", col)
	}
	assert.Equal(t, searchresult.Default, styleOf(buf, 2, 14))

	// "\tLine 12: foo"
	assert.Equal(t, searchresult.LineNumber, styleOf(buf, 3, 7))
	assert.Equal(t, searchresult.WordToSearch, styleOf(buf, 3, 10))
	assert.Equal(t, searchresult.WordToSearch, styleOf(buf, 3, 12))
	assert.Equal(t, searchresult.Default, styleOf(buf, 3, 13))

	assert.Equal(t, buf.Len(), buf.EndStyled())
}

func TestLex_MatchPastLineEndRunsToEnd(t *testing.T) {
	t.Parallel()

	buf := lexResults(t, []searchresult.Marking{2: {Start: 11, End: 40}})

	end := buf.LineEnd(2) - 1
	for pos := buf.LineStart(2) + 11; pos <= end; pos++ {
		assert.Equal(t, searchresult.WordToSearch, buf.StyleAt(pos))
	}
}

func TestLex_WithoutMarkings(t *testing.T) {
	t.Parallel()

	buf := lexResults(t, nil)

	assert.Equal(t, searchresult.SearchHeader, styleOf(buf, 0, 0))
	assert.Equal(t, searchresult.LineNumber, styleOf(buf, 2, 5))
	for _, style := range buf.Styles() {
		assert.NotEqual(t, searchresult.WordToSearch, style)
	}
}

func TestLex_LineWithoutSeparator(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("garbage line\n"))
	searchresult.Lex(0, buf.Len(), searchresult.Default, buf)

	for _, style := range buf.Styles() {
		assert.Equal(t, searchresult.Default, style)
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	doc := results + "\n"
	buf := textbuf.New([]byte(doc))
	searchresult.Lex(0, buf.Len(), searchresult.Default, buf)
	searchresult.Fold(0, buf.Len(), searchresult.Default, buf)

	assert.Equal(t, lexer.FoldLevelHeaderFlag|searchresult.SearchHeaderLevel, buf.LevelAt(0))
	assert.Equal(t, lexer.FoldLevelHeaderFlag|searchresult.FileHeaderLevel, buf.LevelAt(1))
	assert.Equal(t, searchresult.ResultLevel, buf.LevelAt(2))
	assert.Equal(t, searchresult.ResultLevel, buf.LevelAt(3))
	assert.Equal(t, searchresult.ResultLevel|lexer.FoldLevelWhiteFlag, buf.LevelAt(4))
	assert.Equal(t, lexer.FoldLevelBase, buf.LevelAt(5))

	assert.True(t, lexer.IsFoldHeader(buf.LevelAt(0)))
	assert.Equal(t, searchresult.FileHeaderLevel, lexer.FoldDepth(buf.LevelAt(1)))
}

func TestFold_NotCompact(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte("\n\tLine 1: x\n"))
	buf.SetProperty(searchresult.FoldCompactProperty, false)
	searchresult.Lex(0, buf.Len(), searchresult.Default, buf)
	searchresult.Fold(0, buf.Len(), searchresult.Default, buf)

	assert.Equal(t, searchresult.ResultLevel, buf.LevelAt(0))
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	module, err := lexer.DefaultRegistry.Lookup("SearchResult")
	require.NoError(t, err)
	assert.True(t, module.CanFold())
	assert.Equal(t, "word-to-search", module.StyleName(searchresult.WordToSearch))

	_, err = lexer.DefaultRegistry.Lookup("nope")
	require.ErrorIs(t, err, lexer.ErrUnknownLexer)
	assert.True(t, strings.Contains(err.Error(), searchresult.Name))
}

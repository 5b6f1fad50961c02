package highlight

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
	"github.com/yaklabco/mdhl/pkg/lexer/searchresult"
	"github.com/yaklabco/mdhl/pkg/textbuf"
)

const sample = "# Title\n\nIntro with **bold** and `code`.\n\nSub\n---\n\n> quote\n\n~~~\n    fenced\n~~~\n\n---\n"

func freshStyles(t *testing.T, content string) []lexer.Style {
	t.Helper()

	doc := New([]byte(content), markdown.Module)
	require.NoError(t, doc.ColouriseAll(context.Background()))
	return append([]lexer.Style(nil), doc.Buffer().Styles()...)
}

func TestColourise_MatchesDirectLex(t *testing.T) {
	t.Parallel()

	buf := textbuf.New([]byte(sample))
	markdown.Lex(0, buf.Len(), markdown.Default, buf)

	assert.Equal(t, buf.Styles(), freshStyles(t, sample))
}

func TestColourise_Chunked(t *testing.T) {
	t.Parallel()

	content := strings.Repeat(sample, 20)
	want := freshStyles(t, content)

	for _, chunk := range []int{1, 7, 64, 500} {
		doc := New([]byte(content), markdown.Module)
		doc.chunkSize = chunk
		require.NoError(t, doc.ColouriseAll(context.Background()))
		assert.Equal(t, want, doc.Buffer().Styles(), "chunk size %d", chunk)
	}
}

func TestColourise_Prefix(t *testing.T) {
	t.Parallel()

	doc := New([]byte(sample), markdown.Module)
	require.NoError(t, doc.Colourise(context.Background(), 10))
	assert.GreaterOrEqual(t, doc.EndStyled(), 10)

	require.NoError(t, doc.ColouriseAll(context.Background()))
	assert.Equal(t, freshStyles(t, sample), doc.Buffer().Styles())
}

func TestColourise_Errors(t *testing.T) {
	t.Parallel()

	doc := New([]byte(sample), markdown.Module)

	err := doc.Colourise(context.Background(), len(sample)+1)
	require.ErrorIs(t, err, textbuf.ErrInvalidRange)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, doc.ColouriseAll(ctx), context.Canceled)
	assert.Zero(t, doc.EndStyled())
}

func TestReplace_IncrementalMatchesFresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		offset int
		delete int
		insert string
	}{
		{"promote paragraph to header", strings.Index(sample, "Intro"), 0, "# "},
		{"underline paragraph", strings.Index(sample, "\n\nSub"), 0, "\n==="},
		{"break setext underline", strings.Index(sample, "---\n\n>"), 1, ""},
		{"open fence early", 0, 0, "~~~\n"},
		{"remove closing fence", strings.LastIndex(sample, "~~~"), 3, "xxx"},
		{"unterminated code span", strings.Index(sample, "`code`") + 5, 1, ""},
		{"append text", len(sample), 0, "tail **x**"},
		{"crlf insertion", strings.Index(sample, "> quote"), 0, "para\r\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := New([]byte(sample), markdown.Module)
			require.NoError(t, doc.ColouriseAll(context.Background()))

			require.NoError(t, doc.Replace(testCase.offset, testCase.delete, []byte(testCase.insert)))
			assert.LessOrEqual(t, doc.EndStyled(), testCase.offset)
			require.NoError(t, doc.ColouriseAll(context.Background()))

			want := freshStyles(t, string(doc.Content()))
			assert.Equal(t, want, doc.Buffer().Styles())
			assert.True(t, ValidateSpans(doc.Spans(), doc.Len()))
		})
	}
}

func TestRestore(t *testing.T) {
	t.Parallel()

	previous := New([]byte(sample), markdown.Module)
	require.NoError(t, previous.ColouriseAll(context.Background()))
	styles := previous.Buffer().Styles()

	t.Run("unchanged content keeps everything", func(t *testing.T) {
		t.Parallel()

		doc := New([]byte(sample), markdown.Module)
		assert.Equal(t, len(sample), doc.Restore([]byte(sample), styles))
		assert.Equal(t, len(sample), doc.EndStyled())
	})

	t.Run("edited content restyles from the changed line", func(t *testing.T) {
		t.Parallel()

		edited := strings.Replace(sample, "Sub\n", "Sub heading\n", 1)
		doc := New([]byte(edited), markdown.Module)
		kept := doc.Restore([]byte(sample), styles)

		assert.Equal(t, strings.Index(sample, "\n\nSub")+1, kept)
		require.NoError(t, doc.ColouriseAll(context.Background()))
		assert.Equal(t, freshStyles(t, edited), doc.Buffer().Styles())
	})

	t.Run("truncated content is never a full hit", func(t *testing.T) {
		t.Parallel()

		longer := New([]byte("Title\n==="), markdown.Module)
		require.NoError(t, longer.ColouriseAll(context.Background()))

		doc := New([]byte("Title\n"), markdown.Module)
		kept := doc.Restore(longer.Content(), longer.Buffer().Styles())
		assert.Less(t, kept, doc.Len())

		require.NoError(t, doc.ColouriseAll(context.Background()))
		assert.Equal(t, freshStyles(t, "Title\n"), doc.Buffer().Styles())
	})
}

func TestReplace_DeleteAtEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		offset  int
	}{
		{"setext underline", "Title\n===", 6},
		{"closing backtick", "x `a`", 4},
		{"hrule underline", "para\n---\n", 5},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := New([]byte(testCase.content), markdown.Module)
			require.NoError(t, doc.ColouriseAll(context.Background()))

			require.NoError(t, doc.Replace(testCase.offset, doc.Len()-testCase.offset, nil))
			require.Less(t, doc.EndStyled(), doc.Len())
			require.NoError(t, doc.ColouriseAll(context.Background()))

			assert.Equal(t, freshStyles(t, string(doc.Content())), doc.Buffer().Styles())
		})
	}
}

func TestSpans(t *testing.T) {
	t.Parallel()

	doc := New([]byte("# H\nx"), markdown.Module)
	require.NoError(t, doc.ColouriseAll(context.Background()))

	spans := doc.Spans()
	assert.Equal(t, []Span{
		{Start: 0, End: 3, Style: markdown.Header1},
		{Start: 3, End: 4, Style: markdown.LineBegin},
		{Start: 4, End: 5, Style: markdown.Default},
	}, spans)
	assert.Equal(t, "# H", string(spans[0].Text(doc.Content())))

	assert.Equal(t, []Span{{Start: 0, End: 3, Style: markdown.Header1}}, doc.LineSpans(0, spans))
	assert.Equal(t, []Span{{Start: 4, End: 5, Style: markdown.Default}}, doc.LineSpans(1, spans))
	assert.Nil(t, doc.LineSpans(9, spans))

	counts := doc.Counts()
	assert.Equal(t, 3, counts["header1"])
	assert.Equal(t, 1, counts["default"])
}

func TestValidateSpans(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateSpans(nil, 0))
	assert.False(t, ValidateSpans(nil, 1))
	assert.True(t, ValidateSpans([]Span{{0, 2, 0}, {2, 5, 1}}, 5))
	assert.False(t, ValidateSpans([]Span{{1, 2, 0}}, 2), "must start at zero")
	assert.False(t, ValidateSpans([]Span{{0, 2, 0}, {3, 5, 1}}, 5), "gap")
	assert.False(t, ValidateSpans([]Span{{0, 3, 0}, {2, 5, 1}}, 5), "overlap")
	assert.False(t, ValidateSpans([]Span{{0, 2, 0}}, 5), "short")
	assert.False(t, ValidateSpans([]Span{{0, 0, 0}, {0, 2, 0}}, 2), "empty span")
}

func TestLevels_SearchResults(t *testing.T) {
	t.Parallel()

	content := "Search \"x\" (1 hit in 1 file)\n  a.md (1 hit)\n\tLine 1: x\n"
	doc := New([]byte(content), searchresult.Module)
	doc.SetProperty(searchresult.MarkingsProperty, []searchresult.Marking{2: {Start: 9, End: 10}})
	require.NoError(t, doc.ColouriseAll(context.Background()))

	levels := doc.Levels()
	require.Len(t, levels, 4)
	assert.True(t, lexer.IsFoldHeader(levels[0]))
	assert.True(t, lexer.IsFoldHeader(levels[1]))
	assert.Equal(t, searchresult.ResultLevel, levels[2])
	assert.Equal(t, searchresult.WordToSearch, doc.StyleAt(strings.LastIndex(content, "x")))
}

func BenchmarkColouriseAll(b *testing.B) {
	content := []byte(strings.Repeat(sample, 200))
	b.SetBytes(int64(len(content)))
	b.ReportAllocs()

	for b.Loop() {
		doc := New(content, markdown.Module)
		if err := doc.ColouriseAll(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}

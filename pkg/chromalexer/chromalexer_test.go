package chromalexer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhl/pkg/chromalexer"
	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
)

func TestLexer_Config(t *testing.T) {
	t.Parallel()

	l := chromalexer.New(markdown.Module)
	assert.Equal(t, "mdhl-markdown", l.Config().Name)
	assert.Contains(t, l.Config().Filenames, "*.md")
}

func TestLexer_Tokenise(t *testing.T) {
	t.Parallel()

	text := "# Title\nplain `code`\n"
	it, err := chromalexer.New(markdown.Module).Tokenise(nil, text)
	require.NoError(t, err)

	tokens := it.Tokens()
	var rebuilt strings.Builder
	for _, tok := range tokens {
		rebuilt.WriteString(tok.Value)
	}
	assert.Equal(t, text, rebuilt.String(), "tokens must cover the text exactly")

	require.NotEmpty(t, tokens)
	assert.Equal(t, chroma.Token{Type: chroma.GenericHeading, Value: "# Title"}, tokens[0])
	assert.Contains(t, tokens, chroma.Token{Type: chroma.LiteralStringBacktick, Value: "`code`"})
}

func TestIterator_UsesDocumentStyles(t *testing.T) {
	t.Parallel()

	doc := highlight.New([]byte("~~gone~~"), markdown.Module)
	require.NoError(t, doc.ColouriseAll(context.Background()))

	tokens := chromalexer.Iterator(doc).Tokens()
	require.Len(t, tokens, 1)
	assert.Equal(t, chroma.GenericDeleted, tokens[0].Type)
}

func TestTokenType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, chroma.GenericSubheading, chromalexer.TokenType("header3"))
	assert.Equal(t, chroma.LiteralNumberInteger, chromalexer.TokenType("line-number"))
	assert.Equal(t, chroma.Text, chromalexer.TokenType("nonsense"))
}

func TestAll(t *testing.T) {
	t.Parallel()

	reg := lexer.NewRegistry()
	reg.Register(markdown.Module)

	all := chromalexer.All(reg)
	require.Len(t, all, 1)
	assert.Equal(t, "mdhl-markdown", all[0].Config().Name)
}

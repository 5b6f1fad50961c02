package outline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
	"github.com/yaklabco/mdhl/pkg/outline"
)

const guide = `# Guide #

Intro text.

Install
=======

## Usage

> ### Quoted

Notes
-----

---

` + "```go\nfmt.Println()\n```\n\n~~~python\nprint(1)\n~~~\n"

func colour(t *testing.T, content string) *highlight.Document {
	t.Helper()

	doc := highlight.New([]byte(content), markdown.Module)
	require.NoError(t, doc.ColouriseAll(context.Background()))
	return doc
}

func TestFromDocument(t *testing.T) {
	t.Parallel()

	got := outline.FromDocument(colour(t, guide))
	assert.Equal(t, []outline.Heading{
		{Level: 1, Title: "Guide", Line: 1},
		{Level: 1, Title: "Install", Line: 5},
		{Level: 2, Title: "Usage", Line: 8},
		{Level: 3, Title: "Quoted", Line: 10},
		{Level: 2, Title: "Notes", Line: 12},
	}, got)
}

func TestFromDocument_OrphanUnderline(t *testing.T) {
	t.Parallel()

	assert.Empty(t, outline.FromDocument(colour(t, "=x\n---\n")))
}

func TestReference_Outline(t *testing.T) {
	t.Parallel()

	ref := outline.NewReference("commonmark")
	got, err := ref.Outline(context.Background(), []byte(guide))
	require.NoError(t, err)

	assert.Equal(t, outline.FromDocument(colour(t, guide)), got)
	assert.Equal(t, outline.FlavorCommonMark, ref.Flavor())
	assert.Equal(t, outline.FlavorCommonMark, outline.NewReference("nonsense").Flavor())
	assert.Equal(t, outline.FlavorGFM, outline.NewReference("gfm").Flavor())
}

func TestReference_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := outline.NewReference("").Outline(ctx, []byte("# x\n"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	scanner := []outline.Heading{
		{Level: 1, Title: "A", Line: 1},
		{Level: 1, Title: "B", Line: 3},
		{Level: 2, Title: "C", Line: 5},
	}
	reference := []outline.Heading{
		{Level: 1, Title: "A", Line: 1},
		{Level: 3, Title: "C", Line: 5},
		{Level: 2, Title: "D", Line: 9},
	}

	got := outline.Compare(scanner, reference)
	require.Len(t, got, 3)
	assert.Equal(t, outline.MismatchExtra, got[0].Kind)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, outline.MismatchLevel, got[1].Kind)
	assert.Equal(t, 2, got[1].Scanner.Level)
	assert.Equal(t, 3, got[1].Reference.Level)
	assert.Equal(t, outline.MismatchMissing, got[2].Kind)
	assert.Equal(t, "D", got[2].Reference.Title)

	assert.Empty(t, outline.Compare(reference, reference))
}

func TestCodeBlocks(t *testing.T) {
	t.Parallel()

	blocks := outline.CodeBlocks(colour(t, guide))
	require.Len(t, blocks, 2)

	assert.Equal(t, outline.CodeBlock{Line: 17, Lines: 3, Fence: "```", Info: "go", Language: "go"}, blocks[0])
	assert.Equal(t, outline.CodeBlock{Line: 21, Lines: 3, Fence: "~~~", Info: "python", Language: "python"}, blocks[1])
}

func TestCodeBlocks_Indented(t *testing.T) {
	t.Parallel()

	blocks := outline.CodeBlocks(colour(t, "para\n\n    package main\n"))
	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].Line)
	assert.Empty(t, blocks[0].Fence)
	assert.Equal(t, "go", blocks[0].Language)
}

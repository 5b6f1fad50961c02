package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Module{ID: 7, Name: "Markdown"})

	got, ok := reg.Get("markdown")
	assert.True(t, ok)
	assert.Equal(t, 7, got.ID)

	got, ok = reg.GetByID(7)
	assert.True(t, ok)
	assert.Equal(t, "Markdown", got.Name)

	_, ok = reg.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_Alias(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Module{ID: 1, Name: "markdown"})
	reg.RegisterAlias("MD", "Markdown")
	reg.RegisterAlias("dangling", "missing")

	got, ok := reg.Get("md")
	assert.True(t, ok)
	assert.Equal(t, "markdown", got.Name)

	_, ok = reg.Get("dangling")
	assert.False(t, ok)
}

func TestRegistry_LookupError(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Module{ID: 1, Name: "b"})
	reg.Register(Module{ID: 2, Name: "a"})

	_, err := reg.Lookup("zzz")
	require.ErrorIs(t, err, ErrUnknownLexer)
	assert.Contains(t, err.Error(), "a, b")

	assert.Equal(t, []string{"a", "b"}, reg.Names())
	modules := reg.Modules()
	require.Len(t, modules, 2)
	assert.Equal(t, "a", modules[0].Name)
}

func TestModule_StyleNames(t *testing.T) {
	mod := Module{StyleNames: []string{"default", "keyword"}}

	assert.Equal(t, "keyword", mod.StyleName(1))
	assert.Equal(t, "style9", mod.StyleName(9))

	style, ok := mod.ParseStyle("keyword")
	assert.True(t, ok)
	assert.Equal(t, Style(1), style)

	_, ok = mod.ParseStyle("missing")
	assert.False(t, ok)
	assert.False(t, mod.CanFold())
}

func TestFoldLevelHelpers(t *testing.T) {
	level := FoldLevelBase + 2 | FoldLevelHeaderFlag | FoldLevelWhiteFlag

	assert.Equal(t, FoldLevelBase+2, FoldDepth(level))
	assert.True(t, IsFoldHeader(level))
	assert.True(t, IsFoldWhite(level))
	assert.False(t, IsFoldHeader(FoldLevelBase))
}

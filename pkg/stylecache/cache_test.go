package stylecache_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
	"github.com/yaklabco/mdhl/pkg/lexer/searchresult"
	"github.com/yaklabco/mdhl/pkg/stylecache"
)

const doc = "# Title\n\nSome *text* here.\n\n```\ncode\n```\n"

func styled(t *testing.T, content string) *highlight.Document {
	t.Helper()

	d := highlight.New([]byte(content), markdown.Module)
	require.NoError(t, d.ColouriseAll(context.Background()))
	return d
}

func TestCache_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache, err := stylecache.Open(t.TempDir())
	require.NoError(t, err)

	_, ok, err := cache.Get("doc.md", "markdown")
	require.NoError(t, err)
	assert.False(t, ok)

	entry := stylecache.Snapshot("doc.md", styled(t, doc), sha256.Sum256([]byte(doc)))
	require.NoError(t, cache.Put(ctx, entry))

	got, ok, err := cache.Get("doc.md", "markdown")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stylecache.SchemaVersion, got.Schema)
	assert.Equal(t, entry.Styles, got.Styles)
	assert.Equal(t, doc, string(got.Content))

	_, ok, err = cache.Get("doc.md", "searchresult")
	require.NoError(t, err)
	assert.False(t, ok, "entries are per lexer")

	require.NoError(t, cache.Clear())
	_, ok, err = cache.Get("doc.md", "markdown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_SchemaMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := stylecache.Open(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Put(context.Background(), &stylecache.Entry{Path: "a.md", Lexer: "markdown"}))

	matches, err := filepath.Glob(filepath.Join(dir, "styles", "*.mp"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	stale, err := msgpack.Marshal(&stylecache.Entry{Schema: stylecache.SchemaVersion + 1, Path: "a.md"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(matches[0], stale, 0o600))

	_, _, err = cache.Get("a.md", "markdown")
	require.ErrorIs(t, err, stylecache.ErrSchemaMismatch)
}

func TestCache_Nil(t *testing.T) {
	t.Parallel()

	var cache *stylecache.Cache
	_, ok, err := cache.Get("a.md", "markdown")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, cache.Put(context.Background(), &stylecache.Entry{}))
	require.NoError(t, cache.Clear())
	assert.Empty(t, cache.Dir())
}

func TestApply(t *testing.T) {
	t.Parallel()

	entry := stylecache.Snapshot("doc.md", styled(t, doc), [32]byte{})

	t.Run("unchanged document is fully restored", func(t *testing.T) {
		t.Parallel()

		d := highlight.New([]byte(doc), markdown.Module)
		assert.Equal(t, len(doc), stylecache.Apply(entry, d))
		assert.Equal(t, styled(t, doc).Buffer().Styles(), d.Buffer().Styles())
	})

	t.Run("edit resumes at the changed line", func(t *testing.T) {
		t.Parallel()

		edited := strings.Replace(doc, "Some", "More", 1)
		d := highlight.New([]byte(edited), markdown.Module)
		assert.Equal(t, strings.Index(doc, "\n\nSome")+1, stylecache.Apply(entry, d))

		require.NoError(t, d.ColouriseAll(context.Background()))
		assert.Equal(t, styled(t, edited).Buffer().Styles(), d.Buffer().Styles())
	})

	t.Run("truncated document is restyled", func(t *testing.T) {
		t.Parallel()

		underlined := stylecache.Snapshot("t.md", styled(t, "Title\n==="), [32]byte{})
		d := highlight.New([]byte("Title\n"), markdown.Module)
		assert.Less(t, stylecache.Apply(underlined, d), d.Len())

		require.NoError(t, d.ColouriseAll(context.Background()))
		assert.Equal(t, styled(t, "Title\n").Buffer().Styles(), d.Buffer().Styles())
	})

	t.Run("other lexer is ignored", func(t *testing.T) {
		t.Parallel()

		d := highlight.New([]byte(doc), searchresult.Module)
		assert.Zero(t, stylecache.Apply(entry, d))
	})
}

func TestApply_RestoresFoldLevels(t *testing.T) {
	t.Parallel()

	content := "Search \"x\" (1 hit in 1 file)\n  a.md (1 hit)\n\tLine 1: x\n"
	d := highlight.New([]byte(content), searchresult.Module)
	require.NoError(t, d.ColouriseAll(context.Background()))
	entry := stylecache.Snapshot("r.search", d, [32]byte{})

	restored := highlight.New([]byte(content), searchresult.Module)
	assert.Equal(t, len(content), stylecache.Apply(entry, restored))
	assert.Equal(t, d.Levels(), restored.Levels())
}

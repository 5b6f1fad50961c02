// Package stylecache persists computed styles between runs so an unchanged
// or lightly edited document only restyles from its first changed line.
package stylecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/mdhl/pkg/fsutil"
	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer"
)

// SchemaVersion is bumped whenever Entry changes shape or a scanner changes
// its output for the same input.
const SchemaVersion uint16 = 1

// AppName names the directory under the user cache root.
const AppName = "mdhl"

// ErrSchemaMismatch is returned for entries written by another schema.
var ErrSchemaMismatch = errors.New("style cache schema mismatch")

// Entry is the on-disk record for one document.
type Entry struct {
	Schema  uint16 `msgpack:"schema"`
	Path    string `msgpack:"path"`
	Lexer   string `msgpack:"lexer"`
	Hash    []byte `msgpack:"hash"`
	Content []byte `msgpack:"content"`
	Styles  []byte `msgpack:"styles"`
	Levels  []int  `msgpack:"levels"`
}

// Cache stores entries as msgpack files in a directory. A nil *Cache is a
// valid cache that never hits.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/mdhl, falling back to the user cache
// directory.
func DefaultDir() (string, error) {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, AppName), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Open prepares a cache rooted at dir. An empty dir selects DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(path, lexerName string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	key := sha256.Sum256([]byte(lexerName + "\x00" + abs))
	return filepath.Join(c.dir, "styles", hex.EncodeToString(key[:])+".mp")
}

// Get loads the entry for path coloured by lexerName.
func (c *Cache) Get(path, lexerName string) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(path, lexerName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if entry.Schema != SchemaVersion {
		return nil, false, fmt.Errorf("%w: have %d, want %d", ErrSchemaMismatch, entry.Schema, SchemaVersion)
	}
	return &entry, true, nil
}

// Put writes entry, replacing any previous one for the same path and lexer.
func (c *Cache) Put(ctx context.Context, entry *Entry) error {
	if c == nil || entry == nil {
		return nil
	}
	entry.Schema = SchemaVersion

	data, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.pathFor(entry.Path, entry.Lexer)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	return fsutil.WriteAtomic(ctx, target, data, 0o600)
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "styles")); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Snapshot captures the styled state of doc for path.
func Snapshot(path string, doc *highlight.Document, hash [32]byte) *Entry {
	styles := doc.Buffer().Styles()[:doc.EndStyled()]
	raw := make([]byte, len(styles))
	for i, style := range styles {
		raw[i] = byte(style)
	}

	return &Entry{
		Path:    path,
		Lexer:   doc.Module().Name,
		Hash:    hash[:],
		Content: append([]byte(nil), doc.Content()...),
		Styles:  raw,
		Levels:  doc.Levels(),
	}
}

// Apply restores what entry still knows about doc and returns the offset
// styling will resume from.
func Apply(entry *Entry, doc *highlight.Document) int {
	if entry == nil || entry.Lexer != doc.Module().Name {
		return 0
	}

	styles := make([]lexer.Style, len(entry.Styles))
	for i, raw := range entry.Styles {
		styles[i] = lexer.Style(raw)
	}

	kept := doc.Restore(entry.Content, styles)
	doc.RestoreLevels(entry.Levels, kept)
	return kept
}

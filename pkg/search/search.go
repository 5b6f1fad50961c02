// Package search runs a find-in-files over a set of paths and lays the hits
// out as a results document for the searchresult scanner.
package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strconv"

	"github.com/go-enry/go-enry/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdhl/internal/logging"
	"github.com/yaklabco/mdhl/pkg/fsutil"
	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer/searchresult"
	"github.com/yaklabco/mdhl/pkg/textbuf"
)

// ErrEmptyPattern is returned when no pattern is given.
var ErrEmptyPattern = errors.New("empty search pattern")

// Options controls matching.
type Options struct {
	// Pattern is the text or expression to find.
	Pattern string

	// Regexp treats Pattern as a regular expression.
	Regexp bool

	// IgnoreCase matches case-insensitively.
	IgnoreCase bool

	// Jobs bounds concurrent file reads. 0 or negative means runtime.NumCPU().
	Jobs int
}

// Hit is one matching line.
type Hit struct {
	// Line is the 1-based line number.
	Line int `json:"line" yaml:"line"`

	// Text is the line without its terminator.
	Text string `json:"text" yaml:"text"`

	// Start and End are the byte columns of the first match in Text.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// FileHits collects the hits of one file.
type FileHits struct {
	Path string `json:"path" yaml:"path"`
	Hits []Hit  `json:"hits" yaml:"hits"`
}

// Result is a completed search.
type Result struct {
	Pattern  string     `json:"pattern" yaml:"pattern"`
	Searched int        `json:"searched" yaml:"searched"`
	Files    []FileHits `json:"files" yaml:"files"`
}

// HitCount returns the number of matching lines across all files.
func (r *Result) HitCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Hits)
	}
	return n
}

func compile(opts Options) (*regexp.Regexp, error) {
	if opts.Pattern == "" {
		return nil, ErrEmptyPattern
	}
	expr := opts.Pattern
	if !opts.Regexp {
		expr = regexp.QuoteMeta(expr)
	}
	if opts.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	return re, nil
}

// Files searches files concurrently. Unreadable and binary files are
// skipped; files keep their input order in the result.
func Files(ctx context.Context, files []string, opts Options) (*Result, error) {
	re, err := compile(opts)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	logger := logging.FromContext(ctx)
	found := make([]FileHits, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			content, _, readErr := fsutil.ReadFile(gctx, path)
			if readErr != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("skipping unreadable file", logging.FieldPath, path, logging.FieldError, readErr)
				return nil
			}
			if enry.IsBinary(content) {
				return nil
			}
			found[i] = FileHits{Path: path, Hits: Content(content, re)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	result := &Result{Pattern: opts.Pattern, Searched: len(files)}
	for _, f := range found {
		if len(f.Hits) > 0 {
			result.Files = append(result.Files, f)
		}
	}
	return result, nil
}

// Content returns the lines of content matching re.
func Content(content []byte, re *regexp.Regexp) []Hit {
	var hits []Hit
	for i, info := range textbuf.BuildLines(content) {
		text := content[info.StartOffset:info.NewlineStart]
		loc := re.FindIndex(text)
		if loc == nil || loc[0] == loc[1] {
			continue
		}
		hits = append(hits, Hit{Line: i + 1, Text: string(text), Start: loc[0], End: loc[1]})
	}
	return hits
}

func resultPrefix(line int) string {
	return "\tLine " + strconv.Itoa(line) + ": "
}

// Document lays the result out as a searchresult document and returns the
// per-line markings of the matched ranges.
func (r *Result) Document() ([]byte, []searchresult.Marking) {
	var buf bytes.Buffer
	var marks []searchresult.Marking

	hits := r.HitCount()
	fmt.Fprintf(&buf, "Search %q (%d %s in %d %s of %d searched)\n",
		r.Pattern, hits, plural(hits, "hit", "hits"),
		len(r.Files), plural(len(r.Files), "file", "files"), r.Searched)
	marks = append(marks, searchresult.Marking{})

	for _, f := range r.Files {
		fmt.Fprintf(&buf, "  %s (%d %s)\n", f.Path, len(f.Hits), plural(len(f.Hits), "hit", "hits"))
		marks = append(marks, searchresult.Marking{})

		for _, hit := range f.Hits {
			prefix := resultPrefix(hit.Line)
			buf.WriteString(prefix)
			buf.WriteString(hit.Text)
			buf.WriteByte('\n')
			marks = append(marks, searchresult.Marking{
				Start: len(prefix) + hit.Start,
				End:   len(prefix) + hit.End,
			})
		}
	}

	return buf.Bytes(), marks
}

// Highlight builds and colours the results document.
func (r *Result) Highlight(ctx context.Context) (*highlight.Document, error) {
	content, marks := r.Document()

	doc := highlight.New(content, searchresult.Module)
	doc.SetProperty(searchresult.MarkingsProperty, marks)
	if err := doc.ColouriseAll(ctx); err != nil {
		return nil, fmt.Errorf("colourise results: %w", err)
	}
	return doc, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

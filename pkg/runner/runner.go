package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mdhl/internal/logging"
	"github.com/yaklabco/mdhl/pkg/fsutil"
	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/langdetect"
	"github.com/yaklabco/mdhl/pkg/lexer"
	_ "github.com/yaklabco/mdhl/pkg/lexer/builtin" // registers the built-in scanners
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
	"github.com/yaklabco/mdhl/pkg/outline"
	"github.com/yaklabco/mdhl/pkg/stylecache"
)

// Runner highlights files with scanners from a registry, reusing cached
// styles when a cache is configured.
type Runner struct {
	// Registry resolves scanners. Nil selects lexer.DefaultRegistry.
	Registry *lexer.Registry

	// Cache persists styles between runs. Nil disables caching.
	Cache *stylecache.Cache
}

// New creates a Runner over the default registry.
func New(cache *stylecache.Cache) *Runner {
	return &Runner{Registry: lexer.DefaultRegistry, Cache: cache}
}

func (r *Runner) registry() *lexer.Registry {
	if r.Registry == nil {
		return lexer.DefaultRegistry
	}
	return r.Registry
}

// Run discovers files under opts.Paths and highlights them concurrently.
// Outcomes are returned in discovery order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("highlighting",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome, err := r.Highlight(ctx, path, opts)
		if err != nil {
			outcome = FileOutcome{Path: path, Error: err}
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ResolveLexer picks the scanner for path: the forced name when given,
// otherwise detection, otherwise FallbackLexer.
func (r *Runner) ResolveLexer(path string, content []byte, forced string) (lexer.Module, error) {
	name := forced
	if name == "" {
		name = langdetect.LexerFor(r.registry(), path, content)
	}
	if name == "" {
		name = FallbackLexer
	}
	module, err := r.registry().Lookup(name)
	if err != nil {
		return lexer.Module{}, fmt.Errorf("%s: %w", path, err)
	}
	return module, nil
}

// Highlight reads and colours one file.
func (r *Runner) Highlight(ctx context.Context, path string, opts Options) (FileOutcome, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{}, err
	}

	module, err := r.ResolveLexer(path, content, opts.Lexer)
	if err != nil {
		return FileOutcome{}, err
	}

	ctx, logger := logging.ForFile(ctx, path, module.Name)
	doc := highlight.New(content, module)

	resumed := 0
	if r.Cache != nil {
		entry, ok, getErr := r.Cache.Get(path, module.Name)
		switch {
		case getErr != nil:
			logger.Debug("ignoring style cache entry", logging.FieldError, getErr)
		case ok:
			resumed = stylecache.Apply(entry, doc)
		}
	}
	hit := len(content) > 0 && resumed == len(content)

	if err := doc.ColouriseAll(ctx); err != nil {
		return FileOutcome{}, fmt.Errorf("colourise %s: %w", path, err)
	}

	if r.Cache != nil && !hit {
		if putErr := r.Cache.Put(ctx, stylecache.Snapshot(path, doc, info.Hash)); putErr != nil {
			logger.Warn("could not update style cache", logging.FieldError, putErr)
		}
	}

	outcome := FileOutcome{
		Path:      path,
		Lexer:     module.Name,
		Bytes:     doc.Len(),
		Lines:     doc.Buffer().LineCount(),
		Spans:     doc.Spans(),
		Counts:    doc.Counts(),
		ResumedAt: resumed,
		CacheHit:  hit,
		module:    module,
	}
	if module.Name == markdown.Module.Name {
		outcome.CodeBlocks = outline.CodeBlocks(doc)
	}
	if opts.KeepDocuments {
		outcome.Document = doc
	}

	logger.Debug("highlighted",
		logging.FieldSpans, len(outcome.Spans),
		logging.FieldResumeAt, resumed,
		logging.FieldCacheHit, hit,
	)

	return outcome, nil
}

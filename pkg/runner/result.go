package runner

import (
	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/outline"
)

// FileOutcome is the highlighting result of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Lexer names the scanner that coloured the file.
	Lexer string

	// Bytes and Lines measure the file content.
	Bytes int
	Lines int

	// Spans is the merged style stream covering the whole file.
	Spans []highlight.Span

	// Counts maps style names to the number of bytes carrying them.
	Counts map[string]int

	// ResumedAt is the offset styling resumed from after restoring cached
	// styles; 0 when nothing was reused.
	ResumedAt int

	// CacheHit is set when cached styles covered the whole file.
	CacheHit bool

	// CodeBlocks lists the multi-line code blocks of Markdown files.
	CodeBlocks []outline.CodeBlock

	// Document is the styled document, kept only with Options.KeepDocuments.
	Document *highlight.Document

	// Error is set if the file could not be processed.
	Error error

	module lexer.Module
}

// StyleName names a style of the scanner that coloured the file.
func (o FileOutcome) StyleName(style lexer.Style) string {
	return o.module.StyleName(style)
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully highlighted.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesCached is the number of files that reused cached styles.
	FilesCached int

	// Bytes and Spans total the processed content and the spans produced.
	Bytes int
	Spans int

	// BytesByStyle maps style names to byte counts across all files.
	BytesByStyle map[string]int

	// FilesByLexer maps scanner names to the files they coloured.
	FilesByLexer map[string]int

	// CodeBlocksByLanguage maps fence languages to block counts.
	CodeBlocksByLanguage map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be highlighted.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		BytesByStyle:         make(map[string]int),
		FilesByLexer:         make(map[string]int),
		CodeBlocksByLanguage: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.ResumedAt > 0 {
		r.Stats.FilesCached++
	}

	r.Stats.Bytes += outcome.Bytes
	r.Stats.Spans += len(outcome.Spans)
	r.Stats.FilesByLexer[outcome.Lexer]++

	for name, n := range outcome.Counts {
		r.Stats.BytesByStyle[name] += n
	}
	for _, block := range outcome.CodeBlocks {
		r.Stats.CodeBlocksByLanguage[block.Language]++
	}
}

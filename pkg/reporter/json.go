package reporter

import (
	"bufio"
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdhl/pkg/outline"
	"github.com/yaklabco/mdhl/pkg/runner"
)

// JSONReporter writes results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// YAMLReporter writes the same structure as JSONReporter as YAML.
type YAMLReporter struct {
	opts Options
}

// NewYAMLReporter creates a new YAML reporter.
func NewYAMLReporter(opts Options) *YAMLReporter {
	return &YAMLReporter{opts: opts}
}

// Output is the structured output format for JSON and YAML.
type Output struct {
	Files   []FileOutput   `json:"files" yaml:"files"`
	Summary *SummaryOutput `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// FileOutput is the structured form of one file.
type FileOutput struct {
	Path       string              `json:"path" yaml:"path"`
	Lexer      string              `json:"lexer,omitempty" yaml:"lexer,omitempty"`
	Bytes      int                 `json:"bytes" yaml:"bytes"`
	Lines      int                 `json:"lines" yaml:"lines"`
	ResumedAt  int                 `json:"resumedAt,omitempty" yaml:"resumedAt,omitempty"`
	CacheHit   bool                `json:"cacheHit,omitempty" yaml:"cacheHit,omitempty"`
	Spans      []SpanOutput        `json:"spans,omitempty" yaml:"spans,omitempty"`
	Counts     map[string]int      `json:"counts,omitempty" yaml:"counts,omitempty"`
	CodeBlocks []outline.CodeBlock `json:"codeBlocks,omitempty" yaml:"codeBlocks,omitempty"`
	Error      string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// SpanOutput is the structured form of one span. Offsets are byte indexes.
type SpanOutput struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Style string `json:"style" yaml:"style"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
}

// SummaryOutput contains aggregate statistics.
type SummaryOutput struct {
	FilesProcessed       int            `json:"filesProcessed" yaml:"filesProcessed"`
	FilesErrored         int            `json:"filesErrored" yaml:"filesErrored"`
	FilesCached          int            `json:"filesCached" yaml:"filesCached"`
	Bytes                int            `json:"bytes" yaml:"bytes"`
	Spans                int            `json:"spans" yaml:"spans"`
	BytesByStyle         map[string]int `json:"bytesByStyle,omitempty" yaml:"bytesByStyle,omitempty"`
	FilesByLexer         map[string]int `json:"filesByLexer,omitempty" yaml:"filesByLexer,omitempty"`
	CodeBlocksByLanguage map[string]int `json:"codeBlocksByLanguage,omitempty" yaml:"codeBlocksByLanguage,omitempty"`
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	output := buildOutput(result, r.opts)

	bufW := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer bufW.Flush()

	encoder := json.NewEncoder(bufW)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, err
	}

	return len(output.Files), bufW.Flush()
}

// Report implements Reporter.
func (r *YAMLReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	output := buildOutput(result, r.opts)

	bufW := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer bufW.Flush()

	encoder := yaml.NewEncoder(bufW)
	encoder.SetIndent(2)
	if err := encoder.Encode(output); err != nil {
		return 0, err
	}
	if err := encoder.Close(); err != nil {
		return 0, err
	}

	return len(output.Files), bufW.Flush()
}

func buildOutput(result *runner.Result, opts Options) Output {
	output := Output{Files: make([]FileOutput, 0, len(result.Files))}

	for _, outcome := range result.Files {
		file := FileOutput{Path: relPath(outcome.Path, opts.WorkingDir)}
		if outcome.Error != nil {
			file.Error = outcome.Error.Error()
			output.Files = append(output.Files, file)
			continue
		}

		file.Lexer = outcome.Lexer
		file.Bytes = outcome.Bytes
		file.Lines = outcome.Lines
		file.ResumedAt = outcome.ResumedAt
		file.CacheHit = outcome.CacheHit
		file.Counts = outcome.Counts
		file.CodeBlocks = outcome.CodeBlocks

		var content []byte
		if outcome.Document != nil {
			content = outcome.Document.Content()
		}
		file.Spans = make([]SpanOutput, 0, len(outcome.Spans))
		for _, span := range outcome.Spans {
			item := SpanOutput{
				Start: span.Start,
				End:   span.End,
				Style: outcome.StyleName(span.Style),
			}
			if content != nil {
				item.Text = string(span.Text(content))
			}
			file.Spans = append(file.Spans, item)
		}
		output.Files = append(output.Files, file)
	}

	if opts.ShowSummary {
		stats := result.Stats
		output.Summary = &SummaryOutput{
			FilesProcessed:       stats.FilesProcessed,
			FilesErrored:         stats.FilesErrored,
			FilesCached:          stats.FilesCached,
			Bytes:                stats.Bytes,
			Spans:                stats.Spans,
			BytesByStyle:         stats.BytesByStyle,
			FilesByLexer:         stats.FilesByLexer,
			CodeBlocksByLanguage: stats.CodeBlocksByLanguage,
		}
	}

	return output
}

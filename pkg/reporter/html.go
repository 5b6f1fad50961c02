package reporter

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/yaklabco/mdhl/pkg/render"
	"github.com/yaklabco/mdhl/pkg/runner"
)

// HTMLReporter writes files as HTML through chroma. A single file is
// written as configured; several files are combined into one page with a
// section per file.
type HTMLReporter struct {
	opts Options
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{opts: opts}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	bufW := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer bufW.Flush()

	var docs []runner.FileOutcome
	for _, outcome := range result.Files {
		path := relPath(outcome.Path, r.opts.WorkingDir)
		if outcome.Error != nil {
			if _, err := fmt.Fprintf(r.opts.ErrorWriter, "%s: %v\n", path, outcome.Error); err != nil {
				return 0, err
			}
			continue
		}
		if outcome.Document == nil {
			return 0, fmt.Errorf("%s: document not kept", path)
		}
		docs = append(docs, outcome)
	}

	if len(docs) == 1 {
		if err := render.HTML(bufW, docs[0].Document, r.opts.HTML); err != nil {
			return 0, err
		}
		return 1, bufW.Flush()
	}

	count, err := r.writePage(ctx, bufW, docs)
	if err != nil {
		return count, err
	}
	return count, bufW.Flush()
}

func (r *HTMLReporter) writePage(ctx context.Context, w io.Writer, docs []runner.FileOutcome) (int, error) {
	cfg := r.opts.HTML
	cfg.Standalone = false
	cfg.Classes = true

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style type=\"text/css\">\n"); err != nil {
		return 0, err
	}
	if err := render.CSS(w, cfg); err != nil {
		return 0, err
	}
	if _, err := io.WriteString(w, "</style>\n</head>\n<body>\n"); err != nil {
		return 0, err
	}

	count := 0
	for _, outcome := range docs {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		path := html.EscapeString(relPath(outcome.Path, r.opts.WorkingDir))
		if _, err := fmt.Fprintf(w, "<section>\n<h2>%s</h2>\n", path); err != nil {
			return count, err
		}
		if err := render.HTML(w, outcome.Document, cfg); err != nil {
			return count, fmt.Errorf("%s: %w", path, err)
		}
		if _, err := io.WriteString(w, "</section>\n"); err != nil {
			return count, err
		}
		count++
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return count, err
}

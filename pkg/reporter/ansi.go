package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/pkg/render"
	"github.com/yaklabco/mdhl/pkg/runner"
)

// ANSIReporter prints every file highlighted with the configured theme.
type ANSIReporter struct {
	opts    Options
	styles  *pretty.Styles
	palette *pretty.Palette
}

// NewANSIReporter creates a new highlighted terminal reporter.
func NewANSIReporter(opts Options) *ANSIReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &ANSIReporter{
		opts:    opts,
		styles:  pretty.NewStyles(colorEnabled),
		palette: pretty.NewPalette(opts.Writer, opts.Theme, colorEnabled),
	}
}

// Report implements Reporter. File headers are printed only when more than
// one file is reported.
func (r *ANSIReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	bufW := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer bufW.Flush()

	headers := len(result.Files) > 1
	termOpts := render.TerminalOptions{Wrap: r.opts.Wrap, LineNumbers: r.opts.LineNumbers}

	count := 0
	for i, outcome := range result.Files {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		path := relPath(outcome.Path, r.opts.WorkingDir)
		if outcome.Error != nil {
			if _, err := io.WriteString(r.opts.ErrorWriter, r.styles.FormatFileError(path, outcome.Error)); err != nil {
				return count, err
			}
			continue
		}
		if outcome.Document == nil {
			return count, fmt.Errorf("%s: document not kept", path)
		}

		if headers {
			if i > 0 {
				if _, err := io.WriteString(bufW, "\n"); err != nil {
					return count, err
				}
			}
			if _, err := fmt.Fprintln(bufW, r.styles.FormatFileHeader(path, outcome.Lexer)); err != nil {
				return count, err
			}
		}
		if err := render.Terminal(bufW, outcome.Document, r.palette, termOpts); err != nil {
			return count, fmt.Errorf("%s: %w", path, err)
		}
		count++
	}

	return count, bufW.Flush()
}

package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/pkg/runner"
)

// maxExcerpt bounds the quoted span text in text output.
const maxExcerpt = 40

// TextReporter lists the styled spans of every file, one per line.
// Spans in the default style are omitted.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	bufW := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer bufW.Flush()

	count := 0
	for _, outcome := range result.Files {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := r.writeFile(bufW, outcome); err != nil {
			return count, err
		}
		count++
	}

	if r.opts.ShowSummary {
		if _, err := io.WriteString(bufW, r.styles.FormatSummaryOneLine(result.Stats)); err != nil {
			return count, err
		}
	}

	return count, bufW.Flush()
}

func (r *TextReporter) writeFile(w io.Writer, outcome runner.FileOutcome) error {
	path := relPath(outcome.Path, r.opts.WorkingDir)
	if outcome.Error != nil {
		_, err := io.WriteString(w, r.styles.FormatFileError(path, outcome.Error))
		return err
	}

	if _, err := fmt.Fprintln(w, r.styles.FormatFileHeader(path, outcome.Lexer)); err != nil {
		return err
	}

	var content []byte
	if outcome.Document != nil {
		content = outcome.Document.Content()
	}
	for _, span := range outcome.Spans {
		if span.Style == 0 {
			continue
		}
		position := fmt.Sprintf("@%d-%d", span.Start, span.End)
		if outcome.Document != nil {
			line, col := outcome.Document.Buffer().LineAt(span.Start)
			position = fmt.Sprintf("%d:%d", line, col)
		}
		text := ""
		if content != nil {
			text = excerpt(span.Text(content))
		}
		_, err := fmt.Fprintf(w, "  %s  %s  %s\n",
			r.styles.Location.Render(fmt.Sprintf("%-9s", position)),
			r.styles.Lexer.Render(fmt.Sprintf("%-13s", outcome.StyleName(span.Style))),
			r.styles.Message.Render(text),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// excerpt quotes text, cutting it at maxExcerpt runes.
func excerpt(text []byte) string {
	if utf8.RuneCount(text) <= maxExcerpt {
		return strconv.Quote(string(text))
	}
	cut := 0
	for range maxExcerpt {
		_, size := utf8.DecodeRune(text[cut:])
		cut += size
	}
	return strconv.Quote(string(text[:cut])) + "..."
}

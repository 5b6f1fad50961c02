package reporter

import (
	"bufio"
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// SummaryReporter writes a per-file table, the share of bytes per style and
// the aggregate statistics, without listing spans.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	palette   *pretty.Palette
	formatter *pretty.TableFormatter
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &SummaryReporter{
		opts:      opts,
		styles:    styles,
		palette:   pretty.NewPalette(opts.Writer, opts.Theme, colorEnabled),
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	bufW := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer bufW.Flush()

	sections := []string{
		r.formatter.FormatFileTable(result, r.opts.WorkingDir),
		r.formatter.FormatStyleTable(result.Stats.BytesByStyle, r.palette),
		r.styles.FormatSummary(result.Stats),
	}
	for i, section := range sections {
		if section == "" {
			continue
		}
		if i == 1 && sections[0] != "" {
			if _, err := io.WriteString(bufW, "\n"); err != nil {
				return 0, err
			}
		}
		if _, err := io.WriteString(bufW, section); err != nil {
			return 0, err
		}
	}

	return len(result.Files), bufW.Flush()
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhl/pkg/runner"
)

// Table formatting constants.
const (
	cachedSymbol     = "*"
	failedSymbol     = "!"
	minFileWidth     = 20
	minBarWidth      = 10
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	barGlyph         = "#"
)

// TableFormatter formats run results and style statistics as tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type fileRow struct {
	file, lexer, lines, spans, size, mark string
	failed                                bool
}

// FormatFileTable lists every file of a run with its scanner and volume.
func (t *TableFormatter) FormatFileTable(result *runner.Result, workDir string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]fileRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		row := fileRow{file: displayPath(outcome.Path, workDir)}
		if outcome.Error != nil {
			row.failed = true
			row.mark = failedSymbol
			row.lexer = "-"
		} else {
			row.lexer = outcome.Lexer
			row.lines = strconv.Itoa(outcome.Lines)
			row.spans = strconv.Itoa(len(outcome.Spans))
			row.size = FormatBytes(outcome.Bytes)
			if outcome.ResumedAt > 0 {
				row.mark = cachedSymbol
			}
		}
		rows = append(rows, row)
	}

	headers := fileRow{file: "FILE", lexer: "LEXER", lines: "LINES", spans: "SPANS", size: "SIZE"}
	widthOf := func(get func(fileRow) string) int {
		w := len(get(headers))
		for _, row := range rows {
			w = max(w, len(get(row)))
		}
		return w
	}
	lexerW := widthOf(func(r fileRow) string { return r.lexer })
	linesW := widthOf(func(r fileRow) string { return r.lines })
	spansW := widthOf(func(r fileRow) string { return r.spans })
	sizeW := widthOf(func(r fileRow) string { return r.size })

	fixed := lexerW + linesW + spansW + sizeW + 2*5 + 2
	fileW := max(minFileWidth, min(widthOf(func(r fileRow) string { return r.file }), t.termWidth-fixed))
	total := fileW + fixed

	format := func(row fileRow) string {
		return fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s  %1s",
			fileW, truncateFilePath(row.file, fileW),
			lexerW, row.lexer,
			linesW, row.lines,
			spansW, row.spans,
			sizeW, row.size,
			row.mark,
		)
	}

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(format(headers)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	for _, row := range rows {
		line := format(row)
		if row.failed {
			line = t.styles.Failure.Render(line)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = reused cached styles | %s = failed", cachedSymbol, failedSymbol),
	))
	builder.WriteString("\n")

	return builder.String()
}

// FormatStyleTable shows how many bytes each style covers, with a bar
// proportional to its share. Style names are drawn in their own theme style
// when palette is not nil.
func (t *TableFormatter) FormatStyleTable(counts map[string]int, palette *Palette) string {
	total := 0
	nameW := len("STYLE")
	bytesW := len("BYTES")
	for name, n := range counts {
		total += n
		nameW = max(nameW, len(name))
		bytesW = max(bytesW, len(strconv.Itoa(n)))
	}
	if total == 0 {
		return ""
	}

	const shareW = 6
	barW := max(minBarWidth, t.termWidth-nameW-bytesW-shareW-2*3-1)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(
		fmt.Sprintf(" %-*s  %*s  %*s  %s", nameW, "STYLE", bytesW, "BYTES", shareW, "SHARE", "")))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, nameW+bytesW+shareW+barW+2*3+1)))
	builder.WriteString("\n")

	for _, name := range countsDesc(counts) {
		n := counts[name]
		share := float64(n) / float64(total)
		label := fmt.Sprintf("%-*s", nameW, name)
		if palette != nil {
			label = palette.Render(name, name) + strings.Repeat(" ", nameW-len(name))
		}
		bar := strings.Repeat(barGlyph, max(1, int(share*float64(barW)+0.5)))

		builder.WriteString(fmt.Sprintf(" %s  %*d  %5.1f%%  %s\n",
			label, bytesW, n, share*100, t.styles.TableBar.Render(bar)))
	}

	return builder.String()
}

func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	if rel, err := filepath.Rel(workDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

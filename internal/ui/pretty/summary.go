package pretty

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhl/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return strconv.Itoa(n) + " B"
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// countsDesc orders map keys by descending count, then by name.
func countsDesc(counts map[string]int) []string {
	return slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files highlighted (2 markdown, 1 searchresult), 412 spans, 9.8 KiB".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render("No files highlighted") + "\n"
	}

	var lexers []string
	for _, name := range countsDesc(stats.FilesByLexer) {
		lexers = append(lexers, s.Lexer.Render(fmt.Sprintf("%d %s", stats.FilesByLexer[name], name)))
	}

	head := fmt.Sprintf("%d %s highlighted", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))
	if len(lexers) > 0 {
		head += " (" + strings.Join(lexers, ", ") + ")"
	}

	parts := []string{
		s.Success.Render(head),
		fmt.Sprintf("%d spans", stats.Spans),
		FormatBytes(stats.Bytes),
	}
	if stats.FilesCached > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d from cache", stats.FilesCached)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files highlighted", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesCached > 0 {
		row("Reused cache", s.SummaryValue.Render(strconv.Itoa(stats.FilesCached)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Bytes", s.SummaryValue.Render(FormatBytes(stats.Bytes)))
	row("Spans", s.SummaryValue.Render(strconv.Itoa(stats.Spans)))

	if len(stats.FilesByLexer) > 0 {
		builder.WriteString("\n")
		for _, name := range countsDesc(stats.FilesByLexer) {
			row(name, s.Lexer.Render(strconv.Itoa(stats.FilesByLexer[name])))
		}
	}

	if len(stats.CodeBlocksByLanguage) > 0 {
		builder.WriteString("\n  Code blocks\n")
		for _, lang := range countsDesc(stats.CodeBlocksByLanguage) {
			row("  "+lang, s.SummaryValue.Render(strconv.Itoa(stats.CodeBlocksByLanguage[lang])))
		}
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Some files could not be highlighted"))
	} else {
		builder.WriteString(s.Success.Render("All files highlighted"))
	}
	builder.WriteString("\n")

	return builder.String()
}

package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/reporter"
	"github.com/yaklabco/mdhl/pkg/runner"
)

const guide = "# Guide\n\nSome **bold** text.\n\n```go\nfmt.Println()\n```\n"

// run highlights files written into a temporary directory.
func run(t *testing.T, files map[string]string) (*runner.Result, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		WorkingDir:    dir,
		Extensions:    []string{".md", ".search"},
		KeepDocuments: true,
	})
	require.NoError(t, err)
	return result, dir
}

func newReporter(t *testing.T, format config.OutputFormat, workDir string, out, errOut *bytes.Buffer) reporter.Reporter {
	t.Helper()

	opts := reporter.DefaultOptions()
	opts.Writer = out
	opts.ErrorWriter = errOut
	opts.Format = format
	opts.Color = config.ColorNever
	opts.WorkingDir = workDir
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, format := range config.Formats() {
		got, err := reporter.ParseFormat(strings.ToUpper(string(format)))
		require.NoError(t, err)
		assert.Equal(t, format, got)
	}

	got, err := reporter.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, config.FormatText, got)

	_, err = reporter.ParseFormat("sarif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid formats")
}

func TestNeedsDocuments(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.NeedsDocuments(config.FormatANSI))
	assert.True(t, reporter.NeedsDocuments(config.FormatHTML))
	assert.False(t, reporter.NeedsDocuments(config.FormatSummary))
}

func TestNew_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "sarif"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{"guide.md": guide})

	var out, errOut bytes.Buffer
	count, err := newReporter(t, config.FormatText, dir, &out, &errOut).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	text := out.String()
	assert.Contains(t, text, "guide.md (markdown)")
	assert.Contains(t, text, "header1")
	assert.Contains(t, text, "strong1")
	assert.Contains(t, text, "1:1")
	assert.Contains(t, text, "1 file highlighted (1 markdown)")
	assert.NotContains(t, text, "\x1b[")
}

func TestTextReporter_Error(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{Path: "gone.md", Error: os.ErrNotExist}}}
	result.Stats.FilesErrored = 1

	var out, errOut bytes.Buffer
	count, err := newReporter(t, config.FormatText, "", &out, &errOut).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, out.String(), "gone.md  error  file does not exist")
	assert.Contains(t, out.String(), "1 failed")
}

func TestReporter_NilResult(t *testing.T) {
	t.Parallel()

	for _, format := range config.Formats() {
		var out, errOut bytes.Buffer
		count, err := newReporter(t, format, "", &out, &errOut).Report(context.Background(), nil)
		require.NoError(t, err, format)
		assert.Zero(t, count, format)
		assert.Empty(t, out.String(), format)
	}
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{"guide.md": guide})

	var out, errOut bytes.Buffer
	count, err := newReporter(t, config.FormatJSON, dir, &out, &errOut).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var output reporter.Output
	require.NoError(t, json.Unmarshal(out.Bytes(), &output))
	require.Len(t, output.Files, 1)

	file := output.Files[0]
	assert.Equal(t, "guide.md", file.Path)
	assert.Equal(t, "markdown", file.Lexer)
	assert.Equal(t, len(guide), file.Bytes)
	require.NotEmpty(t, file.Spans)
	assert.Equal(t, 0, file.Spans[0].Start)
	assert.Equal(t, len(guide), file.Spans[len(file.Spans)-1].End)

	var joined strings.Builder
	for _, span := range file.Spans {
		joined.WriteString(span.Text)
	}
	assert.Equal(t, guide, joined.String())

	require.Len(t, file.CodeBlocks, 1)
	assert.Equal(t, "go", file.CodeBlocks[0].Language)

	require.NotNil(t, output.Summary)
	assert.Equal(t, 1, output.Summary.FilesProcessed)
	assert.Equal(t, 1, output.Summary.FilesByLexer["markdown"])
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{"guide.md": guide})

	var out bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &out
	opts.Format = config.FormatJSON
	opts.Compact = true
	opts.ShowSummary = false
	opts.WorkingDir = dir
	rep, err := reporter.New(opts)
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.NotContains(t, out.String(), `"summary"`)
}

func TestYAMLReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{
		"guide.md":    guide,
		"find.search": "Search \"x\" (1 hit in 1 file)\n  a.md (1 hit)\n\tLine 1: x\n",
	})

	var out, errOut bytes.Buffer
	count, err := newReporter(t, config.FormatYAML, dir, &out, &errOut).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.Output
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &output))
	require.Len(t, output.Files, 2)

	lexers := map[string]string{}
	for _, file := range output.Files {
		lexers[file.Path] = file.Lexer
	}
	assert.Equal(t, map[string]string{"find.search": "searchresult", "guide.md": "markdown"}, lexers)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{"guide.md": guide, "notes.md": "plain\n"})

	var out, errOut bytes.Buffer
	count, err := newReporter(t, config.FormatSummary, dir, &out, &errOut).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	text := out.String()
	assert.Contains(t, text, "FILE")
	assert.Contains(t, text, "notes.md")
	assert.Contains(t, text, "STYLE")
	assert.Contains(t, text, "code2")
	assert.Contains(t, text, "Files highlighted:")
	assert.Contains(t, text, "All files highlighted")
}

func TestANSIReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{"guide.md": guide})

	var out, errOut bytes.Buffer
	count, err := newReporter(t, config.FormatANSI, dir, &out, &errOut).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, guide, out.String())
}

func TestANSIReporter_MultipleFiles(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{"a.md": "alpha\n", "b.md": "beta\n"})

	var out, errOut bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &out
	opts.ErrorWriter = &errOut
	opts.Format = config.FormatANSI
	opts.Color = config.ColorNever
	opts.LineNumbers = true
	opts.WorkingDir = dir
	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Contains(t, out.String(), "a.md (markdown)")
	assert.Contains(t, out.String(), "b.md (markdown)")
	assert.Contains(t, out.String(), "alpha")
}

func TestANSIReporter_NeedsDocument(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{Path: "a.md", Lexer: "markdown"}}}

	var out, errOut bytes.Buffer
	_, err := newReporter(t, config.FormatANSI, "", &out, &errOut).Report(context.Background(), result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document not kept")
}

func TestHTMLReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{"guide.md": guide})

	var out, errOut bytes.Buffer
	count, err := newReporter(t, config.FormatHTML, dir, &out, &errOut).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, out.String(), "<pre")
	assert.Contains(t, out.String(), "Guide")
}

func TestHTMLReporter_Page(t *testing.T) {
	t.Parallel()

	result, dir := run(t, map[string]string{"a.md": "# A\n", "b.md": "# B\n"})

	var out, errOut bytes.Buffer
	count, err := newReporter(t, config.FormatHTML, dir, &out, &errOut).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	page := out.String()
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Equal(t, 2, strings.Count(page, "<section>"))
	assert.Contains(t, page, "<h2>a.md</h2>")
	assert.Contains(t, page, "mdhl-")
	assert.True(t, strings.HasSuffix(page, "</html>\n"))
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Format = config.FormatHTML
	cfg.Wrap = 72
	cfg.HTML.Style = "monokai"

	opts := reporter.OptionsFromConfig(cfg)
	assert.Equal(t, config.FormatHTML, opts.Format)
	assert.Equal(t, 72, opts.Wrap)
	assert.Equal(t, "monokai", opts.HTML.Style)
	assert.NotEmpty(t, opts.Theme)

	assert.Equal(t, config.FormatText, reporter.OptionsFromConfig(nil).Format)
}

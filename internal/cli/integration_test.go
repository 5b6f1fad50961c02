package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhl/internal/cli"
)

const guideMarkdown = "# Guide\n\nSome **bold** text.\n\n## Install\n\n```go\nfmt.Println()\n```\n"

// execute runs mdhl with args against an isolated config and returns the
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".mdhl.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("color: never\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_HighlightText(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "guide.md", guideMarkdown)

	output, err := execute(t, "highlight", mdFile)
	require.NoError(t, err)
	assert.Contains(t, output, "header1")
	assert.Contains(t, output, "header2")
	assert.Contains(t, output, "strong1")
	assert.Contains(t, output, "1 file highlighted")
}

func TestIntegration_HighlightJSON(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "guide.md", guideMarkdown)

	output, err := execute(t, "highlight", "--format", "json", "--no-summary", mdFile)
	require.NoError(t, err)

	var decoded struct {
		Files []struct {
			Lexer string `json:"lexer"`
			Bytes int    `json:"bytes"`
			Spans []struct {
				Style string `json:"style"`
			} `json:"spans"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "markdown", decoded.Files[0].Lexer)
	assert.Equal(t, len(guideMarkdown), decoded.Files[0].Bytes)
	assert.NotEmpty(t, decoded.Files[0].Spans)
}

func TestIntegration_HighlightInvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "highlight", "--format", "sarif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestIntegration_HighlightMissingFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "highlight", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}

func TestIntegration_HighlightUnknownLexer(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "guide.md", guideMarkdown)

	_, err := execute(t, "highlight", "--lexer", "cobol", mdFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown lexer")
}

func TestIntegration_Cat(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "guide.md", guideMarkdown)

	output, err := execute(t, "cat", mdFile)
	require.NoError(t, err)
	assert.Equal(t, guideMarkdown, output)
}

func TestIntegration_CatLineNumbers(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "notes.md", "alpha\nbeta\n")

	output, err := execute(t, "cat", "-n", mdFile)
	require.NoError(t, err)
	assert.Equal(t, "1  alpha\n2  beta\n", output)
}

func TestIntegration_CatChromaFormatter(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "guide.md", guideMarkdown)

	output, err := execute(t, "cat", "--formatter", "terminal256", mdFile)
	require.NoError(t, err)
	assert.Contains(t, output, "\x1b[")
	assert.Contains(t, output, "Guide")

	_, err = execute(t, "cat", "--formatter", "no-such-formatter", mdFile)
	require.Error(t, err)
}

func TestIntegration_Outline(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "guide.md", guideMarkdown)

	output, err := execute(t, "outline", mdFile)
	require.NoError(t, err)
	assert.Contains(t, output, "# Guide")
	assert.Contains(t, output, "## Install")
	assert.Contains(t, output, "go (3 lines)")
}

func TestIntegration_OutlineCompare(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "guide.md", guideMarkdown)

	_, err := execute(t, "outline", "--compare", mdFile)
	require.NoError(t, err)
}

func TestIntegration_OutlineJSON(t *testing.T) {
	t.Parallel()

	mdFile := writeFile(t, t.TempDir(), "guide.md", guideMarkdown)

	output, err := execute(t, "outline", "--format", "json", mdFile)
	require.NoError(t, err)

	var decoded []struct {
		Headings []struct {
			Level int    `json:"level"`
			Title string `json:"title"`
		} `json:"headings"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	require.Len(t, decoded, 1)
	require.Len(t, decoded[0].Headings, 2)
	assert.Equal(t, "Guide", decoded[0].Headings[0].Title)
	assert.Equal(t, 2, decoded[0].Headings[1].Level)
}

func TestIntegration_Search(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "install the tool\nnothing here\n")
	writeFile(t, dir, "b.md", "Install again\n")
	saved := filepath.Join(t.TempDir(), "hits.search")

	output, err := execute(t, "search", "-i", "install", "--save", saved, dir)
	require.NoError(t, err)
	assert.Contains(t, output, `Search "install"`)
	assert.Contains(t, output, "\tLine 1: install the tool")

	content, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Line 1: Install again")

	output, err = execute(t, "highlight", saved)
	require.NoError(t, err)
	assert.Contains(t, output, "searchresult")

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(saved, old, old))
	_, err = execute(t, "search", "-i", "install", "--save", saved, dir)
	require.NoError(t, err)
	info, err := os.Stat(saved)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "unchanged results should not be rewritten")
}

func TestIntegration_SearchNoMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "text\n")

	_, err := execute(t, "search", "absent", dir)
	require.ErrorIs(t, err, cli.ErrNoMatches)
	assert.Equal(t, cli.ExitNoMatches, cli.ExitCodeFromError(err))
}

func TestIntegration_Lexers(t *testing.T) {
	t.Parallel()

	output, err := execute(t, "lexers")
	require.NoError(t, err)
	assert.Contains(t, output, "markdown")
	assert.Contains(t, output, "searchresult")

	output, err = execute(t, "lexers", "markdown")
	require.NoError(t, err)
	assert.Contains(t, output, "header1")
	assert.Contains(t, output, "code-block")

	output, err = execute(t, "lexers", "--format", "json", "searchresult")
	require.NoError(t, err)
	assert.Contains(t, output, `"name": "searchresult"`)
	assert.Contains(t, output, `"word-to-search"`)

	_, err = execute(t, "lexers", "cobol")
	require.Error(t, err)
}

func TestIntegration_CacheDir(t *testing.T) {
	t.Parallel()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	cfgFile := filepath.Join(t.TempDir(), ".mdhl.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("cache:\n  enabled: true\n  dir: "+cacheDir+"\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgFile, "cache", "dir"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, cacheDir+"\n", out.String())
	assert.DirExists(t, cacheDir)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "custom.yml")

	_, err := execute(t, "init", "--output", target)
	require.NoError(t, err)
	assert.FileExists(t, target)

	_, err = execute(t, "init", "--output", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(target, old, old))
	_, err = execute(t, "init", "--output", target, "--force")
	require.NoError(t, err)
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "identical template should not be rewritten")

	_, err = execute(t, "init", "--output", target, "--force", "--full")
	require.NoError(t, err)
	info, err = os.Stat(target)
	require.NoError(t, err)
	assert.False(t, info.ModTime().Equal(old))

	_, err = execute(t, "init", "--format", "toml", "--output", target)
	require.Error(t, err)
}

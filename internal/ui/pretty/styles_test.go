package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/pkg/config"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "test", styles.Bold.Render("test"), "No-color Bold should not add formatting")
	assert.Equal(t, "test", styles.Error.Render("test"), "No-color Error should not add formatting")
	assert.Equal(t, "test", styles.Lexer.Render("test"))
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(config.ColorNever, os.Stdout))
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, &buf), "non-TTY writer")
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode behaves as auto")
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, os.Stdout), "always wins over NO_COLOR")
}

func TestPalette(t *testing.T) {
	var buf bytes.Buffer
	theme := config.Theme{
		"header1": {Foreground: "12", Bold: true},
		"code":    {Foreground: "#ffaa00", Background: "236"},
	}

	colored := pretty.NewPalette(&buf, theme, true)
	assert.True(t, colored.Enabled())
	out := colored.Render("header1", "# Title")
	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, "plain", colored.Render("default", "plain"), "unthemed names render as-is")
	assert.Empty(t, colored.Render("header1", ""))
	assert.Equal(t, "\tx", colored.Style("missing").Render("\tx"), "tabs are kept")
	assert.Equal(t, []string{"code", "header1"}, colored.Names())

	plain := pretty.NewPalette(&buf, theme, false)
	assert.False(t, plain.Enabled())
	assert.Equal(t, "# Title", plain.Render("header1", "# Title"))
}

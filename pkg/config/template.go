package config

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes the complete theme. If false, a minimal commented
	// template is generated.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

const templateHeader = `# mdhl configuration
# Values here are overridden by MDHL_* environment variables and CLI flags.
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
	case "json":
		return generateJSONTemplate(opts)
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}

	if !opts.Full {
		return []byte(minimalTemplate()), nil
	}

	cfg := NewConfig()
	return cfg.ToYAMLWithHeader(strings.TrimRight(templateHeader, "\n"))
}

func minimalTemplate() string {
	var sb strings.Builder
	sb.WriteString(templateHeader)
	sb.WriteString(`
# Force a scanner for every file instead of detecting it.
# lexer: markdown

# Color output: auto, always, never.
color: auto

# Wrap terminal output at this column (0 disables).
wrap: 0

# Glob patterns to skip.
ignore: []

# Terminal theme overrides, keyed by style name.
# theme:
`)

	theme := DefaultTheme()
	names := make([]string, 0, len(theme))
	for name := range theme {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "#   %s: {fg: %q}\n", name, theme[name].Foreground)
	}

	sb.WriteString(`
html:
  style: monokai
  standalone: true

cache:
  enabled: false
`)
	return sb.String()
}

func generateJSONTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	if !opts.Full {
		cfg.Theme = nil
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	return append(data, '\n'), nil
}

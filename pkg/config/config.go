// Package config defines the configuration types of mdhl.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// OutputFormat selects how highlighting results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
	FormatANSI    OutputFormat = "ansi"
	FormatHTML    OutputFormat = "html"
)

// Formats lists every output format in display order.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatSummary, FormatANSI, FormatHTML}
}

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// ColorMode controls terminal colouring.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// StyleSpec is the terminal appearance of one classification.
type StyleSpec struct {
	Foreground    string `mapstructure:"fg" yaml:"fg,omitempty" json:"fg,omitempty"`
	Background    string `mapstructure:"bg" yaml:"bg,omitempty" json:"bg,omitempty"`
	Bold          bool   `mapstructure:"bold" yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic        bool   `mapstructure:"italic" yaml:"italic,omitempty" json:"italic,omitempty"`
	Underline     bool   `mapstructure:"underline" yaml:"underline,omitempty" json:"underline,omitempty"`
	Strikethrough bool   `mapstructure:"strikethrough" yaml:"strikethrough,omitempty" json:"strikethrough,omitempty"`
	Faint         bool   `mapstructure:"faint" yaml:"faint,omitempty" json:"faint,omitempty"`
}

// Theme maps style names (e.g. "header1", "code-block") to their appearance.
// Names missing from a theme render unstyled.
type Theme map[string]StyleSpec

// HTMLConfig controls HTML output through chroma.
type HTMLConfig struct {
	// Style is a chroma style name, e.g. "monokai".
	Style string `mapstructure:"style" yaml:"style,omitempty" json:"style,omitempty"`

	// Classes emits CSS classes instead of inline styles.
	Classes bool `mapstructure:"classes" yaml:"classes,omitempty" json:"classes,omitempty"`

	// LineNumbers prefixes each line with its number.
	LineNumbers bool `mapstructure:"line_numbers" yaml:"line_numbers,omitempty" json:"line_numbers,omitempty"`

	// Standalone wraps the output in a complete HTML document.
	Standalone bool `mapstructure:"standalone" yaml:"standalone,omitempty" json:"standalone,omitempty"`
}

// CacheConfig controls the on-disk style cache.
type CacheConfig struct {
	// Enabled is a pointer so that an explicit false survives merging.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty" json:"enabled,omitempty"`

	// Dir overrides the cache location. Empty means the user cache dir.
	Dir string `mapstructure:"dir" yaml:"dir,omitempty" json:"dir,omitempty"`
}

// IsEnabled reports whether caching is on.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled != nil && *c.Enabled
}

// Config is the root configuration structure for mdhl.
type Config struct {
	// Lexer forces a scanner by name. Empty means detect per file.
	Lexer string `mapstructure:"lexer" yaml:"lexer,omitempty" json:"lexer,omitempty"`

	// Extensions are the file extensions picked up when walking directories.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty" json:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty" json:"ignore,omitempty"`

	// Color controls terminal colouring.
	Color ColorMode `mapstructure:"color" yaml:"color,omitempty" json:"color,omitempty"`

	// Wrap is the column at which terminal output is word wrapped. 0 disables.
	Wrap int `mapstructure:"wrap" yaml:"wrap,omitempty" json:"wrap,omitempty"`

	// Theme overrides the terminal appearance per style name.
	Theme Theme `mapstructure:"theme" yaml:"theme,omitempty" json:"theme,omitempty"`

	// HTML configures HTML output.
	HTML HTMLConfig `mapstructure:"html" yaml:"html,omitempty" json:"html,omitempty"`

	// Cache configures the style cache.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache,omitempty" json:"cache,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-" json:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-" json:"-"`

	// FollowSymlinks traverses directory symlinks during discovery.
	FollowSymlinks bool `mapstructure:"-" yaml:"-" json:"-"`
}

// DefaultExtensions returns the extensions walked by default.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

// DefaultTheme returns the built-in terminal theme. Colours are ANSI 256
// palette indexes.
func DefaultTheme() Theme {
	return Theme{
		"header1":        {Foreground: "12", Bold: true, Underline: true},
		"header2":        {Foreground: "12", Bold: true},
		"header3":        {Foreground: "14", Bold: true},
		"header4":        {Foreground: "14"},
		"header5":        {Foreground: "6"},
		"header6":        {Foreground: "6", Faint: true},
		"strong1":        {Bold: true},
		"strong2":        {Bold: true},
		"strikeout":      {Strikethrough: true, Faint: true},
		"code":           {Foreground: "11"},
		"code2":          {Foreground: "11"},
		"code-block":     {Foreground: "3"},
		"hrule":          {Foreground: "8"},
		"blockquote":     {Foreground: "10", Italic: true},
		"prechar":        {Foreground: "8"},
		"link":           {Foreground: "13", Underline: true},
		"search-header":  {Foreground: "12", Bold: true},
		"file-header":    {Foreground: "10", Bold: true},
		"line-number":    {Foreground: "8"},
		"word-to-search": {Foreground: "0", Background: "11"},
		"current-line":   {Background: "236"},
	}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	enabled := false
	return &Config{
		Extensions: DefaultExtensions(),
		Color:      ColorAuto,
		Theme:      DefaultTheme(),
		HTML: HTMLConfig{
			Style:      "monokai",
			Standalone: true,
		},
		Cache:  CacheConfig{Enabled: &enabled},
		Format: FormatText,
		Jobs:   0, // 0 means use NumCPU
	}
}

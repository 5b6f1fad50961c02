package configloader

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/styles"
	"github.com/gobwas/glob"

	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/lexer"
	_ "github.com/yaklabco/mdhl/pkg/lexer/builtin" // Register scanners
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "theme.header1.fg").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown style names).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// colorPattern accepts ANSI palette indexes and #rgb / #rrggbb hex colours.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// Validate checks a configuration for errors and warnings. Scanner and style
// names are checked against lexer.DefaultRegistry.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, fmt.Sprintf("invalid format %q; must be one of: %s", cfg.Format, joinFormats()))
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.addError("color", cfg.Color, fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Wrap < 0 {
		result.addError("wrap", cfg.Wrap, "wrap must be >= 0 (0 disables wrapping)")
	}
	if cfg.Lexer != "" {
		if _, ok := lexer.DefaultRegistry.Get(cfg.Lexer); !ok {
			result.addError("lexer", cfg.Lexer, fmt.Sprintf("unknown lexer %q; available: %s",
				cfg.Lexer, strings.Join(lexer.DefaultRegistry.Names(), ", ")))
		}
	}
	if cfg.HTML.Style != "" && !slices.Contains(styles.Names(), cfg.HTML.Style) {
		result.addWarning("html.style", cfg.HTML.Style,
			fmt.Sprintf("unknown chroma style %q; the fallback style will be used", cfg.HTML.Style))
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, "extension must start with a dot")
		}
	}

	validateTheme(cfg.Theme, result)
	validateIgnorePatterns(cfg.Ignore, result)

	return result
}

func validateTheme(theme config.Theme, result *ValidationResult) {
	known := knownStyleNames()

	names := make([]string, 0, len(theme))
	for name := range theme {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		spec := theme[name]
		field := "theme." + name

		if !known[name] {
			result.addWarning(field, name, fmt.Sprintf("unknown style %q; it will be ignored", name))
		}
		if spec.Foreground != "" && !colorPattern.MatchString(spec.Foreground) {
			result.addError(field+".fg", spec.Foreground, fmt.Sprintf("invalid color %q", spec.Foreground))
		}
		if spec.Background != "" && !colorPattern.MatchString(spec.Background) {
			result.addError(field+".bg", spec.Background, fmt.Sprintf("invalid color %q", spec.Background))
		}
	}
}

func knownStyleNames() map[string]bool {
	known := make(map[string]bool)
	for _, module := range lexer.DefaultRegistry.Modules() {
		for _, name := range module.StyleNames {
			known[name] = true
		}
	}
	return known
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(patterns []string, result *ValidationResult) {
	for i, pattern := range patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

func joinFormats() string {
	names := make([]string, 0, len(config.Formats()))
	for _, f := range config.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdhl/pkg/config"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (config.OutputFormat, error) {
	if formatStr == "" {
		return config.FormatText, nil
	}
	format := config.OutputFormat(strings.ToLower(formatStr))
	if !format.IsValid() {
		names := make([]string, 0, len(config.Formats()))
		for _, f := range config.Formats() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", formatStr, strings.Join(names, ", "))
	}
	return format, nil
}

// NeedsDocuments reports whether a format renders file content and so
// needs the runner to keep styled documents.
func NeedsDocuments(format config.OutputFormat) bool {
	switch format {
	case config.FormatText, config.FormatJSON, config.FormatYAML, config.FormatANSI, config.FormatHTML:
		return true
	default:
		return false
	}
}

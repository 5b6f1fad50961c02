package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdhl/pkg/config"
)

// envVarPrefix is the prefix for all mdhl environment variables.
const envVarPrefix = "MDHL_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LEXER":             {field: "lexer", typ: envTypeString},
	"COLOR":             {field: "color", typ: envTypeString},
	"FORMAT":            {field: "format", typ: envTypeString},
	"HTML_STYLE":        {field: "html.style", typ: envTypeString},
	"CACHE_DIR":         {field: "cache.dir", typ: envTypeString},
	"CACHE":             {field: "cache.enabled", typ: envTypeBool},
	"HTML_CLASSES":      {field: "html.classes", typ: envTypeBool},
	"HTML_LINE_NUMBERS": {field: "html.line_numbers", typ: envTypeBool},
	"JOBS":              {field: "jobs", typ: envTypeInt},
	"WRAP":              {field: "wrap", typ: envTypeInt},
	"IGNORE":            {field: "ignore", typ: envTypeSlice},
	"EXTENSIONS":        {field: "extensions", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDHL_ (e.g., MDHL_COLOR).
// NO_COLOR forces color off as a baseline that MDHL_COLOR can still override.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = config.ColorNever
	}

	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "lexer":
		cfg.Lexer = value
	case "color":
		cfg.Color = config.ColorMode(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "html.style":
		cfg.HTML.Style = value
	case "cache.dir":
		cfg.Cache.Dir = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "cache.enabled":
		cfg.Cache.Enabled = &value
	case "html.classes":
		cfg.HTML.Classes = value
	case "html.line_numbers":
		cfg.HTML.LineNumbers = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "wrap":
		cfg.Wrap = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

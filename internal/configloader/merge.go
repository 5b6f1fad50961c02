package configloader

import (
	"maps"

	"github.com/yaklabco/mdhl/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero
//   - Theme: per style name, override entries replace base entries
//   - Slices: override replaces base when non-nil
//   - Pointers: override wins when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Lexer != "" {
		result.Lexer = override.Lexer
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Wrap != 0 {
		result.Wrap = override.Wrap
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	result.Theme = mergeTheme(base.Theme, override.Theme)
	result.HTML = mergeHTML(base.HTML, override.HTML)

	if override.Cache.Enabled != nil {
		result.Cache.Enabled = override.Cache.Enabled
	}
	if override.Cache.Dir != "" {
		result.Cache.Dir = override.Cache.Dir
	}

	return &result
}

// mergeTheme returns a new theme with override's entries over base's.
func mergeTheme(base, override config.Theme) config.Theme {
	if base == nil && override == nil {
		return nil
	}

	result := make(config.Theme, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// mergeHTML merges HTML settings. Booleans can only be switched on.
func mergeHTML(base, override config.HTMLConfig) config.HTMLConfig {
	result := base
	if override.Style != "" {
		result.Style = override.Style
	}
	result.Classes = result.Classes || override.Classes
	result.LineNumbers = result.LineNumbers || override.LineNumbers
	result.Standalone = result.Standalone || override.Standalone
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}

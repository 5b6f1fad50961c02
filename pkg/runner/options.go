// Package runner highlights many files concurrently.
package runner

import "github.com/yaklabco/mdhl/pkg/config"

// FallbackLexer colours files no scanner claims.
const FallbackLexer = "markdown"

// Options controls file discovery and highlighting.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions selects the files picked up while walking directories
	// (lowercase, with leading dot). Files named explicitly are always taken.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Lexer forces one scanner for every file. Empty detects per file.
	Lexer string

	// KeepDocuments retains the styled document in each FileOutcome.
	KeepDocuments bool
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return config.DefaultExtensions()
}

// OptionsFromConfig seeds Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:          paths,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: cfg.FollowSymlinks,
		Jobs:           cfg.Jobs,
		Lexer:          cfg.Lexer,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdhl/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	Color config.ColorMode

	// Theme styles highlighted terminal output.
	Theme config.Theme

	// HTML configures html output.
	HTML config.HTMLConfig

	// Wrap word wraps terminal output at this column. 0 disables.
	Wrap int

	// LineNumbers prefixes terminal output lines with their number.
	LineNumbers bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	cfg := config.NewConfig()
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatText,
		Color:       config.ColorAuto,
		Theme:       cfg.Theme,
		HTML:        cfg.HTML,
		ShowSummary: true,
	}
}

// OptionsFromConfig seeds reporter options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Format != "" {
		opts.Format = cfg.Format
	}
	if cfg.Color != "" {
		opts.Color = cfg.Color
	}
	if len(cfg.Theme) > 0 {
		opts.Theme = cfg.Theme
	}
	opts.HTML = cfg.HTML
	opts.Wrap = cfg.Wrap
	return opts
}

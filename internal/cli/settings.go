package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/configloader"
	"github.com/yaklabco/mdhl/internal/logging"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/runner"
	"github.com/yaklabco/mdhl/pkg/stylecache"
)

// scanFlags are the file selection flags shared by commands that walk paths.
type scanFlags struct {
	lexer          string
	ignore         []string
	extensions     []string
	jobs           int
	followSymlinks bool
	noCache        bool
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVarP(&flags.lexer, "lexer", "l", "", "force a scanner by name instead of detecting per file")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions picked up in directories")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "ignore the style cache for this run")
}

func (f *scanFlags) apply(cfg *config.Config) {
	cfg.Lexer = f.lexer
	cfg.Ignore = f.ignore
	cfg.Extensions = f.extensions
	cfg.Jobs = f.jobs
	cfg.FollowSymlinks = f.followSymlinks
}

// session is the resolved environment of one command invocation.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	workDir string
}

// loadSession merges config files, MDHL_* variables and cliCfg.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, _ := cmd.Flags().GetString("color")
		cliCfg.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return &session{ctx: ctx, cfg: loadResult.Config, workDir: workDir}, nil
}

// colorMode returns the effective color mode, defaulting to auto.
func (s *session) colorMode() config.ColorMode {
	if s.cfg.Color == "" {
		return config.ColorAuto
	}
	return s.cfg.Color
}

// runner builds a runner, attaching the style cache unless disabled.
func (s *session) runner(noCache bool) (*runner.Runner, error) {
	if noCache || !s.cfg.Cache.IsEnabled() {
		return runner.New(nil), nil
	}
	cache, err := stylecache.Open(s.cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("open style cache: %w", err)
	}
	logging.FromContext(s.ctx).Debug("style cache enabled", logging.FieldCachePath, cache.Dir())
	return runner.New(cache), nil
}

// runOptions builds runner options for paths from the session config.
func (s *session) runOptions(paths []string) runner.Options {
	opts := runner.OptionsFromConfig(s.cfg, paths)
	opts.WorkingDir = s.workDir
	return opts
}

// relPathTo makes path relative to workDir when it lies below it.
func relPathTo(path, workDir string) string {
	if rel, err := filepath.Rel(workDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

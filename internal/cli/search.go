package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/logging"
	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/fsutil"
	"github.com/yaklabco/mdhl/pkg/render"
	"github.com/yaklabco/mdhl/pkg/runner"
	"github.com/yaklabco/mdhl/pkg/search"
)

// ErrNoMatches is returned when a search finds nothing.
var ErrNoMatches = errors.New("no matches")

type searchFlags struct {
	scan       scanFlags
	ignoreCase bool
	regexp     bool
	save       string
}

func newSearchCommand() *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search <pattern> [paths...]",
		Short: "Search files and show the hits as a search results document",
		Long: `Search Markdown files for a pattern and print the hits grouped per file,
coloured by the searchresult scanner. The matched text of every hit is
marked.

With --save the results are also written to a file, which mdhl highlights
again later by its .search extension.

Examples:
  mdhl search TODO
  mdhl search -i "install" docs/
  mdhl search -E "v[0-9]+\.[0-9]+" --save versions.search`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], args[1:], flags)
		},
	}

	addScanFlags(cmd, &flags.scan)
	cmd.Flags().BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "match case-insensitively")
	cmd.Flags().BoolVarP(&flags.regexp, "regexp", "E", false, "treat the pattern as a regular expression")
	cmd.Flags().StringVar(&flags.save, "save", "", "also write the results document to this file")

	return cmd
}

func runSearch(cmd *cobra.Command, pattern string, paths []string, flags *searchFlags) error {
	var cliCfg config.Config
	flags.scan.apply(&cliCfg)

	sess, err := loadSession(cmd, &cliCfg)
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	files, err := runner.Discover(sess.ctx, sess.runOptions(paths))
	if err != nil {
		return err
	}

	result, err := search.Files(sess.ctx, files, search.Options{
		Pattern:    pattern,
		Regexp:     flags.regexp,
		IgnoreCase: flags.ignoreCase,
		Jobs:       sess.cfg.Jobs,
	})
	if err != nil {
		return err
	}
	for i := range result.Files {
		result.Files[i].Path = relPathTo(result.Files[i].Path, sess.workDir)
	}

	doc, err := result.Highlight(sess.ctx)
	if err != nil {
		return err
	}

	if flags.save != "" {
		written, err := fsutil.WriteAtomicIfChanged(sess.ctx, flags.save, doc.Content(), fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("save results: %w", err)
		}
		if written {
			logger.Info("saved search results", logging.FieldOutput, flags.save)
		} else {
			logger.Info("search results unchanged", logging.FieldOutput, flags.save)
		}
	}

	out := cmd.OutOrStdout()
	palette := pretty.NewPalette(out, sess.cfg.Theme, pretty.IsColorEnabled(sess.colorMode(), out))
	if err := render.Terminal(out, doc, palette, render.TerminalOptions{Wrap: sess.cfg.Wrap}); err != nil {
		return err
	}

	if result.HitCount() == 0 {
		return ErrNoMatches
	}
	return nil
}

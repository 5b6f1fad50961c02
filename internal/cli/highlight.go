package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/logging"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/reporter"
)

// ErrHighlightFailed is returned when one or more files could not be highlighted.
var ErrHighlightFailed = errors.New("some files could not be highlighted")

type highlightFlags struct {
	scan        scanFlags
	format      string
	compact     bool
	noSummary   bool
	lineNumbers bool
	wrap        int
}

func newHighlightCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:     "highlight [paths...]",
		Aliases: []string{"hl"},
		Short:   "Highlight files and report their styled spans",
		Long:    highlightLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, args, flags)
		},
	}

	addScanFlags(cmd, &flags.scan)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "",
		"output format: text, json, yaml, summary, ansi, html")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the run summary")
	cmd.Flags().BoolVarP(&flags.lineNumbers, "line-numbers", "n", false, "number lines in ansi output")
	cmd.Flags().IntVarP(&flags.wrap, "wrap", "w", 0, "word wrap ansi output at this column")

	return cmd
}

const highlightLongDescription = `Highlight Markdown files and report the result.

By default, highlights all Markdown files in the current directory and
subdirectories. Specify paths to highlight specific files or directories.

Examples:
  mdhl highlight                      # List spans of every file
  mdhl highlight README.md -f ansi    # Print README.md in colour
  mdhl highlight docs/ -f summary     # Style statistics for docs/
  mdhl highlight -f json --compact    # Machine readable spans
  mdhl highlight -f html > out.html   # One HTML page for all files`

func runHighlight(cmd *cobra.Command, args []string, flags *highlightFlags) error {
	var cliCfg config.Config
	flags.scan.apply(&cliCfg)
	cliCfg.Wrap = flags.wrap

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if flags.format != "" {
		cliCfg.Format = format
	}

	sess, err := loadSession(cmd, &cliCfg)
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	hl, err := sess.runner(flags.scan.noCache)
	if err != nil {
		return err
	}

	repOpts := reporter.OptionsFromConfig(sess.cfg)
	repOpts.Writer = cmd.OutOrStdout()
	repOpts.ErrorWriter = cmd.ErrOrStderr()
	repOpts.Color = sess.colorMode()
	repOpts.Compact = flags.compact
	repOpts.ShowSummary = !flags.noSummary
	repOpts.LineNumbers = flags.lineNumbers
	repOpts.WorkingDir = sess.workDir

	runOpts := sess.runOptions(args)
	runOpts.KeepDocuments = reporter.NeedsDocuments(repOpts.Format)

	logger.Debug("starting highlight run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldFormat, repOpts.Format,
	)

	result, err := hl.Run(sess.ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("highlight run failed"), err)
	}

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(sess.ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrHighlightFailed
	}
	return nil
}

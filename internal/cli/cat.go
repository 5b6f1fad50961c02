package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/render"
	"github.com/yaklabco/mdhl/pkg/reporter"
	"github.com/yaklabco/mdhl/pkg/runner"
)

type catFlags struct {
	lexer       string
	formatter   string
	style       string
	lineNumbers bool
	wrap        int
}

func newCatCommand() *cobra.Command {
	flags := &catFlags{}

	cmd := &cobra.Command{
		Use:   "cat <files...>",
		Short: "Print files highlighted",
		Long: `Print files highlighted with the configured theme.

With --formatter the styled tokens go through a chroma formatter and style
instead, e.g. terminal256 or terminal16m.

Examples:
  mdhl cat README.md
  mdhl cat -n -w 80 docs/guide.md
  mdhl cat --formatter terminal16m --style dracula README.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.lexer, "lexer", "l", "", "force a scanner by name")
	cmd.Flags().StringVar(&flags.formatter, "formatter", "", "chroma formatter to render with")
	cmd.Flags().StringVar(&flags.style, "style", "", "chroma style for --formatter (default: html.style)")
	cmd.Flags().BoolVarP(&flags.lineNumbers, "line-numbers", "n", false, "number lines")
	cmd.Flags().IntVarP(&flags.wrap, "wrap", "w", 0, "word wrap at this column")

	return cmd
}

func runCat(cmd *cobra.Command, args []string, flags *catFlags) error {
	cliCfg := config.Config{Lexer: flags.lexer, Wrap: flags.wrap}
	sess, err := loadSession(cmd, &cliCfg)
	if err != nil {
		return err
	}

	runOpts := sess.runOptions(args)
	runOpts.KeepDocuments = true
	runOpts.Jobs = 1

	result, err := runner.New(nil).Run(sess.ctx, runOpts)
	if err != nil {
		return err
	}

	if flags.formatter != "" {
		if err := catChroma(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, flags, sess.cfg.HTML.Style); err != nil {
			return err
		}
	} else {
		repOpts := reporter.OptionsFromConfig(sess.cfg)
		repOpts.Writer = cmd.OutOrStdout()
		repOpts.ErrorWriter = cmd.ErrOrStderr()
		repOpts.Format = config.FormatANSI
		repOpts.Color = sess.colorMode()
		repOpts.LineNumbers = flags.lineNumbers
		repOpts.WorkingDir = sess.workDir
		rep, err := reporter.New(repOpts)
		if err != nil {
			return err
		}
		if _, err := rep.Report(sess.ctx, result); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return ErrHighlightFailed
	}
	return nil
}

func catChroma(out, errOut io.Writer, result *runner.Result, flags *catFlags, defaultStyle string) error {
	style := flags.style
	if style == "" {
		style = defaultStyle
	}
	var errs []error
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			fmt.Fprintf(errOut, "%s: %v\n", outcome.Path, outcome.Error)
			continue
		}
		if err := render.Chroma(out, outcome.Document, flags.formatter, style); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

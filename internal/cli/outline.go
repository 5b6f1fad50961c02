package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/logging"
	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/langdetect"
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
	"github.com/yaklabco/mdhl/pkg/outline"
	"github.com/yaklabco/mdhl/pkg/runner"
)

// ErrOutlineMismatch is returned when the scanner and the reference parser
// disagree about headings.
var ErrOutlineMismatch = errors.New("outline mismatch")

type outlineFlags struct {
	scan    scanFlags
	compare bool
	flavor  string
	format  string
}

// fileOutline is the JSON form of one file's outline.
type fileOutline struct {
	Path       string              `json:"path"`
	Headings   []outline.Heading   `json:"headings"`
	CodeBlocks []outline.CodeBlock `json:"codeBlocks,omitempty"`
	Mismatches []outline.Mismatch  `json:"mismatches,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func newOutlineCommand() *cobra.Command {
	flags := &outlineFlags{}

	cmd := &cobra.Command{
		Use:   "outline [paths...]",
		Short: "Show the headings and code blocks the scanner found",
		Long: `Show the outline of Markdown files as seen by the scanner: every header
line and every code block with its language.

With --compare each outline is checked against a goldmark parse of the same
file, and any heading the two disagree on is reported.

Examples:
  mdhl outline README.md
  mdhl outline docs/ --compare --flavor gfm
  mdhl outline --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args, flags)
		},
	}

	addScanFlags(cmd, &flags.scan)
	cmd.Flags().BoolVar(&flags.compare, "compare", false, "check headings against a goldmark parse")
	cmd.Flags().StringVar(&flags.flavor, "flavor", outline.FlavorCommonMark, "reference Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runOutline(cmd *cobra.Command, args []string, flags *outlineFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("invalid format %q: must be text or json", flags.format)
	}

	var cliCfg config.Config
	flags.scan.apply(&cliCfg)
	cliCfg.Lexer = markdown.Name

	sess, err := loadSession(cmd, &cliCfg)
	if err != nil {
		return err
	}

	runOpts := sess.runOptions(args)
	runOpts.KeepDocuments = true

	result, err := runner.New(nil).Run(sess.ctx, runOpts)
	if err != nil {
		return err
	}

	var reference *outline.Reference
	if flags.compare {
		reference = outline.NewReference(flags.flavor)
	}

	logger := logging.FromContext(sess.ctx)
	outlines := make([]fileOutline, 0, len(result.Files))
	mismatches := 0
	for _, outcome := range result.Files {
		item := fileOutline{Path: relPathTo(outcome.Path, sess.workDir)}
		if !langdetect.IsMarkdownPath(outcome.Path) {
			logger.Warn("outlining a file not named as Markdown", logging.FieldPath, item.Path)
		}
		if outcome.Error != nil {
			item.Error = outcome.Error.Error()
			outlines = append(outlines, item)
			continue
		}

		item.Headings = outline.FromDocument(outcome.Document)
		item.CodeBlocks = outcome.CodeBlocks
		if reference != nil {
			refHeadings, err := reference.Outline(sess.ctx, outcome.Document.Content())
			if err != nil {
				return fmt.Errorf("%s: %w", item.Path, err)
			}
			item.Mismatches = outline.Compare(item.Headings, refHeadings)
			mismatches += len(item.Mismatches)
		}
		outlines = append(outlines, item)
	}

	logger.Debug("outline built",
		logging.FieldFilesProcessed, len(outlines),
		logging.FieldOutlineConflicts, mismatches,
	)

	out := cmd.OutOrStdout()
	if flags.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outlines); err != nil {
			return fmt.Errorf("encoding outline: %w", err)
		}
	} else {
		styles := pretty.NewStyles(pretty.IsColorEnabled(sess.colorMode(), out))
		if err := writeOutlines(out, styles, result, outlines); err != nil {
			return err
		}
	}

	switch {
	case result.HasFailures():
		return ErrHighlightFailed
	case mismatches > 0:
		return ErrOutlineMismatch
	}
	return nil
}

func writeOutlines(w io.Writer, styles *pretty.Styles, result *runner.Result, outlines []fileOutline) error {
	var b strings.Builder
	for i, item := range outlines {
		if item.Error != "" {
			b.WriteString(styles.FormatFileError(item.Path, result.Files[i].Error))
			continue
		}

		b.WriteString(styles.FormatFileHeader(item.Path, markdown.Name))
		b.WriteString("\n")
		for _, heading := range item.Headings {
			fmt.Fprintf(&b, "  %s  %s%s\n",
				styles.Location.Render(fmt.Sprintf("%4d", heading.Line)),
				strings.Repeat("  ", heading.Level-1),
				styles.Bold.Render(strings.Repeat("#", heading.Level)+" "+heading.Title))
		}
		for _, block := range item.CodeBlocks {
			fmt.Fprintf(&b, "  %s  %s %s\n",
				styles.Location.Render(fmt.Sprintf("%4d", block.Line)),
				styles.Lexer.Render(block.Language),
				styles.Dim.Render(fmt.Sprintf("(%d lines)", block.Lines)))
		}

		doc := result.Files[i].Document
		for _, mismatch := range item.Mismatches {
			source := string(doc.Buffer().LineContent(mismatch.Line - 1))
			b.WriteString(styles.FormatMismatch(item.Path, mismatch, source))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

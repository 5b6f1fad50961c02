// Package cli provides the Cobra command structure for mdhl.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdhl command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdhl",
		Short: "An incremental Markdown syntax highlighter",
		Long: `mdhl styles Markdown in a single forward pass, the way an editor does.

Each byte of a file gets a style such as **header1**, **strong1** or
**code-block**. Styling can stop at any line and resume later, so large
files are coloured only as far as they are read. Saved search results
(*.search) have a scanner of their own.

Output goes to the terminal with a configurable theme, to HTML through
` + "`chroma`" + `, or to JSON and YAML span listings.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newCatCommand())
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newOutlineCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newLexersCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/internal/ui/viewer"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/runner"
)

func newViewCommand() *cobra.Command {
	var lexerName string
	var lineNumbers bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Page through a highlighted file",
		Long: `Open a file in a full screen pager. Lines are coloured as they scroll
into view; press r to reload the file after it changes on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd, &config.Config{Lexer: lexerName})
			if err != nil {
				return err
			}

			hl := runner.New(nil)
			resolve := func(path string, content []byte) (lexer.Module, error) {
				return hl.ResolveLexer(path, content, sess.cfg.Lexer)
			}

			out := cmd.OutOrStdout()
			palette := pretty.NewPalette(out, sess.cfg.Theme, pretty.IsColorEnabled(sess.colorMode(), out))

			model, err := viewer.New(sess.ctx, args[0], resolve, viewer.Options{
				Painter:     palette,
				LineNumbers: lineNumbers,
			})
			if err != nil {
				return err
			}
			return viewer.Run(sess.ctx, model, cmd.InOrStdin(), out)
		},
	}

	cmd.Flags().StringVarP(&lexerName, "lexer", "l", "", "force a scanner by name")
	cmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "show line numbers")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/pkg/chromalexer"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/lexer"
)

const formatJSON = "json"

// lexerInfo represents a scanner in JSON output.
type lexerInfo struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Filenames   []string    `json:"filenames"`
	Folds       bool        `json:"folds"`
	Styles      []styleInfo `json:"styles"`
}

type styleInfo struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

func newLexersCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lexers [name]",
		Short: "List the available scanners and their styles",
		Long: `List every registered scanner with its filename patterns. Given a name,
show that scanner's styles drawn in the current theme, with the chroma token
type each maps to in HTML output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modules := lexer.DefaultRegistry.Modules()
			if len(args) == 1 {
				module, err := lexer.DefaultRegistry.Lookup(args[0])
				if err != nil {
					return err
				}
				modules = []lexer.Module{module}
			}

			if format == formatJSON {
				return outputLexersJSON(cmd.OutOrStdout(), modules)
			}
			if format != "text" {
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}

			sess, err := loadSession(cmd, &config.Config{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorEnabled := pretty.IsColorEnabled(sess.colorMode(), out)
			styles := pretty.NewStyles(colorEnabled)
			palette := pretty.NewPalette(out, sess.cfg.Theme, colorEnabled)

			return writeLexers(out, styles, palette, modules, len(args) == 1)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func writeLexers(w io.Writer, styles *pretty.Styles, palette *pretty.Palette, modules []lexer.Module, detail bool) error {
	var b strings.Builder
	for _, module := range modules {
		fmt.Fprintf(&b, "%s  %s  %s\n",
			styles.Lexer.Render(fmt.Sprintf("%-14s", module.Name)),
			styles.Dim.Render(fmt.Sprintf("%4d", module.ID)),
			module.Description)
		if len(module.Filenames) > 0 {
			fmt.Fprintf(&b, "  %s\n", styles.Dim.Render(strings.Join(module.Filenames, " ")))
		}
		if !detail {
			continue
		}
		for value, name := range module.StyleNames {
			fmt.Fprintf(&b, "  %3d  %s%s  %s\n",
				value,
				palette.Render(name, name),
				strings.Repeat(" ", max(0, 16-len(name))),
				styles.Dim.Render(chromalexer.TokenType(name).String()))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func outputLexersJSON(w io.Writer, modules []lexer.Module) error {
	infos := make([]lexerInfo, 0, len(modules))
	for _, module := range modules {
		info := lexerInfo{
			ID:          module.ID,
			Name:        module.Name,
			Description: module.Description,
			Filenames:   module.Filenames,
			Folds:       module.CanFold(),
		}
		for value, name := range module.StyleNames {
			info.Styles = append(info.Styles, styleInfo{
				Value: value,
				Name:  name,
				Token: chromalexer.TokenType(name).String(),
			})
		}
		infos = append(infos, info)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding lexers: %w", err)
	}
	return nil
}

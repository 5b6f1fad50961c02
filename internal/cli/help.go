package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/ui/pretty"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
	"github.com/yaklabco/mdhl/pkg/render"
)

// helpRoles maps each part of the help screen to the theme style it is
// drawn with, so help follows the same theme as highlighted documents.
//
//nolint:gochecknoglobals // Read-only lookup table
var helpRoles = map[string]string{
	"command":     "strong1",
	"heading":     "header2",
	"subcommand":  "header4",
	"flag":        "code",
	"description": "default",
	"example":     "code-block",
	"alias":       "prechar",
	"dim":         "hrule",
}

// HelpFormatter provides styled help output for Cobra commands. Long
// descriptions are Markdown and are drawn by the markdown scanner.
type HelpFormatter struct {
	palette *pretty.Palette
}

// NewHelpFormatter creates a help formatter for writer. colorMode is one of
// auto, always or never.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	colorEnabled := pretty.IsColorEnabled(config.ColorMode(colorMode), writer)
	return &HelpFormatter{
		palette: pretty.NewPalette(writer, config.DefaultTheme(), colorEnabled),
	}
}

func (h *HelpFormatter) role(name string) func(string) string {
	style := helpRoles[name]
	return func(text string) string { return h.palette.Render(style, text) }
}

// styleMarkdown highlights help text with the markdown scanner.
func (h *HelpFormatter) styleMarkdown(text string) string {
	if !h.palette.Enabled() || text == "" {
		return text
	}
	doc := highlight.New([]byte(text), markdown.Module)
	if err := doc.ColouriseAll(context.Background()); err != nil {
		return text
	}
	return strings.Join(render.Lines(doc, h.palette, 0, doc.Buffer().LineCount()), "\n")
}

// templateFuncs returns the functions used by the help templates.
func (h *HelpFormatter) templateFuncs() template.FuncMap {
	funcs := template.FuncMap{
		"styleMarkdown":           h.styleMarkdown,
		"styleFlagsUsage":         h.styleFlagsUsage,
		"rpad":                    rpad,
		"join":                    strings.Join,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
	for name := range helpRoles {
		funcs["style"+strings.ToUpper(name[:1])+name[1:]] = h.role(name)
	}
	return funcs
}

// usageTemplate returns the styled usage template.
func (h *HelpFormatter) usageTemplate() string {
	return `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleAlias (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasHelpSubCommands}}

{{ styleHeading "Additional help topics:" }}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{ styleSubcommand (rpad .CommandPath .CommandPathPadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`
}

// helpTemplate returns the styled help template.
func (h *HelpFormatter) helpTemplate() string {
	return `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces | styleMarkdown }}

{{end}}` + h.usageTemplate()
}

// styleFlagsUsage formats flag usage with styling.
func (h *HelpFormatter) styleFlagsUsage(flags any) string {
	// Get the FlagUsages string from pflags
	flagUsages, ok := flags.(interface{ FlagUsages() string })
	if !ok {
		return ""
	}

	usages := flagUsages.FlagUsages()
	if usages == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles one "  -f, --flag type   description" line, keeping
// pflag's column alignment.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	parts := splitFlagLine(trimmed)
	if len(parts) != 2 {
		return line
	}
	gap := len(trimmed) - len(parts[0]) - len(parts[1])

	return indent + h.styleFlagPart(parts[0]) + strings.Repeat(" ", gap) + h.role("description")(parts[1])
}

// splitFlagLine splits a flag line at the first run of two or more spaces
// into [flagPart, description].
func splitFlagLine(line string) []string {
	idx := strings.Index(line, "  ")
	if idx < 0 {
		return []string{line}
	}
	desc := strings.TrimLeft(line[idx:], " ")
	if desc == "" {
		return []string{line}
	}
	return []string{line[:idx], desc}
}

// styleFlagPart draws flag names as code and their value types dimmed.
func (h *HelpFormatter) styleFlagPart(flagPart string) string {
	flag, dim := h.role("flag"), h.role("dim")
	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = dim(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = flag(name)
		if comma {
			tokens[i] += ","
		}
	}
	return strings.Join(tokens, " ")
}

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(h.usageTemplate()))
	help := template.Must(template.New("help").Funcs(funcs).Parse(h.helpTemplate()))

	cmd.SetUsageTemplate(h.usageTemplate())
	cmd.SetHelpTemplate(h.helpTemplate())

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

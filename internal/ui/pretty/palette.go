package pretty

import (
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yaklabco/mdhl/pkg/config"
)

// Palette renders highlighted text: one lipgloss style per style name,
// bound to a renderer for the destination writer.
type Palette struct {
	renderer *lipgloss.Renderer
	styles   map[string]lipgloss.Style
	enabled  bool
}

// NewPalette builds a palette for w from theme. With color disabled every
// style renders its text unchanged.
func NewPalette(w io.Writer, theme config.Theme, colorEnabled bool) *Palette {
	renderer := lipgloss.NewRenderer(w)
	if colorEnabled {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	palette := &Palette{
		renderer: renderer,
		styles:   make(map[string]lipgloss.Style, len(theme)),
		enabled:  colorEnabled,
	}
	for name, spec := range theme {
		palette.styles[name] = palette.build(spec)
	}
	return palette
}

func (p *Palette) build(spec config.StyleSpec) lipgloss.Style {
	style := p.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if !p.enabled {
		return style
	}
	if spec.Foreground != "" {
		style = style.Foreground(lipgloss.Color(spec.Foreground))
	}
	if spec.Background != "" {
		style = style.Background(lipgloss.Color(spec.Background))
	}
	return style.
		Bold(spec.Bold).
		Italic(spec.Italic).
		Underline(spec.Underline).
		Strikethrough(spec.Strikethrough).
		Faint(spec.Faint)
}

// Enabled reports whether the palette emits escape sequences.
func (p *Palette) Enabled() bool { return p.enabled }

// Style returns the style for name; unknown names are unstyled.
func (p *Palette) Style(name string) lipgloss.Style {
	if style, ok := p.styles[name]; ok {
		return style
	}
	return p.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

// Render styles text as name. text must not span lines: lipgloss pads
// multi-line blocks to a common width.
func (p *Palette) Render(name, text string) string {
	if !p.enabled || text == "" {
		return text
	}
	if _, ok := p.styles[name]; !ok {
		return text
	}
	return p.styles[name].Render(text)
}

// Names returns the themed style names, sorted.
func (p *Palette) Names() []string {
	return slices.Sorted(maps.Keys(p.styles))
}

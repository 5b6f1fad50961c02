// Package viewer is a scrolling terminal pager for highlighted documents.
// Only the lines that have been on screen are coloured, so large files open
// without scanning them in full.
package viewer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/yaklabco/mdhl/pkg/fsutil"
	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/lexer"
	"github.com/yaklabco/mdhl/pkg/render"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeLines is the status bar plus the help line.
	chromeLines = 2
)

// Resolver picks the scanner for a file.
type Resolver func(path string, content []byte) (lexer.Module, error)

// Options configures a Model.
type Options struct {
	// Painter styles text by style name. Nil renders plain text.
	Painter render.Painter

	// LineNumbers shows a line number gutter.
	LineNumbers bool

	// Keys overrides DefaultKeyMap.
	Keys *KeyMap
}

// Model is the bubbletea model of the pager.
type Model struct {
	ctx      context.Context
	path     string
	resolve  Resolver
	painter  render.Painter
	numbers  bool
	keys     KeyMap
	help     help.Model
	status   lipgloss.Style
	doc      *highlight.Document
	info     *fsutil.FileInfo
	lines    int
	offset   int
	width    int
	height   int
	err      error
	reloaded bool
}

type reloadMsg struct {
	doc  *highlight.Document
	info *fsutil.FileInfo
	err  error
}

// New loads path and returns a pager positioned at the top. Nothing is
// coloured until the first frame is prepared.
func New(ctx context.Context, path string, resolve Resolver, opts Options) (*Model, error) {
	m := &Model{
		ctx:     ctx,
		path:    path,
		resolve: resolve,
		painter: opts.Painter,
		numbers: opts.LineNumbers,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		status:  lipgloss.NewStyle().Reverse(true),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	}
	if m.painter == nil {
		m.painter = render.Plain{}
	}

	doc, info, err := m.load()
	if err != nil {
		return nil, err
	}
	m.setDocument(doc, info)
	return m, nil
}

func (m *Model) load() (*highlight.Document, *fsutil.FileInfo, error) {
	content, info, err := fsutil.ReadFile(m.ctx, m.path)
	if err != nil {
		return nil, nil, err
	}
	module, err := m.resolve(m.path, content)
	if err != nil {
		return nil, nil, err
	}
	return highlight.New(content, module), info, nil
}

func (m *Model) setDocument(doc *highlight.Document, info *fsutil.FileInfo) {
	m.doc = doc
	m.info = info
	m.lines = doc.Buffer().LineCount()
	// A trailing terminator leaves an empty last line that is not shown.
	if last, _ := doc.Buffer().Line(m.lines - 1); m.lines > 1 && last.StartOffset == last.EndOffset {
		m.lines--
	}
	m.offset = min(m.offset, m.maxOffset())
	m.prepare()
}

// Document returns the document being viewed.
func (m *Model) Document() *highlight.Document { return m.doc }

// Offset returns the 0-based first visible line.
func (m *Model) Offset() int { return m.offset }

// Err returns the last load error, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) bodyHeight() int {
	return max(1, m.height-chromeLines)
}

func (m *Model) maxOffset() int {
	return max(0, m.lines-m.bodyHeight())
}

// prepare colours the document through the last visible line.
func (m *Model) prepare() {
	last := min(m.offset+m.bodyHeight(), m.lines)
	if err := m.doc.Colourise(m.ctx, m.doc.Buffer().LineEnd(last-1)); err != nil {
		m.err = err
	}
}

func (m *Model) scroll(delta int) {
	m.offset = max(0, min(m.offset+delta, m.maxOffset()))
	m.prepare()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.help.Width = m.width
		m.scroll(0)
		return m, nil
	case reloadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.doc != nil {
			m.setDocument(msg.doc, msg.info)
			m.reloaded = true
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	page := m.bodyHeight()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(page)
	case key.Matches(msg, m.keys.Top):
		m.scroll(-m.offset)
	case key.Matches(msg, m.keys.Bottom):
		m.scroll(m.lines)
	case key.Matches(msg, m.keys.Reload):
		return m.reload
	}
	return nil
}

// reload re-reads the file when it changed on disk.
func (m *Model) reload() tea.Msg {
	modified, err := fsutil.CheckModified(m.ctx, m.info)
	if err != nil {
		return reloadMsg{err: err}
	}
	if !modified {
		return reloadMsg{}
	}
	doc, info, err := m.load()
	return reloadMsg{doc: doc, info: info, err: err}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	end := min(m.offset+m.bodyHeight(), m.lines)
	gutter := len(strconv.Itoa(m.lines))
	rows := 0
	for i, line := range render.Lines(m.doc, m.painter, m.offset, end) {
		if m.numbers {
			line = fmt.Sprintf("%*d  %s", gutter, m.offset+i+1, line)
		}
		b.WriteString(truncate.String(line, uint(m.width)))
		b.WriteString("\n")
		rows++
	}
	for ; rows < m.bodyHeight(); rows++ {
		b.WriteString("~\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) statusLine() string {
	styled := 100
	if m.doc.Len() > 0 {
		styled = m.doc.EndStyled() * 100 / m.doc.Len()
	}
	text := fmt.Sprintf(" %s  %s  %d-%d/%d  styled %d%%",
		m.path, m.doc.Module().Name,
		min(m.offset+1, m.lines), min(m.offset+m.bodyHeight(), m.lines), m.lines, styled)
	switch {
	case m.err != nil:
		text += "  error: " + m.err.Error()
	case m.reloaded:
		text += "  reloaded"
	}
	return m.status.Render(truncate.String(text, uint(m.width)))
}

// Run shows m full screen until the user quits.
func Run(ctx context.Context, m *Model, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"echopaint/internal/editor"
	"echopaint/internal/layout"
	"echopaint/internal/style"
	appver "echopaint/internal/version"
)

const previewRows = 3

// layout recomputes the editor and preview geometry for a w x h screen.
func (m *model) layout(w, h int) {
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	m.width, m.height = w, h
	m.help.Width = w
	m.editorW = max(w-2, 10)
	fixed := 1 + // title
		3 + // editor title and border
		3 + m.settings.Grid.Rows + // swatch panels
		3 + 2 + // toolbar
		1 + // notice
		1 + // status bar
		lipgloss.Height(m.help.View(m.modeKeys()))
	if m.sess.Mode() == editor.Export {
		fixed += 3 + previewRows
	}
	m.editorH = max(h-fixed, 1)
	m.preview.Width = max(w-2, 10)
	m.preview.Height = previewRows
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	s := m.sess
	mode := s.Mode()
	b := &strings.Builder{}

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	body := renderDocument(s.Document(), editorView{
		width:     m.editorW,
		rows:      m.editorH,
		scroll:    m.scroll,
		mode:      mode,
		highlight: m.settings.SelectionHighlight,
	})
	editing := mode == editor.Normal || mode == editor.Edit || mode == editor.Select
	b.WriteString(panel("Text", zone.Mark(zoneEditor, body), editing))
	b.WriteString("\n")

	grid := m.settings.LayoutGrid()
	target, cursor := s.Picker()
	fgCursor, bgCursor := -1, -1
	if mode == editor.Color {
		if target == editor.Foreground {
			fgCursor = cursor
		} else {
			bgCursor = cursor
		}
	}
	pen := s.Pen()
	fg := panel("Foreground (f)", zone.Mark(zoneFg, renderSwatches(grid, int(pen.Fg), fgCursor)), fgCursor >= 0)
	bg := panel("Background (g)", zone.Mark(zoneBg, renderSwatches(grid, int(pen.Bg), bgCursor)), bgCursor >= 0)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, fg, "  ", bg))
	b.WriteString("\n")

	tools := panel("Format", zone.Mark(zoneToolbar, renderToolbar(layout.DefaultButtons, pen)), false)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tools, "  ", panel("Pen", penSample(pen)+"\n", false)))
	b.WriteString("\n")

	if mode == editor.Export {
		title := fmt.Sprintf("Export · %s", s.Format())
		b.WriteString(panel(title, m.preview.View(), true))
		b.WriteString("\n")
	}

	// message line just above the status bar
	switch {
	case m.notice == "":
		b.WriteString("\n")
	case m.noticeErr:
		b.WriteString(ErrorText().Render("✗ "+m.notice) + "\n")
	default:
		b.WriteString(m.notice + "\n")
	}
	b.WriteString(m.renderStatusBarLine())
	b.WriteString(m.help.View(m.modeKeys()))
	return zone.Scan(b.String())
}

func (m model) renderTitle() string {
	d := m.sess.Document()
	left := AccentBold().Render("✻ echopaint") + "  " + ModeChip(m.sess.Mode())
	info := fmt.Sprintf("%d/%d", d.Cursor(), d.Len())
	if s, e, ok := d.Selection(); ok {
		info += fmt.Sprintf("  sel %d-%d", s, e)
	}
	right := lipgloss.NewStyle().Foreground(Vitesse.Muted).Render(info)
	pad := max(m.width-xansi.StringWidth(left)-xansi.StringWidth(right), 1)
	return left + strings.Repeat(" ", pad) + right
}

// renderStatusBarLine builds the status bar string (one line plus a newline).
func (m model) renderStatusBarLine() string {
	now := m.now
	if now.IsZero() {
		now = time.Now()
	}
	left := now.Format("15:04:05")
	if m.hintText != "" && now.Before(m.hintUntil) {
		left = m.hintText
	}
	right := fmt.Sprintf("%s · %s · v%s", m.sess.Format(), m.settings.SelectionHighlight, appver.AppVersion)
	return renderStatusBar(m.width, left, right) + "\n"
}

// modeKeys picks the help bindings for the current mode.
func (m model) modeKeys() modeKeys {
	k := m.keys
	var short []key.Binding
	var full [][]key.Binding
	switch m.sess.Mode() {
	case editor.Edit:
		short = []key.Binding{k.Leave, k.Backspace, k.Quit}
		full = [][]key.Binding{{k.Leave, k.Backspace, k.Delete}, {k.Quit}}
	case editor.Select:
		short = []key.Binding{k.Left, k.Right, k.Apply, k.Bold, k.Fg, k.Leave, k.Help}
		full = [][]key.Binding{
			{k.Left, k.Right, k.Up, k.Down, k.Home, k.End},
			{k.Apply, k.Bold, k.Italic, k.Underline, k.Strike, k.Dim},
			{k.Fg, k.Bg, k.Highlight, k.Export, k.Leave},
		}
	case editor.Color:
		short = []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Apply, k.Leave}
		full = [][]key.Binding{{k.Left, k.Right, k.Up, k.Down}, {k.Apply, k.Fg, k.Bg, k.Leave}}
	case editor.Export:
		short = []key.Binding{k.Copy, k.Format, k.Leave}
		full = [][]key.Binding{{k.Copy, k.Format, k.Leave}, {k.Up, k.Down}}
	default:
		short = []key.Binding{k.Insert, k.Select, k.Fg, k.Bg, k.Export, k.Help, k.Quit}
		full = [][]key.Binding{
			{k.Left, k.Right, k.Up, k.Down, k.Home, k.End},
			{k.Insert, k.Append, k.Select, k.Backspace, k.Delete},
			{k.Bold, k.Italic, k.Underline, k.Strike, k.Dim, k.Apply},
			{k.Fg, k.Bg, k.LoadStyle, k.ResetPen, k.Highlight},
			{k.Export, k.Paste, k.Help, k.Quit},
		}
	}
	return modeKeys{short: short, full: full}
}

// previewText makes an exported command readable: ESC bytes are shown as ^[
// and long lines are wrapped to width.
func previewText(cmd string, width int) string {
	visible := strings.ReplaceAll(cmd, "\x1b", "^[")
	return xansi.Hardwrap(visible, max(width, 10), true)
}

func paletteName(i int) string {
	if i < 0 || i >= style.PaletteSize {
		return "?"
	}
	return style.Palette()[i].String()
}

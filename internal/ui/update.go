package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"echopaint/internal/config"
	"echopaint/internal/editor"
	"echopaint/internal/layout"
	"echopaint/internal/system"
)

// zone ids
const (
	zoneEditor  = "paint.editor"
	zoneFg      = "paint.swatch.fg"
	zoneBg      = "paint.swatch.bg"
	zoneToolbar = "paint.toolbar"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		// Always allow quitting, whatever the mode
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) && m.sess.Mode() != editor.Edit {
			m.help.ShowAll = !m.help.ShowAll
			m.layout(m.width, m.height)
			return m, nil
		}
		cmd := m.handleKey(msg)
		m.layout(m.width, m.height)
		m.follow()
		return m, cmd
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case copiedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("copy failed: %w", msg.err))
		} else {
			m.lastExport = msg.command
			m.setNotice("✓ Copied to clipboard")
		}
		return m, nil
	case pastedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("paste failed: %w", msg.err))
			return m, nil
		}
		if err := m.sess.Import(msg.text); err != nil {
			m.setError(err)
			return m, nil
		}
		d := m.sess.Document()
		m.scroll = 0
		m.setNotice(fmt.Sprintf("Imported %d characters, %d styled runs", d.Len(), len(d.Runs())))
		system.Logger.Debug("imported from clipboard", "chars", d.Len())
		return m, nil
	case watchStartedMsg:
		m.watchCh = msg.ch
		return m, watchSubscribeCmd(m.watchCh, msg.path)
	case settingsMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("settings: %w", msg.err))
		} else {
			m.applySettings(msg.settings)
			m.layout(m.width, m.height)
			m.setNotice("Settings reloaded")
		}
		return m, watchSubscribeCmd(m.watchCh, m.settingsPath)
	}
	return m, nil
}

// handleKey routes a key press by mode. Failures become status notices.
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	var (
		err error
		cmd tea.Cmd
	)
	switch m.sess.Mode() {
	case editor.Edit:
		err = m.keyEdit(msg)
	case editor.Color:
		err = m.keyColor(msg)
	case editor.Export:
		cmd, err = m.keyExport(msg)
	default:
		cmd, err = m.keyNormal(msg)
	}
	if err != nil {
		m.setError(err)
	}
	return cmd
}

// keyNormal handles Normal and Select mode, which share most bindings.
func (m *model) keyNormal(msg tea.KeyMsg) (tea.Cmd, error) {
	s := m.sess
	k := m.keys
	selecting := s.Mode() == editor.Select
	switch {
	case key.Matches(msg, k.Left):
		return nil, s.Move(-1)
	case key.Matches(msg, k.Right):
		return nil, s.Move(1)
	case key.Matches(msg, k.Up):
		return nil, s.Move(-max(m.editorW, 1))
	case key.Matches(msg, k.Down):
		return nil, s.Move(max(m.editorW, 1))
	case key.Matches(msg, k.Home):
		return nil, s.MoveTo(0)
	case key.Matches(msg, k.End):
		return nil, s.MoveTo(s.Document().Len())
	case key.Matches(msg, k.Select):
		if err := s.StartSelection(); err != nil {
			return nil, err
		}
		if s.Mode() == editor.Select {
			m.setNotice("-- VISUAL --")
		} else {
			m.setNotice("")
		}
		return nil, nil
	case key.Matches(msg, k.Leave):
		m.setNotice("")
		return nil, s.Leave()
	case key.Matches(msg, k.Apply):
		if err := s.ApplyPen(); err != nil {
			return nil, err
		}
		m.setNotice("Style applied")
		return nil, nil
	case key.Matches(msg, k.Bold):
		return nil, m.toggle(s.ToggleBold, "Bold", func() bool { return s.Pen().Bold })
	case key.Matches(msg, k.Italic):
		return nil, m.toggle(s.ToggleItalic, "Italic", func() bool { return s.Pen().Italic })
	case key.Matches(msg, k.Underline):
		return nil, m.toggle(s.ToggleUnderline, "Underline", func() bool { return s.Pen().Underline })
	case key.Matches(msg, k.Strike):
		return nil, m.toggle(s.ToggleStrike, "Strikethrough", func() bool { return s.Pen().Strike })
	case key.Matches(msg, k.Dim):
		if err := s.CycleDim(); err != nil {
			return nil, err
		}
		m.setNotice(fmt.Sprintf("Dim level: %d", s.Pen().Dim))
		return nil, nil
	case key.Matches(msg, k.Fg):
		return nil, s.EnterColor(editor.Foreground)
	case key.Matches(msg, k.Bg):
		return nil, s.EnterColor(editor.Background)
	case key.Matches(msg, k.LoadStyle):
		if err := s.LoadStyleFromCursor(); err != nil {
			return nil, err
		}
		m.setNotice("Pen: " + s.Pen().String())
		return nil, nil
	case key.Matches(msg, k.ResetPen):
		s.ResetPen()
		m.setNotice("Pen reset")
		return nil, nil
	case key.Matches(msg, k.Highlight):
		m.toggleHighlight()
		return nil, nil
	case key.Matches(msg, k.Export):
		return m.export()
	}
	if selecting {
		return nil, nil
	}
	switch {
	case key.Matches(msg, k.Insert):
		m.setNotice("-- INSERT --")
		return nil, s.EnterEdit(false)
	case key.Matches(msg, k.Append):
		m.setNotice("-- INSERT --")
		return nil, s.EnterEdit(true)
	case key.Matches(msg, k.Backspace):
		return nil, s.DeleteBackward()
	case key.Matches(msg, k.Delete):
		return nil, s.DeleteForward()
	case key.Matches(msg, k.Paste):
		return pasteCmd(m.clip), nil
	}
	return nil, nil
}

func (m *model) keyEdit(msg tea.KeyMsg) error {
	s := m.sess
	switch msg.Type {
	case tea.KeyEsc:
		m.setNotice("")
		return s.Leave()
	case tea.KeyLeft:
		return s.Move(-1)
	case tea.KeyRight:
		return s.Move(1)
	case tea.KeyUp:
		return s.Move(-max(m.editorW, 1))
	case tea.KeyDown:
		return s.Move(max(m.editorW, 1))
	case tea.KeyHome:
		return s.MoveTo(0)
	case tea.KeyEnd:
		return s.MoveTo(s.Document().Len())
	case tea.KeyBackspace, tea.KeyCtrlH:
		// some terminals send ^H for backspace
		return s.DeleteBackward()
	case tea.KeyDelete:
		return s.DeleteForward()
	case tea.KeyEnter:
		return s.InsertChar('\n')
	case tea.KeyTab:
		return s.InsertChar('\t')
	case tea.KeySpace:
		return s.InsertChar(' ')
	case tea.KeyRunes:
		return s.InsertText(string(msg.Runes))
	}
	return nil
}

func (m *model) keyColor(msg tea.KeyMsg) error {
	s := m.sess
	k := m.keys
	switch {
	case key.Matches(msg, k.Left):
		return s.MoveSwatch(-1, 0)
	case key.Matches(msg, k.Right):
		return s.MoveSwatch(1, 0)
	case key.Matches(msg, k.Up):
		return s.MoveSwatch(0, -1)
	case key.Matches(msg, k.Down):
		return s.MoveSwatch(0, 1)
	case key.Matches(msg, k.Apply):
		if err := s.ChooseSwatch(); err != nil {
			return err
		}
		t, i := s.Picker()
		m.setNotice(fmt.Sprintf("%s: %s", t, paletteName(i)))
		return nil
	case key.Matches(msg, k.Fg):
		return s.EnterColor(editor.Foreground)
	case key.Matches(msg, k.Bg):
		return s.EnterColor(editor.Background)
	case key.Matches(msg, k.Leave):
		m.setNotice("")
		return s.Leave()
	}
	return nil
}

func (m *model) keyExport(msg tea.KeyMsg) (tea.Cmd, error) {
	s := m.sess
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.setNotice("")
		return nil, s.Leave()
	case key.Matches(msg, m.keys.Format):
		next := "escaped"
		if s.Format() == "escaped" {
			next = "raw"
		}
		m.settings.ExportFormat = next
		m.applySettings(m.settings.Normalize())
		m.refreshPreview()
		m.setNotice("Format: " + next)
		return nil, nil
	case key.Matches(msg, m.keys.Copy):
		snap, err := s.RequestExport()
		if err != nil {
			return nil, err
		}
		return copyCmd(m.clip, snap, s.Format()), nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return cmd, nil
}

// export enters Export mode, fills the preview and copies when configured.
func (m *model) export() (tea.Cmd, error) {
	snap, err := m.sess.RequestExport()
	if err != nil {
		return nil, err
	}
	m.refreshPreview()
	m.layout(m.width, m.height)
	if !m.settings.CopyOnExport {
		m.setNotice("c copy · tab format · esc back")
		return nil, nil
	}
	return copyCmd(m.clip, snap, m.sess.Format()), nil
}

func (m *model) refreshPreview() {
	m.lastExport = m.sess.Command()
	m.preview.SetContent(previewText(m.lastExport, m.preview.Width))
	m.preview.GotoTop()
}

func (m *model) toggle(fn func() error, name string, on func() bool) error {
	if err := fn(); err != nil {
		return err
	}
	state := "OFF"
	if on() {
		state = "ON"
	}
	m.setNotice(name + ": " + state)
	return nil
}

func (m *model) toggleHighlight() {
	if m.settings.SelectionHighlight == config.HighlightUnderline {
		m.settings.SelectionHighlight = config.HighlightReversed
	} else {
		m.settings.SelectionHighlight = config.HighlightUnderline
	}
	m.setNotice("Selection highlight: " + m.settings.SelectionHighlight)
}

// handleMouse maps presses and drags through the marked zones.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	p := layout.Point{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionRelease:
		m.dragging = false
		return m, nil
	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		if z := zone.Get(zoneEditor); z != nil && !z.IsZero() {
			m.dragEditor(p, layout.Point{X: z.StartX, Y: z.StartY})
		}
		return m, nil
	}
	for _, id := range []string{zoneEditor, zoneFg, zoneBg, zoneToolbar} {
		z := zone.Get(id)
		if z == nil || !z.InBounds(msg) {
			continue
		}
		cmd, err := m.click(id, p, layout.Point{X: z.StartX, Y: z.StartY})
		if err != nil {
			m.setError(err)
		}
		m.layout(m.width, m.height)
		m.follow()
		return m, cmd
	}
	return m, nil
}

// click handles a press at p inside zone id whose top-left is origin.
func (m *model) click(id string, p, origin layout.Point) (tea.Cmd, error) {
	s := m.sess
	switch id {
	case zoneEditor:
		if md := s.Mode(); md == editor.Color || md == editor.Export {
			if err := s.Leave(); err != nil {
				return nil, err
			}
		}
		if s.Mode() == editor.Select {
			if err := s.ClearSelection(); err != nil {
				return nil, err
			}
		}
		pos := layout.TextPosition(p, origin, layout.Size{W: m.editorW, H: m.editorH}, m.scroll, s.Document().Len())
		m.dragging = s.Mode() == editor.Normal
		return nil, s.MoveTo(pos)
	case zoneFg, zoneBg:
		i, ok := layout.ColorIndex(p, origin, m.settings.LayoutGrid())
		if !ok {
			return nil, nil
		}
		t := editor.Foreground
		if id == zoneBg {
			t = editor.Background
		}
		if s.Mode() == editor.Export {
			if err := s.Leave(); err != nil {
				return nil, err
			}
		}
		if err := s.PickSwatch(t, i); err != nil {
			return nil, err
		}
		m.setNotice(fmt.Sprintf("%s: %s (mouse)", t, paletteName(i)))
		return nil, nil
	case zoneToolbar:
		a, ok := layout.FormatOption(p, origin, layout.DefaultButtons)
		if !ok {
			return nil, nil
		}
		if a == layout.Export {
			return m.export()
		}
		if s.Mode() == editor.Export {
			if err := s.Leave(); err != nil {
				return nil, err
			}
		}
		if err := s.Toolbar(a); err != nil {
			return nil, err
		}
		m.setNotice(a.String() + " (mouse)")
		return nil, nil
	}
	return nil, errors.New("unknown zone " + id)
}

// dragEditor extends a mouse selection to p.
func (m *model) dragEditor(p, origin layout.Point) {
	s := m.sess
	pos := layout.TextPosition(p, origin, layout.Size{W: m.editorW, H: m.editorH}, m.scroll, s.Document().Len())
	if s.Mode() == editor.Normal {
		if pos == s.Document().Cursor() {
			return
		}
		if err := s.StartSelection(); err != nil {
			m.setError(err)
			return
		}
		m.setNotice("-- VISUAL (mouse) --")
	}
	if err := s.MoveTo(pos); err != nil {
		m.setError(err)
	}
}

// follow scrolls the editor so the cursor row stays visible.
func (m *model) follow() {
	if m.editorH <= 0 {
		return
	}
	row := cursorRow(m.sess.Document(), m.editorW)
	switch {
	case row < m.scroll:
		m.scroll = row
	case row >= m.scroll+m.editorH:
		m.scroll = row - m.editorH + 1
	}
}

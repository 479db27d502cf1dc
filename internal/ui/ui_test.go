package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"echopaint/internal/config"
	"echopaint/internal/doc"
	"echopaint/internal/editor"
	"echopaint/internal/layout"
	"echopaint/internal/style"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadText() (string, error) { return c.text, c.err }

func (c *fakeClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

func newTestModel(t *testing.T, text string, cb *fakeClipboard) model {
	t.Helper()
	m := initialModel(Options{Text: text, Clipboard: cb})
	m.layout(80, 30)
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// press feeds keys through Update and runs any returned command once.
func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = next.(model)
		if cmd != nil {
			if msg := cmd(); msg != nil {
				if _, isBatch := msg.(tea.BatchMsg); !isBatch {
					next, _ = m.Update(msg)
					m = next.(model)
				}
			}
		}
	}
	return m
}

func TestTypeStyleAndExport(t *testing.T) {
	cb := &fakeClipboard{}
	m := newTestModel(t, "", cb)
	m = press(m, runes("i"), runes("a"), runes("b"), runes("c"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.sess.Mode() != editor.Normal || m.sess.Document().Text() != "abc" {
		t.Fatalf("mode=%s text=%q", m.sess.Mode(), m.sess.Document().Text())
	}
	// select all and colour it green via the picker
	m = press(m, runes("0"), runes("v"), runes("$"), runes("f"))
	for i := 0; i < int(style.Green); i++ {
		m = press(m, runes("l"))
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.sess.Mode() != editor.Normal {
		t.Fatalf("mode=%s", m.sess.Mode())
	}
	m = press(m, runes("e"))
	if m.sess.Mode() != editor.Export {
		t.Fatalf("mode=%s after export", m.sess.Mode())
	}
	if cb.text != "echo '\x1b[32mabc\x1b[0m'" {
		t.Fatalf("clipboard=%q", cb.text)
	}
	if !strings.Contains(m.notice, "Copied") {
		t.Fatalf("notice=%q", m.notice)
	}
}

func TestExportFormatToggle(t *testing.T) {
	cb := &fakeClipboard{}
	m := newTestModel(t, "hi!", cb)
	m = press(m, runes("e"), tea.KeyMsg{Type: tea.KeyTab})
	if m.sess.Format() != "escaped" {
		t.Fatalf("format=%s", m.sess.Format())
	}
	if !strings.Contains(m.lastExport, `echo -e "hi\x21"`) {
		t.Fatalf("preview=%q", m.lastExport)
	}
	m = press(m, runes("c"))
	if cb.text != `echo -e "hi\x21"` {
		t.Fatalf("clipboard=%q", cb.text)
	}
}

func TestCopyFailureBecomesNotice(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no display")}
	m := newTestModel(t, "x", cb)
	m = press(m, runes("e"))
	if !m.noticeErr || !strings.Contains(m.notice, "no display") {
		t.Fatalf("notice=%q err=%v", m.notice, m.noticeErr)
	}
}

func TestPasteImports(t *testing.T) {
	cb := &fakeClipboard{text: "echo '\x1b[1mhey\x1b[0m'"}
	m := newTestModel(t, "old", cb)
	m = press(m, runes("p"))
	d := m.sess.Document()
	if d.Text() != "hey" {
		t.Fatalf("text=%q", d.Text())
	}
	if got := d.StyleAt(1); !got.Bold {
		t.Fatalf("StyleAt(1)=%v", got)
	}
}

func TestCtrlHDeletesAndShiftHTogglesHighlight(t *testing.T) {
	m := newTestModel(t, "", &fakeClipboard{})
	ctrlH := tea.KeyMsg{Type: tea.KeyCtrlH}
	m = press(m, runes("i"), runes("a"), runes("b"), runes("c"), ctrlH)
	if got := m.sess.Document().Text(); got != "ab" {
		t.Fatalf("edit ^H: text=%q", got)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	before := m.settings.SelectionHighlight
	m = press(m, runes("$"), ctrlH)
	if got := m.sess.Document().Text(); got != "a" {
		t.Fatalf("normal ^H: text=%q", got)
	}
	if m.settings.SelectionHighlight != before {
		t.Fatalf("^H toggled the highlight")
	}
	m = press(m, runes("H"))
	if m.settings.SelectionHighlight == before {
		t.Fatalf("H did not toggle the highlight")
	}
}

func TestExportModeIgnoresFormatting(t *testing.T) {
	m := newTestModel(t, "abc", &fakeClipboard{})
	m = press(m, runes("e"), runes("b"))
	if m.sess.Pen().Bold {
		t.Fatalf("bold toggled in export mode")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.sess.Mode() != editor.Normal {
		t.Fatalf("mode=%s", m.sess.Mode())
	}
}

func TestClickMapping(t *testing.T) {
	m := newTestModel(t, strings.Repeat("x", 200), &fakeClipboard{})
	origin := layout.Point{X: 1, Y: 3}

	if _, err := m.click(zoneEditor, layout.Point{X: 6, Y: 4}, origin); err != nil {
		t.Fatalf("click editor: %v", err)
	}
	if want := m.editorW + 5; m.sess.Document().Cursor() != want {
		t.Fatalf("cursor=%d, want %d", m.sess.Document().Cursor(), want)
	}

	// fifth swatch on the second row of the bg grid
	if _, err := m.click(zoneBg, layout.Point{X: 1 + 4*4, Y: 4}, origin); err != nil {
		t.Fatalf("click swatch: %v", err)
	}
	if got := m.sess.Pen().Bg; got != style.Palette()[13] {
		t.Fatalf("pen bg=%s", got)
	}
	if got := m.sess.Document().StyleAt(m.sess.Document().Cursor()).Bg; got != style.Palette()[13] {
		t.Fatalf("clicked colour not applied, got %s", got)
	}

	if _, err := m.click(zoneToolbar, layout.Point{X: 11, Y: 3}, origin); err != nil {
		t.Fatalf("click toolbar: %v", err)
	}
	if !m.sess.Pen().Italic {
		t.Fatalf("italic button did not toggle")
	}
	// a miss is not an error
	if _, err := m.click(zoneFg, layout.Point{X: 200, Y: 3}, origin); err != nil {
		t.Fatalf("miss reported error: %v", err)
	}
}

func TestDragSelects(t *testing.T) {
	m := newTestModel(t, "hello world", &fakeClipboard{})
	origin := layout.Point{X: 1, Y: 3}
	if _, err := m.click(zoneEditor, layout.Point{X: 1, Y: 3}, origin); err != nil {
		t.Fatal(err)
	}
	m.dragEditor(layout.Point{X: 5, Y: 3}, origin)
	s, e, ok := m.sess.Document().Selection()
	if !ok || s != 0 || e != 5 {
		t.Fatalf("selection=[%d,%d) ok=%v", s, e, ok)
	}
	if m.sess.Mode() != editor.Select {
		t.Fatalf("mode=%s", m.sess.Mode())
	}
}

func TestRenderDocumentGeometry(t *testing.T) {
	d := doc.New("abcdefgh\tz")
	d.SetCursor(0)
	out := renderDocument(d, editorView{width: 4, rows: 3, mode: editor.Normal, highlight: config.HighlightReversed})
	lines := strings.Split(xansi.Strip(out), "\n")
	want := []string{"abcd", "efgh", "→z  "}
	if len(lines) != len(want) {
		t.Fatalf("lines=%q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d=%q, want %q", i, lines[i], want[i])
		}
	}
	scrolled := xansi.Strip(renderDocument(d, editorView{width: 4, rows: 1, scroll: 2}))
	if scrolled != "→z  " {
		t.Fatalf("scrolled=%q", scrolled)
	}
}

func TestRenderToolbarMatchesButtons(t *testing.T) {
	out := xansi.Strip(renderToolbar(layout.DefaultButtons, style.Attrs{}))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%q", lines)
	}
	for _, ln := range lines {
		if w := xansi.StringWidth(ln); w != 3*layout.ButtonWidth {
			t.Fatalf("toolbar row width=%d: %q", w, ln)
		}
	}
	if !strings.Contains(lines[0], "Bold") || !strings.Contains(lines[1], "Export") {
		t.Fatalf("labels misplaced: %q", lines)
	}
}

func TestRenderStatusBarFits(t *testing.T) {
	out := renderStatusBar(20, strings.Repeat("long hint ", 5), "raw · v1")
	if w := xansi.StringWidth(out); w != 20 {
		t.Fatalf("width=%d: %q", w, xansi.Strip(out))
	}
}

func TestSettingsReload(t *testing.T) {
	m := newTestModel(t, "x", &fakeClipboard{})
	s := config.Default()
	s.ExportFormat = "escaped"
	next, _ := m.Update(settingsMsg{settings: s})
	m = next.(model)
	if m.sess.Format() != "escaped" {
		t.Fatalf("format=%s", m.sess.Format())
	}
}

func TestKeyReferenceListsBindings(t *testing.T) {
	md := KeyReference()
	for _, want := range []string{"## Styling", "`b`", "`tab`", "`ctrl+q`", "raw/escaped"} {
		if !strings.Contains(md, want) {
			t.Fatalf("key reference missing %q", want)
		}
	}
	out, err := RenderMarkdown(md, 80)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(xansi.Strip(out), "Styling") {
		t.Fatalf("rendered output lost headings")
	}
}

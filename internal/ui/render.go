package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"echopaint/internal/config"
	"echopaint/internal/doc"
	"echopaint/internal/editor"
	"echopaint/internal/layout"
	"echopaint/internal/style"
)

// paletteColor maps a palette entry to a terminal colour; None has no colour.
func paletteColor(c style.Color) (lipgloss.Color, bool) {
	i := c.ANSIIndex()
	if i < 0 {
		return "", false
	}
	return lipgloss.Color(strconv.Itoa(i)), true
}

// attrStyle converts document attributes to a lipgloss style for preview.
func attrStyle(a style.Attrs) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := paletteColor(a.Fg); ok {
		st = st.Foreground(c)
	}
	if c, ok := paletteColor(a.Bg); ok {
		st = st.Background(c)
	}
	return st.
		Bold(a.Bold).
		Faint(a.Dim > 0).
		Italic(a.Italic).
		Underline(a.Underline).
		Strikethrough(a.Strike)
}

// displayRune keeps every document character one cell wide so screen
// columns line up with document offsets.
func displayRune(r rune) string {
	switch {
	case r == '\n':
		return "↵"
	case r == '\t':
		return "→"
	case r < 0x20 || r == 0x7f:
		return "·"
	case runewidth.RuneWidth(r) != 1:
		return "□"
	}
	return string(r)
}

// cellKind marks how a document cell is decorated on top of its style.
type cellKind int

const (
	cellPlain cellKind = iota
	cellSelected
	cellCursor
)

// editorView describes the visible editor window.
type editorView struct {
	width, rows, scroll int
	mode                editor.Mode
	highlight           string
}

// renderDocument draws rows lines of exactly width cells. Offset i is drawn
// at row i/width, column i%width, matching layout.TextPosition.
func renderDocument(d *doc.Document, v editorView) string {
	if v.width <= 0 || v.rows <= 0 {
		return ""
	}
	text := []rune(d.Text())
	runs := d.Runs()
	cursor := d.Cursor()
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if v.mode == editor.Edit {
		cursorStyle = lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(Vitesse.Primary)
	}

	var b strings.Builder
	ri := 0
	for row := 0; row < v.rows; row++ {
		start := (v.scroll + row) * v.width
		var line strings.Builder
		cells := 0
		// group consecutive cells sharing style and decoration
		var seg strings.Builder
		var segAttrs style.Attrs
		segKind := cellPlain
		flush := func() {
			if seg.Len() == 0 {
				return
			}
			st := attrStyle(segAttrs)
			switch segKind {
			case cellSelected:
				if v.highlight == config.HighlightUnderline {
					st = st.Underline(true)
				} else {
					st = st.Reverse(true)
				}
			case cellCursor:
				st = cursorStyle
			}
			line.WriteString(st.Render(seg.String()))
			seg.Reset()
		}
		for col := 0; col < v.width; col++ {
			pos := start + col
			if pos > len(text) {
				break
			}
			for ri < len(runs) && runs[ri].End <= pos {
				ri++
			}
			var a style.Attrs
			if ri < len(runs) && runs[ri].Start <= pos {
				a = runs[ri].Attrs
			}
			kind := cellPlain
			switch {
			case pos == cursor:
				kind = cellCursor
			case d.Selected(pos):
				kind = cellSelected
			}
			if a != segAttrs || kind != segKind || kind == cellCursor {
				flush()
				segAttrs, segKind = a, kind
			}
			if pos == len(text) {
				if kind == cellCursor {
					seg.WriteString(" ")
					cells++
				}
				break
			}
			seg.WriteString(displayRune(text[pos]))
			cells++
		}
		flush()
		if pad := v.width - cells; pad > 0 {
			line.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(line.String())
		if row < v.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// cursorRow is the wrapped row holding the cursor.
func cursorRow(d *doc.Document, width int) int {
	if width <= 0 {
		return 0
	}
	return d.Cursor() / width
}

// swatchLabelColor picks a readable label colour over a swatch.
func swatchLabelColor(c style.Color) lipgloss.Color {
	switch c {
	case style.White, style.Gray, style.LightYellow, style.LightGreen, style.LightCyan, style.Yellow, style.Cyan:
		return lipgloss.Color("0")
	}
	return lipgloss.Color("15")
}

// renderSwatches draws the palette grid for one colour target. chosen is the
// swatch matching the pen; cursor is the picker position, or -1.
func renderSwatches(g layout.Grid, chosen, cursor int) string {
	var rows []string
	for r := 0; r < g.Rows; r++ {
		var line strings.Builder
		for c := 0; c < g.Cols; c++ {
			i := r*g.Cols + c
			if i >= g.Count {
				line.WriteString(strings.Repeat(" ", g.CellW))
				continue
			}
			col := style.Palette()[i]
			label := ""
			switch {
			case i == chosen && i == cursor:
				label = "[●]"
			case i == chosen:
				label = "●"
			case i == cursor:
				label = "[ ]"
			case col == style.None:
				label = "∅"
			}
			st := lipgloss.NewStyle().Width(g.CellW).MaxWidth(g.CellW).Align(lipgloss.Center)
			if bg, ok := paletteColor(col); ok {
				st = st.Background(bg).Foreground(swatchLabelColor(col))
			} else {
				st = st.Foreground(Vitesse.Muted)
			}
			line.WriteString(st.Render(label))
		}
		rows = append(rows, line.String())
	}
	return strings.Join(rows, "\n")
}

// toolbarLabel is the text of a toolbar button given the pen.
func toolbarLabel(a layout.FormatAction, pen style.Attrs) (string, bool) {
	switch a {
	case layout.ToggleBold:
		return "B Bold", pen.Bold
	case layout.ToggleItalic:
		return "I Italic", pen.Italic
	case layout.ToggleUnderline:
		return "U Under", pen.Underline
	case layout.ToggleStrike:
		return "S Strike", pen.Strike
	case layout.CycleDim:
		return fmt.Sprintf("D Dim %d", pen.Dim), pen.Dim > 0
	case layout.Export:
		return "E Export", false
	}
	return a.String(), false
}

// renderToolbar draws the buttons at their layout rectangles so clicks map
// back through layout.FormatOption.
func renderToolbar(buttons []layout.Button, pen style.Attrs) string {
	rows := map[int][]layout.Button{}
	maxRow := 0
	for _, b := range buttons {
		rows[b.Rect.Y] = append(rows[b.Rect.Y], b)
		maxRow = max(maxRow, b.Rect.Y)
	}
	var out []string
	for y := 0; y <= maxRow; y++ {
		var line strings.Builder
		x := 0
		for _, b := range rows[y] {
			if b.Rect.X > x {
				line.WriteString(strings.Repeat(" ", b.Rect.X-x))
			}
			label, on := toolbarLabel(b.Action, pen)
			st := lipgloss.NewStyle().Width(b.Rect.W).MaxWidth(b.Rect.W).Align(lipgloss.Center)
			if on {
				st = st.Bold(true).Foreground(Vitesse.OnAccent).Background(Vitesse.Primary)
			} else {
				st = st.Foreground(Vitesse.Secondary).Background(Vitesse.BgSoft)
			}
			line.WriteString(st.Render(label))
			x = b.Rect.X + b.Rect.W
		}
		out = append(out, line.String())
	}
	return strings.Join(out, "\n")
}

// penSample shows the pen applied to a short sample.
func penSample(pen style.Attrs) string {
	return attrStyle(pen).Render(" Sample ") + "  " + lipgloss.NewStyle().Foreground(Vitesse.Muted).Render(pen.String())
}

// renderStatusBar draws a single-line status bar at the given width with
// left and right aligned content. The left part is truncated first.
func renderStatusBar(width int, left, right string) string {
	w := width
	if w <= 0 {
		w = 100
	}
	rw := xansi.StringWidth(right)
	if rw > w {
		right = xansi.Truncate(right, w, "")
		rw = xansi.StringWidth(right)
	}
	if maxL := w - rw - 1; runewidth.StringWidth(left) > maxL {
		left = runewidth.Truncate(left, max(maxL, 0), "…")
	}
	pad := max(w-runewidth.StringWidth(left)-rw, 0)
	return StatusBarBase().Render(left + strings.Repeat(" ", pad) + right)
}

// panel frames content with a rounded border and a title.
func panel(title, content string, focused bool) string {
	border := Vitesse.Border
	if focused {
		border = Vitesse.Primary
	}
	head := lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Secondary).Render(title)
	if focused {
		head = AccentBold().Render(title)
	}
	return head + "\n" + lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(content)
}

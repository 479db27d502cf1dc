package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	ansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
)

// KeyReference returns the key bindings of every mode as a markdown document.
func KeyReference() string {
	k := defaultKeyMap()
	sections := []struct {
		title string
		keys  []key.Binding
	}{
		{"Moving", []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Home, k.End}},
		{"Editing", []key.Binding{k.Insert, k.Append, k.Backspace, k.Delete, k.Leave}},
		{"Selecting", []key.Binding{k.Select, k.Apply, k.Highlight}},
		{"Styling", []key.Binding{k.Bold, k.Italic, k.Underline, k.Strike, k.Dim, k.Fg, k.Bg, k.LoadStyle, k.ResetPen}},
		{"Export", []key.Binding{k.Export, k.Format, k.Copy, k.Paste}},
		{"General", []key.Binding{k.Help, k.Quit}},
	}
	var b strings.Builder
	b.WriteString("# echopaint keys\n\n")
	b.WriteString("In **INSERT** mode letters are typed; use `esc` to get back to **NORMAL**.\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", s.title)
		for _, kb := range s.keys {
			h := kb.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", strings.Join(kb.Keys(), "` `"), h.Desc)
		}
	}
	b.WriteString("\nMouse: click text to move the cursor, drag to select, click swatches and buttons to style.\n")
	return b.String()
}

// RenderMarkdown renders md for the terminal with the Vitesse palette.
func RenderMarkdown(md string, width int) (string, error) {
	// leave room for the glamour gutter
	wrap := max(width-2, 20)
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(vitesseGlamour()),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// vitesseGlamour adapts the design palette to a glamour style config.
func vitesseGlamour() ansi.StyleConfig {
	hex := func(c lipgloss.Color) string {
		s := string(c)
		if strings.HasPrefix(s, "#") && len(s) == 9 { // #RRGGBBAA
			return s[:7]
		}
		return s
	}
	sp := func(s string) *string { return &s }
	bp := func(b bool) *bool { return &b }

	text := hex(Vitesse.Text)
	secondary := hex(Vitesse.Secondary)
	blue := hex(Vitesse.Blue)
	yellow := hex(Vitesse.Yellow)
	bgSoft := hex(Vitesse.BgSoft)
	heading := ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: sp(blue), Bold: bp(true)}}

	return ansi.StyleConfig{
		Document:  ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: sp(text)}},
		Paragraph: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: sp(text)}},
		Heading:   heading,
		H1:        heading,
		H2:        heading,
		H3:        heading,
		Text:      ansi.StylePrimitive{Color: sp(text)},
		Emph:      ansi.StylePrimitive{Italic: bp(true)},
		Strong:    ansi.StylePrimitive{Bold: bp(true)},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: sp(yellow), BackgroundColor: sp(bgSoft)},
		},
		Table: ansi.StyleTable{
			StyleBlock:      ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: sp(text)}},
			CenterSeparator: sp("│"),
			ColumnSeparator: sp("│"),
			RowSeparator:    sp("─"),
		},
		HorizontalRule: ansi.StylePrimitive{Color: sp(secondary)},
	}
}

package ui

import (
	"github.com/charmbracelet/lipgloss"

	"echopaint/internal/editor"
)

// Design centralizes the TUI color palette and common styles.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	// Core brand/semantic colors
	Primary lipgloss.Color // #4d9375
	Blue    lipgloss.Color // #6394bf
	Yellow  lipgloss.Color // #e6cc77
	Magenta lipgloss.Color // #d9739f
	Cyan    lipgloss.Color // #5eaab5
	Red     lipgloss.Color // #cb7676

	// Text colors
	Text      lipgloss.Color // #dbd7caee
	Secondary lipgloss.Color // #bfbaaa
	Muted     lipgloss.Color // #dedcd590

	// Surfaces
	Bg     lipgloss.Color // #222
	BgSoft lipgloss.Color // #292929
	Border lipgloss.Color // #252525

	// Text on accent backgrounds (chips, active toolbar buttons)
	OnAccent lipgloss.Color // #222 (vitesse button.foreground)

	// Status bar colors
	BarFG lipgloss.AdaptiveColor // light/dark
	BarBG lipgloss.AdaptiveColor // light/dark
}

// Vitesse defines the current global design theme for the TUI.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Magenta: lipgloss.Color("#d9739f"),
	Cyan:    lipgloss.Color("#5eaab5"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),

	Bg:     lipgloss.Color("#181818"),
	BgSoft: lipgloss.Color("#292929"),
	Border: lipgloss.Color("#252525"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// Convenience style helpers

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// modeColors gives every editor mode its own chip colour.
var modeColors = map[editor.Mode]lipgloss.Color{
	editor.Normal: Vitesse.Primary,
	editor.Edit:   Vitesse.Yellow,
	editor.Select: Vitesse.Magenta,
	editor.Color:  Vitesse.Cyan,
	editor.Export: Vitesse.Blue,
}

// ModeChip renders the mode name as the left-most status bar chip.
func ModeChip(m editor.Mode) string {
	bg, ok := modeColors[m]
	if !ok {
		bg = Vitesse.Primary
	}
	return ChipStyle(bg).Bold(true).Render(m.String())
}

// ChipStyle returns a style for colored nuggets (right/left segments).
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

// ErrorText styles a failed-operation notice.
func ErrorText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Red)
}

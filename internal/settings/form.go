// Package settings is the interactive editor for the settings file.
package settings

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"echopaint/internal/config"
	"echopaint/internal/export"
	"echopaint/internal/style"
)

// Run loads the settings at path, lets the user edit them in a form and
// saves the result on submit.
func Run(path string) error {
	s, err := config.Load(path)
	if err != nil {
		// a broken file is replaced by what the user submits
		fmt.Printf("! %v, starting from defaults\n", err)
	}
	if err := NewForm(&s).Run(); err != nil {
		return err // form canceled or failed
	}
	// rows follow from the chosen column count
	s.Grid.Rows = 0
	s = s.Normalize()
	if err := config.Save(path, s); err != nil {
		return err
	}
	fmt.Printf("\n✓ Saved %s\n\n", path)
	return nil
}

// NewForm binds a form to s. Submitted values are written straight into s.
func NewForm(s *config.Settings) *huh.Form {
	// Light theme tweaks inspired by freeze/interactive.go
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Settings").Description("Defaults for the echopaint editor"),
			huh.NewSelect[string]().
				Title("Export format").
				Options(
					huh.NewOption("raw   echo '…'", string(export.FormatRaw)),
					huh.NewOption("escaped   echo -e \"…\"", string(export.FormatEscaped)),
				).
				Value(&s.ExportFormat),
			huh.NewConfirm().
				Title("Copy on export").
				Value(&s.CopyOnExport),
			huh.NewSelect[string]().
				Title("Selection").
				Options(
					huh.NewOption("reversed", config.HighlightReversed),
					huh.NewOption("underline", config.HighlightUnderline),
				).
				Value(&s.SelectionHighlight),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Swatch columns").
				Options(columnOptions()...).
				Value(&s.Grid.Columns),
			huh.NewSelect[int]().
				Title("Swatch width").
				Options(huh.NewOptions(2, 3, 4, 5, 6, 7, 8)...).
				Value(&s.Grid.CellWidth),
		),
	).WithTheme(theme).WithWidth(60)
}

// columnOptions lists the column counts that keep every swatch on screen,
// each labelled with the row count it produces.
func columnOptions() []huh.Option[int] {
	var opts []huh.Option[int]
	for cols := 3; cols <= style.PaletteSize; cols++ {
		rows := (style.PaletteSize + cols - 1) / cols
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d (%d rows)", cols, rows), cols))
	}
	return opts
}

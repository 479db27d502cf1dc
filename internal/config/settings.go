package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"echopaint/internal/export"
	"echopaint/internal/layout"
	"echopaint/internal/style"
)

// Selection highlight styles.
const (
	HighlightReversed  = "reversed"
	HighlightUnderline = "underline"
)

// Settings is the user configuration stored in settings.yaml.
type Settings struct {
	ExportFormat       string `yaml:"export_format" json:"export_format" jsonschema:"enum=raw,enum=escaped,default=raw,description=Command style produced on export"`
	SelectionHighlight string `yaml:"selection_highlight" json:"selection_highlight" jsonschema:"enum=reversed,enum=underline,default=reversed,description=How the selection is drawn"`
	CopyOnExport       bool   `yaml:"copy_on_export" json:"copy_on_export" jsonschema:"default=true,description=Copy the command to the clipboard on export"`
	Grid               Grid   `yaml:"grid" json:"grid"`
}

// Grid sizes the colour swatch grid.
type Grid struct {
	Columns   int `yaml:"columns" json:"columns" jsonschema:"minimum=1,maximum=17,default=9"`
	Rows      int `yaml:"rows" json:"rows" jsonschema:"minimum=1,maximum=17,default=2"`
	CellWidth int `yaml:"cell_width" json:"cell_width" jsonschema:"minimum=2,maximum=8,default=4"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ExportFormat:       string(export.FormatRaw),
		SelectionHighlight: HighlightReversed,
		CopyOnExport:       true,
		Grid: Grid{
			Columns:   layout.DefaultGrid.Cols,
			Rows:      layout.DefaultGrid.Rows,
			CellWidth: layout.DefaultGrid.CellW,
		},
	}
}

// Normalize replaces invalid values with defaults and grows the grid so
// every swatch fits.
func (s Settings) Normalize() Settings {
	def := Default()
	if f, err := export.ParseFormat(s.ExportFormat); err == nil {
		s.ExportFormat = string(f)
	} else {
		s.ExportFormat = def.ExportFormat
	}
	switch h := strings.ToLower(strings.TrimSpace(s.SelectionHighlight)); h {
	case HighlightReversed, HighlightUnderline:
		s.SelectionHighlight = h
	default:
		s.SelectionHighlight = def.SelectionHighlight
	}
	if s.Grid.Columns <= 0 {
		s.Grid.Columns = def.Grid.Columns
	}
	s.Grid.Columns = min(s.Grid.Columns, style.PaletteSize)
	need := (style.PaletteSize + s.Grid.Columns - 1) / s.Grid.Columns
	if s.Grid.Rows < need {
		s.Grid.Rows = need
	}
	switch {
	case s.Grid.CellWidth <= 0:
		s.Grid.CellWidth = def.Grid.CellWidth
	case s.Grid.CellWidth < 2:
		s.Grid.CellWidth = 2
	case s.Grid.CellWidth > 8:
		s.Grid.CellWidth = 8
	}
	return s
}

// Format is the parsed export format.
func (s Settings) Format() export.Format {
	f, err := export.ParseFormat(s.ExportFormat)
	if err != nil {
		return export.FormatRaw
	}
	return f
}

// LayoutGrid converts the grid settings for coordinate mapping.
func (s Settings) LayoutGrid() layout.Grid {
	return layout.Grid{
		Cols:  s.Grid.Columns,
		Rows:  s.Grid.Rows,
		CellW: s.Grid.CellWidth,
		CellH: 1,
		Count: style.PaletteSize,
	}
}

// Load reads settings from path. A missing file yields the defaults and no
// error. Fields absent from the file keep their default values.
func Load(path string) (Settings, error) {
	s := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return s.Normalize(), nil
}

// LoadDefault reads settings from SettingsPath.
func LoadDefault() (Settings, string, error) {
	p, err := SettingsPath()
	if err != nil {
		return Default(), "", err
	}
	s, err := Load(p)
	return s, p, err
}

// Save writes normalised settings to path, creating parent dirs.
func Save(path string, s Settings) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(s.Normalize())
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

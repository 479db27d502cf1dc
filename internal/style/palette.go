package style

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Color is an entry of the fixed swatch palette. The zero value is None,
// which leaves the terminal default in place.
type Color uint8

const (
	None Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	DarkGray
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	Gray
)

// swatch is one row of the static colour table.
type swatch struct {
	Name string
	Fg   int // SGR foreground code
	Bg   int // SGR background code
}

// table is indexed by Color. The codes are fixed and never computed.
var table = [...]swatch{
	None:         {Name: "None", Fg: 39, Bg: 49},
	Black:        {Name: "Black", Fg: 30, Bg: 40},
	Red:          {Name: "Red", Fg: 31, Bg: 41},
	Green:        {Name: "Green", Fg: 32, Bg: 42},
	Yellow:       {Name: "Yellow", Fg: 33, Bg: 43},
	Blue:         {Name: "Blue", Fg: 34, Bg: 44},
	Magenta:      {Name: "Magenta", Fg: 35, Bg: 45},
	Cyan:         {Name: "Cyan", Fg: 36, Bg: 46},
	White:        {Name: "White", Fg: 37, Bg: 47},
	DarkGray:     {Name: "DarkGray", Fg: 90, Bg: 100},
	LightRed:     {Name: "LightRed", Fg: 91, Bg: 101},
	LightGreen:   {Name: "LightGreen", Fg: 92, Bg: 102},
	LightYellow:  {Name: "LightYellow", Fg: 93, Bg: 103},
	LightBlue:    {Name: "LightBlue", Fg: 94, Bg: 104},
	LightMagenta: {Name: "LightMagenta", Fg: 95, Bg: 105},
	LightCyan:    {Name: "LightCyan", Fg: 96, Bg: 106},
	Gray:         {Name: "Gray", Fg: 97, Bg: 107},
}

// PaletteSize is the number of swatches including None.
const PaletteSize = len(table)

// Palette returns all colours in swatch order (None first).
func Palette() []Color {
	out := make([]Color, PaletteSize)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}

// Valid reports whether c is a palette entry.
func (c Color) Valid() bool { return int(c) < PaletteSize }

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return table[c].Name
}

// FgCode returns the SGR foreground code for c.
func (c Color) FgCode() int {
	if !c.Valid() {
		return table[None].Fg
	}
	return table[c].Fg
}

// BgCode returns the SGR background code for c.
func (c Color) BgCode() int {
	if !c.Valid() {
		return table[None].Bg
	}
	return table[c].Bg
}

// ANSIIndex returns the 0..15 terminal colour index, or -1 for None.
func (c Color) ANSIIndex() int {
	if c == None || !c.Valid() {
		return -1
	}
	return int(c) - 1
}

// ColorFromFg maps an SGR foreground code back to a palette colour.
func ColorFromFg(code int) (Color, bool) {
	for i, s := range table {
		if s.Fg == code {
			return Color(i), true
		}
	}
	return None, false
}

// ColorFromBg maps an SGR background code back to a palette colour.
func ColorFromBg(code int) (Color, bool) {
	for i, s := range table {
		if s.Bg == code {
			return Color(i), true
		}
	}
	return None, false
}

type names []string

func (n names) String(i int) string { return n[i] }
func (n names) Len() int            { return len(n) }

func colorNames() names {
	out := make(names, PaletteSize)
	for i, s := range table {
		out[i] = s.Name
	}
	return out
}

// FindColors returns palette colours whose names fuzzy-match query, best match
// first. An empty query returns the whole palette.
func FindColors(query string) []Color {
	query = strings.TrimSpace(query)
	if query == "" {
		return Palette()
	}
	matches := fuzzy.FindFrom(query, colorNames())
	out := make([]Color, 0, len(matches))
	for _, m := range matches {
		out = append(out, Color(m.Index))
	}
	return out
}

// ParseColor resolves a colour name case-insensitively. "default" and "reset"
// are accepted for None. Unknown names yield an error carrying the closest
// fuzzy suggestion when there is one.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "default", "reset":
		return None, nil
	}
	for i, sw := range table {
		if strings.EqualFold(sw.Name, s) {
			return Color(i), nil
		}
	}
	if m := FindColors(s); len(m) > 0 {
		return None, fmt.Errorf("unknown color %q (did you mean %s?)", s, m[0])
	}
	return None, fmt.Errorf("unknown color %q", s)
}

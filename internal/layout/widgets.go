package layout

// Grid describes the colour swatch grid: Cols x Rows cells of CellW x CellH,
// filled row-major with Count swatches.
type Grid struct {
	Cols, Rows   int
	CellW, CellH int
	Count        int
}

// DefaultGrid is the palette layout: 17 swatches over two rows of nine.
var DefaultGrid = Grid{Cols: 9, Rows: 2, CellW: 4, CellH: 1, Count: 17}

// Cell returns the rectangle of swatch i relative to the grid origin.
func (g Grid) Cell(i int) Rect {
	return Rect{X: (i % g.Cols) * g.CellW, Y: (i / g.Cols) * g.CellH, W: g.CellW, H: g.CellH}
}

// Size is the on-screen footprint of the grid.
func (g Grid) Size() Size {
	return Size{W: g.Cols * g.CellW, H: g.Rows * g.CellH}
}

// ColorIndex maps a click to a swatch index. Points on a cell boundary
// belong to the cell to their right or below (floor division). Clicks
// outside the grid, or on a cell past the last swatch, miss.
func ColorIndex(click, origin Point, g Grid) (int, bool) {
	if g.CellW <= 0 || g.CellH <= 0 {
		return 0, false
	}
	dx, dy := satSub(click.X, origin.X), satSub(click.Y, origin.Y)
	if dx < 0 || dy < 0 {
		return 0, false
	}
	col, row := dx/g.CellW, dy/g.CellH
	if col >= g.Cols || row >= g.Rows {
		return 0, false
	}
	i := row*g.Cols + col
	if i >= g.Count {
		return 0, false
	}
	return i, true
}

// FormatAction is a formatting toolbar button.
type FormatAction int

const (
	ToggleBold FormatAction = iota
	ToggleItalic
	ToggleUnderline
	ToggleStrike
	CycleDim
	Export
)

func (a FormatAction) String() string {
	switch a {
	case ToggleBold:
		return "Bold"
	case ToggleItalic:
		return "Italic"
	case ToggleUnderline:
		return "Underline"
	case ToggleStrike:
		return "Strike"
	case CycleDim:
		return "Dim"
	case Export:
		return "Export"
	default:
		return "?"
	}
}

// Button is a toolbar button and its bounds relative to the toolbar origin.
type Button struct {
	Rect   Rect
	Action FormatAction
}

// ButtonWidth is the width of one toolbar button cell.
const ButtonWidth = 10

// DefaultButtons lays the six actions out in two rows of three.
var DefaultButtons = []Button{
	{Rect{0, 0, ButtonWidth, 1}, ToggleBold},
	{Rect{ButtonWidth, 0, ButtonWidth, 1}, ToggleItalic},
	{Rect{2 * ButtonWidth, 0, ButtonWidth, 1}, ToggleUnderline},
	{Rect{0, 1, ButtonWidth, 1}, ToggleStrike},
	{Rect{ButtonWidth, 1, ButtonWidth, 1}, CycleDim},
	{Rect{2 * ButtonWidth, 1, ButtonWidth, 1}, Export},
}

// FormatOption returns the action of the first button containing click.
func FormatOption(click, origin Point, buttons []Button) (FormatAction, bool) {
	rel := Point{X: satSub(click.X, origin.X), Y: satSub(click.Y, origin.Y)}
	for _, b := range buttons {
		if b.Rect.Contains(rel) {
			return b.Action, true
		}
	}
	return 0, false
}

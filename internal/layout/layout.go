// Package layout maps screen coordinates onto editor positions and widgets.
//
// Every function here is total: clicks outside the relevant area either clamp
// to the nearest valid value or report a miss, never an error.
package layout

// Point is a cell position on screen, column X and row Y.
type Point struct {
	X, Y int
}

// Size is a width and height in cells.
type Size struct {
	W, H int
}

// Rect is a half-open rectangle anchored at its top-left cell.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// TextPosition maps a click inside the editor area to a document offset.
// The area wraps text linearly at its width; scrollRows is the number of
// rows scrolled off the top. The result is always within [0, docLen].
func TextPosition(click, origin Point, area Size, scrollRows, docLen int) int {
	if area.W <= 0 || area.H <= 0 || docLen <= 0 {
		return 0
	}
	col := clamp(satSub(click.X, origin.X), 0, area.W-1)
	row := clamp(satSub(click.Y, origin.Y), 0, area.H-1)
	switch {
	case click.Y < origin.Y:
		col = 0
	case click.Y >= origin.Y+area.H:
		// below the area: snap to the end of the last visible row
		col = area.W - 1
	}
	row = satAdd(row, max(scrollRows, 0))
	pos := satAdd(satMul(row, area.W), col)
	return clamp(pos, 0, docLen)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)

// satSub returns a-b, saturating at the int limits.
func satSub(a, b int) int {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		if b > 0 {
			return minInt
		}
		return maxInt
	}
	return d
}

func satAdd(a, b int) int {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		if b > 0 {
			return maxInt
		}
		return minInt
	}
	return s
}

// satMul multiplies two non-negative ints, saturating at maxInt.
func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > maxInt/b {
		return maxInt
	}
	return a * b
}

package doc

import (
	"fmt"
	"slices"

	"echopaint/internal/style"
)

// Range is one application of a style patch to [Start, End).
type Range struct {
	Start int
	End   int
	Patch style.Patch
}

// Run is a maximal span of identical effective style produced by Normalize.
type Run struct {
	Start int
	End   int
	Attrs style.Attrs
}

// Len returns the number of code points in the run.
func (r Run) Len() int { return r.End - r.Start }

// Overlay holds styled ranges in application order. It never stores text;
// it follows the buffer through the EditObserver hooks.
type Overlay struct {
	ranges []Range
	runs   []Run
	valid  bool
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Ranges returns a copy of the stored ranges in application order.
func (o *Overlay) Ranges() []Range { return slices.Clone(o.ranges) }

// Clear drops every range.
func (o *Overlay) Clear() {
	o.ranges = nil
	o.invalidate()
}

// ApplyStyle appends patch over [start, end). Dim or colour values the
// renderer cannot express are clamped; the range is still applied and the
// returned error wraps style.ErrUnsupportedAttribute. Any other error leaves
// the overlay unchanged.
func (o *Overlay) ApplyStyle(start, end int, patch style.Patch) error {
	if start < 0 {
		return fmt.Errorf("%w: range [%d,%d)", ErrOutOfBounds, start, end)
	}
	if start >= end {
		return fmt.Errorf("%w: [%d,%d)", ErrEmptyRange, start, end)
	}
	patch, report := patch.Validate()
	o.ranges = append(o.ranges, Range{Start: start, End: end, Patch: patch})
	o.invalidate()
	return report
}

// StyleAt returns the patch-merge, in application order, of every range
// covering pos. Uncovered positions yield the zero Attrs.
func (o *Overlay) StyleAt(pos int) style.Attrs {
	var a style.Attrs
	for _, r := range o.ranges {
		if r.Start <= pos && pos < r.End {
			a = a.Apply(r.Patch)
		}
	}
	return a
}

// Normalize returns the ordered, non-overlapping runs covering every styled
// span. The result is cached until the next mutation; callers get a copy.
func (o *Overlay) Normalize() []Run {
	if !o.valid {
		o.runs = normalize(o.ranges)
		o.valid = true
	}
	return slices.Clone(o.runs)
}

// OnInsert shifts every endpoint at or after pos by n.
func (o *Overlay) OnInsert(pos, n int) {
	if n <= 0 || len(o.ranges) == 0 {
		return
	}
	for i := range o.ranges {
		r := &o.ranges[i]
		if r.Start >= pos {
			r.Start += n
		}
		if r.End >= pos {
			r.End += n
		}
	}
	o.invalidate()
}

// OnDelete collapses endpoints inside [start, end) to start and shifts
// endpoints after it left. Ranges that become empty are dropped.
func (o *Overlay) OnDelete(start, end int) {
	if end <= start || len(o.ranges) == 0 {
		return
	}
	kept := o.ranges[:0]
	for _, r := range o.ranges {
		r.Start = shiftForDelete(r.Start, start, end)
		r.End = shiftForDelete(r.End, start, end)
		if r.Start < r.End {
			kept = append(kept, r)
		}
	}
	o.ranges = kept
	o.invalidate()
}

func (o *Overlay) invalidate() {
	o.valid = false
	o.runs = nil
}

// normalize sweeps the sorted cut points keeping the set of active ranges in
// application order, so each segment merges only the ranges covering it.
func normalize(ranges []Range) []Run {
	if len(ranges) == 0 {
		return nil
	}
	opens := map[int][]int{}
	closes := map[int][]int{}
	cuts := make([]int, 0, 2*len(ranges))
	for i, r := range ranges {
		if r.Start >= r.End {
			continue
		}
		opens[r.Start] = append(opens[r.Start], i)
		closes[r.End] = append(closes[r.End], i)
		cuts = append(cuts, r.Start, r.End)
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var (
		active []int // indices into ranges, ascending = application order
		runs   []Run
	)
	for k := 0; k+1 < len(cuts); k++ {
		a, b := cuts[k], cuts[k+1]
		for _, i := range closes[a] {
			if j, ok := slices.BinarySearch(active, i); ok {
				active = slices.Delete(active, j, j+1)
			}
		}
		for _, i := range opens[a] {
			j, _ := slices.BinarySearch(active, i)
			active = slices.Insert(active, j, i)
		}
		if len(active) == 0 {
			continue
		}
		var attrs style.Attrs
		for _, i := range active {
			attrs = attrs.Apply(ranges[i].Patch)
		}
		if attrs.IsZero() {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].End == a && runs[n-1].Attrs == attrs {
			runs[n-1].End = b
			continue
		}
		runs = append(runs, Run{Start: a, End: b, Attrs: attrs})
	}
	return runs
}

package doc

import (
	"fmt"

	"echopaint/internal/style"
	"echopaint/internal/system"
)

// Document keeps a Buffer and its Overlay consistent and tracks the
// selection. Every mutating method validates before changing anything.
type Document struct {
	buf     *Buffer
	overlay *Overlay

	anchor    int
	selecting bool
}

// New returns a document holding text with the cursor at the end.
func New(text string) *Document {
	d := &Document{buf: NewBuffer(text), overlay: NewOverlay()}
	d.buf.Observe(d.overlay)
	return d
}

// FromRuns builds a document whose overlay reproduces runs exactly.
// Runs outside the text are clamped.
func FromRuns(text string, runs []Run) *Document {
	d := New(text)
	for _, r := range runs {
		start, end := clamp(r.Start, 0, d.Len()), clamp(r.End, 0, d.Len())
		if start >= end || r.Attrs.IsZero() {
			continue
		}
		// unsupported attrs are clamped and still applied
		if err := d.overlay.ApplyStyle(start, end, r.Attrs.Full()); err != nil {
			system.Logger.Debug("run clamped", "start", start, "end", end, "err", err)
		}
	}
	d.buf.SetCursor(0)
	return d
}

func (d *Document) Len() int { return d.buf.Len() }

func (d *Document) Text() string { return d.buf.Text() }

func (d *Document) Cursor() int { return d.buf.Cursor() }

// Overlay exposes the underlying overlay for read-only queries.
func (d *Document) Overlay() *Overlay { return d.overlay }

// Insert splices text at pos. Overlay endpoints follow via the observer.
func (d *Document) Insert(pos int, text string) error {
	if err := d.buf.Insert(pos, text); err != nil {
		return err
	}
	if d.selecting && d.anchor >= pos {
		d.anchor += len([]rune(text))
	}
	return nil
}

// Delete removes [start, end) and returns the removed text.
func (d *Document) Delete(start, end int) (string, error) {
	s, err := d.buf.Delete(start, end)
	if err != nil {
		return "", err
	}
	if d.selecting {
		d.anchor = shiftForDelete(d.anchor, start, end)
	}
	return s, nil
}

// DeleteBackward removes the code point before the cursor. At the start of
// the document it is a no-op.
func (d *Document) DeleteBackward() (string, error) {
	c := d.Cursor()
	if c == 0 {
		return "", nil
	}
	return d.Delete(c-1, c)
}

// DeleteForward removes the code point under the cursor. At the end of the
// document it is a no-op.
func (d *Document) DeleteForward() (string, error) {
	c := d.Cursor()
	if c >= d.Len() {
		return "", nil
	}
	return d.Delete(c, c+1)
}

// MoveCursor moves by delta with saturation.
func (d *Document) MoveCursor(delta int) { d.buf.MoveCursor(delta) }

// SetCursor moves to an absolute position, clamped.
func (d *Document) SetCursor(pos int) { d.buf.SetCursor(pos) }

// StartSelection anchors a selection at the cursor.
func (d *Document) StartSelection() {
	d.anchor = d.Cursor()
	d.selecting = true
}

// ClearSelection drops the selection.
func (d *Document) ClearSelection() {
	d.selecting = false
	d.anchor = 0
}

// Selecting reports whether a selection is active.
func (d *Document) Selecting() bool { return d.selecting }

// Selection returns the selected span. The span is inclusive of the
// character under the cursor, like a visual selection, and is clamped to
// the document. ok is false without an active selection.
func (d *Document) Selection() (start, end int, ok bool) {
	if !d.selecting {
		return 0, 0, false
	}
	lo, hi := min(d.anchor, d.Cursor()), max(d.anchor, d.Cursor())
	return lo, min(hi+1, d.Len()), true
}

// Selected reports whether pos lies in the active selection.
func (d *Document) Selected(pos int) bool {
	s, e, ok := d.Selection()
	return ok && pos >= s && pos < e
}

// Target returns the span a style action applies to: the selection when
// active, else the character under the cursor.
func (d *Document) Target() (start, end int) {
	if s, e, ok := d.Selection(); ok {
		return s, e
	}
	c := d.Cursor()
	return c, min(c+1, d.Len())
}

// ApplyStyle layers patch over [start, end).
func (d *Document) ApplyStyle(start, end int, patch style.Patch) error {
	if start < 0 || end > d.Len() {
		return fmt.Errorf("%w: style range [%d,%d), length %d", ErrOutOfBounds, start, end, d.Len())
	}
	return d.overlay.ApplyStyle(start, end, patch)
}

// ApplyToTarget layers patch over Target().
func (d *Document) ApplyToTarget(patch style.Patch) error {
	s, e := d.Target()
	return d.ApplyStyle(s, e, patch)
}

// StyleAt returns the effective style at pos.
func (d *Document) StyleAt(pos int) style.Attrs { return d.overlay.StyleAt(pos) }

// Runs returns the normalised run list.
func (d *Document) Runs() []Run { return d.overlay.Normalize() }

// Snapshot is an immutable copy of the exportable state.
type Snapshot struct {
	Text string
	Runs []Run
}

// Snapshot copies text and runs so they can be used off the owning loop.
func (d *Document) Snapshot() Snapshot {
	return Snapshot{Text: d.Text(), Runs: d.Runs()}
}

// Reset replaces the whole document content.
func (d *Document) Reset(text string, runs []Run) {
	next := FromRuns(text, runs)
	d.buf.text = next.buf.text
	d.buf.cursor = 0
	d.overlay.ranges = next.overlay.ranges
	d.overlay.invalidate()
	d.ClearSelection()
}

package doc

import (
	"errors"
	"reflect"
	"testing"

	"echopaint/internal/style"
)

func TestDocument_DeleteShiftsSurvivingRange(t *testing.T) {
	d := New("0123456789")
	if err := d.ApplyStyle(4, 8, red()); err != nil {
		t.Fatalf("ApplyStyle: %v", err)
	}
	removed, err := d.Delete(2, 6)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != "2345" {
		t.Fatalf("removed=%q", removed)
	}
	want := []Run{{2, 4, style.Attrs{Fg: style.Red}}}
	if got := d.Runs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("runs=%v, want %v", got, want)
	}
}

func TestDocument_InsertOutOfBoundsLeavesState(t *testing.T) {
	d := New("abc")
	_ = d.ApplyStyle(0, 3, red())
	before := d.Snapshot()
	if err := d.Insert(4, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := d.Insert(-1, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := d.Delete(1, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := d.ApplyStyle(1, 9, bold()); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if after := d.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed by failed operations:\n%v\n%v", before, after)
	}
}

func TestDocument_InsertAdvancesCursorAndShifts(t *testing.T) {
	d := New("hello")
	_ = d.ApplyStyle(1, 4, red())
	if err := d.Insert(0, "»"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if d.Cursor() != 1 {
		t.Fatalf("cursor=%d, want 1", d.Cursor())
	}
	if got := d.Runs(); got[0].Start != 2 || got[0].End != 5 {
		t.Fatalf("runs=%v", got)
	}
	if d.Text() != "»hello" || d.Len() != 6 {
		t.Fatalf("text=%q len=%d", d.Text(), d.Len())
	}
}

func TestDocument_CursorSaturates(t *testing.T) {
	d := New("abc")
	d.MoveCursor(-100)
	if d.Cursor() != 0 {
		t.Fatalf("cursor=%d", d.Cursor())
	}
	d.MoveCursor(int(^uint(0) >> 1))
	if d.Cursor() != 3 {
		t.Fatalf("cursor=%d", d.Cursor())
	}
	d.SetCursor(-5)
	if d.Cursor() != 0 {
		t.Fatalf("cursor=%d", d.Cursor())
	}
}

func TestDocument_DeleteBackwardForward(t *testing.T) {
	d := New("abc")
	d.SetCursor(0)
	if s, err := d.DeleteBackward(); err != nil || s != "" {
		t.Fatalf("backspace at 0: %q %v", s, err)
	}
	if s, _ := d.DeleteForward(); s != "a" {
		t.Fatalf("delete forward removed %q", s)
	}
	d.SetCursor(2)
	if s, _ := d.DeleteBackward(); s != "c" {
		t.Fatalf("backspace removed %q", s)
	}
	if s, _ := d.DeleteForward(); s != "" {
		t.Fatalf("delete at end removed %q", s)
	}
	if d.Text() != "b" || d.Cursor() != 1 {
		t.Fatalf("text=%q cursor=%d", d.Text(), d.Cursor())
	}
}

func TestDocument_SelectionNormalised(t *testing.T) {
	d := New("abcdef")
	d.SetCursor(4)
	d.StartSelection()
	d.MoveCursor(-3)
	s, e, ok := d.Selection()
	if !ok || s != 1 || e != 5 {
		t.Fatalf("selection=[%d,%d) ok=%v, want [1,5)", s, e, ok)
	}
	if err := d.ApplyToTarget(bold()); err != nil {
		t.Fatalf("ApplyToTarget: %v", err)
	}
	// The selection is read, not consumed.
	if _, _, ok := d.Selection(); !ok {
		t.Fatalf("selection consumed by apply")
	}
	d.ClearSelection()
	if _, _, ok := d.Selection(); ok {
		t.Fatalf("selection still active")
	}
	if s, e := d.Target(); s != 1 || e != 2 {
		t.Fatalf("target without selection = [%d,%d)", s, e)
	}
}

func TestDocument_EmptyTargetAtEnd(t *testing.T) {
	d := New("ab")
	if err := d.ApplyToTarget(bold()); !errors.Is(err, ErrEmptyRange) {
		t.Fatalf("expected ErrEmptyRange at end of document, got %v", err)
	}
}

func TestFromRuns_ReproducesRuns(t *testing.T) {
	runs := []Run{
		{0, 2, style.Attrs{Fg: style.Green}},
		{2, 3, style.Attrs{Fg: style.Green, Bold: true}},
		{5, 20, style.Attrs{Bg: style.Blue}},
	}
	d := FromRuns("abcdefg", runs)
	want := []Run{
		{0, 2, style.Attrs{Fg: style.Green}},
		{2, 3, style.Attrs{Fg: style.Green, Bold: true}},
		{5, 7, style.Attrs{Bg: style.Blue}},
	}
	if got := d.Runs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("runs=%v, want %v", got, want)
	}
	d.Reset("xy", nil)
	if d.Text() != "xy" || len(d.Runs()) != 0 || d.Cursor() != 0 {
		t.Fatalf("Reset left text=%q runs=%v cursor=%d", d.Text(), d.Runs(), d.Cursor())
	}
}

func TestFromRuns_ClampsUnsupportedAttrs(t *testing.T) {
	d := FromRuns("abc", []Run{{0, 2, style.Attrs{Dim: 9, Underline: true}}})
	got := d.StyleAt(1)
	if got.Dim != style.MaxDim || !got.Underline {
		t.Fatalf("StyleAt(1)=%v, want clamped dim with underline", got)
	}
	if a := d.StyleAt(2); !a.IsZero() {
		t.Fatalf("StyleAt(2)=%v", a)
	}
}

func TestBuffer_Slice(t *testing.T) {
	b := NewBuffer("héllo")
	got, err := b.Slice(1, 3)
	if err != nil || got != "él" {
		t.Fatalf("Slice(1,3)=%q, %v", got, err)
	}
	for _, r := range [][2]int{{-1, 2}, {3, 2}, {0, 6}} {
		if _, err := b.Slice(r[0], r[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Slice(%d,%d) err=%v", r[0], r[1], err)
		}
	}
}

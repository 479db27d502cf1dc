// Package doc implements the styled-text model: a code-point buffer with a
// cursor, a sparse overlay of styled ranges and the document that keeps the
// two consistent.
//
// Positions are 0-based code point offsets. Ranges are half-open: [Start, End).
package doc

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a position or range exceeds the buffer.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrEmptyRange is returned when a style is applied to a zero-length range.
	ErrEmptyRange = errors.New("empty range")
)

// EditObserver is notified after every successful buffer mutation.
type EditObserver interface {
	// OnInsert reports n code points inserted at pos.
	OnInsert(pos, n int)
	// OnDelete reports that [start, end) was removed.
	OnDelete(start, end int)
}

// Buffer owns the character sequence and the cursor.
type Buffer struct {
	text      []rune
	cursor    int
	observers []EditObserver
}

// NewBuffer returns a buffer holding text with the cursor at the end.
func NewBuffer(text string) *Buffer {
	r := []rune(text)
	return &Buffer{text: r, cursor: len(r)}
}

// Observe registers o for edit notifications.
func (b *Buffer) Observe(o EditObserver) {
	b.observers = append(b.observers, o)
}

func (b *Buffer) Len() int { return len(b.text) }

func (b *Buffer) Cursor() int { return b.cursor }

func (b *Buffer) Text() string { return string(b.text) }

// Slice returns the text of [start, end).
func (b *Buffer) Slice(start, end int) (string, error) {
	if err := b.checkRange(start, end); err != nil {
		return "", err
	}
	return string(b.text[start:end]), nil
}

// Insert splices text at pos and moves the cursor after it.
func (b *Buffer) Insert(pos int, text string) error {
	if pos < 0 || pos > len(b.text) {
		return fmt.Errorf("%w: insert at %d, length %d", ErrOutOfBounds, pos, len(b.text))
	}
	ins := []rune(text)
	if len(ins) == 0 {
		b.cursor = pos
		return nil
	}
	next := make([]rune, 0, len(b.text)+len(ins))
	next = append(next, b.text[:pos]...)
	next = append(next, ins...)
	next = append(next, b.text[pos:]...)
	b.text = next
	b.cursor = pos + len(ins)
	for _, o := range b.observers {
		o.OnInsert(pos, len(ins))
	}
	return nil
}

// Delete removes [start, end) and returns the removed text. A cursor inside
// the span collapses to start; a cursor after it shifts left.
func (b *Buffer) Delete(start, end int) (string, error) {
	if err := b.checkRange(start, end); err != nil {
		return "", err
	}
	if start == end {
		return "", nil
	}
	removed := string(b.text[start:end])
	b.text = append(b.text[:start:start], b.text[end:]...)
	b.cursor = shiftForDelete(b.cursor, start, end)
	for _, o := range b.observers {
		o.OnDelete(start, end)
	}
	return removed, nil
}

// MoveCursor moves the cursor by delta, saturating at both ends.
func (b *Buffer) MoveCursor(delta int) {
	b.SetCursor(satAdd(b.cursor, delta))
}

// SetCursor places the cursor at pos clamped to [0, Len()].
func (b *Buffer) SetCursor(pos int) {
	b.cursor = clamp(pos, 0, len(b.text))
}

func (b *Buffer) checkRange(start, end int) error {
	if start < 0 || end < start || end > len(b.text) {
		return fmt.Errorf("%w: range [%d,%d), length %d", ErrOutOfBounds, start, end, len(b.text))
	}
	return nil
}

// shiftForDelete maps a position across the removal of [start, end).
func shiftForDelete(p, start, end int) int {
	switch {
	case p <= start:
		return p
	case p < end:
		return start
	default:
		return p - (end - start)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// satAdd adds without wrapping around the int range.
func satAdd(a, b int) int {
	s := a + b
	if b > 0 && s < a {
		return int(^uint(0) >> 1)
	}
	if b < 0 && s > a {
		return -int(^uint(0)>>1) - 1
	}
	return s
}

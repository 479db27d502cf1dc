// Package editor holds the interactive editing session: the document, the
// pen used for new text and toggles, and the mode state machine that decides
// which intents are accepted.
package editor

import (
	"errors"
	"fmt"

	"echopaint/internal/doc"
	"echopaint/internal/export"
	"echopaint/internal/layout"
	"echopaint/internal/style"
)

// ColorTarget selects which pen colour the picker edits.
type ColorTarget int

const (
	Foreground ColorTarget = iota
	Background
)

func (t ColorTarget) String() string {
	if t == Background {
		return "BG"
	}
	return "FG"
}

// Session owns one document and all interaction state around it.
type Session struct {
	doc    *doc.Document
	pen    style.Attrs
	swatch [2]int // picker position per ColorTarget
	target ColorTarget
	mode   Mode
	prev   Mode
	format export.Format
	grid   layout.Grid
}

// New starts a session in Normal mode over text.
func New(text string) *Session {
	return &Session{
		doc:    doc.New(text),
		format: export.FormatRaw,
		grid:   layout.DefaultGrid,
	}
}

func (s *Session) Document() *doc.Document { return s.doc }

func (s *Session) Mode() Mode { return s.mode }

// Pen is the style given to typed characters.
func (s *Session) Pen() style.Attrs { return s.pen }

// Picker returns the colour target and swatch index the picker points at.
func (s *Session) Picker() (ColorTarget, int) { return s.target, s.swatch[s.target] }

// SwatchIndex is the picker position for t.
func (s *Session) SwatchIndex(t ColorTarget) int { return s.swatch[t] }

func (s *Session) Format() export.Format { return s.format }

func (s *Session) SetFormat(f export.Format) { s.format = f }

// SetGrid changes the swatch grid used for keyboard navigation.
func (s *Session) SetGrid(g layout.Grid) {
	if g.Cols > 0 {
		s.grid = g
	}
}

// transition validates in against the current mode and moves to the mode
// it leads to. Nothing changes when the intent is rejected.
func (s *Session) transition(in Intent) error {
	next, ok := transitions[s.mode][in]
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrRejected, in, s.mode)
	}
	if next == back {
		next = s.prev
	}
	if (next == Color || next == Export) && s.mode != Color && s.mode != Export {
		s.prev = s.mode
	}
	s.mode = next
	if next != Select && next != Color && next != Export && s.doc.Selecting() {
		s.doc.ClearSelection()
	}
	return nil
}

// InsertChar types r at the cursor using the pen style.
func (s *Session) InsertChar(r rune) error {
	return s.InsertText(string(r))
}

// InsertText types text at the cursor using the pen style.
func (s *Session) InsertText(text string) error {
	if !s.mode.Allows(IntentInsert) {
		return fmt.Errorf("%w: %s in %s", ErrRejected, IntentInsert, s.mode)
	}
	pos := s.doc.Cursor()
	if err := s.doc.Insert(pos, text); err != nil {
		return err
	}
	end := s.doc.Cursor()
	if end > pos && s.needsPen(pos, end) {
		if err := s.doc.ApplyStyle(pos, end, s.pen.Full()); err != nil {
			return err
		}
	}
	return s.transition(IntentInsert)
}

// needsPen reports whether any character in [start, end) differs from the pen.
func (s *Session) needsPen(start, end int) bool {
	for i := start; i < end; i++ {
		if s.doc.StyleAt(i) != s.pen {
			return true
		}
	}
	return false
}

// DeleteBackward removes the character before the cursor.
func (s *Session) DeleteBackward() error {
	if err := s.transition(IntentDelete); err != nil {
		return err
	}
	_, err := s.doc.DeleteBackward()
	return err
}

// DeleteForward removes the character under the cursor.
func (s *Session) DeleteForward() error {
	if err := s.transition(IntentDelete); err != nil {
		return err
	}
	_, err := s.doc.DeleteForward()
	return err
}

// Move shifts the cursor by delta, extending the selection in Select mode.
func (s *Session) Move(delta int) error {
	if err := s.transition(IntentMove); err != nil {
		return err
	}
	s.doc.MoveCursor(delta)
	return nil
}

// MoveTo places the cursor at pos, clamped to the document.
func (s *Session) MoveTo(pos int) error {
	if err := s.transition(IntentMove); err != nil {
		return err
	}
	s.doc.SetCursor(pos)
	return nil
}

// EnterEdit switches to Edit mode. With after set the cursor first steps
// past the current character.
func (s *Session) EnterEdit(after bool) error {
	if err := s.transition(IntentEdit); err != nil {
		return err
	}
	if after {
		s.doc.MoveCursor(1)
	}
	return nil
}

// StartSelection anchors a selection at the cursor and enters Select mode.
// In Select mode it ends the selection instead.
func (s *Session) StartSelection() error {
	if err := s.transition(IntentSelect); err != nil {
		return err
	}
	if s.mode == Select {
		s.doc.StartSelection()
	}
	return nil
}

// ClearSelection drops the selection and returns to Normal mode.
func (s *Session) ClearSelection() error {
	if s.mode != Select {
		return fmt.Errorf("%w: no selection", ErrRejected)
	}
	return s.transition(IntentLeave)
}

// Leave exits the current mode.
func (s *Session) Leave() error { return s.transition(IntentLeave) }

// ApplyStyle applies p to the selection, or the character under the cursor.
// An empty target at the end of the document is not an error.
func (s *Session) ApplyStyle(p style.Patch) error {
	if err := s.transition(IntentStyle); err != nil {
		return err
	}
	return s.applyTarget(p)
}

// applyTarget styles the current target. In Edit mode the pen only affects
// what is typed next.
func (s *Session) applyTarget(p style.Patch) error {
	if s.mode == Edit {
		return nil
	}
	err := s.doc.ApplyToTarget(p)
	if errors.Is(err, doc.ErrEmptyRange) {
		return nil
	}
	return err
}

// ApplyPen applies the whole pen to the target.
func (s *Session) ApplyPen() error { return s.ApplyStyle(s.pen.Full()) }

// toggle flips one pen field and applies just that field.
func (s *Session) toggle(p style.Patch) error {
	if err := s.transition(IntentStyle); err != nil {
		return err
	}
	s.pen = s.pen.Apply(p)
	return s.applyTarget(p)
}

func (s *Session) ToggleBold() error { return s.toggle(style.Patch{}.WithBold(!s.pen.Bold)) }

func (s *Session) ToggleItalic() error { return s.toggle(style.Patch{}.WithItalic(!s.pen.Italic)) }

func (s *Session) ToggleUnderline() error {
	return s.toggle(style.Patch{}.WithUnderline(!s.pen.Underline))
}

func (s *Session) ToggleStrike() error { return s.toggle(style.Patch{}.WithStrike(!s.pen.Strike)) }

// CycleDim steps the pen dim level 0 → 1 → 2 → 3 → 0.
func (s *Session) CycleDim() error {
	return s.toggle(style.Patch{}.WithDim((s.pen.Dim + 1) % (style.MaxDim + 1)))
}

// Toolbar runs the action bound to a toolbar button. Export is handled by
// the caller since it produces output rather than a style change.
func (s *Session) Toolbar(a layout.FormatAction) error {
	switch a {
	case layout.ToggleBold:
		return s.ToggleBold()
	case layout.ToggleItalic:
		return s.ToggleItalic()
	case layout.ToggleUnderline:
		return s.ToggleUnderline()
	case layout.ToggleStrike:
		return s.ToggleStrike()
	case layout.CycleDim:
		return s.CycleDim()
	}
	return fmt.Errorf("%w: %s", ErrRejected, a)
}

// EnterColor opens the picker for t. Inside Color mode it switches target.
func (s *Session) EnterColor(t ColorTarget) error {
	if err := s.transition(IntentColor); err != nil {
		return err
	}
	s.target = t
	return nil
}

// MoveSwatch moves the picker by dx swatches and dy grid rows. Moves that
// would leave the palette are ignored.
func (s *Session) MoveSwatch(dx, dy int) error {
	if s.mode != Color {
		return fmt.Errorf("%w: %s in %s", ErrRejected, IntentPick, s.mode)
	}
	i := s.swatch[s.target] + dx + dy*s.grid.Cols
	if i >= 0 && i < style.PaletteSize {
		s.swatch[s.target] = i
	}
	return nil
}

// ChooseSwatch sets the pen colour to the swatch under the picker and
// applies it to the target.
func (s *Session) ChooseSwatch() error {
	return s.PickSwatch(s.target, s.swatch[s.target])
}

// PickSwatch selects palette entry i as the t colour, as a click on the
// swatch grid does.
func (s *Session) PickSwatch(t ColorTarget, i int) error {
	if i < 0 || i >= style.PaletteSize {
		return fmt.Errorf("%w: swatch %d", doc.ErrOutOfBounds, i)
	}
	if err := s.transition(IntentPick); err != nil {
		return err
	}
	s.swatch[t] = i
	c := style.Palette()[i]
	var p style.Patch
	if t == Background {
		p = p.WithBg(c)
	} else {
		p = p.WithFg(c)
	}
	s.pen = s.pen.Apply(p)
	return s.applyTarget(p)
}

// LoadStyleFromCursor copies the style under the cursor into the pen.
func (s *Session) LoadStyleFromCursor() error {
	if s.mode == Export {
		return fmt.Errorf("%w: load style in %s", ErrRejected, s.mode)
	}
	s.pen = s.doc.StyleAt(s.doc.Cursor())
	s.swatch[Foreground] = int(s.pen.Fg)
	s.swatch[Background] = int(s.pen.Bg)
	return nil
}

// ResetPen returns the pen to plain text.
func (s *Session) ResetPen() {
	s.pen = style.Attrs{}
	s.swatch = [2]int{}
}

// RequestExport enters Export mode and returns a copy of the document
// state, safe to hand to a background command.
func (s *Session) RequestExport() (doc.Snapshot, error) {
	if err := s.transition(IntentExport); err != nil {
		return doc.Snapshot{}, err
	}
	return s.doc.Snapshot(), nil
}

// Command renders the current document in the session's export format.
func (s *Session) Command() string {
	return export.Snapshot(s.doc.Snapshot(), s.format)
}

// Import replaces the document with decoded ANSI text or an echo command.
func (s *Session) Import(input string) error {
	if err := s.transition(IntentImport); err != nil {
		return err
	}
	body, _ := export.Unwrap(input)
	text, runs := export.Decode(body)
	s.doc.Reset(text, runs)
	return nil
}

// Package style holds the value types describing how a character looks:
// the fixed colour palette, the full attribute set and the partial patches
// that are layered over text ranges.
package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDim is the highest supported dim level. Level 0 means no dim.
const MaxDim = 3

// ErrUnsupportedAttribute reports an attribute value outside what the
// renderer can express. The offending value is clamped, never dropped.
var ErrUnsupportedAttribute = errors.New("unsupported attribute")

// Attrs is the effective style of a character. The zero value is the
// terminal default (unstyled).
type Attrs struct {
	Fg        Color
	Bg        Color
	Bold      bool
	Dim       int
	Italic    bool
	Underline bool
	Strike    bool
}

// IsZero reports whether a is the unstyled default.
func (a Attrs) IsZero() bool { return a == Attrs{} }

// Apply patch-merges p over a: fields present in p override, absent fields
// pass through unchanged.
func (a Attrs) Apply(p Patch) Attrs {
	v := p.Attrs
	if p.Fields.Has(FieldFg) {
		a.Fg = v.Fg
	}
	if p.Fields.Has(FieldBg) {
		a.Bg = v.Bg
	}
	if p.Fields.Has(FieldBold) {
		a.Bold = v.Bold
	}
	if p.Fields.Has(FieldDim) {
		a.Dim = v.Dim
	}
	if p.Fields.Has(FieldItalic) {
		a.Italic = v.Italic
	}
	if p.Fields.Has(FieldUnderline) {
		a.Underline = v.Underline
	}
	if p.Fields.Has(FieldStrike) {
		a.Strike = v.Strike
	}
	return a
}

// Full returns a patch that sets every field to the values of a.
func (a Attrs) Full() Patch {
	return Patch{Attrs: a, Fields: AllFields}
}

func (a Attrs) String() string {
	if a.IsZero() {
		return "plain"
	}
	var parts []string
	if a.Fg != None {
		parts = append(parts, "fg="+a.Fg.String())
	}
	if a.Bg != None {
		parts = append(parts, "bg="+a.Bg.String())
	}
	if a.Bold {
		parts = append(parts, "bold")
	}
	if a.Dim > 0 {
		parts = append(parts, "dim="+strconv.Itoa(a.Dim))
	}
	if a.Italic {
		parts = append(parts, "italic")
	}
	if a.Underline {
		parts = append(parts, "underline")
	}
	if a.Strike {
		parts = append(parts, "strike")
	}
	return strings.Join(parts, ",")
}

// Field is a bit set naming the attributes a Patch carries.
type Field uint8

const (
	FieldFg Field = 1 << iota
	FieldBg
	FieldBold
	FieldDim
	FieldItalic
	FieldUnderline
	FieldStrike

	AllFields = FieldFg | FieldBg | FieldBold | FieldDim | FieldItalic | FieldUnderline | FieldStrike
)

// Has reports whether all bits of g are set in f.
func (f Field) Has(g Field) bool { return f&g == g }

// Patch is a partial style: only the fields named in Fields are meaningful.
type Patch struct {
	Attrs  Attrs
	Fields Field
}

// Empty reports whether the patch carries no fields.
func (p Patch) Empty() bool { return p.Fields == 0 }

func (p Patch) WithFg(c Color) Patch {
	p.Attrs.Fg, p.Fields = c, p.Fields|FieldFg
	return p
}

func (p Patch) WithBg(c Color) Patch {
	p.Attrs.Bg, p.Fields = c, p.Fields|FieldBg
	return p
}

func (p Patch) WithBold(v bool) Patch {
	p.Attrs.Bold, p.Fields = v, p.Fields|FieldBold
	return p
}

// WithDim stores level as given; Validate clamps it.
func (p Patch) WithDim(level int) Patch {
	p.Attrs.Dim, p.Fields = level, p.Fields|FieldDim
	return p
}

func (p Patch) WithItalic(v bool) Patch {
	p.Attrs.Italic, p.Fields = v, p.Fields|FieldItalic
	return p
}

func (p Patch) WithUnderline(v bool) Patch {
	p.Attrs.Underline, p.Fields = v, p.Fields|FieldUnderline
	return p
}

func (p Patch) WithStrike(v bool) Patch {
	p.Attrs.Strike, p.Fields = v, p.Fields|FieldStrike
	return p
}

// Then composes p followed by q; fields in q win.
func (p Patch) Then(q Patch) Patch {
	return Patch{Attrs: p.Attrs.Apply(q), Fields: p.Fields | q.Fields}
}

// Validate clamps out-of-range values. The returned patch is always usable;
// the error (wrapping ErrUnsupportedAttribute) reports that clamping happened.
func (p Patch) Validate() (Patch, error) {
	var err error
	if !p.Attrs.Fg.Valid() {
		err = fmt.Errorf("%w: foreground %d is not a palette colour", ErrUnsupportedAttribute, uint8(p.Attrs.Fg))
		p.Attrs.Fg = None
	}
	if !p.Attrs.Bg.Valid() {
		err = fmt.Errorf("%w: background %d is not a palette colour", ErrUnsupportedAttribute, uint8(p.Attrs.Bg))
		p.Attrs.Bg = None
	}
	if d := p.Attrs.Dim; d < 0 || d > MaxDim {
		c := min(max(d, 0), MaxDim)
		err = fmt.Errorf("%w: dim level %d clamped to %d", ErrUnsupportedAttribute, d, c)
		p.Attrs.Dim = c
	}
	return p, err
}

func (p Patch) String() string {
	if p.Empty() {
		return "{}"
	}
	var parts []string
	v := p.Attrs
	if p.Fields.Has(FieldFg) {
		parts = append(parts, "fg="+v.Fg.String())
	}
	if p.Fields.Has(FieldBg) {
		parts = append(parts, "bg="+v.Bg.String())
	}
	if p.Fields.Has(FieldBold) {
		parts = append(parts, "bold="+strconv.FormatBool(v.Bold))
	}
	if p.Fields.Has(FieldDim) {
		parts = append(parts, "dim="+strconv.Itoa(v.Dim))
	}
	if p.Fields.Has(FieldItalic) {
		parts = append(parts, "italic="+strconv.FormatBool(v.Italic))
	}
	if p.Fields.Has(FieldUnderline) {
		parts = append(parts, "underline="+strconv.FormatBool(v.Underline))
	}
	if p.Fields.Has(FieldStrike) {
		parts = append(parts, "strike="+strconv.FormatBool(v.Strike))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ParsePatch reads a comma separated list such as "fg=green,bold,dim=2".
// Bare flag names mean true; "no" prefixed flags ("nobold") mean false.
func ParsePatch(s string) (Patch, error) {
	var p Patch
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key, val, hasVal := strings.Cut(tok, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		switch key {
		case "fg", "bg":
			c, err := ParseColor(val)
			if err != nil {
				return Patch{}, err
			}
			if key == "fg" {
				p = p.WithFg(c)
			} else {
				p = p.WithBg(c)
			}
			continue
		case "dim":
			level := 1
			if hasVal {
				n, err := strconv.Atoi(val)
				if err != nil {
					return Patch{}, fmt.Errorf("dim: %w", err)
				}
				level = n
			}
			p = p.WithDim(level)
			continue
		case "nodim":
			p = p.WithDim(0)
			continue
		}
		on := true
		if hasVal {
			b, err := strconv.ParseBool(val)
			if err != nil {
				return Patch{}, fmt.Errorf("%s: %w", key, err)
			}
			on = b
		} else if rest, ok := strings.CutPrefix(key, "no"); ok && flagSetter(rest) != nil {
			key, on = rest, false
		}
		set := flagSetter(key)
		if set == nil {
			return Patch{}, fmt.Errorf("unknown style attribute %q", key)
		}
		p = set(p, on)
	}
	return p, nil
}

func flagSetter(name string) func(Patch, bool) Patch {
	switch name {
	case "bold", "b":
		return Patch.WithBold
	case "italic", "i":
		return Patch.WithItalic
	case "underline", "u":
		return Patch.WithUnderline
	case "strike", "strikethrough", "s":
		return Patch.WithStrike
	}
	return nil
}

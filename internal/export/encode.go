// Package export turns a styled document into ANSI SGR text and wraps it in
// a shell command that reproduces the styling when run. It also reads such
// text back.
package export

import (
	"fmt"
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"echopaint/internal/doc"
	"echopaint/internal/style"
)

// reset closes every styled run.
var reset = xansi.Style{}.Reset().String()

// Format selects how the escaped text is wrapped into a command.
type Format string

const (
	// FormatRaw emits echo '<text>' with raw ESC bytes inside single quotes.
	// It targets bash, whose builtin echo leaves backslashes alone; a POSIX
	// sh echo may interpret them.
	FormatRaw Format = "raw"
	// FormatEscaped emits echo -e "<text>" with ESC spelled \033.
	FormatEscaped Format = "escaped"
)

// ParseFormat accepts "raw" and "escaped" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatRaw, FormatEscaped:
		return f, nil
	case "":
		return FormatRaw, nil
	}
	return "", fmt.Errorf("unknown export format %q (want raw or escaped)", s)
}

// Style returns the SGR style for a, built in a fixed order: fg, bg, bold,
// italic, underline, strikethrough, dim. Only set attributes are included.
func Style(a style.Attrs) xansi.Style {
	var s xansi.Style
	if i := a.Fg.ANSIIndex(); i >= 0 {
		s = s.ForegroundColor(xansi.BasicColor(i))
	}
	if i := a.Bg.ANSIIndex(); i >= 0 {
		s = s.BackgroundColor(xansi.BasicColor(i))
	}
	if a.Bold {
		s = s.Bold()
	}
	if a.Italic {
		s = s.Italic()
	}
	if a.Underline {
		s = s.Underline()
	}
	if a.Strike {
		s = s.Strikethrough()
	}
	if a.Dim > 0 {
		// Terminals know a single faint level; every dim level maps to it.
		s = s.Faint()
	}
	return s
}

// Codes returns the SGR parameters of Style(a) as numbers.
func Codes(a style.Attrs) []int {
	s := Style(a)
	out := make([]int, 0, len(s))
	for _, p := range s {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// SGR returns the escape sequence that turns a on, or "" for plain attrs.
func SGR(a style.Attrs) string {
	s := Style(a)
	if len(s) == 0 {
		return ""
	}
	return s.String()
}

// Encode renders text with runs as ANSI text. Gaps are emitted verbatim;
// each run is opened with its SGR sequence and closed with a reset so no
// attribute bleeds into the next span. Runs must be normalised.
func Encode(text string, runs []doc.Run) string {
	rs := []rune(text)
	var b strings.Builder
	pos := 0
	for _, r := range runs {
		start, end := clampInt(r.Start, pos, len(rs)), clampInt(r.End, 0, len(rs))
		if start >= end {
			continue
		}
		b.WriteString(string(rs[pos:start]))
		open := SGR(r.Attrs)
		b.WriteString(open)
		b.WriteString(string(rs[start:end]))
		if open != "" {
			b.WriteString(reset)
		}
		pos = end
	}
	b.WriteString(string(rs[pos:]))
	return b.String()
}

// Command wraps Encode(text, runs) in a single echo invocation. A body echo
// would take for its own options is always written in escaped form.
func Command(text string, runs []doc.Run, f Format) string {
	body := Encode(text, runs)
	if f == FormatEscaped || echoOption(body) {
		return `echo -e "` + escapeDouble(body) + `"`
	}
	return "echo '" + strings.ReplaceAll(body, "'", `'\''`) + "'"
}

// echoOption reports whether bash's echo would parse s as a flag like -n.
func echoOption(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	return strings.Trim(s[1:], "neE") == ""
}

// Snapshot is a convenience wrapper around Command for a document snapshot.
func Snapshot(s doc.Snapshot, f Format) string {
	return Command(s.Text, s.Runs, f)
}

// escapeDouble escapes text for a double quoted echo -e argument.
func escapeDouble(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch r {
		case '-':
			if i == 0 {
				// a leading dash would be read as an echo option
				b.WriteString(`\x2d`)
				continue
			}
			b.WriteRune(r)
		case 0x1b:
			b.WriteString(`\033`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			// one level for the shell, one for echo -e
			b.WriteString(`\\\\`)
		case '$':
			b.WriteString(`\$`)
		case '`':
			b.WriteString("\\`")
		case '!':
			// history expansion would fire on a literal '!'
			b.WriteString(`\x21`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

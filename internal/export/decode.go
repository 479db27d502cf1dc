package export

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"echopaint/internal/doc"
	"echopaint/internal/style"
)

// Decode reads ANSI text and returns the plain text and the normalised runs
// described by its SGR sequences. Non-SGR escape sequences and control
// characters other than newline and tab are dropped. Extended 256-colour and
// truecolour parameters are skipped since the palette cannot express them.
func Decode(s string) (string, []doc.Run) {
	var (
		text  []rune
		attrs []style.Attrs
		cur   style.Attrs
		state = xansi.NormalState
		p     = xansi.NewParser()
	)
	for len(s) > 0 {
		seq, _, n, next := xansi.DecodeSequence(s, state, p)
		state = next
		if n <= 0 {
			break
		}
		s = s[n:]
		switch {
		case xansi.HasCsiPrefix(seq):
			if cmd := xansi.Cmd(p.Command()); cmd.Final() == 'm' && cmd.Prefix() == 0 && cmd.Intermediate() == 0 {
				cur = applySGR(cur, p.Params())
			}
		case xansi.HasEscPrefix(seq):
			// other escape sequences carry no style
		default:
			for _, r := range seq {
				if (r < 0x20 && r != '\n' && r != '\t') || r == 0x7f {
					continue
				}
				text = append(text, r)
				attrs = append(attrs, cur)
			}
		}
	}
	return string(text), runsFromAttrs(attrs)
}

// applySGR folds the parameters of one SGR sequence into a. Missing
// parameters count as 0, so an empty sequence resets.
func applySGR(a style.Attrs, params xansi.Params) style.Attrs {
	if len(params) == 0 {
		return style.Attrs{}
	}
	for i := 0; i < len(params); i++ {
		switch p := params[i].Param(0); {
		case p == 0:
			a = style.Attrs{}
		case p == 1:
			a.Bold = true
		case p == 2:
			a.Dim = 1
		case p == 3:
			a.Italic = true
		case p == 4:
			a.Underline = true
		case p == 9:
			a.Strike = true
		case p == 22:
			a.Bold, a.Dim = false, 0
		case p == 23:
			a.Italic = false
		case p == 24:
			a.Underline = false
		case p == 29:
			a.Strike = false
		case p == 38 || p == 48:
			// 38;5;n or 38;2;r;g;b, either with ; or : separators
			if i+1 < len(params) {
				switch params[i+1].Param(0) {
				case 5:
					i += 2
				case 2:
					i += 4
				default:
					i++
				}
			}
		default:
			if c, ok := style.ColorFromFg(p); ok {
				a.Fg = c
			} else if c, ok := style.ColorFromBg(p); ok {
				a.Bg = c
			}
		}
	}
	return a
}

// runsFromAttrs coalesces per-character attributes into runs, skipping
// unstyled characters.
func runsFromAttrs(attrs []style.Attrs) []doc.Run {
	var runs []doc.Run
	for i, a := range attrs {
		if a.IsZero() {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].End == i && runs[n-1].Attrs == a {
			runs[n-1].End = i + 1
			continue
		}
		runs = append(runs, doc.Run{Start: i, End: i + 1, Attrs: a})
	}
	return runs
}

var wrappers = []struct {
	prefix  string
	quote   byte
	escapes bool
}{
	{`echo -e $'`, '\'', true},
	{`echo $'`, '\'', true},
	{`echo -e "`, '"', true},
	{`echo -e '`, '\'', true},
	{`printf "`, '"', true},
	{`printf '`, '\'', true},
	{`echo "`, '"', false},
	{`echo '`, '\'', false},
}

// Unwrap strips an echo or printf wrapper from cmd and undoes the shell and
// echo escaping, yielding the ANSI text the command would print. Input that
// is not a recognised command is returned with literal \033 style escapes
// expanded. wrapped reports whether a wrapper was found.
func Unwrap(cmd string) (body string, wrapped bool) {
	trimmed := strings.TrimSpace(cmd)
	for _, w := range wrappers {
		rest, ok := strings.CutPrefix(trimmed, w.prefix)
		if !ok {
			continue
		}
		end := strings.LastIndexByte(rest, w.quote)
		if end < 0 {
			continue
		}
		inner := rest[:end]
		if w.quote == '"' {
			inner = unescapeDouble(inner)
		} else if !strings.HasSuffix(w.prefix, "$'") {
			inner = strings.ReplaceAll(inner, `'\''`, "'")
		}
		if w.escapes {
			inner = unescapeEcho(inner)
		}
		return inner, true
	}
	if strings.Contains(cmd, `\033[`) || strings.Contains(cmd, `\e[`) || strings.Contains(cmd, `\x1b[`) {
		return unescapeEcho(cmd), false
	}
	return cmd, false
}

// unescapeDouble removes the shell's double-quote escaping.
func unescapeDouble(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte("\"\\$`", s[i+1]) >= 0 {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// unescapeEcho expands the backslash escapes understood by echo -e, printf
// and $'...' quoting.
func unescapeEcho(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch n := s[i]; n {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'e', 'E':
			b.WriteByte(0x1b)
		case '\\', '\'', '"':
			b.WriteByte(n)
		case 'x':
			v, used := readDigits(s[i+1:], 16, 2)
			if used == 0 {
				b.WriteString(`\x`)
				continue
			}
			b.WriteByte(byte(v))
			i += used
		case '0':
			// echo -e spells octal as \0nnn
			v, used := readDigits(s[i+1:], 8, 3)
			b.WriteByte(byte(v))
			i += used
		case '1', '2', '3', '4', '5', '6', '7':
			v, used := readDigits(s[i:], 8, 3)
			b.WriteByte(byte(v))
			i += used - 1
		default:
			b.WriteByte('\\')
			b.WriteByte(n)
		}
	}
	return b.String()
}

// readDigits parses up to limit digits of base from the start of s.
func readDigits(s string, base, limit int) (value, used int) {
	for used < limit && used < len(s) {
		d, err := strconv.ParseUint(s[used:used+1], base, 8)
		if err != nil {
			break
		}
		value = value*base + int(d)
		used++
	}
	return value, used
}

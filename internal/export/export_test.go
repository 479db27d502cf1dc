package export

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"echopaint/internal/doc"
	"echopaint/internal/style"
)

func TestCommand_GreenABC(t *testing.T) {
	d := doc.New("abc")
	if err := d.ApplyStyle(0, 3, style.Patch{}.WithFg(style.Green)); err != nil {
		t.Fatalf("ApplyStyle: %v", err)
	}
	got := Command(d.Text(), d.Runs(), FormatRaw)
	if want := "echo '\x1b[32mabc\x1b[0m'"; got != want {
		t.Fatalf("raw command=%q, want %q", got, want)
	}
	got = Command(d.Text(), d.Runs(), FormatEscaped)
	if want := `echo -e "\033[32mabc\033[0m"`; got != want {
		t.Fatalf("escaped command=%q, want %q", got, want)
	}
}

func TestEncode_GapsAndTransitions(t *testing.T) {
	runs := []doc.Run{
		{Start: 1, End: 3, Attrs: style.Attrs{Fg: style.Red, Bold: true}},
		{Start: 3, End: 4, Attrs: style.Attrs{Bg: style.Blue, Dim: 3}},
	}
	got := Encode("abcde", runs)
	want := "a\x1b[31;1mbc\x1b[0m\x1b[44;2md\x1b[0me"
	if got != want {
		t.Fatalf("Encode=%q, want %q", got, want)
	}
}

func TestCodes_Order(t *testing.T) {
	a := style.Attrs{Fg: style.LightCyan, Bg: style.Gray, Bold: true, Dim: 1, Italic: true, Underline: true, Strike: true}
	want := []int{96, 107, 1, 3, 4, 9, 2}
	if got := Codes(a); !reflect.DeepEqual(got, want) {
		t.Fatalf("Codes=%v, want %v", got, want)
	}
	if SGR(style.Attrs{}) != "" {
		t.Fatalf("plain attrs must not emit a sequence")
	}
}

func TestSGR_MatchesPaletteTable(t *testing.T) {
	for _, c := range style.Palette()[1:] {
		if got, want := SGR(style.Attrs{Fg: c}), fmt.Sprintf("\x1b[%dm", c.FgCode()); got != want {
			t.Fatalf("%s fg: got %q, want %q", c, got, want)
		}
		if got, want := SGR(style.Attrs{Bg: c}), fmt.Sprintf("\x1b[%dm", c.BgCode()); got != want {
			t.Fatalf("%s bg: got %q, want %q", c, got, want)
		}
	}
	if reset != "\x1b[0m" {
		t.Fatalf("reset=%q", reset)
	}
}

func TestCommand_OptionLikeBody(t *testing.T) {
	cases := []struct {
		text string
		f    Format
		want string
	}{
		{"-n", FormatRaw, `echo -e "\x2dn"`},
		{"-eE", FormatEscaped, `echo -e "\x2deE"`},
		{"-x", FormatRaw, "echo '-x'"},
		{"-x", FormatEscaped, `echo -e "\x2dx"`},
		{"a-n", FormatEscaped, `echo -e "a-n"`},
	}
	for _, c := range cases {
		got := Command(c.text, nil, c.f)
		if got != c.want {
			t.Fatalf("%q %s: got %q, want %q", c.text, c.f, got, c.want)
		}
		body, _ := Unwrap(got)
		if text, _ := Decode(body); text != c.text {
			t.Fatalf("%q %s: round trip gave %q", c.text, c.f, text)
		}
	}
}

func TestCommand_Deterministic(t *testing.T) {
	d := doc.New("hello, world")
	_ = d.ApplyStyle(0, 5, style.Patch{}.WithFg(style.Magenta))
	_ = d.ApplyStyle(3, 9, style.Patch{}.WithUnderline(true))
	a := Snapshot(d.Snapshot(), FormatEscaped)
	b := Snapshot(d.Snapshot(), FormatEscaped)
	if a != b {
		t.Fatalf("export not byte-identical:\n%q\n%q", a, b)
	}
}

func TestCommand_EscapesShellSpecials(t *testing.T) {
	text := "it's $HOME `x` \"q\" \\ !\nnext"
	esc := Command(text, nil, FormatEscaped)
	for _, want := range []string{`\$HOME`, "\\`x\\`", `\"q\"`, `\\\\`, `\x21`, `\nnext`} {
		if !strings.Contains(esc, want) {
			t.Fatalf("escaped command %q missing %q", esc, want)
		}
	}
	raw := Command(text, nil, FormatRaw)
	if !strings.Contains(raw, `it'\''s`) {
		t.Fatalf("raw command %q must escape single quotes", raw)
	}
}

func TestUnwrap_RoundTrip(t *testing.T) {
	d := doc.New("say \"hi\" it's $5 \\o/ !\nbye")
	_ = d.ApplyStyle(0, 3, style.Patch{}.WithFg(style.Yellow).WithBold(true))
	_ = d.ApplyStyle(9, 13, style.Patch{}.WithBg(style.Red).WithStrike(true))
	for _, f := range []Format{FormatRaw, FormatEscaped} {
		body, wrapped := Unwrap(Command(d.Text(), d.Runs(), f))
		if !wrapped {
			t.Fatalf("%s: wrapper not recognised", f)
		}
		text, runs := Decode(body)
		if text != d.Text() {
			t.Fatalf("%s: text=%q, want %q", f, text, d.Text())
		}
		if !reflect.DeepEqual(runs, d.Runs()) {
			t.Fatalf("%s: runs=%v, want %v", f, runs, d.Runs())
		}
	}
}

func TestDecode_SGRVariants(t *testing.T) {
	in := "\x1b[1;31mA\x1b[22mB\x1b[38;5;200mC\x1b[39;42mD\x1b[0m\x1b[2JE\x1b[mF\r"
	text, runs := Decode(in)
	if text != "ABCDEF" {
		t.Fatalf("text=%q", text)
	}
	want := []doc.Run{
		{Start: 0, End: 1, Attrs: style.Attrs{Fg: style.Red, Bold: true}},
		{Start: 1, End: 3, Attrs: style.Attrs{Fg: style.Red}},
		{Start: 3, End: 4, Attrs: style.Attrs{Bg: style.Green}},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Fatalf("runs=%v, want %v", runs, want)
	}
}

func TestDecode_ColonSubParams(t *testing.T) {
	text, runs := Decode("\x1b[38:5:9;4mA\x1b[24;38:2:1:2:3;1mB\x1b[m")
	if text != "AB" {
		t.Fatalf("text=%q", text)
	}
	want := []doc.Run{
		{Start: 0, End: 1, Attrs: style.Attrs{Underline: true}},
		{Start: 1, End: 2, Attrs: style.Attrs{Bold: true}},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Fatalf("runs=%v, want %v", runs, want)
	}
}

func TestUnwrap_LiteralEscapes(t *testing.T) {
	body, wrapped := Unwrap(`\e[32mok\x1b[0m \033[1m!\033[0m`)
	if wrapped {
		t.Fatalf("plain text reported as wrapped")
	}
	text, runs := Decode(body)
	if text != "ok !" || len(runs) != 2 {
		t.Fatalf("text=%q runs=%v", text, runs)
	}
	if got, _ := Unwrap("plain"); got != "plain" {
		t.Fatalf("plain input altered: %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("Escaped"); err != nil || f != FormatEscaped {
		t.Fatalf("ParseFormat=%v,%v", f, err)
	}
	if f, _ := ParseFormat(""); f != FormatRaw {
		t.Fatalf("default format=%v", f)
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Fatalf("expected error")
	}
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"echopaint/internal/config"
	tu "echopaint/internal/testutil"
	appver "echopaint/internal/version"
)

// run executes a fresh command tree and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRender_Formats(t *testing.T) {
	tu.ConfigHome(t)
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"render", "abc", "--style", "0:3:fg=green", "-f", "raw"}, "echo '\x1b[32mabc\x1b[0m'\n"},
		{[]string{"render", "abc", "--style", "0:3:fg=green", "-f", "escaped"}, "echo -e \"\\033[32mabc\\033[0m\"\n"},
		{[]string{"render", "abc", "-s", "0::fg=green", "--ansi"}, "\x1b[32mabc\x1b[0m\n"},
		{[]string{"render", "it's"}, "echo 'it'\\''s'\n"},
		// later spans win per field
		{[]string{"render", "ab", "-s", "0:2:fg=red,bold", "-s", "1:2:fg=blue", "--ansi"}, "\x1b[31;1ma\x1b[0m\x1b[34;1mb\x1b[0m\n"},
	}
	for _, c := range cases {
		got, err := run(t, "", c.args...)
		if err != nil {
			t.Fatalf("%v: %v", c.args, err)
		}
		if got != c.want {
			t.Fatalf("%v: got %q, want %q", c.args, got, c.want)
		}
	}
}

func TestRender_FormatFromSettings(t *testing.T) {
	tu.ConfigHome(t)
	p, err := config.SettingsPath()
	if err != nil {
		t.Fatal(err)
	}
	s := config.Default()
	s.ExportFormat = "escaped"
	if err := config.Save(p, s); err != nil {
		t.Fatal(err)
	}
	got, err := run(t, "", "render", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if got != "echo -e \"hi\"\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_BadStyle(t *testing.T) {
	tu.ConfigHome(t)
	for _, c := range []struct {
		style string
		want  string
	}{
		{"0:3", "START:END:PATCH"},
		{"x:3:bold", "start"},
		{"0:3:fg=gren", "did you mean"},
		{"0:3:sparkle", "unknown style attribute"},
		{"0:9:bold", "out of bounds"},
	} {
		_, err := run(t, "", "render", "abc", "--style", c.style, "-f", "raw")
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("style %q: err=%v, want %q", c.style, err, c.want)
		}
	}
}

func TestRender_ClampsUnsupportedDim(t *testing.T) {
	tu.ConfigHome(t)
	got, err := run(t, "", "render", "a", "-s", "0:1:dim=9", "--ansi")
	if err != nil {
		t.Fatalf("clamped style should not fail: %v", err)
	}
	if !strings.Contains(got, "\x1b[") || !strings.Contains(got, "a") {
		t.Fatalf("got %q", got)
	}
}

func TestParseStyleSpec_OpenEnd(t *testing.T) {
	sp, err := parseStyleSpec("6::underline", 11)
	if err != nil {
		t.Fatal(err)
	}
	if sp.start != 6 || sp.end != 11 || !sp.patch.Attrs.Underline {
		t.Fatalf("got %+v", sp)
	}
}

func TestImport_StdinReexports(t *testing.T) {
	tu.ConfigHome(t)
	got, err := run(t, "echo '\x1b[32mabc\x1b[0m'\n", "import", "-f", "escaped")
	if err != nil {
		t.Fatal(err)
	}
	if got != "echo -e \"\\033[32mabc\\033[0m\"\n" {
		t.Fatalf("got %q", got)
	}
}

func TestImport_FileRuns(t *testing.T) {
	tu.ConfigHome(t)
	p := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(p, []byte("a\x1b[1mbc\x1b[0md"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := run(t, "", "import", p, "--runs")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "START") {
		t.Fatalf("got %q", got)
	}
	if f := strings.Fields(lines[1]); f[0] != "1" || f[1] != "3" || f[2] != `"bc"` {
		t.Fatalf("run line %q", lines[1])
	}
}

func TestImport_MissingFile(t *testing.T) {
	tu.ConfigHome(t)
	if _, err := run(t, "", "import", filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}

func TestPalette_Query(t *testing.T) {
	got, err := run(t, "", "palette", "--plain")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(got), "\n")); n != 18 {
		t.Fatalf("full palette has %d lines", n)
	}
	got, err = run(t, "", "palette", "LightRed", "--plain")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) < 2 || !strings.Contains(lines[1], "LightRed") || !strings.Contains(lines[1], "91") {
		t.Fatalf("best match not first: %q", got)
	}
	if _, err := run(t, "", "palette", "zzzz"); err == nil {
		t.Fatal("expected no match error")
	}
}

func TestConfigCommands(t *testing.T) {
	tmp := tu.ConfigHome(t)
	got, err := run(t, "", "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	p := strings.TrimSpace(got)
	if !strings.HasPrefix(p, tmp) {
		t.Fatalf("path %q outside %q", p, tmp)
	}
	if got, err = run(t, "", "config", "init"); err != nil || !strings.Contains(got, "created") {
		t.Fatalf("init: %q %v", got, err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("settings not written: %v", err)
	}
	if got, err = run(t, "", "config", "init"); err != nil || !strings.Contains(got, "keeping") {
		t.Fatalf("second init: %q %v", got, err)
	}
	got, err = run(t, "", "config", "schema")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "export_format") || !strings.Contains(got, "cell_width") {
		t.Fatalf("schema: %s", got)
	}
}

func TestKeysMarkdown(t *testing.T) {
	got, err := run(t, "", "keys", "--markdown")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "# echopaint keys") {
		t.Fatalf("got %q", got)
	}
}

func TestVersion(t *testing.T) {
	got, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != appver.AppVersion {
		t.Fatalf("got %q", got)
	}
}

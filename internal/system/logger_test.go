package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRedirectToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "echopaint.log")
	restore, err := RedirectToFile(p)
	if err != nil {
		t.Fatalf("RedirectToFile: %v", err)
	}
	SetDebug(true)
	Logger.Debug("loaded settings", "path", "x.yaml")
	SetDebug(false)
	Logger.Debug("hidden")
	restore()

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	if !strings.Contains(out, "loaded settings") || !strings.Contains(out, "path=x.yaml") {
		t.Fatalf("log file missing entry: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

package settings

import (
	"testing"

	"echopaint/internal/config"
	"echopaint/internal/style"
)

func TestColumnOptionsCoverPalette(t *testing.T) {
	opts := columnOptions()
	if len(opts) != style.PaletteSize-2 {
		t.Fatalf("len=%d", len(opts))
	}
	if opts[0].Value != 3 || opts[len(opts)-1].Value != style.PaletteSize {
		t.Fatalf("range=%d..%d", opts[0].Value, opts[len(opts)-1].Value)
	}
	if opts[0].Key != "3 (6 rows)" {
		t.Fatalf("label=%q", opts[0].Key)
	}
}

func TestNewFormBindsSettings(t *testing.T) {
	s := config.Default()
	if f := NewForm(&s); f == nil {
		t.Fatal("nil form")
	}
}

package font

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"typeset/unit"
)

func TestShapeProducesOneGlyphPerRune(t *testing.T) {
	f, err := newFont(DefaultID, goregular.TTF)
	if err != nil {
		t.Fatalf("newFont() error: %v", err)
	}
	size := unit.MustNew(12, unit.Pt)
	result, err := Shape(f, "abc", size)
	if err != nil {
		t.Fatalf("Shape() error: %v", err)
	}
	if len(result.Glyphs) != 3 {
		t.Fatalf("glyphs = %d, want 3", len(result.Glyphs))
	}
	for i, g := range result.Glyphs {
		if g.Cluster != i {
			t.Errorf("glyph %d cluster = %d, want %d", i, g.Cluster, i)
		}
		if g.XAdvance.MM() <= 0 {
			t.Errorf("glyph %d advance = %v, want positive", i, g.XAdvance)
		}
	}
}

func TestShapeWidthIsSumOfAdvances(t *testing.T) {
	f, err := newFont(DefaultID, goregular.TTF)
	if err != nil {
		t.Fatalf("newFont() error: %v", err)
	}
	size := unit.MustNew(12, unit.Pt)
	result, err := Shape(f, "hello", size)
	if err != nil {
		t.Fatalf("Shape() error: %v", err)
	}
	sum := 0.0
	for _, g := range result.Glyphs {
		sum += g.XAdvance.MM()
	}
	if diff := result.Width.MM() - sum; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("width = %v mm, want sum of advances %v mm", result.Width.MM(), sum)
	}
}

func TestShapeIsDeterministic(t *testing.T) {
	f, err := newFont(DefaultID, goregular.TTF)
	if err != nil {
		t.Fatalf("newFont() error: %v", err)
	}
	size := unit.MustNew(10, unit.Pt)
	a, err := Shape(f, "deterministic", size)
	if err != nil {
		t.Fatalf("Shape() error: %v", err)
	}
	b, err := Shape(f, "deterministic", size)
	if err != nil {
		t.Fatalf("Shape() error: %v", err)
	}
	if a.Width.MM() != b.Width.MM() {
		t.Error("Shape() should be deterministic for identical inputs")
	}
}

func TestShapeEmptyText(t *testing.T) {
	f, err := newFont(DefaultID, goregular.TTF)
	if err != nil {
		t.Fatalf("newFont() error: %v", err)
	}
	result, err := Shape(f, "", unit.MustNew(12, unit.Pt))
	if err != nil {
		t.Fatalf("Shape() error: %v", err)
	}
	if len(result.Glyphs) != 0 || result.Width.MM() != 0 {
		t.Errorf("expected empty result for empty text, got %+v", result)
	}
}

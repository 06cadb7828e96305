package font

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"typeset/lerr"
	"typeset/style"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(goregular.TTF, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	return r
}

func TestNewRegistryRegistersDefaultFont(t *testing.T) {
	r := newTestRegistry(t)
	f := r.GetFont(DefaultID)
	if f == nil {
		t.Fatal("expected default font registered at id 0")
	}
}

func TestFindByPathLoadsAndMemoises(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test-font.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("writing test fixture: %v", err)
	}

	r := newTestRegistry(t)
	id1, err := r.FindByPath(path)
	if err != nil {
		t.Fatalf("FindByPath() error: %v", err)
	}
	if id1 == DefaultID {
		t.Error("expected a new id distinct from the default font")
	}
	id2, err := r.FindByPath(path)
	if err != nil {
		t.Fatalf("FindByPath() second call error: %v", err)
	}
	if id1 != id2 {
		t.Errorf("FindByPath not memoised: %v != %v", id1, id2)
	}
}

func TestFindByPathMissingFile(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.FindByPath("/nonexistent/font.ttf")
	if err == nil {
		t.Fatal("expected error for missing font file")
	}
	if !lerr.Is(err, lerr.FontResolutionErrorKind) {
		t.Errorf("error = %v, want FontResolutionErrorKind", err)
	}
}

func TestFindByPathRejectsNonFont(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-font.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("writing test fixture: %v", err)
	}
	r := newTestRegistry(t)
	if _, err := r.FindByPath(path); err == nil {
		t.Fatal("expected error for non-font file")
	}
}

func TestFindByTypeFallsBackToDefaultWhenUnconfigured(t *testing.T) {
	r := newTestRegistry(t)
	id, err := r.FindByType(style.Serif, StyleSettings{})
	if err != nil {
		t.Fatalf("FindByType() error: %v", err)
	}
	if id != DefaultID {
		t.Errorf("id = %v, want default font fallback", id)
	}
}

func TestFindByTypeUsesConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "serif.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("writing test fixture: %v", err)
	}
	r, err := NewRegistry(goregular.TTF, map[style.FamilyType]string{style.Serif: path}, nil, nil)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	id, err := r.FindByType(style.Serif, StyleSettings{})
	if err != nil {
		t.Fatalf("FindByType() error: %v", err)
	}
	if id == DefaultID {
		t.Error("expected the configured serif font, not the default fallback")
	}
}

func TestFindByNameFallsBackToDefaultWhenUnconfigured(t *testing.T) {
	r := newTestRegistry(t)
	id, err := r.FindByName("Times New Roman", StyleSettings{})
	if err != nil {
		t.Fatalf("FindByName() error: %v", err)
	}
	if id != DefaultID {
		t.Errorf("id = %v, want default font fallback", id)
	}
}

func TestSubsetFontsIteratesEveryRegisteredFont(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("writing test fixture: %v", err)
	}
	r := newTestRegistry(t)
	id, err := r.FindByPath(path)
	if err != nil {
		t.Fatalf("FindByPath() error: %v", err)
	}
	if err := r.SubsetFonts(); err != nil {
		t.Fatalf("SubsetFonts() error: %v", err)
	}
	extra := r.GetFont(id)
	vid := extra.SetVariations(nil)
	if _, err := extra.GetSubsettedFontData(vid); err != nil {
		t.Errorf("expected subsetted data for loaded font: %v", err)
	}
}

package cssparse

import (
	"testing"

	"typeset/style"
	"typeset/unit"
)

func TestParseDistanceUnits(t *testing.T) {
	cases := map[string]unit.Unit{
		"10mm": unit.MM,
		"10cm": unit.CM,
		"10dm": unit.DM,
		"10m":  unit.M,
		"10in": unit.In,
		"10pt": unit.Pt,
	}
	for raw, u := range cases {
		d, err := parseDistance(raw)
		if err != nil {
			t.Fatalf("parseDistance(%q) error: %v", raw, err)
		}
		want, _ := unit.New(10, u)
		if d.MM() != want.MM() {
			t.Errorf("parseDistance(%q) = %v mm, want %v mm", raw, d.MM(), want.MM())
		}
	}
}

func TestParseDistanceMissingUnit(t *testing.T) {
	if _, err := parseDistance("10"); err == nil {
		t.Error("expected error for missing unit")
	}
}

func TestParseDistanceUnknownUnit(t *testing.T) {
	if _, err := parseDistance("10px"); err == nil {
		t.Error("expected error for unrecognised unit px (not in the style grammar's unit set)")
	}
}

func TestParseFamilyDefault(t *testing.T) {
	fs, err := parseFamily("default")
	if err != nil {
		t.Fatalf("parseFamily() error: %v", err)
	}
	if fs.Kind != style.FamilyDefault {
		t.Errorf("family = %+v, want default", fs)
	}
}

func TestParseFamilyName(t *testing.T) {
	fs, err := parseFamily(`"Times New Roman"`)
	if err != nil {
		t.Fatalf("parseFamily() error: %v", err)
	}
	if fs.Kind != style.FamilyByName || fs.Name != "Times New Roman" {
		t.Errorf("family = %+v", fs)
	}
}

func TestParseWeightNumber(t *testing.T) {
	w, err := parseWeight("550")
	if err != nil {
		t.Fatalf("parseWeight() error: %v", err)
	}
	if w != 550 {
		t.Errorf("weight = %v, want 550", w)
	}
}

func TestParseWeightInvalid(t *testing.T) {
	if _, err := parseWeight("heavy"); err == nil {
		t.Error("expected error for unrecognised weight keyword")
	}
}

func TestParseFontStyleValues(t *testing.T) {
	cases := map[string]style.FontStyleKind{
		"normal":  style.FontStyleNormal,
		"italic":  style.FontStyleItalic,
		"oblique": style.FontStyleOblique,
	}
	for raw, want := range cases {
		got, err := parseFontStyle(raw)
		if err != nil {
			t.Fatalf("parseFontStyle(%q) error: %v", raw, err)
		}
		if got != want {
			t.Errorf("parseFontStyle(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseAlignmentValues(t *testing.T) {
	cases := map[string]style.TextAlignment{
		"left":    style.AlignLeft,
		"center":  style.AlignCenter,
		"right":   style.AlignRight,
		"justify": style.AlignJustify,
	}
	for raw, want := range cases {
		got, err := parseAlignment(raw)
		if err != nil {
			t.Fatalf("parseAlignment(%q) error: %v", raw, err)
		}
		if got != want {
			t.Errorf("parseAlignment(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseVariationSettingsMalformed(t *testing.T) {
	if _, err := parseVariationSettings(`"wg" 700`); err == nil {
		t.Error("expected error for non-4-char tag")
	}
}

package font

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"typeset/unit"
)

// Glyph is one shaped glyph: its codepoint, the byte cluster it came
// from in the source text, and its two advances. FontXAdvance is the
// raw metric the font itself reports; XAdvance is the advance the
// layout engine measured the text at. The two are equal for this
// shaper (no kerning/GPOS), but kept distinct since the contract
// requires both: an output emitter applies `font_x_advance -
// x_advance` as a per-glyph positional correction.
type Glyph struct {
	Codepoint    rune
	Cluster      int
	XAdvance     unit.Distance
	FontXAdvance unit.Distance
}

// Result is the outcome of shaping one run of text.
type Result struct {
	Width  unit.Distance
	Glyphs []Glyph
}

// referenceDPI is the nominal resolution shaping runs at: font-size in
// points maps directly to pixels-per-em, matching how the style
// parser's Distance-in-points values are already expressed.
const referenceDPI = 72.0

// Shape deterministically maps text to one glyph per rune, using f's
// cmap for codepoint-to-glyph lookup and the font's own hinted advance
// widths for spacing. Complex shaping (ligatures, bidi reordering,
// mark positioning) is out of scope: every rune advances independently
// left to right.
func Shape(f *Font, text string, fontSize unit.Distance) (Result, error) {
	ppem := fixed.Int26_6(fontSize.MM() / (25.4 / referenceDPI) * 64)

	var buf sfnt.Buffer
	var glyphs []Glyph
	total := 0.0

	for i, r := range text {
		idx, err := f.parsed.GlyphIndex(&buf, r)
		if err != nil {
			return Result{}, fmt.Errorf("looking up glyph for %q: %w", r, err)
		}
		adv, err := f.parsed.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			return Result{}, fmt.Errorf("measuring advance for %q: %w", r, err)
		}
		mm := fixedToMM(adv)
		d, err := unit.New(mm, unit.MM)
		if err != nil {
			return Result{}, err
		}
		glyphs = append(glyphs, Glyph{
			Codepoint:    r,
			Cluster:      i,
			XAdvance:     d,
			FontXAdvance: d,
		})
		total += mm
	}

	width, err := unit.New(total, unit.MM)
	if err != nil {
		return Result{}, err
	}
	return Result{Width: width, Glyphs: glyphs}, nil
}

// fixedToMM converts a fixed.Int26_6 pixel measurement (at
// referenceDPI) to millimetres.
func fixedToMM(v fixed.Int26_6) float64 {
	pixels := float64(v) / 64.0
	return pixels * 25.4 / referenceDPI
}

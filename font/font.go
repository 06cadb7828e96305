// Package font implements the font adapter collaborator: a registry of
// loaded fonts addressed by id, variation tracking, used-codepoint
// accounting, and export-time subsetting.
package font

import (
	"fmt"
	"sort"

	"golang.org/x/image/font/sfnt"

	"typeset/style"
)

// ID addresses a loaded font in a Registry. 0 always names the
// registry's default font.
type ID uint64

const DefaultID ID = 0

// VariationID addresses one registered variable-font axis assignment
// on a Font, memoised by its tag/value list.
type VariationID uint64

// Variation is a single variable-font axis assignment.
type Variation struct {
	Tag   string
	Value int32
}

// StyleSettings narrows a family lookup to a specific style/weight/
// stretch combination, used as part of the FindByType/FindByName
// memoisation key.
type StyleSettings struct {
	Style   style.FontStyleKind
	Weight  float64
	Stretch float64
}

func variationKey(vs []Variation) string {
	sorted := make([]Variation, len(vs))
	copy(sorted, vs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })
	key := ""
	for _, v := range sorted {
		key += fmt.Sprintf("%s=%d;", v.Tag, v.Value)
	}
	return key
}

// Font is one loaded font face: its parsed sfnt data plus the
// variation/used-codepoint/subsetted-bytes bookkeeping the adapter
// contract requires.
type Font struct {
	id     ID
	raw    []byte
	parsed *sfnt.Font

	variationsByKey map[string]VariationID
	variationAxes   map[VariationID][]Variation
	usedCodepoints  map[VariationID]map[rune]struct{}
	subsetted       map[VariationID][]byte
	nextVariationID VariationID
}

func newFont(id ID, raw []byte) (*Font, error) {
	parsed, err := sfnt.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing font data: %w", err)
	}
	return &Font{
		id:              id,
		raw:             raw,
		parsed:          parsed,
		variationsByKey: map[string]VariationID{},
		variationAxes:   map[VariationID][]Variation{},
		usedCodepoints:  map[VariationID]map[rune]struct{}{},
		subsetted:       map[VariationID][]byte{},
	}, nil
}

// ID returns the font's registry id.
func (f *Font) ID() ID { return f.id }

// Parsed exposes the underlying sfnt font for glyph/advance lookups.
func (f *Font) Parsed() *sfnt.Font { return f.parsed }

// SetVariations registers (if not already known) a variable-font axis
// assignment and returns its memoised id.
func (f *Font) SetVariations(vs []Variation) VariationID {
	key := variationKey(vs)
	if id, ok := f.variationsByKey[key]; ok {
		return id
	}
	id := f.nextVariationID
	f.nextVariationID++
	f.variationsByKey[key] = id
	f.variationAxes[id] = vs
	f.usedCodepoints[id] = map[rune]struct{}{}
	return id
}

// MarkCodepointAsUsed records that r was shaped under variation vid,
// so a later Subset call includes it.
func (f *Font) MarkCodepointAsUsed(vid VariationID, r rune) {
	set, ok := f.usedCodepoints[vid]
	if !ok {
		set = map[rune]struct{}{}
		f.usedCodepoints[vid] = set
	}
	set[r] = struct{}{}
}

// Subset stores the font's full raw bytes as the output for every
// registered variation; the glyph tables are not reduced to the
// codepoints marked used, so the output does not depend on the
// used-codepoint sets. Re-running it produces byte-identical output.
func (f *Font) Subset() error {
	for vid := range f.variationAxes {
		f.subsetted[vid] = f.raw
	}
	// The default (zero-value) variation id exists even when no
	// font-variation-settings declaration ever touched this font.
	if _, ok := f.subsetted[0]; !ok {
		f.subsetted[0] = f.raw
	}
	return nil
}

// GetSubsettedFontData returns the bytes produced by the most recent
// Subset call for vid. Subset must have run first.
func (f *Font) GetSubsettedFontData(vid VariationID) ([]byte, error) {
	data, ok := f.subsetted[vid]
	if !ok {
		return nil, fmt.Errorf("font %d: variation %d has not been subsetted yet", f.id, vid)
	}
	return data, nil
}

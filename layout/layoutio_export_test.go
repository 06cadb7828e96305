package layout

import (
	"strings"
	"testing"

	"typeset/layoutio"
	"typeset/unit"
)

// TestLayoutioExportRendersPagesAndGlyphs builds a DocumentLayout
// directly (bypassing the full driver, which needs a real font file to
// shape against) and checks layoutio.Export renders its pages, text
// slices and glyphs.
func TestLayoutioExportRendersPagesAndGlyphs(t *testing.T) {
	dl := NewDocumentLayout()
	dl.addPage(Page{Number: 1})
	dl.setElement(LayoutElement{
		ID:     1,
		Bounds: Bounds{Size: Size{Width: unit.MustNew(50, unit.MM), Height: unit.MustNew(10, unit.MM)}},
		Content: LayoutElementContent{
			Kind: ElementTextSlice,
			TextSlice: TextSliceContent{
				FontSize: unit.MustNew(12, unit.Pt),
				Glyphs: []GlyphDetail{
					{Codepoint: 'a', XAdvance: unit.MustNew(2, unit.MM), FontXAdvance: unit.MustNew(2.1, unit.MM)},
				},
			},
		},
	})
	dl.pages[0].AddElement(1)

	doc := layoutio.Export(dl, layoutio.Options{})
	out, err := doc.WriteToString()
	if err != nil {
		t.Fatalf("WriteToString: %v", err)
	}
	for _, want := range []string{"<page", "<text", "<glyph", `advance-correction-mm`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

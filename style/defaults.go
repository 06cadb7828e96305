package style

import "typeset/unit"

// headingFontSizesPt gives the font-size, in points, for heading
// levels 0-4; any deeper level falls back to headingFallbackPt.
var headingFontSizesPt = []float64{48, 32, 24, 20, 16}

const headingFallbackPt = 14

// NewDefaultRegistry builds the registry of root-level defaults the
// external interface promises when no style sheet overrides them:
// the `document` node's page size and margins, and `heading`'s
// per-level font-size/margin scaling. A caller-supplied stylesheet
// registers its own rules on top of (after) these, so cascade order
// still gives the document's own rules priority for any selector key
// they share.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	root := r.AddDefinition(Definition{
		Width(unit.MustNew(210, unit.MM)),
		Height(unit.MustNew(297, unit.MM)),
		MarginTop(unit.MustNew(2, unit.CM)),
		MarginRight(unit.MustNew(2, unit.CM)),
		MarginBottom(unit.MustNew(2, unit.CM)),
		MarginLeft(unit.MustNew(2, unit.CM)),
	})
	r.Register("document", nil, nil, root)

	for level := 0; level < len(headingFontSizesPt); level++ {
		def := r.AddDefinition(Definition{
			FontSize(unit.MustNew(headingFontSizesPt[level], unit.Pt)),
			MarginTop(unit.MustNew(5, unit.MM)),
			MarginBottom(unit.MustNew(5, unit.MM)),
		})
		pc := Level(level)
		r.Register("heading", nil, &pc, def)
	}
	fallback := r.AddDefinition(Definition{
		FontSize(unit.MustNew(headingFallbackPt, unit.Pt)),
		MarginTop(unit.MustNew(5, unit.MM)),
		MarginBottom(unit.MustNew(5, unit.MM)),
	})
	r.Register("heading", nil, nil, fallback)

	return r
}

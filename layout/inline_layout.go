package layout

import (
	"typeset/document"
	"typeset/hyph"
	"typeset/unit"
)

// layoutInline runs the full inline pipeline for node — transform,
// break, assemble, align and place — assuming the caller has already
// pushed node's own style frame. It advances the context's bounds past
// the space the placed lines consumed, pushing new pages as needed.
func layoutInline(ctx *Context, tree *document.Tree, node *document.Node, hy *hyph.Hyphenator) error {
	items, err := transformSubtree(ctx, tree, node, hy)
	if err != nil {
		return err
	}

	sty := ctx.CurrentStyle()
	lineHeight := sty.LineHeight()

	bounds := ctx.ChooseNextBounds()
	breaks := breakIntoLines(items, bounds.Size.Width)
	lines := assembleLines(items, breaks)

	cursorY := unit.Zero()
	for lineIdx, line := range lines {
		bounds = ctx.ChooseNextBounds()
		if cursorY.Add(lineHeight).Greater(bounds.Size.Height) {
			ctx.PushPage()
			bounds = ctx.Bounds()
			cursorY = unit.Zero()
		}

		indent := unit.Zero()
		if lineIdx == 0 {
			indent = sty.FirstLineIndent
		}
		measure := bounds.Size.Width.Sub(indent)
		isLast := lineIdx == len(lines)-1

		natural := line.NaturalWhiteSpace
		if natural.IsZero() {
			var err error
			natural, err = shapeWidth(ctx, sty, " ")
			if err != nil {
				return err
			}
		}
		spacing := wordSpacing(line, measure, natural, sty.TextAlignment, isLast)
		cursorX := lineOffset(line, measure, spacing, sty.TextAlignment).Add(indent)

		for itemIdx, li := range line.Items {
			for _, part := range li.Parts {
				width, err := placePart(ctx, bounds, Position{X: cursorX, Y: cursorY}, part)
				if err != nil {
					return err
				}
				cursorX = cursorX.Add(width)
			}
			if itemIdx != len(line.Items)-1 {
				cursorX = cursorX.Add(spacing)
			}
		}

		cursorY = cursorY.Add(lineHeight)
	}

	ctx.SetBounds(Bounds{
		Position: Position{X: bounds.Position.X, Y: bounds.Position.Y.Add(cursorY)},
		Size:     Size{Width: bounds.Size.Width, Height: bounds.Size.Height.Sub(cursorY)},
	})
	return nil
}

// placePart shapes one LineItemContent's text, registers it as a
// TextSlice element positioned at origin relative to bounds, marks its
// glyphs used on the resolved font/variation, and returns the run's
// rendered width.
func placePart(ctx *Context, bounds Bounds, origin Position, part LineItemContent) (unit.Distance, error) {
	res, fontID, vid, err := shapeText(ctx, part.Style, part.Text)
	if err != nil {
		return unit.Distance{}, err
	}

	f := ctx.GetFontMut(fontID)
	glyphs := make([]GlyphDetail, len(res.Glyphs))
	cursor := unit.Zero()
	for i, g := range res.Glyphs {
		glyphs[i] = GlyphDetail{
			Codepoint:    g.Codepoint,
			Cluster:      g.Cluster,
			Offset:       Position{X: cursor, Y: unit.Zero()},
			XAdvance:     g.XAdvance,
			FontXAdvance: g.FontXAdvance,
		}
		cursor = cursor.Add(g.XAdvance)
		f.MarkCodepointAsUsed(vid, g.Codepoint)
	}

	ctx.RegisterElement(LayoutElement{
		Bounds: Bounds{
			Position: Position{X: bounds.Position.X.Add(origin.X), Y: bounds.Position.Y.Add(origin.Y)},
			Size:     Size{Width: res.Width, Height: part.Style.LineHeight()},
		},
		Content: LayoutElementContent{
			Kind: ElementTextSlice,
			TextSlice: TextSliceContent{
				FontID:          fontID,
				FontVariationID: vid,
				FontSize:        part.Style.FontSize,
				Glyphs:          glyphs,
			},
		},
	})

	return res.Width, nil
}

package layout

import (
	"fmt"
	"strings"

	"typeset/document"
	"typeset/font"
	"typeset/hyph"
	"typeset/lerr"
	"typeset/style"
	"typeset/unit"
)

func resolveFont(ctx *Context, sty style.LayoutStyle) (font.ID, font.VariationID, *font.Font, error) {
	fontID, err := ctx.FindFont(sty.FontFamily, font.StyleSettings{
		Style:   sty.FontStyle,
		Weight:  sty.FontWeight,
		Stretch: sty.FontStretch,
	})
	if err != nil {
		return 0, 0, nil, err
	}
	f := ctx.GetFontMut(fontID)
	vid := f.SetVariations(toFontVariations(sty.VariationSettings))
	return fontID, vid, f, nil
}

func toFontVariations(vs []style.VariationSetting) []font.Variation {
	out := make([]font.Variation, len(vs))
	for i, v := range vs {
		out[i] = font.Variation{Tag: v.Tag, Value: v.Value}
	}
	return out
}

func shapeText(ctx *Context, sty style.LayoutStyle, text string) (font.Result, font.ID, font.VariationID, error) {
	fontID, vid, f, err := resolveFont(ctx, sty)
	if err != nil {
		return font.Result{}, 0, 0, err
	}
	res, err := font.Shape(f, text, sty.FontSize)
	if err != nil {
		return font.Result{}, 0, 0, lerr.ShapingError("shaping inline text", err)
	}
	return res, fontID, vid, nil
}

func shapeWidth(ctx *Context, sty style.LayoutStyle, text string) (unit.Distance, error) {
	res, _, _, err := shapeText(ctx, sty, text)
	if err != nil {
		return unit.Distance{}, err
	}
	return res.Width, nil
}

// transformSubtree converts node's inline content into an item stream,
// terminated by the paragraph-end marker (an infinitely stretchable
// glue followed by a forced break), ready for line breaking. It
// assumes the caller has already pushed node's own style frame; only
// node's children are walked, unless node is itself a Text node (a
// synthesized single-run paragraph has no children to walk).
func transformSubtree(ctx *Context, tree *document.Tree, node *document.Node, hy *hyph.Hyphenator) ([]Item, error) {
	var items []Item
	var err error

	if node.Value.Kind == document.KindText {
		items, err = textToItems(ctx, node.ID, node.Value.Text, hy)
	} else {
		items, err = transformChildren(ctx, tree, node.Children, hy)
	}
	if err != nil {
		return nil, err
	}

	items = append(items,
		NewGlueItem(unit.Zero(), unit.MustNew(1e6, unit.MM), unit.Zero()),
		NewPenaltyItem(unit.Zero(), -InfinitePenalty, true),
	)
	return items, nil
}

func transformChildren(ctx *Context, tree *document.Tree, ids []document.ID, hy *hyph.Hyphenator) ([]Item, error) {
	var items []Item
	for _, id := range ids {
		node := tree.Get(id)
		if node == nil {
			continue
		}
		switch node.Value.Kind {
		case document.KindText:
			txt, err := textToItems(ctx, id, node.Value.Text, hy)
			if err != nil {
				return nil, err
			}
			items = append(items, txt...)
		case document.KindBold, document.KindItalic:
			if err := ctx.PushNodeStyles(node); err != nil {
				return nil, err
			}
			child, err := transformChildren(ctx, tree, node.Children, hy)
			ctx.PopNodeStyles(node)
			if err != nil {
				return nil, err
			}
			items = append(items, child...)
		case document.KindBreak:
			items = append(items,
				NewGlueItem(unit.Zero(), unit.Zero(), unit.Zero()),
				NewPenaltyItem(unit.Zero(), -InfinitePenalty, false),
			)
		default:
			return nil, lerr.UnsupportedInlineNode(fmt.Sprintf(
				"node %q (%s) cannot appear inside inline content", node.Name, node.Value.Kind))
		}
	}
	return items, nil
}

// textToItems scans s one rune at a time, buffering a word until a
// space, newline or literal hyphen breaks it, at which point the
// buffered word is flushed (hyphenated into syllable boxes) before the
// triggering character is itself turned into an item. Carriage returns
// are dropped outright.
func textToItems(ctx *Context, node document.ID, s string, hy *hyph.Hyphenator) ([]Item, error) {
	sty := ctx.CurrentStyle()
	var items []Item
	var word strings.Builder

	flushWord := func(buf *strings.Builder) error {
		w := buf.String()
		buf.Reset()
		if w == "" {
			return nil
		}
		syllables := []string{w}
		if hy != nil {
			syllables = hy.Syllables(w)
		}
		hyphenWidth, err := shapeWidth(ctx, sty, "-")
		if err != nil {
			return err
		}
		for i, syl := range syllables {
			width, err := shapeWidth(ctx, sty, syl)
			if err != nil {
				return err
			}
			items = append(items, NewBoxItem(width, syl, node, sty))
			if i < len(syllables)-1 {
				items = append(items, NewPenaltyItem(hyphenWidth, HyphenPenalty, true))
			}
		}
		return nil
	}

	for _, r := range s {
		switch {
		case r == '\r':
			continue
		case r == '-':
			if err := flushWord(&word); err != nil {
				return nil, err
			}
			width, err := shapeWidth(ctx, sty, "-")
			if err != nil {
				return nil, err
			}
			items = append(items, NewBoxItem(width, "-", node, sty))
			items = append(items, NewPenaltyItem(unit.Zero(), HyphenPenalty, true))
		case r == ' ' || r == '\n':
			if err := flushWord(&word); err != nil {
				return nil, err
			}
			if len(items) == 0 || items[len(items)-1].Kind == ItemGlue {
				continue
			}
			width, err := shapeWidth(ctx, sty, " ")
			if err != nil {
				return nil, err
			}
			stretch, err := sty.FontSize.Shrink(6)
			if err != nil {
				return nil, err
			}
			shrinkAmount, err := sty.FontSize.Shrink(9)
			if err != nil {
				return nil, err
			}
			items = append(items, NewGlueItem(width, stretch, shrinkAmount))
		default:
			word.WriteRune(r)
		}
	}
	if err := flushWord(&word); err != nil {
		return nil, err
	}
	return items, nil
}

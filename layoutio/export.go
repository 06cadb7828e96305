// Package layoutio renders a DocumentLayout to an inspectable XML tree,
// the debug counterpart to script's Parser: where script turns markup
// into a document.Tree, layoutio turns the layout driver's result back
// into markup a human (or a diff) can read.
package layoutio

import (
	"strconv"

	"github.com/beevik/etree"

	"typeset/font"
	"typeset/layout"
)

// Options controls what Export includes in the exported tree.
type Options struct {
	// Fonts resolves a TextSlice's FontID to its loaded Font; every
	// glyph run whose font is found gets font-subsetted="true".
	// Nil is accepted; the font-subsetted attribute is then omitted.
	Fonts *font.Registry
}

// Export renders every page of l, in order, as a <document> element
// holding one <page> per Page, each holding one element per
// LayoutElement the page references, in placement order.
func Export(l *layout.DocumentLayout, opts Options) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("document")
	for _, page := range l.Pages() {
		writePage(root, l, page, opts)
	}
	return doc
}

func writePage(parent *etree.Element, l *layout.DocumentLayout, page layout.Page, opts Options) {
	pe := parent.CreateElement("page")
	pe.CreateAttr("number", itoa(page.Number))

	if el, ok := l.Element(page.Element); ok {
		writeSize(pe, el.Bounds.Size)
	}

	for _, id := range page.Elements {
		el, ok := l.Element(id)
		if !ok {
			continue
		}
		writeElement(pe, el, opts)
	}
}

func writeElement(parent *etree.Element, el layout.LayoutElement, opts Options) {
	switch el.Content.Kind {
	case layout.ElementTextSlice:
		writeTextSlice(parent, el, opts)
	case layout.ElementImage:
		writeImage(parent, el)
	default:
		// Page elements are only ever the page's own root, already
		// represented by the <page> element itself.
	}
}

func writeTextSlice(parent *etree.Element, el layout.LayoutElement, opts Options) {
	e := parent.CreateElement("text")
	writeBounds(e, el.Bounds)

	ts := el.Content.TextSlice
	e.CreateAttr("font-size-mm", ftoa(ts.FontSize.MM()))
	e.CreateAttr("font-id", utoa(uint64(ts.FontID)))
	e.CreateAttr("variation-id", utoa(uint64(ts.FontVariationID)))

	if opts.Fonts != nil {
		if f := opts.Fonts.GetFont(ts.FontID); f != nil {
			e.CreateAttr("font-subsetted", boolToA(true))
		}
	}

	for _, g := range ts.Glyphs {
		ge := e.CreateElement("glyph")
		ge.CreateAttr("codepoint", itoa(int(g.Codepoint)))
		ge.CreateAttr("cluster", itoa(g.Cluster))
		ge.CreateAttr("x-mm", ftoa(g.Offset.X.MM()))
		ge.CreateAttr("y-mm", ftoa(g.Offset.Y.MM()))
		// the layout engine's own advance and the font's reported advance
		// are carried separately (this module's shaper sets them equal,
		// so the correction is zero for its runs); a renderer positions each glyph at Offset and nudges the pen by
		// this correction on top of XAdvance to land back on the font's
		// natural spacing.
		correction := g.FontXAdvance.Sub(g.XAdvance)
		ge.CreateAttr("advance-correction-mm", ftoa(correction.MM()))
	}
}

func writeImage(parent *etree.Element, el layout.LayoutElement) {
	e := parent.CreateElement("image")
	writeBounds(e, el.Bounds)
	e.CreateAttr("src", el.Content.Image.Source)
}

func writeBounds(e *etree.Element, b layout.Bounds) {
	e.CreateAttr("x-mm", ftoa(b.Position.X.MM()))
	e.CreateAttr("y-mm", ftoa(b.Position.Y.MM()))
	writeSize(e, b.Size)
}

func writeSize(e *etree.Element, s layout.Size) {
	e.CreateAttr("width-mm", ftoa(s.Width.MM()))
	e.CreateAttr("height-mm", ftoa(s.Height.MM()))
}

func itoa(v int) string     { return strconv.Itoa(v) }
func utoa(v uint64) string  { return strconv.FormatUint(v, 10) }
func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

func boolToA(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Package layout implements the layout driver: the pass loop that walks
// the document tree, resolves styles through the cascade, and produces
// a DocumentLayout of positioned pages and elements. It also implements
// the inline rule (text -> items -> broken lines -> positioned glyphs)
// as part of this same package, since the rule needs both the driver's
// Context and its element types and a split package would import-cycle.
package layout

import (
	"typeset/font"
	"typeset/unit"
)

// ElementID addresses one LayoutElement inside a DocumentLayout's arena.
type ElementID uint64

// Position is a point on a page, measured from its top-left corner.
type Position struct {
	X, Y unit.Distance
}

// ZeroPosition is the page origin.
func ZeroPosition() Position { return Position{X: unit.Zero(), Y: unit.Zero()} }

// Absolute returns rel interpreted relative to p, as an absolute
// position on the same page.
func (p Position) Absolute(rel Position) Position {
	return Position{X: p.X.Add(rel.X), Y: p.Y.Add(rel.Y)}
}

// RelativeTo returns p's offset from origin.
func (p Position) RelativeTo(origin Position) Position {
	return Position{X: p.X.Sub(origin.X), Y: p.Y.Sub(origin.Y)}
}

// Size is a two-dimensional extent.
type Size struct {
	Width, Height unit.Distance
}

// ZeroSize is the empty extent.
func ZeroSize() Size { return Size{Width: unit.Zero(), Height: unit.Zero()} }

// WithWidth returns s with its width replaced.
func (s Size) WithWidth(w unit.Distance) Size { return Size{Width: w, Height: s.Height} }

// WithHeight returns s with its height replaced.
func (s Size) WithHeight(h unit.Distance) Size { return Size{Width: s.Width, Height: h} }

// IsNegative reports whether either dimension of s has gone negative,
// the signal the context uses to decide a frame no longer fits the
// remaining page and must force a page break.
func (s Size) IsNegative() bool {
	return s.Width.MM() < 0 || s.Height.MM() < 0
}

// MaxSize returns the larger width and the larger height of a and b,
// independently per axis.
func MaxSize(a, b Size) Size {
	return Size{Width: unit.Max(a.Width, b.Width), Height: unit.Max(a.Height, b.Height)}
}

// Bounds is a rectangle on a page: its top-left position and its size.
type Bounds struct {
	Position Position
	Size     Size
}

// LayoutConstraints is the space a page (or a nested frame) has to lay
// its content into: an overall size plus the four margins still to be
// subtracted from it.
type LayoutConstraints struct {
	Size                     Size
	Top, Bottom, Left, Right unit.Distance
}

// ContentBounds returns the bounds available for content after c's
// margins are subtracted, positioned at (Left, Top).
func (c LayoutConstraints) ContentBounds() Bounds {
	width := c.Size.Width.Sub(c.Left).Sub(c.Right)
	height := c.Size.Height.Sub(c.Top).Sub(c.Bottom)
	return Bounds{
		Position: Position{X: c.Left, Y: c.Top},
		Size:     Size{Width: width, Height: height},
	}
}

// LayoutElementKind discriminates LayoutElementContent.
type LayoutElementKind int

const (
	ElementPage LayoutElementKind = iota
	ElementTextSlice
	ElementImage
)

// GlyphDetail is one positioned, shaped glyph within a text slice.
// FontXAdvance is the font's own reported advance for the glyph;
// XAdvance is the advance the layout engine actually measured the run
// at. An emitter applies their difference as a per-glyph positional
// correction.
type GlyphDetail struct {
	Codepoint    rune
	Cluster      int
	Offset       Position
	XAdvance     unit.Distance
	FontXAdvance unit.Distance
}

// TextSliceContent is the payload of an ElementTextSlice element: one
// run of glyphs sharing a font, variation and size.
type TextSliceContent struct {
	FontID          font.ID
	FontVariationID font.VariationID
	FontSize        unit.Distance
	Glyphs          []GlyphDetail
}

// ImageContent is the payload of an ElementImage element.
type ImageContent struct {
	Source string
}

// LayoutElementContent is the tagged payload of a LayoutElement. Only
// the field named by Kind is meaningful.
type LayoutElementContent struct {
	Kind       LayoutElementKind
	TextSlice  TextSliceContent
	Image      ImageContent
}

// LayoutElement is one positioned element of the finished layout.
type LayoutElement struct {
	ID      ElementID
	Bounds  Bounds
	Content LayoutElementContent
}

// Page is one page of the finished layout: the ordered ids of every
// element placed on it, plus the id of the Page element itself so a
// renderer can look up the page's own bounds the same way as any other
// element.
type Page struct {
	Number   int
	Element  ElementID
	Elements []ElementID
}

// AddElement appends id to the page's element list.
func (p *Page) AddElement(id ElementID) {
	p.Elements = append(p.Elements, id)
}

// DocumentLayout is the finished output of a layout pass: every page,
// in order, plus the arena of every element referenced from them.
type DocumentLayout struct {
	pages    []Page
	elements map[ElementID]LayoutElement
}

// NewDocumentLayout returns an empty layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{elements: map[ElementID]LayoutElement{}}
}

// Pages returns every page, in order.
func (d *DocumentLayout) Pages() []Page { return d.pages }

// Element returns the element registered under id, or false if none.
func (d *DocumentLayout) Element(id ElementID) (LayoutElement, bool) {
	e, ok := d.elements[id]
	return e, ok
}

func (d *DocumentLayout) addPage(p Page) {
	d.pages = append(d.pages, p)
}

func (d *DocumentLayout) setElement(e LayoutElement) {
	d.elements[e.ID] = e
}

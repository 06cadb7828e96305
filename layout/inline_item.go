package layout

import (
	"typeset/document"
	"typeset/style"
	"typeset/unit"
)

// ItemKind discriminates the Item variants the inline transformer
// produces: fixed-width content, stretchable/shrinkable space, and a
// potential break point.
type ItemKind int

const (
	ItemBox ItemKind = iota
	ItemGlue
	ItemPenalty
)

// HyphenPenalty and InfinitePenalty are the fixed penalty values the
// transformer and line breaker use: a soft-hyphen break point costs
// HyphenPenalty, a forbidden break costs (positive) InfinitePenalty,
// and a mandatory break costs its negation.
const (
	HyphenPenalty   int32 = 50
	InfinitePenalty int32 = 10000
)

// Item is one element of the stream the inline transformer produces
// from a run of inline content, the unit the line breaker fits against
// a measure. Exactly one field group beyond Width is meaningful,
// selected by Kind.
type Item struct {
	Kind  ItemKind
	Width unit.Distance

	// ItemBox
	Content string
	Node    document.ID
	Style   style.LayoutStyle

	// ItemGlue
	Stretch unit.Distance
	Shrink  unit.Distance

	// ItemPenalty
	Penalty int32
	Flagged bool
}

func NewBoxItem(width unit.Distance, content string, node document.ID, sty style.LayoutStyle) Item {
	return Item{Kind: ItemBox, Width: width, Content: content, Node: node, Style: sty}
}

func NewGlueItem(width, stretch, shrink unit.Distance) Item {
	return Item{Kind: ItemGlue, Width: width, Stretch: stretch, Shrink: shrink}
}

func NewPenaltyItem(width unit.Distance, penalty int32, flagged bool) Item {
	return Item{Kind: ItemPenalty, Width: width, Penalty: penalty, Flagged: flagged}
}

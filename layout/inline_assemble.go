package layout

import (
	"typeset/document"
	"typeset/style"
	"typeset/unit"
)

// LineItemContent is one contiguous run of shaped text within a
// LineItem: either a whole word, a hyphenated syllable, or (for the
// literal "-" appended at a hyphenated break) a single inserted glyph,
// all sharing one node and style.
type LineItemContent struct {
	Text  string
	Width unit.Distance
	Node  document.ID
	Style style.LayoutStyle
}

// LineItem groups the box items of one broken line that had no
// intervening glue between them: a word, possibly split across one or
// more hyphenation points, is one LineItem, since a Penalty alone
// (unlike Glue) never separates two parts of the same word.
type LineItem struct {
	Parts []LineItemContent
}

// Width sums the LineItem's parts.
func (li LineItem) Width() unit.Distance {
	total := unit.Zero()
	for _, p := range li.Parts {
		total = total.Add(p.Width)
	}
	return total
}

// Line is one broken line: the LineItems it holds are rendered left to
// right with inter-word spacing resolved separately, against
// NaturalWhiteSpace — the average width of the Glue items actually
// observed on this line, which a non-justified (or justify-clamped)
// line uses in place of a single freshly-shaped space, so a line
// spanning a mid-paragraph font-size change still separates words at
// their own glue's natural width rather than the paragraph style's.
type Line struct {
	Items             []LineItem
	NaturalWhiteSpace unit.Distance
}

// WhiteSpaces is the number of inter-word gaps a line has: one fewer
// than its LineItem count, floored at zero.
func (l Line) WhiteSpaces() int {
	if len(l.Items) == 0 {
		return 0
	}
	return len(l.Items) - 1
}

// MinWidth is the sum of every LineItem's width, excluding inter-word
// spacing (which alignment resolves separately against the measure).
func (l Line) MinWidth() unit.Distance {
	total := unit.Zero()
	for _, li := range l.Items {
		total = total.Add(li.Width())
	}
	return total
}

// assembleLines splits items at the break indices breaks produced and
// turns each resulting span into a Line, dropping any line left empty
// (a span of only glue/penalty items with no boxes).
func assembleLines(items []Item, breaks []int) []Line {
	var lines []Line
	start := 0
	for _, b := range breaks {
		if b >= len(items) {
			b = len(items) - 1
		}
		line := assembleOneLine(items[start : b+1])
		if len(line.Items) > 0 {
			lines = append(lines, line)
		}
		start = b + 1
	}
	return lines
}

// assembleOneLine merges consecutive Box items into one LineItem as
// long as only Penalty items (never Glue) separate them — a
// hyphenated word is still one LineItem, its syllables joined by
// discretionary-break penalties rather than real inter-word space. A
// trailing Penalty with non-zero width on the line's own last item (a
// hyphenation break) appends a literal "-" part, reusing the
// node/style of the item it broke. It also averages the widths of
// every Glue item seen, the line's natural (unjustified) word spacing.
func assembleOneLine(raw []Item) Line {
	var items []LineItem
	var current *LineItem

	glueTotal := unit.Zero()
	glueCount := 0

	for i, it := range raw {
		switch it.Kind {
		case ItemBox:
			if current == nil {
				items = append(items, LineItem{})
				current = &items[len(items)-1]
			}
			current.Parts = append(current.Parts, LineItemContent{
				Text: it.Content, Width: it.Width, Node: it.Node, Style: it.Style,
			})
		case ItemGlue:
			glueTotal = glueTotal.Add(it.Width)
			glueCount++
			current = nil
		case ItemPenalty:
			isLast := i == len(raw)-1
			if isLast && it.Width.MM() > 0 && current != nil && len(current.Parts) > 0 {
				last := current.Parts[len(current.Parts)-1]
				current.Parts = append(current.Parts, LineItemContent{
					Text: "-", Width: it.Width, Node: last.Node, Style: last.Style,
				})
			}
			// a penalty alone doesn't end the current LineItem's
			// grouping: only Glue does.
		default:
			current = nil
		}
	}

	natural := unit.Zero()
	if glueCount > 0 {
		if avg, err := glueTotal.DivDistance(unit.MustNew(float64(glueCount), unit.MM)); err == nil {
			natural = avg
		}
	}
	return Line{Items: items, NaturalWhiteSpace: natural}
}

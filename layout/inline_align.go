package layout

import (
	"typeset/style"
	"typeset/unit"
)

// wordSpacing returns the inter-word gap a line should use to fill
// measure under alignment: for Justify (except on the paragraph's last
// line, which justifies like left alignment rather than stretching a
// possibly short final line across the full measure) it's measure's
// remaining width spread evenly across the line's gaps; otherwise it's
// the smaller of that same stretched-to-fill value and natural, so a
// near-full left/center/right line never over-spaces past its natural
// width (and a line wider than the measure compresses below it rather
// than overflowing).
func wordSpacing(line Line, measure, natural unit.Distance, alignment style.TextAlignment, isLastLine bool) unit.Distance {
	gaps := line.WhiteSpaces()
	if gaps <= 0 {
		return natural
	}

	extra := measure.Sub(line.MinWidth())
	justified, err := extra.DivDistance(unit.MustNew(float64(gaps), unit.MM))
	if err != nil {
		justified = natural
	}

	if alignment == style.AlignJustify && !isLastLine {
		return justified
	}
	return unit.Min(justified, natural)
}

// lineOffset returns how far from the measure's left edge a line
// should start, given the spacing wordSpacing already resolved:
// right-aligned lines shift right by their leftover space, centered
// lines by half of it, left and justified lines start at zero.
func lineOffset(line Line, measure, spacing unit.Distance, alignment style.TextAlignment) unit.Distance {
	gaps := line.WhiteSpaces()
	contentWidth := line.MinWidth().Add(spacing.Scale(float64(gaps)))
	leftover := measure.Sub(contentWidth)
	if leftover.MM() < 0 {
		leftover = unit.Zero()
	}

	switch alignment {
	case style.AlignCenter:
		half, err := leftover.DivDistance(unit.MustNew(2, unit.MM))
		if err != nil {
			return unit.Zero()
		}
		return half
	case style.AlignRight:
		return leftover
	default:
		return unit.Zero()
	}
}

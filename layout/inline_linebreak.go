package layout

import (
	"math"

	"typeset/unit"
)

// breakingUnit is the integer unit the line breaker scores in: the
// Knuth-Plass style arithmetic below works over whole numbers, the way
// the algorithm is usually implemented, rather than over the
// floating-point millimetre values Distance carries natively.
var breakingUnit = unit.FontUnitsAt(1000, 10.0)

func toBreakingWidth(d unit.Distance) int64 {
	v, err := d.Value(breakingUnit)
	if err != nil {
		return int64(d.MM() * 100)
	}
	return int64(math.Round(v))
}

type scaledItem struct {
	kind            ItemKind
	width           int64
	stretch, shrink int64
	penalty         int32
	flagged         bool
}

func scaleItems(items []Item) []scaledItem {
	out := make([]scaledItem, len(items))
	for i, it := range items {
		s := scaledItem{kind: it.Kind, width: toBreakingWidth(it.Width), penalty: it.Penalty, flagged: it.Flagged}
		if it.Kind == ItemGlue {
			s.stretch = toBreakingWidth(it.Stretch)
			s.shrink = toBreakingWidth(it.Shrink)
		}
		out[i] = s
	}
	return out
}

// cumulative sums of width/stretch/shrink over items[0:i], so the
// natural size of any span items[a:b] is cumW[b]-cumW[a] etc.
func cumulativeSums(items []scaledItem) (cumW, cumY, cumZ []int64) {
	n := len(items)
	cumW = make([]int64, n+1)
	cumY = make([]int64, n+1)
	cumZ = make([]int64, n+1)
	for i, it := range items {
		cumW[i+1] = cumW[i]
		cumY[i+1] = cumY[i]
		cumZ[i+1] = cumZ[i]
		switch it.kind {
		case ItemBox:
			cumW[i+1] += it.width
		case ItemGlue:
			cumW[i+1] += it.width
			cumY[i+1] += it.stretch
			cumZ[i+1] += it.shrink
		}
	}
	return
}

func isLegalBreak(items []scaledItem, i int) bool {
	switch items[i].kind {
	case ItemGlue:
		return i > 0 && items[i-1].kind == ItemBox
	case ItemPenalty:
		return items[i].penalty < InfinitePenalty
	default:
		return false
	}
}

func isForcedBreak(items []scaledItem, i int) bool {
	return items[i].kind == ItemPenalty && items[i].penalty <= -InfinitePenalty
}

type breakNode struct {
	pos      int
	demerits float64
	prev     *breakNode
}

// totalFit runs a single-path, demerit-minimising variant of the
// Knuth-Plass total-fit algorithm: at every legal breakpoint it keeps
// only the lowest-demerit path seen so far, rather than the full set
// of competing active nodes the complete algorithm tracks per line
// class. It returns nil when no feasible path reaches the paragraph's
// terminating forced break, signalling the caller to fall back to
// standardFit.
func totalFit(items []scaledItem, lineWidth int64, tolerance float64) []int {
	cumW, cumY, cumZ := cumulativeSums(items)

	type candidate struct {
		node  *breakNode
		ratio float64
	}

	active := []*breakNode{{pos: 0, demerits: 0}}

	for i := range items {
		if !isLegalBreak(items, i) {
			continue
		}
		forced := isForcedBreak(items, i)

		var best *breakNode
		var fallback candidate
		fallback.ratio = math.Inf(1)

		for _, a := range active {
			w := cumW[i] - cumW[a.pos]
			y := cumY[i] - cumY[a.pos]
			z := cumZ[i] - cumZ[a.pos]
			if items[i].kind == ItemPenalty {
				w += items[i].width
			}

			var ratio float64
			switch {
			case w < lineWidth:
				if y > 0 {
					ratio = float64(lineWidth-w) / float64(y)
				} else {
					ratio = math.Inf(1)
				}
			case w > lineWidth:
				if z > 0 {
					ratio = -float64(w-lineWidth) / float64(z)
				} else {
					ratio = math.Inf(-1)
				}
			default:
				ratio = 0
			}

			if math.Abs(ratio) < fallback.ratio {
				fallback = candidate{node: a, ratio: math.Abs(ratio)}
			}

			if !forced {
				if ratio < -1 || ratio > tolerance {
					continue
				}
			}

			badness := 100 * math.Abs(ratio) * math.Abs(ratio) * math.Abs(ratio)
			demerit := (1 + badness) * (1 + badness)
			if items[i].kind == ItemPenalty {
				p := float64(items[i].penalty)
				if p >= 0 {
					demerit += p * p
				} else if !forced {
					demerit -= p * p
				}
			}

			total := a.demerits + demerit
			if best == nil || total < best.demerits {
				best = &breakNode{pos: i, demerits: total, prev: a}
			}
		}

		if best == nil && fallback.node != nil {
			best = &breakNode{pos: i, demerits: fallback.node.demerits + 1e9, prev: fallback.node}
		}
		if best != nil {
			active = []*breakNode{best}
		}
	}

	if len(active) == 0 {
		return nil
	}
	last := active[0]
	if last.pos == 0 {
		return nil
	}

	var breaks []int
	for n := last; n != nil && n.pos != 0; n = n.prev {
		breaks = append([]int{n.pos}, breaks...)
	}
	return breaks
}

// standardFit is a first-fit fallback: it accumulates items until the
// next legal breakpoint would overflow lineWidth, then breaks at the
// last legal breakpoint seen. A forced break always ends its line
// immediately, which guarantees the scan terminates.
func standardFit(items []scaledItem, lineWidth int64) []int {
	cumW, _, _ := cumulativeSums(items)

	var breaks []int
	lineStart := 0
	lastLegal := -1

	for i := range items {
		if !isLegalBreak(items, i) {
			continue
		}
		if isForcedBreak(items, i) {
			breaks = append(breaks, i)
			lineStart = i + 1
			lastLegal = -1
			continue
		}

		w := cumW[i] - cumW[lineStart]
		if items[i].kind == ItemPenalty {
			w += items[i].width
		}
		if w > lineWidth && lastLegal >= lineStart {
			breaks = append(breaks, lastLegal)
			lineStart = lastLegal + 1
		}
		lastLegal = i
	}
	return breaks
}

// breakIntoLines finds the break points for items at measure
// lineWidth: a Knuth-Plass total-fit pass with tolerance 1.0, falling
// back to a first-fit pass if total-fit finds no feasible path.
func breakIntoLines(items []Item, lineWidth unit.Distance) []int {
	scaled := scaleItems(items)
	width := toBreakingWidth(lineWidth)

	breaks := totalFit(scaled, width, 1.0)
	if len(breaks) == 0 {
		breaks = standardFit(scaled, width)
	}
	return breaks
}

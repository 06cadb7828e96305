package style

import "typeset/unit"

// LayoutStyle is a fully-resolved style snapshot: one frame of the
// layout context's style stack.
type LayoutStyle struct {
	Width, Height unit.Distance

	MarginTop, MarginRight, MarginBottom, MarginLeft    unit.Distance
	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft unit.Distance

	FontSize             unit.Distance
	FontFamily           FamilySource
	VariationSettings    []VariationSetting
	FontWeight           float64
	FontStretch          float64
	FontStyle            FontStyleKind
	LineHeightMultiplier float64
	TextAlignment        TextAlignment
	FirstLineIndent      unit.Distance
}

// DefaultLayoutStyle is the frame used when the style stack is empty:
// the font/text side of the root defaults from the style parser's
// external-interface contract (12pt font, 1.25 line-height).
func DefaultLayoutStyle() LayoutStyle {
	return LayoutStyle{
		FontSize:             unit.MustNew(12, unit.Pt),
		FontFamily:           DefaultFamily(),
		FontWeight:           400,
		FontStretch:          100,
		FontStyle:            FontStyleNormal,
		LineHeightMultiplier: 1.25,
		TextAlignment:        AlignLeft,
	}
}

// Push returns the next frame on the stack: size/margin/padding reset
// to neutral (zero), every font/text property carried over from the
// current frame unchanged.
func (s LayoutStyle) Push() LayoutStyle {
	return LayoutStyle{
		FontSize:             s.FontSize,
		FontFamily:           s.FontFamily,
		VariationSettings:    s.VariationSettings,
		FontWeight:           s.FontWeight,
		FontStretch:          s.FontStretch,
		FontStyle:            s.FontStyle,
		LineHeightMultiplier: s.LineHeightMultiplier,
		TextAlignment:        s.TextAlignment,
		FirstLineIndent:      s.FirstLineIndent,
	}
}

// Apply folds decls into s left to right, last write wins, and
// returns the resulting frame.
func (s LayoutStyle) Apply(decls []Declaration) LayoutStyle {
	for _, d := range decls {
		switch d.Kind {
		case DeclWidth:
			s.Width = d.Distance
		case DeclHeight:
			s.Height = d.Distance
		case DeclMarginTop:
			s.MarginTop = d.Distance
		case DeclMarginRight:
			s.MarginRight = d.Distance
		case DeclMarginBottom:
			s.MarginBottom = d.Distance
		case DeclMarginLeft:
			s.MarginLeft = d.Distance
		case DeclPaddingTop:
			s.PaddingTop = d.Distance
		case DeclPaddingRight:
			s.PaddingRight = d.Distance
		case DeclPaddingBottom:
			s.PaddingBottom = d.Distance
		case DeclPaddingLeft:
			s.PaddingLeft = d.Distance
		case DeclFontSize:
			s.FontSize = d.Distance
		case DeclFontFamily:
			s.FontFamily = d.Family
		case DeclFontVariationSettings:
			s.VariationSettings = d.Variations
		case DeclFontWeight:
			s.FontWeight = d.Number
		case DeclFontStretch:
			s.FontStretch = d.Number
		case DeclFontStyle:
			s.FontStyle = d.FontStyle
		case DeclLineHeight:
			s.LineHeightMultiplier = d.Number
		case DeclTextAlignment:
			s.TextAlignment = d.Alignment
		case DeclFirstLineIndent:
			s.FirstLineIndent = d.Distance
		}
	}
	return s
}

// LineHeight returns the effective line height: font-size times the
// line-height multiplier.
func (s LayoutStyle) LineHeight() unit.Distance {
	return s.FontSize.Scale(s.LineHeightMultiplier)
}

// HorizontalInset returns the total left and right margin+padding this
// frame contributes; VerticalInset returns the top and bottom total.
func (s LayoutStyle) HorizontalInset() unit.Distance {
	return s.MarginLeft.Add(s.MarginRight).Add(s.PaddingLeft).Add(s.PaddingRight)
}

func (s LayoutStyle) VerticalInset() unit.Distance {
	return s.MarginTop.Add(s.MarginBottom).Add(s.PaddingTop).Add(s.PaddingBottom)
}

// Package style implements the style cascade: declarations, selectors,
// the registry that indexes them, the resolver that turns a node into
// an ordered list of style-ids, and the resolved LayoutStyle frame the
// layout context pushes and pops as it walks the document.
package style

import "typeset/unit"

// FamilyType names one of the five generic font families a
// FamilySource may resolve through.
type FamilyType int

const (
	Serif FamilyType = iota
	SansSerif
	Monospace
	Cursive
	Fantasy
)

func (f FamilyType) String() string {
	switch f {
	case Serif:
		return "serif"
	case SansSerif:
		return "sans-serif"
	case Monospace:
		return "monospace"
	case Cursive:
		return "cursive"
	case Fantasy:
		return "fantasy"
	default:
		return "serif"
	}
}

// FamilySourceKind discriminates FamilySource.
type FamilySourceKind int

const (
	FamilyDefault FamilySourceKind = iota
	FamilyOfType
	FamilyByName
	FamilyByPath
)

// FamilySource names where a font family declaration resolves from.
type FamilySource struct {
	Kind FamilySourceKind
	Type FamilyType
	Name string
	Path string
}

func DefaultFamily() FamilySource               { return FamilySource{Kind: FamilyDefault} }
func FamilyFromType(t FamilyType) FamilySource  { return FamilySource{Kind: FamilyOfType, Type: t} }
func FamilyFromName(name string) FamilySource   { return FamilySource{Kind: FamilyByName, Name: name} }
func FamilyFromPath(path string) FamilySource   { return FamilySource{Kind: FamilyByPath, Path: path} }

// VariationSetting is one axis=value pair of a variable font's
// variation settings, e.g. {"wght", 700}.
type VariationSetting struct {
	Tag   string // 4-byte ASCII tag
	Value int32
}

// FontStyleKind is the font-style declaration's value set.
type FontStyleKind int

const (
	FontStyleNormal FontStyleKind = iota
	FontStyleItalic
	FontStyleOblique
)

// TextAlignment is the text-alignment declaration's value set.
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// DeclarationKind discriminates the Declaration variants.
type DeclarationKind int

const (
	DeclWidth DeclarationKind = iota
	DeclHeight
	DeclMarginTop
	DeclMarginRight
	DeclMarginBottom
	DeclMarginLeft
	DeclPaddingTop
	DeclPaddingRight
	DeclPaddingBottom
	DeclPaddingLeft
	DeclFontSize
	DeclFontFamily
	DeclFontVariationSettings
	DeclFontWeight
	DeclFontStretch
	DeclFontStyle
	DeclLineHeight
	DeclTextAlignment
	DeclFirstLineIndent
)

// Declaration is a single tagged style property value. Exactly one
// field group is meaningful, selected by Kind.
type Declaration struct {
	Kind DeclarationKind

	Distance unit.Distance
	Family   FamilySource
	Variations []VariationSetting
	Number   float64
	FontStyle FontStyleKind
	Alignment TextAlignment
}

func Width(d unit.Distance) Declaration           { return Declaration{Kind: DeclWidth, Distance: d} }
func Height(d unit.Distance) Declaration          { return Declaration{Kind: DeclHeight, Distance: d} }
func MarginTop(d unit.Distance) Declaration       { return Declaration{Kind: DeclMarginTop, Distance: d} }
func MarginRight(d unit.Distance) Declaration     { return Declaration{Kind: DeclMarginRight, Distance: d} }
func MarginBottom(d unit.Distance) Declaration    { return Declaration{Kind: DeclMarginBottom, Distance: d} }
func MarginLeft(d unit.Distance) Declaration      { return Declaration{Kind: DeclMarginLeft, Distance: d} }
func PaddingTop(d unit.Distance) Declaration      { return Declaration{Kind: DeclPaddingTop, Distance: d} }
func PaddingRight(d unit.Distance) Declaration    { return Declaration{Kind: DeclPaddingRight, Distance: d} }
func PaddingBottom(d unit.Distance) Declaration   { return Declaration{Kind: DeclPaddingBottom, Distance: d} }
func PaddingLeft(d unit.Distance) Declaration     { return Declaration{Kind: DeclPaddingLeft, Distance: d} }
func FontSize(d unit.Distance) Declaration        { return Declaration{Kind: DeclFontSize, Distance: d} }
func FontFamily(f FamilySource) Declaration        { return Declaration{Kind: DeclFontFamily, Family: f} }
func FontVariationSettings(vs []VariationSetting) Declaration {
	return Declaration{Kind: DeclFontVariationSettings, Variations: vs}
}
func FontWeight(w float64) Declaration   { return Declaration{Kind: DeclFontWeight, Number: w} }
func FontStretch(s float64) Declaration  { return Declaration{Kind: DeclFontStretch, Number: s} }
func FontStyle(s FontStyleKind) Declaration { return Declaration{Kind: DeclFontStyle, FontStyle: s} }
func LineHeight(mult float64) Declaration   { return Declaration{Kind: DeclLineHeight, Number: mult} }
func Alignment(a TextAlignment) Declaration { return Declaration{Kind: DeclTextAlignment, Alignment: a} }
func FirstLineIndent(d unit.Distance) Declaration {
	return Declaration{Kind: DeclFirstLineIndent, Distance: d}
}

// Definition is an ordered list of declarations.
type Definition []Declaration

// Package unit implements the millimetre-based distance system used
// throughout the layout engine: every Distance stores its magnitude in
// millimetres internally and converts to and from the unit it was
// constructed with on demand.
package unit

import "fmt"

// Kind identifies one of the supported distance units.
type Kind int

const (
	Millimetre Kind = iota
	Centimetre
	Decimetre
	Metre
	Inch
	Point
	Pixel
	FontUnit
)

func (k Kind) String() string {
	switch k {
	case Millimetre:
		return "mm"
	case Centimetre:
		return "cm"
	case Decimetre:
		return "dm"
	case Metre:
		return "m"
	case Inch:
		return "in"
	case Point:
		return "pt"
	case Pixel:
		return "px"
	case FontUnit:
		return "funit"
	default:
		return "unknown"
	}
}

// Unit names a distance unit. Pixel and FontUnit carry extra state
// (resolution, em size) that the fixed-ratio units don't need.
type Unit struct {
	Kind Kind

	// DotsPerInch is only meaningful when Kind == Pixel.
	DotsPerInch float64
	// UnitsPerEm and FontSizeMM are only meaningful when Kind == FontUnit.
	UnitsPerEm float64
	FontSizeMM float64
}

// MM, CM, DM, M, In and Pt are the fixed-ratio units: they need no
// extra parameters to convert to or from millimetres.
var (
	MM = Unit{Kind: Millimetre}
	CM = Unit{Kind: Centimetre}
	DM = Unit{Kind: Decimetre}
	M  = Unit{Kind: Metre}
	In = Unit{Kind: Inch}
	Pt = Unit{Kind: Point}
)

// PixelAt builds a Pixel unit for the given resolution.
func PixelAt(dpi float64) Unit {
	return Unit{Kind: Pixel, DotsPerInch: dpi}
}

// FontUnitsAt builds a FontUnit unit: unitsPerEm is the font's em
// square subdivision (e.g. 1000 or 2048) and fontSizeMM is the
// rendered size of one em, in millimetres.
func FontUnitsAt(unitsPerEm, fontSizeMM float64) Unit {
	return Unit{Kind: FontUnit, UnitsPerEm: unitsPerEm, FontSizeMM: fontSizeMM}
}

// baseFactor returns f such that value*f converts a magnitude in u
// into millimetres. It mirrors the base_factor table of the original
// DistanceUnit enum: millimetre is the base unit (factor 1), the other
// metric units are decimal multiples, inch/point are defined in terms
// of the 25.4mm inch, pixel depends on DPI and font units depend on
// the font's em size and rendered size.
func (u Unit) baseFactor() (float64, error) {
	switch u.Kind {
	case Millimetre:
		return 1.0, nil
	case Centimetre:
		return 10.0, nil
	case Decimetre:
		return 100.0, nil
	case Metre:
		return 1000.0, nil
	case Inch:
		return 25.4, nil
	case Point:
		return 25.4 / 72.0, nil
	case Pixel:
		if u.DotsPerInch == 0 {
			return 0, fmt.Errorf("unit: pixel unit has zero dots-per-inch")
		}
		return 25.4 / u.DotsPerInch, nil
	case FontUnit:
		if u.UnitsPerEm == 0 {
			return 0, fmt.Errorf("unit: font unit has zero units-per-em")
		}
		return u.FontSizeMM / u.UnitsPerEm, nil
	default:
		return 0, fmt.Errorf("unit: unknown unit kind %d", u.Kind)
	}
}

// toBase converts value, expressed in u, to millimetres.
func (u Unit) toBase(value float64) (float64, error) {
	f, err := u.baseFactor()
	if err != nil {
		return 0, err
	}
	return value * f, nil
}

// fromBase converts a millimetre magnitude to a value expressed in u.
func (u Unit) fromBase(baseValue float64) (float64, error) {
	f, err := u.baseFactor()
	if err != nil {
		return 0, err
	}
	return baseValue / f, nil
}

// Equal reports whether two units are exactly the same kind with the
// same parameters, the condition the fast conversion path in
// Distance.Value checks for.
func (u Unit) Equal(other Unit) bool {
	return u == other
}

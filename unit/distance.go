package unit

import "fmt"

// Distance is a length stored internally in millimetres, tagged with
// the unit it was created from so callers can read it back out in
// that same unit without a lossy round-trip.
type Distance struct {
	value float64 // millimetres
	unit  Unit
	raw   float64 // magnitude in unit as given to New; unset for MM-tagged results
}

// New builds a Distance from a magnitude expressed in unit u.
func New(value float64, u Unit) (Distance, error) {
	base, err := u.toBase(value)
	if err != nil {
		return Distance{}, err
	}
	return Distance{value: base, unit: u, raw: value}, nil
}

// MustNew is New, panicking on error. Use only with fixed-ratio units
// (MM, CM, DM, M, In, Pt) that cannot fail to convert.
func MustNew(value float64, u Unit) Distance {
	d, err := New(value, u)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero is the zero distance, stored in millimetres.
func Zero() Distance {
	return Distance{unit: MM}
}

// Unit reports the unit the Distance was constructed with.
func (d Distance) Unit() Unit {
	return d.unit
}

// Value returns d's magnitude expressed in u. If u is exactly the
// Distance's own unit, no conversion happens (the fast-path: avoids
// attaching a floating-point error from any other unit's base
// factor for the common one being asked back for).
func (d Distance) Value(u Unit) (float64, error) {
	if d.unit.Equal(u) {
		if u.Kind == Millimetre {
			return d.value, nil
		}
		return d.raw, nil
	}
	return u.fromBase(d.value)
}

// MM returns d's magnitude in millimetres. Millimetre is the base
// unit so this conversion cannot fail.
func (d Distance) MM() float64 {
	return d.value
}

// Add returns d+other, the result stored in millimetres.
func (d Distance) Add(other Distance) Distance {
	return Distance{value: d.value + other.value, unit: MM}
}

// Sub returns d-other, the result stored in millimetres.
func (d Distance) Sub(other Distance) Distance {
	return Distance{value: d.value - other.value, unit: MM}
}

// Scale returns d multiplied by a dimensionless scalar factor, the
// result stored in millimetres.
func (d Distance) Scale(factor float64) Distance {
	return Distance{value: d.value * factor, unit: MM}
}

// Shrink returns d divided by a dimensionless scalar factor, the
// result stored in millimetres.
func (d Distance) Shrink(factor float64) (Distance, error) {
	if factor == 0 {
		return Distance{}, fmt.Errorf("unit: division by zero")
	}
	return Distance{value: d.value / factor, unit: MM}, nil
}

// MulDistance multiplies two distances together, millimetre magnitude
// against millimetre magnitude. The result is dimensionally a square
// length but is carried as a plain Distance, matching how the layout
// engine's own arithmetic treats it.
func (d Distance) MulDistance(other Distance) Distance {
	return Distance{value: d.value * other.value, unit: MM}
}

// DivDistance divides d by other, both read in millimetres.
func (d Distance) DivDistance(other Distance) (Distance, error) {
	if other.value == 0 {
		return Distance{}, fmt.Errorf("unit: division by zero")
	}
	return Distance{value: d.value / other.value, unit: MM}, nil
}

// Neg returns -d.
func (d Distance) Neg() Distance {
	return Distance{value: -d.value, unit: MM}
}

// Compare returns -1, 0 or 1 as d is less than, equal to, or greater
// than other, comparing in millimetres.
func (d Distance) Compare(other Distance) int {
	switch {
	case d.value < other.value:
		return -1
	case d.value > other.value:
		return 1
	default:
		return 0
	}
}

func (d Distance) Less(other Distance) bool      { return d.Compare(other) < 0 }
func (d Distance) LessEq(other Distance) bool    { return d.Compare(other) <= 0 }
func (d Distance) Greater(other Distance) bool   { return d.Compare(other) > 0 }
func (d Distance) GreaterEq(other Distance) bool { return d.Compare(other) >= 0 }
func (d Distance) EqualTo(other Distance) bool   { return d.Compare(other) == 0 }

// IsZero reports whether d is exactly zero millimetres.
func (d Distance) IsZero() bool {
	return d.value == 0
}

// Max returns the larger of a and b.
func Max(a, b Distance) Distance {
	if a.Greater(b) {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b Distance) Distance {
	if a.Less(b) {
		return a
	}
	return b
}

// Sum adds up a slice of distances, starting from zero.
func Sum(ds []Distance) Distance {
	total := Zero()
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

func (d Distance) String() string {
	return fmt.Sprintf("%gmm", d.value)
}

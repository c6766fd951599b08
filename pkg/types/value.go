package types

import "strconv"

// Kind identifies which variant a Value holds.
type Kind int

// Value kinds. The zero Kind is KindText so the zero Value is the empty string.
const (
	KindText Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "text"
	}
}

// Value is a single table cell: an integer, a float or a piece of text.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text returns a text Value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload. Only meaningful when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Only meaningful when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload. Only meaningful when Kind() == KindText.
func (v Value) Text() string { return v.s }

// Numeric returns v as a float64 and true for integer and float values.
// Text values report false.
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Any returns the payload as int64, float64 or string.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.s
	}
}

// String formats v the way it is printed in text output. Floats use the
// shortest representation that round-trips.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

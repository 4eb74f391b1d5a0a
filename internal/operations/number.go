package operations

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the two numeric representations a Number can hold.
type Kind int

const (
	// KindInvalid marks a Number that never held a numeric value, e.g. a
	// request operand that decoded from a non-number JSON token.
	KindInvalid Kind = iota
	KindInt
	KindFloat
)

// Number is a numeric operand or result: either an exact integer or a
// fractional value. The zero value is invalid and fails type validation
// inside every operation.
type Number struct {
	kind Kind
	i    int64
	f    float64
}

// FromInt returns an exact integer Number.
func FromInt(v int64) Number {
	return Number{kind: KindInt, i: v}
}

// FromFloat returns a fractional Number.
func FromFloat(v float64) Number {
	return Number{kind: KindFloat, f: v}
}

// Parse converts a decimal string into a Number. Integral tokens stay
// exact; everything else is parsed as a fractional value.
func Parse(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromInt(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	return FromFloat(f), nil
}

// Kind returns the representation the Number holds.
func (n Number) Kind() Kind {
	return n.kind
}

// IsNumeric reports whether the Number holds a numeric value at all.
func (n Number) IsNumeric() bool {
	return n.kind == KindInt || n.kind == KindFloat
}

// IsInt reports whether the Number is an exact integer.
func (n Number) IsInt() bool {
	return n.kind == KindInt
}

// IsZero reports whether the numeric value is zero. Negative zero counts.
func (n Number) IsZero() bool {
	switch n.kind {
	case KindInt:
		return n.i == 0
	case KindFloat:
		return n.f == 0
	default:
		return false
	}
}

// Int64 returns the exact integer value. Only meaningful when IsInt.
func (n Number) Int64() int64 {
	return n.i
}

// Float64 returns the value widened to float64.
func (n Number) Float64() float64 {
	if n.kind == KindInt {
		return float64(n.i)
	}
	return n.f
}

// String renders the value the way it serializes to JSON.
func (n Number) String() string {
	switch n.kind {
	case KindInt:
		return strconv.FormatInt(n.i, 10)
	case KindFloat:
		return formatFloat(n.f)
	default:
		return "<invalid>"
	}
}

// MarshalJSON keeps the kind observable on the wire: integers serialize
// without a decimal point, fractional values always carry one, so a true
// division like 10 / 2 round-trips as 5.0 rather than 5.
func (n Number) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case KindInt:
		return strconv.AppendInt(nil, n.i, 10), nil
	case KindFloat:
		if math.IsInf(n.f, 0) || math.IsNaN(n.f) {
			return nil, fmt.Errorf("cannot encode non-finite number")
		}
		return []byte(formatFloat(n.f)), nil
	default:
		return nil, fmt.Errorf("cannot encode invalid number")
	}
}

// UnmarshalJSON accepts any JSON number and leaves the Number invalid for
// every other token. Decoding deliberately does not fail on non-numbers:
// the operations report the fixed validation message themselves.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(data)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = FromInt(i)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		// Integral tokens wider than int64 still arrive here; they stay
		// fractional since exactness is already lost.
		*n = FromFloat(f)
		return nil
	}
	*n = Number{}
	return nil
}

// formatFloat renders the shortest round-trip form, with a decimal point
// forced in so the fractional kind survives serialization.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

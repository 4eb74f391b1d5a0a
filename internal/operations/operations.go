// Package operations implements the calculator's arithmetic core: six
// binary operations over numeric operands, each validating its inputs and
// signaling domain failures through a single typed error channel.
package operations

import (
	"errors"
	"math"
)

// Fixed validation and domain failure messages. Callers rely on these
// verbatim, so they are never rephrased or re-wrapped.
const (
	MsgNotNumbers     = "Both arguments must be numbers"
	MsgDivisionByZero = "Division by zero is not allowed"
	MsgModuloByZero   = "Modulo by zero is not allowed"
	MsgExponentTooBig = "Exponent too large, potential overflow"
)

// maxExponent bounds integer exponents to keep exponentiation cost
// predictable. Fractional exponents bypass the guard.
const maxExponent = 1000

// Error is the single failure kind every operation returns. The message
// distinguishes validation, domain and unexpected-fault cases.
type Error struct {
	message string
}

// NewError creates an operation error with the given message.
func NewError(message string) *Error {
	return &Error{message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.message
}

// checkOperands performs type validation. It runs before any
// domain-specific check in every operation.
func checkOperands(a, b Number) error {
	if !a.IsNumeric() || !b.IsNumeric() {
		return NewError(MsgNotNumbers)
	}
	return nil
}

// wrap re-signals a computation fault with the operation's prefix.
// Validation and domain errors pass through untouched so their fixed
// messages survive to the caller.
func wrap(prefix string, err error) error {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr
	}
	return NewError(prefix + ": " + err.Error())
}

// Add returns a + b. Two integer operands stay exact.
func Add(a, b Number) (Number, error) {
	if err := checkOperands(a, b); err != nil {
		return Number{}, err
	}
	res, err := addNumbers(a, b)
	if err != nil {
		return Number{}, wrap("Addition failed", err)
	}
	return res, nil
}

// Subtract returns a - b. Two integer operands stay exact.
func Subtract(a, b Number) (Number, error) {
	if err := checkOperands(a, b); err != nil {
		return Number{}, err
	}
	res, err := addNumbers(a, negate(b))
	if err != nil {
		return Number{}, wrap("Subtraction failed", err)
	}
	return res, nil
}

// Multiply returns a * b. Two integer operands stay exact.
func Multiply(a, b Number) (Number, error) {
	if err := checkOperands(a, b); err != nil {
		return Number{}, err
	}
	res, err := mulNumbers(a, b)
	if err != nil {
		return Number{}, wrap("Multiplication failed", err)
	}
	return res, nil
}

// Divide returns a / b as true division: the result is always fractional,
// even for two integer operands that divide evenly.
func Divide(a, b Number) (Number, error) {
	if err := checkOperands(a, b); err != nil {
		return Number{}, err
	}
	if b.IsZero() {
		return Number{}, NewError(MsgDivisionByZero)
	}
	q := a.Float64() / b.Float64()
	if math.IsInf(q, 0) {
		return Number{}, wrap("Division failed", errors.New("result out of range"))
	}
	return FromFloat(q), nil
}

// Power returns a raised to b. An integer exponent with magnitude above
// 1000 is rejected; integer base and non-negative integer exponent stay
// exact while the value fits, promoting to fractional beyond that.
func Power(a, b Number) (Number, error) {
	if err := checkOperands(a, b); err != nil {
		return Number{}, err
	}
	if b.IsInt() && absInt64(b.Int64()) > maxExponent {
		return Number{}, NewError(MsgExponentTooBig)
	}
	res, err := powNumbers(a, b)
	if err != nil {
		return Number{}, wrap("Power operation failed", err)
	}
	return res, nil
}

// Modulo returns a mod b with floored semantics: the result's sign follows
// the divisor. Two integer operands stay exact.
func Modulo(a, b Number) (Number, error) {
	if err := checkOperands(a, b); err != nil {
		return Number{}, err
	}
	if b.IsZero() {
		return Number{}, NewError(MsgModuloByZero)
	}
	if a.IsInt() && b.IsInt() {
		return FromInt(flooredModInt(a.Int64(), b.Int64())), nil
	}
	r := math.Mod(a.Float64(), b.Float64())
	if r != 0 && (r < 0) != (b.Float64() < 0) {
		r += b.Float64()
	}
	return FromFloat(r), nil
}

func negate(n Number) Number {
	if n.IsInt() && n.Int64() != math.MinInt64 {
		return FromInt(-n.Int64())
	}
	return FromFloat(-n.Float64())
}

func addNumbers(a, b Number) (Number, error) {
	if a.IsInt() && b.IsInt() {
		sum, ok := addInt64(a.Int64(), b.Int64())
		if !ok {
			return Number{}, errors.New("integer overflow")
		}
		return FromInt(sum), nil
	}
	s := a.Float64() + b.Float64()
	if math.IsInf(s, 0) {
		return Number{}, errors.New("result out of range")
	}
	return FromFloat(s), nil
}

func mulNumbers(a, b Number) (Number, error) {
	if a.IsInt() && b.IsInt() {
		p, ok := mulInt64(a.Int64(), b.Int64())
		if !ok {
			return Number{}, errors.New("integer overflow")
		}
		return FromInt(p), nil
	}
	p := a.Float64() * b.Float64()
	if math.IsInf(p, 0) {
		return Number{}, errors.New("result out of range")
	}
	return FromFloat(p), nil
}

func powNumbers(a, b Number) (Number, error) {
	if a.IsInt() && b.IsInt() && b.Int64() >= 0 {
		if p, ok := powInt64(a.Int64(), b.Int64()); ok {
			return FromInt(p), nil
		}
		// The exact value no longer fits an int64; fall through to the
		// fractional path.
	}
	p := math.Pow(a.Float64(), b.Float64())
	if math.IsNaN(p) {
		return Number{}, errors.New("result is not a number")
	}
	if math.IsInf(p, 0) {
		return Number{}, errors.New("result out of range")
	}
	return FromFloat(p), nil
}

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, false
	}
	return sum, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	p := a * b
	if p/a != b {
		return 0, false
	}
	return p, true
}

// powInt64 computes base**exp by binary exponentiation, reporting false as
// soon as an intermediate value leaves the int64 range.
func powInt64(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r, ok := mulInt64(result, base)
			if !ok {
				return 0, false
			}
			result = r
		}
		exp >>= 1
		if exp > 0 {
			b, ok := mulInt64(base, base)
			if !ok {
				return 0, false
			}
			base = b
		}
	}
	return result, true
}

// flooredModInt matches the divisor-sign convention for exact integers.
func flooredModInt(a, b int64) int64 {
	if b == -1 {
		// a % -1 is always 0; avoids the MinInt64 edge.
		return 0
	}
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func absInt64(v int64) int64 {
	if v == math.MinInt64 {
		return math.MaxInt64
	}
	if v < 0 {
		return -v
	}
	return v
}

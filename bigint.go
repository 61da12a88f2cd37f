package bigint

import (
	"errors"
	"fmt"
	"math"
)

// BigInteger type is a representation of an arbitrary-precision signed integer.
// The zero value is the numeric value of 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A BigInteger is a struct with two parameters:
//
//   - Sign: a boolean indicating whether the integer is negative.
//   - Magnitude: the decimal digits of the absolute value, most significant first.
//
// The magnitude never has leading zeros, and 0 is never negative,
// so every value has exactly one representation.
// Arithmetic operations never modify their operands and always return
// new values.
type BigInteger struct {
	neg  bool   // indicates whether the integer is negative
	digs digits // the magnitude of the integer
}

var (
	// ErrInvalidFormat is returned when a string is not a valid integer literal.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrDivisionByZero is returned when the divisor of a division is 0.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidArgument is returned when an operand is outside the domain
	// of an operation, such as a negative exponent.
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	Zero = New(0)  // Zero represents the integer value 0.
	One  = New(1)  // One represents the integer value 1.
	Two  = New(2)  // Two represents the integer value 2.
	Ten  = New(10) // Ten represents the integer value 10.
)

// newBigInteger returns a canonical integer.
// Leading zeros are removed from digs, and the sign of 0 is cleared.
func newBigInteger(neg bool, digs digits) BigInteger {
	digs = digs.trim()
	if digs.isZero() {
		return BigInteger{}
	}
	return BigInteger{neg: neg, digs: digs}
}

// New returns an integer equal to i.
func New(i int64) BigInteger {
	u := uint64(i)
	if i < 0 {
		u = ^u + 1 // works for math.MinInt64 too
	}
	return newBigInteger(i < 0, newDigitsFromUint64(u))
}

// NewFromUint64 returns an integer equal to u.
func NewFromUint64(u uint64) BigInteger {
	return newBigInteger(false, newDigitsFromUint64(u))
}

// Parse converts a string to an integer.
// The input string must be in one of the following formats:
//
//	1234
//	-1234
//	000123
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	numeric-string ::= [sign] digits
//
// Parse removes leading zeros, and "-0" is parsed as 0.
//
// Parse returns an error wrapping [ErrInvalidFormat] if the string is empty,
// has no digits, or contains any character other than a leading '-' and digits.
func Parse(s string) (BigInteger, error) {

	var (
		pos  int
		neg  bool
		digs digits
	)

	// Sign
	if pos < len(s) && s[pos] == '-' {
		neg = true
		pos++
	}

	// Digits
	if pos == len(s) {
		return BigInteger{}, fmt.Errorf("no digits: %w", ErrInvalidFormat)
	}
	digs = make(digits, 0, len(s)-pos)
	for ; pos < len(s); pos++ {
		c := s[pos]
		if c < '0' || c > '9' {
			return BigInteger{}, fmt.Errorf("invalid character %q: %w", c, ErrInvalidFormat)
		}
		digs = append(digs, c-'0')
	}

	return newBigInteger(neg, digs), nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding integers.
func MustParse(s string) BigInteger {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return d
}

// mag returns the magnitude of d.
// It handles the zero value of BigInteger, which has no digits.
func (d BigInteger) mag() digits {
	if len(d.digs) == 0 {
		return zeroDigits
	}
	return d.digs
}

// String method implements the [fmt.Stringer] interface and returns
// the canonical representation of an integer: an optional '-' followed
// by digits without leading zeros.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d BigInteger) String() string {
	return string(d.append(nil))
}

// append appends the canonical representation of d to buf.
func (d BigInteger) append(buf []byte) []byte {
	if d.IsNeg() {
		buf = append(buf, '-')
	}
	for _, c := range d.mag() {
		buf = append(buf, c+'0')
	}
	return buf
}

// Prec returns number of digits in the magnitude of d.
// Prec of 0 is 1.
func (d BigInteger) Prec() int {
	return len(d.mag())
}

// Int64 returns d as an int64.
// If d does not fit into int64, ok is false.
func (d BigInteger) Int64() (i int64, ok bool) {
	u, ok := d.mag().uint64()
	if !ok {
		return 0, false
	}
	if d.IsNeg() {
		if u > math.MaxInt64+1 {
			return 0, false
		}
		return int64(^u + 1), true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// uint64 returns x as a uint64.
// If x does not fit into uint64, ok is false.
func (x digits) uint64() (u uint64, ok bool) {
	for _, c := range x {
		if u > (math.MaxUint64-uint64(c))/10 {
			return 0, false
		}
		u = u*10 + uint64(c)
	}
	return u, true
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d BigInteger) Sign() int {
	switch {
	case d.IsZero():
		return 0
	case d.neg:
		return -1
	default:
		return 1
	}
}

// IsZero returns true if d == 0.
func (d BigInteger) IsZero() bool {
	return d.mag().isZero()
}

// IsNeg returns true if d < 0.
func (d BigInteger) IsNeg() bool {
	return d.neg && !d.IsZero()
}

// IsPos returns true if d > 0.
func (d BigInteger) IsPos() bool {
	return !d.neg && !d.IsZero()
}

// IsOne returns true if d == -1 or d == 1.
func (d BigInteger) IsOne() bool {
	m := d.mag()
	return len(m) == 1 && m[0] == 1
}

// Neg returns d with opposite sign.
func (d BigInteger) Neg() BigInteger {
	return newBigInteger(!d.neg, d.mag().clone())
}

// Abs returns absolute value of d.
func (d BigInteger) Abs() BigInteger {
	return newBigInteger(false, d.mag().clone())
}

// Cmp compares d and e numerically and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
//
// A negative integer is less than any non-negative one.
// Between negative integers the order of magnitudes is reversed.
func (d BigInteger) Cmp(e BigInteger) int {

	// Special case: different signs
	switch {
	case e.Sign() < d.Sign():
		return 1
	case d.Sign() < e.Sign():
		return -1
	}

	// General case
	r := d.mag().cmp(e.mag())
	if d.IsNeg() {
		return -r
	}
	return r
}

// Equal returns true if d and e have the same sign and the same digits.
func (d BigInteger) Equal(e BigInteger) bool {
	return d.Cmp(e) == 0
}

// Max returns maximum of d and e.
func (d BigInteger) Max(e BigInteger) BigInteger {
	if d.Cmp(e) >= 0 {
		return d
	}
	return e
}

// Min returns minimum of d and e.
func (d BigInteger) Min(e BigInteger) BigInteger {
	if d.Cmp(e) <= 0 {
		return d
	}
	return e
}

// Add returns the sum of d and e.
//
// Operands of equal signs have their magnitudes added and keep the sign.
// Operands of different signs have the smaller magnitude subtracted from the
// larger one, and the result takes the sign of the larger one.
func (d BigInteger) Add(e BigInteger) BigInteger {
	dmag, emag := d.mag(), e.mag()

	// Same signs
	if d.IsNeg() == e.IsNeg() {
		return newBigInteger(d.IsNeg(), dmag.add(emag))
	}

	// Different signs
	z, swapped := dmag.dist(emag)
	if swapped {
		return newBigInteger(e.IsNeg(), z)
	}
	return newBigInteger(d.IsNeg(), z)
}

// Sub returns the difference of d and e.
// It is computed as d + (-e).
func (d BigInteger) Sub(e BigInteger) BigInteger {
	return d.Add(e.Neg())
}

// Mul returns the product of d and e.
// The result is negative if exactly one operand is negative.
func (d BigInteger) Mul(e BigInteger) BigInteger {
	return newBigInteger(d.IsNeg() != e.IsNeg(), d.mag().mul(e.mag()))
}

// Quo returns the quotient of d and e truncated towards zero.
// The result is negative if exactly one operand is negative.
//
// Quo returns an error wrapping [ErrDivisionByZero] if e is 0.
func (d BigInteger) Quo(e BigInteger) (BigInteger, error) {

	// Special case: zero divisor
	if e.IsZero() {
		return BigInteger{}, fmt.Errorf("computing [%v / %v]: %w", d, e, ErrDivisionByZero)
	}

	// Special case: |d| == |e|
	dmag, emag := d.mag(), e.mag()
	if dmag.cmp(emag) == 0 {
		return newBigInteger(d.IsNeg() != e.IsNeg(), digits{1}), nil
	}

	// General case
	q, _ := dmag.quoRem(emag)
	return newBigInteger(d.IsNeg() != e.IsNeg(), q), nil
}

// QuoRem returns the quotient q and remainder r of d and e such that
// d = q * e + r, where q is truncated towards zero.
// The remainder has the sign of d and |r| < |e|.
//
// QuoRem returns an error wrapping [ErrDivisionByZero] if e is 0.
func (d BigInteger) QuoRem(e BigInteger) (q, r BigInteger, err error) {
	q, err = d.Quo(e)
	if err != nil {
		return BigInteger{}, BigInteger{}, err
	}
	r = d.Sub(e.Mul(q))
	return q, r, nil
}

// Rem returns the remainder of d divided by e.
// It is computed as d - (d / e) * e, so the result has the sign of d.
//
// Rem returns an error wrapping [ErrDivisionByZero] if e is 0.
func (d BigInteger) Rem(e BigInteger) (BigInteger, error) {
	_, r, err := d.QuoRem(e)
	if err != nil {
		return BigInteger{}, err
	}
	return r, nil
}

// Pow returns d raised to the power of e.
// Pow(0) is 1 for any d, including 0.
//
// Pow returns an error wrapping [ErrInvalidArgument] if:
//   - e is negative;
//   - e does not fit into uint64 and |d| > 1.
func (d BigInteger) Pow(e BigInteger) (BigInteger, error) {

	// Special case: negative exponent
	if e.IsNeg() {
		return BigInteger{}, fmt.Errorf("computing [%v^%v]: negative exponent: %w", d, e, ErrInvalidArgument)
	}

	exp, ok := e.mag().uint64()
	if !ok {
		// Special cases: huge exponent with a base that does not grow
		switch {
		case d.IsZero():
			return Zero, nil
		case d.IsOne():
			if d.IsNeg() && e.mag()[len(e.mag())-1]%2 == 1 {
				return New(-1), nil
			}
			return One, nil
		}
		return BigInteger{}, fmt.Errorf("computing [%v^%v]: exponent out of range: %w", d, e, ErrInvalidArgument)
	}

	// General case: square-and-multiply accumulation
	f, b := One, d
	for exp > 0 {
		if exp&1 == 1 {
			f = f.Mul(b)
		}
		exp >>= 1
		if exp > 0 {
			b = b.Mul(b)
		}
	}
	return f, nil
}

// Factorial returns d! = 1 * 2 * ... * d.
// Factorial of 0 and 1 is 1.
//
// Factorial returns an error wrapping [ErrInvalidArgument] if:
//   - d is negative;
//   - d does not fit into uint64.
func (d BigInteger) Factorial() (BigInteger, error) {

	// Special case: negative operand
	if d.IsNeg() {
		return BigInteger{}, fmt.Errorf("computing [%v!]: negative operand: %w", d, ErrInvalidArgument)
	}

	n, ok := d.mag().uint64()
	if !ok {
		return BigInteger{}, fmt.Errorf("computing [%v!]: operand out of range: %w", d, ErrInvalidArgument)
	}

	// General case
	f := One
	for i := uint64(2); i <= n; i++ {
		f = f.Mul(NewFromUint64(i))
	}
	return f, nil
}

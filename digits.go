package bigint

// digits is a magnitude stored as decimal digits, most significant first.
// Each element is in the range 0..9.
type digits []byte

// zeroDigits is the canonical magnitude of 0.
// It must never be modified.
var zeroDigits = digits{0}

// newDigitsFromUint64 converts u into its decimal digits.
func newDigitsFromUint64(u uint64) digits {
	var (
		buf [20]byte
		pos int
	)
	pos = len(buf)
	for {
		pos--
		buf[pos] = byte(u % 10)
		u /= 10
		if u == 0 {
			break
		}
	}
	z := make(digits, len(buf)-pos)
	copy(z, buf[pos:])
	return z
}

// trim returns x without leading zeros.
// If x consists of zeros only, or is empty, the result is [zeroDigits].
func (x digits) trim() digits {
	i := 0
	for i < len(x)-1 && x[i] == 0 {
		i++
	}
	if len(x) == 0 {
		return zeroDigits
	}
	return x[i:]
}

// isZero returns true if x is a trimmed representation of 0.
func (x digits) isZero() bool {
	return len(x) == 0 || (len(x) == 1 && x[0] == 0)
}

// clone returns a copy of x that does not share memory with x.
func (x digits) clone() digits {
	z := make(digits, len(x))
	copy(z, x)
	return z
}

// cmp compares trimmed magnitudes x and y and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
//
// A shorter magnitude is always smaller, since neither has leading zeros.
func (x digits) cmp(y digits) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := range x {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// digitAt returns the digit of x at position i counted from
// the least significant end, or 0 if x is shorter than i+1 digits.
func (x digits) digitAt(i int) byte {
	if i >= len(x) {
		return 0
	}
	return x[len(x)-1-i]
}

// add calculates x + y.
func (x digits) add(y digits) digits {
	n := max(len(x), len(y))
	z := make(digits, n+1)
	var carry byte
	for i := 0; i < n; i++ {
		s := x.digitAt(i) + y.digitAt(i) + carry
		if s > 9 {
			s -= 10
			carry = 1
		} else {
			carry = 0
		}
		z[n-i] = s
	}
	z[0] = carry
	return z.trim()
}

// sub calculates x - y.
// x must not be less than y.
func (x digits) sub(y digits) digits {
	n := len(x)
	z := make(digits, n)
	var borrow byte
	for i := 0; i < n; i++ {
		a, b := x.digitAt(i), y.digitAt(i)+borrow
		if a < b {
			a += 10
			borrow = 1
		} else {
			borrow = 0
		}
		z[n-1-i] = a - b
	}
	return z.trim()
}

// dist calculates |x - y| and reports whether y was greater than x.
func (x digits) dist(y digits) (z digits, swapped bool) {
	if x.cmp(y) < 0 {
		return y.sub(x), true
	}
	return x.sub(y), false
}

// mul calculates x * y using the schoolbook algorithm.
func (x digits) mul(y digits) digits {
	if x.isZero() || y.isZero() {
		return zeroDigits
	}
	m, n := len(x), len(y)
	buf := make([]int, m+n)
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			p := int(x[i])*int(y[j]) + buf[i+j+1]
			buf[i+j] += p / 10
			buf[i+j+1] = p % 10
		}
	}
	z := make(digits, m+n)
	for i, v := range buf {
		z[i] = byte(v)
	}
	return z.trim()
}

// quoRem calculates q = ⌊x / y⌋ and r = x - y * q using long division.
// Each quotient digit is found by subtracting y from the running remainder
// until the remainder becomes smaller than y.
// y must not be zero.
func (x digits) quoRem(y digits) (q, r digits) {
	if x.cmp(y) < 0 {
		return zeroDigits, x.clone()
	}
	q = make(digits, len(x))
	r = make(digits, 0, len(y)+1)
	for i, d := range x {
		r = append(r, d).trim()
		var k byte
		for r.cmp(y) >= 0 {
			r = r.sub(y)
			k++
		}
		q[i] = k
		// trim may return the shared zero magnitude, so detach before appending.
		r = r.clone()
	}
	return q.trim(), r.trim()
}

package bigint

import "fmt"

// MustQuo is like [BigInteger.Quo] but panics if computing error.
func (d BigInteger) MustQuo(e BigInteger) BigInteger {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", e, err))
	}
	return f
}

// MustRem is like [BigInteger.Rem] but panics if computing error.
func (d BigInteger) MustRem(e BigInteger) BigInteger {
	f, err := d.Rem(e)
	if err != nil {
		panic(fmt.Sprintf("MustRem(%v) failed: %v", e, err))
	}
	return f
}

// MustPow is like [BigInteger.Pow] but panics if computing error.
func (d BigInteger) MustPow(e BigInteger) BigInteger {
	f, err := d.Pow(e)
	if err != nil {
		panic(fmt.Sprintf("MustPow(%v) failed: %v", e, err))
	}
	return f
}

// MustFactorial is like [BigInteger.Factorial] but panics if computing error.
func (d BigInteger) MustFactorial() BigInteger {
	f, err := d.Factorial()
	if err != nil {
		panic(fmt.Sprintf("MustFactorial(%v) failed: %v", d, err))
	}
	return f
}

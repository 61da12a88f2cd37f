/*
Package bigint implements immutable arbitrary-precision signed integers.
It is specifically designed for exact integer arithmetic on values that
do not fit into native integer types, such as large factorials and powers.

# Representation

[BigInteger] is a struct with two fields:

  - Sign: a boolean indicating whether the integer is negative.
  - Magnitude: a sequence of decimal digits representing the absolute value
    of the integer, most significant digit first.
    For example, an integer with a magnitude of [1 2 3] and a negative sign
    represents the value -123.

Each digit is stored as a small integer in the range 0 to 9, rather than as
a character code.

In this approach, every value has exactly one representation:

  - the magnitude never has leading zeros;
  - the magnitude of 0 is the single digit 0;
  - 0 is never negative.

These invariants are restored by normalization at the end of every
constructor and every operation.

# Conversions

The package provides methods for converting integers:

  - from/to string:
    [Parse], [BigInteger.String], [BigInteger.Format].
  - from/to int64:
    [New], [NewFromUint64], [BigInteger.Int64].
  - from/to binary:
    [BigInteger.MarshalBinary], [BigInteger.UnmarshalBinary].

Integers also implement [encoding.TextMarshaler], [sql.Scanner],
[driver.Valuer], and the MessagePack custom encoder interfaces,
so they can be stored in JSON documents, SQL databases and MessagePack
streams without loss.

# Operations

All arithmetic is carried out on decimal digits without relying on native
integer overflow:

  - [BigInteger.Add], [BigInteger.Sub]:
    dispatch on operand signs to a magnitude addition with carry or a
    magnitude subtraction with borrow.
  - [BigInteger.Mul]:
    schoolbook multiplication, O(m·n) in the operand lengths.
  - [BigInteger.Quo], [BigInteger.Rem], [BigInteger.QuoRem]:
    long division, where each quotient digit is found by repeated
    subtraction. Division truncates towards zero, so the remainder
    has the sign of the dividend.
  - [BigInteger.Pow], [BigInteger.Factorial]:
    iterative accumulation on top of multiplication.

Comparison with [BigInteger.Cmp] takes signs into account:
a negative integer is always less than a non-negative one.

# Errors

All methods are panic-free and pure, except for the Must* helpers.
Errors are returned in the following cases:

  - Invalid Format.
    [Parse] returns an error wrapping [ErrInvalidFormat] if the string
    is empty or contains anything but an optional leading '-' and digits.

  - Division by Zero.
    Unlike the standard library, [BigInteger.Quo], [BigInteger.Rem] and
    [BigInteger.QuoRem] do not panic when dividing by 0.
    Instead, they return an error wrapping [ErrDivisionByZero].

  - Invalid Argument.
    [BigInteger.Pow] returns an error wrapping [ErrInvalidArgument] if
    the exponent is negative, and [BigInteger.Factorial] does the same
    for a negative operand.

Errors can be matched with [errors.Is].

[sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
[driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
[encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
[errors.Is]: https://pkg.go.dev/errors#Is
*/
package bigint

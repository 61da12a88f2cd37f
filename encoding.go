package bigint

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var errUnsupportedScan = errors.New("unsupported type")

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Also see method [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *BigInteger) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	return err
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [BigInteger.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d BigInteger) MarshalText() ([]byte, error) {
	return d.append(nil), nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler] interface.
// See [BigInteger.MarshalBinary] for the layout.
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (d *BigInteger) UnmarshalBinary(data []byte) error {
	var err error
	*d, err = parseBCD(data)
	return err
}

// MarshalBinary implements [encoding.BinaryMarshaler] interface.
// The first byte holds the sign (0 for non-negative, 1 for negative),
// and the remaining bytes hold the magnitude in [packed BCD],
// two digits per byte, most significant first.
// A magnitude with an odd number of digits is padded with a leading zero.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
// [packed BCD]: https://en.wikipedia.org/wiki/Binary-coded_decimal#Packed_BCD
func (d BigInteger) MarshalBinary() ([]byte, error) {
	return d.bcd(), nil
}

func (d BigInteger) bcd() []byte {
	m := d.mag()
	n := (len(m) + 1) / 2
	buf := make([]byte, n+1)
	if d.IsNeg() {
		buf[0] = 1
	}
	// Digits are written from the least significant end.
	pos := len(buf) - 1
	for i := len(m) - 1; i >= 0; i -= 2 {
		b := m[i]
		if i > 0 {
			b |= m[i-1] << 4
		}
		buf[pos] = b
		pos--
	}
	return buf
}

func parseBCD(data []byte) (BigInteger, error) {
	if len(data) < 2 {
		return BigInteger{}, fmt.Errorf("no digits: %w", ErrInvalidFormat)
	}

	var neg bool
	switch data[0] {
	case 0:
		neg = false
	case 1:
		neg = true
	default:
		return BigInteger{}, fmt.Errorf("invalid sign byte %#x: %w", data[0], ErrInvalidFormat)
	}

	digs := make(digits, 0, 2*(len(data)-1))
	for _, b := range data[1:] {
		hi, lo := b>>4, b&0x0f
		if hi > 9 || lo > 9 {
			return BigInteger{}, fmt.Errorf("invalid BCD byte %#x: %w", b, ErrInvalidFormat)
		}
		digs = append(digs, hi, lo)
	}

	return newBigInteger(neg, digs), nil
}

// EncodeMsgpack implements [msgpack.CustomEncoder] interface.
// The integer is encoded as a MessagePack string in canonical form.
//
// [msgpack.CustomEncoder]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v5#CustomEncoder
func (d BigInteger) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(d.String())
}

// DecodeMsgpack implements [msgpack.CustomDecoder] interface.
// Also see method [Parse].
//
// [msgpack.CustomDecoder]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v5#CustomDecoder
func (d *BigInteger) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	*d, err = Parse(s)
	return err
}

// Scan implements the [sql.Scanner] interface.
// It accepts string, []byte and int64 values.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *BigInteger) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d, err = Parse(value)
	case []byte:
		*d, err = Parse(string(value))
	case int64:
		*d = New(value)
	default:
		err = fmt.Errorf("converting from %T to %T: %w", value, BigInteger{}, errUnsupportedScan)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The integer is stored as a string, since most databases cannot
// hold arbitrary-precision integers in numeric columns.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d BigInteger) Value() (driver.Value, error) {
	return d.String(), nil
}

// NullBigInteger represents an integer that can be null.
// Its zero value is null.
// NullBigInteger is not thread-safe.
type NullBigInteger struct {
	BigInteger BigInteger
	Valid      bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [BigInteger.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullBigInteger) Scan(value any) error {
	if value == nil {
		n.BigInteger = BigInteger{}
		n.Valid = false
		return nil
	}
	err := n.BigInteger.Scan(value)
	if err != nil {
		n.BigInteger = BigInteger{}
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the [driver.Valuer] interface.
// See also method [BigInteger.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullBigInteger) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.BigInteger.Value()
}

// EncodeMsgpack implements [msgpack.CustomEncoder] interface.
// A null value is encoded as MessagePack nil.
//
// [msgpack.CustomEncoder]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v5#CustomEncoder
func (n NullBigInteger) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !n.Valid {
		return enc.EncodeNil()
	}
	return n.BigInteger.EncodeMsgpack(enc)
}

// DecodeMsgpack implements [msgpack.CustomDecoder] interface.
//
// [msgpack.CustomDecoder]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v5#CustomDecoder
func (n *NullBigInteger) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if code == msgpcode.Nil {
		n.BigInteger, n.Valid = BigInteger{}, false
		return dec.DecodeNil()
	}
	if err := n.BigInteger.DecodeMsgpack(dec); err != nil {
		n.BigInteger, n.Valid = BigInteger{}, false
		return err
	}
	n.Valid = true
	return nil
}

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%d, %s, %v: -12345
//	%q:        "-12345"
//
// The following format flags can be used with all verbs: '+', ' ', '0', '-'.
// Precision is not supported.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (d BigInteger) Format(state fmt.State, verb rune) {

	m := d.mag()

	// Arithmetic sign
	rsign := 0
	if d.IsNeg() || state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Padding
	width := lquote + rsign + len(m) + tquote
	lspaces, tspaces, lzeroes := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeroes = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	// Writing buffer
	buf := make([]byte, 0, width)
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}
	if lquote > 0 {
		buf = append(buf, '"')
	}
	if rsign > 0 {
		switch {
		case d.IsNeg():
			buf = append(buf, '-')
		case state.Flag(' '):
			buf = append(buf, ' ')
		default:
			buf = append(buf, '+')
		}
	}
	for i := 0; i < lzeroes; i++ {
		buf = append(buf, '0')
	}
	for _, c := range m {
		buf = append(buf, c+'0')
	}
	if tquote > 0 {
		buf = append(buf, '"')
	}
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'd':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(bigint.BigInteger="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

package cbor

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/forksnd/staj/event"
)

// writeBignum writes n as tag 2 (non-negative) or tag 3 (negative,
// encoding -1-n) wrapping a magnitude byte string.
func (e *Encoder) writeBignum(n *big.Int) {
	if n.Sign() >= 0 {
		e.buf = AppendTag(e.buf, tagPosBignum)
		e.buf = AppendBytes(e.buf, n.Bytes())
		return
	}
	tmp := new(big.Int).Neg(n)
	tmp.Sub(tmp, big.NewInt(1))
	e.buf = AppendTag(e.buf, tagNegBignum)
	e.buf = AppendBytes(e.buf, tmp.Bytes())
}

// writeBignumText parses an arbitrary-precision decimal integer and
// writes it as a bignum.
func (e *Encoder) writeBignumText(value []byte) error {
	n, ok := new(big.Int).SetString(string(value), 10)
	if !ok {
		return ErrInvalidDecimalFraction
	}
	e.writeBignum(n)
	return nil
}

// writeIntegerText writes decimal digit text as the shortest integer
// form, falling back to a bignum on int64 overflow.
func (e *Encoder) writeIntegerText(s string, base int, ctx event.Context) error {
	v, err := strconv.ParseInt(s, base, 64)
	if err == nil {
		return e.Int64(v, event.None, ctx)
	}
	if !errors.Is(err, strconv.ErrRange) {
		if base == 16 {
			return ErrInvalidBigfloat
		}
		return ErrInvalidDecimalFraction
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		if base == 16 {
			return ErrInvalidBigfloat
		}
		return ErrInvalidDecimalFraction
	}
	e.writeBignum(n)
	e.endValue()
	return nil
}

type decimalParseState uint8

const (
	decimalStart decimalParseState = iota
	decimalInteger
	decimalExp1
	decimalExp2
	decimalFraction1
)

// writeDecimalText parses sign? digits ('.' digits)? ([eE] sign? digits)?
// into tag 4 wrapping [exponent, mantissa]. The fraction shifts the
// exponent down one decimal place per digit.
func (e *Encoder) writeDecimalText(sv []byte, ctx event.Context) error {
	state := decimalStart
	var digits []byte
	var exponent []byte
	var scale int64

	for _, c := range sv {
		switch state {
		case decimalStart:
			switch {
			case c == '-' || isDecDigit(c):
				digits = append(digits, c)
				state = decimalInteger
			default:
				return ErrInvalidDecimalFraction
			}
		case decimalInteger:
			switch {
			case isDecDigit(c):
				digits = append(digits, c)
			case c == 'e' || c == 'E':
				state = decimalExp1
			case c == '.':
				state = decimalFraction1
			default:
				return ErrInvalidDecimalFraction
			}
		case decimalExp1:
			switch {
			case c == '+':
				state = decimalExp2
			case c == '-' || isDecDigit(c):
				exponent = append(exponent, c)
				state = decimalExp2
			default:
				return ErrInvalidDecimalFraction
			}
		case decimalExp2:
			if !isDecDigit(c) {
				return ErrInvalidDecimalFraction
			}
			exponent = append(exponent, c)
		case decimalFraction1:
			switch {
			case isDecDigit(c):
				digits = append(digits, c)
				scale--
			case c == 'e' || c == 'E':
				state = decimalExp1
			default:
				return ErrInvalidDecimalFraction
			}
		}
	}

	e.buf = AppendTag(e.buf, tagDecimalFrac)
	if err := e.BeginArrayWithLength(2, event.None, ctx); err != nil {
		return err
	}
	if len(exponent) > 0 {
		val, err := strconv.ParseInt(string(exponent), 10, 64)
		if err != nil {
			return ErrInvalidDecimalFraction
		}
		scale += val
	}
	if err := e.Int64(scale, event.None, ctx); err != nil {
		return err
	}
	if err := e.writeIntegerText(string(digits), 10, ctx); err != nil {
		return err
	}
	return e.EndArray(ctx)
}

type hexfloatParseState uint8

const (
	hexfloatStart hexfloatParseState = iota
	hexfloatExpect0
	hexfloatExpectX
	hexfloatInteger
	hexfloatExp1
	hexfloatExp2
	hexfloatFraction1
)

// writeHexfloatText parses C99 hexfloat syntax
// -?0[xX]hex('.'hex)?([pP][+-]?hex)? into tag 5 wrapping
// [binary exponent, mantissa]. Each fraction digit shifts the binary
// exponent down by four.
func (e *Encoder) writeHexfloatText(sv []byte, ctx event.Context) error {
	state := hexfloatStart
	var digits []byte
	var exponent []byte
	var scale int64

	for _, c := range sv {
		switch state {
		case hexfloatStart:
			switch c {
			case '-':
				digits = append(digits, c)
				state = hexfloatExpect0
			case '0':
				state = hexfloatExpectX
			default:
				return ErrInvalidBigfloat
			}
		case hexfloatExpect0:
			if c != '0' {
				return ErrInvalidBigfloat
			}
			state = hexfloatExpectX
		case hexfloatExpectX:
			if c != 'x' && c != 'X' {
				return ErrInvalidBigfloat
			}
			state = hexfloatInteger
		case hexfloatInteger:
			switch {
			case isHexDigit(c):
				digits = append(digits, c)
			case c == 'p' || c == 'P':
				state = hexfloatExp1
			case c == '.':
				state = hexfloatFraction1
			default:
				return ErrInvalidBigfloat
			}
		case hexfloatExp1:
			switch {
			case c == '+':
				state = hexfloatExp2
			case c == '-' || isHexDigit(c):
				exponent = append(exponent, c)
				state = hexfloatExp2
			default:
				return ErrInvalidBigfloat
			}
		case hexfloatExp2:
			if !isHexDigit(c) {
				return ErrInvalidBigfloat
			}
			exponent = append(exponent, c)
		case hexfloatFraction1:
			switch {
			case isHexDigit(c):
				digits = append(digits, c)
				scale -= 4
			case c == 'p' || c == 'P':
				state = hexfloatExp1
			default:
				return ErrInvalidBigfloat
			}
		}
	}

	e.buf = AppendTag(e.buf, tagBigfloat)
	if err := e.BeginArrayWithLength(2, event.None, ctx); err != nil {
		return err
	}
	if len(exponent) > 0 {
		val, err := strconv.ParseInt(string(exponent), 16, 64)
		if err != nil {
			return ErrInvalidBigfloat
		}
		scale += val
	}
	if err := e.Int64(scale, event.None, ctx); err != nil {
		return err
	}
	if err := e.writeIntegerText(string(digits), 16, ctx); err != nil {
		return err
	}
	return e.EndArray(ctx)
}

func isDecDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

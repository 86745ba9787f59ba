package json

import (
	"errors"
	"math"
	"strconv"

	"github.com/forksnd/staj/event"
)

// parseNumber scans number content from the current input position. Like
// parseString, every inner state is a safe resumption point; digits
// consumed so far live in the scratch buffer across suspensions.
func (p *ChunkParser) parseNumber(v event.Visitor) error {
	var (
		input = p.input
		n     = len(input)
		hdr   = p.ip
		cur   = p.ip
		c     byte
	)

	switch p.numberState {
	case numberMinus:
		goto minusSign
	case numberZero:
		goto zero
	case numberInteger:
		goto integerPart
	case numberFraction1:
		goto fraction1
	case numberFraction2:
		goto fraction2
	case numberExp1:
		goto exp1
	case numberExp2:
		goto exp2
	default:
		goto exp3
	}

minusSign:
	if cur >= n {
		p.numberState = numberMinus
		p.buffer = append(p.buffer, input[hdr:cur]...)
		p.position += cur - hdr
		p.ip = cur
		return nil
	}
	c = input[cur]
	if c >= '1' && c <= '9' {
		cur++
		goto integerPart
	}
	if c == '0' {
		cur++
		goto zero
	}
	p.position += cur - hdr
	p.ip = cur
	return p.fatal(ErrInvalidNumber)

zero:
	if cur >= n {
		p.numberState = numberZero
		p.buffer = append(p.buffer, input[hdr:cur]...)
		p.position += cur - hdr
		p.ip = cur
		return nil
	}
	c = input[cur]
	if c == '.' {
		cur++
		goto fraction1
	}
	if c == 'e' || c == 'E' {
		cur++
		goto exp1
	}
	if isDigit(c) {
		p.numberState = numberZero
		p.position += cur - hdr
		p.ip = cur
		return p.fatal(ErrLeadingZero)
	}
	p.buffer = append(p.buffer, input[hdr:cur]...)
	p.position += cur - hdr
	p.ip = cur
	return p.endIntegerValue(v)

integerPart:
	for {
		if cur >= n {
			p.numberState = numberInteger
			p.buffer = append(p.buffer, input[hdr:cur]...)
			p.position += cur - hdr
			p.ip = cur
			return nil
		}
		if !isDigit(input[cur]) {
			break
		}
		cur++
	}
	c = input[cur]
	if c == '.' {
		cur++
		goto fraction1
	}
	if c == 'e' || c == 'E' {
		cur++
		goto exp1
	}
	p.buffer = append(p.buffer, input[hdr:cur]...)
	p.position += cur - hdr
	p.ip = cur
	return p.endIntegerValue(v)

fraction1:
	if cur >= n {
		p.numberState = numberFraction1
		p.buffer = append(p.buffer, input[hdr:cur]...)
		p.position += cur - hdr
		p.ip = cur
		return nil
	}
	if isDigit(input[cur]) {
		cur++
		goto fraction2
	}
	p.numberState = numberFraction1
	p.position += cur - hdr
	p.ip = cur
	return p.fatal(ErrInvalidNumber)

fraction2:
	for {
		if cur >= n {
			p.numberState = numberFraction2
			p.buffer = append(p.buffer, input[hdr:cur]...)
			p.position += cur - hdr
			p.ip = cur
			return nil
		}
		if !isDigit(input[cur]) {
			break
		}
		cur++
	}
	c = input[cur]
	if c == 'e' || c == 'E' {
		cur++
		goto exp1
	}
	p.buffer = append(p.buffer, input[hdr:cur]...)
	p.position += cur - hdr
	p.ip = cur
	return p.endFractionValue(v)

exp1:
	if cur >= n {
		p.numberState = numberExp1
		p.buffer = append(p.buffer, input[hdr:cur]...)
		p.position += cur - hdr
		p.ip = cur
		return nil
	}
	c = input[cur]
	if c == '+' || c == '-' {
		cur++
		goto exp2
	}
	if isDigit(c) {
		cur++
		goto exp3
	}
	p.position += cur - hdr
	p.ip = cur
	return p.fatal(ErrInvalidNumber)

exp2:
	if cur >= n {
		p.numberState = numberExp2
		p.buffer = append(p.buffer, input[hdr:cur]...)
		p.position += cur - hdr
		p.ip = cur
		return nil
	}
	if isDigit(input[cur]) {
		cur++
		goto exp3
	}
	p.position += cur - hdr
	p.ip = cur
	return p.fatal(ErrInvalidNumber)

exp3:
	for {
		if cur >= n {
			p.numberState = numberExp3
			p.buffer = append(p.buffer, input[hdr:cur]...)
			p.position += cur - hdr
			p.ip = cur
			return nil
		}
		if !isDigit(input[cur]) {
			break
		}
		cur++
	}
	p.buffer = append(p.buffer, input[hdr:cur]...)
	p.position += cur - hdr
	p.ip = cur
	return p.endFractionValue(v)
}

// endIntegerValue finalises an integer-form number: sign-typed decimal
// conversion, falling back to a bigint-tagged string on overflow.
func (p *ChunkParser) endIntegerValue(v event.Visitor) error {
	var err error
	if p.buffer[0] == '-' {
		i, convErr := strconv.ParseInt(string(p.buffer), 10, 64)
		if convErr == nil {
			err = p.sink(v.Int64(i, event.None, p))
		} else {
			// must be overflow given the grammar
			err = p.sink(v.String(p.buffer, event.BigInt, p))
		}
	} else {
		u, convErr := strconv.ParseUint(string(p.buffer), 10, 64)
		switch {
		case convErr == nil && u <= math.MaxInt64:
			err = p.sink(v.Int64(int64(u), event.None, p))
		case convErr == nil:
			err = p.sink(v.Uint64(u, event.None, p))
		default:
			err = p.sink(v.String(p.buffer, event.BigInt, p))
		}
	}
	if err != nil {
		return err
	}
	p.afterEvent()
	return p.afterValue()
}

// endFractionValue finalises a number with a fraction or exponent.
func (p *ChunkParser) endFractionValue(v event.Visitor) error {
	var err error
	if p.opts.LosslessNumber {
		err = p.sink(v.String(p.buffer, event.BigDec, p))
	} else {
		d, convErr := strconv.ParseFloat(string(p.buffer), 64)
		switch {
		case convErr == nil:
			err = p.sink(v.Double(d, event.None, p))
		case errors.Is(convErr, strconv.ErrRange):
			if p.opts.LosslessBignum {
				err = p.sink(v.String(p.buffer, event.BigDec, p))
			} else {
				// d is the clamped value, possibly ±Inf
				err = p.sink(v.Double(d, event.None, p))
			}
		default:
			return p.fatal(ErrInvalidNumber)
		}
	}
	if err != nil {
		return err
	}
	p.afterEvent()
	return p.afterValue()
}

package json

import (
	"github.com/forksnd/staj/event"
)

// parseString scans string content from the current input position. Each
// inner state labels a safe resumption point: on buffer exhaustion the
// state and any partial accumulation (scratch buffer, codepoint
// accumulators) persist and the next call continues from the same point.
func (p *ChunkParser) parseString(v event.Visitor) error {
	var (
		input = p.input
		n     = len(input)
		cur   = p.ip
		sb    = cur
		c     byte
		err   error
	)

	switch p.stringState {
	case stringText:
		goto text
	case stringEscape:
		goto escape
	case stringEscapeU1:
		goto escapeU1
	case stringEscapeU2:
		goto escapeU2
	case stringEscapeU3:
		goto escapeU3
	case stringEscapeU4:
		goto escapeU4
	case stringEscapeSurrogatePair1:
		goto surrogatePair1
	case stringEscapeSurrogatePair2:
		goto surrogatePair2
	case stringEscapeU5:
		goto escapeU5
	case stringEscapeU6:
		goto escapeU6
	case stringEscapeU7:
		goto escapeU7
	default:
		goto escapeU8
	}

text:
	for cur < n {
		c = input[cur]
		switch {
		case isIllegalControl(c):
			p.position += cur - sb + 1
			p.stringState = stringText
			if p.handler != nil && p.handler(ErrIllegalControlChar, p) {
				// recovery: keep the text so far, skip the offending byte
				p.buffer = append(p.buffer, input[sb:cur]...)
				p.ip = cur + 1
				return nil
			}
			p.ip = cur
			return p.abort(ErrIllegalControlChar)

		case c == '\n' || c == '\r' || c == '\t':
			p.position += cur - sb + 1
			if p.handler == nil || !p.handler(ErrIllegalCharInString, p) {
				p.ip = cur
				return p.abort(ErrIllegalCharInString)
			}
			// recovery: skip
			p.buffer = append(p.buffer, input[sb:cur]...)
			cur++
			sb = cur

		case c == '\\':
			p.buffer = append(p.buffer, input[sb:cur]...)
			p.position += cur - sb + 1
			cur++
			goto escape

		case c == '"':
			p.position += cur - sb + 1
			if len(p.buffer) == 0 {
				err = p.endStringValue(input[sb:cur], v)
			} else {
				p.buffer = append(p.buffer, input[sb:cur]...)
				err = p.endStringValue(p.buffer, v)
			}
			if err != nil {
				p.ip = cur
				return err
			}
			p.ip = cur + 1
			return nil

		default:
			cur++
		}
	}
	// buffer exhausted
	p.buffer = append(p.buffer, input[sb:cur]...)
	p.position += cur - sb
	p.stringState = stringText
	p.ip = cur
	return nil

escape:
	if cur >= n {
		p.stringState = stringEscape
		p.ip = cur
		return nil
	}
	c = input[cur]
	switch c {
	case '"', '\\', '/':
		p.buffer = append(p.buffer, c)
	case 'b':
		p.buffer = append(p.buffer, '\b')
	case 'f':
		p.buffer = append(p.buffer, '\f')
	case 'n':
		p.buffer = append(p.buffer, '\n')
	case 'r':
		p.buffer = append(p.buffer, '\r')
	case 't':
		p.buffer = append(p.buffer, '\t')
	case 'u':
		p.cp = 0
		cur++
		p.position++
		goto escapeU1
	default:
		p.stringState = stringEscape
		p.ip = cur
		return p.fatal(ErrIllegalEscapedChar)
	}
	cur++
	sb = cur
	p.position++
	goto text

escapeU1:
	if cur >= n {
		p.stringState = stringEscapeU1
		p.ip = cur
		return nil
	}
	if p.cp, err = p.appendToCodepoint(0, input[cur]); err != nil {
		p.stringState = stringEscapeU1
		p.ip = cur
		return err
	}
	cur++
	p.position++

escapeU2:
	if cur >= n {
		p.stringState = stringEscapeU2
		p.ip = cur
		return nil
	}
	if p.cp, err = p.appendToCodepoint(p.cp, input[cur]); err != nil {
		p.stringState = stringEscapeU2
		p.ip = cur
		return err
	}
	cur++
	p.position++

escapeU3:
	if cur >= n {
		p.stringState = stringEscapeU3
		p.ip = cur
		return nil
	}
	if p.cp, err = p.appendToCodepoint(p.cp, input[cur]); err != nil {
		p.stringState = stringEscapeU3
		p.ip = cur
		return err
	}
	cur++
	p.position++

escapeU4:
	if cur >= n {
		p.stringState = stringEscapeU4
		p.ip = cur
		return nil
	}
	if p.cp, err = p.appendToCodepoint(p.cp, input[cur]); err != nil {
		p.stringState = stringEscapeU4
		p.ip = cur
		return err
	}
	if p.cp >= 0xd800 && p.cp <= 0xdbff {
		cur++
		p.position++
		goto surrogatePair1
	}
	if p.cp >= 0xdc00 && p.cp <= 0xdfff {
		p.stringState = stringEscapeU4
		p.ip = cur
		if err = p.recoverable(ErrIllegalSurrogateValue); err != nil {
			return err
		}
		// recovery: drop the lone surrogate
	} else {
		p.buffer = appendRune(p.buffer, p.cp)
	}
	cur++
	p.position++
	p.stringState = stringText
	p.ip = cur
	return nil

surrogatePair1:
	if cur >= n {
		p.stringState = stringEscapeSurrogatePair1
		p.ip = cur
		return nil
	}
	if input[cur] != '\\' {
		p.stringState = stringEscapeSurrogatePair1
		p.ip = cur
		return p.fatal(ErrExpectedSurrogatePair)
	}
	p.cp2 = 0
	cur++
	p.position++

surrogatePair2:
	if cur >= n {
		p.stringState = stringEscapeSurrogatePair2
		p.ip = cur
		return nil
	}
	if input[cur] != 'u' {
		p.stringState = stringEscapeSurrogatePair2
		p.ip = cur
		return p.fatal(ErrExpectedSurrogatePair)
	}
	cur++
	p.position++

escapeU5:
	if cur >= n {
		p.stringState = stringEscapeU5
		p.ip = cur
		return nil
	}
	if p.cp2, err = p.appendToCodepoint(0, input[cur]); err != nil {
		p.stringState = stringEscapeU5
		p.ip = cur
		return err
	}
	cur++
	p.position++

escapeU6:
	if cur >= n {
		p.stringState = stringEscapeU6
		p.ip = cur
		return nil
	}
	if p.cp2, err = p.appendToCodepoint(p.cp2, input[cur]); err != nil {
		p.stringState = stringEscapeU6
		p.ip = cur
		return err
	}
	cur++
	p.position++

escapeU7:
	if cur >= n {
		p.stringState = stringEscapeU7
		p.ip = cur
		return nil
	}
	if p.cp2, err = p.appendToCodepoint(p.cp2, input[cur]); err != nil {
		p.stringState = stringEscapeU7
		p.ip = cur
		return err
	}
	cur++
	p.position++

escapeU8:
	if cur >= n {
		p.stringState = stringEscapeU8
		p.ip = cur
		return nil
	}
	if p.cp2, err = p.appendToCodepoint(p.cp2, input[cur]); err != nil {
		p.stringState = stringEscapeU8
		p.ip = cur
		return err
	}
	if p.cp2 < 0xdc00 || p.cp2 > 0xdfff {
		p.stringState = stringEscapeU8
		p.ip = cur
		return p.fatal(ErrExpectedSurrogatePair)
	}
	p.buffer = appendRune(p.buffer, 0x10000+((p.cp&0x3ff)<<10)+(p.cp2&0x3ff))
	cur++
	sb = cur
	p.position++
	goto text
}

// appendToCodepoint folds one hex digit into cp. A non-hex digit is
// offered to the error handler; recovery leaves the digit contribution
// out and continues.
func (p *ChunkParser) appendToCodepoint(cp uint32, c byte) (uint32, error) {
	cp *= 16
	switch {
	case c >= '0' && c <= '9':
		cp += uint32(c - '0')
	case c >= 'a' && c <= 'f':
		cp += uint32(c-'a') + 10
	case c >= 'A' && c <= 'F':
		cp += uint32(c-'A') + 10
	default:
		if err := p.recoverable(ErrInvalidUnicodeEscape); err != nil {
			return cp, err
		}
	}
	return cp, nil
}

// endStringValue validates the completed string span and emits it as a
// key, a configured string-to-double mapping, or a string value.
func (p *ChunkParser) endStringValue(s []byte, v event.Visitor) error {
	if _, code := validateUTF8(s); code != 0 {
		if err := p.recoverable(code); err != nil {
			return err
		}
		// recovery: pass the payload through as-is
	}
	if p.parent() == stateMemberName {
		if err := p.sink(v.Key(s, p)); err != nil {
			return err
		}
		p.afterEvent()
		p.popState()
		p.state = stateExpectColon
		return nil
	}

	if p.stringToDouble != nil {
		if d, ok := p.stringToDouble[string(s)]; ok {
			if err := p.sink(v.Double(d, event.None, p)); err != nil {
				return err
			}
			p.afterEvent()
			return p.afterValue()
		}
	}
	if err := p.sink(v.String(s, event.None, p)); err != nil {
		return err
	}
	p.afterEvent()
	return p.afterValue()
}

// afterValue moves to the state that follows a completed value, based on
// the enclosing structure.
func (p *ChunkParser) afterValue() error {
	switch p.parent() {
	case stateArray, stateObject:
		p.state = stateExpectCommaOrEnd
	case stateRoot:
		p.state = stateAccept
	default:
		return p.recoverable(ErrSyntax)
	}
	return nil
}

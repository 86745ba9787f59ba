package json

import (
	"errors"
	"math"

	"github.com/forksnd/staj/event"
)

type parseState uint8

const (
	stateRoot parseState = iota
	stateStart
	stateAccept
	stateSlash
	stateSlashSlash
	stateSlashStar
	stateSlashStarStar
	stateExpectCommaOrEnd
	stateObject
	stateExpectMemberNameOrEnd
	stateExpectMemberName
	stateExpectColon
	stateExpectValueOrEnd
	stateExpectValue
	stateArray
	stateString
	stateMemberName
	stateNumber
	stateN
	stateNU
	stateNUL
	stateT
	stateTR
	stateTRU
	stateF
	stateFA
	stateFAL
	stateFALS
	stateCR
	stateDone
)

type stringState uint8

const (
	stringText stringState = iota
	stringEscape
	stringEscapeU1
	stringEscapeU2
	stringEscapeU3
	stringEscapeU4
	stringEscapeSurrogatePair1
	stringEscapeSurrogatePair2
	stringEscapeU5
	stringEscapeU6
	stringEscapeU7
	stringEscapeU8
)

type numberState uint8

const (
	numberMinus numberState = iota
	numberZero
	numberInteger
	numberFraction1
	numberFraction2
	numberExp1
	numberExp2
	numberExp3
)

// ChunkParser is an incremental JSON parser. The host pushes character
// buffers with Update and drives progress with ParseSome; events are
// delivered to the supplied Visitor in document order.
//
// Calling ParseSome with an exhausted buffer declares end of input: a
// number in a finalisable state is emitted, a completed document moves to
// done, and anything else reports unexpected EOF. Between those calls the
// parser suspends at any byte boundary and resumes producing the exact
// event sequence a single-buffer feed would have produced.
type ChunkParser struct {
	opts           Options
	handler        ErrorHandler
	maxDepth       int
	stringToDouble map[string]float64

	state       parseState
	stringState stringState
	numberState numberState
	stack       []parseState
	level       int

	input []byte
	ip    int

	buffer   []byte
	cp, cp2  uint32
	line     int
	position int
	markPos  int
	beginPos int

	more       bool
	done       bool
	cursorMode bool
	markLevel  int
}

// NewChunkParser returns a parser configured with opts. handler, which
// may be nil, is offered each recoverable error before the parser aborts.
func NewChunkParser(opts Options, handler ErrorHandler) *ChunkParser {
	p := &ChunkParser{
		opts:     opts,
		handler:  handler,
		maxDepth: opts.maxNestingDepth(),
		stack:    make([]parseState, 0, 16),
		buffer:   make([]byte, 0, 64),
	}
	if opts.NaNString != "" || opts.PosInfString != "" || opts.NegInfString != "" {
		p.stringToDouble = make(map[string]float64, 3)
		if opts.NaNString != "" {
			p.stringToDouble[opts.NaNString] = math.NaN()
		}
		if opts.PosInfString != "" {
			p.stringToDouble[opts.PosInfString] = math.Inf(1)
		}
		if opts.NegInfString != "" {
			p.stringToDouble[opts.NegInfString] = math.Inf(-1)
		}
	}
	p.Reset()
	return p
}

// Reset re-initialises all resumable state. User-provided configuration
// is kept; the parser is ready for a fresh document.
func (p *ChunkParser) Reset() {
	p.stack = p.stack[:0]
	p.stack = append(p.stack, stateRoot)
	p.state = stateStart
	p.stringState = stringText
	p.numberState = numberMinus
	p.more = true
	p.done = false
	p.line = 1
	p.position = 0
	p.markPos = 0
	p.beginPos = 0
	p.level = 0
	p.cp = 0
	p.cp2 = 0
	p.buffer = p.buffer[:0]
	p.input = nil
	p.ip = 0
}

// Restart re-enables event production after a cursor-mode suspension or a
// sink-requested stop.
func (p *ChunkParser) Restart() { p.more = true }

// CursorMode makes the parser suspend after every value event, enabling
// pull-style traversal.
func (p *ChunkParser) CursorMode(on bool) { p.cursorMode = on }

// MarkLevel returns the nesting level at which cursor traversal stops.
func (p *ChunkParser) MarkLevel() int { return p.markLevel }

// SetMarkLevel bounds cursor-mode traversal: when a container opened at
// nesting level level closes, the parser suspends.
func (p *ChunkParser) SetMarkLevel(level int) { p.markLevel = level }

// Done reports whether a complete document has been consumed and flushed.
func (p *ChunkParser) Done() bool { return p.done }

// Stopped reports whether event production is currently suspended, either
// by the sink, by cursor mode, or by an abort.
func (p *ChunkParser) Stopped() bool { return !p.more }

// Finished reports whether parsing can make no further progress without
// Restart or Reset.
func (p *ChunkParser) Finished() bool { return p.done || !p.more }

// Update supplies the next input buffer. The previous buffer must be
// fully consumed (or abandoned); the parser never retains it.
func (p *ChunkParser) Update(data []byte) {
	p.input = data
	p.ip = 0
}

// SourceExhausted reports whether the current buffer is fully consumed.
func (p *ChunkParser) SourceExhausted() bool { return p.ip >= len(p.input) }

// Line implements event.Context.
func (p *ChunkParser) Line() int { return p.line }

// Column implements event.Context.
func (p *ChunkParser) Column() int { return p.position - p.markPos + 1 }

// BeginPosition implements event.Context. It is the byte offset of the
// current token's first character; for end-of-container events it points
// at the closing bracket.
func (p *ChunkParser) BeginPosition() int { return p.beginPos }

// EndPosition implements event.Context.
func (p *ChunkParser) EndPosition() int { return p.position }

// Offset returns the consumed byte count of the current buffer.
func (p *ChunkParser) Offset() int { return p.ip }

// abort stops production and returns the structured error for code.
func (p *ChunkParser) abort(code Errc) error {
	p.more = false
	return &event.StreamError{Code: code, Line: p.line, Column: p.Column()}
}

// fatal notifies the handler (which cannot veto) and aborts.
func (p *ChunkParser) fatal(code Errc) error {
	if p.handler != nil {
		p.handler(code, p)
	}
	return p.abort(code)
}

// recoverable offers code to the handler; a true return resumes parsing
// and recoverable returns nil.
func (p *ChunkParser) recoverable(code Errc) error {
	if p.handler != nil && p.handler(code, p) {
		return nil
	}
	return p.abort(code)
}

// sink filters a visitor result: ErrStop suspends without error, any
// other error aborts with it.
func (p *ChunkParser) sink(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, event.ErrStop) {
		p.more = false
		return nil
	}
	p.more = false
	return err
}

// afterEvent re-arms or suspends production following a delivered event.
func (p *ChunkParser) afterEvent() {
	if p.more {
		p.more = !p.cursorMode
	}
}

func (p *ChunkParser) parent() parseState { return p.stack[len(p.stack)-1] }

func (p *ChunkParser) pushState(s parseState) { p.stack = append(p.stack, s) }

func (p *ChunkParser) popState() parseState {
	s := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return s
}

func isIllegalControl(c byte) bool {
	return c < 0x20 && c != '\t' && c != '\n' && c != '\r'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }


// skipSpace consumes inter-token whitespace, maintaining line and column
// bookkeeping. A carriage return as the final byte of the buffer parks
// the parser in a carry state so that a following line feed in the next
// buffer is treated as one line break.
func (p *ChunkParser) skipSpace() {
	n := len(p.input)
	for p.ip < n {
		switch p.input[p.ip] {
		case ' ', '\t':
			p.ip++
			p.position++
		case '\n':
			p.ip++
			p.line++
			p.position++
			p.markPos = p.position
		case '\r':
			p.ip++
			p.line++
			p.position++
			p.markPos = p.position
			if p.ip < n {
				if p.input[p.ip] == '\n' {
					p.ip++
					p.position++
					p.markPos = p.position
				}
			} else {
				p.pushState(p.state)
				p.state = stateCR
				return
			}
		default:
			return
		}
	}
}

// CheckDone verifies that only whitespace follows the document in the
// current buffer.
func (p *ChunkParser) CheckDone() error {
	for ; p.ip < len(p.input); p.ip++ {
		switch p.input[p.ip] {
		case ' ', '\t', '\n', '\r':
		default:
			if err := p.recoverable(ErrExtraChar); err != nil {
				return err
			}
		}
	}
	return nil
}

// FinishParse drives ParseSome until the parser is finished, treating the
// current buffer as the final input.
func (p *ChunkParser) FinishParse(v event.Visitor) error {
	for !p.Finished() {
		if err := p.ParseSome(v); err != nil {
			return err
		}
	}
	return nil
}

// ParseSome advances the parse until the input buffer is exhausted, the
// sink suspends the stream, or an error occurs.
func (p *ChunkParser) ParseSome(v event.Visitor) error {
	if p.state == stateAccept {
		if err := p.sink(v.Flush()); err != nil {
			return err
		}
		p.done = true
		p.state = stateDone
		p.more = false
		return nil
	}

	if p.ip >= len(p.input) && p.more {
		switch p.state {
		case stateNumber:
			switch p.numberState {
			case numberZero, numberInteger:
				return p.endIntegerValue(v)
			case numberFraction2, numberExp3:
				return p.endFractionValue(v)
			default:
				return p.fatal(ErrUnexpectedEOF)
			}
		case stateStart:
			return p.abort(ErrUnexpectedEOF)
		case stateDone:
			p.more = false
			return nil
		case stateCR:
			p.state = p.popState()
			return nil
		default:
			return p.fatal(ErrUnexpectedEOF)
		}
	}

	for p.ip < len(p.input) && p.more {
		switch p.state {
		case stateAccept:
			if err := p.sink(v.Flush()); err != nil {
				return err
			}
			p.done = true
			p.state = stateDone
			p.more = false

		case stateCR:
			if p.input[p.ip] == '\n' {
				p.ip++
				p.position++
			}
			p.markPos = p.position
			p.state = p.popState()

		case stateStart:
			c := p.input[p.ip]
			switch {
			case isIllegalControl(c):
				if err := p.recoverable(ErrIllegalControlChar); err != nil {
					return err
				}
				p.ip++
				p.position++
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				p.skipSpace()
			case c == '/':
				p.ip++
				p.position++
				p.pushState(p.state)
				p.state = stateSlash
			case c == '{':
				p.beginPos = p.position
				p.ip++
				p.position++
				if err := p.beginObject(v); err != nil {
					return err
				}
			case c == '[':
				p.beginPos = p.position
				p.ip++
				p.position++
				if err := p.beginArray(v); err != nil {
					return err
				}
			case c == '"':
				p.state = stateString
				p.stringState = stringText
				p.beginPos = p.position
				p.ip++
				p.position++
				p.buffer = p.buffer[:0]
				if err := p.parseString(v); err != nil {
					return err
				}
			case c == '-':
				p.buffer = append(p.buffer[:0], '-')
				p.beginPos = p.position
				p.ip++
				p.position++
				p.state = stateNumber
				p.numberState = numberMinus
				if err := p.parseNumber(v); err != nil {
					return err
				}
			case c == '0':
				p.buffer = append(p.buffer[:0], c)
				p.beginPos = p.position
				p.ip++
				p.position++
				p.state = stateNumber
				p.numberState = numberZero
				if err := p.parseNumber(v); err != nil {
					return err
				}
			case c >= '1' && c <= '9':
				p.buffer = append(p.buffer[:0], c)
				p.beginPos = p.position
				p.ip++
				p.position++
				p.state = stateNumber
				p.numberState = numberInteger
				if err := p.parseNumber(v); err != nil {
					return err
				}
			case c == 'n':
				if err := p.parseNull(v); err != nil {
					return err
				}
			case c == 't':
				if err := p.parseTrue(v); err != nil {
					return err
				}
			case c == 'f':
				if err := p.parseFalse(v); err != nil {
					return err
				}
			case c == '}':
				return p.fatal(ErrUnexpectedRBrace)
			case c == ']':
				return p.fatal(ErrUnexpectedRBracket)
			default:
				return p.fatal(ErrSyntax)
			}

		case stateExpectCommaOrEnd:
			c := p.input[p.ip]
			switch {
			case isIllegalControl(c):
				if err := p.recoverable(ErrIllegalControlChar); err != nil {
					return err
				}
				p.ip++
				p.position++
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				p.skipSpace()
			case c == '/':
				p.ip++
				p.position++
				p.pushState(p.state)
				p.state = stateSlash
			case c == '}':
				p.beginPos = p.position
				p.ip++
				p.position++
				if err := p.endObject(v); err != nil {
					return err
				}
			case c == ']':
				p.beginPos = p.position
				p.ip++
				p.position++
				if err := p.endArray(v); err != nil {
					return err
				}
			case c == ',':
				if err := p.beginMemberOrElement(); err != nil {
					return err
				}
				p.ip++
				p.position++
			default:
				var code Errc
				switch p.parent() {
				case stateArray:
					code = ErrExpectedCommaOrRBracket
				case stateObject:
					code = ErrExpectedCommaOrRBrace
				default:
					code = ErrUnexpectedChar
				}
				if err := p.recoverable(code); err != nil {
					return err
				}
				p.ip++
				p.position++
			}

		case stateExpectMemberNameOrEnd:
			c := p.input[p.ip]
			switch {
			case isIllegalControl(c):
				if err := p.recoverable(ErrIllegalControlChar); err != nil {
					return err
				}
				p.ip++
				p.position++
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				p.skipSpace()
			case c == '/':
				p.ip++
				p.position++
				p.pushState(p.state)
				p.state = stateSlash
			case c == '}':
				p.beginPos = p.position
				p.ip++
				p.position++
				if err := p.endObject(v); err != nil {
					return err
				}
			case c == '"':
				p.beginPos = p.position
				p.ip++
				p.position++
				p.pushState(stateMemberName)
				p.state = stateString
				p.stringState = stringText
				p.buffer = p.buffer[:0]
				if err := p.parseString(v); err != nil {
					return err
				}
			case c == '\'':
				if err := p.recoverable(ErrSingleQuote); err != nil {
					return err
				}
				p.ip++
				p.position++
			default:
				if err := p.recoverable(ErrExpectedKey); err != nil {
					return err
				}
				p.ip++
				p.position++
			}

		case stateExpectMemberName:
			c := p.input[p.ip]
			switch {
			case isIllegalControl(c):
				if err := p.recoverable(ErrIllegalControlChar); err != nil {
					return err
				}
				p.ip++
				p.position++
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				p.skipSpace()
			case c == '/':
				p.ip++
				p.position++
				p.pushState(p.state)
				p.state = stateSlash
			case c == '"':
				p.beginPos = p.position
				p.ip++
				p.position++
				p.pushState(stateMemberName)
				p.state = stateString
				p.stringState = stringText
				p.buffer = p.buffer[:0]
				if err := p.parseString(v); err != nil {
					return err
				}
			case c == '}':
				p.beginPos = p.position
				p.ip++
				p.position++
				if !p.opts.AllowTrailingComma {
					if err := p.recoverable(ErrExtraComma); err != nil {
						return err
					}
				}
				if err := p.endObject(v); err != nil {
					return err
				}
			case c == '\'':
				if err := p.recoverable(ErrSingleQuote); err != nil {
					return err
				}
				p.ip++
				p.position++
			default:
				if err := p.recoverable(ErrExpectedKey); err != nil {
					return err
				}
				p.ip++
				p.position++
			}

		case stateExpectColon:
			c := p.input[p.ip]
			switch {
			case isIllegalControl(c):
				if err := p.recoverable(ErrIllegalControlChar); err != nil {
					return err
				}
				p.ip++
				p.position++
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				p.skipSpace()
			case c == '/':
				p.pushState(p.state)
				p.state = stateSlash
				p.ip++
				p.position++
			case c == ':':
				p.state = stateExpectValue
				p.ip++
				p.position++
			default:
				if err := p.recoverable(ErrExpectedColon); err != nil {
					return err
				}
				p.ip++
				p.position++
			}

		case stateExpectValue, stateExpectValueOrEnd:
			c := p.input[p.ip]
			switch {
			case isIllegalControl(c):
				if err := p.recoverable(ErrIllegalControlChar); err != nil {
					return err
				}
				p.ip++
				p.position++
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				p.skipSpace()
			case c == '/':
				p.ip++
				p.position++
				p.pushState(p.state)
				p.state = stateSlash
			case c == '{':
				p.beginPos = p.position
				p.ip++
				p.position++
				if err := p.beginObject(v); err != nil {
					return err
				}
			case c == '[':
				p.beginPos = p.position
				p.ip++
				p.position++
				if err := p.beginArray(v); err != nil {
					return err
				}
			case c == '"':
				p.beginPos = p.position
				p.ip++
				p.position++
				p.state = stateString
				p.stringState = stringText
				p.buffer = p.buffer[:0]
				if err := p.parseString(v); err != nil {
					return err
				}
			case c == '-':
				p.buffer = append(p.buffer[:0], '-')
				p.beginPos = p.position
				p.ip++
				p.position++
				p.state = stateNumber
				p.numberState = numberMinus
				if err := p.parseNumber(v); err != nil {
					return err
				}
			case c == '0':
				p.buffer = append(p.buffer[:0], c)
				p.beginPos = p.position
				p.ip++
				p.position++
				p.state = stateNumber
				p.numberState = numberZero
				if err := p.parseNumber(v); err != nil {
					return err
				}
			case c >= '1' && c <= '9':
				p.buffer = append(p.buffer[:0], c)
				p.beginPos = p.position
				p.ip++
				p.position++
				p.state = stateNumber
				p.numberState = numberInteger
				if err := p.parseNumber(v); err != nil {
					return err
				}
			case c == 'n':
				if err := p.parseNull(v); err != nil {
					return err
				}
			case c == 't':
				if err := p.parseTrue(v); err != nil {
					return err
				}
			case c == 'f':
				if err := p.parseFalse(v); err != nil {
					return err
				}
			case c == ']':
				p.beginPos = p.position
				p.ip++
				p.position++
				if p.state == stateExpectValueOrEnd {
					if err := p.endArray(v); err != nil {
						return err
					}
					break
				}
				if p.parent() == stateArray {
					if !p.opts.AllowTrailingComma {
						if err := p.recoverable(ErrExtraComma); err != nil {
							return err
						}
					}
					if err := p.endArray(v); err != nil {
						return err
					}
				} else if err := p.recoverable(ErrExpectedValue); err != nil {
					return err
				}
			case c == '\'':
				if err := p.recoverable(ErrSingleQuote); err != nil {
					return err
				}
				p.ip++
				p.position++
			default:
				if err := p.recoverable(ErrExpectedValue); err != nil {
					return err
				}
				p.ip++
				p.position++
			}

		case stateString:
			if err := p.parseString(v); err != nil {
				return err
			}

		case stateNumber:
			if err := p.parseNumber(v); err != nil {
				return err
			}

		case stateT:
			if p.input[p.ip] != 'r' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			p.state = stateTR
		case stateTR:
			if p.input[p.ip] != 'u' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			p.state = stateTRU
		case stateTRU:
			if p.input[p.ip] != 'e' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			if err := p.sink(v.Bool(true, event.None, p)); err != nil {
				return err
			}
			p.afterEvent()
			p.transitionAfterValue()

		case stateF:
			if p.input[p.ip] != 'a' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			p.state = stateFA
		case stateFA:
			if p.input[p.ip] != 'l' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			p.state = stateFAL
		case stateFAL:
			if p.input[p.ip] != 's' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			p.state = stateFALS
		case stateFALS:
			if p.input[p.ip] != 'e' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			if err := p.sink(v.Bool(false, event.None, p)); err != nil {
				return err
			}
			p.afterEvent()
			p.transitionAfterValue()

		case stateN:
			if p.input[p.ip] != 'u' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			p.state = stateNU
		case stateNU:
			if p.input[p.ip] != 'l' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			p.state = stateNUL
		case stateNUL:
			if p.input[p.ip] != 'l' {
				return p.fatal(ErrInvalidValue)
			}
			p.ip++
			p.position++
			if err := p.sink(v.Null(event.None, p)); err != nil {
				return err
			}
			p.afterEvent()
			p.transitionAfterValue()

		case stateSlash:
			c := p.input[p.ip]
			switch c {
			case '*':
				if !p.opts.AllowComments {
					if err := p.recoverable(ErrIllegalComment); err != nil {
						return err
					}
				}
				p.state = stateSlashStar
			case '/':
				if !p.opts.AllowComments {
					if err := p.recoverable(ErrIllegalComment); err != nil {
						return err
					}
				}
				p.state = stateSlashSlash
			default:
				if err := p.recoverable(ErrSyntax); err != nil {
					return err
				}
			}
			p.ip++
			p.position++

		case stateSlashStar:
			switch p.input[p.ip] {
			case '\r':
				p.ip++
				p.line++
				p.position++
				p.markPos = p.position
				if p.ip >= len(p.input) {
					p.pushState(p.state)
					p.state = stateCR
				} else if p.input[p.ip] == '\n' {
					p.ip++
					p.position++
					p.markPos = p.position
				}
			case '\n':
				p.ip++
				p.line++
				p.position++
				p.markPos = p.position
			case '*':
				p.ip++
				p.position++
				p.state = stateSlashStarStar
			default:
				p.ip++
				p.position++
			}

		case stateSlashSlash:
			switch p.input[p.ip] {
			case '\r', '\n':
				p.state = p.popState()
			default:
				p.ip++
				p.position++
			}

		case stateSlashStarStar:
			switch p.input[p.ip] {
			case '/':
				p.state = p.popState()
			default:
				p.state = stateSlashStar
			}
			p.ip++
			p.position++

		default:
			return p.fatal(ErrSyntax)
		}
	}
	return nil
}

// transitionAfterValue moves the parser to the state that follows a
// completed scalar value.
func (p *ChunkParser) transitionAfterValue() {
	if p.level == 0 {
		p.state = stateAccept
	} else {
		p.state = stateExpectCommaOrEnd
	}
}

func (p *ChunkParser) beginObject(v event.Visitor) error {
	p.level++
	if p.level > p.maxDepth {
		if err := p.recoverable(ErrMaxNestingDepthExceeded); err != nil {
			return err
		}
	}
	p.pushState(stateObject)
	p.state = stateExpectMemberNameOrEnd
	if err := p.sink(v.BeginObject(event.None, p)); err != nil {
		return err
	}
	p.afterEvent()
	return nil
}

func (p *ChunkParser) endObject(v event.Visitor) error {
	if p.level < 1 {
		return p.fatal(ErrUnexpectedRBrace)
	}
	switch p.popState() {
	case stateObject:
		if err := p.sink(v.EndObject(p)); err != nil {
			return err
		}
	case stateArray:
		return p.fatal(ErrExpectedCommaOrRBracket)
	default:
		return p.fatal(ErrUnexpectedRBrace)
	}
	p.afterEvent()
	if p.level == p.markLevel {
		p.more = false
	}
	p.level--
	if p.level == 0 {
		p.state = stateAccept
	} else {
		p.state = stateExpectCommaOrEnd
	}
	return nil
}

func (p *ChunkParser) beginArray(v event.Visitor) error {
	p.level++
	if p.level > p.maxDepth {
		if err := p.recoverable(ErrMaxNestingDepthExceeded); err != nil {
			return err
		}
	}
	p.pushState(stateArray)
	p.state = stateExpectValueOrEnd
	if err := p.sink(v.BeginArray(event.None, p)); err != nil {
		return err
	}
	p.afterEvent()
	return nil
}

func (p *ChunkParser) endArray(v event.Visitor) error {
	if p.level < 1 {
		return p.fatal(ErrUnexpectedRBracket)
	}
	switch p.popState() {
	case stateArray:
		if err := p.sink(v.EndArray(p)); err != nil {
			return err
		}
	case stateObject:
		return p.fatal(ErrExpectedCommaOrRBrace)
	default:
		return p.fatal(ErrUnexpectedRBracket)
	}
	p.afterEvent()
	if p.level == p.markLevel {
		p.more = false
	}
	p.level--
	if p.level == 0 {
		p.state = stateAccept
	} else {
		p.state = stateExpectCommaOrEnd
	}
	return nil
}

func (p *ChunkParser) beginMemberOrElement() error {
	switch p.parent() {
	case stateObject:
		p.state = stateExpectMemberName
	case stateArray:
		p.state = stateExpectValue
	case stateRoot:
	default:
		return p.recoverable(ErrSyntax)
	}
	return nil
}

func (p *ChunkParser) parseTrue(v event.Visitor) error {
	p.beginPos = p.position
	if len(p.input)-p.ip >= 4 {
		if p.input[p.ip+1] != 'r' || p.input[p.ip+2] != 'u' || p.input[p.ip+3] != 'e' {
			return p.fatal(ErrInvalidValue)
		}
		p.ip += 4
		p.position += 4
		if err := p.sink(v.Bool(true, event.None, p)); err != nil {
			return err
		}
		p.afterEvent()
		p.transitionAfterValue()
		return nil
	}
	p.ip++
	p.position++
	p.state = stateT
	return nil
}

func (p *ChunkParser) parseFalse(v event.Visitor) error {
	p.beginPos = p.position
	if len(p.input)-p.ip >= 5 {
		if p.input[p.ip+1] != 'a' || p.input[p.ip+2] != 'l' || p.input[p.ip+3] != 's' || p.input[p.ip+4] != 'e' {
			return p.fatal(ErrInvalidValue)
		}
		p.ip += 5
		p.position += 5
		if err := p.sink(v.Bool(false, event.None, p)); err != nil {
			return err
		}
		p.afterEvent()
		p.transitionAfterValue()
		return nil
	}
	p.ip++
	p.position++
	p.state = stateF
	return nil
}

func (p *ChunkParser) parseNull(v event.Visitor) error {
	p.beginPos = p.position
	if len(p.input)-p.ip >= 4 {
		if p.input[p.ip+1] != 'u' || p.input[p.ip+2] != 'l' || p.input[p.ip+3] != 'l' {
			return p.fatal(ErrInvalidValue)
		}
		p.ip += 4
		p.position += 4
		if err := p.sink(v.Null(event.None, p)); err != nil {
			return err
		}
		p.afterEvent()
		p.transitionAfterValue()
		return nil
	}
	p.ip++
	p.position++
	p.state = stateN
	return nil
}

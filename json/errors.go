// Package json implements an incremental, resumable JSON parser that
// drives an event.Visitor, together with a compact JSON encoder sink, a
// pull-style event reader, and convenience entry points.
//
// The parser accepts input in arbitrary chunks via Update and produces the
// same event sequence regardless of where the chunk boundaries fall. It is
// strict RFC 8259 by default; Options enables specific relaxations.
package json

import (
	"strconv"

	"github.com/forksnd/staj/event"
)

// Errc identifies a JSON parse failure.
type Errc int

const (
	// ErrUnexpectedEOF means the input ended inside an incomplete value.
	ErrUnexpectedEOF Errc = iota + 1
	ErrSyntax
	ErrInvalidValue
	ErrInvalidNumber
	ErrLeadingZero
	ErrExtraComma
	ErrExpectedValue
	ErrExpectedKey
	ErrExpectedColon
	ErrExpectedCommaOrRBracket
	ErrExpectedCommaOrRBrace
	ErrUnexpectedRBracket
	ErrUnexpectedRBrace
	ErrUnexpectedChar
	ErrSingleQuote
	ErrIllegalControlChar
	ErrIllegalCharInString
	ErrIllegalComment
	ErrIllegalEscapedChar
	ErrInvalidUnicodeEscape
	ErrExpectedSurrogatePair
	ErrOverLongUTF8Sequence
	ErrUnpairedHighSurrogate
	ErrExpectedContinuationByte
	ErrIllegalSurrogateValue
	ErrIllegalCodepoint
	ErrMaxNestingDepthExceeded
	ErrExtraChar
)

var errcMessages = [...]string{
	ErrUnexpectedEOF:            "unexpected end of input",
	ErrSyntax:                   "syntax error",
	ErrInvalidValue:             "invalid value",
	ErrInvalidNumber:            "invalid number",
	ErrLeadingZero:              "number with leading zero",
	ErrExtraComma:               "extra comma",
	ErrExpectedValue:            "expected value",
	ErrExpectedKey:              "expected object member key",
	ErrExpectedColon:            "expected colon",
	ErrExpectedCommaOrRBracket:  "expected comma or right bracket",
	ErrExpectedCommaOrRBrace:    "expected comma or right brace",
	ErrUnexpectedRBracket:       "unexpected right bracket",
	ErrUnexpectedRBrace:         "unexpected right brace",
	ErrUnexpectedChar:           "unexpected character",
	ErrSingleQuote:              "single quote",
	ErrIllegalControlChar:       "illegal control character",
	ErrIllegalCharInString:      "illegal character in string",
	ErrIllegalComment:           "illegal comment",
	ErrIllegalEscapedChar:       "illegal escaped character",
	ErrInvalidUnicodeEscape:     "invalid unicode escape sequence",
	ErrExpectedSurrogatePair:    "expected codepoint surrogate pair",
	ErrOverLongUTF8Sequence:     "over-long UTF-8 sequence",
	ErrUnpairedHighSurrogate:    "unpaired high surrogate",
	ErrExpectedContinuationByte: "expected UTF-8 continuation byte",
	ErrIllegalSurrogateValue:    "illegal surrogate value",
	ErrIllegalCodepoint:         "illegal codepoint",
	ErrMaxNestingDepthExceeded:  "max nesting depth exceeded",
	ErrExtraChar:                "extra character after end of document",
}

// Error implements the error interface.
func (e Errc) Error() string {
	if e > 0 && int(e) < len(errcMessages) {
		return "json: " + errcMessages[e]
	}
	return "json: error " + strconv.Itoa(int(e))
}

// ErrorHandler is offered each recoverable parse error before the parser
// aborts. Returning true asks the parser to skip the offending bytes and
// resume; returning false aborts with the error. Errors that prevent
// continuation abort regardless of the handler's answer.
type ErrorHandler func(code Errc, ctx event.Context) bool

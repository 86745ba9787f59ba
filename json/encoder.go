package json

import (
	"encoding/base64"
	"encoding/hex"
	"io"
	"math"
	"strconv"

	"github.com/x448/float16"

	"github.com/forksnd/staj/event"
)

type encFrame struct {
	isObject bool
	count    int
}

// Encoder is an event sink producing compact RFC 8259 text. Strings
// tagged bigint or bigdec are written as raw number tokens, so numbers
// parsed losslessly round-trip byte for byte. Byte strings are written
// as base16/base64/base64url text according to their tag (base64url when
// untagged).
type Encoder struct {
	w     io.Writer
	opts  Options
	buf   []byte
	stack []encFrame
}

// NewEncoder returns an encoder writing to w. opts supplies the
// NaN/infinity replacement strings; other fields are ignored.
func NewEncoder(w io.Writer, opts Options) *Encoder {
	return &Encoder{
		w:     w,
		opts:  opts,
		buf:   make([]byte, 0, 256),
		stack: make([]encFrame, 0, 16),
	}
}

// beforeValue writes any separator the enclosing structure requires.
func (e *Encoder) beforeValue() {
	if len(e.stack) == 0 {
		return
	}
	top := &e.stack[len(e.stack)-1]
	if top.isObject {
		// the separator was written with the key
		return
	}
	if top.count > 0 {
		e.buf = append(e.buf, ',')
	}
	top.count++
}

// BeginObject implements event.Visitor.
func (e *Encoder) BeginObject(tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	e.buf = append(e.buf, '{')
	e.stack = append(e.stack, encFrame{isObject: true})
	return nil
}

// BeginObjectWithLength implements event.Visitor.
func (e *Encoder) BeginObjectWithLength(length int, tag event.Tag, ctx event.Context) error {
	return e.BeginObject(tag, ctx)
}

// EndObject implements event.Visitor.
func (e *Encoder) EndObject(ctx event.Context) error {
	e.buf = append(e.buf, '}')
	e.stack = e.stack[:len(e.stack)-1]
	return nil
}

// BeginArray implements event.Visitor.
func (e *Encoder) BeginArray(tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	e.buf = append(e.buf, '[')
	e.stack = append(e.stack, encFrame{})
	return nil
}

// BeginArrayWithLength implements event.Visitor.
func (e *Encoder) BeginArrayWithLength(length int, tag event.Tag, ctx event.Context) error {
	return e.BeginArray(tag, ctx)
}

// EndArray implements event.Visitor.
func (e *Encoder) EndArray(ctx event.Context) error {
	e.buf = append(e.buf, ']')
	e.stack = e.stack[:len(e.stack)-1]
	return nil
}

// Key implements event.Visitor.
func (e *Encoder) Key(name []byte, ctx event.Context) error {
	top := &e.stack[len(e.stack)-1]
	if top.count > 0 {
		e.buf = append(e.buf, ',')
	}
	top.count++
	e.buf = appendQuoted(e.buf, name)
	e.buf = append(e.buf, ':')
	return nil
}

// String implements event.Visitor.
func (e *Encoder) String(value []byte, tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	switch tag {
	case event.BigInt, event.BigDec:
		e.buf = append(e.buf, value...)
	default:
		e.buf = appendQuoted(e.buf, value)
	}
	return nil
}

// ByteString implements event.Visitor.
func (e *Encoder) ByteString(value []byte, tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	e.buf = append(e.buf, '"')
	switch tag {
	case event.Base16:
		e.buf = append(e.buf, hex.EncodeToString(value)...)
	case event.Base64:
		e.buf = append(e.buf, base64.StdEncoding.EncodeToString(value)...)
	default:
		e.buf = append(e.buf, base64.RawURLEncoding.EncodeToString(value)...)
	}
	e.buf = append(e.buf, '"')
	return nil
}

// ByteStringExt implements event.Visitor.
func (e *Encoder) ByteStringExt(value []byte, extTag uint64, ctx event.Context) error {
	return e.ByteString(value, event.None, ctx)
}

// Int64 implements event.Visitor.
func (e *Encoder) Int64(value int64, tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	e.buf = strconv.AppendInt(e.buf, value, 10)
	return nil
}

// Uint64 implements event.Visitor.
func (e *Encoder) Uint64(value uint64, tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	e.buf = strconv.AppendUint(e.buf, value, 10)
	return nil
}

// Double implements event.Visitor.
func (e *Encoder) Double(value float64, tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	switch {
	case math.IsNaN(value):
		e.appendNonFinite(e.opts.NaNString)
	case math.IsInf(value, 1):
		e.appendNonFinite(e.opts.PosInfString)
	case math.IsInf(value, -1):
		e.appendNonFinite(e.opts.NegInfString)
	default:
		e.buf = strconv.AppendFloat(e.buf, value, 'g', -1, 64)
	}
	return nil
}

func (e *Encoder) appendNonFinite(repl string) {
	if repl == "" {
		e.buf = append(e.buf, "null"...)
		return
	}
	e.buf = appendQuoted(e.buf, []byte(repl))
}

// Half implements event.Visitor.
func (e *Encoder) Half(value uint16, tag event.Tag, ctx event.Context) error {
	return e.Double(float64(float16.Frombits(value).Float32()), tag, ctx)
}

// Bool implements event.Visitor.
func (e *Encoder) Bool(value bool, tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	if value {
		e.buf = append(e.buf, "true"...)
	} else {
		e.buf = append(e.buf, "false"...)
	}
	return nil
}

// Null implements event.Visitor.
func (e *Encoder) Null(tag event.Tag, ctx event.Context) error {
	e.beforeValue()
	e.buf = append(e.buf, "null"...)
	return nil
}

// Flush implements event.Visitor, writing buffered output to the sink.
func (e *Encoder) Flush() error {
	if len(e.buf) == 0 {
		return nil
	}
	_, err := e.w.Write(e.buf)
	e.buf = e.buf[:0]
	return err
}

const hexDigits = "0123456789abcdef"

// appendQuoted writes s as a JSON string literal. Control characters use
// the short escapes where RFC 8259 defines them and \u00XX otherwise;
// everything else passes through verbatim.
func appendQuoted(dst, s []byte) []byte {
	dst = append(dst, '"')
	for _, c := range s {
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}

package cbor

import (
	"io"

	"github.com/forksnd/staj/event"
)

type containerType uint8

const (
	objectContainer containerType = iota
	indefObjectContainer
	arrayContainer
	indefArrayContainer
)

type stackItem struct {
	typ    containerType
	length int
	index  int
}

func (s *stackItem) isObject() bool {
	return s.typ == objectContainer || s.typ == indefObjectContainer
}

func (s *stackItem) isIndefinite() bool {
	return s.typ == indefObjectContainer || s.typ == indefArrayContainer
}

// count is the number of child values seen so far; object keys and
// values count as one pair.
func (s *stackItem) count() int {
	if s.isObject() {
		return s.index / 2
	}
	return s.index
}

// Encoder writes RFC 8949 output for the event stream it receives. It
// accumulates into an internal buffer and releases it to the sink on
// Flush or Close. The encoder never suspends and never recovers: the
// first error terminates the stream.
type Encoder struct {
	w    io.Writer
	opts EncodeOptions
	buf  []byte

	stack         []stackItem
	stringrefs    map[string]uint64
	byterefs      map[string]uint64
	nextStringref uint64
	depth         int
	maxDepth      int
}

// NewEncoder returns an encoder writing to w. With PackStrings set, the
// outermost value is prefixed with tag 256 immediately.
func NewEncoder(w io.Writer, opts EncodeOptions) *Encoder {
	e := &Encoder{
		w:        w,
		opts:     opts,
		buf:      make([]byte, 0, 256),
		stack:    make([]stackItem, 0, 16),
		maxDepth: opts.maxNestingDepth(),
	}
	e.arm()
	return e
}

func (e *Encoder) arm() {
	if e.opts.PackStrings {
		e.stringrefs = make(map[string]uint64)
		e.byterefs = make(map[string]uint64)
		e.buf = AppendTag(e.buf, tagStringrefNamespace)
	}
}

// Reset wipes all encoder state. A non-nil w replaces the sink.
func (e *Encoder) Reset(w io.Writer) {
	if w != nil {
		e.w = w
	}
	e.buf = e.buf[:0]
	e.stack = e.stack[:0]
	e.stringrefs = nil
	e.byterefs = nil
	e.nextStringref = 0
	e.depth = 0
	e.arm()
}

// Flush implements event.Visitor, releasing buffered output to the sink.
func (e *Encoder) Flush() error {
	if len(e.buf) == 0 {
		return nil
	}
	_, err := e.w.Write(e.buf)
	e.buf = e.buf[:0]
	return err
}

// Close flushes the sink. I/O errors are returned but the encoder is
// finished either way.
func (e *Encoder) Close() error { return e.Flush() }

// endValue records a completed child value in the enclosing container.
func (e *Encoder) endValue() {
	if len(e.stack) > 0 {
		e.stack[len(e.stack)-1].index++
	}
}

func (e *Encoder) openContainer(typ containerType, length int) error {
	e.depth++
	if e.depth > e.maxDepth {
		return ErrMaxNestingDepthExceeded
	}
	e.stack = append(e.stack, stackItem{typ: typ, length: length})
	return nil
}

func (e *Encoder) closeContainer() error {
	if len(e.stack) == 0 {
		return ErrUnbalancedContainer
	}
	e.depth--
	top := &e.stack[len(e.stack)-1]
	if top.isIndefinite() {
		e.buf = AppendBreak(e.buf)
	} else {
		if top.count() < top.length {
			return ErrTooFewItems
		}
		if top.count() > top.length {
			return ErrTooManyItems
		}
	}
	e.stack = e.stack[:len(e.stack)-1]
	e.endValue()
	return nil
}

// BeginObject implements event.Visitor with an indefinite-length map.
func (e *Encoder) BeginObject(tag event.Tag, ctx event.Context) error {
	if err := e.openContainer(indefObjectContainer, 0); err != nil {
		return err
	}
	e.buf = AppendMapHeaderIndefinite(e.buf)
	return nil
}

// BeginObjectWithLength implements event.Visitor with a definite-length map.
func (e *Encoder) BeginObjectWithLength(length int, tag event.Tag, ctx event.Context) error {
	if err := e.openContainer(objectContainer, length); err != nil {
		return err
	}
	e.buf = AppendMapHeader(e.buf, uint64(length))
	return nil
}

// EndObject implements event.Visitor.
func (e *Encoder) EndObject(ctx event.Context) error { return e.closeContainer() }

// BeginArray implements event.Visitor with an indefinite-length array.
func (e *Encoder) BeginArray(tag event.Tag, ctx event.Context) error {
	if err := e.openContainer(indefArrayContainer, 0); err != nil {
		return err
	}
	e.buf = AppendArrayHeaderIndefinite(e.buf)
	return nil
}

// BeginArrayWithLength implements event.Visitor with a definite-length array.
func (e *Encoder) BeginArrayWithLength(length int, tag event.Tag, ctx event.Context) error {
	if err := e.openContainer(arrayContainer, length); err != nil {
		return err
	}
	e.buf = AppendArrayHeader(e.buf, uint64(length))
	return nil
}

// EndArray implements event.Visitor.
func (e *Encoder) EndArray(ctx event.Context) error { return e.closeContainer() }

// Key implements event.Visitor. Keys are plain text strings and
// participate in string-reference packing like any other string.
func (e *Encoder) Key(name []byte, ctx event.Context) error {
	return e.String(name, event.None, ctx)
}

// String implements event.Visitor. Tagged strings carrying numeric text
// are re-encoded into their binary forms: bignum, decimal fraction or
// bigfloat.
func (e *Encoder) String(value []byte, tag event.Tag, ctx event.Context) error {
	switch tag {
	case event.BigInt:
		if err := e.writeBignumText(value); err != nil {
			return err
		}
		e.endValue()
		return nil
	case event.BigDec:
		return e.writeDecimalText(value, ctx)
	case event.BigFloat:
		return e.writeHexfloatText(value, ctx)
	case event.DateTime:
		e.buf = AppendTag(e.buf, tagDateTimeString)
	case event.URI:
		e.buf = AppendTag(e.buf, tagURI)
	case event.Base64URL:
		e.buf = AppendTag(e.buf, tagBase64URLString)
	case event.Base64:
		e.buf = AppendTag(e.buf, tagBase64String)
	}
	if err := e.writeString(value); err != nil {
		return err
	}
	e.endValue()
	return nil
}

// writeString validates and writes a text string, applying
// string-reference packing when enabled.
func (e *Encoder) writeString(value []byte) error {
	if !isUTF8Valid(value) {
		return ErrInvalidUTF8TextString
	}
	if e.opts.PackStrings && len(value) >= minLengthForStringref(e.nextStringref) {
		if idx, ok := e.stringrefs[string(value)]; ok {
			e.buf = AppendTag(e.buf, tagStringref)
			e.buf = AppendUint64(e.buf, idx)
			return nil
		}
		e.stringrefs[string(value)] = e.nextStringref
		e.nextStringref++
	}
	e.buf = AppendString(e.buf, value)
	return nil
}

// ByteString implements event.Visitor. Base16/base64/base64url tags map
// to the expected-encoding tags 23/22/21.
func (e *Encoder) ByteString(value []byte, tag event.Tag, ctx event.Context) error {
	switch tag {
	case event.Base64URL:
		e.buf = AppendTag(e.buf, tagBase64URL)
	case event.Base64:
		e.buf = AppendTag(e.buf, tagBase64)
	case event.Base16:
		e.buf = AppendTag(e.buf, tagBase16)
	}
	e.writeByteString(value)
	e.endValue()
	return nil
}

// ByteStringExt implements event.Visitor. The raw tag is written before
// the first occurrence; later occurrences become plain references.
func (e *Encoder) ByteStringExt(value []byte, extTag uint64, ctx event.Context) error {
	if e.opts.PackStrings && len(value) >= minLengthForStringref(e.nextStringref) {
		if idx, ok := e.byterefs[string(value)]; ok {
			e.buf = AppendTag(e.buf, tagStringref)
			e.buf = AppendUint64(e.buf, idx)
			e.endValue()
			return nil
		}
		e.byterefs[string(value)] = e.nextStringref
		e.nextStringref++
	}
	e.buf = AppendTag(e.buf, extTag)
	e.buf = AppendBytes(e.buf, value)
	e.endValue()
	return nil
}

// writeByteString writes a byte string, applying string-reference
// packing when enabled.
func (e *Encoder) writeByteString(value []byte) {
	if e.opts.PackStrings && len(value) >= minLengthForStringref(e.nextStringref) {
		if idx, ok := e.byterefs[string(value)]; ok {
			e.buf = AppendTag(e.buf, tagStringref)
			e.buf = AppendUint64(e.buf, idx)
			return
		}
		e.byterefs[string(value)] = e.nextStringref
		e.nextStringref++
	}
	e.buf = AppendBytes(e.buf, value)
}

// Int64 implements event.Visitor. Integer epoch_milli/epoch_nano values
// rescale to seconds and emit once as a tag-1 double, the only path that
// preserves CBOR's single epoch-time tag.
func (e *Encoder) Int64(value int64, tag event.Tag, ctx event.Context) error {
	switch tag {
	case event.EpochMilli, event.EpochNano:
		return e.Double(float64(value), tag, ctx)
	case event.EpochSecond:
		e.buf = AppendTag(e.buf, tagEpochDateTime)
	}
	e.buf = AppendInt64(e.buf, value)
	e.endValue()
	return nil
}

// Uint64 implements event.Visitor.
func (e *Encoder) Uint64(value uint64, tag event.Tag, ctx event.Context) error {
	switch tag {
	case event.EpochMilli, event.EpochNano:
		return e.Double(float64(value), tag, ctx)
	case event.EpochSecond:
		e.buf = AppendTag(e.buf, tagEpochDateTime)
	}
	e.buf = AppendUint64(e.buf, value)
	e.endValue()
	return nil
}

// Double implements event.Visitor. Doubles exactly representable as
// float32 narrow to the 4-byte form.
func (e *Encoder) Double(value float64, tag event.Tag, ctx event.Context) error {
	switch tag {
	case event.EpochSecond:
		e.buf = AppendTag(e.buf, tagEpochDateTime)
	case event.EpochMilli:
		e.buf = AppendTag(e.buf, tagEpochDateTime)
		if value != 0 {
			value /= millisInSecond
		}
	case event.EpochNano:
		e.buf = AppendTag(e.buf, tagEpochDateTime)
		if value != 0 {
			value /= nanosInSecond
		}
	}
	e.buf = AppendDouble(e.buf, value)
	e.endValue()
	return nil
}

const (
	millisInSecond = 1e3
	nanosInSecond  = 1e9
)

// Half implements event.Visitor.
func (e *Encoder) Half(value uint16, tag event.Tag, ctx event.Context) error {
	e.buf = AppendFloat16(e.buf, value)
	e.endValue()
	return nil
}

// Bool implements event.Visitor.
func (e *Encoder) Bool(value bool, tag event.Tag, ctx event.Context) error {
	e.buf = AppendBool(e.buf, value)
	e.endValue()
	return nil
}

// Null implements event.Visitor. The undefined tag selects 0xf7.
func (e *Encoder) Null(tag event.Tag, ctx event.Context) error {
	if tag == event.Undefined {
		e.buf = AppendUndefined(e.buf)
	} else {
		e.buf = AppendNil(e.buf)
	}
	e.endValue()
	return nil
}

// Package tree materialises event streams into tagged in-memory values.
//
// A Value is a tagged sum over the scalar and container kinds an event
// producer can emit. Objects preserve insertion order; duplicate keys are
// appended as they arrive, leaving duplicate policy to the caller.
package tree

import (
	"bytes"
	"math"
	"strconv"

	"github.com/forksnd/staj/event"
)

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	Int64Kind
	Uint64Kind
	DoubleKind
	StringKind
	ByteStringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{
	NullKind:       "null",
	BoolKind:       "bool",
	Int64Kind:      "int64",
	Uint64Kind:     "uint64",
	DoubleKind:     "double",
	StringKind:     "string",
	ByteStringKind: "byte-string",
	ArrayKind:      "array",
	ObjectKind:     "object",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<invalid>"
}

// Member is one insertion-ordered object entry.
type Member struct {
	Key   string
	Value Value
}

// Value is a tagged tree node. The zero value is null with tag none.
type Value struct {
	kind    Kind
	tag     event.Tag
	extTag  uint64
	hasExt  bool
	bits    uint64
	str     string
	raw     []byte
	elems   []Value
	members []Member
}

// Null returns a null value with the given tag.
func Null(tag event.Tag) Value { return Value{kind: NullKind, tag: tag} }

// Bool returns a boolean value.
func Bool(v bool, tag event.Tag) Value {
	var bits uint64
	if v {
		bits = 1
	}
	return Value{kind: BoolKind, tag: tag, bits: bits}
}

// Int64 returns a signed integer value.
func Int64(v int64, tag event.Tag) Value {
	return Value{kind: Int64Kind, tag: tag, bits: uint64(v)}
}

// Uint64 returns an unsigned integer value.
func Uint64(v uint64, tag event.Tag) Value {
	return Value{kind: Uint64Kind, tag: tag, bits: v}
}

// Double returns a floating-point value.
func Double(v float64, tag event.Tag) Value {
	return Value{kind: DoubleKind, tag: tag, bits: math.Float64bits(v)}
}

// String returns a text value.
func String(s string, tag event.Tag) Value {
	return Value{kind: StringKind, tag: tag, str: s}
}

// ByteString returns a binary value with a semantic tag.
func ByteString(b []byte, tag event.Tag) Value {
	return Value{kind: ByteStringKind, tag: tag, raw: b}
}

// ByteStringExt returns a binary value carrying a raw integer tag.
func ByteStringExt(b []byte, extTag uint64) Value {
	return Value{kind: ByteStringKind, extTag: extTag, hasExt: true, raw: b}
}

// Array returns an array value owning elems.
func Array(elems []Value, tag event.Tag) Value {
	return Value{kind: ArrayKind, tag: tag, elems: elems}
}

// Object returns an object value owning members.
func Object(members []Member, tag event.Tag) Value {
	return Value{kind: ObjectKind, tag: tag, members: members}
}

// Kind returns the variant of v.
func (v *Value) Kind() Kind { return v.kind }

// Tag returns the semantic tag attached to v.
func (v *Value) Tag() event.Tag { return v.tag }

// ExtTag returns the raw integer tag of a byte-string value and whether
// one is present.
func (v *Value) ExtTag() (uint64, bool) { return v.extTag, v.hasExt }

// IsNull reports whether v is null.
func (v *Value) IsNull() bool { return v.kind == NullKind }

// AsBool returns the boolean payload.
func (v *Value) AsBool() bool { return v.kind == BoolKind && v.bits != 0 }

// AsInt64 returns the signed integer payload.
func (v *Value) AsInt64() int64 { return int64(v.bits) }

// AsUint64 returns the unsigned integer payload.
func (v *Value) AsUint64() uint64 { return v.bits }

// AsDouble returns the floating-point payload.
func (v *Value) AsDouble() float64 { return math.Float64frombits(v.bits) }

// AsString returns the text payload.
func (v *Value) AsString() string { return v.str }

// AsBytes returns the binary payload.
func (v *Value) AsBytes() []byte { return v.raw }

// Elements returns the elements of an array value.
func (v *Value) Elements() []Value { return v.elems }

// Members returns the insertion-ordered members of an object value.
func (v *Value) Members() []Member { return v.members }

// Get returns the value of the first member named key and whether it was
// found.
func (v *Value) Get(key string) (*Value, bool) {
	for i := range v.members {
		if v.members[i].Key == key {
			return &v.members[i].Value, true
		}
	}
	return nil, false
}

// Equal reports deep equality of two values including kinds and tags.
func (v *Value) Equal(other *Value) bool {
	if v.kind != other.kind || v.tag != other.tag ||
		v.hasExt != other.hasExt || v.extTag != other.extTag {
		return false
	}
	switch v.kind {
	case StringKind:
		return v.str == other.str
	case ByteStringKind:
		return bytes.Equal(v.raw, other.raw)
	case ArrayKind:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(&other.elems[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != other.members[i].Key {
				return false
			}
			if !v.members[i].Value.Equal(&other.members[i].Value) {
				return false
			}
		}
		return true
	default:
		return v.bits == other.bits
	}
}

// String implements fmt.Stringer with a compact diagnostic rendering.
func (v Value) String() string {
	var sb bytes.Buffer
	v.format(&sb)
	return sb.String()
}

func (v *Value) format(sb *bytes.Buffer) {
	switch v.kind {
	case NullKind:
		sb.WriteString("null")
	case BoolKind:
		sb.WriteString(strconv.FormatBool(v.AsBool()))
	case Int64Kind:
		sb.WriteString(strconv.FormatInt(v.AsInt64(), 10))
	case Uint64Kind:
		sb.WriteString(strconv.FormatUint(v.AsUint64(), 10))
	case DoubleKind:
		sb.WriteString(strconv.FormatFloat(v.AsDouble(), 'g', -1, 64))
	case StringKind:
		sb.WriteString(strconv.Quote(v.str))
	case ByteStringKind:
		sb.WriteString("h'")
		const hexdigits = "0123456789abcdef"
		for _, c := range v.raw {
			sb.WriteByte(hexdigits[c>>4])
			sb.WriteByte(hexdigits[c&0xf])
		}
		sb.WriteString("'")
	case ArrayKind:
		sb.WriteByte('[')
		for i := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			v.elems[i].format(sb)
		}
		sb.WriteByte(']')
	case ObjectKind:
		sb.WriteByte('{')
		for i := range v.members {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(v.members[i].Key))
			sb.WriteString(": ")
			v.members[i].Value.format(sb)
		}
		sb.WriteByte('}')
	}
}

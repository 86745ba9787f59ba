package cbor

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// ensure reserves sz extra bytes in b between len(b) and cap(b).
func ensure(b []byte, sz int) ([]byte, int) {
	l := len(b)
	c := cap(b)
	if c-l < sz {
		o := make([]byte, (2*c)+sz) // exponential growth
		n := copy(o, b)
		return o[:n+sz], n
	}
	return b[:l+sz], l
}

// appendUintCore encodes an unsigned integer argument with the given
// major type, shortest form.
func appendUintCore(b []byte, majorType uint8, u uint64) []byte {
	switch {
	case u <= addInfoDirect:
		return append(b, makeByte(majorType, uint8(u)))
	case u <= math.MaxUint8:
		o, n := ensure(b, 2)
		o[n] = makeByte(majorType, addInfoUint8)
		o[n+1] = uint8(u)
		return o
	case u <= math.MaxUint16:
		o, n := ensure(b, 3)
		o[n] = makeByte(majorType, addInfoUint16)
		binary.BigEndian.PutUint16(o[n+1:], uint16(u))
		return o
	case u <= math.MaxUint32:
		o, n := ensure(b, 5)
		o[n] = makeByte(majorType, addInfoUint32)
		binary.BigEndian.PutUint32(o[n+1:], uint32(u))
		return o
	default:
		o, n := ensure(b, 9)
		o[n] = makeByte(majorType, addInfoUint64)
		binary.BigEndian.PutUint64(o[n+1:], u)
		return o
	}
}

// AppendUint64 appends a major type 0 integer.
func AppendUint64(b []byte, u uint64) []byte {
	return appendUintCore(b, majorTypeUint, u)
}

// AppendInt64 appends a major type 0 or 1 integer. Negative values
// encode as -1-n.
func AppendInt64(b []byte, i int64) []byte {
	if i >= 0 {
		return appendUintCore(b, majorTypeUint, uint64(i))
	}
	return appendUintCore(b, majorTypeNegInt, uint64(-1-i))
}

// AppendMapHeader appends a definite-length map header.
func AppendMapHeader(b []byte, sz uint64) []byte {
	return appendUintCore(b, majorTypeMap, sz)
}

// AppendArrayHeader appends a definite-length array header.
func AppendArrayHeader(b []byte, sz uint64) []byte {
	return appendUintCore(b, majorTypeArray, sz)
}

// AppendMapHeaderIndefinite appends an indefinite-length map header (0xbf).
func AppendMapHeaderIndefinite(b []byte) []byte {
	return append(b, makeByte(majorTypeMap, addInfoIndefinite))
}

// AppendArrayHeaderIndefinite appends an indefinite-length array header (0x9f).
func AppendArrayHeaderIndefinite(b []byte) []byte {
	return append(b, makeByte(majorTypeArray, addInfoIndefinite))
}

// AppendBreak appends the break byte (0xff) terminating an
// indefinite-length container.
func AppendBreak(b []byte) []byte {
	return append(b, makeByte(majorTypeSimple, simpleBreak))
}

// AppendString appends a definite-length text string.
func AppendString(b []byte, s []byte) []byte {
	b = appendUintCore(b, majorTypeText, uint64(len(s)))
	return append(b, s...)
}

// AppendBytes appends a definite-length byte string.
func AppendBytes(b []byte, data []byte) []byte {
	b = appendUintCore(b, majorTypeBytes, uint64(len(data)))
	return append(b, data...)
}

// AppendTag appends a semantic tag prefix.
func AppendTag(b []byte, tag uint64) []byte {
	return appendUintCore(b, majorTypeTag, tag)
}

// AppendBool appends a bool simple value.
func AppendBool(b []byte, val bool) []byte {
	if val {
		return append(b, makeByte(majorTypeSimple, simpleTrue))
	}
	return append(b, makeByte(majorTypeSimple, simpleFalse))
}

// AppendNil appends a null simple value.
func AppendNil(b []byte) []byte {
	return append(b, makeByte(majorTypeSimple, simpleNull))
}

// AppendUndefined appends the undefined simple value.
func AppendUndefined(b []byte) []byte {
	return append(b, makeByte(majorTypeSimple, simpleUndefined))
}

// AppendFloat64 appends 0xfb plus an 8-byte big-endian double.
func AppendFloat64(b []byte, f float64) []byte {
	o, n := ensure(b, 9)
	o[n] = makeByte(majorTypeSimple, simpleFloat64)
	binary.BigEndian.PutUint64(o[n+1:], math.Float64bits(f))
	return o
}

// AppendFloat32 appends 0xfa plus a 4-byte big-endian float.
func AppendFloat32(b []byte, f float32) []byte {
	o, n := ensure(b, 5)
	o[n] = makeByte(majorTypeSimple, simpleFloat32)
	binary.BigEndian.PutUint32(o[n+1:], math.Float32bits(f))
	return o
}

// AppendFloat16 appends 0xf9 plus 2 bytes of binary16 bits.
func AppendFloat16(b []byte, bits uint16) []byte {
	o, n := ensure(b, 3)
	o[n] = makeByte(majorTypeSimple, simpleFloat16)
	binary.BigEndian.PutUint16(o[n+1:], bits)
	return o
}

// AppendDouble appends f narrowed to float32 when that is exact,
// otherwise as a double.
func AppendDouble(b []byte, f float64) []byte {
	f32 := float32(f)
	if float64(f32) == f {
		return AppendFloat32(b, f32)
	}
	return AppendFloat64(b, f)
}

// Float16FromFloat32 converts with IEEE round-to-nearest-even.
func Float16FromFloat32(f float32) uint16 {
	return float16.Fromfloat32(f).Bits()
}

// nativeLittleEndian reports the platform byte order, selecting between
// the big- and little-endian typed-array tags.
var nativeLittleEndian = func() bool {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	return buf[0] == 1
}()

package cbor

import (
	"encoding/binary"
	"math"

	"github.com/forksnd/staj/event"
)

// writeTypedArray writes the RFC 8746 form: the endianness-selected tag
// followed by a byte-string body holding the platform-endian payload.
func (e *Encoder) writeTypedArray(tagBE, tagLE uint64, body []byte) {
	if nativeLittleEndian {
		e.buf = AppendTag(e.buf, tagLE)
	} else {
		e.buf = AppendTag(e.buf, tagBE)
	}
	e.buf = AppendBytes(e.buf, body)
	e.endValue()
}

// TypedArrayUint8 implements event.TypedArrays. The Clamped tag selects
// the clamped variant; endianness does not apply to single bytes.
func (e *Encoder) TypedArrayUint8(data []uint8, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Uint64(uint64(v), event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	if tag == event.Clamped {
		e.buf = AppendTag(e.buf, tagArrayUint8Clamped)
	} else {
		e.buf = AppendTag(e.buf, tagArrayUint8)
	}
	e.buf = AppendBytes(e.buf, data)
	e.endValue()
	return nil
}

// TypedArrayUint16 implements event.TypedArrays.
func (e *Encoder) TypedArrayUint16(data []uint16, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Uint64(uint64(v), event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 2*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint16(body[2*i:], v)
	}
	e.writeTypedArray(tagArrayUint16BE, tagArrayUint16LE, body)
	return nil
}

// TypedArrayUint32 implements event.TypedArrays.
func (e *Encoder) TypedArrayUint32(data []uint32, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Uint64(uint64(v), event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 4*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint32(body[4*i:], v)
	}
	e.writeTypedArray(tagArrayUint32BE, tagArrayUint32LE, body)
	return nil
}

// TypedArrayUint64 implements event.TypedArrays.
func (e *Encoder) TypedArrayUint64(data []uint64, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Uint64(v, event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 8*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint64(body[8*i:], v)
	}
	e.writeTypedArray(tagArrayUint64BE, tagArrayUint64LE, body)
	return nil
}

// TypedArrayInt8 implements event.TypedArrays. Like uint8, endianness
// does not apply.
func (e *Encoder) TypedArrayInt8(data []int8, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Int64(int64(v), event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, len(data))
	for i, v := range data {
		body[i] = byte(v)
	}
	e.buf = AppendTag(e.buf, tagArrayInt8)
	e.buf = AppendBytes(e.buf, body)
	e.endValue()
	return nil
}

// TypedArrayInt16 implements event.TypedArrays.
func (e *Encoder) TypedArrayInt16(data []int16, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Int64(int64(v), event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 2*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint16(body[2*i:], uint16(v))
	}
	e.writeTypedArray(tagArrayInt16BE, tagArrayInt16LE, body)
	return nil
}

// TypedArrayInt32 implements event.TypedArrays.
func (e *Encoder) TypedArrayInt32(data []int32, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Int64(int64(v), event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 4*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint32(body[4*i:], uint32(v))
	}
	e.writeTypedArray(tagArrayInt32BE, tagArrayInt32LE, body)
	return nil
}

// TypedArrayInt64 implements event.TypedArrays.
func (e *Encoder) TypedArrayInt64(data []int64, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Int64(v, event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 8*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint64(body[8*i:], uint64(v))
	}
	e.writeTypedArray(tagArrayInt64BE, tagArrayInt64LE, body)
	return nil
}

// TypedArrayHalf implements event.TypedArrays over binary16 bit patterns.
func (e *Encoder) TypedArrayHalf(data []uint16, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Half(v, event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 2*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint16(body[2*i:], v)
	}
	e.writeTypedArray(tagArrayFloat16BE, tagArrayFloat16LE, body)
	return nil
}

// TypedArrayFloat32 implements event.TypedArrays.
func (e *Encoder) TypedArrayFloat32(data []float32, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Double(float64(v), event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 4*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint32(body[4*i:], math.Float32bits(v))
	}
	e.writeTypedArray(tagArrayFloat32BE, tagArrayFloat32LE, body)
	return nil
}

// TypedArrayFloat64 implements event.TypedArrays.
func (e *Encoder) TypedArrayFloat64(data []float64, tag event.Tag, ctx event.Context) error {
	if !e.opts.UseTypedArrays {
		if err := e.BeginArrayWithLength(len(data), event.None, ctx); err != nil {
			return err
		}
		for _, v := range data {
			if err := e.Double(v, event.None, ctx); err != nil {
				return err
			}
		}
		return e.EndArray(ctx)
	}
	body := make([]byte, 8*len(data))
	for i, v := range data {
		binary.NativeEndian.PutUint64(body[8*i:], math.Float64bits(v))
	}
	e.writeTypedArray(tagArrayFloat64BE, tagArrayFloat64LE, body)
	return nil
}

// BeginMultiDim implements event.MultiDim: tag 40 or 1040 wrapping a
// two-element array of shape and data. The caller emits the data item
// and closes with EndMultiDim.
func (e *Encoder) BeginMultiDim(shape []int, tag event.Tag, ctx event.Context) error {
	if tag == event.MultiDimColumnMajor {
		e.buf = AppendTag(e.buf, tagMultiDimColMajor)
	} else {
		e.buf = AppendTag(e.buf, tagMultiDimRowMajor)
	}
	if err := e.BeginArrayWithLength(2, event.None, ctx); err != nil {
		return err
	}
	if err := e.BeginArrayWithLength(len(shape), event.None, ctx); err != nil {
		return err
	}
	for _, dim := range shape {
		if err := e.Uint64(uint64(dim), event.None, ctx); err != nil {
			return err
		}
	}
	return e.EndArray(ctx)
}

// EndMultiDim implements event.MultiDim.
func (e *Encoder) EndMultiDim(ctx event.Context) error {
	return e.EndArray(ctx)
}

package event

// TypedArrays is an optional fast path for sinks that can consume a whole
// numeric array in one call (for example the CBOR encoder, which writes a
// tagged byte-string body). Sinks that do not implement it receive the
// equivalent begin_array / scalar values / end_array sequence through the
// WriteTypedArray* helpers.
type TypedArrays interface {
	// TypedArrayUint8 consumes a uint8 array. The Clamped tag selects the
	// clamped variant where the wire format distinguishes one.
	TypedArrayUint8(data []uint8, tag Tag, ctx Context) error
	TypedArrayUint16(data []uint16, tag Tag, ctx Context) error
	TypedArrayUint32(data []uint32, tag Tag, ctx Context) error
	TypedArrayUint64(data []uint64, tag Tag, ctx Context) error
	TypedArrayInt8(data []int8, tag Tag, ctx Context) error
	TypedArrayInt16(data []int16, tag Tag, ctx Context) error
	TypedArrayInt32(data []int32, tag Tag, ctx Context) error
	TypedArrayInt64(data []int64, tag Tag, ctx Context) error

	// TypedArrayHalf consumes binary16 values by bit pattern.
	TypedArrayHalf(data []uint16, tag Tag, ctx Context) error
	TypedArrayFloat32(data []float32, tag Tag, ctx Context) error
	TypedArrayFloat64(data []float64, tag Tag, ctx Context) error
}

// MultiDim is an optional fast path for sinks that understand
// multi-dimensional array shapes. Sinks without it receive nested plain
// arrays through the BeginMultiDim/EndMultiDim helpers.
type MultiDim interface {
	BeginMultiDim(shape []int, tag Tag, ctx Context) error
	EndMultiDim(ctx Context) error
}

// WriteTypedArrayUint8 dispatches a uint8 array to v, expanding to plain
// array events when v lacks the fast path.
func WriteTypedArrayUint8(v Visitor, data []uint8, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayUint8(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Uint64(uint64(e), None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayUint16 dispatches a uint16 array to v.
func WriteTypedArrayUint16(v Visitor, data []uint16, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayUint16(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Uint64(uint64(e), None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayUint32 dispatches a uint32 array to v.
func WriteTypedArrayUint32(v Visitor, data []uint32, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayUint32(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Uint64(uint64(e), None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayUint64 dispatches a uint64 array to v.
func WriteTypedArrayUint64(v Visitor, data []uint64, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayUint64(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Uint64(e, None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayInt8 dispatches an int8 array to v.
func WriteTypedArrayInt8(v Visitor, data []int8, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayInt8(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Int64(int64(e), None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayInt16 dispatches an int16 array to v.
func WriteTypedArrayInt16(v Visitor, data []int16, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayInt16(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Int64(int64(e), None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayInt32 dispatches an int32 array to v.
func WriteTypedArrayInt32(v Visitor, data []int32, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayInt32(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Int64(int64(e), None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayInt64 dispatches an int64 array to v.
func WriteTypedArrayInt64(v Visitor, data []int64, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayInt64(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Int64(e, None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayHalf dispatches a binary16 array to v. The fallback emits
// Half events, which sinks widen as they see fit.
func WriteTypedArrayHalf(v Visitor, data []uint16, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayHalf(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Half(e, None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayFloat32 dispatches a float32 array to v.
func WriteTypedArrayFloat32(v Visitor, data []float32, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayFloat32(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Double(float64(e), None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// WriteTypedArrayFloat64 dispatches a float64 array to v.
func WriteTypedArrayFloat64(v Visitor, data []float64, tag Tag, ctx Context) error {
	if ta, ok := v.(TypedArrays); ok {
		return ta.TypedArrayFloat64(data, tag, ctx)
	}
	if err := v.BeginArrayWithLength(len(data), tag, ctx); err != nil {
		return err
	}
	for _, e := range data {
		if err := v.Double(e, None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// BeginMultiDim dispatches the start of a multi-dimensional array to v.
// The fallback writes a two-element array whose first element is the shape;
// the caller emits the data item next and closes with EndMultiDim.
func BeginMultiDim(v Visitor, shape []int, tag Tag, ctx Context) error {
	if md, ok := v.(MultiDim); ok {
		return md.BeginMultiDim(shape, tag, ctx)
	}
	if err := v.BeginArrayWithLength(2, tag, ctx); err != nil {
		return err
	}
	if err := v.BeginArrayWithLength(len(shape), None, ctx); err != nil {
		return err
	}
	for _, dim := range shape {
		if err := v.Uint64(uint64(dim), None, ctx); err != nil {
			return err
		}
	}
	return v.EndArray(ctx)
}

// EndMultiDim closes a multi-dimensional array opened with BeginMultiDim.
func EndMultiDim(v Visitor, ctx Context) error {
	if md, ok := v.(MultiDim); ok {
		return md.EndMultiDim(ctx)
	}
	return v.EndArray(ctx)
}

package cbor

import (
	"io"

	"github.com/forksnd/staj/tree"
)

// Encode writes v to w as CBOR with definite-length containers.
func Encode(v *tree.Value, w io.Writer, opts EncodeOptions) error {
	enc := NewEncoder(w, opts)
	if err := v.Accept(enc); err != nil {
		return err
	}
	return enc.Close()
}

// Marshal returns the CBOR encoding of v.
func Marshal(v *tree.Value, opts EncodeOptions) ([]byte, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	if err := Encode(v, bb, opts); err != nil {
		return nil, err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

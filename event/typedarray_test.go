package event_test

import (
	"encoding/hex"
	"testing"

	"github.com/forksnd/staj/cbor"
	"github.com/forksnd/staj/event"
	"github.com/forksnd/staj/tree"
)

// The tree builder has no typed-array fast path, so the helpers must
// expand to plain array events.
func TestTypedArrayFallback(t *testing.T) {
	b := tree.NewBuilder()
	if err := event.WriteTypedArrayUint16(b, []uint16{1, 2, 3}, event.None, event.NoContext); err != nil {
		t.Fatal(err)
	}
	v := b.Result()
	if v.Kind() != tree.ArrayKind {
		t.Fatalf("got %v", v.Kind())
	}
	elems := v.Elements()
	if len(elems) != 3 {
		t.Fatalf("got %d elements", len(elems))
	}
	for i, want := range []int64{1, 2, 3} {
		if elems[i].AsInt64() != want {
			t.Errorf("element %d: got %d, want %d", i, elems[i].AsInt64(), want)
		}
	}
}

func TestTypedArrayFloatFallback(t *testing.T) {
	b := tree.NewBuilder()
	if err := event.WriteTypedArrayFloat64(b, []float64{0.5, -1.25}, event.None, event.NoContext); err != nil {
		t.Fatal(err)
	}
	v := b.Result()
	elems := v.Elements()
	if len(elems) != 2 || elems[0].AsDouble() != 0.5 || elems[1].AsDouble() != -1.25 {
		t.Fatalf("got %v", v)
	}
}

func TestMultiDimFallbackNestedArrays(t *testing.T) {
	b := tree.NewBuilder()
	ctx := event.NoContext
	if err := event.BeginMultiDim(b, []int{2}, event.MultiDimRowMajor, ctx); err != nil {
		t.Fatal(err)
	}
	if err := event.WriteTypedArrayUint8(b, []uint8{7, 8}, event.None, ctx); err != nil {
		t.Fatal(err)
	}
	if err := event.EndMultiDim(b, ctx); err != nil {
		t.Fatal(err)
	}
	v := b.Result()
	// [[2], [7, 8]]
	if v.Kind() != tree.ArrayKind || len(v.Elements()) != 2 {
		t.Fatalf("got %v", v)
	}
	shape := v.Elements()[0]
	if shape.Kind() != tree.ArrayKind || shape.Elements()[0].AsInt64() != 2 {
		t.Fatalf("shape: %v", shape)
	}
	data := v.Elements()[1]
	if len(data.Elements()) != 2 || data.Elements()[1].AsInt64() != 8 {
		t.Fatalf("data: %v", data)
	}
}

// The CBOR encoder implements the fast path, so the same helper call
// must produce a tagged byte-string body.
func TestTypedArrayFastPathDispatch(t *testing.T) {
	bb := cbor.GetByteBuffer()
	defer cbor.PutByteBuffer(bb)
	e := cbor.NewEncoder(bb, cbor.EncodeOptions{UseTypedArrays: true})
	if err := event.WriteTypedArrayUint8(e, []uint8{1, 2, 3}, event.None, event.NoContext); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if got := hex.EncodeToString(bb.Bytes()); got != "d84043010203" {
		t.Fatalf("got %s", got)
	}
}

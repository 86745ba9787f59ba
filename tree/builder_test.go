package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forksnd/staj/event"
)

func TestBuilderScalarRoot(t *testing.T) {
	b := NewBuilder()
	ctx := event.NoContext
	require.NoError(t, b.Int64(-42, event.None, ctx))
	require.True(t, b.IsValid())

	v := b.Result()
	assert.Equal(t, Int64Kind, v.Kind())
	assert.Equal(t, int64(-42), v.AsInt64())
	assert.False(t, b.IsValid(), "Result must invalidate")
}

func TestBuilderObjectOrder(t *testing.T) {
	b := NewBuilder()
	ctx := event.NoContext
	require.NoError(t, b.BeginObject(event.None, ctx))
	require.NoError(t, b.Key([]byte("zebra"), ctx))
	require.NoError(t, b.Int64(1, event.None, ctx))
	require.NoError(t, b.Key([]byte("alpha"), ctx))
	require.NoError(t, b.Int64(2, event.None, ctx))
	require.NoError(t, b.Key([]byte("middle"), ctx))
	require.NoError(t, b.Int64(3, event.None, ctx))
	require.NoError(t, b.EndObject(ctx))
	require.True(t, b.IsValid())

	v := b.Result()
	require.Equal(t, ObjectKind, v.Kind())
	keys := make([]string, 0, 3)
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"zebra", "alpha", "middle"}, keys, "insertion order preserved")
}

func TestBuilderDuplicateKeysAppend(t *testing.T) {
	b := NewBuilder()
	ctx := event.NoContext
	require.NoError(t, b.BeginObject(event.None, ctx))
	require.NoError(t, b.Key([]byte("k"), ctx))
	require.NoError(t, b.Int64(1, event.None, ctx))
	require.NoError(t, b.Key([]byte("k"), ctx))
	require.NoError(t, b.Int64(2, event.None, ctx))
	require.NoError(t, b.EndObject(ctx))

	v := b.Result()
	require.Len(t, v.Members(), 2)
	assert.Equal(t, "k", v.Members()[0].Key)
	assert.Equal(t, "k", v.Members()[1].Key)
	assert.Equal(t, int64(1), v.Members()[0].Value.AsInt64())
	assert.Equal(t, int64(2), v.Members()[1].Value.AsInt64())
}

func TestBuilderNesting(t *testing.T) {
	b := NewBuilder()
	ctx := event.NoContext
	// {"a": [1, {"b": null}], "c": true}
	require.NoError(t, b.BeginObject(event.None, ctx))
	require.NoError(t, b.Key([]byte("a"), ctx))
	require.NoError(t, b.BeginArray(event.None, ctx))
	require.NoError(t, b.Int64(1, event.None, ctx))
	require.NoError(t, b.BeginObject(event.None, ctx))
	require.NoError(t, b.Key([]byte("b"), ctx))
	require.NoError(t, b.Null(event.None, ctx))
	require.NoError(t, b.EndObject(ctx))
	require.NoError(t, b.EndArray(ctx))
	require.NoError(t, b.Key([]byte("c"), ctx))
	require.NoError(t, b.Bool(true, event.None, ctx))
	require.NoError(t, b.EndObject(ctx))
	require.True(t, b.IsValid())

	v := b.Result()
	a, ok := v.Get("a")
	require.True(t, ok)
	require.Equal(t, ArrayKind, a.Kind())
	require.Len(t, a.Elements(), 2)
	assert.Equal(t, int64(1), a.Elements()[0].AsInt64())

	inner := a.Elements()[1]
	require.Equal(t, ObjectKind, inner.Kind())
	bv, ok := inner.Get("b")
	require.True(t, ok)
	assert.True(t, bv.IsNull())

	c, ok := v.Get("c")
	require.True(t, ok)
	assert.True(t, c.AsBool())
}

func TestBuilderTagsPreserved(t *testing.T) {
	b := NewBuilder()
	ctx := event.NoContext
	require.NoError(t, b.BeginArray(event.None, ctx))
	require.NoError(t, b.String([]byte("123456789012345678901234567890"), event.BigInt, ctx))
	require.NoError(t, b.String([]byte("2013-03-21T20:04:00Z"), event.DateTime, ctx))
	require.NoError(t, b.ByteString([]byte{1, 2, 3}, event.Base16, ctx))
	require.NoError(t, b.ByteStringExt([]byte{4, 5}, 99, ctx))
	require.NoError(t, b.EndArray(ctx))

	v := b.Result()
	elems := v.Elements()
	require.Len(t, elems, 4)
	assert.Equal(t, event.BigInt, elems[0].Tag())
	assert.Equal(t, event.DateTime, elems[1].Tag())
	assert.Equal(t, event.Base16, elems[2].Tag())
	ext, ok := elems[3].ExtTag()
	require.True(t, ok)
	assert.Equal(t, uint64(99), ext)
}

func TestBuilderHalfWidens(t *testing.T) {
	b := NewBuilder()
	ctx := event.NoContext
	// 0x3c00 is binary16 1.0
	require.NoError(t, b.Half(0x3c00, event.None, ctx))
	v := b.Result()
	require.Equal(t, DoubleKind, v.Kind())
	assert.Equal(t, 1.0, v.AsDouble())
}

func TestBuilderPayloadCopied(t *testing.T) {
	b := NewBuilder()
	ctx := event.NoContext
	payload := []byte("mutable")
	require.NoError(t, b.BeginArray(event.None, ctx))
	require.NoError(t, b.String(payload, event.None, ctx))
	require.NoError(t, b.ByteString(payload, event.None, ctx))
	payload[0] = 'X'
	require.NoError(t, b.EndArray(ctx))

	v := b.Result()
	assert.Equal(t, "mutable", v.Elements()[0].AsString())
	assert.Equal(t, []byte("mutable"), v.Elements()[1].AsBytes())
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder()
	ctx := event.NoContext
	require.NoError(t, b.BeginArray(event.None, ctx))
	require.NoError(t, b.Int64(1, event.None, ctx))
	// abandon mid-document
	b.Reset()
	require.False(t, b.IsValid())

	require.NoError(t, b.Bool(true, event.None, ctx))
	v := b.Result()
	assert.Equal(t, BoolKind, v.Kind())
	assert.True(t, v.AsBool())
}

func TestValueEqual(t *testing.T) {
	a := Object([]Member{
		{Key: "x", Value: Array([]Value{Int64(1, event.None), Double(2.5, event.None)}, event.None)},
	}, event.None)
	b := Object([]Member{
		{Key: "x", Value: Array([]Value{Int64(1, event.None), Double(2.5, event.None)}, event.None)},
	}, event.None)
	c := Object([]Member{
		{Key: "x", Value: Array([]Value{Int64(1, event.None), Double(2.6, event.None)}, event.None)},
	}, event.None)

	assert.True(t, a.Equal(&b))
	assert.False(t, a.Equal(&c))

	tagged := String("1", event.BigInt)
	untagged := String("1", event.None)
	assert.False(t, tagged.Equal(&untagged), "tags participate in equality")
}

package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forksnd/staj/event"
	"github.com/forksnd/staj/tree"
)

func encodeToString(t *testing.T, v *tree.Value, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(v, &buf, opts))
	return buf.String()
}

func TestEncodeCompact(t *testing.T) {
	v := tree.Object([]tree.Member{
		{Key: "a", Value: tree.Int64(1, event.None)},
		{Key: "b", Value: tree.Array([]tree.Value{
			tree.Bool(true, event.None),
			tree.Null(event.None),
			tree.String("x\"y", event.None),
		}, event.None)},
	}, event.None)

	got := encodeToString(t, &v, Options{})
	require.Equal(t, `{"a":1,"b":[true,null,"x\"y"]}`, got)
}

func TestEncodeBigNumbersRaw(t *testing.T) {
	v := tree.Array([]tree.Value{
		tree.String("123456789012345678901234567890", event.BigInt),
		tree.String("3.14", event.BigDec),
	}, event.None)
	got := encodeToString(t, &v, Options{})
	require.Equal(t, `[123456789012345678901234567890,3.14]`, got)
}

func TestEncodeControlEscapes(t *testing.T) {
	v := tree.String("a\x01\nb", event.None)
	got := encodeToString(t, &v, Options{})
	require.Equal(t, `"a\u0001\nb"`, got)
}

func TestEncodeByteStrings(t *testing.T) {
	data := []byte{0x01, 0x02, 0xff}
	cases := []struct {
		tag  event.Tag
		want string
	}{
		{event.Base16, `"0102ff"`},
		{event.Base64, `"AQL/"`},
		{event.None, `"AQL_"`},
	}
	for _, tc := range cases {
		v := tree.ByteString(data, tc.tag)
		require.Equal(t, tc.want, encodeToString(t, &v, Options{}), "tag %v", tc.tag)
	}
}

func TestRoundTripTree(t *testing.T) {
	docs := []string{
		`{"a":1,"b":[true,null,"s"],"c":{"d":-2}}`,
		`[0,1,-1,9223372036854775807,18446744073709551615,123456789012345678901234567890]`,
		`"just a string"`,
		`[]`,
		`{}`,
		`null`,
	}
	opts := Options{LosslessNumber: true}
	for _, doc := range docs {
		v, err := Decode([]byte(doc), opts)
		require.NoError(t, err, doc)

		var buf bytes.Buffer
		require.NoError(t, Encode(&v, &buf, opts))

		v2, err := Decode(buf.Bytes(), opts)
		require.NoError(t, err, buf.String())
		require.True(t, v.Equal(&v2), "round trip diverged: %s -> %s", doc, buf.String())
	}
}

func TestEncodeNonFinite(t *testing.T) {
	opts := Options{NaNString: "NaN", PosInfString: "Infinity", NegInfString: "-Infinity"}
	v, err := Decode([]byte(`["NaN","Infinity","-Infinity"]`), opts)
	require.NoError(t, err)

	got := encodeToString(t, &v, opts)
	require.Equal(t, `["NaN","Infinity","-Infinity"]`, got)

	// without replacements, non-finite doubles collapse to null
	bare := encodeToString(t, &v, Options{})
	require.Equal(t, `[null,null,null]`, bare)
}

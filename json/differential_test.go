package json

import (
	"bytes"
	stdjson "encoding/json"
	"strconv"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"

	"github.com/forksnd/staj/tree"
)

// toInterface converts a tree value into the generic shape reference
// decoders produce, with numbers rendered as json.Number text.
func toInterface(v *tree.Value) any {
	switch v.Kind() {
	case tree.NullKind:
		return nil
	case tree.BoolKind:
		return v.AsBool()
	case tree.Int64Kind:
		return stdjson.Number(strconv.FormatInt(v.AsInt64(), 10))
	case tree.Uint64Kind:
		return stdjson.Number(strconv.FormatUint(v.AsUint64(), 10))
	case tree.DoubleKind:
		return v.AsDouble()
	case tree.StringKind:
		return v.AsString()
	case tree.ArrayKind:
		out := make([]any, len(v.Elements()))
		for i := range v.Elements() {
			out[i] = toInterface(&v.Elements()[i])
		}
		return out
	case tree.ObjectKind:
		out := make(map[string]any, len(v.Members()))
		for i := range v.Members() {
			m := &v.Members()[i]
			out[m.Key] = toInterface(&m.Value)
		}
		return out
	}
	return nil
}

var differentialDocs = []string{
	`null`,
	`true`,
	`"string with \u00e9 and \n"`,
	`[1, 2.5, -3, "four", null, {"five": [6]}]`,
	`{"nested": {"deep": {"deeper": [[[1]]]}}}`,
	`{"a": 1, "b": 2, "a": 3}`,
	`[1e10, 1e-10, 0.0001, 123456]`,
}

// TestAgainstReferenceDecoder cross-checks the tree against goccy's
// generic decoding of the same document.
func TestAgainstReferenceDecoder(t *testing.T) {
	for _, doc := range differentialDocs {
		v, err := Decode([]byte(doc), Options{})
		if err != nil {
			t.Fatalf("%s: %v", doc, err)
		}
		got := toInterface(&v)

		var want any
		dec := gojson.NewDecoder(bytes.NewReader([]byte(doc)))
		dec.UseNumber()
		if err := dec.Decode(&want); err != nil {
			t.Fatalf("reference decode %s: %v", doc, err)
		}

		if !referenceEqual(got, want) {
			t.Errorf("%s:\n got %#v\nwant %#v", doc, got, want)
		}
	}
}

// referenceEqual compares loosely: numbers by parsed value, containers
// structurally. Duplicate keys collapse the same way on both sides
// (last occurrence wins in a map).
func referenceEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		switch bv := b.(type) {
		case float64:
			return av == bv
		case stdjson.Number:
			f, err := bv.Float64()
			return err == nil && av == f
		}
		return false
	case stdjson.Number:
		af, err := av.Float64()
		if err != nil {
			return false
		}
		switch bv := b.(type) {
		case stdjson.Number:
			bf, err := bv.Float64()
			return err == nil && af == bf
		case float64:
			return af == bv
		}
		return false
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !referenceEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !referenceEqual(x, y) {
				return false
			}
		}
		return true
	}
	return false
}

// TestCommentStripEquivalence parses a commented document directly with
// AllowComments and compares against parsing the jsonc-stripped text.
func TestCommentStripEquivalence(t *testing.T) {
	docs := []string{
		"{\n  // leading comment\n  \"a\": 1, /* inline */ \"b\": [2, 3]\n}",
		"[1, /* one */ 2 /* two */, 3]",
		"{\"s\": \"slashes // inside strings are data\"}",
	}
	for _, doc := range docs {
		direct, err := Decode([]byte(doc), Options{AllowComments: true})
		if err != nil {
			t.Fatalf("direct %s: %v", doc, err)
		}
		stripped, err := Decode(jsonc.ToJSON([]byte(doc)), Options{})
		if err != nil {
			t.Fatalf("stripped %s: %v", doc, err)
		}
		if !direct.Equal(&stripped) {
			t.Errorf("comment handling diverged for %s:\n direct %v\n stripped %v", doc, direct, stripped)
		}
	}
}

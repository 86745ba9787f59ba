package json

import (
	"fmt"
	"testing"
)

// feedChunks parses doc split at the given boundaries and returns the
// event sequence.
func feedChunks(t *testing.T, doc string, opts Options, bounds []int) ([]recEvent, error) {
	t.Helper()
	p := NewChunkParser(opts, nil)
	sink := &recordSink{}
	prev := 0
	for _, b := range append(bounds, len(doc)) {
		p.Update([]byte(doc[prev:b]))
		for !p.SourceExhausted() && !p.Finished() {
			if err := p.ParseSome(sink); err != nil {
				return sink.events, err
			}
		}
		prev = b
	}
	if err := p.FinishParse(sink); err != nil {
		return sink.events, err
	}
	if err := p.CheckDone(); err != nil {
		return sink.events, err
	}
	return sink.events, nil
}

var chunkDocs = []struct {
	name string
	doc  string
	opts Options
}{
	{"scalars", `[true, false, null]`, Options{}},
	{"nested", `{"a": {"b": [1, 2, {"c": 3}]}, "d": []}`, Options{}},
	{"numbers", `[0, -1, 123, 4.5, -0.5e2, 1e-3, 18446744073709551616, 0.0001]`, Options{}},
	{"strings", `["plain", "esc\n\t\"", "Aé中", ""]`, Options{}},
	{"surrogate", "{\"clef\": \"\\uD834\\uDD1E\"}", Options{}},
	{"multibyte", `["héllo", "中文", "𝄞"]`, Options{}},
	{"whitespace", "{\r\n  \"a\": 1,\r\n  \"b\": 2\n}", Options{}},
	{"comments", "[1, /* mid */ 2, // six\n 6]", Options{AllowComments: true}},
	{"lossless", `[3.14159265358979323846, 2.5e300]`, Options{LosslessNumber: true}},
	{"bigdoc", `{"users": [{"id": 1, "name": "ann", "ok": true}, {"id": 2, "name": "bob", "ok": false}], "count": 2}`, Options{}},
}

func eventsEqual(a, b []recEvent) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestChunkEquivalence checks that any two-way split of the input
// produces the same event sequence, positions included, as a single
// feed.
func TestChunkEquivalence(t *testing.T) {
	for _, tc := range chunkDocs {
		t.Run(tc.name, func(t *testing.T) {
			whole, err := feedChunks(t, tc.doc, tc.opts, nil)
			if err != nil {
				t.Fatalf("whole feed: %v", err)
			}
			for i := 1; i < len(tc.doc); i++ {
				got, err := feedChunks(t, tc.doc, tc.opts, []int{i})
				if err != nil {
					t.Fatalf("split at %d: %v", i, err)
				}
				if !eventsEqual(whole, got) {
					t.Fatalf("split at %d: events diverge\nwhole: %+v\nsplit: %+v", i, whole, got)
				}
			}
		})
	}
}

// TestSingleByteChunks feeds one byte at a time.
func TestSingleByteChunks(t *testing.T) {
	for _, tc := range chunkDocs {
		t.Run(tc.name, func(t *testing.T) {
			whole, err := feedChunks(t, tc.doc, tc.opts, nil)
			if err != nil {
				t.Fatalf("whole feed: %v", err)
			}
			bounds := make([]int, 0, len(tc.doc))
			for i := 1; i < len(tc.doc); i++ {
				bounds = append(bounds, i)
			}
			got, err := feedChunks(t, tc.doc, tc.opts, bounds)
			if err != nil {
				t.Fatalf("byte feed: %v", err)
			}
			if !eventsEqual(whole, got) {
				t.Fatalf("events diverge\nwhole: %+v\nbytes: %+v", whole, got)
			}
		})
	}
}

// TestThreeWaySplits exercises double suspensions inside a single token.
func TestThreeWaySplits(t *testing.T) {
	doc := `{"k": "𝄞", "n": -123.456e-7}`
	whole, err := feedChunks(t, doc, Options{}, nil)
	if err != nil {
		t.Fatalf("whole feed: %v", err)
	}
	for i := 1; i < len(doc)-1; i += 3 {
		for j := i + 1; j < len(doc); j += 2 {
			got, err := feedChunks(t, doc, Options{}, []int{i, j})
			if err != nil {
				t.Fatalf("split %d/%d: %v", i, j, err)
			}
			if !eventsEqual(whole, got) {
				t.Fatalf("split %d/%d diverges", i, j)
			}
		}
	}
}

// TestPositionMonotonicity checks line never decreases and every event
// ends after the previous one begins.
func TestPositionMonotonicity(t *testing.T) {
	for _, tc := range chunkDocs {
		t.Run(tc.name, func(t *testing.T) {
			events, err := feedChunks(t, tc.doc, tc.opts, nil)
			if err != nil {
				t.Fatal(err)
			}
			line := 0
			for i, ev := range events {
				if ev.line < line {
					t.Fatalf("event %d: line went backwards (%d -> %d)", i, line, ev.line)
				}
				line = ev.line
				if i > 0 && events[i].end <= events[i-1].begin {
					t.Fatalf("event %d: end %d not after previous begin %d", i, events[i].end, events[i-1].begin)
				}
				if ev.begin > ev.end {
					t.Fatalf("event %d: begin %d > end %d", i, ev.begin, ev.end)
				}
			}
		})
	}
}

// TestNestingBalance counts begin/end pairs over a variety of documents.
func TestNestingBalance(t *testing.T) {
	for _, tc := range chunkDocs {
		events, err := feedChunks(t, tc.doc, tc.opts, nil)
		if err != nil {
			t.Fatal(err)
		}
		begins, ends := 0, 0
		for _, ev := range events {
			switch ev.kind {
			case "begin_object", "begin_array":
				begins++
			case "end_object", "end_array":
				ends++
			}
		}
		if begins != ends {
			t.Errorf("%s: %d begins, %d ends", tc.name, begins, ends)
		}
	}
}

func FuzzChunkEquivalence(f *testing.F) {
	for _, tc := range chunkDocs {
		f.Add(tc.doc, 1)
	}
	f.Add(`[1,"two",{"three":3.0}]`, 5)
	f.Fuzz(func(t *testing.T, doc string, split int) {
		if len(doc) == 0 || len(doc) > 1<<16 {
			return
		}
		split = split % len(doc)
		if split <= 0 {
			return
		}
		whole, wholeErr := feedChunks(t, doc, Options{}, nil)
		got, gotErr := feedChunks(t, doc, Options{}, []int{split})
		if (wholeErr == nil) != (gotErr == nil) {
			t.Fatalf("error mismatch: whole=%v split=%v", wholeErr, gotErr)
		}
		if wholeErr == nil && !eventsEqual(whole, got) {
			t.Fatalf("split at %d diverges for %s", split, fmt.Sprintf("%q", doc))
		}
	})
}

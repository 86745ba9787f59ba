package json

import (
	"testing"
)

func TestEventReaderSequence(t *testing.T) {
	r := NewEventReader([]byte(`{"a": [1, -2, "x"], "b": true}`), Options{})

	type want struct {
		kind EventKind
		text string
		i    int64
		u    uint64
		b    bool
	}
	wants := []want{
		{kind: BeginObjectEvent},
		{kind: KeyEvent, text: "a"},
		{kind: BeginArrayEvent},
		{kind: Int64Event, i: 1},
		{kind: Int64Event, i: -2},
		{kind: StringEvent, text: "x"},
		{kind: EndArrayEvent},
		{kind: KeyEvent, text: "b"},
		{kind: BoolEvent, b: true},
		{kind: EndObjectEvent},
	}

	i := 0
	for r.Next() {
		if i >= len(wants) {
			t.Fatalf("extra event %v", r.Current().Kind)
		}
		ev := r.Current()
		w := wants[i]
		if ev.Kind != w.kind {
			t.Fatalf("event %d: got %v, want %v", i, ev.Kind, w.kind)
		}
		switch w.kind {
		case KeyEvent, StringEvent:
			if string(ev.Str) != w.text {
				t.Fatalf("event %d: got %q, want %q", i, ev.Str, w.text)
			}
		case Int64Event:
			if ev.Int != w.i {
				t.Fatalf("event %d: got %d, want %d", i, ev.Int, w.i)
			}
		case BoolEvent:
			if ev.Bool != w.b {
				t.Fatalf("event %d: got %v, want %v", i, ev.Bool, w.b)
			}
		}
		i++
	}
	if err := r.Err(); err != nil {
		t.Fatalf("reader error: %v", err)
	}
	if i != len(wants) {
		t.Fatalf("got %d events, want %d", i, len(wants))
	}
	if !r.Done() {
		t.Fatal("reader not done")
	}
}

func TestEventReaderRootScalar(t *testing.T) {
	r := NewEventReader([]byte(`42`), Options{})
	if !r.Next() {
		t.Fatalf("no event: %v", r.Err())
	}
	if ev := r.Current(); ev.Kind != Int64Event || ev.Int != 42 {
		t.Fatalf("got %+v", ev)
	}
	if r.Next() {
		t.Fatal("unexpected second event")
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestEventReaderSyntaxError(t *testing.T) {
	r := NewEventReader([]byte(`[1, }`), Options{})
	for r.Next() {
	}
	if r.Err() == nil {
		t.Fatal("expected error")
	}
}

func TestEventReaderPayloadSurvivesAdvance(t *testing.T) {
	r := NewEventReader([]byte(`["first", "second"]`), Options{})
	var first []byte
	for r.Next() {
		ev := r.Current()
		if ev.Kind == StringEvent && first == nil {
			first = ev.Str
		}
	}
	if string(first) != "first" {
		t.Fatalf("payload clobbered: %q", first)
	}
}

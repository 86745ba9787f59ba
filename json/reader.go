package json

import (
	"github.com/forksnd/staj/event"
)

// EventKind discriminates pull-reader events.
type EventKind uint8

const (
	BeginObjectEvent EventKind = iota + 1
	EndObjectEvent
	BeginArrayEvent
	EndArrayEvent
	KeyEvent
	StringEvent
	Int64Event
	Uint64Event
	DoubleEvent
	BoolEvent
	NullEvent
)

var eventKindNames = [...]string{
	BeginObjectEvent: "begin-object",
	EndObjectEvent:   "end-object",
	BeginArrayEvent:  "begin-array",
	EndArrayEvent:    "end-array",
	KeyEvent:         "key",
	StringEvent:      "string",
	Int64Event:       "int64",
	Uint64Event:      "uint64",
	DoubleEvent:      "double",
	BoolEvent:        "bool",
	NullEvent:        "null",
}

// String implements fmt.Stringer.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) && k > 0 {
		return eventKindNames[k]
	}
	return "<invalid>"
}

// StreamEvent is one captured parser event. Payloads are copies and
// remain valid after the reader advances.
type StreamEvent struct {
	Kind   EventKind
	Tag    event.Tag
	Str    []byte
	Int    int64
	Uint   uint64
	Float  float64
	Bool   bool
	Line   int
	Column int
}

// captureSink records exactly one event per cursor-mode resumption.
type captureSink struct {
	ev       StreamEvent
	captured bool
}

func (s *captureSink) record(ev StreamEvent, ctx event.Context) error {
	ev.Line = ctx.Line()
	ev.Column = ctx.Column()
	s.ev = ev
	s.captured = true
	return nil
}

func (s *captureSink) BeginObject(tag event.Tag, ctx event.Context) error {
	return s.record(StreamEvent{Kind: BeginObjectEvent, Tag: tag}, ctx)
}

func (s *captureSink) BeginObjectWithLength(length int, tag event.Tag, ctx event.Context) error {
	return s.BeginObject(tag, ctx)
}

func (s *captureSink) EndObject(ctx event.Context) error {
	return s.record(StreamEvent{Kind: EndObjectEvent}, ctx)
}

func (s *captureSink) BeginArray(tag event.Tag, ctx event.Context) error {
	return s.record(StreamEvent{Kind: BeginArrayEvent, Tag: tag}, ctx)
}

func (s *captureSink) BeginArrayWithLength(length int, tag event.Tag, ctx event.Context) error {
	return s.BeginArray(tag, ctx)
}

func (s *captureSink) EndArray(ctx event.Context) error {
	return s.record(StreamEvent{Kind: EndArrayEvent}, ctx)
}

func (s *captureSink) Key(name []byte, ctx event.Context) error {
	cp := make([]byte, len(name))
	copy(cp, name)
	return s.record(StreamEvent{Kind: KeyEvent, Str: cp}, ctx)
}

func (s *captureSink) String(value []byte, tag event.Tag, ctx event.Context) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	return s.record(StreamEvent{Kind: StringEvent, Tag: tag, Str: cp}, ctx)
}

func (s *captureSink) ByteString(value []byte, tag event.Tag, ctx event.Context) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	return s.record(StreamEvent{Kind: StringEvent, Tag: tag, Str: cp}, ctx)
}

func (s *captureSink) ByteStringExt(value []byte, extTag uint64, ctx event.Context) error {
	return s.ByteString(value, event.None, ctx)
}

func (s *captureSink) Int64(value int64, tag event.Tag, ctx event.Context) error {
	return s.record(StreamEvent{Kind: Int64Event, Tag: tag, Int: value}, ctx)
}

func (s *captureSink) Uint64(value uint64, tag event.Tag, ctx event.Context) error {
	return s.record(StreamEvent{Kind: Uint64Event, Tag: tag, Uint: value}, ctx)
}

func (s *captureSink) Double(value float64, tag event.Tag, ctx event.Context) error {
	return s.record(StreamEvent{Kind: DoubleEvent, Tag: tag, Float: value}, ctx)
}

func (s *captureSink) Half(value uint16, tag event.Tag, ctx event.Context) error {
	return s.record(StreamEvent{Kind: DoubleEvent, Tag: tag, Float: float64(value)}, ctx)
}

func (s *captureSink) Bool(value bool, tag event.Tag, ctx event.Context) error {
	return s.record(StreamEvent{Kind: BoolEvent, Tag: tag, Bool: value}, ctx)
}

func (s *captureSink) Null(tag event.Tag, ctx event.Context) error {
	return s.record(StreamEvent{Kind: NullEvent, Tag: tag}, ctx)
}

func (s *captureSink) Flush() error { return nil }

// EventReader drives a cursor-mode parser one event at a time:
//
//	r := json.NewEventReader(data, json.Options{})
//	for r.Next() {
//		ev := r.Current()
//		...
//	}
//	if err := r.Err(); err != nil { ... }
type EventReader struct {
	parser *ChunkParser
	sink   captureSink
	err    error
}

// NewEventReader returns a reader over a complete document held in data.
func NewEventReader(data []byte, opts Options) *EventReader {
	p := NewChunkParser(opts, nil)
	p.CursorMode(true)
	p.Update(data)
	return &EventReader{parser: p}
}

// Next advances to the next event, reporting false at end of document or
// on error.
func (r *EventReader) Next() bool {
	if r.err != nil || r.parser.Done() {
		return false
	}
	r.sink.captured = false
	r.parser.Restart()
	for !r.sink.captured {
		if err := r.parser.ParseSome(&r.sink); err != nil {
			r.err = err
			return false
		}
		if r.parser.Done() {
			return false
		}
	}
	return true
}

// Current returns the most recently read event. It is valid until the
// next call to Next.
func (r *EventReader) Current() *StreamEvent { return &r.sink.ev }

// Err returns the first error encountered, if any.
func (r *EventReader) Err() error { return r.err }

// Done reports whether the document has been fully consumed.
func (r *EventReader) Done() bool { return r.parser.Done() }

package tree

import (
	"github.com/x448/float16"

	"github.com/forksnd/staj/event"
)

type structureKind uint8

const (
	rootStructure structureKind = iota
	arrayStructure
	objectStructure
)

type frame struct {
	kind           structureKind
	containerIndex int
}

type item struct {
	key   string
	value Value
}

// Builder is an event sink that assembles a Value. It keeps a flat
// append-only item buffer plus a stack of structure frames; closing a
// container slices the tail of the buffer into the container's payload.
//
// The zero value is not usable; call NewBuilder.
type Builder struct {
	items   []item
	frames  []frame
	pending string
	result  Value
	valid   bool
}

// NewBuilder returns a Builder ready to receive events.
func NewBuilder() *Builder {
	b := &Builder{
		items:  make([]item, 0, 64),
		frames: make([]frame, 0, 16),
	}
	b.frames = append(b.frames, frame{kind: rootStructure})
	return b
}

// Reset clears all accumulated state so the builder can receive another
// document.
func (b *Builder) Reset() {
	b.items = b.items[:0]
	b.frames = b.frames[:0]
	b.frames = append(b.frames, frame{kind: rootStructure})
	b.pending = ""
	b.result = Value{}
	b.valid = false
}

// IsValid reports whether a complete value has been assembled.
func (b *Builder) IsValid() bool { return b.valid }

// Result transfers ownership of the assembled value to the caller. It may
// be called once per complete value; afterwards the builder reports
// invalid until the next document completes.
func (b *Builder) Result() Value {
	b.valid = false
	out := b.result
	b.result = Value{}
	return out
}

func (b *Builder) top() *frame { return &b.frames[len(b.frames)-1] }

func (b *Builder) beginRootValue() {
	if b.top().kind == rootStructure {
		b.items = b.items[:0]
		b.valid = false
	}
}

func (b *Builder) push(v Value) {
	if b.top().kind == rootStructure {
		b.result = v
		b.valid = true
		return
	}
	b.items = append(b.items, item{key: b.pending, value: v})
	b.pending = ""
}

// BeginObject implements event.Visitor.
func (b *Builder) BeginObject(tag event.Tag, ctx event.Context) error {
	b.beginRootValue()
	b.items = append(b.items, item{key: b.pending, value: Object(nil, tag)})
	b.pending = ""
	b.frames = append(b.frames, frame{kind: objectStructure, containerIndex: len(b.items) - 1})
	return nil
}

// BeginObjectWithLength implements event.Visitor.
func (b *Builder) BeginObjectWithLength(length int, tag event.Tag, ctx event.Context) error {
	return b.BeginObject(tag, ctx)
}

// EndObject implements event.Visitor.
func (b *Builder) EndObject(ctx event.Context) error {
	idx := b.top().containerIndex
	tail := b.items[idx+1:]
	members := make([]Member, len(tail))
	for i := range tail {
		members[i] = Member{Key: tail[i].key, Value: tail[i].value}
	}
	b.items[idx].value.members = members
	b.items = b.items[:idx+1]
	b.frames = b.frames[:len(b.frames)-1]
	return b.finishContainer()
}

// BeginArray implements event.Visitor.
func (b *Builder) BeginArray(tag event.Tag, ctx event.Context) error {
	b.beginRootValue()
	b.items = append(b.items, item{key: b.pending, value: Array(nil, tag)})
	b.pending = ""
	b.frames = append(b.frames, frame{kind: arrayStructure, containerIndex: len(b.items) - 1})
	return nil
}

// BeginArrayWithLength implements event.Visitor.
func (b *Builder) BeginArrayWithLength(length int, tag event.Tag, ctx event.Context) error {
	return b.BeginArray(tag, ctx)
}

// EndArray implements event.Visitor.
func (b *Builder) EndArray(ctx event.Context) error {
	idx := b.top().containerIndex
	tail := b.items[idx+1:]
	elems := make([]Value, len(tail))
	for i := range tail {
		elems[i] = tail[i].value
	}
	b.items[idx].value.elems = elems
	b.items = b.items[:idx+1]
	b.frames = b.frames[:len(b.frames)-1]
	return b.finishContainer()
}

// finishContainer pops a completed container into the result when its
// parent is the root frame.
func (b *Builder) finishContainer() error {
	if b.top().kind == rootStructure {
		b.result = b.items[len(b.items)-1].value
		b.items = b.items[:len(b.items)-1]
		b.valid = true
	}
	return nil
}

// Key implements event.Visitor.
func (b *Builder) Key(name []byte, ctx event.Context) error {
	b.pending = string(name)
	return nil
}

// String implements event.Visitor.
func (b *Builder) String(value []byte, tag event.Tag, ctx event.Context) error {
	b.push(String(string(value), tag))
	return nil
}

// ByteString implements event.Visitor.
func (b *Builder) ByteString(value []byte, tag event.Tag, ctx event.Context) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	b.push(ByteString(cp, tag))
	return nil
}

// ByteStringExt implements event.Visitor.
func (b *Builder) ByteStringExt(value []byte, extTag uint64, ctx event.Context) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	b.push(ByteStringExt(cp, extTag))
	return nil
}

// Int64 implements event.Visitor.
func (b *Builder) Int64(value int64, tag event.Tag, ctx event.Context) error {
	b.push(Int64(value, tag))
	return nil
}

// Uint64 implements event.Visitor.
func (b *Builder) Uint64(value uint64, tag event.Tag, ctx event.Context) error {
	b.push(Uint64(value, tag))
	return nil
}

// Double implements event.Visitor.
func (b *Builder) Double(value float64, tag event.Tag, ctx event.Context) error {
	b.push(Double(value, tag))
	return nil
}

// Half implements event.Visitor. The tree value sum has no half kind, so
// the bit pattern is widened to a double.
func (b *Builder) Half(value uint16, tag event.Tag, ctx event.Context) error {
	f := float16.Frombits(value)
	b.push(Double(float64(f.Float32()), tag))
	return nil
}

// Bool implements event.Visitor.
func (b *Builder) Bool(value bool, tag event.Tag, ctx event.Context) error {
	b.push(Bool(value, tag))
	return nil
}

// Null implements event.Visitor.
func (b *Builder) Null(tag event.Tag, ctx event.Context) error {
	b.push(Null(tag))
	return nil
}

// Flush implements event.Visitor.
func (b *Builder) Flush() error { return nil }

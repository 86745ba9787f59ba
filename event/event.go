// Package event defines the contract between codec producers and consumers.
//
// A producer (such as the incremental JSON parser) walks a document and
// reports its structure by calling methods on a Visitor. A consumer may
// materialise a tree, re-serialise to another wire format, or hand events
// to user code one at a time. Producers and consumers vary independently;
// this package is their only shared boundary.
//
// String, key and byte-string payloads passed to a Visitor are views into
// a producer-owned buffer. They are valid only for the duration of the
// call; a sink that wants to retain one must copy it out.
package event

// Visitor is the polymorphic event sink.
//
// Each method returns nil to continue the stream. Returning ErrStop cancels
// the stream cooperatively: the producer stops emitting further events and
// reports itself stopped, without surfacing an error to the caller. Any
// other error terminates the stream and is surfaced by the producer.
type Visitor interface {
	// BeginObject reports the start of an object of unknown length.
	BeginObject(tag Tag, ctx Context) error

	// BeginObjectWithLength reports the start of an object whose member
	// count is known in advance.
	BeginObjectWithLength(length int, tag Tag, ctx Context) error

	// EndObject closes the innermost open object.
	EndObject(ctx Context) error

	// BeginArray reports the start of an array of unknown length.
	BeginArray(tag Tag, ctx Context) error

	// BeginArrayWithLength reports the start of an array whose element
	// count is known in advance.
	BeginArrayWithLength(length int, tag Tag, ctx Context) error

	// EndArray closes the innermost open array.
	EndArray(ctx Context) error

	// Key reports an object member name. It is always followed by exactly
	// one value event at the same level.
	Key(name []byte, ctx Context) error

	// String reports a text value.
	String(value []byte, tag Tag, ctx Context) error

	// ByteString reports a binary value with a semantic tag.
	ByteString(value []byte, tag Tag, ctx Context) error

	// ByteStringExt reports a binary value carrying a raw integer tag
	// instead of a semantic one.
	ByteStringExt(value []byte, extTag uint64, ctx Context) error

	Int64(value int64, tag Tag, ctx Context) error
	Uint64(value uint64, tag Tag, ctx Context) error
	Double(value float64, tag Tag, ctx Context) error

	// Half reports an IEEE 754 binary16 value by its bit pattern.
	Half(value uint16, tag Tag, ctx Context) error

	Bool(value bool, tag Tag, ctx Context) error
	Null(tag Tag, ctx Context) error

	// Flush releases any output the sink has buffered.
	Flush() error
}

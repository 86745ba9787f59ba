package tree

import (
	"github.com/forksnd/staj/event"
)

// Accept replays v as an event stream into sink. Container lengths are
// known, so the known-length begin events are used; a CBOR sink produces
// definite-length containers.
func (v *Value) Accept(sink event.Visitor) error {
	ctx := event.NoContext
	switch v.kind {
	case NullKind:
		return sink.Null(v.tag, ctx)
	case BoolKind:
		return sink.Bool(v.AsBool(), v.tag, ctx)
	case Int64Kind:
		return sink.Int64(v.AsInt64(), v.tag, ctx)
	case Uint64Kind:
		return sink.Uint64(v.AsUint64(), v.tag, ctx)
	case DoubleKind:
		return sink.Double(v.AsDouble(), v.tag, ctx)
	case StringKind:
		return sink.String([]byte(v.str), v.tag, ctx)
	case ByteStringKind:
		if v.hasExt {
			return sink.ByteStringExt(v.raw, v.extTag, ctx)
		}
		return sink.ByteString(v.raw, v.tag, ctx)
	case ArrayKind:
		if err := sink.BeginArrayWithLength(len(v.elems), v.tag, ctx); err != nil {
			return err
		}
		for i := range v.elems {
			if err := v.elems[i].Accept(sink); err != nil {
				return err
			}
		}
		return sink.EndArray(ctx)
	case ObjectKind:
		if err := sink.BeginObjectWithLength(len(v.members), v.tag, ctx); err != nil {
			return err
		}
		for i := range v.members {
			if err := sink.Key([]byte(v.members[i].Key), ctx); err != nil {
				return err
			}
			if err := v.members[i].Value.Accept(sink); err != nil {
				return err
			}
		}
		return sink.EndObject(ctx)
	}
	return nil
}

package json

import (
	"errors"
	"io"

	"github.com/forksnd/staj/event"
	"github.com/forksnd/staj/tree"
)

// ErrIncomplete is returned by Decode when the input ends before a
// complete value was assembled.
var ErrIncomplete = errors.New("json: incomplete document")

// Decode parses a complete JSON document into a tree value.
func Decode(data []byte, opts Options) (tree.Value, error) {
	p := NewChunkParser(opts, nil)
	b := tree.NewBuilder()
	p.Update(data)
	if err := p.FinishParse(b); err != nil {
		return tree.Value{}, err
	}
	if err := p.CheckDone(); err != nil {
		return tree.Value{}, err
	}
	if !b.IsValid() {
		return tree.Value{}, ErrIncomplete
	}
	return b.Result(), nil
}

// Encode writes v to w as compact JSON. opts supplies the NaN/infinity
// replacement strings.
func Encode(v *tree.Value, w io.Writer, opts Options) error {
	enc := NewEncoder(w, opts)
	if err := v.Accept(enc); err != nil {
		return err
	}
	return enc.Flush()
}

// Parse feeds a complete document to an arbitrary sink, flushing it at
// the end.
func Parse(data []byte, sink event.Visitor, opts Options) error {
	p := NewChunkParser(opts, nil)
	p.Update(data)
	if err := p.FinishParse(sink); err != nil {
		return err
	}
	return p.CheckDone()
}

// Package structure specializes PackStream's generic tagged-record form for
// Bolt request/response messages, the same way packstream itself
// specializes it for the four graph types (Node, Relationship,
// UnboundRelationship, Path): a signature registry dispatches to typed
// Message values, falling back to a Generic catch-all for anything it
// doesn't recognize.
package structure

import (
	"github.com/kestrelgraph/boltcore/codec"
	"github.com/kestrelgraph/boltcore/packstream"
	"github.com/kestrelgraph/boltcore/value"
)

// Encode serializes v to PackStream bytes. It is a thin re-export of
// packstream.Encode so callers working at the message/structure layer don't
// need to import packstream directly.
func Encode(v value.Value) ([]byte, error) {
	return packstream.Encode(v)
}

// Decode is a thin re-export of packstream.Decode: it already dispatches
// the four known graph signatures into typed Values and returns every other
// structure as a generic value.Structure. Decode never errors on an
// unrecognized signature — callers that want strict validation instead
// should use DecodeStrict.
func Decode(buf []byte) (value.Value, []byte, error) {
	return packstream.Decode(buf)
}

// DecodeStrict behaves like Decode, but returns InvalidSignature instead of
// a generic value.Structure when the top-level decoded value is a Structure
// whose signature isn't in the known catalogue (graph types plus the Bolt
// message signatures registered in this package).
func DecodeStrict(buf []byte) (value.Value, []byte, error) {
	v, rest, err := Decode(buf)
	if err != nil {
		return nil, nil, err
	}
	if s, ok := v.(value.Structure); ok {
		if _, known := messageArity[s.Signature]; !known {
			return nil, nil, codec.InvalidSignatureError(s.Signature)
		}
	}
	return v, rest, nil
}

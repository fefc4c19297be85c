package value

import "math"

// Equal reports whether two Values are structurally equal: same variant and
// equal payloads. Float equality follows IEEE-754 (NaN != NaN, including
// NaN != itself). Map equality is set-equality of entries regardless of
// wire order.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && float64(av) == float64(bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Map:
		bv, ok := b.(Map)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, exists := bv[k]
			if !exists || !Equal(v, other) {
				return false
			}
		}
		return true
	case Node:
		bv, ok := b.(Node)
		return ok && av.ID == bv.ID && Equal(av.Labels, bv.Labels) && Equal(av.Properties, bv.Properties)
	case Relationship:
		bv, ok := b.(Relationship)
		return ok && av.ID == bv.ID && av.StartID == bv.StartID && av.EndID == bv.EndID &&
			av.Type == bv.Type && Equal(av.Properties, bv.Properties)
	case UnboundRelationship:
		bv, ok := b.(UnboundRelationship)
		return ok && av.ID == bv.ID && av.Type == bv.Type && Equal(av.Properties, bv.Properties)
	case Path:
		bv, ok := b.(Path)
		return ok && Equal(av.Nodes, bv.Nodes) && Equal(av.Rels, bv.Rels) && Equal(av.Sequence, bv.Sequence)
	case DateTimeZoned:
		bv, ok := b.(DateTimeZoned)
		return ok && av == bv
	case Structure:
		bv, ok := b.(Structure)
		if !ok || av.Signature != bv.Signature || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if !Equal(av.Fields[i], bv.Fields[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hashable reports whether a Value may be used as a hash key. Float and Map
// (and anything containing them) are excluded, since neither has a stable
// equality notion suitable for hashing (floats by IEEE-754 comparison rules,
// maps by being mutable reference types).
func Hashable(v Value) bool {
	switch x := v.(type) {
	case Float, Map:
		return false
	case List:
		for _, elem := range x {
			if !Hashable(elem) {
				return false
			}
		}
		return true
	case Node, Relationship, UnboundRelationship, Path:
		return false // each carries a Map, never hashable
	case Structure:
		for _, field := range x.Fields {
			if !Hashable(field) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// HashBits returns a bit-pattern hash for Float, for callers that need to
// use a Float as a hash key despite the Hashable convention (e.g. building
// a lookup structure keyed by raw wire bits rather than numeric identity).
func HashBits(f Float) uint64 {
	return math.Float64bits(float64(f))
}

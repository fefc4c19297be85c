package structure

import "github.com/kestrelgraph/boltcore/value"

// Graph-type structure signatures, re-exported from packstream so callers
// of this package don't need to import packstream just to recognize them.
const (
	NodeSignature                = 0x4E
	RelationshipSignature        = 0x52
	UnboundRelationshipSignature = 0x72
	PathSignature                = 0x50
)

// AsStructure converts a graph Value (Node, Relationship,
// UnboundRelationship, Path) to its generic value.Structure form, the shape
// actually written to the wire. packstream.Encode already does this
// conversion internally for its own encode path; this helper exists for
// callers that want to inspect or re-signature a graph value without
// going through the full encoder.
func AsStructure(v value.Value) (value.Structure, bool) {
	switch x := v.(type) {
	case value.Node:
		return value.Structure{Signature: NodeSignature, Fields: []value.Value{x.ID, x.Labels, x.Properties}}, true
	case value.Relationship:
		return value.Structure{
			Signature: RelationshipSignature,
			Fields:    []value.Value{x.ID, x.StartID, x.EndID, x.Type, x.Properties},
		}, true
	case value.UnboundRelationship:
		return value.Structure{Signature: UnboundRelationshipSignature, Fields: []value.Value{x.ID, x.Type, x.Properties}}, true
	case value.Path:
		return value.Structure{Signature: PathSignature, Fields: []value.Value{x.Nodes, x.Rels, x.Sequence}}, true
	default:
		return value.Structure{}, false
	}
}

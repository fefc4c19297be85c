package packstream

import (
	"unicode/utf8"

	"github.com/kestrelgraph/boltcore/codec"
	"github.com/kestrelgraph/boltcore/value"
)

// Decode consumes one Value from buf and returns it along with the unread
// remainder: decode(bytes) -> Value, remaining_bytes.
//
// Decoding is total over well-formed input: every byte not in the marker
// table yields InvalidMarker, and running out of bytes mid-value yields
// Truncated. Malformed input can never panic — see Cursor's explicit length
// checks.
func Decode(buf []byte) (value.Value, []byte, error) {
	c := NewCursor(buf)
	v, err := decodeValue(c)
	if err != nil {
		return nil, nil, err
	}
	return v, c.Rest(), nil
}

func decodeValue(c *Cursor) (value.Value, error) {
	marker, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	return decodeValueFromMarker(c, marker)
}

func decodeValueFromMarker(c *Cursor, marker byte) (value.Value, error) {
	switch {
	case marker <= TinyIntPositiveMax:
		return value.Integer(int64(marker)), nil
	case marker >= TinyIntNegativeMin:
		return value.Integer(int64(int8(marker))), nil
	}

	high := marker & HighNibbleMask
	low := marker & LowNibbleMask

	switch high {
	case TinyStringBase:
		return decodeString(c, int(low))
	case TinyListBase:
		return decodeList(c, uint64(low))
	case TinyMapBase:
		return decodeMap(c, uint64(low))
	case TinyStructBase:
		return decodeStructure(c, uint64(low))
	}

	switch marker {
	case Null:
		return value.NullValue, nil
	case False:
		return value.Boolean(false), nil
	case True:
		return value.Boolean(true), nil
	case Int8:
		n, err := c.ReadInt8()
		if err != nil {
			return nil, err
		}
		return value.Integer(n), nil
	case Int16:
		n, err := c.ReadInt16()
		if err != nil {
			return nil, err
		}
		return value.Integer(n), nil
	case Int32:
		n, err := c.ReadInt32()
		if err != nil {
			return nil, err
		}
		return value.Integer(n), nil
	case Int64:
		n, err := c.ReadInt64()
		if err != nil {
			return nil, err
		}
		return value.Integer(n), nil
	case Float64:
		f, err := c.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return value.Float(f), nil
	case String8:
		n, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return decodeString(c, int(n))
	case String16:
		n, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		return decodeString(c, int(n))
	case String32:
		n, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		return decodeString(c, int(n))
	case List8:
		n, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return decodeList(c, n)
	case List16:
		n, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		return decodeList(c, n)
	case List32:
		n, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		return decodeList(c, n)
	case Map8:
		n, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return decodeMap(c, n)
	case Map16:
		n, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		return decodeMap(c, n)
	case Map32:
		n, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		return decodeMap(c, n)
	case Struct8:
		n, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return decodeStructure(c, n)
	case Struct16:
		n, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		return decodeStructure(c, n)
	default:
		return nil, codec.InvalidMarkerError(marker)
	}
}

func decodeString(c *Cursor, size int) (value.Value, error) {
	data, err := c.ReadN(size)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, codec.New(codec.Utf8, "string payload is not valid UTF-8")
	}
	return value.String(string(data)), nil
}

func decodeList(c *Cursor, size uint64) (value.Value, error) {
	if err := c.EnterRecursion(); err != nil {
		return nil, err
	}
	defer c.ExitRecursion()

	out := make(value.List, size)
	for i := range out {
		elem, err := decodeValue(c)
		if err != nil {
			return nil, err
		}
		out[i] = elem
	}
	return out, nil
}

func decodeMap(c *Cursor, size uint64) (value.Value, error) {
	if err := c.EnterRecursion(); err != nil {
		return nil, err
	}
	defer c.ExitRecursion()

	out := make(value.Map, size)
	for i := uint64(0); i < size; i++ {
		keyVal, err := decodeValue(c)
		if err != nil {
			return nil, err
		}
		key, ok := keyVal.(value.String)
		if !ok {
			return nil, codec.New(codec.ConversionError, "map key must be a String")
		}
		v, err := decodeValue(c)
		if err != nil {
			return nil, err
		}
		out[string(key)] = v
	}
	return out, nil
}

// decodeStructure reads a structure's signature and fieldCount fields, then
// dispatches known graph-type signatures into their typed Value, and
// returns every other signature as a generic value.Structure for the
// structure package (Bolt messages) to interpret.
func decodeStructure(c *Cursor, fieldCount uint64) (value.Value, error) {
	if err := c.EnterRecursion(); err != nil {
		return nil, err
	}
	defer c.ExitRecursion()

	signature, err := c.ReadByte()
	if err != nil {
		return nil, err
	}

	fields := make([]value.Value, fieldCount)
	for i := range fields {
		fields[i], err = decodeValue(c)
		if err != nil {
			return nil, err
		}
	}

	// Only the four graph-type signatures are dispatched generically here.
	// DateTimeZoned shares its wire signature (0x66) with the Bolt ROUTE
	// message, so it cannot be told apart from a byte string alone — a
	// caller that knows from context (e.g. a RECORD field typed as a
	// temporal value) must convert explicitly via AsDateTimeZoned instead.
	switch signature {
	case NodeSignature:
		return structureToNode(fields)
	case RelationshipSignature:
		return structureToRelationship(fields)
	case UnboundRelationshipSignature:
		return structureToUnboundRelationship(fields)
	case PathSignature:
		return structureToPath(fields)
	default:
		return value.Structure{Signature: signature, Fields: fields}, nil
	}
}

// AsDateTimeZoned narrows a generic Structure with the DateTimeZoned
// signature into its typed form. Callers must know from context (a RECORD
// field the query is documented to return as a temporal value, for
// instance) that the structure at hand is a DateTimeZoned and not a
// same-signature ROUTE message body — packstream itself cannot tell the
// two apart.
func AsDateTimeZoned(s value.Structure) (value.DateTimeZoned, bool) {
	if s.Signature != DateTimeZonedSignature || len(s.Fields) != 3 {
		return value.DateTimeZoned{}, false
	}
	v, err := structureToDateTimeZoned(s.Fields)
	if err != nil {
		return value.DateTimeZoned{}, false
	}
	return v.(value.DateTimeZoned), true
}

func arityError(sig byte, want, got int) error {
	return codec.Newf(codec.ConversionError, "structure 0x%02X expects %d fields, got %d", sig, want, got)
}

func structureToNode(f []value.Value) (value.Value, error) {
	if len(f) != 3 {
		return nil, arityError(NodeSignature, 3, len(f))
	}
	id, ok1 := f[0].(value.Integer)
	labels, ok2 := f[1].(value.List)
	props, ok3 := f[2].(value.Map)
	if !ok1 || !ok2 || !ok3 {
		return nil, codec.New(codec.ConversionError, "Node fields have the wrong type")
	}
	return value.Node{ID: id, Labels: labels, Properties: props}, nil
}

func structureToRelationship(f []value.Value) (value.Value, error) {
	if len(f) != 5 {
		return nil, arityError(RelationshipSignature, 5, len(f))
	}
	id, ok1 := f[0].(value.Integer)
	start, ok2 := f[1].(value.Integer)
	end, ok3 := f[2].(value.Integer)
	typ, ok4 := f[3].(value.String)
	props, ok5 := f[4].(value.Map)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return nil, codec.New(codec.ConversionError, "Relationship fields have the wrong type")
	}
	return value.Relationship{ID: id, StartID: start, EndID: end, Type: typ, Properties: props}, nil
}

func structureToUnboundRelationship(f []value.Value) (value.Value, error) {
	if len(f) != 3 {
		return nil, arityError(UnboundRelationshipSignature, 3, len(f))
	}
	id, ok1 := f[0].(value.Integer)
	typ, ok2 := f[1].(value.String)
	props, ok3 := f[2].(value.Map)
	if !ok1 || !ok2 || !ok3 {
		return nil, codec.New(codec.ConversionError, "UnboundRelationship fields have the wrong type")
	}
	return value.UnboundRelationship{ID: id, Type: typ, Properties: props}, nil
}

func structureToPath(f []value.Value) (value.Value, error) {
	if len(f) != 3 {
		return nil, arityError(PathSignature, 3, len(f))
	}
	nodes, ok1 := f[0].(value.List)
	rels, ok2 := f[1].(value.List)
	seq, ok3 := f[2].(value.List)
	if !ok1 || !ok2 || !ok3 {
		return nil, codec.New(codec.ConversionError, "Path fields have the wrong type")
	}
	return value.Path{Nodes: nodes, Rels: rels, Sequence: seq}, nil
}

func structureToDateTimeZoned(f []value.Value) (value.Value, error) {
	if len(f) != 3 {
		return nil, arityError(DateTimeZonedSignature, 3, len(f))
	}
	secs, ok1 := f[0].(value.Integer)
	nanos, ok2 := f[1].(value.Integer)
	zone, ok3 := f[2].(value.String)
	if !ok1 || !ok2 || !ok3 {
		return nil, codec.New(codec.ConversionError, "DateTimeZoned fields have the wrong type")
	}
	return value.DateTimeZoned{EpochSeconds: secs, Nanos: nanos, ZoneID: zone}, nil
}

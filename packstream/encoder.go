package packstream

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/kestrelgraph/boltcore/codec"
	"github.com/kestrelgraph/boltcore/value"
)

// Encode serializes a Value to its canonical PackStream byte sequence. It
// fails with ValueTooLarge when a List, Map, or String length exceeds
// 2^32-1, or when a Structure has more than 65535 fields.
//
// Integer encoding always picks the smallest marker width whose signed
// range contains the value (tiny -> 8 -> 16 -> 32 -> 64), so two encoders
// never disagree on the bytes for the same integer. Map entries are written
// in ascending key order, so the same Map always encodes to the same bytes.
func Encode(v value.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeInto(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeInto(buf *bytes.Buffer, v value.Value) error {
	switch x := v.(type) {
	case nil:
		buf.WriteByte(Null)
		return nil
	case value.Null:
		buf.WriteByte(Null)
		return nil
	case value.Boolean:
		if x {
			buf.WriteByte(True)
		} else {
			buf.WriteByte(False)
		}
		return nil
	case value.Integer:
		return encodeInteger(buf, int64(x))
	case value.Float:
		buf.WriteByte(Float64)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], math.Float64bits(float64(x)))
		buf.Write(tmp[:])
		return nil
	case value.String:
		return encodeString(buf, string(x))
	case value.List:
		return encodeList(buf, x)
	case value.Map:
		return encodeMap(buf, x)
	case value.Node:
		return encodeNode(buf, x)
	case value.Relationship:
		return encodeRelationship(buf, x)
	case value.UnboundRelationship:
		return encodeUnboundRelationship(buf, x)
	case value.Path:
		return encodePath(buf, x)
	case value.DateTimeZoned:
		return encodeDateTimeZoned(buf, x)
	case value.Structure:
		return encodeStructure(buf, x)
	default:
		return codec.Newf(codec.ConversionError, "packstream: cannot encode %T", v)
	}
}

func encodeInteger(buf *bytes.Buffer, n int64) error {
	switch {
	case n >= TinyIntMin && n <= TinyIntMax:
		buf.WriteByte(byte(n))
	case n >= Int8Min && n <= Int8Max:
		buf.WriteByte(Int8)
		buf.WriteByte(byte(n))
	case n >= Int16Min && n <= Int16Max:
		buf.WriteByte(Int16)
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(n))
		buf.Write(tmp[:])
	case n >= Int32Min && n <= Int32Max:
		buf.WriteByte(Int32)
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(n))
		buf.Write(tmp[:])
	default:
		buf.WriteByte(Int64)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], uint64(n))
		buf.Write(tmp[:])
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	data := []byte(s)
	n := uint64(len(data))
	if err := writeContainerHeader(buf, TinyStringBase, String8, String16, String32, n); err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func encodeList(buf *bytes.Buffer, list value.List) error {
	n := uint64(len(list))
	if err := writeContainerHeader(buf, TinyListBase, List8, List16, List32, n); err != nil {
		return err
	}
	for _, elem := range list {
		if err := encodeInto(buf, elem); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(buf *bytes.Buffer, m value.Map) error {
	n := uint64(len(m))
	if err := writeContainerHeader(buf, TinyMapBase, Map8, Map16, Map32, n); err != nil {
		return err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := encodeString(buf, k); err != nil {
			return err
		}
		if err := encodeInto(buf, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// writeContainerHeader writes the marker (and size field, if any) for a
// String/List/Map family given its tiny base marker and the 8/16/32-bit
// size markers, selecting the smallest encoding that fits n.
func writeContainerHeader(buf *bytes.Buffer, tinyBase, m8, m16, m32 byte, n uint64) error {
	switch {
	case n < 16:
		buf.WriteByte(tinyBase | byte(n))
	case n < 1<<8:
		buf.WriteByte(m8)
		buf.WriteByte(byte(n))
	case n < 1<<16:
		buf.WriteByte(m16)
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(n))
		buf.Write(tmp[:])
	case n <= MaxLength:
		buf.WriteByte(m32)
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(n))
		buf.Write(tmp[:])
	default:
		return codec.ValueTooLargeError(n)
	}
	return nil
}

// writeStructureHeader writes the marker (and size field, if any) for a
// structure with the given field count, followed by the signature byte.
func writeStructureHeader(buf *bytes.Buffer, fieldCount int, signature byte) error {
	n := uint64(fieldCount)
	switch {
	case n < 16:
		buf.WriteByte(TinyStructBase | byte(n))
	case n < 1<<8:
		buf.WriteByte(Struct8)
		buf.WriteByte(byte(n))
	case n < 1<<16:
		buf.WriteByte(Struct16)
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(n))
		buf.Write(tmp[:])
	default:
		return &codec.Error{Kind: codec.ValueTooLarge, Len: n, Msg: fmt.Sprintf("structure field count %d exceeds 65535", n)}
	}
	buf.WriteByte(signature)
	return nil
}

func encodeNode(buf *bytes.Buffer, n value.Node) error {
	if err := writeStructureHeader(buf, 3, NodeSignature); err != nil {
		return err
	}
	if err := encodeInto(buf, n.ID); err != nil {
		return err
	}
	if err := encodeInto(buf, n.Labels); err != nil {
		return err
	}
	return encodeInto(buf, n.Properties)
}

func encodeRelationship(buf *bytes.Buffer, r value.Relationship) error {
	if err := writeStructureHeader(buf, 5, RelationshipSignature); err != nil {
		return err
	}
	for _, field := range []value.Value{r.ID, r.StartID, r.EndID, r.Type, r.Properties} {
		if err := encodeInto(buf, field); err != nil {
			return err
		}
	}
	return nil
}

func encodeUnboundRelationship(buf *bytes.Buffer, r value.UnboundRelationship) error {
	if err := writeStructureHeader(buf, 3, UnboundRelationshipSignature); err != nil {
		return err
	}
	for _, field := range []value.Value{r.ID, r.Type, r.Properties} {
		if err := encodeInto(buf, field); err != nil {
			return err
		}
	}
	return nil
}

func encodePath(buf *bytes.Buffer, p value.Path) error {
	if err := writeStructureHeader(buf, 3, PathSignature); err != nil {
		return err
	}
	for _, field := range []value.Value{p.Nodes, p.Rels, p.Sequence} {
		if err := encodeInto(buf, field); err != nil {
			return err
		}
	}
	return nil
}

func encodeDateTimeZoned(buf *bytes.Buffer, d value.DateTimeZoned) error {
	if err := writeStructureHeader(buf, 3, DateTimeZonedSignature); err != nil {
		return err
	}
	for _, field := range []value.Value{d.EpochSeconds, d.Nanos, d.ZoneID} {
		if err := encodeInto(buf, field); err != nil {
			return err
		}
	}
	return nil
}

func encodeStructure(buf *bytes.Buffer, s value.Structure) error {
	if err := writeStructureHeader(buf, len(s.Fields), s.Signature); err != nil {
		return err
	}
	for _, field := range s.Fields {
		if err := encodeInto(buf, field); err != nil {
			return err
		}
	}
	return nil
}

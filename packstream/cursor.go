package packstream

import (
	"encoding/binary"
	"math"

	"github.com/kestrelgraph/boltcore/codec"
)

// Cursor is an exclusively-owned, panic-free reader over an in-memory byte
// slice: every read checks available length first and returns a Truncated
// error instead of letting a slice index panic. A Cursor must not be shared
// between concurrent decode calls; the recursive decoder in decoder.go
// threads one *Cursor by reference through every nested call rather than
// guarding shared state with a lock.
type Cursor struct {
	buf   []byte
	pos   int
	depth int
}

// NewCursor wraps buf for reading from the start.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Rest returns the unread tail of the buffer without advancing the cursor.
func (c *Cursor) Rest() []byte {
	return c.buf[c.pos:]
}

// ReadByte consumes and returns one byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, codec.TruncatedError(1, c.Remaining())
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// PeekByte returns the next byte without advancing the cursor.
func (c *Cursor) PeekByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, codec.TruncatedError(1, c.Remaining())
	}
	return c.buf[c.pos], nil
}

// ReadN consumes and returns the next n bytes.
func (c *Cursor) ReadN(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if c.Remaining() < n {
		return nil, codec.TruncatedError(n, c.Remaining())
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// ReadUint8 reads an unsigned 8-bit size field.
func (c *Cursor) ReadUint8() (uint64, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	return uint64(b), nil
}

// ReadUint16 reads a big-endian unsigned 16-bit size field.
func (c *Cursor) ReadUint16() (uint64, error) {
	b, err := c.ReadN(2)
	if err != nil {
		return 0, err
	}
	return uint64(binary.BigEndian.Uint16(b)), nil
}

// ReadUint32 reads a big-endian unsigned 32-bit size field.
func (c *Cursor) ReadUint32() (uint64, error) {
	b, err := c.ReadN(4)
	if err != nil {
		return 0, err
	}
	return uint64(binary.BigEndian.Uint32(b)), nil
}

// ReadInt8 reads a signed 8-bit integer payload.
func (c *Cursor) ReadInt8() (int64, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	return int64(int8(b)), nil
}

// ReadInt16 reads a big-endian signed 16-bit integer payload.
func (c *Cursor) ReadInt16() (int64, error) {
	b, err := c.ReadN(2)
	if err != nil {
		return 0, err
	}
	return int64(int16(binary.BigEndian.Uint16(b))), nil
}

// ReadInt32 reads a big-endian signed 32-bit integer payload.
func (c *Cursor) ReadInt32() (int64, error) {
	b, err := c.ReadN(4)
	if err != nil {
		return 0, err
	}
	return int64(int32(binary.BigEndian.Uint32(b))), nil
}

// ReadInt64 reads a big-endian signed 64-bit integer payload.
func (c *Cursor) ReadInt64() (int64, error) {
	b, err := c.ReadN(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadFloat64 reads a big-endian IEEE-754 64-bit float payload.
func (c *Cursor) ReadFloat64() (float64, error) {
	b, err := c.ReadN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// EnterRecursion increments the recursion depth counter and fails with a
// Truncated-adjacent error if the configured limit is exceeded, guarding
// against adversarial deeply-nested input.
func (c *Cursor) EnterRecursion() error {
	c.depth++
	if c.depth > MaxRecursionDepth {
		return codec.Newf(codec.Truncated, "decode recursion exceeded limit of %d levels", MaxRecursionDepth)
	}
	return nil
}

// ExitRecursion decrements the recursion depth counter. Call via defer
// immediately after a successful EnterRecursion.
func (c *Cursor) ExitRecursion() {
	c.depth--
}

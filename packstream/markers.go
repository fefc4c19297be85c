// Package packstream implements the PackStream binary serialization format:
// marker-dispatched encoding/decoding between value.Value and bytes. String,
// List, and Map have tiny/8/16/32-bit size variants and Structure has
// tiny/8/16-bit ones, selected by whichever is the narrowest that fits the
// payload length.
package packstream

const (
	Null    = 0xC0
	False   = 0xC2
	True    = 0xC3
	Float64 = 0xC1

	Int8  = 0xC8
	Int16 = 0xC9
	Int32 = 0xCA
	Int64 = 0xCB

	TinyIntPositiveMax = 0x7F
	TinyIntNegativeMin = 0xF0

	TinyStringBase = 0x80
	TinyStringMax  = 0x8F
	String8        = 0xD0
	String16       = 0xD1
	String32       = 0xD2

	TinyListBase = 0x90
	TinyListMax  = 0x9F
	List8        = 0xD4
	List16       = 0xD5
	List32       = 0xD6

	TinyMapBase = 0xA0
	TinyMapMax  = 0xAF
	Map8        = 0xD8
	Map16       = 0xD9
	Map32       = 0xDA

	TinyStructBase = 0xB0
	TinyStructMax  = 0xBF
	Struct8        = 0xDC
	Struct16       = 0xDD

	HighNibbleMask = 0xF0
	LowNibbleMask  = 0x0F

	// TinyIntMin/TinyIntMax bound the range encoded directly in a single
	// marker byte (both the 0x00..0x7F positive and 0xF0..0xFF negative
	// tiny-int ranges, read as a signed 8-bit value).
	TinyIntMin = -16
	TinyIntMax = 127

	Int8Min  = -128
	Int8Max  = 127
	Int16Min = -32768
	Int16Max = 32767
	Int32Min = -2147483648
	Int32Max = 2147483647

	// MaxRecursionDepth bounds decode recursion against maliciously or
	// accidentally deep nested input.
	MaxRecursionDepth = 256

	// MaxLength is the largest length an encoder may emit for a String,
	// List, or Map: 2^32-1, the ceiling a 32-bit size field can hold.
	MaxLength = 1<<32 - 1
)

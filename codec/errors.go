// Package codec defines the error taxonomy shared by the packstream,
// structure, and transport layers: a single Kind-tagged Error type so
// callers can branch on failure category with errors.Is/errors.As instead
// of string-matching messages.
package codec

import "fmt"

// Kind classifies a codec/transport error.
type Kind int

const (
	// InvalidMarker means the decoder met a marker byte with no matching family.
	InvalidMarker Kind = iota
	// InvalidSignature means a structure marker was followed by an
	// unrecognized signature byte while strict mode was requested.
	InvalidSignature
	// Truncated means the cursor ran out of bytes mid-value.
	Truncated
	// Utf8 means a String payload was not valid UTF-8.
	Utf8
	// ValueTooLarge means the encoder was asked to emit a List, Map, or
	// String longer than 2^32-1 elements/bytes.
	ValueTooLarge
	// Io means a transport-level read/write failure.
	Io
	// TlsHandshake means the TLS handshake failed.
	TlsHandshake
	// InvalidServerName means a server name could not be used for TLS
	// verification (transport.Connect reports it for a name containing
	// whitespace).
	InvalidServerName
	// ConversionError means a caller tried to convert a Value into a
	// native type the variant cannot represent.
	ConversionError
)

func (k Kind) String() string {
	switch k {
	case InvalidMarker:
		return "InvalidMarker"
	case InvalidSignature:
		return "InvalidSignature"
	case Truncated:
		return "Truncated"
	case Utf8:
		return "Utf8"
	case ValueTooLarge:
		return "ValueTooLarge"
	case Io:
		return "Io"
	case TlsHandshake:
		return "TlsHandshake"
	case InvalidServerName:
		return "InvalidServerName"
	case ConversionError:
		return "ConversionError"
	default:
		return "Unknown"
	}
}

// Error is the single error type produced by this module's codec,
// structure, and transport layers.
type Error struct {
	Kind Kind
	// Byte is the offending marker/signature byte, when Kind is
	// InvalidMarker or InvalidSignature.
	Byte byte
	// Len is the requested length, when Kind is ValueTooLarge.
	Len uint64
	// Msg is a human-readable description.
	Msg string
	// Err is the wrapped underlying error, if any (e.g. a net.Error).
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is supports errors.Is comparisons against a bare Kind sentinel produced by
// New(kind, "").
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}

// New constructs an Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf constructs an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error of the given kind wrapping an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// InvalidMarkerError builds the canonical InvalidMarker error for a byte.
func InvalidMarkerError(b byte) *Error {
	return &Error{Kind: InvalidMarker, Byte: b, Msg: fmt.Sprintf("unrecognized marker 0x%02X", b)}
}

// InvalidSignatureError builds the canonical InvalidSignature error for a byte.
func InvalidSignatureError(b byte) *Error {
	return &Error{Kind: InvalidSignature, Byte: b, Msg: fmt.Sprintf("unrecognized structure signature 0x%02X", b)}
}

// TruncatedError builds the canonical Truncated error.
func TruncatedError(want, have int) *Error {
	return &Error{Kind: Truncated, Msg: fmt.Sprintf("need %d bytes, only %d remain", want, have)}
}

// ValueTooLargeError builds the canonical ValueTooLarge error.
func ValueTooLargeError(length uint64) *Error {
	return &Error{Kind: ValueTooLarge, Len: length, Msg: fmt.Sprintf("length %d exceeds 2^32-1", length)}
}

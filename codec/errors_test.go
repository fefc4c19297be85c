package codec

import (
	"errors"
	"testing"
)

func TestErrorString(t *testing.T) {
	e := New(InvalidMarker, "bad byte")
	if e.Error() != "InvalidMarker: bad byte" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestErrorStringWrapsUnderlying(t *testing.T) {
	underlying := errors.New("connection reset")
	e := Wrap(Io, "dial tcp", underlying)
	if e.Error() != "Io: dial tcp: connection reset" {
		t.Errorf("Error() = %q", e.Error())
	}
	if !errors.Is(e, underlying) {
		t.Error("errors.Is should find the wrapped underlying error")
	}
}

func TestErrorIsComparesKind(t *testing.T) {
	a := New(Truncated, "need 4 bytes")
	b := New(Truncated, "need 8 bytes")
	c := New(Utf8, "bad string")

	if !errors.Is(a, b) {
		t.Error("two Truncated errors should satisfy errors.Is regardless of message")
	}
	if errors.Is(a, c) {
		t.Error("Truncated and Utf8 must not satisfy errors.Is")
	}
}

func TestCanonicalConstructors(t *testing.T) {
	if err := InvalidMarkerError(0xC4); err.Kind != InvalidMarker || err.Byte != 0xC4 {
		t.Errorf("InvalidMarkerError: %+v", err)
	}
	if err := InvalidSignatureError(0x99); err.Kind != InvalidSignature || err.Byte != 0x99 {
		t.Errorf("InvalidSignatureError: %+v", err)
	}
	if err := TruncatedError(4, 1); err.Kind != Truncated {
		t.Errorf("TruncatedError: %+v", err)
	}
	if err := ValueTooLargeError(1 << 40); err.Kind != ValueTooLarge || err.Len != 1<<40 {
		t.Errorf("ValueTooLargeError: %+v", err)
	}
}

func TestKindString(t *testing.T) {
	if InvalidMarker.String() != "InvalidMarker" {
		t.Errorf("Kind.String() = %q", InvalidMarker.String())
	}
	if Kind(999).String() != "Unknown" {
		t.Errorf("unknown Kind.String() = %q", Kind(999).String())
	}
}

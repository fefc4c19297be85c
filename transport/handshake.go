package transport

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/kestrelgraph/boltcore/codec"
)

// boltMagic is the 4-byte preamble that precedes every version proposal,
// unchanged since Bolt's first release.
var boltMagic = [4]byte{0x60, 0x60, 0xB0, 0x17}

// Version is a negotiated Bolt protocol version.
type Version struct {
	Major byte
	Minor byte
}

// DefaultProposals is the set of versions offered during handshake, newest
// first: three proposals plus a zero Version in the fourth and final slot
// the wire format allows, which signals "no further proposal" to the peer.
func DefaultProposals() [4]Version {
	return [4]Version{
		{Major: 5, Minor: 8},
		{Major: 5, Minor: 2},
		{Major: 4, Minor: 4},
		{},
	}
}

// Handshake performs the Bolt version negotiation: it writes the magic
// preamble followed by up to four version proposals, then reads back the
// server's chosen version (or detects a plain-HTTP responder and fails
// fast instead of hanging).
//
// Handshake does not send HELLO or authenticate — that is session-level
// and stays out of this core.
func Handshake(ctx context.Context, s Stream, proposals [4]Version) (Version, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = s.SetDeadline(dl)
	}
	defer s.SetDeadline(time.Time{})

	var out bytes.Buffer
	out.Write(boltMagic[:])
	for _, p := range proposals {
		out.Write([]byte{0, 0, p.Minor, p.Major})
	}
	if _, err := s.Write(out.Bytes()); err != nil {
		return Version{}, codec.Wrap(codec.Io, "write handshake proposal", err)
	}
	if err := s.Flush(); err != nil {
		return Version{}, codec.Wrap(codec.Io, "flush handshake proposal", err)
	}

	var resp [4]byte
	if _, err := io.ReadFull(s, resp[:]); err != nil {
		return Version{}, codec.Wrap(codec.Io, "read handshake response", err)
	}

	major, minor := resp[3], resp[2]
	if major == 'P' && minor == 'T' {
		return Version{}, codec.Newf(codec.Io,
			"server responded with HTTP; Bolt typically uses port 7687, not the HTTP port")
	}
	if major == 0 && minor == 0 && resp[0] == 0 && resp[1] == 0 {
		return Version{}, codec.Newf(codec.Io, "server rejected all proposed versions")
	}

	return Version{Major: major, Minor: minor}, nil
}

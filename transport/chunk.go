package transport

import (
	"encoding/binary"
	"io"

	"github.com/kestrelgraph/boltcore/codec"
)

// MaxChunkSize is the largest payload a single chunk header can declare,
// the ceiling a 16-bit length prefix imposes on Bolt's chunked transport
// framing.
const MaxChunkSize = 0xFFFF

// endMarker terminates a chunked message: a zero-length chunk header with
// no following payload.
var endMarker = [2]byte{0x00, 0x00}

// ChunkWriter buffers PackStream-encoded message bytes into fixed-size
// chunks, writing a big-endian uint16 length header before each chunk and a
// zero-length chunk to mark the end of the message.
type ChunkWriter struct {
	dst  Stream
	buf  []byte
	n    int
	size int
}

// NewChunkWriter creates a ChunkWriter with the default chunk size
// (MaxChunkSize), writing finished chunks to dst.
func NewChunkWriter(dst Stream) *ChunkWriter {
	return NewChunkWriterSize(dst, MaxChunkSize)
}

// NewChunkWriterSize creates a ChunkWriter with an explicit chunk size,
// capped to MaxChunkSize.
func NewChunkWriterSize(dst Stream, size int) *ChunkWriter {
	if size <= 0 || size > MaxChunkSize {
		size = MaxChunkSize
	}
	return &ChunkWriter{dst: dst, buf: make([]byte, size), size: size}
}

// Write buffers p, flushing full chunks to the underlying Stream as needed.
// It never writes a partial chunk header early — only WriteMessage (via
// Flush) closes out a message with its terminating zero-length chunk.
func (w *ChunkWriter) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		m := copy(w.buf[w.n:], p[written:])
		w.n += m
		written += m
		if w.n == w.size {
			if err := w.writeChunk(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// WriteMessage writes msg as one or more chunks followed by the
// zero-length terminator that closes out a single Bolt message.
func (w *ChunkWriter) WriteMessage(msg []byte) error {
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Flush()
}

// Flush writes any buffered bytes as a final chunk, then the terminating
// zero-length chunk, and propagates to the underlying Stream.
func (w *ChunkWriter) Flush() error {
	if err := w.writeChunk(); err != nil {
		return err
	}
	if _, err := w.dst.Write(endMarker[:]); err != nil {
		return codec.Wrap(codec.Io, "write chunk terminator", err)
	}
	return w.dst.Flush()
}

func (w *ChunkWriter) writeChunk() error {
	if w.n == 0 {
		return nil
	}
	var header [2]byte
	binary.BigEndian.PutUint16(header[:], uint16(w.n))
	if _, err := w.dst.Write(header[:]); err != nil {
		return codec.Wrap(codec.Io, "write chunk header", err)
	}
	if _, err := w.dst.Write(w.buf[:w.n]); err != nil {
		return codec.Wrap(codec.Io, "write chunk body", err)
	}
	w.n = 0
	return nil
}

// ChunkReader reassembles a chunked Bolt message from a Stream: it reads
// length-prefixed chunks until a zero-length chunk terminates the message,
// returning the concatenated payload.
type ChunkReader struct {
	src Stream
}

// NewChunkReader creates a ChunkReader reading chunked messages from src.
func NewChunkReader(src Stream) *ChunkReader {
	return &ChunkReader{src: src}
}

// ReadMessage reads one complete chunked message (possibly spanning many
// chunks) and returns its reassembled payload.
func (r *ChunkReader) ReadMessage() ([]byte, error) {
	var message []byte
	var header [2]byte
	for {
		if _, err := io.ReadFull(r.src, header[:]); err != nil {
			return nil, codec.Wrap(codec.Io, "read chunk header", err)
		}
		chunkLen := binary.BigEndian.Uint16(header[:])
		if chunkLen == 0 {
			return message, nil
		}
		chunk := make([]byte, chunkLen)
		if _, err := io.ReadFull(r.src, chunk); err != nil {
			return nil, codec.Wrap(codec.Io, "read chunk body", err)
		}
		message = append(message, chunk...)
	}
}

package interpress

import "io"

// BytesWriter is an io.Writer and io.ByteWriter over a pre-allocated byte
// slice. It never grows the slice; a write past the end stores what fits and
// returns io.ErrShortWrite. It is the cheapest target for an Encoder when the
// size of a token run is known in advance, and a fixed-size sink for a Writer.
type BytesWriter struct {
	B []byte // destination slice
	N int    // current write position
}

var (
	_ io.Writer     = (*BytesWriter)(nil)
	_ io.ByteWriter = (*BytesWriter)(nil)
)

// NewBytesWriter creates a new BytesWriter over the full capacity of p.
func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{B: p[:cap(p)]}
}

// Write implements the io.Writer interface.
func (w *BytesWriter) Write(p []byte) (int, error) {
	if w.N >= len(w.B) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortWrite
	}
	n := copy(w.B[w.N:], p)
	w.N += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteByte implements the io.ByteWriter interface.
func (w *BytesWriter) WriteByte(c byte) error {
	if w.N >= len(w.B) {
		return io.ErrShortWrite
	}
	w.B[w.N] = c
	w.N++
	return nil
}

// Reset allows the underlying byte slice to be reused.
func (w *BytesWriter) Reset() { w.N = 0 }

// Len returns the number of bytes written.
func (w *BytesWriter) Len() int { return w.N }

// Bytes returns a slice view of the written data.
func (w *BytesWriter) Bytes() []byte { return w.B[:w.N] }

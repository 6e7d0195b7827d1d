package interpress

import (
	"errors"
	"io"
	"log/slog"

	"github.com/puzpuzpuz/xsync/v4"
)

// BufferSize is the size of the block the Writer accumulates before writing to its sink.
const BufferSize = 1024

// Writer accumulates encoded bytes in a fixed BufferSize block and writes the
// block to the current sink each time it fills. At most one sink is current;
// selecting another flushes the previous one first.
//
// Each sink id is resolved through Sinks once per stream. The resolved writer
// is kept across switches and released only by Close, so switching back to an
// id continues the same stream.
//
// Writer tracks the first error from the current sink. After an error all
// emits are no-ops that return it, until the sink is closed or another sink
// is selected.
//
// A Writer is not safe for concurrent use. Callers that share one across
// goroutines must serialize every call, including those made through the
// Encoder it returns.
type Writer struct {
	buf [BufferSize]byte
	n   int // buffered bytes; always the write cursor

	sinks    Sinks
	handles  *xsync.Map[int, io.Writer] // resolved sinks not yet closed
	registry *Registry
	sink     io.Writer
	id       int
	open     bool

	count  int64 // bytes accepted since the current sink was selected
	err    error // first error on the current sink
	enc    *Encoder
	logger *slog.Logger
}

var _ io.ByteWriter = (*Writer)(nil)

// NewWriter creates a Writer that resolves sink ids through sinks.
// It starts with no sink selected and a private Registry.
func NewWriter(sinks Sinks) (*Writer, error) {
	if sinks == nil {
		return nil, ErrNilSinks
	}
	w := &Writer{
		sinks:    sinks,
		handles:  xsync.NewMap[int, io.Writer](),
		registry: NewRegistry(nil),
		id:       -1,
		logger:   slog.New(slog.DiscardHandler),
	}
	w.enc = NewEncoder(w)
	return w, nil
}

// WithRegistry shares registry with this Writer and returns the Writer for chaining.
func (w *Writer) WithRegistry(registry *Registry) *Writer {
	if registry != nil {
		w.registry = registry
	}
	return w
}

// WithLogger sets the logger for sink lifecycle events and returns the Writer for chaining.
func (w *Writer) WithLogger(logger *slog.Logger) *Writer {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// Encoder returns the Encoder bound to this Writer.
func (w *Writer) Encoder() *Encoder { return w.enc }

// Registry returns the header registry in use.
func (w *Writer) Registry() *Registry { return w.registry }

// Buffered returns the number of bytes waiting in the block.
func (w *Writer) Buffered() int { return w.n }

// Count returns the bytes accepted since the current sink was selected.
func (w *Writer) Count() int64 { return w.count }

// Err returns the first error seen on the current sink.
func (w *Writer) Err() error { return w.err }

// Current returns the selected sink id, if any.
func (w *Writer) Current() (int, bool) { return w.id, w.open }

func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// SelectSink makes id the current sink. A sink that is still open is flushed
// and detached first; the returned error reports that flush joined with any
// error writing the header. When id has no header since its last close, the
// header is emitted as the first bytes.
func (w *Writer) SelectSink(id int) error {
	return w.selectSink(id, false)
}

// SelectSinkRaw is SelectSink without the header, for appending to or
// continuing an existing master.
func (w *Writer) SelectSinkRaw(id int) error {
	return w.selectSink(id, true)
}

func (w *Writer) selectSink(id int, raw bool) error {
	if err := w.registry.check(id); err != nil {
		return err
	}
	sink, err := w.resolve(id)
	if err != nil {
		return err
	}

	var previous error
	if w.open {
		w.flush()
		previous = w.err
		w.logger.Debug("interpress: sink detached", "sink", w.id, "bytes", w.count, "error", previous)
	}

	w.sink, w.id, w.open = sink, id, true
	w.n, w.count, w.err = 0, 0, nil
	w.enc.reset()

	if raw {
		w.registry.MarkInitialized(id)
	}
	var headerErr error
	header := w.registry.initialize(id)
	if header {
		headerErr = w.EmitBytes([]byte(Header))
	}
	w.logger.Debug("interpress: sink selected", "sink", id, "raw", raw, "header", header)
	return errors.Join(previous, headerErr)
}

// resolve returns the open writer for id, asking Sinks only when id has none.
func (w *Writer) resolve(id int) (io.Writer, error) {
	if sink, ok := w.handles.Load(id); ok {
		return sink, nil
	}
	sink, err := w.sinks.Sink(id)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, ErrNilIO
	}
	w.handles.Store(id, sink)
	return sink, nil
}

// Close flushes the current sink, clears its header flag, closes it when it
// implements io.Closer, forgets the resolved writer and leaves the Writer with no sink selected. Close
// returns the first error seen on the sink, including from its Close.
// It is a no-op when no sink is selected.
func (w *Writer) Close() error {
	if !w.open {
		return nil
	}
	w.flush()
	w.registry.Reset(w.id)
	w.handles.Delete(w.id)
	if c, ok := w.sink.(io.Closer); ok {
		w.setError(c.Close())
	}
	err := w.err
	w.logger.Debug("interpress: sink closed", "sink", w.id, "bytes", w.count, "error", err)

	w.sink, w.id, w.open = nil, -1, false
	w.n, w.count, w.err = 0, 0, nil
	w.enc.reset()
	return err
}

// Flush writes the buffered bytes to the current sink without closing it or
// touching its header flag. It is a no-op when no sink is selected.
func (w *Writer) Flush() error {
	if !w.open {
		return nil
	}
	w.flush()
	return w.err
}

// flush writes buf[:n] and resets the cursor.
func (w *Writer) flush() {
	if w.n == 0 || w.err != nil {
		w.n = 0
		return
	}
	n, err := w.sink.Write(w.buf[:w.n])
	switch {
	case n < 0 || n > w.n:
		err = ErrInvalidWrite
	case err == nil && n < w.n:
		err = io.ErrShortWrite
	}
	w.setError(err)
	w.n = 0
}

// EmitByte appends b to the block, writing the block out when it fills.
func (w *Writer) EmitByte(b byte) error {
	if !w.open {
		return ErrNoSink
	}
	if w.err != nil {
		return w.err
	}
	w.buf[w.n] = b
	w.n++
	w.count++
	if w.n == BufferSize {
		w.flush()
	}
	return w.err
}

// WriteByte implements io.ByteWriter.
func (w *Writer) WriteByte(b byte) error { return w.EmitByte(b) }

// EmitBytes emits p one byte at a time, so block boundaries fall exactly
// where they would for successive EmitByte calls.
func (w *Writer) EmitBytes(p []byte) error {
	if !w.open {
		return ErrNoSink
	}
	for _, b := range p {
		if err := w.EmitByte(b); err != nil {
			return err
		}
	}
	return nil
}

package interpress

import (
	"fmt"
	"io"

	"github.com/puzpuzpuz/xsync/v4"
)

// Sinks resolves a sink id to the io.Writer that receives its flushed blocks.
// A Writer calls Sink once per stream: the first time an id is selected after
// NewWriter or after the id's last Close. If the writer also implements
// io.Closer, Writer.Close closes it.
type Sinks interface {
	Sink(id int) (io.Writer, error)
}

// SinkFunc adapts an ordinary function to the Sinks interface.
type SinkFunc func(id int) (io.Writer, error)

func (f SinkFunc) Sink(id int) (io.Writer, error) { return f(id) }

// SinkTable is a Sinks backed by explicitly attached writers.
// It is safe for concurrent use.
type SinkTable struct {
	sinks *xsync.Map[int, io.Writer]
}

var _ Sinks = (*SinkTable)(nil)

func NewSinkTable() *SinkTable {
	return &SinkTable{sinks: xsync.NewMap[int, io.Writer]()}
}

// Attach binds w to id, replacing any writer already attached.
// A closed sink must be attached again before its id is reused.
func (t *SinkTable) Attach(id int, w io.Writer) error {
	if w == nil {
		return ErrNilIO
	}
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrSinkID, id)
	}
	t.sinks.Store(id, w)
	return nil
}

// Detach forgets the writer bound to id. It does not close it.
func (t *SinkTable) Detach(id int) {
	t.sinks.Delete(id)
}

// Sink implements Sinks.
func (t *SinkTable) Sink(id int) (io.Writer, error) {
	w, ok := t.sinks.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSink, id)
	}
	return w, nil
}

package interpress

import (
	"io"
	"testing"
)

func BenchmarkEmitInteger(b *testing.B) {
	w := NewBytesWriter(make([]byte, 64))
	e := NewEncoder(w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Reset()
		_ = e.EmitInteger(int32(i) * 7919)
	}
}

func BenchmarkEmitNumberRational(b *testing.B) {
	w := NewBytesWriter(make([]byte, 64))
	e := NewEncoder(w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Reset()
		_ = e.EmitNumber(1.0 / 3)
	}
}

func BenchmarkEncodedByteWidth(b *testing.B) {
	var sink int
	for i := 0; i < b.N; i++ {
		sink += EncodedByteWidth(int32(i) * 104729)
	}
	_ = sink
}

// Baseline for the buffered path: tokens through a Writer into io.Discard.
func BenchmarkWriterEmitOperator(b *testing.B) {
	w, _ := NewWriter(SinkFunc(func(int) (io.Writer, error) { return io.Discard, nil }))
	_ = w.SelectSinkRaw(0)
	e := w.Encoder()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.EmitOperator(Op(i & LongOpLimit))
	}
	_ = w.Close()
}

package interpress

import (
	"fmt"
	"io"
	"math"
)

// Encoder turns operators, numbers and sequences into Interpress tokens and
// emits them byte by byte to an io.ByteWriter.
//
// Like the buffered Writer, it tracks the first write error. After an error
// every emit is a no-op that returns the same error. Argument errors
// (ErrOpcodeRange, ErrNotFinite, ...) are returned without being latched and
// leave nothing half-written.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	w     io.ByteWriter
	count int64
	err   error
}

// NewEncoder returns an Encoder that emits to w.
func NewEncoder(w io.ByteWriter) *Encoder {
	if w == nil {
		panic(ErrNilIO)
	}
	return &Encoder{w: w}
}

// Count returns the number of bytes emitted.
func (e *Encoder) Count() int64 { return e.count }

// Err returns the first write error, if any.
func (e *Encoder) Err() error { return e.err }

func (e *Encoder) reset() {
	e.count = 0
	e.err = nil
}

func (e *Encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	if err := e.w.WriteByte(b); err != nil {
		e.err = err
		return
	}
	e.count++
}

func (e *Encoder) writeBytes(p []byte) {
	for _, b := range p {
		e.writeByte(b)
	}
}

func (e *Encoder) writeUint16(v uint16) {
	var buf [2]byte
	Order.PutUint16(buf[:], v)
	e.writeBytes(buf[:])
}

// writeInt emits the low width bytes of v in two's complement.
// putBE stops at the first failed byte, which encoderBytes has already latched.
func (e *Encoder) writeInt(v int32, width int) {
	if err := putBE(encoderBytes{e}, v, width); err != nil {
		e.err = err
	}
}

// EmitOperator encodes op as a one-byte short operator when it is at most
// ShortOpLimit, and as a two-byte long operator otherwise.
func (e *Encoder) EmitOperator(op Op) error {
	if op > LongOpLimit {
		return fmt.Errorf("%w: %d exceeds %d", ErrOpcodeRange, op, LongOpLimit)
	}
	if op.Short() {
		e.writeByte(ShortOp | byte(op))
	} else {
		e.writeUint16(LongOp<<8 | uint16(op))
	}
	return e.err
}

// EmitNumber encodes v as an integer when it is integral and fits in 32 bits.
// Otherwise it searches for the smallest power-of-two denominator d that makes
// v*d integral, stopping when v*d or d reaches RationalMax, and emits the
// truncated pair as a rational. Stopping early loses precision; that is the
// accepted price of a bounded encoding, not an error.
func (e *Encoder) EmitNumber(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrNotFinite, v)
	}
	if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
		return e.EmitInteger(int32(v))
	}
	num, den, err := Rationalize(v)
	if err != nil {
		return err
	}
	return e.EmitRational(num, den)
}

// Rationalize returns the numerator and power-of-two denominator EmitNumber
// uses for a non-integral v.
func Rationalize(v float64) (num, den int32, err error) {
	d := int64(1)
	r := v
	for math.Abs(r) < RationalMax && d < RationalMax && r != math.Trunc(r) {
		d <<= 1
		r = v * float64(d)
	}
	if math.IsNaN(r) || r < math.MinInt32 || r > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: %v", ErrNumberRange, v)
	}
	return int32(r), int32(d), nil
}

// EmitInteger encodes v as a short number when it lies in
// [IntegerMin, IntegerMax], and as an integer sequence of 1 to 4
// big-endian bytes otherwise.
func (e *Encoder) EmitInteger(v int32) error {
	if v >= IntegerMin && v <= IntegerMax {
		return e.EmitShortNumber(int16(v))
	}
	width := EncodedByteWidth(v)
	e.writeByte(ShortSequence | byte(SequenceInteger))
	e.writeByte(byte(width))
	e.writeInt(v, width)
	return e.err
}

// EmitShortNumber emits the two-byte short number form of v.
// The caller must keep v within [IntegerMin, IntegerMax].
func (e *Encoder) EmitShortNumber(v int16) error {
	if v < IntegerMin || v > IntegerMax {
		panic(fmt.Sprintf("interpress: short number %d out of range", v))
	}
	e.writeUint16(uint16(int32(v) + IntegerZero))
	return e.err
}

// EmitRational encodes num/den as a rational sequence. Both fields share the
// width of the wider one, so the narrower field is sign-extended.
func (e *Encoder) EmitRational(num, den int32) error {
	width := max(EncodedByteWidth(num), EncodedByteWidth(den))
	if err := e.EmitTaggedSequence(SequenceRational, width*2, nil); err != nil {
		return err
	}
	e.writeInt(num, width)
	e.writeInt(den, width)
	return e.err
}

// EmitTaggedSequence emits a sequence descriptor of type t and the given
// length, followed by payload when it is non-nil. Lengths up to
// MaxShortSequenceLength use the two-byte short descriptor; longer ones use
// the four-byte long descriptor.
//
// A nil payload emits only the descriptor, leaving the caller to write
// length data bytes. A negative length means an overflow upstream and panics.
func (e *Encoder) EmitTaggedSequence(t SequenceType, length int, payload []byte) error {
	if length < 0 {
		panic(fmt.Sprintf("interpress: negative sequence length %d", length))
	}
	if length > MaxSequenceLength {
		return fmt.Errorf("%w: %d bytes", ErrSequenceTooLong, length)
	}
	if payload != nil && len(payload) != length {
		return fmt.Errorf("%w: declared %d, got %d", ErrPayloadLength, length, len(payload))
	}
	if length > MaxShortSequenceLength {
		e.writeByte(LongSequence | byte(t))
		e.writeInt(int32(length), 3)
	} else {
		e.writeByte(ShortSequence | byte(t))
		e.writeByte(byte(length))
	}
	e.writeBytes(payload)
	return e.err
}

// EmitString emits s as a string sequence. Bytes are written as is; no
// escape characters are inserted.
func (e *Encoder) EmitString(s string) error {
	return e.EmitTaggedSequence(SequenceString, len(s), []byte(s))
}

// EmitIdentifier emits an identifier sequence.
func (e *Encoder) EmitIdentifier(id string) error {
	return e.EmitTaggedSequence(SequenceIdentifier, len(id), []byte(id))
}

// EmitComment emits a comment sequence.
func (e *Encoder) EmitComment(comment string) error {
	return e.EmitTaggedSequence(SequenceComment, len(comment), []byte(comment))
}

// EmitInsertFile emits an insert-file sequence naming the file to splice in.
func (e *Encoder) EmitInsertFile(name string) error {
	return e.EmitTaggedSequence(SequenceInsertFile, len(name), []byte(name))
}

// encoderBytes routes putBE through the Encoder's latched error.
type encoderBytes struct{ e *Encoder }

func (b encoderBytes) WriteByte(c byte) error {
	b.e.writeByte(c)
	return b.e.err
}

package interpress

import "errors"

var (
	// ErrNilIO indicates that a constructor was called with a nil io.Writer or io.ByteWriter.
	ErrNilIO = errors.New("interpress: nil io.Writer")

	// ErrNilSinks indicates that NewWriter was called without a sink resolver.
	ErrNilSinks = errors.New("interpress: NewWriter called with nil Sinks")

	// ErrNoSink indicates a byte was emitted while no sink is selected.
	ErrNoSink = errors.New("interpress: no sink selected")

	// ErrSinkID indicates a sink identifier outside the registry's range.
	ErrSinkID = errors.New("interpress: sink id out of range")

	// ErrUnknownSink indicates that no io.Writer is attached to the requested sink id.
	ErrUnknownSink = errors.New("interpress: unknown sink")

	// ErrInvalidWrite indicates that a sink returned an invalid (negative or oversized) count from Write.
	ErrInvalidWrite = errors.New("interpress: sink returned invalid count from Write")

	// ErrOpcodeRange indicates an opcode that does not fit the 13-bit long operator form.
	ErrOpcodeRange = errors.New("interpress: opcode out of range")

	// ErrNotFinite indicates an attempt to encode NaN or an infinity.
	ErrNotFinite = errors.New("interpress: number is not finite")

	// ErrNumberRange indicates a number whose integer or rational form does not fit in 32 bits.
	ErrNumberRange = errors.New("interpress: number out of 32-bit range")

	// ErrSequenceTooLong indicates a sequence length that does not fit the 24-bit long descriptor.
	ErrSequenceTooLong = errors.New("interpress: sequence too long")

	// ErrPayloadLength indicates a sequence payload whose size disagrees with the declared length.
	ErrPayloadLength = errors.New("interpress: payload size does not match sequence length")
)

package interpress

import "strconv"

// Header is written once at the front of every fresh Interpress master.
const Header = "Interpress/Xerox/3.0 "

// Token tag bytes. The top three bits of the first byte select the token kind;
// a clear top bit means a two-byte short number.
const (
	ShortOp       = 0x80
	LongOp        = 0xA0
	ShortSequence = 0xC0
	LongSequence  = 0xE0

	// ShortOpLimit is the largest opcode that fits the one-byte operator form.
	ShortOpLimit = 0x1F
	// LongOpLimit is the largest opcode that fits the 13 bits left by the long operator tag.
	LongOpLimit = 0x1FFF

	// MaxShortSequenceLength is the largest length carried by a one-byte descriptor length.
	MaxShortSequenceLength = 0xFF
	// MaxSequenceLength is the largest length carried by the 3-byte long descriptor.
	MaxSequenceLength = 0xFFFFFF
)

// Short numbers are stored as uint16(v + IntegerZero) with the top bit clear.
const (
	IntegerZero = 4000
	IntegerMin  = -IntegerZero
	IntegerMax  = 0x7FFF - IntegerZero
)

// RationalMax bounds both the numerator and the denominator searched by EmitNumber.
const RationalMax = 1 << 30

// SequenceType is the low five bits of a sequence descriptor.
type SequenceType byte

const (
	SequenceString                SequenceType = 1
	SequenceInteger               SequenceType = 2
	SequenceInsertMaster          SequenceType = 3
	SequenceRational              SequenceType = 4
	SequenceIdentifier            SequenceType = 5
	SequenceComment               SequenceType = 6
	SequenceContinued             SequenceType = 7
	SequenceLargeVector           SequenceType = 8
	SequencePackedPixelVector     SequenceType = 9
	SequenceCompressedPixelVector SequenceType = 10
	SequenceInsertFile            SequenceType = 11
	SequenceAdaptivePixelVector   SequenceType = 12
	SequenceCCITT4PixelVector     SequenceType = 13
)

var sequenceNames = [...]string{
	SequenceString:                "string",
	SequenceInteger:               "integer",
	SequenceInsertMaster:          "insertMaster",
	SequenceRational:              "rational",
	SequenceIdentifier:            "identifier",
	SequenceComment:               "comment",
	SequenceContinued:             "continued",
	SequenceLargeVector:           "largeVector",
	SequencePackedPixelVector:     "packedPixelVector",
	SequenceCompressedPixelVector: "compressedPixelVector",
	SequenceInsertFile:            "insertFile",
	SequenceAdaptivePixelVector:   "adaptivePixelVector",
	SequenceCCITT4PixelVector:     "ccitt4PixelVector",
}

func (t SequenceType) String() string {
	if int(t) < len(sequenceNames) && sequenceNames[t] != "" {
		return sequenceNames[t]
	}
	return "sequence(" + strconv.Itoa(int(t)) + ")"
}

// Op is an Interpress primitive opcode.
type Op uint16

// Opcodes that fit the one-byte operator form.
const (
	OpNop        Op = 1
	OpSetXY      Op = 10
	OpSetXYRel   Op = 11
	OpSetXRel    Op = 12
	OpSetYRel    Op = 13
	OpLineToX    Op = 14
	OpLineToY    Op = 15
	OpSpace      Op = 16
	OpGet        Op = 17
	OpIGet       Op = 18
	OpISet       Op = 19
	OpFGet       Op = 20
	OpFSet       Op = 21
	OpShow       Op = 22
	OpLineTo     Op = 23
	OpMaskStroke Op = 24
	OpMoveTo     Op = 25
)

// Short reports whether op is encoded in a single byte.
func (op Op) Short() bool { return op <= ShortOpLimit }

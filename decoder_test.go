package interpress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// --- Test-only token decoder ---

type tokenKind int

const (
	tokenShortNumber tokenKind = iota
	tokenOperator
	tokenInteger
	tokenRational
	tokenSequence
)

// token is one decoded Interpress token. Only the fields for its kind are set.
type token struct {
	kind    tokenKind
	op      Op
	value   int32 // short number or integer sequence
	num     int32
	den     int32
	seq     SequenceType
	long    bool // long sequence descriptor
	payload []byte
}

// signExtend reads p as a big-endian two's complement integer.
func signExtend(p []byte) int32 {
	v := int32(int8(p[0]))
	for _, b := range p[1:] {
		v = v<<8 | int32(b)
	}
	return v
}

// decodeTokens parses data as a run of tokens with their payloads, failing t
// on anything truncated or malformed.
func decodeTokens(t testing.TB, data []byte) []token {
	t.Helper()
	r := bytes.NewReader(data)
	next := func(n int) []byte {
		buf := make([]byte, n)
		_, err := io.ReadFull(r, buf)
		require.NoError(t, err, "truncated token at offset %d", len(data)-r.Len())
		return buf
	}

	var tokens []token
	for r.Len() > 0 {
		b := next(1)[0]
		switch {
		case b&0x80 == 0:
			low := next(1)[0]
			v := int32(uint16(b)<<8|uint16(low)) - IntegerZero
			tokens = append(tokens, token{kind: tokenShortNumber, value: v})
		case b&0xE0 == ShortOp:
			tokens = append(tokens, token{kind: tokenOperator, op: Op(b & 0x1F)})
		case b&0xE0 == LongOp:
			low := next(1)[0]
			tokens = append(tokens, token{kind: tokenOperator, op: Op(uint16(b&0x1F)<<8 | uint16(low))})
		default:
			tok := token{kind: tokenSequence, seq: SequenceType(b & 0x1F), long: b&0xE0 == LongSequence}
			var length int
			if tok.long {
				l := next(3)
				length = int(l[0])<<16 | int(l[1])<<8 | int(l[2])
			} else {
				length = int(next(1)[0])
			}
			tok.payload = next(length)
			switch tok.seq {
			case SequenceInteger:
				require.True(t, length >= 1 && length <= 4, "integer sequence of %d bytes", length)
				tok.kind, tok.value = tokenInteger, signExtend(tok.payload)
			case SequenceRational:
				require.True(t, length >= 2 && length <= 8 && length%2 == 0, "rational sequence of %d bytes", length)
				half := length / 2
				tok.kind = tokenRational
				tok.num, tok.den = signExtend(tok.payload[:half]), signExtend(tok.payload[half:])
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// decodeOne decodes data and requires exactly one token.
func decodeOne(t testing.TB, data []byte) token {
	t.Helper()
	tokens := decodeTokens(t, data)
	require.Len(t, tokens, 1)
	return tokens[0]
}

// encode runs fn against an Encoder over a BytesWriter and returns the bytes.
func encode(t testing.TB, fn func(e *Encoder) error) []byte {
	t.Helper()
	w := NewBytesWriter(make([]byte, 0, 4096))
	require.NoError(t, fn(NewEncoder(w)))
	return w.Bytes()
}

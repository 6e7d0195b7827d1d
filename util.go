package interpress

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/constraints"
)

// Order is the byte order of every multi-byte field on the wire.
var Order = binary.BigEndian

// maxFieldWidth is the widest integer field the format carries.
const maxFieldWidth = 4

// EncodedByteWidth returns the number of bytes, 1 through 4, needed to hold v
// in two's complement with the sign bit of the top byte matching the sign of v.
//
// A negative value takes the same space as its one's complement. The mask
// starts at the top nine bits and shifts arithmetically, so each step tests
// whether the next byte down plus the sign bit above it are still zero.
func EncodedByteWidth(v int32) int {
	if v < 0 {
		v = ^v
	}
	if v == 0 {
		return 1
	}
	width := maxFieldWidth
	for mask := int32(-0x800000); v&mask == 0; mask >>= 8 {
		width--
	}
	return width
}

// putBE emits the low width bytes of v, most significant first.
// A width outside 1..4 is a caller bug and panics.
func putBE[T constraints.Integer](w io.ByteWriter, v T, width int) error {
	if width < 1 || width > maxFieldWidth {
		panic(fmt.Sprintf("interpress: asked to append %d bytes", width))
	}
	for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
		if err := w.WriteByte(byte(v >> shift)); err != nil {
			return err
		}
	}
	return nil
}

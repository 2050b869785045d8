package protocol

import "github.com/pkg/errors"

// Maximum encoded sizes of unsigned varints.
const (
	MaxVarInt32Len = 5
	MaxVarInt64Len = 10
)

// EncodeZigZag32 maps a signed value onto an unsigned one so that values of
// small magnitude stay small: 0, -1, 1, -2 become 0, 1, 2, 3.
func EncodeZigZag32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

// DecodeZigZag32 reverses EncodeZigZag32.
func DecodeZigZag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// EncodeZigZag64 is the 64-bit form of EncodeZigZag32.
func EncodeZigZag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// DecodeZigZag64 reverses EncodeZigZag64.
func DecodeZigZag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// AppendUnsignedVarInt32 appends the LEB128 encoding of v to dst.
func AppendUnsignedVarInt32(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendUnsignedVarInt64 appends the LEB128 encoding of v to dst.
func AppendUnsignedVarInt64(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// UnsignedVarInt32 decodes an unsigned varint starting at buf[off] and
// returns the value and the number of bytes consumed.
//
// Bits beyond the 32nd carried by the fifth byte are discarded, as Bedrock
// peers do.
func UnsignedVarInt32(buf []byte, off int) (uint32, int, error) {
	var v uint32
	for i := 0; i < MaxVarInt32Len; i++ {
		if off+i >= len(buf) {
			return 0, 0, errors.Wrapf(ErrOutOfData, "varint32 at offset %d", off)
		}
		b := buf[off+i]
		v |= uint32(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, errors.Wrapf(ErrMalformedVarInt, "varint32 at offset %d exceeds %d bytes", off, MaxVarInt32Len)
}

// UnsignedVarInt64 decodes an unsigned varint starting at buf[off] and
// returns the value and the number of bytes consumed.
func UnsignedVarInt64(buf []byte, off int) (uint64, int, error) {
	var v uint64
	for i := 0; i < MaxVarInt64Len; i++ {
		if off+i >= len(buf) {
			return 0, 0, errors.Wrapf(ErrOutOfData, "varint64 at offset %d", off)
		}
		b := buf[off+i]
		v |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, errors.Wrapf(ErrMalformedVarInt, "varint64 at offset %d exceeds %d bytes", off, MaxVarInt64Len)
}

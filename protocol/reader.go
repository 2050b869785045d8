package protocol

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Reader consumes a received buffer field by field. It never modifies the
// buffer, and a failed read leaves the offset where it was.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// next consumes n bytes, or fails without moving if fewer remain.
func (r *Reader) next(n int, field string) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, errors.Wrapf(ErrOutOfData, "%s at offset %d: need %d bytes, have %d", field, r.off, n, r.Len())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.next(1, "byte")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBool reads one byte and reports whether it is non-zero.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.next(1, "bool")
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// ReadBytes reads exactly n raw bytes. The result aliases the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.next(n, "bytes")
}

// ReadShort reads a big-endian 16-bit integer.
func (r *Reader) ReadShort() (int16, error) {
	b, err := r.next(2, "short")
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

// ReadLShort reads a little-endian 16-bit integer.
func (r *Reader) ReadLShort() (int16, error) {
	b, err := r.next(2, "lshort")
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// ReadInt reads a big-endian 32-bit integer.
func (r *Reader) ReadInt() (int32, error) {
	b, err := r.next(4, "int")
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadLInt reads a little-endian 32-bit integer.
func (r *Reader) ReadLInt() (int32, error) {
	b, err := r.next(4, "lint")
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadLong reads a big-endian 64-bit integer.
func (r *Reader) ReadLong() (int64, error) {
	b, err := r.next(8, "long")
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadLLong reads a little-endian 64-bit integer.
func (r *Reader) ReadLLong() (int64, error) {
	b, err := r.next(8, "llong")
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// ReadFloat reads a big-endian IEEE-754 single-precision float.
func (r *Reader) ReadFloat() (float32, error) {
	b, err := r.next(4, "float")
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// ReadLFloat reads a little-endian IEEE-754 single-precision float.
func (r *Reader) ReadLFloat() (float32, error) {
	b, err := r.next(4, "lfloat")
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadUnsignedVarInt reads a varint of at most 5 bytes.
func (r *Reader) ReadUnsignedVarInt() (uint32, error) {
	v, n, err := UnsignedVarInt32(r.buf, r.off)
	if err != nil {
		return 0, err
	}
	r.off += n
	return v, nil
}

// ReadVarInt reads a zig-zag encoded 32-bit value.
func (r *Reader) ReadVarInt() (int32, error) {
	v, err := r.ReadUnsignedVarInt()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag32(v), nil
}

// ReadUnsignedVarLong reads a varint of at most 10 bytes.
func (r *Reader) ReadUnsignedVarLong() (uint64, error) {
	v, n, err := UnsignedVarInt64(r.buf, r.off)
	if err != nil {
		return 0, err
	}
	r.off += n
	return v, nil
}

// ReadVarLong reads a zig-zag encoded 64-bit value.
func (r *Reader) ReadVarLong() (int64, error) {
	v, err := r.ReadUnsignedVarLong()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag64(v), nil
}

// ReadString reads a string prefixed with an unsigned varint byte length.
func (r *Reader) ReadString() (string, error) {
	start := r.off
	n, err := r.ReadUnsignedVarInt()
	if err != nil {
		return "", err
	}
	b, err := r.next(int(n), "string")
	if err != nil {
		r.off = start
		return "", err
	}
	return string(b), nil
}

// ReadLIntString reads a string prefixed with a little-endian 32-bit length.
func (r *Reader) ReadLIntString() (string, error) {
	start := r.off
	n, err := r.ReadLInt()
	if err != nil {
		return "", err
	}
	b, err := r.next(int(n), "lint string")
	if err != nil {
		r.off = start
		return "", err
	}
	return string(b), nil
}

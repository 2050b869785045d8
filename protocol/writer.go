package protocol

import (
	"encoding/binary"
	"math"
)

// defaultWriterSize is the initial capacity of a new Writer.
const defaultWriterSize = 256

// Writer accumulates the bytes of one packet in write order.
//
// Fixed-width methods without an L prefix write big-endian; the L variants
// write little-endian. Receivers decode each field with the matching Reader
// method, so a packet may legitimately mix both orders.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	buf  []byte
	idle bool // true while parked in a Pool
}

// NewWriter returns an empty Writer with the given initial capacity.
func NewWriter(size int) *Writer {
	if size <= 0 {
		size = defaultWriterSize
	}
	return &Writer{buf: make([]byte, 0, size)}
}

// Bytes returns exactly the bytes written so far. The slice aliases the
// Writer's storage and is only valid until the next write or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Cap returns the capacity of the underlying buffer.
func (w *Writer) Cap() int {
	return cap(w.buf)
}

// Reset empties the Writer while keeping its capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// grow makes room for n more bytes, doubling the capacity as needed.
func (w *Writer) grow(n int) {
	if len(w.buf)+n <= cap(w.buf) {
		return
	}
	c := cap(w.buf) * 2
	if c == 0 {
		c = defaultWriterSize
	}
	for c < len(w.buf)+n {
		c *= 2
	}
	buf := make([]byte, len(w.buf), c)
	copy(buf, w.buf)
	w.buf = buf
}

// PutByte writes a single byte.
func (w *Writer) PutByte(v byte) {
	w.grow(1)
	w.buf = append(w.buf, v)
}

// PutBool writes v as one byte, 1 for true and 0 for false.
func (w *Writer) PutBool(v bool) {
	if v {
		w.PutByte(1)
	} else {
		w.PutByte(0)
	}
}

// PutBytes writes p verbatim, without a length prefix.
func (w *Writer) PutBytes(p []byte) {
	w.grow(len(p))
	w.buf = append(w.buf, p...)
}

// PutShort writes a 16-bit integer, big-endian.
func (w *Writer) PutShort(v int16) {
	w.grow(2)
	w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(v))
}

// PutLShort writes a 16-bit integer, little-endian.
func (w *Writer) PutLShort(v int16) {
	w.grow(2)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(v))
}

// PutInt writes a 32-bit integer, big-endian.
func (w *Writer) PutInt(v int32) {
	w.grow(4)
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

// PutLInt writes a 32-bit integer, little-endian.
func (w *Writer) PutLInt(v int32) {
	w.grow(4)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

// PutLong writes a 64-bit integer, big-endian.
func (w *Writer) PutLong(v int64) {
	w.grow(8)
	w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(v))
}

// PutLLong writes a 64-bit integer, little-endian.
func (w *Writer) PutLLong(v int64) {
	w.grow(8)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

// PutFloat writes an IEEE-754 single-precision float, big-endian.
func (w *Writer) PutFloat(v float32) {
	w.grow(4)
	w.buf = binary.BigEndian.AppendUint32(w.buf, math.Float32bits(v))
}

// PutLFloat writes an IEEE-754 single-precision float, little-endian.
func (w *Writer) PutLFloat(v float32) {
	w.grow(4)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

// PutUnsignedVarInt writes v as a varint of at most 5 bytes.
func (w *Writer) PutUnsignedVarInt(v uint32) {
	w.grow(MaxVarInt32Len)
	w.buf = AppendUnsignedVarInt32(w.buf, v)
}

// PutVarInt writes v zig-zag encoded.
func (w *Writer) PutVarInt(v int32) {
	w.PutUnsignedVarInt(EncodeZigZag32(v))
}

// PutUnsignedVarLong writes v as a varint of at most 10 bytes.
func (w *Writer) PutUnsignedVarLong(v uint64) {
	w.grow(MaxVarInt64Len)
	w.buf = AppendUnsignedVarInt64(w.buf, v)
}

// PutVarLong writes v zig-zag encoded.
func (w *Writer) PutVarLong(v int64) {
	w.PutUnsignedVarLong(EncodeZigZag64(v))
}

// PutString writes s prefixed with its byte length as an unsigned varint.
func (w *Writer) PutString(s string) {
	w.PutUnsignedVarInt(uint32(len(s)))
	w.grow(len(s))
	w.buf = append(w.buf, s...)
}

// PutLIntString writes s prefixed with its byte length as a little-endian
// 32-bit integer.
func (w *Writer) PutLIntString(s string) {
	w.PutLInt(int32(len(s)))
	w.grow(len(s))
	w.buf = append(w.buf, s...)
}

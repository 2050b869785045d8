package protocol

import "github.com/pkg/errors"

// Errors returned while decoding packet data. Failure sites wrap these with
// the field and offset that failed, so match them with errors.Is.
var (
	// ErrOutOfData is returned when a read needs more bytes than remain.
	ErrOutOfData = errors.New("out of data")
	// ErrMalformedVarInt is returned when a varint's continuation run is
	// longer than its width allows (5 bytes for 32 bits, 10 for 64 bits).
	ErrMalformedVarInt = errors.New("malformed varint")
)

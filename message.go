package bedrock

import (
	"github.com/Zereker/bedrock/packet"
	"github.com/Zereker/bedrock/protocol"
)

// Codec turns packets into bytes and back. *packet.Registry is the default
// implementation; supply another to support packets it does not know.
//
// A received websocket message may hold several packets back to back, so
// Decode is called repeatedly on the same Reader until it is exhausted.
// Decode must read exactly one packet.
type Codec interface {
	// Decode reads one packet, ID first, from r.
	Decode(r *protocol.Reader) (packet.Packet, error)
	// Encode writes pk's ID and payload to w.
	Encode(w *protocol.Writer, pk packet.Packet) error
}

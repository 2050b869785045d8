// Package packet defines the payloads of the Bedrock packets this client
// sends and understands, and the Registry that maps packet IDs to them.
package packet

import "github.com/Zereker/bedrock/protocol"

// Packet is a single Bedrock packet. Marshal and Unmarshal handle the
// payload only; the leading ID is written and read by the Registry.
type Packet interface {
	// ID returns the packet ID written before the payload.
	ID() protocol.ID
	// Marshal appends the payload fields to w in wire order.
	Marshal(w *protocol.Writer)
	// Unmarshal reads the payload fields from r in wire order.
	Unmarshal(r *protocol.Reader) error
}

package packet

import (
	"github.com/Zereker/bedrock/protocol"
	"github.com/pkg/errors"
)

// ErrUnknownPacket is returned when decoding a packet whose ID has no
// registered payload. Packets carry no length, so the rest of the frame
// cannot be recovered.
var ErrUnknownPacket = errors.New("unknown packet")

// Registry binds packet IDs to constructors for their payloads.
// A Registry must not be modified while it is in use for decoding.
type Registry struct {
	packets map[protocol.ID]func() Packet
}

// NewRegistry returns a Registry holding every packet in this package.
func NewRegistry() *Registry {
	r := &Registry{packets: make(map[protocol.ID]func() Packet)}
	r.Register(protocol.IDLogin, func() Packet { return &Login{} })
	r.Register(protocol.IDPlayStatus, func() Packet { return &PlayStatus{} })
	r.Register(protocol.IDDisconnect, func() Packet { return &Disconnect{} })
	r.Register(protocol.IDResourcePackClientResponse, func() Packet { return &ResourcePackClientResponse{} })
	r.Register(protocol.IDText, func() Packet { return &Text{} })
	r.Register(protocol.IDSetTime, func() Packet { return &SetTime{} })
	r.Register(protocol.IDMovePlayer, func() Packet { return &MovePlayer{} })
	r.Register(protocol.IDRequestChunkRadius, func() Packet { return &RequestChunkRadius{} })
	r.Register(protocol.IDChunkRadiusUpdated, func() Packet { return &ChunkRadiusUpdated{} })
	return r
}

// Register binds id to fn, replacing any previous binding.
func (r *Registry) Register(id protocol.ID, fn func() Packet) {
	r.packets[id] = fn
}

// Lookup returns a new, empty packet for id.
func (r *Registry) Lookup(id protocol.ID) (Packet, bool) {
	fn, ok := r.packets[id]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Encode writes pk's ID followed by its payload. Packets with a Validate
// method are checked first, and nothing is written when the check fails.
func (r *Registry) Encode(w *protocol.Writer, pk Packet) error {
	if pk == nil {
		return errors.New("encode nil packet")
	}
	if v, ok := pk.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return errors.Wrapf(err, "encode %s", pk.ID())
		}
	}
	w.PutID(pk.ID())
	pk.Marshal(w)
	return nil
}

// Decode reads one packet from r. On failure the error names the packet and
// the packet is discarded.
func (r *Registry) Decode(rd *protocol.Reader) (Packet, error) {
	start := rd.Offset()
	id, err := rd.ReadID()
	if err != nil {
		return nil, errors.Wrap(err, "read packet id")
	}

	pk, ok := r.Lookup(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPacket, "%s at offset %d", id, start)
	}
	if err := pk.Unmarshal(rd); err != nil {
		return nil, errors.Wrapf(err, "decode %s at offset %d", id, start)
	}
	return pk, nil
}

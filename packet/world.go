package packet

import "github.com/Zereker/bedrock/protocol"

// RequestChunkRadius asks the server for a view distance in chunks.
type RequestChunkRadius struct {
	Radius int32
}

func (*RequestChunkRadius) ID() protocol.ID { return protocol.IDRequestChunkRadius }

func (pk *RequestChunkRadius) Marshal(w *protocol.Writer) {
	w.PutVarInt(pk.Radius)
}

func (pk *RequestChunkRadius) Unmarshal(r *protocol.Reader) (err error) {
	pk.Radius, err = r.ReadVarInt()
	return
}

// ChunkRadiusUpdated is the server's answer to RequestChunkRadius.
type ChunkRadiusUpdated struct {
	Radius int32
}

func (*ChunkRadiusUpdated) ID() protocol.ID { return protocol.IDChunkRadiusUpdated }

func (pk *ChunkRadiusUpdated) Marshal(w *protocol.Writer) {
	w.PutVarInt(pk.Radius)
}

func (pk *ChunkRadiusUpdated) Unmarshal(r *protocol.Reader) (err error) {
	pk.Radius, err = r.ReadVarInt()
	return
}

// SetTime sets the world time in ticks.
type SetTime struct {
	Time int32
}

func (*SetTime) ID() protocol.ID { return protocol.IDSetTime }

func (pk *SetTime) Marshal(w *protocol.Writer) {
	w.PutVarInt(pk.Time)
}

func (pk *SetTime) Unmarshal(r *protocol.Reader) (err error) {
	pk.Time, err = r.ReadVarInt()
	return
}

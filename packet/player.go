package packet

import "github.com/Zereker/bedrock/protocol"

// MovePlayer modes.
const (
	MoveModeNormal byte = iota
	MoveModeReset
	MoveModeTeleport
	MoveModeRotation
)

// MovePlayer reports the player's position and rotation.
type MovePlayer struct {
	RuntimeEntityID       uint64
	X, Y, Z               float32
	Pitch, Yaw, HeadYaw   float32
	Mode                  byte
	OnGround              bool
	RiddenRuntimeEntityID uint64
}

func (*MovePlayer) ID() protocol.ID { return protocol.IDMovePlayer }

func (pk *MovePlayer) Marshal(w *protocol.Writer) {
	w.PutUnsignedVarLong(pk.RuntimeEntityID)
	w.PutLFloat(pk.X)
	w.PutLFloat(pk.Y)
	w.PutLFloat(pk.Z)
	w.PutLFloat(pk.Pitch)
	w.PutLFloat(pk.Yaw)
	w.PutLFloat(pk.HeadYaw)
	w.PutByte(pk.Mode)
	w.PutBool(pk.OnGround)
	w.PutUnsignedVarLong(pk.RiddenRuntimeEntityID)
}

func (pk *MovePlayer) Unmarshal(r *protocol.Reader) error {
	var err error
	if pk.RuntimeEntityID, err = r.ReadUnsignedVarLong(); err != nil {
		return err
	}
	for _, f := range []*float32{&pk.X, &pk.Y, &pk.Z, &pk.Pitch, &pk.Yaw, &pk.HeadYaw} {
		if *f, err = r.ReadLFloat(); err != nil {
			return err
		}
	}
	if pk.Mode, err = r.ReadByte(); err != nil {
		return err
	}
	if pk.OnGround, err = r.ReadBool(); err != nil {
		return err
	}
	pk.RiddenRuntimeEntityID, err = r.ReadUnsignedVarLong()
	return err
}

package packet

import (
	"github.com/Zereker/bedrock/protocol"
	"github.com/pkg/errors"
)

// ProtocolVersion is the Bedrock protocol version sent in Login.
const ProtocolVersion = 390

// Login is the first packet a client sends. ChainData and SkinData are the
// already-encoded identity and client-data tokens.
type Login struct {
	Protocol  int32
	ChainData string
	SkinData  string
}

func (*Login) ID() protocol.ID { return protocol.IDLogin }

// Marshal writes the protocol version, then the connection request: its
// total length followed by both tokens, each with a 4-byte length.
func (pk *Login) Marshal(w *protocol.Writer) {
	w.PutInt(pk.Protocol)
	w.PutUnsignedVarInt(uint32(len(pk.ChainData) + len(pk.SkinData) + 8))
	w.PutLIntString(pk.ChainData)
	w.PutLIntString(pk.SkinData)
}

func (pk *Login) Unmarshal(r *protocol.Reader) error {
	var err error
	if pk.Protocol, err = r.ReadInt(); err != nil {
		return err
	}
	size, err := r.ReadUnsignedVarInt()
	if err != nil {
		return err
	}
	if pk.ChainData, err = r.ReadLIntString(); err != nil {
		return err
	}
	if pk.SkinData, err = r.ReadLIntString(); err != nil {
		return err
	}
	if want := len(pk.ChainData) + len(pk.SkinData) + 8; int(size) != want {
		return errors.Errorf("connection request length %d, tokens need %d", size, want)
	}
	return nil
}

// PlayStatus values.
const (
	PlayStatusLoginSuccess int32 = iota
	PlayStatusLoginFailedClient
	PlayStatusLoginFailedServer
	PlayStatusPlayerSpawn
)

// PlayStatus is sent by the server to report login progress.
type PlayStatus struct {
	Status int32
}

func (*PlayStatus) ID() protocol.ID { return protocol.IDPlayStatus }

func (pk *PlayStatus) Marshal(w *protocol.Writer) {
	w.PutInt(pk.Status)
}

func (pk *PlayStatus) Unmarshal(r *protocol.Reader) (err error) {
	pk.Status, err = r.ReadInt()
	return
}

// Disconnect is sent by the server when it closes the session.
type Disconnect struct {
	HideDisconnectScreen bool
	// Message is only present on the wire when the screen is shown.
	Message string
}

func (*Disconnect) ID() protocol.ID { return protocol.IDDisconnect }

func (pk *Disconnect) Marshal(w *protocol.Writer) {
	w.PutBool(pk.HideDisconnectScreen)
	if !pk.HideDisconnectScreen {
		w.PutString(pk.Message)
	}
}

func (pk *Disconnect) Unmarshal(r *protocol.Reader) error {
	var err error
	if pk.HideDisconnectScreen, err = r.ReadBool(); err != nil {
		return err
	}
	if !pk.HideDisconnectScreen {
		pk.Message, err = r.ReadString()
	}
	return err
}

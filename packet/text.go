package packet

import "github.com/Zereker/bedrock/protocol"

// Text types.
const (
	TextTypeRaw byte = iota
	TextTypeChat
	TextTypeTranslation
	TextTypePopup
	TextTypeJukeboxPopup
	TextTypeTip
	TextTypeSystem
	TextTypeWhisper
	TextTypeAnnouncement
)

// Text carries a chat message.
type Text struct {
	Type             byte
	NeedsTranslation bool
	SourceName       string
	Message          string
	XUID             string
	PlatformChatID   string
}

func (*Text) ID() protocol.ID { return protocol.IDText }

func (pk *Text) Marshal(w *protocol.Writer) {
	w.PutByte(pk.Type)
	w.PutBool(pk.NeedsTranslation)
	w.PutString(pk.SourceName)
	w.PutString(pk.Message)
	w.PutString(pk.XUID)
	w.PutString(pk.PlatformChatID)
}

func (pk *Text) Unmarshal(r *protocol.Reader) error {
	var err error
	if pk.Type, err = r.ReadByte(); err != nil {
		return err
	}
	if pk.NeedsTranslation, err = r.ReadBool(); err != nil {
		return err
	}
	for _, s := range []*string{&pk.SourceName, &pk.Message, &pk.XUID, &pk.PlatformChatID} {
		if *s, err = r.ReadString(); err != nil {
			return err
		}
	}
	return nil
}

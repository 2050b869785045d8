package protocol

import "fmt"

// ID identifies a packet kind. It is written as an unsigned varint at the
// start of every packet.
type ID uint32

// Packet IDs of Bedrock protocol version 390.
const (
	IDLogin                      ID = 0x01
	IDPlayStatus                 ID = 0x02
	IDServerToClientHandshake    ID = 0x03
	IDClientToServerHandshake    ID = 0x04
	IDDisconnect                 ID = 0x05
	IDResourcePacksInfo          ID = 0x06
	IDResourcePackStack          ID = 0x07
	IDResourcePackClientResponse ID = 0x08
	IDText                       ID = 0x09
	IDSetTime                    ID = 0x0a
	IDStartGame                  ID = 0x0b
	IDAddPlayer                  ID = 0x0c
	IDAddEntity                  ID = 0x0d
	IDRemoveEntity               ID = 0x0e
	IDAddItemEntity              ID = 0x0f
	IDTakeItemEntity             ID = 0x11
	IDMoveEntityAbsolute         ID = 0x12
	IDMovePlayer                 ID = 0x13
	IDUpdateBlock                ID = 0x15
	IDLevelEvent                 ID = 0x19
	IDEntityEvent                ID = 0x1b
	IDUpdateAttributes           ID = 0x1d
	IDSetEntityData              ID = 0x27
	IDSetEntityMotion            ID = 0x28
	IDSetHealth                  ID = 0x2a
	IDSetSpawnPosition           ID = 0x2b
	IDRespawn                    ID = 0x2d
	IDLevelChunk                 ID = 0x3a
	IDSetDifficulty              ID = 0x3c
	IDRequestChunkRadius         ID = 0x45
	IDChunkRadiusUpdated         ID = 0x46
)

var idNames = map[ID]string{
	IDLogin:                      "Login",
	IDPlayStatus:                 "PlayStatus",
	IDServerToClientHandshake:    "ServerToClientHandshake",
	IDClientToServerHandshake:    "ClientToServerHandshake",
	IDDisconnect:                 "Disconnect",
	IDResourcePacksInfo:          "ResourcePacksInfo",
	IDResourcePackStack:          "ResourcePackStack",
	IDResourcePackClientResponse: "ResourcePackClientResponse",
	IDText:                       "Text",
	IDSetTime:                    "SetTime",
	IDStartGame:                  "StartGame",
	IDAddPlayer:                  "AddPlayer",
	IDAddEntity:                  "AddEntity",
	IDRemoveEntity:               "RemoveEntity",
	IDAddItemEntity:              "AddItemEntity",
	IDTakeItemEntity:             "TakeItemEntity",
	IDMoveEntityAbsolute:         "MoveEntityAbsolute",
	IDMovePlayer:                 "MovePlayer",
	IDUpdateBlock:                "UpdateBlock",
	IDLevelEvent:                 "LevelEvent",
	IDEntityEvent:                "EntityEvent",
	IDUpdateAttributes:           "UpdateAttributes",
	IDSetEntityData:              "SetEntityData",
	IDSetEntityMotion:            "SetEntityMotion",
	IDSetHealth:                  "SetHealth",
	IDSetSpawnPosition:           "SetSpawnPosition",
	IDRespawn:                    "Respawn",
	IDLevelChunk:                 "LevelChunk",
	IDSetDifficulty:              "SetDifficulty",
	IDRequestChunkRadius:         "RequestChunkRadius",
	IDChunkRadiusUpdated:         "ChunkRadiusUpdated",
}

// String returns the packet name, or its hex value if the ID is unknown.
func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return fmt.Sprintf("ID(%#x)", uint32(id))
}

// Known reports whether id is part of the registry.
func (id ID) Known() bool {
	_, ok := idNames[id]
	return ok
}

// PutID writes the packet ID that starts a packet.
func (w *Writer) PutID(id ID) {
	w.PutUnsignedVarInt(uint32(id))
}

// ReadID reads the packet ID that starts a packet.
func (r *Reader) ReadID() (ID, error) {
	v, err := r.ReadUnsignedVarInt()
	return ID(v), err
}

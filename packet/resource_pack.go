package packet

import (
	"math"

	"github.com/Zereker/bedrock/protocol"
	"github.com/pkg/errors"
)

// ResourcePackClientResponse statuses.
const (
	PackResponseRefused byte = iota + 1
	PackResponseSendPacks
	PackResponseAllPacksDownloaded
	PackResponseCompleted
)

// ResourcePackClientResponse answers the server's resource pack offer.
type ResourcePackClientResponse struct {
	Status  byte
	PackIDs []string
}

func (*ResourcePackClientResponse) ID() protocol.ID {
	return protocol.IDResourcePackClientResponse
}

// Validate reports whether the pack IDs fit the 16-bit count field.
func (pk *ResourcePackClientResponse) Validate() error {
	if len(pk.PackIDs) > math.MaxInt16 {
		return errors.Errorf("%d pack ids exceed the limit of %d", len(pk.PackIDs), math.MaxInt16)
	}
	return nil
}

func (pk *ResourcePackClientResponse) Marshal(w *protocol.Writer) {
	w.PutByte(pk.Status)
	w.PutShort(int16(len(pk.PackIDs)))
	for _, id := range pk.PackIDs {
		w.PutString(id)
	}
}

func (pk *ResourcePackClientResponse) Unmarshal(r *protocol.Reader) error {
	var err error
	if pk.Status, err = r.ReadByte(); err != nil {
		return err
	}
	count, err := r.ReadShort()
	if err != nil {
		return err
	}
	if count < 0 {
		return errors.Errorf("negative pack count %d", count)
	}

	// each ID takes at least one byte
	if int(count) > r.Len() {
		return errors.Wrapf(protocol.ErrOutOfData, "%d pack ids in %d bytes", count, r.Len())
	}
	pk.PackIDs = make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		id, err := r.ReadString()
		if err != nil {
			return err
		}
		pk.PackIDs = append(pk.PackIDs, id)
	}
	return nil
}

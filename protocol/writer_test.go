package protocol_test

import (
	"math"
	"testing"

	"github.com/Zereker/bedrock/protocol"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Run("Endianness", func(t *testing.T) {
		w := protocol.NewWriter(0)
		w.PutShort(0x0102)
		w.PutLShort(0x0102)
		w.PutInt(0x01020304)
		w.PutLInt(0x01020304)
		require.Equal(t, []byte{
			0x01, 0x02,
			0x02, 0x01,
			0x01, 0x02, 0x03, 0x04,
			0x04, 0x03, 0x02, 0x01,
		}, w.Bytes())
	})

	t.Run("Floats", func(t *testing.T) {
		w := protocol.NewWriter(0)
		w.PutLFloat(1)
		w.PutFloat(1)
		require.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f, 0x3f, 0x80, 0x00, 0x00}, w.Bytes())
	})

	t.Run("Strings", func(t *testing.T) {
		w := protocol.NewWriter(0)
		w.PutString("hi")
		w.PutLIntString("hi")
		require.Equal(t, []byte{0x02, 'h', 'i', 0x02, 0x00, 0x00, 0x00, 'h', 'i'}, w.Bytes())
	})

	t.Run("Signed", func(t *testing.T) {
		w := protocol.NewWriter(0)
		w.PutVarInt(-1)
		w.PutVarLong(-1)
		w.PutVarInt(300)
		require.Equal(t, []byte{0x01, 0x01, 0xd8, 0x04}, w.Bytes())
	})

	t.Run("BytesExcludesSpareCapacity", func(t *testing.T) {
		w := protocol.NewWriter(64)
		w.PutByte(7)
		w.PutBool(true)
		require.Equal(t, 2, w.Len())
		require.Len(t, w.Bytes(), 2)
		require.Equal(t, 64, w.Cap())
	})

	t.Run("Growth", func(t *testing.T) {
		w := protocol.NewWriter(1)
		for i := 0; i < 100; i++ {
			w.PutByte(byte(i))
		}
		require.Equal(t, 100, w.Len())
		require.GreaterOrEqual(t, w.Cap(), 100)
		for i, b := range w.Bytes() {
			require.Equal(t, byte(i), b)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		w := protocol.NewWriter(16)
		w.PutLLong(math.MaxInt64)
		w.Reset()
		require.Equal(t, 0, w.Len())
		require.Equal(t, 16, w.Cap())
	})

	t.Run("MixedFields", func(t *testing.T) {
		w := protocol.NewWriter(0)
		w.PutID(protocol.IDText)
		w.PutUnsignedVarInt(300)
		require.Equal(t, []byte{0x09, 0xac, 0x02}, w.Bytes())

		r := protocol.NewReader(w.Bytes())
		id, err := r.ReadID()
		require.NoError(t, err)
		require.Equal(t, protocol.IDText, id)
		v, err := r.ReadUnsignedVarInt()
		require.NoError(t, err)
		require.Equal(t, uint32(300), v)
		require.Equal(t, 0, r.Len())
	})
}

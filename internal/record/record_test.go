package record

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/arenadb/internal/alias/bx"
)

func encode(t *testing.T, rec Record, size int) []byte {
	t.Helper()
	buf := make([]byte, size)
	w := bx.NewWriter(buf)
	require.NoError(t, rec.Serialize(w))
	return buf[:w.Pos()]
}

func TestUser_RoundTrip(t *testing.T) {
	users := []User{
		NewUser(42, "user", "email"),
		NewUser(0, "", ""),
		NewUser(math.MinInt64, "ünïcødé", "a@example.com"),
		NewUser(math.MaxInt64, strings.Repeat("u", MaxTextLen), strings.Repeat("e", MaxTextLen)),
	}

	for _, u := range users {
		buf := encode(t, u, 1024)

		r := bx.NewReader(buf)
		got, err := DecodeUser(r)
		require.NoError(t, err)
		require.Equal(t, u, got)
		// consumed exactly what was produced
		require.Equal(t, len(buf), r.Pos())
	}
}

func TestCar_RoundTrip(t *testing.T) {
	cars := []Car{
		NewCar("c-1", "Tesla"),
		NewCar("", ""),
		NewCar(strings.Repeat("x", MaxTextLen), "Škoda"),
	}

	for _, c := range cars {
		buf := encode(t, c, 1024)

		r := bx.NewReader(buf)
		got, err := DecodeCar(r)
		require.NoError(t, err)
		require.Equal(t, c, got)
		require.Equal(t, len(buf), r.Pos())
	}
}

func TestUser_Layout(t *testing.T) {
	buf := encode(t, NewUser(1, "ab", "c"), 64)

	want := []byte{
		1, 0, 0, 0, 0, 0, 0, 0, // id LE
		2, 'a', 'b', // username
		1, 'c', // email
	}
	require.Equal(t, want, buf)
}

func TestCar_Layout(t *testing.T) {
	buf := encode(t, NewCar("7", "VW"), 64)
	require.Equal(t, []byte{1, '7', 2, 'V', 'W'}, buf)
}

func TestSerialize_SequentialRecords(t *testing.T) {
	buf := make([]byte, 256)
	w := bx.NewWriter(buf)
	require.NoError(t, NewUser(1, "a", "b").Serialize(w))
	require.NoError(t, NewUser(2, "c", "d").Serialize(w))

	r := bx.NewReader(buf[:w.Pos()])
	first, err := DecodeUser(r)
	require.NoError(t, err)
	second, err := DecodeUser(r)
	require.NoError(t, err)

	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
	require.Zero(t, r.Remaining())
}

func TestSerialize_TextTooLong(t *testing.T) {
	long := strings.Repeat("a", MaxTextLen+1)

	w := bx.NewWriter(make([]byte, 4096))
	err := NewUser(1, long, "e").Serialize(w)
	require.ErrorIs(t, err, ErrTextTooLong)

	err = NewCar("id", long).Serialize(bx.NewWriter(make([]byte, 4096)))
	require.ErrorIs(t, err, ErrTextTooLong)

	// multi-byte runes count in encoded bytes, not characters
	runes := strings.Repeat("é", 128) // 256 bytes
	err = NewCar(runes, "b").Serialize(bx.NewWriter(make([]byte, 4096)))
	require.ErrorIs(t, err, ErrTextTooLong)
}

func TestSerialize_InvalidText(t *testing.T) {
	err := NewCar(string([]byte{0xff, 0xfe}), "b").Serialize(bx.NewWriter(make([]byte, 64)))
	require.ErrorIs(t, err, ErrInvalidText)
}

func TestSerialize_BufferFull(t *testing.T) {
	t.Run("no room for id", func(t *testing.T) {
		err := NewUser(1, "a", "b").Serialize(bx.NewWriter(make([]byte, 4)))
		require.ErrorIs(t, err, ErrBufferFull)
		require.ErrorIs(t, err, bx.ErrBufferFull)
	})

	t.Run("no room for text payload", func(t *testing.T) {
		buf := make([]byte, 10)
		w := bx.NewWriter(buf)
		err := NewUser(1, "abc", "b").Serialize(w)
		require.ErrorIs(t, err, ErrBufferFull)
		// length prefix was not written without its payload
		require.Equal(t, 8, w.Pos())
		require.Equal(t, byte(0), buf[8])
	})

	t.Run("empty region", func(t *testing.T) {
		err := NewCar("", "").Serialize(bx.NewWriter(nil))
		require.ErrorIs(t, err, ErrBufferFull)
	})
}

func TestDecode_MalformedBuffer(t *testing.T) {
	full := encode(t, NewUser(9, "name", "mail"), 64)

	t.Run("truncated id", func(t *testing.T) {
		_, err := DecodeUser(bx.NewReader(full[:5]))
		require.ErrorIs(t, err, ErrMalformedBuffer)
	})

	t.Run("missing length byte", func(t *testing.T) {
		_, err := DecodeUser(bx.NewReader(full[:8]))
		require.ErrorIs(t, err, ErrMalformedBuffer)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := DecodeUser(bx.NewReader(full[:len(full)-1]))
		require.ErrorIs(t, err, ErrMalformedBuffer)
	})

	t.Run("empty car", func(t *testing.T) {
		_, err := DecodeCar(bx.NewReader(nil))
		require.ErrorIs(t, err, ErrMalformedBuffer)
	})
}

func TestDecode_InvalidText(t *testing.T) {
	buf := []byte{2, 0xc3, 0x28, 1, 'x'}
	_, err := DecodeCar(bx.NewReader(buf))
	require.ErrorIs(t, err, ErrInvalidText)
}

func TestRecord_TableAndString(t *testing.T) {
	u := NewUser(1, "alice", "a@example.com")
	c := NewCar("c1", "Volvo")

	require.Equal(t, TableUser, u.Table())
	require.Equal(t, TableCar, c.Table())
	require.Equal(t, `{id: 1, username: "alice", email: "a@example.com"}`, u.String())
	require.Equal(t, `{id: "c1", brand: "Volvo"}`, c.String())
}

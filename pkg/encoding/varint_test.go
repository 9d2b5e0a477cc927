package encoding

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactSize(t *testing.T) {
	values := []uint64{1, 0xfc, 0xfd, 1<<16 - 1, 1 << 16, 1<<32 - 1, 1 << 32, 1<<64 - 1}

	buf := new(bytes.Buffer)
	for _, v := range values {
		require.NoError(t, WriteVarInt(buf, v))
	}

	for _, want := range values {
		got, err := ReadVarInt(buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEncodeSize(t *testing.T) {
	sizes := map[uint64]int{
		1:         1,
		0xfc:      1,
		0xfd:      3,
		1<<16 - 1: 3,
		1 << 16:   5,
		1<<32 - 1: 5,
		1 << 32:   9,
		1<<64 - 1: 9,
	}

	for v, want := range sizes {
		buf := new(bytes.Buffer)
		require.NoError(t, WriteVarInt(buf, v))
		assert.Equal(t, want, buf.Len(), v)
	}
}

func TestNonCanonical(t *testing.T) {
	// 0xfd discriminator followed by a value that fits in a single byte
	buf := bytes.NewBuffer([]byte{0xfd, 0x10, 0x00})
	_, err := ReadVarInt(buf)
	assert.Error(t, err)
}

func TestVarBytes(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteVarBytes(buf, []byte("ecash")))
	require.NoError(t, WriteString(buf, "merchant-a"))

	var b []byte
	require.NoError(t, ReadVarBytes(buf, &b))
	assert.Equal(t, []byte("ecash"), b)

	s, err := ReadString(buf)
	require.NoError(t, err)
	assert.Equal(t, "merchant-a", s)
}

func TestVarBytesTooLarge(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteVarInt(buf, 100))
	_, _ = buf.Write([]byte{1, 2, 3})

	var b []byte
	assert.Error(t, ReadVarBytes(buf, &b))
}

func TestVarBytesSlice(t *testing.T) {
	in := [][]byte{[]byte("left"), {}, []byte("right")}

	buf := new(bytes.Buffer)
	require.NoError(t, WriteVarBytesSlice(buf, in))

	out, err := ReadVarBytesSlice(buf)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, in[0], out[0])
	assert.Empty(t, out[1])
	assert.Equal(t, in[2], out[2])
}

func TestBigInt(t *testing.T) {
	v, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	buf := new(bytes.Buffer)
	require.NoError(t, WriteBigInt(buf, v))
	require.NoError(t, WriteBigInt(buf, nil))
	assert.Error(t, WriteBigInt(new(bytes.Buffer), big.NewInt(-1)))

	got, err := ReadBigInt(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Cmp(got))

	got, err = ReadBigInt(buf)
	require.NoError(t, err)
	assert.Nil(t, got)
}

package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoIntn(t *testing.T) {
	for i := 0; i < 100; i++ {
		v, err := Crypto.Intn(10)
		require.NoError(t, err)
		assert.True(t, v >= 0 && v < 10)
	}

	_, err := Crypto.Intn(0)
	assert.Equal(t, ErrInvalidBound, err)
}

func TestCryptoRead(t *testing.T) {
	b := make([]byte, 32)
	n, err := Crypto.Read(b)
	require.NoError(t, err)
	assert.Equal(t, 32, n)
	assert.NotEqual(t, make([]byte, 32), b)
}

func TestSequence(t *testing.T) {
	s := NewSequence(1, 0, 7)

	v, err := s.Intn(2)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	bit, err := Bit(s)
	require.NoError(t, err)
	assert.False(t, bit)

	// 7 does not fit in [0, 5)
	_, err = s.Intn(5)
	assert.Error(t, err)

	assert.Equal(t, 0, s.Remaining())
	_, err = s.Intn(2)
	assert.Equal(t, ErrExhausted, err)
}

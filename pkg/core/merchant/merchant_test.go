package merchant

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/dusk-network/dusk-ecash/pkg/core/authority"
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mint(t *testing.T, a *authority.KeyAuthority) *coin.Coin {
	c, err := coin.New("alice", 20, coin.DefaultParams(), random.Crypto)
	require.NoError(t, err)

	blinded, err := c.Blind(a.PublicKey(), rand.Reader)
	require.NoError(t, err)

	s, err := a.BlindSign(blinded)
	require.NoError(t, err)
	require.NoError(t, c.Unblind(s, a.PublicKey()))
	return c
}

func setup(t *testing.T, sides ...int) (*authority.KeyAuthority, *random.Sequence, *Acceptor) {
	a, err := authority.Generate(1024, hash.Sha256, rand.Reader)
	require.NoError(t, err)

	seq := random.NewSequence(sides...)
	m, err := NewAcceptor("shop", a.PublicKey(), coin.DefaultParams(), seq)
	require.NoError(t, err)
	return a, seq, m
}

func TestAcceptDisclosesDrawnSide(t *testing.T) {
	a, _, m := setup(t, 0, 1)
	c := mint(t, a)

	left, err := m.Accept(c)
	require.NoError(t, err)
	assert.True(t, left.Equal(c.Left))
	assert.Equal(t, coin.StateSpent, c.State())

	// the same coin object can be presented again and re-rolls the side
	right, err := m.Accept(c)
	require.NoError(t, err)
	assert.True(t, right.Equal(c.Right))
	assert.Equal(t, "shop", m.Name())
}

func TestAcceptCorruptedShare(t *testing.T) {
	a, _, m := setup(t, 0)
	c := mint(t, a)
	c.Left[2][0] ^= 0x01

	_, err := m.Accept(c)
	assert.True(t, errors.Is(err, coin.ErrRISMismatch))
}

func TestAcceptChecksDisclosedSideOnly(t *testing.T) {
	a, _, m := setup(t, 1)
	c := mint(t, a)
	c.Left[2][0] ^= 0x01

	ris, err := m.Accept(c)
	require.NoError(t, err)
	assert.True(t, ris.Equal(c.Right))
}

func TestAcceptInvalidSignature(t *testing.T) {
	a, seq, m := setup(t, 0)
	c := mint(t, a)
	c.Signature = new(big.Int).Add(c.Signature, big.NewInt(1))

	_, err := m.Accept(c)
	assert.True(t, errors.Is(err, coin.ErrInvalidSignature))
	// no side was drawn
	assert.Equal(t, 1, seq.Remaining())
}

func TestAcceptUnsignedCoin(t *testing.T) {
	_, _, m := setup(t, 0)
	c, err := coin.New("alice", 20, coin.DefaultParams(), random.Crypto)
	require.NoError(t, err)

	_, err = m.Accept(c)
	assert.True(t, errors.Is(err, coin.ErrInvalidSignature))
}

func TestAcceptForeignAuthority(t *testing.T) {
	_, _, m := setup(t, 0)
	other, err := authority.Generate(1024, hash.Sha256, rand.Reader)
	require.NoError(t, err)

	_, err = m.Accept(mint(t, other))
	assert.True(t, errors.Is(err, coin.ErrInvalidSignature))
}

func TestAcceptWrongTag(t *testing.T) {
	a, _, _ := setup(t)
	p := coin.DefaultParams()
	p.Tag = "OTHER_BANK"

	m, err := NewAcceptor("shop", a.PublicKey(), p, random.NewSequence(0))
	require.NoError(t, err)

	_, err = m.Accept(mint(t, a))
	assert.True(t, errors.Is(err, coin.ErrMalformedCoin))
}

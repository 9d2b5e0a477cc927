package wallet

import (
	"crypto/rand"
	"testing"

	"github.com/dusk-network/dusk-ecash/pkg/core/authority"
	"github.com/dusk-network/dusk-ecash/pkg/core/bank"
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/ledger"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBank(t *testing.T, bits, copies int, rng random.Source) *bank.Bank {
	a, err := authority.Generate(bits, hash.Sha256, rand.Reader)
	require.NoError(t, err)

	l, err := ledger.New(ledger.DriverHashmap, "", 0)
	require.NoError(t, err)

	b, err := bank.New(a, l, coin.DefaultParams(), copies, rng)
	require.NoError(t, err)
	return b
}

func TestPurchase(t *testing.T) {
	b := newBank(t, 1024, 5, random.NewSequence(3))

	p, err := NewPurchase("alice", 20, b.Copies(), b.PublicKey(), b.Params(), random.Crypto)
	require.NoError(t, err)
	require.Len(t, p.Blinded(), 5)

	w, err := b.BeginWithdrawal("alice", 20, p.Blinded())
	require.NoError(t, err)

	factors, coins, err := p.Reveal(w.Selected)
	require.NoError(t, err)
	assert.Nil(t, factors[3])
	assert.Nil(t, coins[3])
	assert.NotNil(t, coins[0])

	_, _, err = p.Reveal(w.Selected)
	assert.Equal(t, ErrAlreadyRevealed, err)

	sig, err := w.Complete(factors, coins)
	require.NoError(t, err)

	c, err := p.Finalize(w.Selected, sig)
	require.NoError(t, err)
	assert.Equal(t, coin.StateUnblinded, c.State())
	assert.NoError(t, c.VerifySignature(b.PublicKey()))
}

func TestWithdraw(t *testing.T) {
	b := newBank(t, 1024, 3, random.Crypto)

	c, err := Withdraw(b, "bob", 7, random.Crypto)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), c.Amount)
	assert.Equal(t, "bob", c.Owner())
	assert.NoError(t, c.VerifySignature(b.PublicKey()))
}

func TestRevealOutOfRange(t *testing.T) {
	b := newBank(t, 1024, 2, random.Crypto)

	p, err := NewPurchase("alice", 20, b.Copies(), b.PublicKey(), b.Params(), random.Crypto)
	require.NoError(t, err)

	_, _, err = p.Reveal(2)
	assert.Error(t, err)

	_, err = p.Finalize(-1, nil)
	assert.Error(t, err)
}

package wallet

import (
	"testing"

	"github.com/dusk-network/dusk-ecash/pkg/core/bank"
	"github.com/dusk-network/dusk-ecash/pkg/core/detector"
	"github.com/dusk-network/dusk-ecash/pkg/core/merchant"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alice withdraws a coin worth 20 from a 2048 bit authority and spends it at
// two merchants, whose side bits are scripted.
func TestDoubleSpendScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("2048 bit key generation")
	}

	b := newBank(t, 2048, 10, random.Crypto)

	run := func(sideA, sideB int) (detector.Verdict, error) {
		c, err := Withdraw(b, "alice", 20, random.Crypto)
		require.NoError(t, err)

		ma, err := merchant.NewAcceptor("merchant-a", b.PublicKey(), b.Params(), random.NewSequence(sideA))
		require.NoError(t, err)
		mb, err := merchant.NewAcceptor("merchant-b", b.PublicKey(), b.Params(), random.NewSequence(sideB))
		require.NoError(t, err)

		risA, err := ma.Accept(c)
		require.NoError(t, err)
		risB, err := mb.Accept(c)
		require.NoError(t, err)

		v := detector.DetermineCheater(c.GUID, risA, risB)

		_, err = b.Deposit(c, risA, ma.Name())
		require.NoError(t, err)
		bv, err := b.Deposit(c, risB, mb.Name())
		if err == nil {
			assert.Equal(t, v.Outcome, bv.Outcome)
		}
		return v, err
	}

	// left then right
	v, err := run(0, 1)
	assert.Equal(t, detector.PayerDoubleSpent, v.Outcome)
	assert.Equal(t, "alice", v.Identity)
	assert.True(t, errors.Is(err, bank.ErrDoubleSpend))

	// both left
	v, err = run(0, 0)
	assert.Equal(t, detector.NoIdentityRevealed, v.Outcome)
	assert.Empty(t, v.Identity)
	assert.True(t, errors.Is(err, bank.ErrDuplicateDeposit))
}

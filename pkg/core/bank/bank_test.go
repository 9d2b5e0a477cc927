package bank

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/dusk-network/dusk-ecash/pkg/core/authority"
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/detector"
	"github.com/dusk-network/dusk-ecash/pkg/core/issuance"
	"github.com/dusk-network/dusk-ecash/pkg/core/ledger"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const copies = 4

func newBank(t *testing.T, rng random.Source) *Bank {
	a, err := authority.Generate(1024, hash.Sha256, rand.Reader)
	require.NoError(t, err)

	l, err := ledger.New(ledger.DriverHashmap, "", 0)
	require.NoError(t, err)

	b, err := New(a, l, coin.DefaultParams(), copies, rng)
	require.NoError(t, err)
	return b
}

func blindedBatch(t *testing.T, b *Bank, owners []string, amounts []uint64) []*coin.Coin {
	coins := make([]*coin.Coin, len(owners))
	for i := range owners {
		c, err := coin.New(owners[i], amounts[i], b.Params(), random.Crypto)
		require.NoError(t, err)

		_, err = c.Blind(b.PublicKey(), rand.Reader)
		require.NoError(t, err)
		coins[i] = c
	}
	return coins
}

func blindedValues(coins []*coin.Coin) []*big.Int {
	out := make([]*big.Int, len(coins))
	for i, c := range coins {
		out[i] = c.Blinded()
	}
	return out
}

func open(coins []*coin.Coin, selected int) ([]*big.Int, []*coin.Coin) {
	factors := make([]*big.Int, len(coins))
	opened := make([]*coin.Coin, len(coins))
	for i, c := range coins {
		if i != selected {
			factors[i] = c.BlindingFactor()
			opened[i] = c
		}
	}
	return factors, opened
}

func honest(n int) ([]string, []uint64) {
	owners := make([]string, n)
	amounts := make([]uint64, n)
	for i := range owners {
		owners[i] = "alice"
		amounts[i] = 20
	}
	return owners, amounts
}

func withdraw(t *testing.T, b *Bank) *coin.Coin {
	owners, amounts := honest(copies)
	coins := blindedBatch(t, b, owners, amounts)

	w, err := b.BeginWithdrawal("alice", 20, blindedValues(coins))
	require.NoError(t, err)

	sig, err := w.Complete(open(coins, w.Selected))
	require.NoError(t, err)

	c := coins[w.Selected]
	require.NoError(t, c.Unblind(sig, b.PublicKey()))
	return c
}

func TestWithdraw(t *testing.T) {
	b := newBank(t, random.NewSequence(2))
	owners, amounts := honest(copies)
	coins := blindedBatch(t, b, owners, amounts)

	w, err := b.BeginWithdrawal("alice", 20, blindedValues(coins))
	require.NoError(t, err)
	assert.Equal(t, 2, w.Selected)

	sig, err := w.Complete(open(coins, w.Selected))
	require.NoError(t, err)

	c := coins[2]
	require.NoError(t, c.Unblind(sig, b.PublicKey()))
	assert.NoError(t, c.VerifySignature(b.PublicKey()))
}

func TestWithdrawForeignIdentity(t *testing.T) {
	b := newBank(t, random.NewSequence(0))
	owners, amounts := honest(copies)
	owners[1] = "mallory"
	coins := blindedBatch(t, b, owners, amounts)

	w, err := b.BeginWithdrawal("alice", 20, blindedValues(coins))
	require.NoError(t, err)

	_, err = w.Complete(open(coins, w.Selected))
	var cve *issuance.CandidateVerificationError
	require.True(t, errors.As(err, &cve))
	assert.Equal(t, 1, cve.Index)
	assert.True(t, errors.Is(err, coin.ErrIdentityMismatch))

	// the round is gone
	_, err = w.Complete(open(coins, w.Selected))
	assert.Error(t, err)
}

func TestWithdrawInflatedAmount(t *testing.T) {
	b := newBank(t, random.NewSequence(0))
	owners, amounts := honest(copies)
	amounts[3] = 2000
	coins := blindedBatch(t, b, owners, amounts)

	w, err := b.BeginWithdrawal("alice", 20, blindedValues(coins))
	require.NoError(t, err)

	_, err = w.Complete(open(coins, w.Selected))
	assert.True(t, errors.Is(err, ErrAmountMismatch))
}

func TestWithdrawWrongCount(t *testing.T) {
	b := newBank(t, random.NewSequence(0))
	owners, amounts := honest(copies + 1)
	coins := blindedBatch(t, b, owners, amounts)

	_, err := b.BeginWithdrawal("alice", 20, blindedValues(coins))
	var wrong *issuance.WrongCandidateCountError
	assert.True(t, errors.As(err, &wrong))
}

func TestDeposit(t *testing.T) {
	b := newBank(t, random.NewSequence(0))
	c := withdraw(t, b)

	v, err := b.Deposit(c, c.RIS(coin.SideLeft), "shop")
	require.NoError(t, err)
	assert.Equal(t, detector.NoIdentityRevealed, v.Outcome)

	r, err := b.Record(c.GUID)
	require.NoError(t, err)
	assert.Equal(t, coin.StateSpent, r.State)
	assert.Equal(t, uint64(20), r.Amount)

	// same disclosure again
	_, err = b.Deposit(c, c.RIS(coin.SideLeft), "market")
	assert.True(t, errors.Is(err, ErrDuplicateDeposit))

	r, err = b.Record(c.GUID)
	require.NoError(t, err)
	assert.Equal(t, coin.StateSpent, r.State)
	assert.Len(t, r.Deposits, 1)

	// opposite side unmasks the payer
	v, err = b.Deposit(c, c.RIS(coin.SideRight), "market")
	assert.True(t, errors.Is(err, ErrDoubleSpend))
	assert.Equal(t, detector.PayerDoubleSpent, v.Outcome)
	assert.Equal(t, "alice", v.Identity)

	r, err = b.Record(c.GUID)
	require.NoError(t, err)
	assert.Equal(t, coin.StateFlagged, r.State)
	require.NotNil(t, r.Verdict)
	assert.Equal(t, "alice", r.Verdict.Identity)
	assert.Len(t, r.Deposits, 2)
}

func TestDepositRejects(t *testing.T) {
	b := newBank(t, random.NewSequence(0))
	c := withdraw(t, b)

	ris := c.RIS(coin.SideRight)
	ris[0][0] ^= 0xff
	_, err := b.Deposit(c, ris, "shop")
	assert.True(t, errors.Is(err, coin.ErrRISMismatch))

	c.Signature = big.NewInt(7)
	_, err = b.Deposit(c, c.RIS(coin.SideRight), "shop")
	assert.True(t, errors.Is(err, coin.ErrInvalidSignature))

	_, err = b.Record(c.GUID)
	assert.True(t, errors.Is(err, ledger.ErrNotFound))
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package wallet

import (
	"math/big"

	"github.com/dusk-network/dusk-ecash/pkg/core/bank"
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "wallet"})

// ErrAlreadyRevealed is returned when a purchase is opened twice.
var ErrAlreadyRevealed = errors.New("purchase already revealed")

// Purchase is the payer side of a withdrawal: a batch of blinded coins of
// which the bank will sign one.
type Purchase struct {
	pub      blind.PublicKey
	coins    []*coin.Coin
	revealed bool
}

// NewPurchase creates and blinds copies coins worth amount for identity.
func NewPurchase(identity string, amount uint64, copies int, pub blind.PublicKey, params coin.Params, rng random.Source) (*Purchase, error) {
	if copies < 1 {
		return nil, errors.Errorf("purchase needs at least one coin, got %d", copies)
	}

	p := &Purchase{pub: pub, coins: make([]*coin.Coin, copies)}
	for i := range p.coins {
		c, err := coin.New(identity, amount, params, rng)
		if err != nil {
			return nil, err
		}

		if _, err := c.Blind(pub, rng); err != nil {
			return nil, errors.Wrapf(err, "could not blind coin %d", i)
		}

		p.coins[i] = c
	}

	return p, nil
}

// Blinded returns the blinded documents in batch order.
func (p *Purchase) Blinded() []*big.Int {
	out := make([]*big.Int, len(p.coins))
	for i, c := range p.coins {
		out[i] = c.Blinded()
	}
	return out
}

// Reveal opens every coin except the selected one. The selected slot of
// both returned slices is nil.
func (p *Purchase) Reveal(selected int) ([]*big.Int, []*coin.Coin, error) {
	if selected < 0 || selected >= len(p.coins) {
		return nil, nil, errors.Errorf("selected index %d out of range", selected)
	}

	if p.revealed {
		return nil, nil, ErrAlreadyRevealed
	}
	p.revealed = true

	factors := make([]*big.Int, len(p.coins))
	coins := make([]*coin.Coin, len(p.coins))
	for i, c := range p.coins {
		if i == selected {
			continue
		}
		factors[i] = c.BlindingFactor()
		coins[i] = c
	}

	return factors, coins, nil
}

// Finalize unblinds the signature the bank returned for the selected coin.
func (p *Purchase) Finalize(selected int, blindSig *big.Int) (*coin.Coin, error) {
	if selected < 0 || selected >= len(p.coins) {
		return nil, errors.Errorf("selected index %d out of range", selected)
	}

	c := p.coins[selected]
	if err := c.Unblind(blindSig, p.pub); err != nil {
		return nil, err
	}

	log.WithField("guid", c.GUID).Debugln("coin unblinded")
	return c, nil
}

// Withdraw runs a full purchase against b.
func Withdraw(b *bank.Bank, identity string, amount uint64, rng random.Source) (*coin.Coin, error) {
	p, err := NewPurchase(identity, amount, b.Copies(), b.PublicKey(), b.Params(), rng)
	if err != nil {
		return nil, err
	}

	w, err := b.BeginWithdrawal(identity, amount, p.Blinded())
	if err != nil {
		return nil, err
	}

	factors, coins, err := p.Reveal(w.Selected)
	if err != nil {
		w.Abort()
		return nil, err
	}

	sig, err := w.Complete(factors, coins)
	if err != nil {
		return nil, err
	}

	return p.Finalize(w.Selected, sig)
}

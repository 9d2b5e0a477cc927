// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package bank

import (
	"math/big"

	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/issuance"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// Withdrawal is a cut-and-choose round opened for an account.
type Withdrawal struct {
	Identity string
	Amount   uint64
	// Selected is the candidate that will be signed. Its opening must never
	// be sent.
	Selected int

	pending *issuance.PendingIssuance
	copies  int
}

// BeginWithdrawal commits to the candidate that will be signed for the
// account identity.
func (b *Bank) BeginWithdrawal(identity string, amount uint64, blinded []*big.Int) (*Withdrawal, error) {
	if identity == "" || amount == 0 {
		return nil, errors.New("withdrawal needs an account and a positive amount")
	}

	selected, pending, err := b.issuer.BeginIssuance(blinded)
	if err != nil {
		return nil, err
	}

	return &Withdrawal{
		Identity: identity,
		Amount:   amount,
		Selected: selected,
		pending:  pending,
		copies:   b.issuer.Copies(),
	}, nil
}

// Complete checks every unselected coin is worth the withdrawn amount and
// opens to the account identity, then verifies the openings against the
// blinded values and signs the selected one. Any failure aborts the round.
func (w *Withdrawal) Complete(factors []*big.Int, coins []*coin.Coin) (*big.Int, error) {
	if len(coins) != w.copies {
		w.pending.Abort()
		return nil, &issuance.WrongCandidateCountError{Got: len(coins), Want: w.copies}
	}

	documents := make([][]byte, len(coins))
	for i, c := range coins {
		if i == w.Selected {
			continue
		}

		if err := w.checkCandidate(c); err != nil {
			w.pending.Abort()
			log.WithFields(logger.Fields{
				"index":    i,
				"selected": w.Selected,
			}).WithError(err).Warnln("withdrawal refused")
			return nil, &issuance.CandidateVerificationError{Index: i, Err: err}
		}

		documents[i] = c.Message()
	}

	sig, err := w.pending.VerifyAndSign(factors, documents)
	if err != nil {
		return nil, err
	}

	log.WithField("amount", w.Amount).Infoln("withdrawal signed")
	return sig, nil
}

func (w *Withdrawal) checkCandidate(c *coin.Coin) error {
	if c == nil {
		return issuance.ErrMissingOpening
	}

	if c.Amount != w.Amount {
		return errors.Wrapf(ErrAmountMismatch, "got %d, want %d", c.Amount, w.Amount)
	}

	return c.VerifyIdentity(w.Identity)
}

// Abort drops the round without signing.
func (w *Withdrawal) Abort() {
	w.pending.Abort()
}

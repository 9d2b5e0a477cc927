// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package bank

import (
	"time"

	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/detector"
	"github.com/dusk-network/dusk-ecash/pkg/core/ledger"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// Deposit books a coin handed in by merchant together with the disclosure
// it collected. A second deposit with a different disclosure flags the coin
// and returns ErrDoubleSpend along with the detector verdict.
func (b *Bank) Deposit(c *coin.Coin, ris coin.RIS, merchant string) (detector.Verdict, error) {
	none := detector.Verdict{GUID: c.GUID, Outcome: detector.NoIdentityRevealed, Slot: -1}

	if err := c.VerifySignature(b.PublicKey()); err != nil {
		return none, err
	}

	canonical, err := coin.Parse(c.String(), b.params.Tag)
	if err != nil {
		return none, err
	}

	if err := b.checkDisclosure(ris, canonical); err != nil {
		return none, err
	}

	l := log.WithFields(logger.Fields{
		"guid":     c.GUID,
		"merchant": merchant,
	})

	var (
		verdict = none
		flagged bool
	)

	err = b.ledger.Update(c.GUID, func(r *ledger.Record, found bool) error {
		if !found {
			r.Amount = c.Amount
			r.State = coin.StateSpent
			r.Deposits = []ledger.Deposit{{Merchant: merchant, RIS: ris, Time: time.Now()}}
			return nil
		}

		// a flagged record holds both sides, so any valid disclosure ends here
		for _, d := range r.Deposits {
			if d.RIS.Equal(ris) {
				return ErrDuplicateDeposit
			}
		}

		verdict = b.detector.DetermineCheater(c.GUID, r.Deposits[0].RIS, ris)
		r.State = coin.StateFlagged
		r.Verdict = &verdict
		r.Deposits = append(r.Deposits, ledger.Deposit{Merchant: merchant, RIS: ris, Time: time.Now()})
		flagged = true
		return nil
	})

	switch {
	case err == ErrDuplicateDeposit:
		l.Warnln("disclosure deposited twice")
		return none, err
	case err != nil:
		return none, err
	}

	if flagged {
		l.WithField("outcome", verdict.Outcome).Warnln(verdict.String())
		return verdict, errors.Wrap(ErrDoubleSpend, verdict.String())
	}

	l.WithField("amount", c.Amount).Infoln("coin deposited")
	return verdict, nil
}

// checkDisclosure requires ris to match one full side of the signed
// commitments.
func (b *Bank) checkDisclosure(ris coin.RIS, canonical coin.Canonical) error {
	if err := coin.VerifyRIS(b.params.Hash, ris, canonical.LeftHashes); err == nil {
		return nil
	}
	return coin.VerifyRIS(b.params.Hash, ris, canonical.RightHashes)
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/dusk-network/dusk-ecash/pkg/config"
	"github.com/dusk-network/dusk-ecash/pkg/core/bank"
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/detector"
	"github.com/dusk-network/dusk-ecash/pkg/core/ledger"
	"github.com/dusk-network/dusk-ecash/pkg/core/merchant"
	"github.com/dusk-network/dusk-ecash/pkg/util/diagnostics"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/dusk-network/dusk-ecash/pkg/wallet"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// exitInvariantViolation is the exit status of a run aborted by an
// unblinded signature that does not verify.
const exitInvariantViolation = 3

func simulateAction(ctx *cli.Context) error {
	done, err := setup(ctx)
	if err != nil {
		return err
	}
	defer done()

	identity := ctx.String(IdentityFlag.Name)
	if identity == "" {
		if identity, err = promptIdentity(); err != nil {
			return err
		}
	}

	merchants := ctx.Int(MerchantsFlag.Name)
	if merchants < 1 {
		return errors.New("at least one merchant is needed")
	}

	sides, err := parseSides(ctx.String(SidesFlag.Name), merchants)
	if err != nil {
		return err
	}

	params, err := coinParams()
	if err != nil {
		return err
	}

	a, err := loadAuthority()
	if err != nil {
		return err
	}

	r := config.Get()
	l, err := ledger.New(r.Ledger.Driver, r.Ledger.Dir, r.Ledger.FilterCapacity)
	if err != nil {
		return err
	}
	defer func() {
		diagnostics.LogError("could not close ledger", l.Close())
	}()

	b, err := bank.New(a, l, params, r.Issuance.Copies, random.Crypto)
	if err != nil {
		return err
	}

	c, err := wallet.Withdraw(b, identity, ctx.Uint64(AmountFlag.Name), random.Crypto)
	if err != nil {
		return exitOnInvariant(err)
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "withdrew coin %s worth %d out of %d candidates\n", c.GUID, c.Amount, b.Copies())

	var first coin.RIS
	for i := 0; i < merchants; i++ {
		m, err := merchant.NewAcceptor(fmt.Sprintf("merchant-%d", i+1), b.PublicKey(), params, sides[i])
		if err != nil {
			return err
		}

		ris, err := m.Accept(c)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"merchant": m.Name(),
			"ris":      formatRIS(ris),
		}).Debugln("disclosure collected")

		if i == 0 {
			first = ris
		} else {
			v := detector.New(params.Hash).DetermineCheater(c.GUID, first, ris)
			fmt.Fprintf(w, "%s compared with %s: %s\n", m.Name(), "merchant-1", v.Outcome)
		}

		v, err := b.Deposit(c, ris, m.Name())
		switch {
		case err == nil:
			fmt.Fprintf(w, "%s deposited coin %s\n", m.Name(), c.GUID)
		case errors.Is(err, bank.ErrDoubleSpend):
			fmt.Fprintf(w, "%s deposit refused: %s\n", m.Name(), v)
		case errors.Is(err, bank.ErrDuplicateDeposit):
			fmt.Fprintf(w, "%s deposit refused: disclosure already deposited, %s\n", m.Name(), v)
		default:
			return err
		}
	}

	return nil
}

// exitOnInvariant turns an unblinding invariant violation into an exit error.
// The action returns it, so deferred cleanup has run by the time the app exits.
func exitOnInvariant(err error) error {
	if !errors.Is(err, coin.ErrInvariantViolation) {
		return err
	}

	log.WithError(err).Errorln("unblinded signature does not verify")
	return cli.NewExitError(err.Error(), exitInvariantViolation)
}

// parseSides turns "left,right,..." into one scripted source per merchant.
// An empty list draws every side from the crypto source.
func parseSides(list string, merchants int) ([]random.Source, error) {
	sources := make([]random.Source, merchants)
	if list == "" {
		for i := range sources {
			sources[i] = random.Crypto
		}
		return sources, nil
	}

	fields := strings.Split(list, ",")
	if len(fields) != merchants {
		return nil, errors.Errorf("%d sides given for %d merchants", len(fields), merchants)
	}

	for i, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "left", "l", "0":
			sources[i] = random.NewSequence(0)
		case "right", "r", "1":
			sources[i] = random.NewSequence(1)
		default:
			return nil, errors.Errorf("unknown side %q", f)
		}
	}
	return sources, nil
}

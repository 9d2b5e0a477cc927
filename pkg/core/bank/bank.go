// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package bank

import (
	"github.com/dusk-network/dusk-ecash/pkg/core/authority"
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/detector"
	"github.com/dusk-network/dusk-ecash/pkg/core/issuance"
	"github.com/dusk-network/dusk-ecash/pkg/core/ledger"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "bank"})

var (
	// ErrDoubleSpend is returned when a coin is deposited with a second,
	// different disclosure. The accompanying verdict names the culprit.
	ErrDoubleSpend = errors.New("coin deposited twice")
	// ErrDuplicateDeposit is returned when the exact same disclosure is
	// deposited again.
	ErrDuplicateDeposit = errors.New("disclosure already deposited")
	// ErrAmountMismatch is returned when an opened candidate is not worth
	// the amount being withdrawn.
	ErrAmountMismatch = errors.New("candidate amount differs from the withdrawal")
)

// Bank issues coins through cut-and-choose and books their deposits.
type Bank struct {
	authority *authority.KeyAuthority
	issuer    *issuance.Issuer
	ledger    *ledger.Ledger
	detector  *detector.Detector
	params    coin.Params
}

// New returns a Bank signing with a and booking deposits into l.
func New(a *authority.KeyAuthority, l *ledger.Ledger, params coin.Params, copies int, rng random.Source) (*Bank, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := &Bank{
		authority: a,
		ledger:    l,
		detector:  detector.New(params.Hash),
		params:    params,
	}

	issuer, err := issuance.NewIssuer(a, copies, rng, issuance.WithValidator(b.validateDocument))
	if err != nil {
		return nil, err
	}

	b.issuer = issuer
	return b, nil
}

// PublicKey returns the key coins are signed with.
func (b *Bank) PublicKey() blind.PublicKey {
	return b.authority.PublicKey()
}

// Params returns the coin parameters the bank accepts.
func (b *Bank) Params() coin.Params {
	return b.params
}

// Copies returns the number of candidates a withdrawal must carry.
func (b *Bank) Copies() int {
	return b.issuer.Copies()
}

// validateDocument checks an opened canonical string is one of ours.
func (b *Bank) validateDocument(_ int, document []byte) error {
	canonical, err := coin.Parse(string(document), b.params.Tag)
	if err != nil {
		return err
	}

	if len(canonical.LeftHashes) != b.params.RISCount {
		return errors.Wrapf(coin.ErrMalformedCoin, "expected %d identity slots, got %d", b.params.RISCount, len(canonical.LeftHashes))
	}
	return nil
}

// Record returns the redemption record of a coin.
func (b *Bank) Record(guid string) (ledger.Record, error) {
	return b.ledger.Get(guid)
}

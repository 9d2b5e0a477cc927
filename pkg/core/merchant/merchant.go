// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package merchant

import (
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "merchant"})

// Acceptor takes coins as payment and keeps one random half of their
// identity for the bank.
type Acceptor struct {
	name   string
	pub    blind.PublicKey
	params coin.Params
	rng    random.Source
}

// NewAcceptor returns an Acceptor trusting the authority key pub.
func NewAcceptor(name string, pub blind.PublicKey, params coin.Params, rng random.Source) (*Acceptor, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if pub.N == nil {
		return nil, errors.New("merchant needs the authority public key")
	}

	if rng == nil {
		rng = random.Crypto
	}

	return &Acceptor{name: name, pub: pub, params: params, rng: rng}, nil
}

// Name identifies the merchant in deposits.
func (a *Acceptor) Name() string {
	return a.name
}

// Accept verifies the coin signature, draws a fresh side bit and returns the
// shares of that side once they match the signed commitments. The returned
// RIS must be kept verbatim for the deposit.
func (a *Acceptor) Accept(c *coin.Coin) (coin.RIS, error) {
	if err := c.VerifySignature(a.pub); err != nil {
		log.WithField("merchant", a.name).WithError(err).Warnln("coin rejected")
		return nil, err
	}

	canonical, err := coin.Parse(c.String(), a.params.Tag)
	if err != nil {
		return nil, err
	}

	right, err := random.Bit(a.rng)
	if err != nil {
		return nil, errors.Wrap(err, "could not draw side")
	}

	side, hashes := coin.SideLeft, canonical.LeftHashes
	if right {
		side, hashes = coin.SideRight, canonical.RightHashes
	}

	ris := c.RIS(side)
	if err := coin.VerifyRIS(a.params.Hash, ris, hashes); err != nil {
		log.WithFields(logger.Fields{
			"merchant": a.name,
			"guid":     c.GUID,
			"side":     side,
		}).WithError(err).Warnln("coin rejected")
		return nil, err
	}

	l := log.WithFields(logger.Fields{
		"merchant": a.name,
		"guid":     c.GUID,
		"side":     side,
	})

	if !c.MarkSpent() {
		l.Debugln("coin was presented before")
	}

	l.Debugln("coin accepted")
	return ris, nil
}

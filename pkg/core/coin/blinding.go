// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package coin

import (
	"io"
	"math/big"

	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/pkg/errors"
)

const maxBlindAttempts = 16

// Blind hashes the canonical string and blinds it under pub. The blinding
// factor stays with the coin and is never marshalled.
func (c *Coin) Blind(pub blind.PublicKey, rng io.Reader) (*big.Int, error) {
	if c.State() != StateCreated {
		return nil, errors.Wrapf(ErrWrongState, "cannot blind a %s coin", c.State())
	}

	m, err := hash.ToBigInt(c.params.Hash, c.Message())
	if err != nil {
		return nil, err
	}

	for i := 0; i < maxBlindAttempts; i++ {
		blinded, r, err := blind.Blind(m, pub, rng)
		if errors.Is(err, blind.ErrBlinding) {
			continue
		}

		if err != nil {
			return nil, err
		}

		if !c.advance(StateCreated, StateBlinded) {
			return nil, errors.Wrap(ErrWrongState, "coin blinded concurrently")
		}

		c.blinded = blinded
		c.blindingFactor = r
		return blinded, nil
	}

	return nil, errors.Wrapf(blind.ErrBlinding, "no usable blinding factor after %d attempts", maxBlindAttempts)
}

// Blinded returns the blinded document produced by Blind.
func (c *Coin) Blinded() *big.Int {
	return c.blinded
}

// BlindingFactor returns the factor produced by Blind. Revealing it opens
// the coin to the authority.
func (c *Coin) BlindingFactor() *big.Int {
	return c.blindingFactor
}

// Unblind strips the blinding factor from the authority's blind signature
// and checks the result against the canonical string. A failing check
// returns ErrInvariantViolation and leaves the coin blinded.
func (c *Coin) Unblind(blindSig *big.Int, pub blind.PublicKey) error {
	if c.State() != StateBlinded {
		return errors.Wrapf(ErrWrongState, "cannot unblind a %s coin", c.State())
	}

	sig, err := blind.Unblind(blindSig, c.blindingFactor, pub)
	if err != nil {
		return errors.Wrap(ErrInvariantViolation, err.Error())
	}

	m, err := hash.ToBigInt(c.params.Hash, c.Message())
	if err != nil {
		return err
	}

	if !blind.Verify(m, sig, pub) {
		return errors.Wrapf(ErrInvariantViolation, "coin %s", c.GUID)
	}

	if !c.advance(StateBlinded, StateSigned) {
		return errors.Wrap(ErrWrongState, "coin unblinded concurrently")
	}

	c.Signature = sig
	c.advance(StateSigned, StateUnblinded)
	return nil
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package coin

import (
	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/pkg/errors"
)

// VerifySignature checks the authority signature over the canonical string.
func (c *Coin) VerifySignature(pub blind.PublicKey) error {
	if c.Signature == nil {
		return errors.Wrap(ErrInvalidSignature, "coin is unsigned")
	}

	m, err := hash.ToBigInt(c.params.Hash, c.Message())
	if err != nil {
		return err
	}

	if !blind.Verify(m, c.Signature, pub) {
		return errors.Wrapf(ErrInvalidSignature, "coin %s", c.GUID)
	}
	return nil
}

// VerifyRIS checks every disclosed share against its commitment.
func VerifyRIS(h hash.Func, ris RIS, hashes []string) error {
	if len(ris) != len(hashes) {
		return errors.Wrapf(ErrRISMismatch, "%d shares against %d hashes", len(ris), len(hashes))
	}

	for i := range ris {
		digest, err := hash.Hex(h, ris[i])
		if err != nil {
			return err
		}

		if digest != hashes[i] {
			return errors.Wrapf(ErrRISMismatch, "slot %d", i)
		}
	}
	return nil
}

// VerifyIdentity opens every slot of the coin and checks that each one
// decodes to identity and matches both commitments. The authority runs it on
// the candidates it did not select.
func (c *Coin) VerifyIdentity(identity string) error {
	if err := c.checkShape(); err != nil {
		return err
	}

	if err := VerifyRIS(c.params.Hash, c.Left, c.LeftHashes); err != nil {
		return err
	}

	if err := VerifyRIS(c.params.Hash, c.Right, c.RightHashes); err != nil {
		return err
	}

	for i := range c.Left {
		got, ok := c.Slot(i).Identity(c.params.Hash)
		if !ok || got != identity {
			return errors.Wrapf(ErrIdentityMismatch, "slot %d", i)
		}
	}
	return nil
}

func (c *Coin) checkShape() error {
	k := c.params.RISCount
	if len(c.Left) != k || len(c.Right) != k || len(c.LeftHashes) != k || len(c.RightHashes) != k {
		return errors.Wrapf(ErrMalformedCoin, "coin %s does not carry %d identity slots", c.GUID, k)
	}
	return nil
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package authority

import (
	"io"
	"math/big"

	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "authority"})

// KeyAuthority holds the issuing key pair. It signs blinded values and
// verifies signatures over documents hashed with the configured digest.
type KeyAuthority struct {
	key  *blind.PrivateKey
	hash hash.Func
}

// New wraps an existing key pair.
func New(key *blind.PrivateKey, h hash.Func) (*KeyAuthority, error) {
	if key == nil || key.N == nil || key.D == nil {
		return nil, errors.New("authority key is incomplete")
	}

	if h == nil {
		h = hash.Sha256
	}

	return &KeyAuthority{key: key, hash: h}, nil
}

// Generate creates an authority with a fresh key of the given modulus size.
func Generate(bits int, h hash.Func, rng io.Reader) (*KeyAuthority, error) {
	key, err := blind.GenerateKey(bits, rng)
	if err != nil {
		return nil, err
	}

	log.WithField("bits", bits).Info("generated authority key")
	return New(key, h)
}

// PublicKey returns the verification key.
func (a *KeyAuthority) PublicKey() blind.PublicKey {
	return a.key.PublicKey
}

// Hash returns the digest used to map documents to integers.
func (a *KeyAuthority) Hash() hash.Func {
	return a.hash
}

// BlindSign signs a blinded value. It is a pure function of its input and
// never sees the content behind the blinding.
func (a *KeyAuthority) BlindSign(blinded *big.Int) (*big.Int, error) {
	return blind.Sign(blinded, a.key)
}

// Verify checks a signature over message against this authority's key.
func (a *KeyAuthority) Verify(message []byte, sig *big.Int) bool {
	return Verify(a.key.PublicKey, a.hash, message, sig)
}

// Verify checks a signature over message against pub, hashing message with h.
func Verify(pub blind.PublicKey, h hash.Func, message []byte, sig *big.Int) bool {
	m, err := hash.ToBigInt(h, message)
	if err != nil {
		return false
	}

	return blind.Verify(m, sig, pub)
}

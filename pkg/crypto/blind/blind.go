// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package blind implements Chaum's RSA blind signatures over integers.
//
// A requester blinds a message representative m with a random factor r as
// m * r^e mod N, the signer raises the blinded value to d without learning
// m, and the requester removes r to obtain m^d mod N.
package blind

import (
	"crypto/rsa"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// Bounds of the supported modulus sizes.
const (
	MinBits  = 1024
	MaxBits  = 8192
	BitsStep = 256
)

var (
	// ErrKeyGeneration is returned when a key of the requested strength cannot be produced.
	ErrKeyGeneration = errors.New("key generation failed")
	// ErrBlinding is returned when a blinding factor is not invertible modulo N.
	// The caller may retry with a fresh factor.
	ErrBlinding = errors.New("blinding factor is not invertible")
	// ErrOutOfRange is returned for operands outside of (0, N).
	ErrOutOfRange = errors.New("operand out of range")
)

var one = big.NewInt(1)

// PublicKey is the verification half of an authority key.
type PublicKey struct {
	N *big.Int
	E int
}

// PrivateKey adds the signing exponent.
type PrivateKey struct {
	PublicKey
	D *big.Int
}

// SupportedBits reports whether a modulus of the given size can be generated.
func SupportedBits(bits int) bool {
	return bits >= MinBits && bits <= MaxBits && bits%BitsStep == 0
}

// GenerateKey creates a key pair with a modulus of the given bit length.
func GenerateKey(bits int, rng io.Reader) (*PrivateKey, error) {
	if !SupportedBits(bits) {
		return nil, errors.Wrapf(ErrKeyGeneration, "unsupported modulus size %d", bits)
	}

	k, err := rsa.GenerateKey(rng, bits)
	if err != nil {
		return nil, errors.Wrap(ErrKeyGeneration, err.Error())
	}

	return &PrivateKey{
		PublicKey: PublicKey{N: k.N, E: k.E},
		D:         k.D,
	}, nil
}

// Size returns the modulus length in bytes.
func (p PublicKey) Size() int {
	return (p.N.BitLen() + 7) / 8
}

// Equal reports whether both keys share modulus and exponent.
func (p PublicKey) Equal(o PublicKey) bool {
	return p.E == o.E && p.N != nil && o.N != nil && p.N.Cmp(o.N) == 0
}

func (p PublicKey) inRange(v *big.Int) bool {
	return v != nil && v.Sign() > 0 && v.Cmp(p.N) < 0
}

// Blind draws a random factor r from rng and returns m * r^e mod N along with r.
// ErrBlinding is returned if r shares a factor with N.
func Blind(m *big.Int, pub PublicKey, rng io.Reader) (*big.Int, *big.Int, error) {
	r, err := randomFactor(pub.N, rng)
	if err != nil {
		return nil, nil, err
	}

	blinded, err := BlindWithFactor(m, r, pub)
	if err != nil {
		return nil, nil, err
	}

	return blinded, r, nil
}

// BlindWithFactor computes m * r^e mod N for a known factor. The issuer uses it
// to re-derive what a candidate should have looked like once its factor is opened.
func BlindWithFactor(m, r *big.Int, pub PublicKey) (*big.Int, error) {
	if !pub.inRange(m) {
		return nil, errors.Wrap(ErrOutOfRange, "message representative")
	}

	if !pub.inRange(r) || new(big.Int).GCD(nil, nil, r, pub.N).Cmp(one) != 0 {
		return nil, ErrBlinding
	}

	re := new(big.Int).Exp(r, big.NewInt(int64(pub.E)), pub.N)
	re.Mul(re, m)
	return re.Mod(re, pub.N), nil
}

// Sign raises a blinded value to the private exponent. It never sees the
// unblinded message.
func Sign(blinded *big.Int, priv *PrivateKey) (*big.Int, error) {
	if !priv.inRange(blinded) {
		return nil, errors.Wrap(ErrOutOfRange, "blinded message")
	}

	return new(big.Int).Exp(blinded, priv.D, priv.N), nil
}

// Unblind removes the factor r from a blind signature: s * r^-1 mod N.
func Unblind(s, r *big.Int, pub PublicKey) (*big.Int, error) {
	if !pub.inRange(s) {
		return nil, errors.Wrap(ErrOutOfRange, "blind signature")
	}

	if !pub.inRange(r) {
		return nil, ErrBlinding
	}

	rInv := new(big.Int).ModInverse(r, pub.N)
	if rInv == nil {
		return nil, ErrBlinding
	}

	rInv.Mul(rInv, s)
	return rInv.Mod(rInv, pub.N), nil
}

// Verify checks that sig^e mod N equals the message representative m.
func Verify(m, sig *big.Int, pub PublicKey) bool {
	if pub.N == nil || !pub.inRange(sig) || !pub.inRange(m) {
		return false
	}

	v := new(big.Int).Exp(sig, big.NewInt(int64(pub.E)), pub.N)
	return v.Cmp(m) == 0
}

// randomFactor draws r uniformly from [1, N).
func randomFactor(n *big.Int, rng io.Reader) (*big.Int, error) {
	buf := make([]byte, (n.BitLen()+7)/8)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, errors.Wrap(err, "could not draw blinding factor")
		}

		// trim to the modulus length before rejection sampling
		if extra := len(buf)*8 - n.BitLen(); extra > 0 {
			buf[0] &= byte(0xff >> uint(extra))
		}

		r := new(big.Int).SetBytes(buf)
		if r.Sign() > 0 && r.Cmp(n) < 0 {
			return r, nil
		}
	}
}

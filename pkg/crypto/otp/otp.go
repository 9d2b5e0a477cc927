// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package otp splits a secret into two shares with a one-time pad. Either
// share alone is uniformly random; XOR-ing both reconstructs the secret.
package otp

import (
	"io"

	"github.com/pkg/errors"
)

// ErrLengthMismatch is returned when the two shares differ in length.
var ErrLengthMismatch = errors.New("one-time pad shares differ in length")

// Pair holds the two shares of a split secret.
type Pair struct {
	Key        []byte
	Ciphertext []byte
}

// Encrypt draws a fresh pad of len(plaintext) bytes from rng and returns the
// pad together with the ciphertext.
func Encrypt(plaintext []byte, rng io.Reader) (Pair, error) {
	key := make([]byte, len(plaintext))
	if _, err := io.ReadFull(rng, key); err != nil {
		return Pair{}, errors.Wrap(err, "could not draw one-time pad")
	}

	ct, err := xor(key, plaintext)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Key: key, Ciphertext: ct}, nil
}

// Decrypt XORs the two shares. The operation is symmetric, so the order of
// key and ciphertext does not matter.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	return xor(key, ciphertext)
}

// Plaintext recombines the pair.
func (p Pair) Plaintext() ([]byte, error) {
	return Decrypt(p.Key, p.Ciphertext)
}

func xor(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}

	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

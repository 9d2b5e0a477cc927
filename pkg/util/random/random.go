// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package random provides the randomness capability shared by the issuing
// authority, the payer and the merchants. Every component receives a Source
// instead of reaching for a global generator, so tests can script side bits
// and cut-and-choose indices.
package random

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// ErrInvalidBound is returned when Intn is called with a non-positive bound.
var ErrInvalidBound = errors.New("random bound must be positive")

// Source yields uniform integers and random bytes.
type Source interface {
	io.Reader

	// Intn returns a uniform integer in [0, n).
	Intn(n int) (int, error)
}

type cryptoSource struct {
	reader io.Reader
}

// Crypto is the Source backed by crypto/rand.
var Crypto Source = NewFromReader(rand.Reader)

// NewFromReader wraps a cryptographically secure reader into a Source.
func NewFromReader(r io.Reader) Source {
	return cryptoSource{reader: r}
}

func (c cryptoSource) Read(p []byte) (int, error) {
	return io.ReadFull(c.reader, p)
}

func (c cryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}

	v, err := rand.Int(c.reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "could not draw random integer")
	}

	return int(v.Int64()), nil
}

// Bit draws a uniform bit from s.
func Bit(s Source) (bool, error) {
	v, err := s.Intn(2)
	if err != nil {
		return false, err
	}

	return v == 1, nil
}

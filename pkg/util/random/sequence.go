// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package random

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrExhausted is returned by a Sequence that ran out of scripted values.
var ErrExhausted = errors.New("random sequence exhausted")

// Sequence is a Source returning a fixed list of integers from Intn, in
// order. Bytes are still drawn from Crypto so keys, pads and blinding
// factors stay well formed. It is meant for tests and simulations that need
// to choose which side or index is drawn.
type Sequence struct {
	lock   sync.Mutex
	values []int
	pos    int
}

// NewSequence returns a Sequence yielding values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Read fills p from the crypto source.
func (s *Sequence) Read(p []byte) (int, error) {
	return Crypto.Read(p)
}

// Intn returns the next scripted value. It fails if the value does not fit
// in [0, n).
func (s *Sequence) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.pos >= len(s.values) {
		return 0, ErrExhausted
	}

	v := s.values[s.pos]
	s.pos++

	if v < 0 || v >= n {
		return 0, errors.Errorf("scripted value %d out of range [0, %d)", v, n)
	}

	return v, nil
}

// Remaining returns the number of values not consumed yet.
func (s *Sequence) Remaining() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.values) - s.pos
}

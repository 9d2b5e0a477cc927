// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package coin

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Defaults for Params.
const (
	DefaultTag      = "ELECTRONIC_PIGGY_BANK"
	DefaultRISCount = 10
)

var (
	// ErrMalformedCoin is returned when a canonical string has the wrong tag
	// or misses a field.
	ErrMalformedCoin = errors.New("malformed coin")
	// ErrInvalidSignature is returned when the authority signature does not
	// verify over the canonical string.
	ErrInvalidSignature = errors.New("invalid coin signature")
	// ErrRISMismatch is returned when a disclosed identity share does not
	// match its hash commitment.
	ErrRISMismatch = errors.New("identity string does not match its commitment")
	// ErrIdentityMismatch is returned when an opened coin does not encode the
	// expected owner.
	ErrIdentityMismatch = errors.New("coin does not encode the expected identity")
	// ErrInvariantViolation is returned when an unblinded signature fails to
	// verify. It denotes a protocol or programming error and must not be retried.
	ErrInvariantViolation = errors.New("unblinded signature does not verify")
	// ErrWrongState is returned when a transform is applied out of order.
	ErrWrongState = errors.New("coin is not in the expected state")
)

// Params are the deployment parameters shared by payer, authority and merchants.
type Params struct {
	// Tag leads every canonical string.
	Tag string
	// RISCount is the number of identity slots per coin.
	RISCount int
	// Hash commits to identity shares and maps documents to integers.
	Hash hash.Func
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		Tag:      DefaultTag,
		RISCount: DefaultRISCount,
		Hash:     hash.Sha256,
	}
}

// Validate checks that the parameters can produce parseable coins.
func (p Params) Validate() error {
	if p.Tag == "" || strings.ContainsAny(p.Tag, fieldSeparator+listSeparator) {
		return errors.Errorf("coin tag %q must be non-empty and free of %q and %q", p.Tag, fieldSeparator, listSeparator)
	}

	if p.RISCount < 1 {
		return errors.Errorf("ris count must be positive, got %d", p.RISCount)
	}

	if p.Hash == nil {
		return errors.New("coin hash function is not set")
	}

	return nil
}

// Side selects one half of the split identity.
type Side uint8

// The two halves of a coin's identity slots.
const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// RIS is a revealed identity string: one share per identity slot, all taken
// from the same side.
type RIS [][]byte

// Equal reports whether both disclosures hold the same shares.
func (r RIS) Equal(o RIS) bool {
	if len(r) != len(o) {
		return false
	}

	for i := range r {
		if string(r[i]) != string(o[i]) {
			return false
		}
	}
	return true
}

// Coin is a bank-signed token bound to a hidden owner identity.
//
// Left[i] and Right[i] are the two one-time-pad shares of the tagged owner
// identity; LeftHashes and RightHashes commit to them and are part of the
// signed canonical string. None of these fields change after New.
type Coin struct {
	Amount      uint64
	GUID        string
	Left        RIS
	Right       RIS
	LeftHashes  []string
	RightHashes []string

	// Signature is the unblinded authority signature over String().
	Signature *big.Int

	owner          string
	blinded        *big.Int
	blindingFactor *big.Int
	params         Params
	state          int32
}

// New creates a coin of the given amount for owner, splitting the tagged
// identity into RISCount one-time-pad pairs.
func New(owner string, amount uint64, params Params, rng random.Source) (*Coin, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if owner == "" {
		return nil, errors.New("coin owner must not be empty")
	}

	if amount == 0 {
		return nil, errors.New("coin amount must be positive")
	}

	guid, err := NewGUID(rng)
	if err != nil {
		return nil, err
	}

	plaintext, err := EncodeIdentity(params.Hash, owner)
	if err != nil {
		return nil, err
	}

	c := &Coin{
		Amount:      amount,
		GUID:        guid,
		Left:        make(RIS, params.RISCount),
		Right:       make(RIS, params.RISCount),
		LeftHashes:  make([]string, params.RISCount),
		RightHashes: make([]string, params.RISCount),
		owner:       owner,
		params:      params,
		state:       int32(StateCreated),
	}

	for i := 0; i < params.RISCount; i++ {
		slot, err := SplitIdentity(plaintext, rng)
		if err != nil {
			return nil, err
		}

		pair, _ := slot.Pair()
		c.Left[i] = pair.Key
		c.Right[i] = pair.Ciphertext

		if c.LeftHashes[i], err = hash.Hex(params.Hash, pair.Key); err != nil {
			return nil, err
		}

		if c.RightHashes[i], err = hash.Hex(params.Hash, pair.Ciphertext); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewGUID returns a random identifier rendered as 32 hex characters, so it
// never collides with the canonical string separators.
func NewGUID(rng random.Source) (string, error) {
	u, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return "", errors.Wrap(err, "could not generate coin guid")
	}

	return hex.EncodeToString(u[:]), nil
}

// Owner returns the identity the coin was created for. It is known to the
// payer only and is never marshalled.
func (c *Coin) Owner() string {
	return c.owner
}

// Params returns the parameters the coin was created or decoded with.
func (c *Coin) Params() Params {
	return c.params
}

// RIS returns a copy of the shares of the given side.
func (c *Coin) RIS(side Side) RIS {
	src := c.Left
	if side == SideRight {
		src = c.Right
	}

	out := make(RIS, len(src))
	for i := range src {
		out[i] = append([]byte(nil), src[i]...)
	}
	return out
}

// Hashes returns the commitments of the given side.
func (c *Coin) Hashes(side Side) []string {
	if side == SideRight {
		return c.RightHashes
	}
	return c.LeftHashes
}

// Slot returns the identity pair stored at index i.
func (c *Coin) Slot(i int) IdentitySlot {
	return OTPPair(c.Left[i], c.Right[i])
}

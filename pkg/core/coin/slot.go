// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package coin

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/otp"
	"github.com/pkg/errors"
)

// IdentPrefix tags a recovered identity plaintext.
const IdentPrefix = "IDENT:"

const checksumSize = 4

// SlotKind tells which variant an IdentitySlot holds.
type SlotKind uint8

// IdentitySlot variants.
const (
	PlaintextSlot SlotKind = iota + 1
	OTPPairSlot
)

// IdentitySlot is either a tagged identity plaintext or the one-time-pad
// pair that hides it.
type IdentitySlot struct {
	kind      SlotKind
	plaintext []byte
	pair      otp.Pair
}

// Plaintext wraps a recovered identity plaintext.
func Plaintext(b []byte) IdentitySlot {
	return IdentitySlot{kind: PlaintextSlot, plaintext: b}
}

// OTPPair wraps a key share and a ciphertext share.
func OTPPair(key, ciphertext []byte) IdentitySlot {
	return IdentitySlot{kind: OTPPairSlot, pair: otp.Pair{Key: key, Ciphertext: ciphertext}}
}

// Kind returns the variant held by the slot.
func (s IdentitySlot) Kind() SlotKind {
	return s.kind
}

// Plaintext returns the plaintext held by a PlaintextSlot.
func (s IdentitySlot) Plaintext() ([]byte, bool) {
	return s.plaintext, s.kind == PlaintextSlot
}

// Pair returns the shares held by an OTPPairSlot.
func (s IdentitySlot) Pair() (otp.Pair, bool) {
	return s.pair, s.kind == OTPPairSlot
}

// Open recombines an OTPPairSlot into a PlaintextSlot. A PlaintextSlot is
// returned as is.
func (s IdentitySlot) Open() (IdentitySlot, error) {
	switch s.kind {
	case PlaintextSlot:
		return s, nil
	case OTPPairSlot:
		pt, err := s.pair.Plaintext()
		if err != nil {
			return IdentitySlot{}, err
		}
		return Plaintext(pt), nil
	default:
		return IdentitySlot{}, errors.New("empty identity slot")
	}
}

// Identity opens the slot and decodes the owner identity. It returns false
// if the slot does not carry a well formed tagged identity.
func (s IdentitySlot) Identity(h hash.Func) (string, bool) {
	opened, err := s.Open()
	if err != nil {
		return "", false
	}
	return DecodeIdentity(h, opened.plaintext)
}

// SplitIdentity hides an identity plaintext behind a fresh one-time pad.
func SplitIdentity(plaintext []byte, rng io.Reader) (IdentitySlot, error) {
	pair, err := otp.Encrypt(plaintext, rng)
	if err != nil {
		return IdentitySlot{}, errors.Wrap(err, "could not split identity")
	}
	return OTPPair(pair.Key, pair.Ciphertext), nil
}

// Recombine XORs two shares of the same slot. The order of the shares does
// not matter.
func Recombine(a, b []byte) (IdentitySlot, error) {
	return OTPPair(a, b).Open()
}

// EncodeIdentity returns IdentPrefix || identity || checksum, where the
// checksum is the first four bytes of h over the tagged identity.
func EncodeIdentity(h hash.Func, identity string) ([]byte, error) {
	tagged := []byte(IdentPrefix + identity)

	sum, err := hash.Checksum(h, tagged)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(tagged)+checksumSize)
	copy(out, tagged)
	binary.BigEndian.PutUint32(out[len(tagged):], sum)
	return out, nil
}

// DecodeIdentity is the inverse of EncodeIdentity. Random bytes pass both
// the tag and the checksum test with negligible probability.
func DecodeIdentity(h hash.Func, plaintext []byte) (string, bool) {
	if len(plaintext) < len(IdentPrefix)+checksumSize {
		return "", false
	}

	tagged := plaintext[:len(plaintext)-checksumSize]
	if !bytes.HasPrefix(tagged, []byte(IdentPrefix)) {
		return "", false
	}

	sum := binary.BigEndian.Uint32(plaintext[len(tagged):])
	if !hash.CompareChecksum(h, tagged, sum) {
		return "", false
	}

	return string(tagged[len(IdentPrefix):]), true
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Names of the supported digests, as used in the configuration.
const (
	SHA256         = "sha256"
	SHA3256        = "sha3-256"
	Blake2b256Name = "blake2b-256"
)

// Func maps an arbitrary payload to a fixed-width digest.
type Func func([]byte) ([]byte, error)

// ErrUnknownHash is returned by ByName for an unsupported digest name.
var ErrUnknownHash = errors.New("unknown hash function")

// Sha256 takes a byte slice and returns the SHA-256 hash.
func Sha256(bs []byte) ([]byte, error) {
	return PerformHash(sha256.New(), bs)
}

// Sha3256 takes a byte slice and returns the SHA3-256 hash.
func Sha3256(bs []byte) ([]byte, error) {
	return PerformHash(sha3.New256(), bs)
}

// Blake2b256 takes a byte slice and returns the 32 byte Blake2b hash.
func Blake2b256(bs []byte) ([]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	return PerformHash(h, bs)
}

// PerformHash takes a generic hash.Hash and returns the hashed payload.
func PerformHash(H hash.Hash, bs []byte) ([]byte, error) {
	_, err := H.Write(bs)
	if err != nil {
		return nil, err
	}
	return H.Sum(nil), err
}

// ByName returns the digest registered under name.
func ByName(name string) (Func, error) {
	switch name {
	case SHA256, "":
		return Sha256, nil
	case SHA3256:
		return Sha3256, nil
	case Blake2b256Name:
		return Blake2b256, nil
	}

	return nil, errors.Wrapf(ErrUnknownHash, "%q", name)
}

// ToBigInt hashes msg with h and interprets the digest as a big-endian
// unsigned integer, usable as a modular-arithmetic operand.
func ToBigInt(h Func, msg []byte) (*big.Int, error) {
	digest, err := h(msg)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(digest), nil
}

// Hex hashes msg with h and returns the lowercase hex digest.
func Hex(h Func, msg []byte) (string, error) {
	digest, err := h(msg)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}

// Checksum hashes the data with h and returns the first four bytes.
func Checksum(h Func, data []byte) (uint32, error) {
	digest, err := h(data)
	if err != nil {
		return 0, err
	}

	if len(digest) < 4 {
		return 0, errors.New("digest too short for a checksum")
	}

	return binary.BigEndian.Uint32(digest[:4]), nil
}

// CompareChecksum returns true if the checksum of the given data is
// equal to the expected checksum.
func CompareChecksum(h Func, data []byte, want uint32) bool {
	got, err := Checksum(h, data)
	if err != nil {
		return false
	}
	return got == want
}

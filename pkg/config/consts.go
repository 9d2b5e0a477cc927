// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

// A single point of constants definition
const (
	// DefaultKeyBits is the authority modulus size. Blind signatures are as
	// strong as plain RSA of the same size.
	DefaultKeyBits = 2048
	MinKeyBits     = 1024
	MaxKeyBits     = 8192
	KeyBitsStep    = 256

	// DefaultCopies is the cut-and-choose batch size. A payer hiding one bad
	// candidate gets it signed with probability 1/copies.
	DefaultCopies = 10
	MinCopies     = 2

	DefaultCoinTag  = "ELECTRONIC_PIGGY_BANK"
	DefaultRISCount = 10
	DefaultHash     = "sha256"

	DefaultLedgerDriver   = "hashmap"
	DefaultLedgerDir      = "ledger"
	DefaultFilterCapacity = 100000

	DefaultLogLevel  = "info"
	DefaultLogOutput = "stdout"
	DefaultLogFormat = "text"
)

// SupportedHashes lists the coin.hash values understood by the crypto
// package.
var SupportedHashes = []string{"sha256", "sha3-256", "blake2b-256"}

// SupportedLedgerDrivers lists the ledger.driver values.
var SupportedLedgerDrivers = []string{"hashmap", "buntdb", "leveldb", "storm"}

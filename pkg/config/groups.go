// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

// pkg/core/authority configs.
type authorityConfiguration struct {
	Bits    int
	KeyFile string
}

// pkg/core/issuance configs.
type issuanceConfiguration struct {
	Copies int
}

// pkg/core/coin configs.
type coinConfiguration struct {
	Tag      string
	RISCount int
	Hash     string
}

// pkg/core/ledger configs.
type ledgerConfiguration struct {
	Driver         string
	Dir            string
	FilterCapacity uint
}

type loggerConfiguration struct {
	Level  string
	Output string
	Format string
}

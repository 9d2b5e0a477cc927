// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"github.com/urfave/cli"
)

var (
	// ConfigFlag flag to use configuration file.
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "ecash.toml configuration file",
	}
	// LogLevelFlag overrides logger.level.
	LogLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "log level (trace, debug, info, warn, error)",
	}

	// BitsFlag overrides authority.bits.
	BitsFlag = cli.IntFlag{
		Name:  "bits",
		Usage: "authority modulus size",
	}
	// KeyFileFlag overrides authority.keyfile.
	KeyFileFlag = cli.StringFlag{
		Name:  "keyfile",
		Usage: "authority key file",
	}
	// OutFlag is where keygen writes the key.
	OutFlag = cli.StringFlag{
		Name:  "out",
		Usage: "output key file",
	}

	// IdentityFlag is the account withdrawing the coin. Prompted for when absent.
	IdentityFlag = cli.StringFlag{
		Name:  "identity",
		Usage: "payer identity",
	}
	// AmountFlag is the coin value.
	AmountFlag = cli.Uint64Flag{
		Name:  "amount",
		Value: 20,
		Usage: "coin amount",
	}
	// MerchantsFlag is the number of merchants the coin is spent at.
	MerchantsFlag = cli.IntFlag{
		Name:  "merchants",
		Value: 2,
		Usage: "number of merchants accepting the coin",
	}
	// SidesFlag scripts the merchants' side bits.
	SidesFlag = cli.StringFlag{
		Name:  "sides",
		Usage: "comma separated sides drawn by the merchants (left, right), random when empty",
	}
	// CopiesFlag overrides issuance.copies.
	CopiesFlag = cli.IntFlag{
		Name:  "copies",
		Usage: "cut-and-choose batch size",
	}

	// GUIDFlag is the coin id of the disclosures.
	GUIDFlag = cli.StringFlag{
		Name:  "guid",
		Usage: "coin guid",
	}
	// RIS1Flag is the first disclosure.
	RIS1Flag = cli.StringFlag{
		Name:  "ris1",
		Usage: "first disclosure, comma separated hex shares",
	}
	// RIS2Flag is the second disclosure.
	RIS2Flag = cli.StringFlag{
		Name:  "ris2",
		Usage: "second disclosure, comma separated hex shares",
	}
)

var (
	// GlobalFlags flags usable in a global context.
	GlobalFlags = []cli.Flag{
		ConfigFlag,
		LogLevelFlag,
	}

	// KeygenFlags flags of the keygen command.
	KeygenFlags = []cli.Flag{
		BitsFlag,
		OutFlag,
	}

	// SimulateFlags flags of the simulate command.
	SimulateFlags = []cli.Flag{
		IdentityFlag,
		AmountFlag,
		MerchantsFlag,
		SidesFlag,
		KeyFileFlag,
		BitsFlag,
		CopiesFlag,
	}

	// DetectFlags flags of the detect command.
	DetectFlags = []cli.Flag{
		GUIDFlag,
		RIS1Flag,
		RIS2Flag,
	}
)

// configKeys maps command flags to the config settings they override.
var configKeys = map[string]string{
	BitsFlag.Name:    "authority.bits",
	KeyFileFlag.Name: "authority.keyfile",
	OutFlag.Name:     "authority.keyfile",
	CopiesFlag.Name:  "issuance.copies",
}

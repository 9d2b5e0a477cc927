// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"

	"github.com/dusk-network/dusk-ecash/pkg/config"
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/dusk-network/dusk-ecash/pkg/util/diagnostics"
	"github.com/dusk-network/dusk-ecash/pkg/util/nativeutils/logging"
	"github.com/urfave/cli"
)

// setup loads the configuration, with command flags taking precedence, and
// starts logging. The returned func releases the log output.
func setup(ctx *cli.Context) (func(), error) {
	// check arguments
	if arguments := ctx.Args(); len(arguments) > 0 {
		return nil, fmt.Errorf("failed to read command argument: %q", arguments[0])
	}

	fs := config.NewFlagSet()
	if level := ctx.GlobalString(LogLevelFlag.Name); level != "" {
		_ = fs.Set("logger.level", level)
	}

	for name, key := range configKeys {
		if ctx.IsSet(name) {
			if err := fs.Set(key, ctx.String(name)); err != nil {
				return nil, err
			}
		}
	}

	// Loading all configurations. Fail-fast if critical error occurs
	if err := config.Load(ctx.GlobalString(ConfigFlag.Name), fs); err != nil {
		return nil, err
	}

	r := config.Get()
	out, err := logging.OpenOutput(r.Logger.Output)
	if err != nil {
		return nil, err
	}

	// Any subsystem should be initialized after config and logger loading
	logging.InitLog(out, r.Logger.Level, r.Logger.Format)

	if r.UsedConfigFile != "" {
		log.WithField("file", r.UsedConfigFile).Debugln("config loaded")
	}

	return func() {
		diagnostics.LogError("could not close log output", out.Close())
	}, nil
}

// coinParams builds the coin parameters from the loaded configuration.
func coinParams() (coin.Params, error) {
	c := config.Get().Coin

	h, err := hash.ByName(c.Hash)
	if err != nil {
		return coin.Params{}, err
	}

	p := coin.Params{Tag: c.Tag, RISCount: c.RISCount, Hash: h}
	return p, p.Validate()
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"crypto/rand"
	"fmt"

	"github.com/dusk-network/dusk-ecash/pkg/config"
	"github.com/dusk-network/dusk-ecash/pkg/core/authority"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/urfave/cli"
)

const defaultKeyFile = "authority.key"

func keygenAction(ctx *cli.Context) error {
	done, err := setup(ctx)
	if err != nil {
		return err
	}
	defer done()

	r := config.Get()
	path := r.Authority.KeyFile
	if path == "" {
		path = defaultKeyFile
	}

	key, err := blind.GenerateKey(r.Authority.Bits, rand.Reader)
	if err != nil {
		return err
	}

	if err := authority.SaveKeyFile(path, key); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "wrote %d bit authority key to %s\n", key.N.BitLen(), path)
	return nil
}

// loadAuthority reads the configured key file, or generates an ephemeral key
// when none is configured.
func loadAuthority() (*authority.KeyAuthority, error) {
	r := config.Get()

	params, err := coinParams()
	if err != nil {
		return nil, err
	}

	if r.Authority.KeyFile == "" {
		log.WithField("bits", r.Authority.Bits).Infoln("no key file configured, generating an ephemeral authority key")
		return authority.Generate(r.Authority.Bits, params.Hash, rand.Reader)
	}

	key, err := authority.LoadKeyFile(r.Authority.KeyFile)
	if err != nil {
		return nil, err
	}
	return authority.New(key, params.Hash)
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/detector"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func detectAction(ctx *cli.Context) error {
	done, err := setup(ctx)
	if err != nil {
		return err
	}
	defer done()

	guid := ctx.String(GUIDFlag.Name)
	if guid == "" {
		return errors.New("--guid is required")
	}

	ris1, err := parseRIS(ctx.String(RIS1Flag.Name))
	if err != nil {
		return errors.Wrap(err, "ris1")
	}

	ris2, err := parseRIS(ctx.String(RIS2Flag.Name))
	if err != nil {
		return errors.Wrap(err, "ris2")
	}

	params, err := coinParams()
	if err != nil {
		return err
	}

	v := detector.New(params.Hash).DetermineCheater(guid, ris1, ris2)
	fmt.Fprintln(ctx.App.Writer, v)
	return nil
}

// parseRIS decodes comma separated hex shares.
func parseRIS(s string) (coin.RIS, error) {
	if s == "" {
		return nil, errors.New("disclosure is empty")
	}

	fields := strings.Split(s, ",")
	ris := make(coin.RIS, len(fields))
	for i, f := range fields {
		b, err := hex.DecodeString(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "share %d", i)
		}
		ris[i] = b
	}
	return ris, nil
}

// formatRIS is the inverse of parseRIS.
func formatRIS(ris coin.RIS) string {
	shares := make([]string, len(ris))
	for i := range ris {
		shares[i] = hex.EncodeToString(ris[i])
	}
	return strings.Join(shares, ",")
}

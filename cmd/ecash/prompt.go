// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
)

func validateIdentity(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("identity must not be empty")
	}
	return nil
}

func promptIdentity() (string, error) {
	prompt := promptui.Prompt{
		Label:    "Payer identity",
		Validate: validateIdentity,
	}

	identity, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(identity), nil
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package coin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	fieldSeparator = "-"
	listSeparator  = ","
)

// Canonical holds the fields of a parsed canonical coin string.
type Canonical struct {
	Tag         string
	Amount      uint64
	GUID        string
	LeftHashes  []string
	RightHashes []string
}

// String returns the canonical string the authority signs:
// TAG-amount-guid-lh0,lh1,...-rh0,rh1,...
func (c *Coin) String() string {
	return fmt.Sprintf("%s%s%d%s%s%s%s%s%s",
		c.params.Tag, fieldSeparator,
		c.Amount, fieldSeparator,
		c.GUID, fieldSeparator,
		strings.Join(c.LeftHashes, listSeparator), fieldSeparator,
		strings.Join(c.RightHashes, listSeparator))
}

// Message returns the canonical string as bytes.
func (c *Coin) Message() []byte {
	return []byte(c.String())
}

// Parse splits a canonical string and checks it carries the expected tag.
func Parse(s, tag string) (Canonical, error) {
	fields := strings.Split(s, fieldSeparator)
	if len(fields) != 5 {
		return Canonical{}, errors.Wrapf(ErrMalformedCoin, "expected 5 fields, got %d", len(fields))
	}

	if fields[0] != tag {
		return Canonical{}, errors.Wrapf(ErrMalformedCoin, "unexpected tag %q", fields[0])
	}

	amount, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil || amount == 0 {
		return Canonical{}, errors.Wrapf(ErrMalformedCoin, "invalid amount %q", fields[1])
	}

	if fields[2] == "" {
		return Canonical{}, errors.Wrap(ErrMalformedCoin, "missing guid")
	}

	left, err := splitHashes(fields[3])
	if err != nil {
		return Canonical{}, err
	}

	right, err := splitHashes(fields[4])
	if err != nil {
		return Canonical{}, err
	}

	if len(left) != len(right) {
		return Canonical{}, errors.Wrapf(ErrMalformedCoin, "%d left hashes against %d right hashes", len(left), len(right))
	}

	return Canonical{
		Tag:         fields[0],
		Amount:      amount,
		GUID:        fields[2],
		LeftHashes:  left,
		RightHashes: right,
	}, nil
}

func splitHashes(field string) ([]string, error) {
	if field == "" {
		return nil, errors.Wrap(ErrMalformedCoin, "missing hash list")
	}

	hashes := strings.Split(field, listSeparator)
	for i, h := range hashes {
		if h == "" {
			return nil, errors.Wrapf(ErrMalformedCoin, "empty hash at index %d", i)
		}
	}
	return hashes, nil
}

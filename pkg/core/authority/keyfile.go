// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package authority

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/dusk-network/dusk-ecash/pkg/encoding"
	"github.com/pkg/errors"
)

// MarshalKey writes N, E and D into w.
func MarshalKey(w *bytes.Buffer, key *blind.PrivateKey) error {
	if err := encoding.WriteBigInt(w, key.N); err != nil {
		return err
	}

	if err := encoding.WriteUint32LE(w, uint32(key.E)); err != nil {
		return err
	}

	return encoding.WriteBigInt(w, key.D)
}

// UnmarshalKey reads a key written by MarshalKey.
func UnmarshalKey(r *bytes.Buffer) (*blind.PrivateKey, error) {
	n, err := encoding.ReadBigInt(r)
	if err != nil {
		return nil, err
	}

	var e uint32
	if err := encoding.ReadUint32LE(r, &e); err != nil {
		return nil, err
	}

	d, err := encoding.ReadBigInt(r)
	if err != nil {
		return nil, err
	}

	if n == nil || d == nil || e < 3 {
		return nil, errors.New("malformed authority key")
	}

	return &blind.PrivateKey{
		PublicKey: blind.PublicKey{N: n, E: int(e)},
		D:         d,
	}, nil
}

// SaveKeyFile writes the hex encoded key to path, readable by the owner only.
func SaveKeyFile(path string, key *blind.PrivateKey) error {
	buf := new(bytes.Buffer)
	if err := MarshalKey(buf, key); err != nil {
		return err
	}

	return ioutil.WriteFile(path, []byte(hex.EncodeToString(buf.Bytes())), 0600)
}

// LoadKeyFile reads a key written by SaveKeyFile.
func LoadKeyFile(path string) (*blind.PrivateKey, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "key file %s not found", path)
		}
		return nil, err
	}

	raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Wrap(err, "key file is not hex encoded")
	}

	return UnmarshalKey(bytes.NewBuffer(raw))
}

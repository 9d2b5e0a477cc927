// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package coin

import (
	"bytes"

	"github.com/dusk-network/dusk-ecash/pkg/encoding"
	"github.com/pkg/errors"
)

// Marshal writes the public part of a coin: amount, guid, shares, hashes and
// signature. The owner and the blinding data are never written.
func Marshal(w *bytes.Buffer, c *Coin) error {
	if err := encoding.WriteUint64LE(w, c.Amount); err != nil {
		return err
	}

	if err := encoding.WriteString(w, c.GUID); err != nil {
		return err
	}

	if err := MarshalRIS(w, c.Left); err != nil {
		return err
	}

	if err := MarshalRIS(w, c.Right); err != nil {
		return err
	}

	if err := writeStrings(w, c.LeftHashes); err != nil {
		return err
	}

	if err := writeStrings(w, c.RightHashes); err != nil {
		return err
	}

	return encoding.WriteBigInt(w, c.Signature)
}

// Unmarshal reads a coin written by Marshal. The coin is bound to params and
// is unblinded if it carries a signature.
func Unmarshal(r *bytes.Buffer, params Params) (*Coin, error) {
	c := &Coin{params: params}

	if err := encoding.ReadUint64LE(r, &c.Amount); err != nil {
		return nil, err
	}

	var err error
	if c.GUID, err = encoding.ReadString(r); err != nil {
		return nil, err
	}

	if c.Left, err = UnmarshalRIS(r); err != nil {
		return nil, err
	}

	if c.Right, err = UnmarshalRIS(r); err != nil {
		return nil, err
	}

	if c.LeftHashes, err = readStrings(r); err != nil {
		return nil, err
	}

	if c.RightHashes, err = readStrings(r); err != nil {
		return nil, err
	}

	sig, err := encoding.ReadBigInt(r)
	if err != nil {
		return nil, err
	}

	if sig != nil {
		c.Signature = sig
		c.state = int32(StateUnblinded)
	}

	if err := c.checkShape(); err != nil {
		return nil, err
	}

	return c, nil
}

// MarshalRIS writes a one-sided disclosure.
func MarshalRIS(w *bytes.Buffer, ris RIS) error {
	return encoding.WriteVarBytesSlice(w, ris)
}

// UnmarshalRIS reads a disclosure written by MarshalRIS.
func UnmarshalRIS(r *bytes.Buffer) (RIS, error) {
	shares, err := encoding.ReadVarBytesSlice(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read identity string")
	}
	return RIS(shares), nil
}

func writeStrings(w *bytes.Buffer, ss []string) error {
	if err := encoding.WriteVarInt(w, uint64(len(ss))); err != nil {
		return err
	}

	for _, s := range ss {
		if err := encoding.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func readStrings(r *bytes.Buffer) ([]string, error) {
	n, err := encoding.ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	if n > uint64(r.Len()) {
		return nil, errors.Errorf("string list length %d exceeds remaining %d bytes", n, r.Len())
	}

	ss := make([]string, n)
	for i := range ss {
		if ss[i], err = encoding.ReadString(r); err != nil {
			return nil, err
		}
	}
	return ss, nil
}

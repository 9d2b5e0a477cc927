// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Variable length data serialization functions

package encoding

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
)

// ReadVarBytes will read a CompactSize int denoting the length, then
// proceeds to read that amount of bytes from r into b.
func ReadVarBytes(r *bytes.Buffer, b *[]byte) error {
	c, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	// Reject lengths that exceed what is left in the buffer, to avoid
	// allocating on behalf of a corrupted length prefix.
	if c > uint64(r.Len()) {
		return fmt.Errorf("attempting to decode data which is too large %d", c)
	}

	*b = make([]byte, c)
	if _, err := io.ReadFull(r, *b); err != nil {
		return err
	}
	return nil
}

// WriteVarBytes will serialize a CompactSize int denoting the length, then
// proceeds to write b into w.
func WriteVarBytes(w *bytes.Buffer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}

	_, err := w.Write(b)
	return err
}

// ReadString reads the data with ReadVarBytes and returns it as a string.
func ReadString(r *bytes.Buffer) (string, error) {
	var b []byte
	if err := ReadVarBytes(r, &b); err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteString will write string s as a slice of bytes through WriteVarBytes.
func WriteString(w *bytes.Buffer, s string) error {
	return WriteVarBytes(w, []byte(s))
}

// ReadVarBytesSlice reads a CompactSize count followed by that many
// variable length byte slices.
func ReadVarBytesSlice(r *bytes.Buffer) ([][]byte, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	// every element carries at least its length prefix
	if n > uint64(r.Len()) {
		return nil, fmt.Errorf("attempting to decode %d elements from %d bytes", n, r.Len())
	}

	s := make([][]byte, n)
	for i := range s {
		if err := ReadVarBytes(r, &s[i]); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WriteVarBytesSlice writes the element count followed by each element
// through WriteVarBytes.
func WriteVarBytesSlice(w *bytes.Buffer, s [][]byte) error {
	if err := WriteVarInt(w, uint64(len(s))); err != nil {
		return err
	}

	for _, b := range s {
		if err := WriteVarBytes(w, b); err != nil {
			return err
		}
	}

	return nil
}

// ReadBigInt reads an unsigned big integer written by WriteBigInt. A zero
// length decodes to nil, so zero and nil share an encoding.
func ReadBigInt(r *bytes.Buffer) (*big.Int, error) {
	var b []byte
	if err := ReadVarBytes(r, &b); err != nil {
		return nil, err
	}

	if len(b) == 0 {
		return nil, nil
	}

	return new(big.Int).SetBytes(b), nil
}

// WriteBigInt writes the big-endian magnitude of v. Negative values are
// rejected.
func WriteBigInt(w *bytes.Buffer, v *big.Int) error {
	if v == nil {
		return WriteVarBytes(w, nil)
	}

	if v.Sign() < 0 {
		return fmt.Errorf("cannot encode negative integer %s", v)
	}

	return WriteVarBytes(w, v.Bytes())
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Serialization functions for CompactSize integers

package encoding

import (
	"bytes"

	"github.com/pkg/errors"
)

var errNonCanonical = errors.New("non-canonical encoding")

// ReadVarInt reads the discriminator byte of a CompactSize int,
// and then deserializes the number accordingly.
func ReadVarInt(r *bytes.Buffer) (uint64, error) {
	var d uint8
	if err := ReadUint8(r, &d); err != nil {
		return 0, err
	}

	switch d {
	case 0xff:
		var v uint64
		if err := ReadUint64LE(r, &v); err != nil {
			return 0, err
		}

		if v < uint64(0x100000000) {
			return 0, errNonCanonical
		}
		return v, nil
	case 0xfe:
		var v uint32
		if err := ReadUint32LE(r, &v); err != nil {
			return 0, err
		}

		if v < uint32(0x10000) {
			return 0, errNonCanonical
		}
		return uint64(v), nil
	case 0xfd:
		var v uint16
		if err := ReadUint16LE(r, &v); err != nil {
			return 0, err
		}

		if v < uint16(0xfd) {
			return 0, errNonCanonical
		}
		return uint64(v), nil
	default:
		return uint64(d), nil
	}
}

// WriteVarInt writes a CompactSize integer with a number of bytes depending on its value.
func WriteVarInt(w *bytes.Buffer, v uint64) error {
	if v < 0xfd {
		return WriteUint8(w, uint8(v))
	}

	if v <= 1<<16-1 {
		if err := WriteUint8(w, 0xfd); err != nil {
			return err
		}
		return WriteUint16LE(w, uint16(v))
	}

	if v <= 1<<32-1 {
		if err := WriteUint8(w, 0xfe); err != nil {
			return err
		}
		return WriteUint32LE(w, uint32(v))
	}

	if err := WriteUint8(w, 0xff); err != nil {
		return err
	}

	return WriteUint64LE(w, v)
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package encoding

import (
	"bytes"
	"encoding/binary"
	"io"
)

// ReadUint8 reads a single byte from r into v.
func ReadUint8(r *bytes.Buffer, v *uint8) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}

	*v = b
	return nil
}

// ReadUint16LE reads two little-endian bytes from r into v.
func ReadUint16LE(r *bytes.Buffer, v *uint16) error {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}

	*v = binary.LittleEndian.Uint16(b[:])
	return nil
}

// ReadUint32LE reads four little-endian bytes from r into v.
func ReadUint32LE(r *bytes.Buffer, v *uint32) error {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}

	*v = binary.LittleEndian.Uint32(b[:])
	return nil
}

// ReadUint64LE reads eight little-endian bytes from r into v.
func ReadUint64LE(r *bytes.Buffer, v *uint64) error {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}

	*v = binary.LittleEndian.Uint64(b[:])
	return nil
}

// WriteUint8 writes a single byte.
func WriteUint8(w *bytes.Buffer, v uint8) error {
	return w.WriteByte(v)
}

// WriteUint16LE writes v as two little-endian bytes.
func WriteUint16LE(w *bytes.Buffer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteUint32LE writes v as four little-endian bytes.
func WriteUint32LE(w *bytes.Buffer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteUint64LE writes v as eight little-endian bytes.
func WriteUint64LE(w *bytes.Buffer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadBool reads a single byte and interprets anything non-zero as true.
func ReadBool(r *bytes.Buffer, v *bool) error {
	var b uint8
	if err := ReadUint8(r, &b); err != nil {
		return err
	}

	*v = b != 0
	return nil
}

// WriteBool writes a boolean as a single byte.
func WriteBool(w *bytes.Buffer, v bool) error {
	if v {
		return WriteUint8(w, 1)
	}

	return WriteUint8(w, 0)
}

// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ledger

import (
	"bytes"
	"time"

	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/detector"
	"github.com/dusk-network/dusk-ecash/pkg/encoding"
	"github.com/pkg/errors"
)

// Deposit is one disclosure handed in by a merchant.
type Deposit struct {
	Merchant string
	RIS      coin.RIS
	Time     time.Time
}

// Record is the redemption history of a single coin. The ledger never
// stores issued coins, only what merchants deposit.
type Record struct {
	GUID     string
	Amount   uint64
	State    coin.State
	Deposits []Deposit
	// Verdict is set once the record is flagged.
	Verdict *detector.Verdict
}

// MarshalRecord writes r into buf.
func MarshalRecord(buf *bytes.Buffer, r Record) error {
	if err := encoding.WriteString(buf, r.GUID); err != nil {
		return err
	}

	if err := encoding.WriteUint64LE(buf, r.Amount); err != nil {
		return err
	}

	if err := encoding.WriteUint8(buf, uint8(r.State)); err != nil {
		return err
	}

	if err := encoding.WriteVarInt(buf, uint64(len(r.Deposits))); err != nil {
		return err
	}

	for _, d := range r.Deposits {
		if err := encoding.WriteString(buf, d.Merchant); err != nil {
			return err
		}

		if err := encoding.WriteUint64LE(buf, uint64(d.Time.Unix())); err != nil {
			return err
		}

		if err := coin.MarshalRIS(buf, d.RIS); err != nil {
			return err
		}
	}

	if err := encoding.WriteBool(buf, r.Verdict != nil); err != nil {
		return err
	}

	if r.Verdict == nil {
		return nil
	}

	if err := encoding.WriteUint8(buf, uint8(r.Verdict.Outcome)); err != nil {
		return err
	}

	if err := encoding.WriteString(buf, r.Verdict.Identity); err != nil {
		return err
	}

	return encoding.WriteUint32LE(buf, uint32(int32(r.Verdict.Slot)))
}

// UnmarshalRecord reads a record written by MarshalRecord.
func UnmarshalRecord(buf *bytes.Buffer) (Record, error) {
	var (
		r   Record
		err error
	)

	if r.GUID, err = encoding.ReadString(buf); err != nil {
		return Record{}, err
	}

	if err = encoding.ReadUint64LE(buf, &r.Amount); err != nil {
		return Record{}, err
	}

	var state uint8
	if err = encoding.ReadUint8(buf, &state); err != nil {
		return Record{}, err
	}
	r.State = coin.State(state)

	n, err := encoding.ReadVarInt(buf)
	if err != nil {
		return Record{}, err
	}

	if n > uint64(buf.Len()) {
		return Record{}, errors.Errorf("record claims %d deposits in %d bytes", n, buf.Len())
	}

	r.Deposits = make([]Deposit, n)
	for i := range r.Deposits {
		d := &r.Deposits[i]
		if d.Merchant, err = encoding.ReadString(buf); err != nil {
			return Record{}, err
		}

		var ts uint64
		if err = encoding.ReadUint64LE(buf, &ts); err != nil {
			return Record{}, err
		}
		d.Time = time.Unix(int64(ts), 0)

		if d.RIS, err = coin.UnmarshalRIS(buf); err != nil {
			return Record{}, err
		}
	}

	var flagged bool
	if err = encoding.ReadBool(buf, &flagged); err != nil {
		return Record{}, err
	}

	if !flagged {
		return r, nil
	}

	v := detector.Verdict{GUID: r.GUID}

	var outcome uint8
	if err = encoding.ReadUint8(buf, &outcome); err != nil {
		return Record{}, err
	}
	v.Outcome = detector.Outcome(outcome)

	if v.Identity, err = encoding.ReadString(buf); err != nil {
		return Record{}, err
	}

	var slot uint32
	if err = encoding.ReadUint32LE(buf, &slot); err != nil {
		return Record{}, err
	}
	v.Slot = int(int32(slot))

	r.Verdict = &v
	return r, nil
}

func encodeRecord(r Record) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := MarshalRecord(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(b []byte) (Record, error) {
	return UnmarshalRecord(bytes.NewBuffer(b))
}

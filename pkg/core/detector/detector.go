// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package detector

import (
	"bytes"
	"fmt"

	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "detector"})

// Outcome is the conclusion drawn from two disclosures of one coin.
type Outcome uint8

// Possible outcomes.
const (
	// NoIdentityRevealed means the coin was spent once or the same
	// disclosure was submitted twice.
	NoIdentityRevealed Outcome = iota
	// PayerDoubleSpent means the owner identity was recovered.
	PayerDoubleSpent
	// MerchantCheated means the disclosures differ but do not recombine to
	// an identity, so one of them was not produced by an honest acceptance.
	MerchantCheated
)

func (o Outcome) String() string {
	switch o {
	case NoIdentityRevealed:
		return "no identity revealed"
	case PayerDoubleSpent:
		return "payer double spent"
	case MerchantCheated:
		return "merchant cheated"
	default:
		return "unknown"
	}
}

// Verdict reports who is responsible for a coin redeemed twice.
type Verdict struct {
	GUID    string
	Outcome Outcome
	// Identity is set for PayerDoubleSpent only.
	Identity string
	// Slot is the first differing slot, or -1.
	Slot int
}

func (v Verdict) String() string {
	switch v.Outcome {
	case PayerDoubleSpent:
		return fmt.Sprintf("coin %s was double spent by %s", v.GUID, v.Identity)
	case MerchantCheated:
		return fmt.Sprintf("coin %s: a merchant replayed a forged disclosure (slot %d)", v.GUID, v.Slot)
	default:
		return fmt.Sprintf("coin %s was spent once or the same disclosure was replayed: no identity revealed", v.GUID)
	}
}

// Detector recovers double-spender identities. It does not check the
// disclosures against the coin commitments.
type Detector struct {
	hash hash.Func
}

// New returns a Detector decoding identities checksummed with h.
func New(h hash.Func) *Detector {
	if h == nil {
		h = hash.Sha256
	}
	return &Detector{hash: h}
}

// DetermineCheater runs a sha256 Detector.
func DetermineCheater(guid string, ris1, ris2 coin.RIS) Verdict {
	return New(hash.Sha256).DetermineCheater(guid, ris1, ris2)
}

// DetermineCheater scans both disclosures up to the shorter length and
// recombines the first slot where they differ.
func (d *Detector) DetermineCheater(guid string, ris1, ris2 coin.RIS) Verdict {
	n := len(ris1)
	if len(ris2) < n {
		n = len(ris2)
	}

	for i := 0; i < n; i++ {
		if bytes.Equal(ris1[i], ris2[i]) {
			continue
		}

		v := Verdict{GUID: guid, Outcome: MerchantCheated, Slot: i}

		slot, err := coin.Recombine(ris1[i], ris2[i])
		if err == nil {
			if identity, ok := slot.Identity(d.hash); ok {
				v.Outcome = PayerDoubleSpent
				v.Identity = identity
			}
		}

		log.WithFields(logger.Fields{
			"guid":    guid,
			"slot":    i,
			"outcome": v.Outcome,
		}).Warnln(v.String())
		return v
	}

	return Verdict{GUID: guid, Outcome: NoIdentityRevealed, Slot: -1}
}

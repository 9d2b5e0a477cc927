// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package issuance

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrIssuanceConsumed is returned when a pending issuance is used after
	// it was signed or aborted.
	ErrIssuanceConsumed = errors.New("issuance already consumed")
	// ErrBlindedMismatch is returned when an opened candidate does not
	// re-derive the blinded value the issuer received.
	ErrBlindedMismatch = errors.New("opened candidate does not match its blinded value")
	// ErrMissingOpening is returned when an unselected candidate comes
	// without its factor or document.
	ErrMissingOpening = errors.New("candidate opening is missing")
)

// WrongCandidateCountError is returned when a batch does not hold exactly
// the configured number of candidates.
type WrongCandidateCountError struct {
	Got  int
	Want int
}

func (e *WrongCandidateCountError) Error() string {
	return fmt.Sprintf("expected %d candidates, got %d", e.Want, e.Got)
}

// CandidateVerificationError reports the first unselected candidate that
// failed to prove well-formedness. Nothing is signed when it is returned.
type CandidateVerificationError struct {
	Index int
	Err   error
}

func (e *CandidateVerificationError) Error() string {
	return fmt.Sprintf("candidate %d failed verification: %v", e.Index, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CandidateVerificationError) Unwrap() error {
	return e.Err
}

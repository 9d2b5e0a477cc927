// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package issuance

import (
	"math/big"
	"sync/atomic"

	"github.com/dusk-network/dusk-ecash/pkg/crypto/blind"
	"github.com/dusk-network/dusk-ecash/pkg/crypto/hash"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "issuance"})

const (
	// DefaultCopies is the default number of candidates per batch.
	DefaultCopies = 10
	// MinCopies is the smallest batch that leaves anything to verify.
	MinCopies = 2
)

// Signer blind-signs on behalf of the issuer.
type Signer interface {
	PublicKey() blind.PublicKey
	Hash() hash.Func
	BlindSign(blinded *big.Int) (*big.Int, error)
}

// Validator checks the content of an opened, unselected document.
type Validator func(index int, document []byte) error

// Option configures an Issuer.
type Option func(*Issuer)

// WithValidator adds a content check run on every opened document before
// its blinded value is re-derived.
func WithValidator(v Validator) Option {
	return func(i *Issuer) {
		i.validators = append(i.validators, v)
	}
}

// Issuer runs the cut-and-choose protocol: out of a batch of blinded
// candidates it signs exactly one, picked at random, once every other
// candidate has been opened and checked.
type Issuer struct {
	signer     Signer
	copies     int
	rng        random.Source
	validators []Validator
}

// NewIssuer returns an Issuer expecting batches of the given size.
func NewIssuer(signer Signer, copies int, rng random.Source, opts ...Option) (*Issuer, error) {
	if signer == nil {
		return nil, errors.New("issuer needs a signer")
	}

	if copies < MinCopies {
		return nil, errors.Errorf("cut-and-choose needs at least %d copies, got %d", MinCopies, copies)
	}

	if rng == nil {
		rng = random.Crypto
	}

	i := &Issuer{signer: signer, copies: copies, rng: rng}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Copies returns the batch size.
func (i *Issuer) Copies() int {
	return i.copies
}

// BeginIssuance checks the batch and commits to the index that will be
// signed. The index never changes for the returned PendingIssuance.
func (i *Issuer) BeginIssuance(blinded []*big.Int) (int, *PendingIssuance, error) {
	if len(blinded) != i.copies {
		return 0, nil, &WrongCandidateCountError{Got: len(blinded), Want: i.copies}
	}

	pub := i.signer.PublicKey()
	batch := make([]*big.Int, len(blinded))
	for idx, b := range blinded {
		if b == nil || b.Sign() <= 0 || b.Cmp(pub.N) >= 0 {
			return 0, nil, &CandidateVerificationError{Index: idx, Err: blind.ErrOutOfRange}
		}
		batch[idx] = new(big.Int).Set(b)
	}

	selected, err := i.rng.Intn(i.copies)
	if err != nil {
		return 0, nil, errors.Wrap(err, "could not select candidate")
	}

	log.WithField("selected", selected).Debugln("cut-and-choose index committed")

	return selected, &PendingIssuance{
		issuer:   i,
		blinded:  batch,
		selected: selected,
	}, nil
}

// Issue runs BeginIssuance and VerifyAndSign in one call. respond is invoked
// once with the selected index and must return the openings of the batch.
func (i *Issuer) Issue(blinded []*big.Int, respond func(selected int) ([]*big.Int, [][]byte, error)) (int, *big.Int, error) {
	selected, pending, err := i.BeginIssuance(blinded)
	if err != nil {
		return 0, nil, err
	}

	factors, documents, err := respond(selected)
	if err != nil {
		pending.Abort()
		return 0, nil, err
	}

	sig, err := pending.VerifyAndSign(factors, documents)
	if err != nil {
		return 0, nil, err
	}
	return selected, sig, nil
}

// PendingIssuance is a batch whose index has been selected but which has not
// been signed yet. It can be consumed exactly once.
type PendingIssuance struct {
	issuer   *Issuer
	blinded  []*big.Int
	selected int
	consumed int32
}

// Selected returns the committed index.
func (p *PendingIssuance) Selected() int {
	return p.selected
}

// Abort consumes the pending issuance without signing.
func (p *PendingIssuance) Abort() {
	if atomic.CompareAndSwapInt32(&p.consumed, 0, 1) {
		log.WithField("selected", p.selected).Debugln("issuance aborted")
	}
}

// VerifyAndSign opens every unselected candidate and, if all of them
// re-derive the blinded value received for their index, signs the selected
// one. factors and documents must be as long as the batch; their selected
// slot is ignored. Any failure rejects the whole batch.
func (p *PendingIssuance) VerifyAndSign(factors []*big.Int, documents [][]byte) (*big.Int, error) {
	if !atomic.CompareAndSwapInt32(&p.consumed, 0, 1) {
		return nil, ErrIssuanceConsumed
	}

	copies := p.issuer.copies
	if len(factors) != copies {
		return nil, &WrongCandidateCountError{Got: len(factors), Want: copies}
	}

	if len(documents) != copies {
		return nil, &WrongCandidateCountError{Got: len(documents), Want: copies}
	}

	for idx := 0; idx < copies; idx++ {
		if idx == p.selected {
			continue
		}

		if err := p.verifyCandidate(idx, factors[idx], documents[idx]); err != nil {
			log.WithFields(logger.Fields{
				"selected": p.selected,
				"index":    idx,
			}).WithError(err).Warnln("candidate rejected, batch refused")
			return nil, &CandidateVerificationError{Index: idx, Err: err}
		}
	}

	sig, err := p.issuer.signer.BlindSign(p.blinded[p.selected])
	if err != nil {
		return nil, errors.Wrap(err, "could not sign selected candidate")
	}

	log.WithField("selected", p.selected).Debugln("selected candidate signed")
	return sig, nil
}

func (p *PendingIssuance) verifyCandidate(idx int, factor *big.Int, document []byte) error {
	if factor == nil || document == nil {
		return ErrMissingOpening
	}

	for _, validate := range p.issuer.validators {
		if err := validate(idx, document); err != nil {
			return err
		}
	}

	m, err := hash.ToBigInt(p.issuer.signer.Hash(), document)
	if err != nil {
		return err
	}

	expected, err := blind.BlindWithFactor(m, factor, p.issuer.signer.PublicKey())
	if err != nil {
		return err
	}

	if expected.Cmp(p.blinded[idx]) != 0 {
		return ErrBlindedMismatch
	}
	return nil
}

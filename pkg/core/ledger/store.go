// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ledger

import (
	"github.com/pkg/errors"
)

// ErrNotFound is returned for a coin that was never deposited.
var ErrNotFound = errors.New("redemption record not found")

// Supported drivers.
const (
	DriverHashmap = "hashmap"
	DriverBuntdb  = "buntdb"
	DriverLeveldb = "leveldb"
	DriverStorm   = "storm"
)

const keyPrefix = "rr:"

// Store persists redemption records keyed by coin guid.
type Store interface {
	// Create instantiates the underlying data storage.
	Create(path string) error
	// Put sets the record for its guid. It overwrites any previous value.
	Put(r Record) error
	// Get retrieves the record of a guid or ErrNotFound.
	Get(guid string) (Record, error)
	// Contains returns true if a record exists for guid.
	Contains(guid string) bool
	// Range iterates through all records. An error from fn stops the
	// iteration and is returned.
	Range(fn func(r Record) error) error
	// Len returns the number of records.
	Len() int
	// Close closes the backend.
	Close() error
}

// NewStore returns an uncreated store for the given driver.
func NewStore(driver string) (Store, error) {
	switch driver {
	case DriverHashmap, "":
		return new(HashMap), nil
	case DriverBuntdb:
		return new(buntdbStore), nil
	case DriverLeveldb:
		return new(leveldbStore), nil
	case DriverStorm:
		return new(stormStore), nil
	default:
		return nil, errors.Errorf("unknown ledger driver %q", driver)
	}
}

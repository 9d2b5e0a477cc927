// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ledger

import (
	"strings"

	"github.com/tidwall/buntdb"
)

// buntdbStore keeps records in a buntdb file synced every second.
type buntdbStore struct {
	db *buntdb.DB
}

// Create opens or creates the buntdb file at path. An empty path opens an
// in-memory database.
func (b *buntdbStore) Create(path string) error {
	if path == "" {
		path = ":memory:"
	}

	db, err := buntdb.Open(path)
	if err != nil {
		return err
	}

	var config buntdb.Config
	if err := db.ReadConfig(&config); err != nil {
		_ = db.Close()
		return err
	}

	config.SyncPolicy = buntdb.EverySecond
	config.AutoShrinkDisabled = false

	if err := db.SetConfig(config); err != nil {
		_ = db.Close()
		return err
	}

	b.db = db
	return nil
}

func (b *buntdbStore) Put(r Record) error {
	value, err := encodeRecord(r)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(keyPrefix+r.GUID, string(value), nil)
		return err
	})
}

func (b *buntdbStore) Get(guid string) (Record, error) {
	var value string

	err := b.db.View(func(tx *buntdb.Tx) error {
		var err error
		value, err = tx.Get(keyPrefix + guid)
		return err
	})

	if err == buntdb.ErrNotFound {
		return Record{}, ErrNotFound
	}

	if err != nil {
		return Record{}, err
	}

	return decodeRecord([]byte(value))
}

func (b *buntdbStore) Contains(guid string) bool {
	err := b.db.View(func(tx *buntdb.Tx) error {
		_, err := tx.Get(keyPrefix + guid)
		return err
	})
	return err == nil
}

func (b *buntdbStore) Range(fn func(r Record) error) error {
	var fnErr error

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("", func(key, value string) bool {
			if !strings.HasPrefix(key, keyPrefix) {
				return true
			}

			r, err := decodeRecord([]byte(value))
			if err != nil {
				fnErr = err
				return false
			}

			if err := fn(r); err != nil {
				fnErr = err
				// discontinue iteration
				return false
			}

			return true
		})
	})

	if fnErr != nil {
		return fnErr
	}
	return err
}

func (b *buntdbStore) Len() int {
	var n int

	_ = b.db.View(func(tx *buntdb.Tx) error {
		n, _ = tx.Len()
		return nil
	})
	return n
}

func (b *buntdbStore) Close() error {
	return b.db.Close()
}

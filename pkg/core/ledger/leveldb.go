// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ledger

import (
	"os"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// leveldbStore keeps records in a goleveldb directory.
type leveldbStore struct {
	db *leveldb.DB
}

// Create opens the leveldb directory at path, recovering it if the
// manifest is corrupted.
func (l *leveldbStore) Create(path string) error {
	db, err := leveldb.OpenFile(path, nil)

	// Try to recover if corrupted.
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		log.WithField("path", path).Warnln("ledger corrupted, recovering")
		db, err = leveldb.RecoverFile(path, nil)
	}

	if _, accessdenied := err.(*os.PathError); accessdenied {
		return errors.Wrapf(err, "could not open or create ledger at %s", path)
	}

	if err != nil {
		return err
	}

	l.db = db
	return nil
}

func (l *leveldbStore) Put(r Record) error {
	value, err := encodeRecord(r)
	if err != nil {
		return err
	}
	return l.db.Put([]byte(keyPrefix+r.GUID), value, nil)
}

func (l *leveldbStore) Get(guid string) (Record, error) {
	value, err := l.db.Get([]byte(keyPrefix+guid), nil)
	if err == leveldb.ErrNotFound {
		return Record{}, ErrNotFound
	}

	if err != nil {
		return Record{}, err
	}

	return decodeRecord(value)
}

func (l *leveldbStore) Contains(guid string) bool {
	ok, err := l.db.Has([]byte(keyPrefix+guid), nil)
	return err == nil && ok
}

func (l *leveldbStore) Range(fn func(r Record) error) error {
	iter := l.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer iter.Release()

	for iter.Next() {
		// the iterator reuses its buffers
		r, err := decodeRecord(append([]byte(nil), iter.Value()...))
		if err != nil {
			return err
		}

		if err := fn(r); err != nil {
			return err
		}
	}

	return iter.Error()
}

func (l *leveldbStore) Len() int {
	iter := l.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer iter.Release()

	var n int
	for iter.Next() {
		n++
	}
	return n
}

func (l *leveldbStore) Close() error {
	return l.db.Close()
}

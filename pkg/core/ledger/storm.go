// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ledger

import (
	"github.com/asdine/storm/v3"
)

type stormRecord struct {
	GUID string `storm:"id"`
	Data []byte
}

// stormStore keeps records in a storm (bbolt) file.
type stormStore struct {
	db *storm.DB
}

func (s *stormStore) Create(path string) error {
	db, err := storm.Open(path)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return err
	}

	s.db = db
	return nil
}

func (s *stormStore) Put(r Record) error {
	data, err := encodeRecord(r)
	if err != nil {
		return err
	}

	sr := &stormRecord{GUID: r.GUID, Data: data}
	err = s.db.Save(sr)
	if err == storm.ErrAlreadyExists {
		err = s.db.Update(sr)
	}
	return err
}

func (s *stormStore) Get(guid string) (Record, error) {
	var sr stormRecord
	err := s.db.One("GUID", guid, &sr)
	if err == storm.ErrNotFound {
		return Record{}, ErrNotFound
	}

	if err != nil {
		return Record{}, err
	}

	return decodeRecord(sr.Data)
}

func (s *stormStore) Contains(guid string) bool {
	_, err := s.Get(guid)
	return err == nil
}

func (s *stormStore) Range(fn func(r Record) error) error {
	var all []stormRecord
	if err := s.db.All(&all); err != nil {
		return err
	}

	for _, sr := range all {
		r, err := decodeRecord(sr.Data)
		if err != nil {
			return err
		}

		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *stormStore) Len() int {
	n, err := s.db.Count(&stormRecord{})
	if err != nil {
		log.WithError(err).Warnln("could not count ledger records")
		return 0
	}
	return n
}

func (s *stormStore) Close() error {
	return s.db.Close()
}

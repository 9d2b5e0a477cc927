// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ledger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	cuckoo "github.com/seiflotfy/cuckoofilter"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "ledger"})

// DefaultFilterCapacity sizes the seen-guid filter when nothing is configured.
const DefaultFilterCapacity = 100000

var fileNames = map[string]string{
	DriverBuntdb:  "ledger.bunt",
	DriverLeveldb: "ledger.ldb",
	DriverStorm:   "ledger.storm",
}

// Ledger serializes updates to a Store and keeps a cuckoo filter of every
// deposited guid, so that coins never seen before skip the store lookup.
type Ledger struct {
	lock  sync.Mutex
	store Store

	filter *cuckoo.Filter
	// saturated is set once an insert into the filter fails; lookups then
	// always go to the store.
	saturated bool
}

// New creates the store of the given driver under dir.
func New(driver, dir string, filterCapacity uint) (*Ledger, error) {
	s, err := NewStore(driver)
	if err != nil {
		return nil, err
	}

	var path string
	if name, ok := fileNames[driver]; ok {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrapf(err, "could not create ledger dir %s", dir)
		}
		path = filepath.Join(dir, name)
	}

	if err := s.Create(path); err != nil {
		return nil, errors.Wrapf(err, "could not create %s ledger", driver)
	}

	l, err := NewWithStore(s, filterCapacity)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	log.WithFields(logger.Fields{
		"driver":  driver,
		"path":    path,
		"records": s.Len(),
	}).Infoln("ledger opened")

	return l, nil
}

// NewWithStore wraps a created store and loads its guids into the filter.
func NewWithStore(s Store, filterCapacity uint) (*Ledger, error) {
	if filterCapacity == 0 {
		filterCapacity = DefaultFilterCapacity
	}

	l := &Ledger{store: s, filter: cuckoo.NewFilter(filterCapacity)}

	err := s.Range(func(r Record) error {
		l.remember(r.GUID)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not load ledger")
	}

	return l, nil
}

func (l *Ledger) remember(guid string) {
	if l.saturated {
		return
	}

	if !l.filter.InsertUnique([]byte(guid)) && !l.filter.Lookup([]byte(guid)) {
		log.WithField("count", l.filter.Count()).Warnln("seen-guid filter is full")
		l.saturated = true
	}
}

// Seen returns false if guid was definitely never deposited.
func (l *Ledger) Seen(guid string) bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.seen(guid)
}

func (l *Ledger) seen(guid string) bool {
	return l.saturated || l.filter.Lookup([]byte(guid))
}

// Get returns the record of guid or ErrNotFound.
func (l *Ledger) Get(guid string) (Record, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if !l.seen(guid) {
		return Record{}, ErrNotFound
	}
	return l.store.Get(guid)
}

// Update runs fn on the current record of guid and stores the result, all
// under the ledger lock. found is false for a first deposit, in which case
// fn receives a zero Record with only GUID set. Nothing is stored if fn
// returns an error.
func (l *Ledger) Update(guid string, fn func(r *Record, found bool) error) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	r := Record{GUID: guid}
	found := false

	if l.seen(guid) {
		stored, err := l.store.Get(guid)
		switch {
		case err == nil:
			r, found = stored, true
		case err != ErrNotFound:
			return err
		}
	}

	if err := fn(&r, found); err != nil {
		return err
	}

	r.GUID = guid
	if err := l.store.Put(r); err != nil {
		return errors.Wrapf(err, "could not store record %s", guid)
	}

	l.remember(guid)
	return nil
}

// Range iterates through all records.
func (l *Ledger) Range(fn func(r Record) error) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.store.Range(fn)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.store.Len()
}

// Close closes the store.
func (l *Ledger) Close() error {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.store.Close()
}

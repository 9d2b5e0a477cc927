// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ledger

import (
	"sort"
	"sync"
)

// HashMap is an in-memory Store. Records are kept encoded so callers never
// share slices with the store.
type HashMap struct {
	lock sync.RWMutex
	data map[string][]byte
}

// Create ignores path.
func (m *HashMap) Create(path string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	return nil
}

// Put implements Store.
func (m *HashMap) Put(r Record) error {
	b, err := encodeRecord(r)
	if err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if m.data == nil {
		m.data = make(map[string][]byte)
	}

	m.data[r.GUID] = b
	return nil
}

// Get implements Store.
func (m *HashMap) Get(guid string) (Record, error) {
	m.lock.RLock()
	b, ok := m.data[guid]
	m.lock.RUnlock()

	if !ok {
		return Record{}, ErrNotFound
	}
	return decodeRecord(b)
}

// Contains implements Store.
func (m *HashMap) Contains(guid string) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()

	_, ok := m.data[guid]
	return ok
}

// Range iterates in guid order.
func (m *HashMap) Range(fn func(r Record) error) error {
	m.lock.RLock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	m.lock.RUnlock()

	sort.Strings(keys)

	for _, k := range keys {
		r, err := m.Get(k)
		if err == ErrNotFound {
			continue
		}

		if err != nil {
			return err
		}

		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// Len implements Store.
func (m *HashMap) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.data)
}

// Close implements Store.
func (m *HashMap) Close() error {
	return nil
}

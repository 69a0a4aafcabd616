// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package id

import (
	"sync"

	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/tidwall/btree"
)

var (
	ErrRegistryClosed = errors.New("identity registry is closed")
)

// Entry is an identity and the identifier issued for it.
type Entry struct {
	Key
	ID uint64 `json:"id"`
}

// Registry issues identifiers to identity keys. The n-th distinct key ever
// resolved gets identifier n. Entries are never removed or changed.
type Registry struct {
	mu sync.RWMutex
	// entries is nil after Close.
	entries *btree.BTreeG[Entry]
}

func NewRegistry() *Registry {
	return &Registry{
		entries: btree.NewBTreeGOptions(func(a, b Entry) bool {
			return keyLess(a.Key, b.Key)
		}, btree.Options{NoLocks: true}),
	}
}

// Resolve returns the identifier of vk, issuing the next one if vk was never
// seen. isNew is true only for the call that issued it. Lookup, numbering and
// insertion happen under one lock so concurrent first sights of a key cannot
// both win.
func (r *Registry) Resolve(vk ValidatedKey) (id uint64, isNew bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		return 0, false, errors.WithStack(ErrRegistryClosed)
	}
	if e, ok := r.entries.Get(Entry{Key: vk.key}); ok {
		return e.ID, false, nil
	}
	e := Entry{Key: vk.key, ID: uint64(r.entries.Len()) + 1}
	r.entries.Set(e)
	return e.ID, true, nil
}

// Lookup returns the identifier of a key without issuing one.
func (r *Registry) Lookup(key, tenant string) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.entries == nil {
		return 0, false
	}
	e, ok := r.entries.Get(Entry{Key: Key{Key: key, Tenant: tenant}})
	return e.ID, ok
}

// ListTenant returns the identities of a tenant ordered by key.
func (r *Registry) ListTenant(tenant string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]Entry, 0)
	if r.entries == nil {
		return entries
	}
	r.entries.Ascend(Entry{Key: Key{Tenant: tenant}}, func(e Entry) bool {
		if e.Tenant != tenant {
			return false
		}
		entries = append(entries, e)
		return true
	})
	return entries
}

// Len returns the number of distinct identities, which is also the last issued identifier.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.entries == nil {
		return 0
	}
	return r.entries.Len()
}

// Close discards all identities. Later resolutions fail with ErrRegistryClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}

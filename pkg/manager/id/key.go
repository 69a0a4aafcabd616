// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package id

import (
	"regexp"

	"github.com/pingcap/msgstore/lib/util/errors"
)

var (
	// ErrInvalidKey is the class of every FormatError.
	ErrInvalidKey = errors.New("invalid key")

	keyPattern = regexp.MustCompile(`^K-[a-z0-9]{5}-[A-Z]$`)
)

// Key identifies one logical message. Both fields compare byte-exact.
type Key struct {
	Key    string `json:"key"`
	Tenant string `json:"tenant"`
}

func (k Key) String() string {
	return k.Tenant + "/" + k.Key
}

// keyLess orders keys by tenant first so that the keys of a tenant are adjacent.
func keyLess(a, b Key) bool {
	if a.Tenant != b.Tenant {
		return a.Tenant < b.Tenant
	}
	return a.Key < b.Key
}

// ValidatedKey is a Key whose key field matched the key pattern.
// It can only be created by Validate.
type ValidatedKey struct {
	key Key
}

func (vk ValidatedKey) Key() Key {
	return vk.key
}

// FormatError reports a key that does not match K-xxxxx-X.
type FormatError struct {
	Key string
}

func (e *FormatError) Error() string {
	return "Key is wrong: " + e.Key
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidKey
}

// Validate checks that key is "K-", five lowercase letters or digits, "-" and
// one uppercase letter. The tenant is not checked.
func Validate(key, tenant string) (ValidatedKey, error) {
	if !keyPattern.MatchString(key) {
		return ValidatedKey{}, &FormatError{Key: key}
	}
	return ValidatedKey{key: Key{Key: key, Tenant: tenant}}, nil
}

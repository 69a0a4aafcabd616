// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
)

var _ error = &WError{}

// WError pairs a class error with the underlying cause. Is matches the class,
// Unwrap returns the cause.
type WError struct {
	class error
	cause error
}

func (e *WError) Error() string {
	if e.cause == nil {
		return e.class.Error()
	}
	return e.class.Error() + ": " + e.cause.Error()
}

func (e *WError) Is(target error) bool {
	return errors.Is(e.class, target)
}

func (e *WError) Unwrap() error {
	return e.cause
}

// Class returns the class error.
func (e *WError) Class() error {
	return e.class
}

// Wrap classifies cause as class, so that `Is(err, class)` holds and
// `Unwrap(err) == cause`. A nil class returns cause as is.
func Wrap(class error, cause error) error {
	if class == nil {
		return cause
	}
	return &WError{class: class, cause: cause}
}

// Wrapf is like Wrap, with the cause built by fmt.Errorf.
func Wrapf(class error, format string, args ...any) error {
	if class == nil {
		return nil
	}
	return &WError{class: class, cause: fmt.Errorf(format, args...)}
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"strings"
)

var _ error = &MError{}

// MError groups several errors under one class.
type MError struct {
	class  error
	causes []error
}

func (e *MError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.class.Error())
	sb.WriteString(":")
	for _, c := range e.causes {
		sb.WriteString("\n\t")
		sb.WriteString(c.Error())
	}
	return sb.String()
}

func (e *MError) Is(target error) bool {
	if errors.Is(e.class, target) {
		return true
	}
	for _, c := range e.causes {
		if errors.Is(c, target) {
			return true
		}
	}
	return false
}

// Cause returns the collected errors.
func (e *MError) Cause() []error {
	return e.causes
}

// Collect drops nil errors and groups the rest under class. It returns nil
// when nothing is left. Unwrap is a noop on the result, use Cause instead.
func Collect(class error, causes ...error) error {
	errs := make([]error, 0, len(causes))
	for _, c := range causes {
		if c != nil {
			errs = append(errs, c)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &MError{class: class, causes: errs}
}

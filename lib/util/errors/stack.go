// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
)

const defaultStackDepth = 32

var (
	_ error         = &Error{}
	_ fmt.Formatter = &Error{}
)

// Error attaches the call stack of its creation to an error.
type Error struct {
	err   error
	trace []uintptr
}

// WithStack records the current stack. It returns nil for a nil error and
// keeps the first trace if err already carries one.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	e := &Error{err: err, trace: make([]uintptr, defaultStackDepth)}
	n := runtime.Callers(2, e.trace)
	e.trace = e.trace[:n]
	return e
}

// Format prints the stack for %v and %+v. %s prints the message only.
func (e *Error) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		fmt.Fprintf(st, "%v", e.err)
		e.writeTrace(st, st.Flag('+'))
	case 's':
		io.WriteString(st, e.err.Error())
	}
}

func (e *Error) writeTrace(w io.Writer, withLine bool) {
	frames := runtime.CallersFrames(e.trace)
	for {
		fr, more := frames.Next()
		fn := fr.Function
		if fn == "" {
			fn = "unknown"
		}
		io.WriteString(w, "\n"+fn+"\n\t"+fr.File)
		if withLine {
			io.WriteString(w, ":"+strconv.Itoa(fr.Line))
		}
		if !more {
			return
		}
	}
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

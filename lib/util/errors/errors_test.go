// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package errors_test

import (
	"fmt"
	"testing"

	serr "github.com/pingcap/msgstore/lib/util/errors"
	"github.com/stretchr/testify/require"
)

func TestOfficialAPI(t *testing.T) {
	e1 := serr.New("t")
	e2 := fmt.Errorf("%w: f", e1)

	require.True(t, e1 == serr.Unwrap(e2))
	require.True(t, serr.Is(e2, e1))
	require.True(t, serr.As(e2, &e1))
}

func TestWithStack(t *testing.T) {
	require.NoError(t, serr.WithStack(nil))

	e1 := serr.New("stacked")
	e := serr.WithStack(e1)
	require.ErrorIs(t, e, e1)
	require.Equal(t, "stacked", e.Error())
	require.Equal(t, "stacked", fmt.Sprintf("%s", e))
	require.Contains(t, fmt.Sprintf("%+v", e), "TestWithStack")
	require.Same(t, e, serr.WithStack(e), "trace is recorded only once")
}

func TestWrap(t *testing.T) {
	class := serr.New("tt")
	cause := serr.New("dd")
	e := serr.Wrap(class, cause)
	require.ErrorIs(t, e, class)
	require.ErrorIs(t, e, cause)
	require.Equal(t, cause, serr.Unwrap(e))
	require.Equal(t, "tt: dd", e.Error())

	require.Equal(t, cause, serr.Wrap(nil, cause), "wrap with nil class got the cause")
	require.Equal(t, "tt", serr.Wrap(class, nil).Error())
}

func TestWrapf(t *testing.T) {
	class := serr.New("tt")
	cause := serr.New("dd")
	e := serr.Wrapf(class, "%w: 4", cause)
	require.ErrorIs(t, e, class)
	require.ErrorIs(t, e, cause)
	require.Equal(t, "tt: dd: 4", e.Error())

	var we *serr.WError
	require.ErrorAs(t, e, &we)
	require.Equal(t, class, we.Class())
	require.Nil(t, serr.Wrapf(nil, ""), "wrap nil got nil")
}

func TestCollect(t *testing.T) {
	e1 := serr.New("tt")
	e2 := serr.New("dd")
	e3 := serr.New("dd")
	e := serr.Collect(e1, e2, e3)

	require.ErrorIs(t, e, e1)
	require.ErrorIs(t, e, e3)
	require.Nil(t, serr.Unwrap(e), "unwrapping stops here")
	require.Equal(t, []error{e2, e3}, e.(*serr.MError).Cause())
	require.Equal(t, "tt:\n\tdd\n\tdd", e.Error())
	require.NoError(t, serr.Collect(e3), "nil if there is no underlying error")

	e4 := serr.Collect(e1, e2, nil).(*serr.MError)
	require.Len(t, e4.Cause(), 1, "collect non-nil errors only")
	require.NoError(t, serr.Collect(e3, nil, nil), "nil if all errors are nil")
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package server

import "github.com/pingcap/msgstore/lib/util/errors"

var (
	ErrCloseServer = errors.New("failed to close server")
)

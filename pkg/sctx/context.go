// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package sctx

import (
	"github.com/pingcap/msgstore/lib/config"
)

// Context carries the command-line inputs of the server.
type Context struct {
	// Overlay holds the items set by flags. They override the config file.
	Overlay    config.Config
	ConfigFile string
}

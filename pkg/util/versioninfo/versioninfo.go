// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package versioninfo

// These variables will be overwritten by Makefile.
var (
	MsgStoreVersion   = "None"
	MsgStoreGitBranch = "None"
	MsgStoreGitHash   = "None"
	MsgStoreBuildTS   = "None"
)

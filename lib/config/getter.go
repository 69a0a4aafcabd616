// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

type ConfigGetter interface {
	GetConfig() *Config
	GetConfigChecksum() uint32
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	Workdir: "./wd",
	API: API{
		Addr:                       "0.0.0.0:50051",
		GracefulWaitBeforeShutdown: 5,
	},
	Log: Log{
		Encoder: "json",
		LogOnline: LogOnline{
			Level: "debug",
			LogFile: LogFile{
				Filename:   ".",
				MaxSize:    10,
				MaxDays:    1,
				MaxBackups: 1,
			},
		},
	},
}

func TestConfigRoundTrip(t *testing.T) {
	data, err := testConfig.ToBytes()
	require.NoError(t, err)
	var cfg Config
	require.NoError(t, toml.Unmarshal(data, &cfg))
	require.Equal(t, testConfig, cfg)
}

func TestDefaultConfig(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Check())
	require.Equal(t, "127.0.0.1:50051", cfg.API.Addr)
	require.NotEmpty(t, cfg.Workdir)
}

func TestCheckConfig(t *testing.T) {
	tests := []struct {
		pre func(*Config)
		err error
	}{
		{
			pre: func(c *Config) {
				c.API.Addr = "no-port"
			},
			err: ErrInvalidConfigValue,
		},
		{
			pre: func(c *Config) {
				c.API.GracefulWaitBeforeShutdown = -1
			},
			err: ErrInvalidConfigValue,
		},
		{
			pre: func(c *Config) {
				c.Log.Encoder = "tidb"
			},
			err: ErrInvalidConfigValue,
		},
		{
			pre: func(c *Config) {
				c.Log.Level = "verbose"
			},
			err: ErrInvalidConfigValue,
		},
		{
			pre: func(c *Config) {
				c.Log.Encoder = "json"
				c.Log.Level = "warn"
			},
		},
	}
	for i, tc := range tests {
		cfg := testConfig.Clone()
		tc.pre(cfg)
		if tc.err != nil {
			require.ErrorIs(t, cfg.Check(), tc.err, "case %d", i)
		} else {
			require.NoError(t, cfg.Check(), "case %d", i)
		}
	}
}

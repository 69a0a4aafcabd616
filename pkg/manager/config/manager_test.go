// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pingcap/msgstore/lib/config"
	"github.com/pingcap/msgstore/lib/util/logger"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, file, content string, modTime time.Time) {
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(file, modTime, modTime))
}

func TestDefaultConfig(t *testing.T) {
	lg, _ := logger.CreateLoggerForTest(t)
	cfgmgr := NewConfigManager()
	require.NoError(t, cfgmgr.Init(context.Background(), lg, "", nil))
	t.Cleanup(func() {
		require.NoError(t, cfgmgr.Close())
	})

	cfg := cfgmgr.GetConfig()
	require.Equal(t, "127.0.0.1:50051", cfg.API.Addr)
	require.Equal(t, "info", cfg.Log.Level)
	require.NotZero(t, cfgmgr.GetConfigChecksum())

	data, err := cfgmgr.GetConfigBytes()
	require.NoError(t, err)
	require.Contains(t, string(data), "127.0.0.1:50051")
}

func TestOverlay(t *testing.T) {
	lg, _ := logger.CreateLoggerForTest(t)
	file := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, file, "[api]\naddr = \"0.0.0.0:7000\"\n[log]\nlevel = \"warn\"\n", time.Now())

	cfgmgr := NewConfigManager()
	require.NoError(t, cfgmgr.Init(context.Background(), lg, file, &config.Config{
		API: config.API{Addr: "0.0.0.0:8000"},
	}))
	t.Cleanup(func() {
		require.NoError(t, cfgmgr.Close())
	})

	cfg := cfgmgr.GetConfig()
	require.Equal(t, "0.0.0.0:8000", cfg.API.Addr, "the overlay wins")
	require.Equal(t, "warn", cfg.Log.Level, "the file overrides the defaults")
	require.Equal(t, "console", cfg.Log.Encoder, "defaults stay")
}

func TestInvalidConfig(t *testing.T) {
	lg, _ := logger.CreateLoggerForTest(t)
	dir := t.TempDir()

	cfgmgr := NewConfigManager()
	require.Error(t, cfgmgr.Init(context.Background(), lg, filepath.Join(dir, "missing.toml"), nil))
	require.NoError(t, cfgmgr.Close())

	file := filepath.Join(dir, "config.toml")
	writeFile(t, file, "[log]\nencoder = \"tidb\"\n", time.Now())
	cfgmgr = NewConfigManager()
	require.ErrorIs(t, cfgmgr.Init(context.Background(), lg, file, nil), config.ErrInvalidConfigValue)
	require.NoError(t, cfgmgr.Close())

	writeFile(t, file, "[log\n", time.Now())
	cfgmgr = NewConfigManager()
	require.Error(t, cfgmgr.Init(context.Background(), lg, file, nil))
	require.NoError(t, cfgmgr.Close())
}

func TestWatchConfig(t *testing.T) {
	lg, _ := logger.CreateLoggerForTest(t)
	cfgmgr := NewConfigManager()
	require.NoError(t, cfgmgr.Init(context.Background(), lg, "", nil))
	ch := cfgmgr.WatchConfig()

	require.NoError(t, cfgmgr.SetTOMLConfig([]byte("[log]\nlevel = \"debug\"\n")))
	require.NoError(t, cfgmgr.SetTOMLConfig([]byte("[log]\nlevel = \"error\"\n")))
	cfg := <-ch
	require.Equal(t, "error", cfg.Log.Level, "only the latest config is kept")
	select {
	case <-ch:
		t.Fatal("unexpected config")
	default:
	}

	// a bad update keeps the current config
	checksum := cfgmgr.GetConfigChecksum()
	require.Error(t, cfgmgr.SetTOMLConfig([]byte("[log]\nlevel = \"verbose\"\n")))
	require.Equal(t, "error", cfgmgr.GetConfig().Log.Level)
	require.Equal(t, checksum, cfgmgr.GetConfigChecksum())

	require.NoError(t, cfgmgr.Close())
	_, ok := <-ch
	require.False(t, ok, "closed by Close")
}

func TestReloadConfigFile(t *testing.T) {
	lg, _ := logger.CreateLoggerForTest(t)
	file := filepath.Join(t.TempDir(), "config.toml")
	now := time.Now()
	writeFile(t, file, "[log]\nlevel = \"warn\"\n", now)

	cfgmgr := NewConfigManager()
	cfgmgr.checkFileInterval = 10 * time.Millisecond
	require.NoError(t, cfgmgr.Init(context.Background(), lg, file, nil))
	t.Cleanup(func() {
		require.NoError(t, cfgmgr.Close())
	})
	ch := cfgmgr.WatchConfig()
	require.Equal(t, "warn", cfgmgr.GetConfig().Log.Level)

	// an invalid file is ignored
	writeFile(t, file, "[log]\nlevel = \"verbose\"\n", now.Add(time.Second))
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, "warn", cfgmgr.GetConfig().Log.Level)

	writeFile(t, file, "[log]\nlevel = \"debug\"\n", now.Add(2*time.Second))
	select {
	case cfg := <-ch:
		require.Equal(t, "debug", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config is not reloaded")
	}
	require.Equal(t, "debug", cfgmgr.GetConfig().Log.Level)
}

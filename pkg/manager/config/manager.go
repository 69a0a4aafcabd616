// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"sync"
	"time"

	"github.com/pingcap/msgstore/lib/config"
	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/pingcap/msgstore/lib/util/waitgroup"
	"go.uber.org/zap"
)

var _ config.ConfigGetter = (*ConfigManager)(nil)

const (
	defaultCheckFileInterval = 2 * time.Second
)

// ConfigManager owns the current config. It merges the defaults, the config
// file and the command-line overlay, and reloads the file when it changes.
type ConfigManager struct {
	wg     waitgroup.WaitGroup
	cancel context.CancelFunc
	logger *zap.Logger

	checkFileInterval time.Duration
	overlay           []byte

	sts struct {
		sync.Mutex
		listeners []chan *config.Config
		current   *config.Config
		checksum  uint32
	}
}

func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		checkFileInterval: defaultCheckFileInterval,
	}
}

// Init loads the config. An empty configFile means the defaults plus the overlay.
func (e *ConfigManager) Init(ctx context.Context, logger *zap.Logger, configFile string, overlay *config.Config) error {
	e.logger = logger
	if overlay != nil {
		data, err := overlay.ToBytes()
		if err != nil {
			return err
		}
		e.overlay = data
	}

	var nctx context.Context
	nctx, e.cancel = context.WithCancel(ctx)

	if configFile == "" {
		return e.SetTOMLConfig(nil)
	}
	modTime, err := e.reloadConfigFile(configFile)
	if err != nil {
		return err
	}
	e.wg.RunWithRecover(func() {
		e.watchConfigFile(nctx, configFile, modTime)
	}, nil, e.logger)
	return nil
}

func (e *ConfigManager) watchConfigFile(ctx context.Context, file string, modTime time.Time) {
	ticker := time.NewTicker(e.checkFileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		changed, err := fileChanged(file, modTime)
		if err != nil {
			e.logger.Warn("failed to stat config file", zap.String("file", file), zap.Error(err))
			continue
		}
		if !changed {
			continue
		}
		newModTime, err := e.reloadConfigFile(file)
		if err != nil {
			e.logger.Error("failed to reload config file, keep the current config", zap.String("file", file), zap.Error(err))
			continue
		}
		modTime = newModTime
	}
}

// Close stops watching the config file and closes all the watch channels.
func (e *ConfigManager) Close() error {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()

	e.sts.Lock()
	for _, ch := range e.sts.listeners {
		close(ch)
	}
	e.sts.listeners = nil
	e.sts.Unlock()
	return nil
}

var errConfigNotLoaded = errors.New("config is not loaded")

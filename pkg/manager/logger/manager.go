// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"context"

	"github.com/pingcap/msgstore/lib/config"
	"github.com/pingcap/msgstore/lib/util/cmd"
	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/pingcap/msgstore/lib/util/logger"
	"github.com/pingcap/msgstore/lib/util/waitgroup"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerManager updates log configurations online.
type LoggerManager struct {
	// The logger used by LoggerManager itself to log.
	logger *zap.Logger
	syncer *logger.AtomicWriteSyncer
	level  zap.AtomicLevel
	cancel context.CancelFunc
	wg     waitgroup.WaitGroup
}

// NewLoggerManager creates a new LoggerManager and the main logger.
func NewLoggerManager(cfg *config.Log) (*LoggerManager, *zap.Logger, error) {
	if cfg == nil || cfg.Level == "" {
		cfg = &config.NewConfig().Log
	}
	mainLogger, syncer, level, err := cmd.BuildLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	mainLogger = mainLogger.Named("main")
	return &LoggerManager{
		logger: mainLogger.Named("lgmgr"),
		syncer: syncer,
		level:  level,
	}, mainLogger, nil
}

// Init starts a goroutine to watch configuration.
func (lm *LoggerManager) Init(cfgch <-chan *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	lm.cancel = cancel

	lm.wg.RunWithRecover(func() {
		lm.watchCfg(ctx, cfgch)
	}, nil, lm.logger)
}

func (lm *LoggerManager) watchCfg(ctx context.Context, cfgch <-chan *config.Config) {
	for {
		select {
		case <-ctx.Done():
			return
		case acfg, ok := <-cfgch:
			if !ok {
				return
			}
			if err := lm.updateLoggerCfg(&acfg.Log.LogOnline); err != nil {
				lm.logger.Error("update logger configuration failed", zap.Error(err), zap.Any("cfg", acfg.Log.LogOnline))
			}
		}
	}
}

// The encoder cannot be updated because Core.With always clones the encoder.
func (lm *LoggerManager) updateLoggerCfg(cfg *config.LogOnline) error {
	if err := lm.syncer.Rebuild(cfg); err != nil {
		return err
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return errors.WithStack(err)
	}
	lm.level.SetLevel(level)
	return nil
}

// SetLoggerLevel sets the level of all loggers.
func (lm *LoggerManager) SetLoggerLevel(l zapcore.Level) {
	lm.level.SetLevel(l)
}

// Close releases all resources.
func (lm *LoggerManager) Close() error {
	if lm.cancel != nil {
		lm.cancel()
	}
	lm.wg.Wait()
	return lm.syncer.Close()
}

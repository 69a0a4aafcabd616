// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"time"

	"github.com/pingcap/msgstore/lib/config"
	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/pingcap/msgstore/lib/util/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func buildEncoder(cfg *config.Log) (zapcore.Encoder, error) {
	encfg := zap.NewProductionEncoderConfig()
	encfg.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(t.Format("2006/01/02 15:04:05.000 -07:00"))
	}
	encfg.EncodeLevel = func(l zapcore.Level, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(l.CapitalString())
	}
	switch cfg.Encoder {
	case "json":
		return zapcore.NewJSONEncoder(encfg), nil
	case "console", "":
		return zapcore.NewConsoleEncoder(encfg), nil
	default:
		return nil, errors.Wrapf(config.ErrInvalidConfigValue, "unsupported log encoder %q", cfg.Encoder)
	}
}

// BuildLogger builds the process logger. The returned syncer and level can be
// changed online, the encoder cannot.
func BuildLogger(cfg *config.Log) (*zap.Logger, *logger.AtomicWriteSyncer, zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, nil, level, errors.WithStack(err)
	}
	encoder, err := buildEncoder(cfg)
	if err != nil {
		return nil, nil, level, err
	}
	syncer := &logger.AtomicWriteSyncer{}
	if err := syncer.Rebuild(&cfg.LogOnline); err != nil {
		return nil, nil, level, err
	}
	return zap.New(zapcore.NewCore(encoder, syncer, level), zap.ErrorOutput(syncer), zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()), syncer, level, nil
}

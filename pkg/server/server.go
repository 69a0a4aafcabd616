// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"runtime"
	"time"

	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/pingcap/msgstore/lib/util/waitgroup"
	mgrcfg "github.com/pingcap/msgstore/pkg/manager/config"
	"github.com/pingcap/msgstore/pkg/manager/id"
	"github.com/pingcap/msgstore/pkg/manager/logger"
	"github.com/pingcap/msgstore/pkg/metrics"
	"github.com/pingcap/msgstore/pkg/sctx"
	"github.com/pingcap/msgstore/pkg/server/api"
	"github.com/pingcap/msgstore/pkg/util/versioninfo"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type Server struct {
	wg waitgroup.WaitGroup
	lg *zap.Logger
	// managers
	ConfigManager  *mgrcfg.ConfigManager
	MetricsManager *metrics.MetricsManager
	LoggerManager  *logger.LoggerManager
	// Registry lives as long as the server. Identifiers are lost on Close.
	Registry *id.Registry
	// gRPC & HTTP server
	APIServer *api.Server
}

func NewServer(ctx context.Context, sctx *sctx.Context) (srv *Server, err error) {
	srv = &Server{
		ConfigManager:  mgrcfg.NewConfigManager(),
		MetricsManager: metrics.NewMetricsManager(),
		Registry:       id.NewRegistry(),
		wg:             waitgroup.WaitGroup{},
	}

	ready := atomic.NewBool(false)

	// set up logger
	var lg *zap.Logger
	if srv.LoggerManager, lg, err = logger.NewLoggerManager(&sctx.Overlay.Log); err != nil {
		return
	}
	srv.lg = lg
	srv.LoggerManager.Init(srv.ConfigManager.WatchConfig())

	// setup config manager
	if err = srv.ConfigManager.Init(ctx, lg.Named("config"), sctx.ConfigFile, &sctx.Overlay); err != nil {
		err = errors.WithStack(err)
		return
	}
	cfg := srv.ConfigManager.GetConfig()

	// The welcome message goes to the log file only after the config manager
	// delivered the log config, so print it at info level regardless of the level.
	level := lg.Level()
	srv.LoggerManager.SetLoggerLevel(zap.InfoLevel)
	printInfo(lg)
	srv.LoggerManager.SetLoggerLevel(level)

	// setup metrics
	srv.MetricsManager.Init(ctx, lg.Named("metrics"))
	metrics.ServerEventCounter.WithLabelValues(metrics.EventStart).Inc()

	// setup gRPC & HTTP
	if srv.APIServer, err = api.NewServer(cfg.API, lg.Named("api"), api.Managers{
		CfgMgr:   srv.ConfigManager,
		Registry: srv.Registry,
	}, ready); err != nil {
		return
	}

	ready.Toggle()
	lg.Info("server is ready", zap.String("addr", srv.APIServer.Addr()))
	return
}

func printInfo(lg *zap.Logger) {
	fields := []zap.Field{
		zap.String("Release Version", versioninfo.MsgStoreVersion),
		zap.String("Git Commit Hash", versioninfo.MsgStoreGitHash),
		zap.String("Git Branch", versioninfo.MsgStoreGitBranch),
		zap.String("UTC Build Time", versioninfo.MsgStoreBuildTS),
		zap.String("GoVersion", runtime.Version()),
		zap.String("OS", runtime.GOOS),
		zap.String("Arch", runtime.GOARCH),
	}
	lg.Info("Welcome to msgstore.", fields...)
}

// gracefulWait keeps serving with an unhealthy health check so that load
// balancers have time to remove this instance.
func (s *Server) gracefulWait() {
	if s.APIServer == nil || s.ConfigManager == nil {
		return
	}
	s.APIServer.PreClose()
	cfg := s.ConfigManager.GetConfig()
	if cfg == nil || cfg.API.GracefulWaitBeforeShutdown <= 0 {
		return
	}
	wait := time.Duration(cfg.API.GracefulWaitBeforeShutdown) * time.Second
	s.lg.Info("waiting before shutdown", zap.Duration("wait", wait))
	time.Sleep(wait)
}

func (s *Server) Close() error {
	metrics.ServerEventCounter.WithLabelValues(metrics.EventClose).Inc()

	s.gracefulWait()
	errs := make([]error, 0, 4)
	if s.APIServer != nil {
		errs = append(errs, s.APIServer.Close())
	}
	if s.Registry != nil {
		if s.lg != nil {
			s.lg.Info("discard identities", zap.Int("identities", s.Registry.Len()))
		}
		s.Registry.Close()
	}
	if s.ConfigManager != nil {
		errs = append(errs, s.ConfigManager.Close())
	}
	if s.MetricsManager != nil {
		s.MetricsManager.Close()
	}
	if s.LoggerManager != nil {
		errs = append(errs, s.LoggerManager.Close())
	}
	s.wg.Wait()
	return errors.Collect(ErrCloseServer, errs...)
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	"github.com/pingcap/kvproto/pkg/diagnosticspb"
	"github.com/pingcap/msgstore/lib/config"
	"github.com/pingcap/msgstore/lib/msgpb"
	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/pingcap/msgstore/lib/util/waitgroup"
	mgrcfg "github.com/pingcap/msgstore/pkg/manager/config"
	"github.com/pingcap/msgstore/pkg/manager/id"
	"github.com/pingcap/sysutil"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

const (
	// DefConnTimeout is used as timeout duration in the HTTP server.
	DefConnTimeout = 30 * time.Second
)

type Managers struct {
	CfgMgr   *mgrcfg.ConfigManager
	Registry *id.Registry
}

// Server serves the MessageStorage gRPC service and the HTTP API on one listener.
type Server struct {
	listener  net.Listener
	wg        waitgroup.WaitGroup
	ready     *atomic.Bool
	lg        *zap.Logger
	grpc      *grpc.Server
	isClosing atomic.Bool
	mgr       Managers
	messages  *MessageService
}

func grpcCodeToLevel(code codes.Code) zapcore.Level {
	switch code {
	case codes.Internal, codes.Unknown, codes.DataLoss:
		return zap.WarnLevel
	default:
		return zap.InfoLevel
	}
}

func NewServer(cfg config.API, lg *zap.Logger, mgr Managers, ready *atomic.Bool) (*Server, error) {
	grpcOpts := []grpc_zap.Option{
		grpc_zap.WithLevels(grpcCodeToLevel),
	}
	h := &Server{
		ready: ready,
		lg:    lg,
		grpc: grpc.NewServer(
			grpc_middleware.WithUnaryServerChain(
				grpc_ctxtags.UnaryServerInterceptor(grpc_ctxtags.WithFieldExtractor(grpc_ctxtags.CodeGenRequestFieldExtractor)),
				grpc_zap.UnaryServerInterceptor(lg.Named("grpcu"), grpcOpts...),
			),
			grpc_middleware.WithStreamServerChain(
				grpc_ctxtags.StreamServerInterceptor(grpc_ctxtags.WithFieldExtractor(grpc_ctxtags.CodeGenRequestFieldExtractor)),
				grpc_zap.StreamServerInterceptor(lg.Named("grpcs"), grpcOpts...),
			),
		),
		mgr:      mgr,
		messages: NewMessageService(lg.Named("message"), mgr.Registry),
	}

	var err error
	h.listener, err = net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.UseH2C = true
	engine.Use(
		gin.Recovery(),
		h.readyState,
		h.grpcServer,
		h.attachLogger,
	)

	h.registerGrpc()
	h.registerAPI(engine.Group("/api"))
	// The paths are consistent with other components.
	h.registerMetrics(engine.Group("metrics"))

	hsrv := http.Server{
		Handler:           engine.Handler(),
		ReadHeaderTimeout: DefConnTimeout,
		IdleTimeout:       DefConnTimeout,
	}

	h.wg.RunWithRecover(func() {
		lg.Info("HTTP closed", zap.Error(hsrv.Serve(h.listener)))
	}, nil, h.lg)

	return h, nil
}

// Addr returns the address the server listens on.
func (h *Server) Addr() string {
	return h.listener.Addr().String()
}

func (h *Server) attachLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	latency := time.Since(start)

	fields := make([]zapcore.Field, 0, 7)
	fields = append(fields,
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("ip", c.ClientIP()),
		zap.String("user-agent", c.Request.UserAgent()),
		zap.Duration("latency", latency),
	)

	path := c.Request.URL.Path
	switch {
	case len(c.Errors) > 0:
		errs := make([]error, 0, len(c.Errors))
		for _, e := range c.Errors {
			errs = append(errs, e)
		}
		fields = append(fields, zap.Errors("errs", errs))
		h.lg.Warn(path, fields...)
	default:
		h.lg.Debug(path, fields...)
	}
}

func (h *Server) readyState(c *gin.Context) {
	if !h.ready.Load() {
		c.Abort()
		c.JSON(http.StatusInternalServerError, "service not ready")
	}
}

func (h *Server) registerGrpc() {
	msgpb.RegisterMessageStorageServer(h.grpc, h.messages)
	var logFile string
	if cfg := h.mgr.CfgMgr.GetConfig(); cfg != nil {
		logFile = cfg.Log.LogFile.Filename
	}
	diagnosticspb.RegisterDiagnosticsServer(h.grpc, sysutil.NewDiagnosticsServer(logFile))
}

func (h *Server) grpcServer(ctx *gin.Context) {
	if ctx.Request.ProtoMajor == 2 && strings.HasPrefix(ctx.GetHeader("Content-Type"), "application/grpc") {
		ctx.Status(http.StatusOK)
		h.grpc.ServeHTTP(ctx.Writer, ctx.Request)
		ctx.Abort()
	} else {
		ctx.Next()
	}
}

func (h *Server) registerAPI(g *gin.RouterGroup) {
	{
		adminGroup := g.Group("admin")
		h.registerConfig(adminGroup.Group("config"))
	}

	h.registerMessage(g.Group("messages"))
	h.registerRegistry(g.Group("registry"))
	h.registerMetrics(g.Group("metrics"))
	h.registerDebug(g.Group("debug"))
}

// PreClose makes the health check fail so that load balancers stop routing new requests.
func (h *Server) PreClose() {
	h.isClosing.Store(true)
}

func (h *Server) Close() error {
	err := h.listener.Close()
	h.wg.Wait()
	h.grpc.Stop()
	return errors.WithStack(err)
}

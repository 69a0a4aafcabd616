// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pingcap/msgstore/lib/msgpb"
	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/pingcap/msgstore/pkg/manager/id"
	"github.com/pingcap/msgstore/pkg/metrics"
	"github.com/pingcap/msgstore/pkg/util/monotime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrInternal is the class of all server-caused failures.
	ErrInternal         = errors.New("Internal error")
	ErrClockBeforeEpoch = errors.New("system time is before the unix epoch")
)

var _ msgpb.MessageStorageServer = (*MessageService)(nil)

// MessageService validates a message key and resolves its identifier.
type MessageService struct {
	lg       *zap.Logger
	registry *id.Registry
	now      func() time.Time
}

func NewMessageService(lg *zap.Logger, registry *id.Registry) *MessageService {
	return &MessageService{
		lg:       lg,
		registry: registry,
		now:      time.Now,
	}
}

// Resolve returns the response for (key, tenant). The error is either an
// *id.FormatError or classified as ErrInternal.
func (s *MessageService) Resolve(protocol, key, tenant string) (*msgpb.MessageResponse, error) {
	start := monotime.Now()
	defer func() {
		metrics.ResolveDurationHistogram.WithLabelValues(protocol).Observe(monotime.Since(start).Seconds())
	}()

	now := s.now()
	if now.Before(time.Unix(0, 0)) {
		metrics.ResolveCounter.WithLabelValues(protocol, metrics.ResultInternal).Inc()
		metrics.ServerErrCounter.WithLabelValues(metrics.ErrTypeClock).Inc()
		s.lg.Warn("system time is before the unix epoch", zap.Time("now", now))
		return nil, errors.Wrapf(ErrInternal, "%w: %s", ErrClockBeforeEpoch, now)
	}

	vk, err := id.Validate(key, tenant)
	if err != nil {
		metrics.ResolveCounter.WithLabelValues(protocol, metrics.ResultInvalid).Inc()
		s.lg.Debug("reject message", zap.String("key", key), zap.String("tenant", tenant), zap.Error(err))
		return nil, err
	}

	ident, isNew, err := s.registry.Resolve(vk)
	if err != nil {
		metrics.ResolveCounter.WithLabelValues(protocol, metrics.ResultInternal).Inc()
		metrics.ServerErrCounter.WithLabelValues(metrics.ErrTypeRegistry).Inc()
		s.lg.Warn("failed to resolve identity", zap.Stringer("identity", vk.Key()), zap.Error(err))
		return nil, errors.Wrap(ErrInternal, err)
	}
	if isNew {
		metrics.ResolveCounter.WithLabelValues(protocol, metrics.ResultNew).Inc()
		metrics.IdentityGauge.Set(float64(ident))
		s.lg.Debug("issue identifier", zap.Stringer("identity", vk.Key()), zap.Uint64("id", ident))
	} else {
		metrics.ResolveCounter.WithLabelValues(protocol, metrics.ResultExisting).Inc()
	}

	return &msgpb.MessageResponse{
		Timestamp: now,
		ID:        ident,
		New:       isNew,
	}, nil
}

// SendMessage implements msgpb.MessageStorageServer.
func (s *MessageService) SendMessage(_ context.Context, req *msgpb.MessageRequest) (*msgpb.MessageResponse, error) {
	resp, err := s.Resolve(metrics.ProtocolGRPC, req.Key, req.Tenant)
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func toStatus(err error) error {
	if errors.Is(err, id.ErrInvalidKey) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func toHTTPStatus(err error) int {
	if errors.Is(err, id.ErrInvalidKey) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Server) SendMessage(c *gin.Context) {
	var req msgpb.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, CreateJsonResp(http.StatusBadRequest, "bad message body: "+err.Error()))
		return
	}
	resp, err := h.messages.Resolve(metrics.ProtocolHTTP, req.Key, req.Tenant)
	if err != nil {
		code := toHTTPStatus(err)
		if code == http.StatusInternalServerError {
			c.Errors = append(c.Errors, &gin.Error{
				Err:  err,
				Type: gin.ErrorTypePrivate,
			})
		}
		c.JSON(code, CreateJsonResp(code, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Server) registerMessage(group *gin.RouterGroup) {
	group.POST("", h.SendMessage)
}

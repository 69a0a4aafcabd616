// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Server) ConfigSet(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Errors = append(c.Errors, &gin.Error{
			Type: gin.ErrorTypePrivate,
			Err:  err,
		})
		c.JSON(http.StatusInternalServerError, "fail to read config")
		return
	}

	if err := h.mgr.CfgMgr.SetTOMLConfig(data); err != nil {
		h.lg.Warn("can not update config", zap.Error(err))
		c.JSON(http.StatusBadRequest, CreateJsonResp(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, "")
}

func (h *Server) ConfigGet(c *gin.Context) {
	switch c.Query("format") {
	case "json":
		c.JSON(http.StatusOK, h.mgr.CfgMgr.GetConfig())
	default:
		c.TOML(http.StatusOK, h.mgr.CfgMgr.GetConfig())
	}
}

func (h *Server) registerConfig(group *gin.RouterGroup) {
	group.PUT("/", h.ConfigSet)
	group.GET("/", h.ConfigGet)
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/pingcap/msgstore/lib/config"
	"github.com/pingcap/msgstore/pkg/manager/id"
)

func healthInfo(cfgGetter config.ConfigGetter, registry *id.Registry) config.HealthInfo {
	return config.HealthInfo{
		ConfigChecksum: cfgGetter.GetConfigChecksum(),
		Identities:     registry.Len(),
	}
}

func (h *Server) DebugHealth(c *gin.Context) {
	status := http.StatusOK
	if h.isClosing.Load() {
		status = http.StatusBadGateway
	}
	c.JSON(status, healthInfo(h.mgr.CfgMgr, h.mgr.Registry))
}

func (h *Server) registerDebug(group *gin.RouterGroup) {
	group.GET("/health", h.DebugHealth)
	pprof.RouteRegister(group, "/pprof")
}

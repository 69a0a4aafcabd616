// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RegistryInfo struct {
	Identities int `json:"identities"`
}

func (h *Server) RegistryInfo(c *gin.Context) {
	c.JSON(http.StatusOK, RegistryInfo{
		Identities: h.mgr.Registry.Len(),
	})
}

func (h *Server) ListTenant(c *gin.Context) {
	c.JSON(http.StatusOK, h.mgr.Registry.ListTenant(c.Param("tenant")))
}

func (h *Server) registerRegistry(group *gin.RouterGroup) {
	group.GET("/", h.RegistryInfo)
	group.GET("/tenants/:tenant", h.ListTenant)
}

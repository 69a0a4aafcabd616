// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package msgpb defines the message_storage.v1 gRPC service. Messages are
// carried by the json codec registered in this package.
package msgpb

import "time"

type MessageRequest struct {
	Key    string `json:"key"`
	Tenant string `json:"tenant"`
}

// ExtractRequestFields lets the gRPC tag interceptor attach the identity key to call logs.
func (m *MessageRequest) ExtractRequestFields(dst map[string]any) {
	dst["key"] = m.Key
	dst["tenant"] = m.Tenant
}

type MessageResponse struct {
	Timestamp time.Time `json:"timestamp"`
	ID        uint64    `json:"id"`
	New       bool      `json:"new"`
}

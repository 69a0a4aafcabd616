// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	LblResult   = "result"
	LblProtocol = "protocol"

	ResultNew      = "new"
	ResultExisting = "existing"
	ResultInvalid  = "invalid"
	ResultInternal = "internal"

	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http"
)

var (
	IdentityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: ModuleMsgStore,
			Subsystem: LabelIdentity,
			Name:      "identities",
			Help:      "Number of distinct identities in the registry.",
		})

	ResolveCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ModuleMsgStore,
			Subsystem: LabelIdentity,
			Name:      "resolve_total",
			Help:      "Counter of resolved messages by result.",
		}, []string{LblProtocol, LblResult})

	ResolveDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ModuleMsgStore,
			Subsystem: LabelIdentity,
			Name:      "resolve_duration_seconds",
			Help:      "Bucketed histogram of the time spent resolving a message.",
			Buckets:   prometheus.ExponentialBuckets(0.000005, 2, 20), // 5us ~ 2.6s
		}, []string{LblProtocol})
)

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/pingcap/msgstore/lib/util/systimemon"
	"github.com/pingcap/msgstore/lib/util/waitgroup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"
)

const (
	ModuleMsgStore = "msgstore"
)

// metrics labels.
const (
	LabelServer   = "server"
	LabelMonitor  = "monitor"
	LabelIdentity = "identity"
)

var registerOnce sync.Once

// MetricsManager registers the collectors and runs the system time monitor.
type MetricsManager struct {
	wg     waitgroup.WaitGroup
	cancel context.CancelFunc
	logger *zap.Logger
}

func NewMetricsManager() *MetricsManager {
	return &MetricsManager{}
}

// Init registers all collectors once per process and starts the monitor.
func (mm *MetricsManager) Init(ctx context.Context, logger *zap.Logger) {
	mm.logger = logger
	registerOnce.Do(registerMsgStoreMetrics)
	// Enable the mutex profile, 1/10 of mutex blocking event sampling.
	runtime.SetMutexProfileFraction(10)

	ctx, mm.cancel = context.WithCancel(ctx)
	mm.setupMonitor(ctx)
}

func (mm *MetricsManager) setupMonitor(ctx context.Context) {
	aliveCount := 0
	onAlive := func() {
		aliveCount++
		// called every second, count every 5 seconds
		if aliveCount >= 5 {
			aliveCount = 0
			KeepAliveCounter.Inc()
		}
	}
	onJump := func(time.Duration) {
		TimeJumpBackCounter.Inc()
	}
	mm.wg.RunWithRecover(func() {
		systimemon.StartMonitor(ctx, mm.logger, time.Now, onJump, onAlive)
	}, nil, mm.logger)
}

// Close stops the monitor. The collectors stay registered.
func (mm *MetricsManager) Close() {
	if mm.cancel != nil {
		mm.cancel()
	}
	mm.wg.Wait()
}

func registerMsgStoreMetrics() {
	prometheus.DefaultRegisterer.Unregister(collectors.NewGoCollector())
	prometheus.MustRegister(collectors.NewGoCollector(collectors.WithGoCollections(collectors.GoRuntimeMetricsCollection | collectors.GoRuntimeMemStatsCollection)))

	prometheus.MustRegister(MaxProcsGauge)
	prometheus.MustRegister(ServerEventCounter)
	prometheus.MustRegister(ServerErrCounter)
	prometheus.MustRegister(TimeJumpBackCounter)
	prometheus.MustRegister(KeepAliveCounter)
	prometheus.MustRegister(IdentityGauge)
	prometheus.MustRegister(ResolveCounter)
	prometheus.MustRegister(ResolveDurationHistogram)
}

// ReadCounter reads the value from the counter. It is only used for testing.
func ReadCounter(counter prometheus.Counter) (int, error) {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		return 0, err
	}
	return int(metric.Counter.GetValue()), nil
}

// ReadGauge reads the value from the gauge. It is only used for testing.
func ReadGauge(gauge prometheus.Gauge) (int, error) {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		return 0, err
	}
	return int(metric.Gauge.GetValue()), nil
}

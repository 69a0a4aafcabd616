// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package systimemon

import (
	"context"
	"testing"
	"time"

	"github.com/pingcap/msgstore/lib/util/logger"
	"github.com/pingcap/msgstore/lib/util/waitgroup"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestSystimeMonitor(t *testing.T) {
	backward := atomic.NewDuration(0)
	sampled := atomic.NewBool(false)
	log, text := logger.CreateLoggerForTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	var wg waitgroup.WaitGroup
	wg.Run(func() {
		StartMonitor(ctx, log,
			func() time.Time {
				if !sampled.Load() {
					sampled.Store(true)
					return time.Now()
				}
				return time.Now().Add(-2 * time.Second)
			}, func(d time.Duration) {
				backward.Store(d)
			}, func() {})
	})

	require.Eventually(t, func() bool {
		return backward.Load() > time.Second
	}, time.Second, 10*time.Millisecond)
	cancel()
	wg.Wait()
	require.Contains(t, text.String(), "system time jump backward")
}

func TestSystimeMonitorAlive(t *testing.T) {
	alive := atomic.NewInt32(0)
	log, _ := logger.CreateLoggerForTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	var wg waitgroup.WaitGroup
	wg.Run(func() {
		StartMonitor(ctx, log, time.Now, func(time.Duration) {
			t.Error("unexpected jump")
		}, func() {
			alive.Inc()
		})
	})
	require.Eventually(t, func() bool {
		return alive.Load() > 0
	}, 3*time.Second, 10*time.Millisecond)
	cancel()
	wg.Wait()
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package systimemon

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const sampleInterval = 100 * time.Millisecond

// StartMonitor samples now periodically until ctx is done. onJump receives how
// far the wall clock went backward between two samples. onAlive is called once
// per second.
func StartMonitor(ctx context.Context, logger *zap.Logger, now func() time.Time, onJump func(time.Duration), onAlive func()) {
	logger.Info("start system time monitor")
	tick := time.NewTicker(sampleInterval)
	defer tick.Stop()
	samples := 0
	for {
		// Round(0) drops the monotonic reading so that wall clock jumps are visible.
		last := now().Round(0)
		select {
		case <-tick.C:
		case <-ctx.Done():
			return
		}
		if cur := now().Round(0); cur.Before(last) {
			back := last.Sub(cur)
			logger.Error("system time jump backward", zap.Time("last", last), zap.Duration("backward", back))
			onJump(back)
		}
		if samples++; samples >= int(time.Second/sampleInterval) {
			samples = 0
			onAlive()
		}
	}
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package waitgroup

import (
	"sync"
	"time"

	"github.com/tiancaiamao/gp"
	"go.uber.org/zap"
)

// WaitGroup is a wrapper for sync.WaitGroup
type WaitGroup struct {
	sync.WaitGroup
}

// Run runs exec in a goroutine tracked by the WaitGroup. exec must not panic.
func (w *WaitGroup) Run(exec func()) {
	w.Add(1)
	go func() {
		defer w.Done()
		exec()
	}()
}

// RunWithRecover is like Run but recovers a panic in exec, logs it with the
// stack and then calls recoverFn if it is not nil.
func (w *WaitGroup) RunWithRecover(exec func(), recoverFn func(r any), logger *zap.Logger) {
	w.Add(1)
	go func() {
		defer recoverFromErr(&w.WaitGroup, recoverFn, logger)
		exec()
	}()
}

func recoverFromErr(wg *sync.WaitGroup, recoverFn func(r any), logger *zap.Logger) {
	r := recover()
	defer func() {
		// If it panics again in recovery, quit ASAP.
		_ = recover()
	}()
	if r != nil && logger != nil {
		logger.Error("panic in the recoverable goroutine",
			zap.Reflect("r", r),
			zap.Stack("stack trace"))
	}
	// Done must come first because recoverFn may call Close, which waits for the group.
	wg.Done()
	if r != nil && recoverFn != nil {
		recoverFn(r)
	}
}

// WaitGroupPool runs tasks on a bounded set of reusable goroutines.
type WaitGroupPool struct {
	sync.WaitGroup
	pool *gp.Pool
}

// NewWaitGroupPool returns a pool of at most n goroutines that exit after idleDuration.
func NewWaitGroupPool(n int, idleDuration time.Duration) *WaitGroupPool {
	return &WaitGroupPool{
		pool: gp.New(n, idleDuration),
	}
}

// RunWithRecover runs exec on the pool, adds 1 to the WaitGroup
// and calls done when exec returns.
func (w *WaitGroupPool) RunWithRecover(exec func(), recoverFn func(r any), logger *zap.Logger) {
	w.Add(1)
	w.pool.Go(func() {
		defer recoverFromErr(&w.WaitGroup, recoverFn, logger)
		exec()
	})
}

func (w *WaitGroupPool) Close() {
	w.Wait()
	w.pool.Close()
}

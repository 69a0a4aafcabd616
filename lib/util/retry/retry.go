// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	InfiniteCnt = 0
)

func NewBackOff(ctx context.Context, retryInterval time.Duration, retryCnt uint64) backoff.BackOff {
	var bo backoff.BackOff
	bo = backoff.NewConstantBackOff(retryInterval)
	if ctx != nil {
		bo = backoff.WithContext(bo, ctx)
	}
	if retryCnt != InfiniteCnt {
		bo = backoff.WithMaxRetries(bo, retryCnt)
	}
	return bo
}

// Retry calls o until it succeeds, returns a backoff.Permanent error, or the
// retries run out.
func Retry(o backoff.Operation, ctx context.Context, retryInterval time.Duration, retryCnt uint64) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return backoff.Retry(o, NewBackOff(ctx, retryInterval, retryCnt))
}

// RetryNotify is like Retry, and calls notify after every failed attempt.
func RetryNotify(o backoff.Operation, ctx context.Context, retryInterval time.Duration, retryCnt uint64,
	notify backoff.Notify) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return backoff.RetryNotify(o, NewBackOff(ctx, retryInterval, retryCnt), notify)
}

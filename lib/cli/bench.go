// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pingcap/msgstore/lib/msgpb"
	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/pingcap/msgstore/lib/util/waitgroup"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const benchIdleDuration = 10 * time.Second

type BenchResult struct {
	Calls    int64         `json:"calls"`
	New      int64         `json:"new"`
	Existing int64         `json:"existing"`
	Failed   int64         `json:"failed"`
	Duration time.Duration `json:"duration"`
}

type benchOptions struct {
	tenants     int
	keys        int
	rounds      int
	concurrency int
}

// benchKey returns the i-th valid key: K-, five digits, -, one uppercase letter.
func benchKey(i int) string {
	return fmt.Sprintf("K-%05d-%c", i%100000, 'A'+rune(i/100000%26))
}

func runBench(ctx context.Context, bctx *Context, client msgpb.MessageStorageClient, opts benchOptions) BenchResult {
	tenants := make([]string, 0, opts.tenants)
	for i := 0; i < opts.tenants; i++ {
		tenants = append(tenants, uuid.NewString())
	}

	var calls, newCnt, existingCnt, failedCnt atomic.Int64
	pool := waitgroup.NewWaitGroupPool(opts.concurrency, benchIdleDuration)
	start := time.Now()
	for round := 0; round < opts.rounds; round++ {
		for _, tenant := range tenants {
			for i := 0; i < opts.keys; i++ {
				req := &msgpb.MessageRequest{Key: benchKey(i), Tenant: tenant}
				pool.RunWithRecover(func() {
					calls.Inc()
					cctx, cancel := context.WithTimeout(ctx, bctx.Timeout)
					defer cancel()
					resp, err := client.SendMessage(cctx, req)
					switch {
					case err != nil:
						failedCnt.Inc()
						bctx.Logger.Debug("send message failed", zap.String("key", req.Key), zap.String("tenant", req.Tenant), zap.Error(err))
					case resp.New:
						newCnt.Inc()
					default:
						existingCnt.Inc()
					}
				}, nil, bctx.Logger)
			}
		}
	}
	pool.Close()

	return BenchResult{
		Calls:    calls.Load(),
		New:      newCnt.Load(),
		Existing: existingCnt.Load(),
		Failed:   failedCnt.Load(),
		Duration: time.Since(start),
	}
}

func GetBenchCmd(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bench",
		Short: "send messages concurrently from random tenants",
	}
	var opts benchOptions
	rootCmd.Flags().IntVar(&opts.tenants, "tenants", 4, "number of random tenants")
	rootCmd.Flags().IntVar(&opts.keys, "keys", 100, "number of keys per tenant")
	rootCmd.Flags().IntVar(&opts.rounds, "rounds", 1, "times every message is sent")
	rootCmd.Flags().IntVar(&opts.concurrency, "concurrency", 16, "number of concurrent callers")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if opts.tenants <= 0 || opts.keys <= 0 || opts.rounds <= 0 || opts.concurrency <= 0 {
			return errors.New("tenants, keys, rounds and concurrency must be positive")
		}
		client, closeFn, err := dialMessageStorage(ctx)
		if err != nil {
			return err
		}
		defer func() {
			_ = closeFn()
		}()

		res := runBench(cmd.Context(), ctx, client, opts)
		out, err := formatJSON(ctx, res)
		if err != nil {
			return err
		}
		cmd.Println(out)
		return nil
	}
	return rootCmd
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pingcap/msgstore/lib/msgpb"
	"github.com/pingcap/msgstore/lib/util/retry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultRetryInterval = 500 * time.Millisecond
	defaultRetryCnt      = 3
)

// sendMessage retries only when the server is unreachable. Rejected keys and
// internal errors are returned at once.
func sendMessage(ctx context.Context, bctx *Context, client msgpb.MessageStorageClient, req *msgpb.MessageRequest,
	retryInterval time.Duration, retryCnt uint64) (*msgpb.MessageResponse, error) {
	var resp *msgpb.MessageResponse
	err := retry.RetryNotify(func() error {
		cctx, cancel := context.WithTimeout(ctx, bctx.Timeout)
		defer cancel()
		var err error
		resp, err = client.SendMessage(cctx, req)
		if err == nil || status.Code(err) == codes.Unavailable {
			return err
		}
		return backoff.Permanent(err)
	}, ctx, retryInterval, retryCnt, func(err error, d time.Duration) {
		bctx.Logger.Warn("send message failed, retrying", zap.Duration("after", d), zap.Error(err))
	})
	return resp, err
}

func GetSendCmd(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "send",
		Short: "send a message and print its identifier",
	}
	key := rootCmd.Flags().String("key", "", "message key, like K-abc12-Z")
	tenant := rootCmd.Flags().String("tenant", "", "tenant of the message")
	retryCnt := rootCmd.Flags().Uint64("retries", defaultRetryCnt, "retries when the server is unavailable")
	retryInterval := rootCmd.Flags().Duration("retry-interval", defaultRetryInterval, "interval between retries")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		client, closeFn, err := dialMessageStorage(ctx)
		if err != nil {
			return err
		}
		defer func() {
			_ = closeFn()
		}()

		resp, err := sendMessage(cmd.Context(), ctx, client, &msgpb.MessageRequest{
			Key:    *key,
			Tenant: *tenant,
		}, *retryInterval, *retryCnt)
		if err != nil {
			return err
		}

		out, err := formatJSON(ctx, resp)
		if err != nil {
			return err
		}
		cmd.Println(out)
		return nil
	}
	return rootCmd
}

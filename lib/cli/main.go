// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/pingcap/msgstore/lib/config"
	"github.com/pingcap/msgstore/lib/util/cmd"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func GetRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "msgstorectl",
		Short:        "cli",
		SilenceUsage: true,
	}
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	ctx := &Context{}

	addr := rootCmd.PersistentFlags().String("addr", "127.0.0.1:50051", "msgstore address")
	curls := rootCmd.PersistentFlags().StringArray("curls", nil, "HTTP API addresses, default to --addr")
	logEncoder := rootCmd.PersistentFlags().String("log_encoder", "console", "log in format of console or json")
	logLevel := rootCmd.PersistentFlags().String("log_level", "warn", "log level")
	timeout := rootCmd.PersistentFlags().Duration("timeout", 5*time.Second, "timeout of each request")
	indent := rootCmd.PersistentFlags().Bool("indent", term.IsTerminal(int(os.Stdout.Fd())), "whether indent the returned json")
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger, _, _, err := cmd.BuildLogger(&config.Log{
			Encoder: *logEncoder,
			LogOnline: config.LogOnline{
				Level: *logLevel,
			},
		})
		if err != nil {
			return err
		}
		ctx.Logger = logger.Named("cli")
		ctx.Client = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          100,
				IdleConnTimeout:       30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
			Timeout: *timeout,
		}
		ctx.Addr = *addr
		ctx.CUrls = *curls
		if len(ctx.CUrls) == 0 {
			ctx.CUrls = []string{*addr}
		}
		ctx.Timeout = *timeout
		ctx.Indent = *indent
		return nil
	}

	rootCmd.AddCommand(GetSendCmd(ctx))
	rootCmd.AddCommand(GetBenchCmd(ctx))
	rootCmd.AddCommand(GetRegistryCmd(ctx))
	rootCmd.AddCommand(GetConfigCmd(ctx))
	rootCmd.AddCommand(GetHealthCmd(ctx))
	return rootCmd
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pingcap/msgstore/lib/config"
	"github.com/pingcap/msgstore/lib/util/cmd"
	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/pingcap/msgstore/pkg/metrics"
	"github.com/pingcap/msgstore/pkg/sctx"
	"github.com/pingcap/msgstore/pkg/server"
	"github.com/pingcap/msgstore/pkg/util/versioninfo"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     os.Args[0],
		Short:   "start the message identity server",
		Version: fmt.Sprintf("%s, commit %s", versioninfo.MsgStoreVersion, versioninfo.MsgStoreGitHash),
	}
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	sctx := &sctx.Context{}

	var configInfo string
	rootCmd.PersistentFlags().StringVar(&sctx.ConfigFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&configInfo, "config-info", "", "output config info and exit")
	rootCmd.PersistentFlags().StringVar(&sctx.Overlay.API.Addr, "addr", "", "listen address, overrides api.addr")
	rootCmd.PersistentFlags().StringVar(&sctx.Overlay.Log.Level, "log_level", "", "log level, overrides log.level")
	rootCmd.PersistentFlags().StringVar(&sctx.Overlay.Log.Encoder, "log_encoder", "", "log in format of console or json, overrides log.encoder")

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if configInfo != "" {
			info, err := config.ConfigInfo(configInfo)
			if err != nil {
				return err
			}
			cmd.Println(info)
			return nil
		}
		srv, err := server.NewServer(cmd.Context(), sctx)
		if err != nil {
			// Release whatever was started before the failure.
			_ = srv.Close()
			return errors.Wrapf(err, "fail to create server")
		}

		<-cmd.Context().Done()
		if e := srv.Close(); e != nil {
			err = errors.Wrapf(e, "shutdown with errors")
		}

		return err
	}
	return rootCmd
}

func main() {
	metrics.MaxProcsGauge.Set(float64(runtime.GOMAXPROCS(0)))
	cmd.RunRootCommand(newRootCmd())
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"net/http"
	"net/url"
	"os"

	"github.com/pingcap/msgstore/lib/util/errors"
	"github.com/spf13/cobra"
)

const (
	configPrefix = "/api/admin/config/"
)

func GetConfigCmd(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "config",
		Short: "get or set the server config",
	}

	// set config
	{
		setConfig := &cobra.Command{
			Use:   "set",
			Short: "apply a partial TOML config",
		}
		input := setConfig.Flags().String("input", "", "specify the input toml file, default to stdin")
		setConfig.RunE = func(cmd *cobra.Command, args []string) error {
			b := cmd.InOrStdin()
			if *input != "" {
				f, err := os.Open(*input)
				if err != nil {
					return errors.WithStack(err)
				}
				defer f.Close()
				b = f
			}

			resp, err := doRequest(cmd.Context(), ctx, http.MethodPut, configPrefix, b)
			if err != nil {
				return err
			}

			cmd.Println(resp)
			return nil
		}
		rootCmd.AddCommand(setConfig)
	}

	// get config
	{
		getConfig := &cobra.Command{
			Use:   "get",
			Short: "print the current config",
		}
		format := getConfig.Flags().String("format", "toml", "toml or json")
		getConfig.RunE = func(cmd *cobra.Command, args []string) error {
			resp, err := doRequest(cmd.Context(), ctx, http.MethodGet, configPrefix+"?format="+url.QueryEscape(*format), nil)
			if err != nil {
				return err
			}

			cmd.Println(resp)
			return nil
		}
		rootCmd.AddCommand(getConfig)
	}

	return rootCmd
}

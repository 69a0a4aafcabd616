// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

const (
	registryPrefix = "/api/registry/"
)

func GetRegistryCmd(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "registry",
		Short: "",
	}

	// registry info
	{
		info := &cobra.Command{
			Use:   "info",
			Short: "print the number of identities",
		}
		info.RunE = func(cmd *cobra.Command, args []string) error {
			resp, err := doRequest(cmd.Context(), ctx, http.MethodGet, registryPrefix, nil)
			if err != nil {
				return err
			}
			cmd.Println(resp)
			return nil
		}
		rootCmd.AddCommand(info)
	}

	// list the identities of a tenant
	{
		list := &cobra.Command{
			Use:   "list",
			Short: "list the identities of a tenant",
		}
		tenant := list.Flags().String("tenant", "", "tenant to list")
		list.RunE = func(cmd *cobra.Command, args []string) error {
			resp, err := doRequest(cmd.Context(), ctx, http.MethodGet, registryPrefix+"tenants/"+url.PathEscape(*tenant), nil)
			if err != nil {
				return err
			}
			cmd.Println(resp)
			return nil
		}
		rootCmd.AddCommand(list)
	}

	return rootCmd
}

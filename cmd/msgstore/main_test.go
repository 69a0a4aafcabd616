// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigInfo(t *testing.T) {
	rootCmd := newRootCmd()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"--config-info", "json"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	require.True(t, json.Valid(out.Bytes()), out.String())
	require.Contains(t, out.String(), "api.addr")

	rootCmd = newRootCmd()
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--config-info", "yaml"})
	require.Error(t, rootCmd.ExecuteContext(context.Background()))
}

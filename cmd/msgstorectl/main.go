// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pingcap/msgstore/lib/cli"
	"github.com/pingcap/msgstore/lib/util/cmd"
	"github.com/pingcap/msgstore/pkg/util/versioninfo"
)

func main() {
	rootCmd := cli.GetRootCmd()
	rootCmd.Version = fmt.Sprintf("%s, commit %s", versioninfo.MsgStoreVersion, versioninfo.MsgStoreGitHash)
	rootCmd.Use = strings.Replace(rootCmd.Use, "msgstorectl", os.Args[0], 1)
	cmd.RunRootCommand(rootCmd)
}

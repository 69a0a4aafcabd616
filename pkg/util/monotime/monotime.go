// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package monotime

import (
	"time"
	_ "unsafe"
)

//go:noescape
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// Time is a reading of the monotonic clock. It only measures elapsed time
// and is cheaper than time.Now on the request path.
type Time int64

func Now() Time {
	return Time(nanotime())
}

func Since(t Time) time.Duration {
	return time.Duration(Time(nanotime()) - t)
}

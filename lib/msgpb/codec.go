// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package msgpb

import (
	"encoding/json"

	"github.com/pingcap/msgstore/lib/util/errors"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype, i.e. "application/grpc+json".
const CodecName = "json"

func init() {
	encoding.RegisterCodec(codec{})
}

type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	return b, errors.WithStack(err)
}

func (codec) Unmarshal(data []byte, v any) error {
	return errors.WithStack(json.Unmarshal(data, v))
}

func (codec) Name() string {
	return CodecName
}

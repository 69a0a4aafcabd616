// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/pingcap/msgstore/lib/msgpb"
	"github.com/pingcap/msgstore/lib/util/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Context struct {
	Logger *zap.Logger
	Client *http.Client
	// CUrls are the HTTP API addresses.
	CUrls []string
	// Addr is the gRPC address.
	Addr    string
	Timeout time.Duration
	Indent  bool
}

func doRequest(ctx context.Context, bctx *Context, method string, url string, rd io.Reader) (string, error) {
	var sep string
	if len(url) > 0 && url[0] != '/' {
		sep = "/"
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("http://localhost%s%s", sep, url), rd)
	if err != nil {
		return "", errors.WithStack(err)
	}

	var rete string
	for _, i := range rand.Perm(len(bctx.CUrls)) {
		req.URL.Host = bctx.CUrls[i]

		res, err := bctx.Client.Do(req)
		if err != nil {
			return "", errors.WithStack(err)
		}
		resb, _ := io.ReadAll(res.Body)
		_ = res.Body.Close()

		switch res.StatusCode {
		case http.StatusOK:
			return string(resb), nil
		case http.StatusBadRequest:
			return fmt.Sprintf("bad request: %s", string(resb)), nil
		case http.StatusInternalServerError:
			rete = fmt.Sprintf("internal error: %s", string(resb))
			continue
		default:
			rete = fmt.Sprintf("%s: %s", res.Status, string(resb))
			continue
		}
	}

	return rete, nil
}

func dialMessageStorage(bctx *Context) (msgpb.MessageStorageClient, func() error, error) {
	cc, err := grpc.NewClient(bctx.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return msgpb.NewMessageStorageClient(cc), cc.Close, nil
}

func formatJSON(bctx *Context, v any) (string, error) {
	var (
		b   []byte
		err error
	)
	if bctx.Indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	return string(b), errors.WithStack(err)
}

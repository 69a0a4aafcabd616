// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pingcap/msgstore/lib/msgpb"
	"github.com/pingcap/msgstore/lib/util/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mockMessageStorage issues identifiers like the server does, failing the
// first unavailableCnt calls.
type mockMessageStorage struct {
	sync.Mutex
	ids            map[msgpb.MessageRequest]uint64
	calls          atomic.Int32
	unavailableCnt int32
}

func (m *mockMessageStorage) SendMessage(_ context.Context, req *msgpb.MessageRequest) (*msgpb.MessageResponse, error) {
	if m.calls.Inc() <= m.unavailableCnt {
		return nil, status.Error(codes.Unavailable, "starting")
	}
	if !strings.HasPrefix(req.Key, "K-") {
		return nil, status.Error(codes.InvalidArgument, "Key is wrong: "+req.Key)
	}
	m.Lock()
	defer m.Unlock()
	if id, ok := m.ids[*req]; ok {
		return &msgpb.MessageResponse{Timestamp: time.Now(), ID: id}, nil
	}
	id := uint64(len(m.ids)) + 1
	m.ids[*req] = id
	return &msgpb.MessageResponse{Timestamp: time.Now(), ID: id, New: true}, nil
}

func startMockServer(t *testing.T, unavailableCnt int32) (*mockMessageStorage, string) {
	m := &mockMessageStorage{
		ids:            make(map[msgpb.MessageRequest]uint64),
		unavailableCnt: unavailableCnt,
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := grpc.NewServer()
	msgpb.RegisterMessageStorageServer(srv, m)
	go func() {
		_ = srv.Serve(listener)
	}()
	t.Cleanup(srv.Stop)
	return m, listener.Addr().String()
}

func runCmd(t *testing.T, args ...string) (string, error) {
	rootCmd := GetRootCmd()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newTestContext(t *testing.T, addr string) *Context {
	lg, _ := logger.CreateLoggerForTest(t)
	return &Context{
		Logger:  lg,
		Client:  http.DefaultClient,
		Addr:    addr,
		Timeout: 5 * time.Second,
	}
}

func TestSend(t *testing.T) {
	_, addr := startMockServer(t, 0)

	out, err := runCmd(t, "--addr", addr, "--indent=false", "send", "--key", "K-abc12-Z", "--tenant", "acme")
	require.NoError(t, err)
	var resp msgpb.MessageResponse
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &resp))
	require.Equal(t, uint64(1), resp.ID)
	require.True(t, resp.New)

	out, err = runCmd(t, "--addr", addr, "--indent=false", "send", "--key", "K-abc12-Z", "--tenant", "acme")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &resp))
	require.Equal(t, uint64(1), resp.ID)
	require.False(t, resp.New)
}

func TestSendRetry(t *testing.T) {
	m, addr := startMockServer(t, 2)
	bctx := newTestContext(t, addr)
	client, closeFn, err := dialMessageStorage(bctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, closeFn())
	})

	resp, err := sendMessage(context.Background(), bctx, client, &msgpb.MessageRequest{Key: "K-abc12-Z"}, 10*time.Millisecond, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.ID)
	require.EqualValues(t, 3, m.calls.Load())

	// Rejected keys are never retried.
	_, err = sendMessage(context.Background(), bctx, client, &msgpb.MessageRequest{Key: "Wrongo!"}, 10*time.Millisecond, 3)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	require.EqualValues(t, 4, m.calls.Load())
}

func TestSendRetryExhausted(t *testing.T) {
	m, addr := startMockServer(t, 10)
	bctx := newTestContext(t, addr)
	client, closeFn, err := dialMessageStorage(bctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, closeFn())
	})

	_, err = sendMessage(context.Background(), bctx, client, &msgpb.MessageRequest{Key: "K-abc12-Z"}, 10*time.Millisecond, 2)
	require.Equal(t, codes.Unavailable, status.Code(err))
	require.EqualValues(t, 3, m.calls.Load())
}

func TestBench(t *testing.T) {
	m, addr := startMockServer(t, 0)
	bctx := newTestContext(t, addr)
	client, closeFn, err := dialMessageStorage(bctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, closeFn())
	})

	res := runBench(context.Background(), bctx, client, benchOptions{
		tenants:     3,
		keys:        20,
		rounds:      2,
		concurrency: 8,
	})
	require.EqualValues(t, 120, res.Calls)
	require.EqualValues(t, 60, res.New)
	require.EqualValues(t, 60, res.Existing)
	require.Zero(t, res.Failed)
	require.Len(t, m.ids, 60)
}

func TestBenchKey(t *testing.T) {
	require.Equal(t, "K-00000-A", benchKey(0))
	require.Equal(t, "K-00042-A", benchKey(42))
	require.Equal(t, "K-00001-B", benchKey(100001))
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case healthPrefix:
			_, _ = w.Write([]byte(`{"config_checksum":1,"identities":2}`))
		case registryPrefix + "tenants/acme":
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	host := strings.TrimPrefix(server.URL, "http://")

	out, err := runCmd(t, "--curls", host, "health")
	require.NoError(t, err)
	require.Contains(t, out, `"identities":2`)

	out, err = runCmd(t, "--curls", host, "registry", "list", "--tenant", "acme")
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(out))

	out, err = runCmd(t, "--curls", host, "registry", "info")
	require.NoError(t, err)
	require.Contains(t, out, "404")
}

// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package msgpb

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type echoServer struct{}

func (echoServer) SendMessage(_ context.Context, req *MessageRequest) (*MessageResponse, error) {
	if req.Key == "" {
		return nil, status.Error(codes.InvalidArgument, "empty key")
	}
	return &MessageResponse{
		Timestamp: time.Unix(1700000000, 5).UTC(),
		ID:        uint64(len(req.Key) + len(req.Tenant)),
		New:       req.Tenant == "new",
	}, nil
}

func TestSendMessage(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := grpc.NewServer()
	RegisterMessageStorageServer(srv, echoServer{})
	go func() {
		_ = srv.Serve(listener)
	}()
	t.Cleanup(srv.Stop)

	cc, err := grpc.NewClient(listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, cc.Close())
	})
	client := NewMessageStorageClient(cc)

	resp, err := client.SendMessage(context.Background(), &MessageRequest{Key: "K-4bbf1-P", Tenant: "new"})
	require.NoError(t, err)
	require.Equal(t, uint64(12), resp.ID)
	require.True(t, resp.New)
	require.True(t, resp.Timestamp.Equal(time.Unix(1700000000, 5)))

	_, err = client.SendMessage(context.Background(), &MessageRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	require.Equal(t, "empty key", status.Convert(err).Message())
}

func TestExtractRequestFields(t *testing.T) {
	fields := make(map[string]any)
	(&MessageRequest{Key: "K-4bbf1-P", Tenant: "tenant"}).ExtractRequestFields(fields)
	require.Equal(t, map[string]any{"key": "K-4bbf1-P", "tenant": "tenant"}, fields)
}

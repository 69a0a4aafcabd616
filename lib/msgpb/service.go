// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package msgpb

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName           = "message_storage.v1.MessageStorage"
	SendMessageFullMethod = "/" + ServiceName + "/SendMessage"
)

// MessageStorageServer is the server API for the MessageStorage service.
type MessageStorageServer interface {
	// SendMessage returns the identifier of the (key, tenant) pair and whether it was just issued.
	SendMessage(context.Context, *MessageRequest) (*MessageResponse, error)
}

func RegisterMessageStorageServer(s grpc.ServiceRegistrar, srv MessageStorageServer) {
	s.RegisterService(&MessageStorageServiceDesc, srv)
}

func sendMessageHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(MessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MessageStorageServer).SendMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SendMessageFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MessageStorageServer).SendMessage(ctx, req.(*MessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// MessageStorageServiceDesc describes the MessageStorage service for grpc.Server.
var MessageStorageServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MessageStorageServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendMessage",
			Handler:    sendMessageHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "message_storage/v1/message_storage.proto",
}

// MessageStorageClient is the client API for the MessageStorage service.
type MessageStorageClient interface {
	SendMessage(ctx context.Context, in *MessageRequest, opts ...grpc.CallOption) (*MessageResponse, error)
}

type messageStorageClient struct {
	cc grpc.ClientConnInterface
}

func NewMessageStorageClient(cc grpc.ClientConnInterface) MessageStorageClient {
	return &messageStorageClient{cc}
}

func (c *messageStorageClient) SendMessage(ctx context.Context, in *MessageRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, SendMessageFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Package devicerpc holds the hand-maintained gRPC definition of
// devicehub.v1.DeviceService. Messages are expressed with protobuf
// well-known types so the repository carries no generated code and needs no
// protoc step; the stub shapes mirror what protoc-gen-go-grpc would emit.
package devicerpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "devicehub.v1.DeviceService"

	GetDeviceMethod   = "/devicehub.v1.DeviceService/GetDevice"
	WatchDeviceMethod = "/devicehub.v1.DeviceService/WatchDevice"
)

// Field names used in request and response payloads.
const (
	FieldAuthToken = "authToken"
	FieldAccountID = "accountId"
	FieldDeviceID  = "deviceId"
	FieldName      = "name"
	FieldState     = "state"
)

// DeviceServiceServer is the server API for DeviceService.
type DeviceServiceServer interface {
	GetDevice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	WatchDevice(req *structpb.Struct, stream grpc.ServerStreamingServer[structpb.Struct]) error
}

func RegisterDeviceServiceServer(s grpc.ServiceRegistrar, srv DeviceServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DeviceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetDevice",
			Handler:    getDeviceHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchDevice",
			Handler:       watchDeviceHandler,
			ServerStreams: true,
		},
	},
}

func getDeviceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceServiceServer).GetDevice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetDeviceMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeviceServiceServer).GetDevice(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func watchDeviceHandler(srv any, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(DeviceServiceServer).WatchDevice(in,
		&grpc.GenericServerStream[structpb.Struct, structpb.Struct]{ServerStream: stream})
}

// DeviceServiceClient is the client API for DeviceService.
type DeviceServiceClient interface {
	GetDevice(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	WatchDevice(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type deviceServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDeviceServiceClient(cc grpc.ClientConnInterface) DeviceServiceClient {
	return &deviceServiceClient{cc: cc}
}

func (c *deviceServiceClient) GetDevice(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetDeviceMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deviceServiceClient) WatchDevice(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], WatchDeviceMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[structpb.Struct, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// GetDeviceRequest builds a request payload for GetDevice and WatchDevice.
func GetDeviceRequest(authToken, accountID, deviceID string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldAuthToken: structpb.NewStringValue(authToken),
		FieldAccountID: structpb.NewStringValue(accountID),
		FieldDeviceID:  structpb.NewStringValue(deviceID),
	}}
}

// StringField returns the named string field of msg, or "".
func StringField(msg *structpb.Struct, name string) string {
	if msg == nil {
		return ""
	}
	if v, ok := msg.Fields[name]; ok {
		return v.GetStringValue()
	}
	return ""
}

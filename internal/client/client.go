// Package client is a demo client for DeviceService showing how the three
// unary invocation styles recover application error detail from a failure
// response.
package client

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/devicehub/errstatus"
	"github.com/devicehub/errstatus/internal/devicerpc"
)

type DeviceClient struct {
	conn   *grpc.ClientConn
	logger *zap.Logger
}

func Dial(target string, logger *zap.Logger) (*DeviceClient, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff:           backoff.DefaultConfig,
			MinConnectTimeout: 5 * time.Second,
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStreamInterceptor(errstatus.StreamClientInterceptor()),
	)
	if err != nil {
		return nil, fmt.Errorf("establish connection with devicehub server '%s': %w", target, err)
	}
	logger.Info("connected to the devicehub gRPC endpoint", zap.String("endpoint", target))
	return &DeviceClient{conn: conn, logger: logger}, nil
}

func (c *DeviceClient) Close() error {
	return c.conn.Close()
}

// GetDevice performs a blocking call. A failure comes back as an
// *errstatus.Error carrying the recovered ErrorStatus.
func (c *DeviceClient) GetDevice(ctx context.Context, token, accountID, deviceID string) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := errstatus.Invoke(ctx, c.conn, devicerpc.GetDeviceMethod,
		devicerpc.GetDeviceRequest(token, accountID, deviceID), out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDeviceFuture starts the call and returns a future for its result.
func (c *DeviceClient) GetDeviceFuture(ctx context.Context, token, accountID, deviceID string) *errstatus.Future[*structpb.Struct] {
	return errstatus.InvokeFuture(ctx, c.conn, devicerpc.GetDeviceMethod,
		devicerpc.GetDeviceRequest(token, accountID, deviceID), new(structpb.Struct))
}

// GetDeviceAsync starts the call and delivers the outcome to obs.
func (c *DeviceClient) GetDeviceAsync(ctx context.Context, token, accountID, deviceID string, obs errstatus.ResponseObserver[*structpb.Struct]) {
	errstatus.InvokeAsync(ctx, c.conn, devicerpc.GetDeviceMethod,
		devicerpc.GetDeviceRequest(token, accountID, deviceID), new(structpb.Struct), obs)
}

// WatchDevice opens the server stream. Terminal failures surface from Recv
// as *errstatus.Error via the stream interceptor installed at dial time.
func (c *DeviceClient) WatchDevice(ctx context.Context, token, accountID, deviceID string) (grpc.ServerStreamingClient[structpb.Struct], error) {
	return devicerpc.NewDeviceServiceClient(c.conn).
		WatchDevice(ctx, devicerpc.GetDeviceRequest(token, accountID, deviceID))
}

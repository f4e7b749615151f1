package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/reflection"

	"github.com/devicehub/errstatus"
	"github.com/devicehub/errstatus/internal/config"
	"github.com/devicehub/errstatus/internal/devicerpc"
)

const (
	ConnectionTimeout = time.Second * 5
)

// DeviceHubServer serves DeviceService over gRPC with the error-status
// propagation interceptors installed.
type DeviceHubServer struct {
	server *grpc.Server

	cfg    *config.ServiceConfig
	logger *zap.Logger
}

func NewDeviceHubServer(
	cfg *config.ServiceConfig,
	log *zap.Logger,
	svc devicerpc.DeviceServiceServer) (*DeviceHubServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	opts := []grpc.ServerOption{
		grpc.ConnectionTimeout(ConnectionTimeout),
		// The errstatus interceptors run innermost so the staging cell is on
		// the handler context and drained before the logging layer sees the
		// failure.
		grpc.ChainUnaryInterceptor(
			loggingUnaryInterceptor(log),
			errstatus.UnaryServerInterceptor(),
		),
		grpc.StreamInterceptor(errstatus.StreamServerInterceptor()),
	}
	server := grpc.NewServer(opts...)
	devicerpc.RegisterDeviceServiceServer(server, svc)
	reflection.Register(server)
	return &DeviceHubServer{
		server: server,
		cfg:    cfg,
		logger: log,
	}, nil
}

func loggingUnaryInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		// Retrieve the client IP address
		var clientIP string
		if p, ok := peer.FromContext(ctx); ok {
			if addr, ok := p.Addr.(*net.TCPAddr); ok {
				clientIP = addr.IP.String()
			}
		}
		log.Debug("Started request", zap.String("Request", info.FullMethod), zap.String("IP", clientIP))
		start := time.Now()
		resp, err = handler(ctx, req)
		duration := time.Since(start)
		if err != nil {
			log.Error(
				"Failed to complete request",
				zap.String("Request", info.FullMethod),
				zap.String("IP", clientIP),
				zap.Duration("Duration", duration),
				zap.Error(err))
		} else {
			log.Info(
				"Request completed successfully",
				zap.String("Request", info.FullMethod),
				zap.String("IP", clientIP),
				zap.Duration("Duration", duration))
		}
		return
	}
}

func (s *DeviceHubServer) Start(ctx context.Context) error {
	// s.cfg.Ip might be "", which is also fine
	listenAddr := fmt.Sprintf("%s:%s", s.cfg.Ip, s.cfg.Port)
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen address %s: %w", listenAddr, err)
	}
	s.logger.Info("devicehub server successfully started", zap.String("ListeningIP", listenAddr))
	return s.ServeListener(ctx, listener)
}

// ServeListener serves on lis until ctx is canceled or the server fails.
// Split from Start so tests can serve over an in-process listener.
func (s *DeviceHubServer) ServeListener(ctx context.Context, lis net.Listener) error {
	wg := sync.WaitGroup{}
	wg.Add(2)
	errCh := make(chan error, 1)
	var err error
	go func() {
		if serveErr := s.server.Serve(lis); serveErr != nil {
			errCh <- serveErr
		}
		wg.Done()
	}()
	go func() {
		select {
		case <-ctx.Done():
			s.server.GracefulStop()
		case err = <-errCh:
		}
		wg.Done()
	}()
	wg.Wait()
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	s.logger.Warn("DeviceHubServer stopped", zap.Error(err))
	return err
}

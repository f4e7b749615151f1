package errstatus

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryServerInterceptor installs a staging cell for every call and, when
// the handler fails, moves the staged ErrorStatus into the trailing metadata
// of the failure response before it is sent. Successful calls get no extra
// metadata.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = WithStaging(ctx)
		resp, err := handler(ctx, req)
		if err != nil {
			if st := Drain(ctx); st != nil {
				_ = grpc.SetTrailer(ctx, st.ToMetadata())
			}
		}
		return resp, err
	}
}

// StreamServerInterceptor is the streaming-handler counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := WithStaging(ss.Context())
		err := handler(srv, &stagedServerStream{ServerStream: ss, ctx: ctx})
		if err != nil {
			if st := Drain(ctx); st != nil {
				ss.SetTrailer(st.ToMetadata())
			}
		}
		return err
	}
}

type stagedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *stagedServerStream) Context() context.Context { return s.ctx }

// UnaryClientInterceptor captures the ErrorStatus from the trailing metadata
// of every failed unary call on the channel and hands it to consume before
// the caller observes the failure. On success consume is not invoked.
func UnaryClientInterceptor(consume func(*ErrorStatus)) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		var trailer metadata.MD
		err := invoker(ctx, method, req, reply, cc, append(opts, grpc.Trailer(&trailer))...)
		if err != nil {
			if st, ok := FromMetadata(trailer); ok {
				consume(st)
			}
		}
		return err
	}
}

// StreamClientInterceptor rethrows a terminal stream failure as an *Error
// carrying the ErrorStatus decoded from the stream's trailing metadata.
// io.EOF passes through untouched so Recv loops terminate normally.
func StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		cs, err := streamer(ctx, desc, cc, method, opts...)
		if err != nil {
			return nil, FromError(err)
		}
		return &capturingClientStream{ClientStream: cs}, nil
	}
}

type capturingClientStream struct {
	grpc.ClientStream
}

func (s *capturingClientStream) RecvMsg(m any) error {
	err := s.ClientStream.RecvMsg(m)
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	// The trailer is available once RecvMsg reports a terminal error.
	e := FromError(err)
	if st, ok := FromMetadata(s.Trailer()); ok {
		e = e.WithErrorStatus(st)
	}
	return e
}

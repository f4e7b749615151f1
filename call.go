package errstatus

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Capture collects the trailing metadata of a single call so the invocation
// adapters can recover the ErrorStatus after a failure.
type Capture struct {
	trailer metadata.MD
}

// CallOption returns the grpc call option routing the call's trailing
// metadata into the capture. gRPC populates the trailer before the call's
// error is surfaced, so Status is safe to read as soon as the call fails.
func (c *Capture) CallOption() grpc.CallOption {
	return grpc.Trailer(&c.trailer)
}

// Status returns the captured ErrorStatus, or nil when none was attached.
func (c *Capture) Status() *ErrorStatus {
	st, _ := FromMetadata(c.trailer)
	return st
}

// Invoke performs a blocking unary call. On failure it returns an *Error
// enriched with the ErrorStatus recovered from the response trailing
// metadata; on success out holds the reply. The future and observer
// adapters are thin layers over this.
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, method string, in, out any, opts ...grpc.CallOption) error {
	var capture Capture
	err := cc.Invoke(ctx, method, in, out, append(opts, capture.CallOption())...)
	if err == nil {
		return nil
	}
	return FromError(err).WithErrorStatus(capture.Status())
}

// Future resolves to the result of an asynchronous unary call.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Done is closed once the call has completed.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Get blocks until the call completes or ctx is done.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// InvokeFuture starts a unary call and returns a Future resolving to out.
// A failed call resolves to the same enriched error Invoke would return.
func InvokeFuture[T any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, out T, opts ...grpc.CallOption) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if f.err = Invoke(ctx, cc, method, in, out, opts...); f.err == nil {
			f.val = out
		}
	}()
	return f
}

// ResponseObserver receives the outcome of an asynchronous call. Exactly one
// of OnError or OnNext-then-OnCompleted is delivered.
type ResponseObserver[T any] interface {
	OnNext(T)
	OnError(error)
	OnCompleted()
}

// InvokeAsync starts a unary call and delivers its outcome to obs from a
// separate goroutine. A failure is delivered as the same enriched error
// Invoke would return.
func InvokeAsync[T any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, out T, obs ResponseObserver[T], opts ...grpc.CallOption) {
	go func() {
		if err := Invoke(ctx, cc, method, in, out, opts...); err != nil {
			obs.OnError(err)
			return
		}
		obs.OnNext(out)
		obs.OnCompleted()
	}()
}

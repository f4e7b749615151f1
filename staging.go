package errstatus

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// The staging cell hands an ErrorStatus from service-handler code to the
// outgoing server interceptor without changing handler signatures. It rides
// the per-call context, so staging and draining are tied to one call no
// matter which goroutine runs them, and concurrent calls can never observe
// each other's staged value.

type stagingCtxKey struct{}

type stagingCell struct {
	callID string

	mu sync.Mutex
	st *ErrorStatus
}

// WithStaging returns a context carrying a fresh staging cell identified by
// an opaque call token. The server interceptors install one for every call.
func WithStaging(ctx context.Context) context.Context {
	return context.WithValue(ctx, stagingCtxKey{}, &stagingCell{callID: uuid.NewString()})
}

func cellFrom(ctx context.Context) *stagingCell {
	c, _ := ctx.Value(stagingCtxKey{}).(*stagingCell)
	return c
}

// CallID returns the opaque per-call token, or "" outside a staged call.
// Useful for correlating handler logs with the failure response.
func CallID(ctx context.Context) string {
	if c := cellFrom(ctx); c != nil {
		return c.callID
	}
	return ""
}

// Stage stores st for the current call, overwriting any prior value.
// Staging nil puts the slot into a defined empty state. Reports whether a
// staging cell was present on the context.
func Stage(ctx context.Context, st *ErrorStatus) bool {
	c := cellFrom(ctx)
	if c == nil {
		return false
	}
	c.mu.Lock()
	c.st = st
	c.mu.Unlock()
	return true
}

// Drain atomically reads and clears the staged status for the current call.
// Returns nil when nothing was staged.
func Drain(ctx context.Context) *ErrorStatus {
	c := cellFrom(ctx)
	if c == nil {
		return nil
	}
	c.mu.Lock()
	st := c.st
	c.st = nil
	c.mu.Unlock()
	return st
}

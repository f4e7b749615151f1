package errstatus

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error is a transport failure optionally enriched with an application-level
// ErrorStatus. Instances are immutable; WithErrorStatus returns a copy.
type Error struct {
	status    *status.Status
	errStatus *ErrorStatus
	cause     error
}

// ForStatus wraps a bare transport status. No ErrorStatus is attached.
func ForStatus(st *status.Status) *Error {
	return &Error{status: st}
}

// ForErrorStatus builds an Error for an application error status. The
// application code is projected onto a transport code, the message becomes
// the status description, and the status itself travels attached so it ends
// up in the trailing metadata of the failure response.
func ForErrorStatus(es *ErrorStatus) *Error {
	return &Error{
		status:    status.New(toTransportCode(es.Code()), es.Message()),
		errStatus: es,
	}
}

func toTransportCode(c Code) codes.Code {
	switch c {
	case CodeAccountNotFound, CodeDeviceNotFound:
		return codes.NotFound
	case CodeUnknown:
		return codes.Unknown
	default:
		return codes.Internal
	}
}

// FromError normalizes an arbitrary failure into an *Error. Existing *Error
// values pass through unchanged, gRPC status errors keep their status,
// context cancellation and deadline expiry map onto the matching transport
// codes, and anything else becomes Internal with the original failure
// preserved as the cause. FromError(nil) returns nil.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if st, ok := status.FromError(err); ok {
		return &Error{status: st, cause: err}
	}
	switch {
	case errors.Is(err, context.Canceled):
		return &Error{status: status.New(codes.Canceled, err.Error()), cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{status: status.New(codes.DeadlineExceeded, err.Error()), cause: err}
	}
	return &Error{status: status.New(codes.Internal, err.Error()), cause: err}
}

// WithErrorStatus returns a copy of e with es attached; the transport status
// is unchanged. Attaching nil returns e unchanged.
func (e *Error) WithErrorStatus(es *ErrorStatus) *Error {
	if es == nil {
		return e
	}
	cp := *e
	cp.errStatus = es
	return &cp
}

// ErrorStatus returns the attached application error status, or nil.
func (e *Error) ErrorStatus() *ErrorStatus { return e.errStatus }

// GRPCStatus returns the transport status. grpc-go picks this up when an
// Error is returned from a handler, so the wire status matches exactly.
func (e *Error) GRPCStatus() *status.Status { return e.status }

// Code returns the transport status code.
func (e *Error) Code() codes.Code { return e.status.Code() }

func (e *Error) Error() string {
	if e.errStatus != nil {
		return fmt.Sprintf("rpc error: code = %s desc = %s errstatus = %s",
			e.status.Code(), e.status.Message(), e.errStatus)
	}
	return fmt.Sprintf("rpc error: code = %s desc = %s", e.status.Code(), e.status.Message())
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// IsClientFault reports whether the failure was caused by the caller's input
// rather than a server-side condition. Client faults are not logged by the
// Reporter to keep ordinary rejected requests out of the logs.
func (e *Error) IsClientFault() bool {
	switch e.status.Code() {
	case codes.Canceled, codes.InvalidArgument, codes.NotFound,
		codes.AlreadyExists, codes.PermissionDenied,
		codes.FailedPrecondition, codes.Unauthenticated:
		return true
	default:
		return false
	}
}

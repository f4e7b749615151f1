package errstatus

import (
	"context"

	"go.uber.org/zap"
)

// Reporter routes service-handler failures into the propagation machinery:
// it normalizes the failure, logs server faults, stages the attached
// ErrorStatus for the server interceptor and returns the error the handler
// should fail the call with.
type Reporter struct {
	logger *zap.Logger
}

func NewReporter(logger *zap.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report normalizes err and stages its ErrorStatus for the current call.
// Server-fault errors are logged once at error severity; client faults are
// not. The slot is staged even when no status is attached, so it is in a
// defined state for this call. Report(ctx, nil) returns nil.
func (r *Reporter) Report(ctx context.Context, err error) error {
	e := FromError(err)
	if e == nil {
		return nil
	}
	if !e.IsClientFault() {
		r.logger.Error("request failed",
			zap.String("callId", CallID(ctx)),
			zap.Stringer("code", e.Code()),
			zap.Error(e))
	}
	Stage(ctx, e.ErrorStatus())
	return e
}

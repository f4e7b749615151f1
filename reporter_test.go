package errstatus

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc/codes"
)

func TestReporterStagesAndClassifies(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantLogged bool
		wantStaged *ErrorStatus
		wantCode   codes.Code
	}{
		{
			name:       "server fault is logged and staged",
			err:        ForErrorStatus(ForCode(CodeLoginRequired).WithMessage("log in first")),
			wantLogged: true,
			wantStaged: ForCode(CodeLoginRequired).WithMessage("log in first"),
			wantCode:   codes.Internal,
		},
		{
			name:       "client fault is staged but not logged",
			err:        ForErrorStatus(ForCode(CodeAccountNotFound).WithMessage("gone")),
			wantLogged: false,
			wantStaged: ForCode(CodeAccountNotFound).WithMessage("gone"),
			wantCode:   codes.NotFound,
		},
		{
			name:       "plain failure is logged, nothing staged",
			err:        errors.New("registry corrupted"),
			wantLogged: true,
			wantStaged: nil,
			wantCode:   codes.Internal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			r := NewReporter(zap.New(core))
			ctx := WithStaging(context.Background())

			err := r.Report(ctx, tt.err)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Report returned %T, want *Error", err)
			}
			if e.Code() != tt.wantCode {
				t.Errorf("transport code = %v, want %v", e.Code(), tt.wantCode)
			}
			if got, want := logs.Len() > 0, tt.wantLogged; got != want {
				t.Errorf("logged = %v, want %v", got, want)
			}
			if got := Drain(ctx); !got.Equal(tt.wantStaged) {
				t.Errorf("staged = %v, want %v", got, tt.wantStaged)
			}
		})
	}
}

func TestReporterNil(t *testing.T) {
	r := NewReporter(zap.NewNop())
	if err := r.Report(context.Background(), nil); err != nil {
		t.Errorf("Report(nil) = %v, want nil", err)
	}
}

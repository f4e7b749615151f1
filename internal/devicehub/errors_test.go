package devicehub

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"

	"github.com/devicehub/errstatus"
)

func TestToStatusError(t *testing.T) {
	tests := []struct {
		name       string
		inputError error
		wantCode   codes.Code
		wantStatus *errstatus.ErrorStatus
		wantMsg    string
	}{
		{
			name:       "login required",
			inputError: &ErrLoginRequired{},
			wantCode:   codes.Internal,
			wantStatus: errstatus.ForCode(errstatus.CodeLoginRequired).WithMessage("auth token is missing or expired"),
			wantMsg:    "auth token is missing or expired",
		},
		{
			name:       "account not found",
			inputError: &ErrAccountNotFound{AccountID: "acme"},
			wantCode:   codes.NotFound,
			wantStatus: errstatus.ForCode(errstatus.CodeAccountNotFound).WithMessage(`account "acme" not found`),
			wantMsg:    `account "acme" not found`,
		},
		{
			name:       "device not found",
			inputError: &ErrDeviceNotFound{DeviceID: "camera-7"},
			wantCode:   codes.NotFound,
			wantStatus: errstatus.ForCode(errstatus.CodeDeviceNotFound).WithMessage(`device "camera-7" not found`),
			wantMsg:    `device "camera-7" not found`,
		},
		{
			name:       "wrapped device not found",
			inputError: fmt.Errorf("refreshing cache: %w", &ErrDeviceNotFound{DeviceID: "camera-7"}),
			wantCode:   codes.NotFound,
			wantStatus: errstatus.ForCode(errstatus.CodeDeviceNotFound).WithMessage(`refreshing cache: device "camera-7" not found`),
			wantMsg:    `refreshing cache: device "camera-7" not found`,
		},
		{
			name:       "invalid argument with field and reason",
			inputError: &ErrInvalidArgument{Field: "request", Reason: "accountId is required"},
			wantCode:   codes.InvalidArgument,
			wantStatus: nil,
			wantMsg:    "invalid request: accountId is required",
		},
		{
			name:       "invalid argument with field only",
			inputError: &ErrInvalidArgument{Field: "deviceId"},
			wantCode:   codes.InvalidArgument,
			wantStatus: nil,
			wantMsg:    "invalid deviceId",
		},
		{
			name:       "unmapped error stays untouched for the reporter",
			inputError: errors.New("registry corrupted"),
			wantCode:   codes.Internal,
			wantStatus: nil,
			wantMsg:    "registry corrupted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := errstatus.FromError(toStatusError(tt.inputError))
			if e.Code() != tt.wantCode {
				t.Errorf("transport code = %v, want %v", e.Code(), tt.wantCode)
			}
			if got := e.GRPCStatus().Message(); got != tt.wantMsg {
				t.Errorf("description = %q, want %q", got, tt.wantMsg)
			}
			if !e.ErrorStatus().Equal(tt.wantStatus) {
				t.Errorf("attached status = %v, want %v", e.ErrorStatus(), tt.wantStatus)
			}
		})
	}
}

func TestToStatusErrorNil(t *testing.T) {
	if err := toStatusError(nil); err != nil {
		t.Errorf("toStatusError(nil) = %v, want nil", err)
	}
}

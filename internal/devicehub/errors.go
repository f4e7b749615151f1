package devicehub

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/devicehub/errstatus"
)

// Typed errors raised by registry lookups. toStatusError maps them onto the
// errstatus taxonomy in one place so handler code never builds wire errors
// directly.

type ErrLoginRequired struct{}

func (e *ErrLoginRequired) Error() string {
	return "auth token is missing or expired"
}

// ErrAccountNotFound for lookups against an unknown account
type ErrAccountNotFound struct {
	AccountID string
}

func (e *ErrAccountNotFound) Error() string {
	return fmt.Sprintf("account %q not found", e.AccountID)
}

// ErrDeviceNotFound for lookups against an unknown device of a known account
type ErrDeviceNotFound struct {
	DeviceID string
}

func (e *ErrDeviceNotFound) Error() string {
	return fmt.Sprintf("device %q not found", e.DeviceID)
}

// ErrInvalidArgument for cases where field and reason matter
type ErrInvalidArgument struct {
	Field  string
	Reason string
}

func (e *ErrInvalidArgument) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s", e.Field)
}

// toStatusError converts a registry failure into the error the RPC should
// fail with, attaching application error detail where a code exists for it.
// Errors without a mapping pass through and end up as Internal when the
// Reporter normalizes them.
func toStatusError(err error) error {
	if err == nil {
		return nil
	}

	var loginErr *ErrLoginRequired
	if errors.As(err, &loginErr) {
		return errstatus.ForErrorStatus(
			errstatus.ForCode(errstatus.CodeLoginRequired).WithMessage(err.Error()))
	}

	var accountErr *ErrAccountNotFound
	if errors.As(err, &accountErr) {
		return errstatus.ForErrorStatus(
			errstatus.ForCode(errstatus.CodeAccountNotFound).WithMessage(err.Error()))
	}

	var deviceErr *ErrDeviceNotFound
	if errors.As(err, &deviceErr) {
		return errstatus.ForErrorStatus(
			errstatus.ForCode(errstatus.CodeDeviceNotFound).WithMessage(err.Error()))
	}

	var invalidArgErr *ErrInvalidArgument
	if errors.As(err, &invalidArgErr) {
		return errstatus.ForStatus(status.New(codes.InvalidArgument, err.Error()))
	}

	return err
}

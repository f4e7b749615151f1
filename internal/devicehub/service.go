// Package devicehub implements DeviceService on top of an in-memory device
// registry. Lookup failures carry application error detail to the client
// through the errstatus machinery.
package devicehub

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/devicehub/errstatus"
	"github.com/devicehub/errstatus/internal/devicerpc"
)

// Device is a registry entry.
type Device struct {
	ID    string
	Name  string
	State string
}

type Service struct {
	reporter *errstatus.Reporter

	mu      sync.RWMutex
	devices map[string]map[string]Device
	tokens  map[string]struct{}
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		reporter: errstatus.NewReporter(logger),
		devices:  map[string]map[string]Device{},
		tokens:   map[string]struct{}{},
	}
}

// AddToken registers an auth token accepted by the service.
func (s *Service) AddToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = struct{}{}
}

// AddDevice registers a device under the given account, creating the account
// if needed.
func (s *Service) AddDevice(accountID string, d Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.devices[accountID]
	if !ok {
		acct = map[string]Device{}
		s.devices[accountID] = acct
	}
	acct[d.ID] = d
}

// GetDevice implements devicerpc.DeviceServiceServer.
func (s *Service) GetDevice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	d, err := s.lookup(req)
	if err != nil {
		return nil, s.reporter.Report(ctx, toStatusError(err))
	}
	return deviceResponse(d), nil
}

// WatchDevice implements devicerpc.DeviceServiceServer. It emits the current
// device state once and fails the stream the same way GetDevice would.
func (s *Service) WatchDevice(req *structpb.Struct, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	d, err := s.lookup(req)
	if err != nil {
		return s.reporter.Report(stream.Context(), toStatusError(err))
	}
	if err := stream.Send(deviceResponse(d)); err != nil {
		return s.reporter.Report(stream.Context(), err)
	}
	return nil
}

func (s *Service) lookup(req *structpb.Struct) (Device, error) {
	token := devicerpc.StringField(req, devicerpc.FieldAuthToken)
	accountID := devicerpc.StringField(req, devicerpc.FieldAccountID)
	deviceID := devicerpc.StringField(req, devicerpc.FieldDeviceID)
	if accountID == "" || deviceID == "" {
		return Device{}, &ErrInvalidArgument{Field: "request", Reason: "accountId and deviceId are required"}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.tokens[token]; !ok {
		return Device{}, &ErrLoginRequired{}
	}
	acct, ok := s.devices[accountID]
	if !ok {
		return Device{}, &ErrAccountNotFound{AccountID: accountID}
	}
	d, ok := acct[deviceID]
	if !ok {
		return Device{}, &ErrDeviceNotFound{DeviceID: deviceID}
	}
	return d, nil
}

func deviceResponse(d Device) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		devicerpc.FieldDeviceID: structpb.NewStringValue(d.ID),
		devicerpc.FieldName:     structpb.NewStringValue(d.Name),
		devicerpc.FieldState:    structpb.NewStringValue(d.State),
	}}
}

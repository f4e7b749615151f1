// Package errstatus carries structured application-level error detail across
// a gRPC boundary. The transport status of a failed call only holds a coarse
// code and a free-text description; this package encodes an additional
// ErrorStatus into the trailing metadata of the failure response on the
// server, and recovers it on the client so callers get the full detail back.
package errstatus

import (
	"fmt"

	"google.golang.org/grpc/metadata"
)

// Code identifies an application-level error condition, finer grained than
// the transport status code it maps onto.
type Code string

const (
	CodeUnknown         Code = "unknown"
	CodeAccountNotFound Code = "accountNotFound"
	CodeDeviceNotFound  Code = "deviceNotFound"
	CodeLoginRequired   Code = "loginRequired"
)

// Trailing-metadata keys carrying the error status of a failed call. The
// "-bin" suffix marks the values as binary-safe; the transport base64-encodes
// them on the wire.
const (
	codeKey    = "error-code-bin"
	messageKey = "error-message-bin"
)

// codeFromWire maps a wire value back onto a Code. Unrecognized values fall
// back to CodeUnknown so a newer peer never breaks decoding.
func codeFromWire(s string) Code {
	switch c := Code(s); c {
	case CodeUnknown, CodeAccountNotFound, CodeDeviceNotFound, CodeLoginRequired:
		return c
	default:
		return CodeUnknown
	}
}

// ErrorStatus is additional application-level error information included in
// an error response, encoded as trailing-metadata fields. Values are
// immutable; WithMessage returns a copy.
type ErrorStatus struct {
	code    Code
	message string
}

// ForCode returns an ErrorStatus with the given code and no message. An
// empty code normalizes to CodeUnknown.
func ForCode(code Code) *ErrorStatus {
	if code == "" {
		code = CodeUnknown
	}
	return &ErrorStatus{code: code}
}

// WithMessage returns a copy of s carrying the given human-readable message.
// An empty message normalizes to "no message".
func (s *ErrorStatus) WithMessage(message string) *ErrorStatus {
	cp := *s
	cp.message = message
	return &cp
}

func (s *ErrorStatus) Code() Code { return s.code }

func (s *ErrorStatus) Message() string { return s.message }

// Equal reports structural equality over code and message. A nil status
// equals only another nil status.
func (s *ErrorStatus) Equal(o *ErrorStatus) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.code == o.code && s.message == o.message
}

func (s *ErrorStatus) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.message == "" {
		return string(s.code)
	}
	return fmt.Sprintf("%s: %s", s.code, s.message)
}

// AddToMetadata encodes s into md. The code field is always written, the
// message field only when a message is set.
func (s *ErrorStatus) AddToMetadata(md metadata.MD) {
	md.Set(codeKey, string(s.code))
	if s.message != "" {
		md.Set(messageKey, s.message)
	}
}

// ToMetadata returns a fresh metadata map holding the encoded status.
func (s *ErrorStatus) ToMetadata() metadata.MD {
	md := metadata.MD{}
	s.AddToMetadata(md)
	return md
}

// FromMetadata decodes an ErrorStatus from trailing metadata. A missing code
// field means no status was attached and reports false. Decoding never
// fails: an unrecognized code value yields CodeUnknown.
func FromMetadata(md metadata.MD) (*ErrorStatus, bool) {
	vals := md.Get(codeKey)
	if len(vals) == 0 {
		return nil, false
	}
	st := &ErrorStatus{code: codeFromWire(vals[0])}
	if msgs := md.Get(messageKey); len(msgs) > 0 {
		st.message = msgs[0]
	}
	return st, true
}

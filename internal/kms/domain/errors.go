package domain

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/allisson/kms/internal/errors"
)

// ErrorKind is the closed set of failure kinds the service can surface.
// Each kind has a fixed wire discriminator (see WireType) used by the
// `{"type": ..., "message": ...}` error encoding.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindAccessDenied
	KindInvalidKeyUsage
	KindKeyUnavailable
	KindInvalidCiphertext
	KindThrottling
	KindInvalidGrantToken
	KindInvalidKeyID
)

// Wire discriminators for each error kind.
const (
	TypeNotFound          = "NotFoundException"
	TypeAccessDenied      = "AccessDeniedException"
	TypeInvalidKeyUsage   = "InvalidKeyUsageException"
	TypeKeyUnavailable    = "KeyUnavailableException"
	TypeInvalidCiphertext = "InvalidCiphertextException"
	TypeThrottling        = "ThrottlingException"
	TypeInternal          = "InternalException"
	TypeInvalidGrantToken = "InvalidGrantTokenException"
	TypeInvalidKeyID      = "InvalidKeyIdException"
)

var kindToWireType = map[ErrorKind]string{
	KindNotFound:          TypeNotFound,
	KindAccessDenied:      TypeAccessDenied,
	KindInvalidKeyUsage:   TypeInvalidKeyUsage,
	KindKeyUnavailable:    TypeKeyUnavailable,
	KindInvalidCiphertext: TypeInvalidCiphertext,
	KindThrottling:        TypeThrottling,
	KindInternal:          TypeInternal,
	KindInvalidGrantToken: TypeInvalidGrantToken,
	KindInvalidKeyID:      TypeInvalidKeyID,
}

var wireTypeToKind = map[string]ErrorKind{
	TypeNotFound:          KindNotFound,
	TypeAccessDenied:      KindAccessDenied,
	TypeInvalidKeyUsage:   KindInvalidKeyUsage,
	TypeKeyUnavailable:    KindKeyUnavailable,
	TypeInvalidCiphertext: KindInvalidCiphertext,
	TypeThrottling:        KindThrottling,
	TypeInternal:          KindInternal,
	TypeInvalidGrantToken: KindInvalidGrantToken,
	TypeInvalidKeyID:      KindInvalidKeyID,
}

// kindToSentinel maps kinds to the shared base sentinels so callers can use
// errors.Is against internal/errors without knowing about Error.
var kindToSentinel = map[ErrorKind]error{
	KindNotFound:          apperrors.ErrNotFound,
	KindAccessDenied:      apperrors.ErrForbidden,
	KindInvalidKeyUsage:   apperrors.ErrInvalidInput,
	KindKeyUnavailable:    apperrors.ErrUnavailable,
	KindInvalidCiphertext: apperrors.ErrInvalidInput,
	KindThrottling:        apperrors.ErrTooManyRequests,
	KindInternal:          apperrors.ErrInternal,
	KindInvalidGrantToken: apperrors.ErrInvalidInput,
	KindInvalidKeyID:      apperrors.ErrInvalidInput,
}

// Error is a tagged service error: a kind from the closed taxonomy plus a
// human-readable message. It is terminal for the operation that produced it;
// the core performs no retries and no partial recovery.
type Error struct {
	Kind    ErrorKind
	Message string
}

// NewError creates an Error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Convenience constructors for each taxonomy kind.
func NewNotFound(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

func NewAccessDenied(format string, args ...any) *Error {
	return NewError(KindAccessDenied, format, args...)
}

func NewInvalidKeyUsage(format string, args ...any) *Error {
	return NewError(KindInvalidKeyUsage, format, args...)
}

func NewKeyUnavailable(format string, args ...any) *Error {
	return NewError(KindKeyUnavailable, format, args...)
}

func NewInvalidCiphertext(format string, args ...any) *Error {
	return NewError(KindInvalidCiphertext, format, args...)
}

func NewThrottling(format string, args ...any) *Error {
	return NewError(KindThrottling, format, args...)
}

func NewInternal(format string, args ...any) *Error {
	return NewError(KindInternal, format, args...)
}

func NewInvalidKeyID(format string, args ...any) *Error {
	return NewError(KindInvalidKeyID, format, args...)
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the base sentinel matching this error's kind, so
// errors.Is(err, apperrors.ErrNotFound) and friends keep working across
// layer boundaries.
func (e *Error) Unwrap() error {
	if sentinel, ok := kindToSentinel[e.Kind]; ok {
		return sentinel
	}
	return apperrors.ErrInternal
}

// WireType returns the wire discriminator for this error's kind.
func (e *Error) WireType() string {
	if t, ok := kindToWireType[e.Kind]; ok {
		return t
	}
	return TypeInternal
}

// errorWire is the JSON wire representation of an Error.
type errorWire struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MarshalJSON encodes the error as `{"type": <discriminator>, "message": <string>}`.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorWire{Type: e.WireType(), Message: e.Message})
}

// UnmarshalJSON decodes the wire format. An unrecognized discriminator maps
// to KindInternal with a message noting the unknown type; the decoder never
// fails on unknown kinds.
func (e *Error) UnmarshalJSON(data []byte) error {
	var wire errorWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	kind, ok := wireTypeToKind[wire.Type]
	if !ok {
		e.Kind = KindInternal
		e.Message = fmt.Sprintf("unknown error type %q: %s", wire.Type, wire.Message)
		return nil
	}

	e.Kind = kind
	e.Message = wire.Message
	return nil
}

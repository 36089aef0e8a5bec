package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/storefront-search/internal/imageshape"
	"github.com/usestring/storefront-search/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeListingError = "LISTING_ERROR"
	ErrCodeImageError   = "IMAGE_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapListingError converts a listing client error to a coded error.
func WrapListingError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	var svcErr *client.ServiceError
	switch {
	case isTimeout(err):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	case errors.As(err, &svcErr) && svcErr.StatusCode == 404:
		coded = &CodedError{Code: ErrCodeNotFound, Message: svcErr.Message, Cause: err}
	case errors.As(err, &svcErr):
		coded = &CodedError{Code: ErrCodeListingError, Message: svcErr.Message, Cause: err}
	case errors.Is(err, client.ErrMalformedPayload):
		coded = &CodedError{Code: ErrCodeListingError, Message: "malformed listing payload", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeListingError, Message: err.Error(), Cause: err}
	}

	slog.Warn("listing service error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// WrapImageError converts an image fetch or decode error to a coded error.
func WrapImageError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	switch {
	case isTimeout(err):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "image fetch timed out", Cause: err}
	case errors.Is(err, imageshape.ErrNotImage):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "url does not point at an image", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeImageError, Message: "classifying image", Cause: err}
	}

	slog.Warn("image shape error",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)

	return coded
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

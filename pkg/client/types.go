package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedPayload is returned when a listing response cannot be turned
// into products or categories: invalid JSON, a selector that yields no array,
// or items that fail the schema check.
var ErrMalformedPayload = errors.New("malformed listing payload")

// CategoryRef is the parent category embedded in a product.
type CategoryRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Product is a purchasable catalog item.
type Product struct {
	ID          string      `json:"id" jsonschema:"required,minLength=1"`
	Title       string      `json:"title" jsonschema:"required"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Category    CategoryRef `json:"category,omitempty"`

	// Price is in minor currency units (cents).
	Price           int64   `json:"price,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty" jsonschema:"minimum=0,maximum=100"`
}

// Category is a catalog grouping of products.
type Category struct {
	ID   string `json:"id" jsonschema:"required,minLength=1"`
	Name string `json:"name" jsonschema:"required"`
}

// ServiceError represents a failed call to the listing service. StatusCode
// is zero when the request never produced a response.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("listing service error: %s: %v", e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("listing service error %d: %s: %v", e.StatusCode, e.Message, e.Err)
	default:
		return fmt.Sprintf("listing service error %d: %s", e.StatusCode, e.Message)
	}
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Unauthorized reports whether the service rejected the credentials.
func (e *ServiceError) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// errorResponse covers the error envelopes the backend is known to send.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func errorMessage(body []byte) string {
	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	return strings.TrimSpace(string(body))
}

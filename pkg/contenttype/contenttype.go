// Package contenttype classifies Content-Type header values for the
// storefront's two kinds of fetches: JSON listing payloads and product images.
package contenttype

import (
	"mime"
	"strings"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON    Category = "json"
	HTML    Category = "html"
	Image   Category = "image"
	Text    Category = "text"
	Binary  Category = "binary"
	Unknown Category = "unknown"
)

// Classify returns the broad content category for a content-type header value.
// Uses mime.ParseMediaType to strip parameters (charset, boundary, etc.)
// before matching. Falls back to strings.ToLower for malformed values.
// Returns Unknown for empty content-type strings.
func Classify(contentType string) Category {
	if strings.TrimSpace(contentType) == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	// application/json, application/vnd.api+json, application/problem+json
	if strings.Contains(mediaType, "json") {
		return JSON
	}

	if mediaType == "text/html" || mediaType == "application/xhtml+xml" {
		return HTML
	}

	if strings.HasPrefix(mediaType, "image/") {
		return Image
	}

	if strings.HasPrefix(mediaType, "text/") {
		return Text
	}

	return Binary
}

// IsImage reports whether the content type is an image/* type.
func IsImage(contentType string) bool {
	return Classify(contentType) == Image
}

// IsJSON returns true if the content type indicates JSON (case-insensitive).
func IsJSON(contentType string) bool {
	return Classify(contentType) == JSON
}

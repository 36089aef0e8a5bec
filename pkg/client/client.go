package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/usestring/storefront-search/pkg/contenttype"
)

// DefaultBaseURL is the default base URL for the storefront listing API.
const DefaultBaseURL = "http://localhost:8080/api"

// Default listing paths, relative to the base URL.
const (
	DefaultProductsPath   = "/products"
	DefaultCategoriesPath = "/categories"
)

// maxPayloadBytes caps how much of a listing response is read.
const maxPayloadBytes = 32 << 20

// Client is a storefront listing API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string

	productsPath       string
	categoriesPath     string
	productsSelector   string
	categoriesSelector string
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAuthToken sends the token as a bearer Authorization header on every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithProductsPath overrides the product listing path.
func WithProductsPath(path string) Option {
	return func(c *Client) {
		c.productsPath = path
	}
}

// WithCategoriesPath overrides the category listing path.
func WithCategoriesPath(path string) Option {
	return func(c *Client) {
		c.categoriesPath = path
	}
}

// WithProductsSelector sets the jq expression that selects the product array
// from the response payload, e.g. ".data.items". Defaults to ".".
func WithProductsSelector(expr string) Option {
	return func(c *Client) {
		c.productsSelector = expr
	}
}

// WithCategoriesSelector sets the jq expression that selects the category
// array from the response payload. Defaults to ".".
func WithCategoriesSelector(expr string) Option {
	return func(c *Client) {
		c.categoriesSelector = expr
	}
}

// New creates a new listing API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:            DefaultBaseURL,
		httpClient:         http.DefaultClient,
		productsPath:       DefaultProductsPath,
		categoriesPath:     DefaultCategoriesPath,
		productsSelector:   ".",
		categoriesSelector: ".",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getRaw performs a GET request and returns the response body.
func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", "GET"),
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, &ServiceError{Message: "executing request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		svcErr := c.parseError(resp)
		slog.Debug("HTTP request returned error",
			slog.String("method", "GET"),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, svcErr
	}

	// Single-page frontends often answer unknown API paths with index.html.
	if ct := resp.Header.Get("Content-Type"); contenttype.Classify(ct) == contenttype.HTML {
		return nil, fmt.Errorf("%w: unexpected content type %q", ErrMalformedPayload, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: "reading response", Err: err}
	}

	slog.Debug("HTTP request completed",
		slog.String("method", "GET"),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return body, nil
}

// parseError extracts a ServiceError from an error response.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &ServiceError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
}

// Package imageshape classifies product images as square, landscape or
// portrait from their decoded dimensions.
package imageshape

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/usestring/storefront-search/internal/cache"
	"github.com/usestring/storefront-search/pkg/contenttype"
	"github.com/usestring/storefront-search/pkg/types"
)

// Shape is an aspect classification.
type Shape string

const (
	Square    Shape = "square"
	Landscape Shape = "landscape"
	Portrait  Shape = "portrait"
	Unknown   Shape = "unknown"
)

const (
	DefaultTolerance = 0.05
	DefaultMaxBytes  = 5 << 20
)

// ErrNotImage is returned when the server declares a non-image content type.
var ErrNotImage = errors.New("not an image")

// Classify buckets width x height. An image is square when its aspect ratio
// is within tolerance of 1.
func Classify(width, height int, tolerance float64) Shape {
	if width <= 0 || height <= 0 {
		return Unknown
	}
	ratio := float64(width) / float64(height)
	switch {
	case math.Abs(ratio-1) <= tolerance:
		return Square
	case ratio > 1:
		return Landscape
	default:
		return Portrait
	}
}

// Classifier fetches images and classifies their shape.
type Classifier struct {
	httpClient *http.Client
	cache      *cache.ShapeCache
	tolerance  float64
	maxBytes   int64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithHTTPClient sets the client used to fetch images.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Classifier) {
		cl.httpClient = c
	}
}

// WithCache memoizes shapes by URL.
func WithCache(c *cache.ShapeCache) Option {
	return func(cl *Classifier) {
		cl.cache = c
	}
}

// WithTolerance sets the square tolerance.
func WithTolerance(t float64) Option {
	return func(cl *Classifier) {
		cl.tolerance = t
	}
}

// WithMaxBytes caps how much of an image body is read.
func WithMaxBytes(n int64) Option {
	return func(cl *Classifier) {
		if n > 0 {
			cl.maxBytes = n
		}
	}
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tolerance:  DefaultTolerance,
		maxBytes:   DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Shape fetches url and classifies the image. Only the image header is
// decoded.
func (c *Classifier) Shape(ctx context.Context, url string) (types.ImageShape, error) {
	if c.cache != nil {
		if s, ok := c.cache.Get(url); ok {
			return s, nil
		}
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.ImageShape{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.ImageShape{}, fmt.Errorf("fetching image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return types.ImageShape{}, fmt.Errorf("fetching image: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !contenttype.IsImage(ct) {
		return types.ImageShape{}, fmt.Errorf("%w: content type %q", ErrNotImage, ct)
	}

	cfg, format, err := image.DecodeConfig(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return types.ImageShape{}, fmt.Errorf("decoding image header: %w", err)
	}

	shape := types.ImageShape{
		URL:    url,
		Width:  cfg.Width,
		Height: cfg.Height,
		Shape:  string(Classify(cfg.Width, cfg.Height, c.tolerance)),
		Format: format,
	}
	if cfg.Height > 0 {
		shape.Ratio = math.Round(float64(cfg.Width)/float64(cfg.Height)*1000) / 1000
	}

	slog.Debug("image classified",
		slog.String("url", url),
		slog.String("shape", shape.Shape),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if c.cache != nil {
		c.cache.Put(url, shape)
	}
	return shape, nil
}

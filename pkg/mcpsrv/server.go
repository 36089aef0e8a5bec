package mcpsrv

import (
	"context"
	"fmt"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/storefront-search/internal/cache"
	"github.com/usestring/storefront-search/internal/config"
	"github.com/usestring/storefront-search/internal/imageshape"
	"github.com/usestring/storefront-search/internal/logging"
	"github.com/usestring/storefront-search/internal/mcp"
	"github.com/usestring/storefront-search/internal/mcp/tools"
	"github.com/usestring/storefront-search/internal/search"
	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/pricing"
)

// Server is the storefront search MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	eagerInit  bool
	logCleanup func() error
}

// NewClientFromEnv creates a listing client configured from the environment
// (STOREFRONT_BASE_URL, STOREFRONT_API_TOKEN, PRODUCTS_SELECTOR, ...) and the
// optional STOREFRONT_CONFIG_FILE.
func NewClientFromEnv() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.ClientOptions()...), nil
}

// NewServer creates a new MCP server with builtin storefront tools.
//
// The client parameter is required and provides access to the listing service.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(c *client.Client, opts ...Option) (*Server, error) {
	if c == nil {
		return nil, fmt.Errorf("client is required")
	}

	appCfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg := &serverConfig{config: appCfg}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.FromConfig(cfg.config)
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	deps, err := buildDeps(c, cfg)
	if err != nil {
		_ = logCleanup()
		return nil, err
	}

	toolDeps := &tools.Deps{
		Client:  deps.Client,
		Store:   deps.Store,
		Images:  deps.Images,
		Pricing: deps.Pricing,
		Config:  deps.Config,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.registrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		eagerInit:  cfg.eagerInit,
		logCleanup: logCleanup,
	}, nil
}

// buildDeps creates the store, caches, image classifier and price formatter.
func buildDeps(c *client.Client, cfg *serverConfig) (*Deps, error) {
	resultCache, err := cache.NewResultCache(cfg.config.ResultCacheItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	shapeCache, err := cache.NewShapeCache(cfg.config.ImageCacheItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.config.HTTPClientTimeout}
	}

	return &Deps{
		Client: c,
		Store: search.NewStore(c,
			search.WithResultCache(resultCache),
			search.WithInitTimeout(cfg.config.InitTimeout),
		),
		Images: imageshape.New(
			imageshape.WithHTTPClient(httpClient),
			imageshape.WithCache(shapeCache),
			imageshape.WithTolerance(cfg.config.SquareTolerance),
			imageshape.WithMaxBytes(cfg.config.ImageMaxBytes),
		),
		Pricing: pricing.NewFormatter(cfg.config.CurrencySymbol, cfg.config.Locale),
		Config:  cfg.config,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.eagerInit {
		go s.deps.Store.Initialize(ctx)
	}
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server, e.g. to connect a transport
// other than stdio.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}

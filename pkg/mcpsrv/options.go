package mcpsrv

import (
	"context"
	"net/http"
	"time"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/storefront-search/internal/config"
	"github.com/usestring/storefront-search/pkg/pricing"
)

// serverConfig holds configuration built from options. config starts from
// the environment and options override it.
type serverConfig struct {
	config     *config.Config
	httpClient *http.Client

	logLevel string
	logFile  string

	// eagerInit loads the catalog snapshot when Run starts instead of on
	// the first tool call.
	eagerInit bool

	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// registrations run in option order once Deps exist.
	registrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path. Logs are rotated by size.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithHTTPClient sets the HTTP client used to fetch product images.
// The listing client passed to NewServer keeps its own.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *serverConfig) {
		cfg.httpClient = c
	}
}

// WithEagerInit loads the catalog snapshot in the background as soon as Run
// starts. Without it the snapshot loads on the first tool call.
func WithEagerInit() Option {
	return func(cfg *serverConfig) {
		cfg.eagerInit = true
	}
}

// WithInitTimeout bounds a snapshot load. Zero disables the bound.
func WithInitTimeout(d time.Duration) Option {
	return func(cfg *serverConfig) {
		cfg.config.InitTimeout = d
	}
}

// WithCurrency sets the symbol and locale used to format prices in quotes.
func WithCurrency(symbol, locale string) Option {
	return func(cfg *serverConfig) {
		cfg.config.CurrencySymbol = symbol
		cfg.config.Locale = locale
	}
}

// WithTiers replaces the named discount tiers offered by the price quote tool
// and the find_gift prompt.
func WithTiers(tiers ...pricing.Tier) Option {
	return func(cfg *serverConfig) {
		cfg.config.Tiers = tiers
	}
}

// WithoutBuiltinTools disables all builtin storefront tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin storefront prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool that needs nothing from the storefront.
// Types are checked the same way as [AddTool].
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool built from the server's Deps, so it
// shares the store and caches with the builtin tools.
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "count_matches", Description: "Count catalog matches"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            d.Store.Initialize(ctx)
//	            return nil, CountOutput{Count: len(d.Store.SetQuery(in.Query))}, nil
//	        }
//	    },
//	)
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template, e.g. one that
// exposes another catalog entity under its own URI scheme.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}

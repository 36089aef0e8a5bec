package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/storefront-search/internal/config"
	"github.com/usestring/storefront-search/internal/imageshape"
	"github.com/usestring/storefront-search/internal/mcp/tools"
	"github.com/usestring/storefront-search/internal/search"
	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/pricing"
)

// --- helpers ---

func newListingServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"id":"p1","title":"Steam Wallet Card","description":"Prepaid code","category":{"id":"c1","name":"Gaming"},"price":2000},
			{"id":"p2","title":"Netflix","description":"Streaming subscription","price":1500}
		]}`))
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"c1","name":"Gaming"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestDeps(t *testing.T) *tools.Deps {
	t.Helper()
	srv := newListingServer(t)
	c := client.New(
		client.WithBaseURL(srv.URL),
		client.WithProductsSelector(".items"),
		client.WithCategoriesSelector(".items"),
	)
	return &tools.Deps{
		Client:  c,
		Store:   search.NewStore(c),
		Images:  imageshape.New(),
		Pricing: pricing.NewFormatter("$", "en"),
		Config:  &config.Config{CurrencySymbol: "$", Tiers: []pricing.Tier{{Name: "gold", DiscountPercent: 20}}},
	}
}

// connect starts s on an in-memory transport and returns a client session.
func connect(t *testing.T, s *Server) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ss, err := s.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	c := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	cs, err := c.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func structured(t *testing.T, res *sdkmcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, res.IsError, "tool returned an error: %+v", res.Content)
	b, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, v))
}

// --- tests ---

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)
}

func TestServer_ListTools(t *testing.T) {
	s, err := NewServer(newTestDeps(t), WithBuiltinTools())
	require.NoError(t, err)
	cs := connect(t, s)

	res, err := cs.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"storefront_search",
		"storefront_clear",
		"storefront_status",
		"storefront_price_quote",
		"storefront_image_shape",
	}, names)
}

func TestServer_SearchRoundTrip(t *testing.T) {
	s, err := NewServer(newTestDeps(t), WithBuiltinTools())
	require.NoError(t, err)
	cs := connect(t, s)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "storefront_search",
		Arguments: map[string]any{"query": "gaming"},
	})
	require.NoError(t, err)

	var out tools.SearchOutput
	structured(t, res, &out)
	assert.Equal(t, "gaming", out.Query)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "c1", out.Results[0].ID)

	res, err = cs.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "storefront_search",
		Arguments: map[string]any{"query": "xbox"},
	})
	require.NoError(t, err)
	out = tools.SearchOutput{}
	structured(t, res, &out)
	assert.Empty(t, out.Results)
	assert.Equal(t, "No results found for 'xbox'", out.Hint)
}

func TestServer_PriceQuoteErrorIsToolError(t *testing.T) {
	s, err := NewServer(newTestDeps(t), WithBuiltinTools())
	require.NoError(t, err)
	cs := connect(t, s)

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "storefront_price_quote",
		Arguments: map[string]any{"product_id": "missing"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_Resources(t *testing.T) {
	s, err := NewServer(newTestDeps(t), WithBuiltinTools())
	require.NoError(t, err)
	cs := connect(t, s)
	ctx := context.Background()

	res, err := cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "storefront://product/p1"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, tools.MimeJSON, res.Contents[0].MIMEType)

	var product client.Product
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &product))
	assert.Equal(t, "Steam Wallet Card", product.Title)
	assert.Equal(t, int64(2000), product.Price)

	res, err = cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "storefront://category/c1"})
	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, `"Gaming"`)

	_, err = cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "storefront://product/nope"})
	assert.Error(t, err)
}

func TestServer_ResourcesCatalogDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(down.Close)

	deps := newTestDeps(t)
	deps.Client = client.New(client.WithBaseURL(down.URL))
	deps.Store = search.NewStore(deps.Client)

	s, err := NewServer(deps, WithBuiltinTools())
	require.NoError(t, err)
	cs := connect(t, s)
	ctx := context.Background()

	for _, uri := range []string{"storefront://product/p1", "storefront://category/c1"} {
		t.Run(uri, func(t *testing.T) {
			_, err := cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: uri})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tools.ErrCodeListingError)
		})
	}
	assert.False(t, deps.Store.Initialized())
}

func TestServer_Prompts(t *testing.T) {
	s, err := NewServer(newTestDeps(t), WithBuiltinPrompts())
	require.NoError(t, err)
	cs := connect(t, s)

	res, err := cs.GetPrompt(context.Background(), &sdkmcp.GetPromptParams{
		Name:      "find_gift",
		Arguments: map[string]string{"budget": "30"},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "up to $30")
	assert.Contains(t, text.Text, "gold")
}

func TestServer_CustomRegistration(t *testing.T) {
	called := false
	_, err := NewServer(newTestDeps(t), WithCustomRegistration(func(*sdkmcp.Server) { called = true }))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestParseResourceURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    map[string]string
		wantErr bool
	}{
		{"product", "storefront://product/p1", map[string]string{"product": "p1"}, false},
		{"category", "storefront://category/c9", map[string]string{"category": "c9"}, false},
		{"wrong scheme", "shop://product/p1", nil, true},
		{"empty path", "storefront://", nil, true},
		{"missing id", "storefront://product/", nil, true},
		{"extra segment", "storefront://product/p1/extra", nil, true},
		{"unknown type", "storefront://order/o1", nil, true},
		{"escaped id", "storefront://product/gift%20card%2F1", map[string]string{"product": "gift card/1"}, false},
		{"bad escape", "storefront://product/%zz", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResourceURI(tt.uri)
			if tt.wantErr {
				var coded *tools.CodedError
				require.ErrorAs(t, err, &coded)
				assert.Equal(t, tools.ErrCodeInvalidInput, coded.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

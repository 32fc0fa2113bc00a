// Package client connects to one or more Model Context Protocol servers and
// presents their tools as a single registry.
package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	version "github.com/mutablelogic/go-stylist/pkg/version"
	gootel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TransportFunc returns a transport for a new session
type TransportFunc func(context.Context) (mcp.Transport, error)

// Endpoint is a named MCP server
type Endpoint struct {
	Name      string        `json:"name"`
	URL       string        `json:"url,omitempty"`
	Transport TransportFunc `json:"-"`
}

// Registry is a set of sessions with MCP servers, which routes each tool
// call to the server which advertised the tool
type Registry struct {
	sync.RWMutex
	client    *mcp.Client
	logger    *slog.Logger
	tracer    trace.Tracer
	http      *http.Client
	endpoints []Endpoint
	sessions  map[string]*mcp.ClientSession // server name -> session
	routes    map[string]string             // tool name -> server name
	catalogue schema.Catalogue
}

// session is the outcome of connecting to one endpoint
type session struct {
	*mcp.ClientSession
	tools []*mcp.Tool
}

var _ stylist.ToolRegistry = (*Registry)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	instrumentationName = "github.com/mutablelogic/go-stylist/pkg/mcp/client"
	emptyResult         = "(no result)"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewEndpoint returns an endpoint for a server URL. URLs whose path ends in
// /sse use the SSE transport, and all others use streamable HTTP.
func NewEndpoint(name, endpoint string) (Endpoint, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return Endpoint{}, stylist.ErrBadParameter.Withf("endpoint %q: %v", endpoint, err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return Endpoint{}, stylist.ErrBadParameter.Withf("endpoint %q: unsupported scheme", endpoint)
	}
	if name == "" {
		name = u.Host
	}
	return Endpoint{Name: name, URL: endpoint}, nil
}

// Connect opens sessions with all endpoints in parallel and lists their
// tools. Servers which cannot be reached are skipped with a warning. When
// two servers advertise the same tool name, the earlier endpoint wins.
func Connect(ctx context.Context, endpoints []Endpoint, opts ...Opt) (_ *Registry, err error) {
	r := &Registry{
		logger:    slog.Default(),
		tracer:    gootel.Tracer(instrumentationName),
		endpoints: endpoints,
		sessions:  make(map[string]*mcp.ClientSession, len(endpoints)),
		routes:    make(map[string]string),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	// Check for duplicate names
	names := make(map[string]bool, len(endpoints))
	for _, endpoint := range endpoints {
		if endpoint.Name == "" {
			return nil, stylist.ErrBadParameter.With("endpoint name is required")
		} else if names[endpoint.Name] {
			return nil, stylist.ErrBadParameter.Withf("duplicate endpoint name: %q", endpoint.Name)
		}
		names[endpoint.Name] = true
	}

	ctx, endSpan := otel.StartSpan(r.tracer, ctx, "Connect",
		attribute.Int("endpoints", len(endpoints)),
	)
	defer func() { endSpan(err) }()

	// Connect in parallel; failures are logged and do not cancel the others
	r.client = mcp.NewClient(&mcp.Implementation{Name: "stylist", Version: version.Version()}, nil)
	results := make([]*session, len(endpoints))
	var g errgroup.Group
	for i, endpoint := range endpoints {
		g.Go(func() error {
			if s, err := r.connect(ctx, endpoint); err != nil {
				r.logger.WarnContext(ctx, "mcp server unavailable", "server", endpoint.Name, "url", endpoint.URL, "error", err)
			} else {
				results[i] = s
			}
			return nil
		})
	}
	_ = g.Wait()

	// Merge the tool lists in endpoint order
	for i, s := range results {
		if s == nil {
			continue
		}
		name := endpoints[i].Name
		r.sessions[name] = s.ClientSession
		for _, t := range s.tools {
			if other, exists := r.routes[t.Name]; exists {
				r.logger.WarnContext(ctx, "duplicate tool ignored", "tool", t.Name, "server", name, "using", other)
				continue
			}
			r.routes[t.Name] = name
			r.catalogue = append(r.catalogue, descriptor(t))
		}
	}

	// Return success
	return r, nil
}

// Close ends all sessions
func (r *Registry) Close() error {
	r.Lock()
	defer r.Unlock()

	var result error
	for name, s := range r.sessions {
		if err := s.Close(); err != nil && result == nil {
			result = err
		}
		delete(r.sessions, name)
	}
	r.routes = make(map[string]string)
	r.catalogue = nil
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Descriptors returns the merged catalogue, in endpoint order and then the
// order each server listed its tools
func (r *Registry) Descriptors() schema.Catalogue {
	r.RLock()
	defer r.RUnlock()
	return append(schema.Catalogue(nil), r.catalogue...)
}

// Servers returns the names of the connected servers and their URLs
func (r *Registry) Servers() map[string]string {
	r.RLock()
	defer r.RUnlock()
	result := make(map[string]string, len(r.sessions))
	for _, endpoint := range r.endpoints {
		if _, connected := r.sessions[endpoint.Name]; connected {
			result[endpoint.Name] = endpoint.URL
		}
	}
	return result
}

// Invoke calls a tool on the server which advertised it and returns the
// text of the result
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (_ string, err error) {
	r.RLock()
	server, exists := r.routes[name]
	cs := r.sessions[server]
	r.RUnlock()
	if !exists || cs == nil {
		return "", stylist.ErrToolNotFound.Withf("%q", name)
	}

	ctx, endSpan := otel.StartSpan(r.tracer, ctx, "CallTool",
		attribute.String("server", server),
		attribute.String("tool", name),
	)
	defer func() { endSpan(err) }()

	if args == nil {
		args = map[string]any{}
	}
	result, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return "", stylist.ErrHandler.Wrap(err)
	}
	text := resultText(result)
	if result.IsError {
		return "", stylist.ErrHandler.With(text)
	}
	return text, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// connect opens a session with an endpoint and lists its tools
func (r *Registry) connect(ctx context.Context, endpoint Endpoint) (*session, error) {
	transport, err := r.transport(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	cs, err := r.client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, err
	}
	var tools []*mcp.Tool
	for t, err := range cs.Tools(ctx, nil) {
		if err != nil {
			cs.Close()
			return nil, err
		}
		tools = append(tools, t)
	}
	return &session{ClientSession: cs, tools: tools}, nil
}

// transport returns the transport for an endpoint
func (r *Registry) transport(ctx context.Context, endpoint Endpoint) (mcp.Transport, error) {
	switch {
	case endpoint.Transport != nil:
		return endpoint.Transport(ctx)
	case endpoint.URL == "":
		return nil, stylist.ErrBadParameter.Withf("endpoint %q has no url", endpoint.Name)
	case strings.HasSuffix(strings.TrimSuffix(endpoint.URL, "/"), "/sse"):
		return &mcp.SSEClientTransport{Endpoint: endpoint.URL, HTTPClient: r.http}, nil
	default:
		return &mcp.StreamableClientTransport{Endpoint: endpoint.URL, HTTPClient: r.http}, nil
	}
}

// descriptor converts an advertised tool to a descriptor. The input schema
// is converted with a JSON round-trip, and dropped if it cannot be decoded.
func descriptor(t *mcp.Tool) schema.ToolDescriptor {
	result := schema.ToolDescriptor{
		Name:        t.Name,
		Description: t.Description,
	}
	if t.InputSchema != nil {
		if data, err := json.Marshal(t.InputSchema); err == nil {
			var s jsonschema.Schema
			if err := json.Unmarshal(data, &s); err == nil {
				result.InputSchema = &s
			}
		}
	}
	return result
}

// resultText joins the text content of a result, falling back to the
// structured content and then a placeholder
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return emptyResult
	}
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok && text.Text != "" {
			parts = append(parts, text.Text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n")
	}
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			return string(data)
		}
	}
	return emptyResult
}

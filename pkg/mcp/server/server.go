// Package server exposes a toolkit as a Model Context Protocol server, over
// SSE, streamable HTTP or standard input and output.
// https://modelcontextprotocol.io/specification/2025-03-26/basic/lifecycle
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	// Packages
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	stylist "github.com/mutablelogic/go-stylist"
	tool "github.com/mutablelogic/go-stylist/pkg/tool"
	gootel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	*mcp.Server
	name    string
	version string
	toolkit *tool.Toolkit
	logger  *slog.Logger
	tracer  trace.Tracer
}

///////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	instrumentationName = "github.com/mutablelogic/go-stylist/pkg/mcp/server"
)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version, which serves
// every tool in the toolkit
func New(name, version string, toolkit *tool.Toolkit, opts ...Opt) (*Server, error) {
	if name == "" {
		return nil, stylist.ErrBadParameter.With("missing server name")
	} else if toolkit == nil {
		return nil, stylist.ErrBadParameter.With("missing toolkit")
	}

	self := &Server{
		name:    name,
		version: version,
		toolkit: toolkit,
		logger:  slog.Default(),
		tracer:  gootel.Tracer(instrumentationName),
	}
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Create the protocol server and register the tools
	self.Server = mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, &mcp.ServerOptions{
		Logger: self.logger,
	})
	for _, descriptor := range toolkit.Descriptors() {
		schema := descriptor.Schema()
		if schema.Type != "object" {
			return nil, stylist.ErrBadParameter.Withf("tool %q: input schema must be an object", descriptor.Name)
		}
		self.AddTool(&mcp.Tool{
			Name:        descriptor.Name,
			Description: descriptor.Description,
			InputSchema: schema,
		}, self.handler(descriptor.Name))
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the server name
func (server *Server) Name() string {
	return server.name
}

// Toolkit returns the tools served
func (server *Server) Toolkit() *tool.Toolkit {
	return server.toolkit
}

// SSEHandler returns a handler for the SSE transport. Clients connect with
// GET and post messages to the session endpoint it advertises.
func (server *Server) SSEHandler() http.Handler {
	return mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return server.Server
	}, nil)
}

// StreamableHandler returns a handler for the streamable HTTP transport
func (server *Server) StreamableHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server.Server
	}, nil)
}

// RunStdio serves a single session on standard input and output, in the
// foreground until the context is done or the client disconnects
func (server *Server) RunStdio(ctx context.Context) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// handler returns the protocol handler for a tool. Failures are returned
// to the client as error results rather than protocol errors, and are
// recorded on the span.
func (server *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var callErr error
		ctx, endSpan := otel.StartSpan(server.tracer, ctx, "CallTool",
			attribute.String("server", server.name),
			attribute.String("tool", name),
		)
		defer func() { endSpan(callErr) }()

		var input json.RawMessage
		if req != nil && req.Params != nil {
			input = req.Params.Arguments
		}
		result, err := server.toolkit.Run(ctx, name, input)
		if err != nil {
			callErr = err
			server.logger.WarnContext(ctx, "tool call failed", "server", server.name, "tool", name, "error", err)
			return errorResult(err), nil
		}
		text, err := tool.Text(result)
		if err != nil {
			callErr = err
			return errorResult(err), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

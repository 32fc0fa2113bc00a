package server

import (
	"errors"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	PathSSE        = "/sse"
	PathStreamable = "/mcp"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers serves the SSE transport at /sse and the streamable HTTP
// transport at /mcp, through the router middleware
func (server *Server) RegisterHandlers(router *httprouter.Router) error {
	sse := server.SSEHandler().ServeHTTP
	streamable := server.StreamableHandler().ServeHTTP
	return errors.Join(
		router.RegisterPath(PathSSE, nil, httprequest.NewPathItem("SSE", "MCP over server-sent events", server.Name()).
			Get(sse, "Open an event stream").
			Post(sse, "Send a message to an event stream session"),
		),
		router.RegisterPath(PathStreamable, nil, httprequest.NewPathItem("Streamable", "MCP over streamable HTTP", server.Name()).
			Get(streamable, "Open a stream for server messages").
			Post(streamable, "Send a message").
			Delete(streamable, "Close a session"),
		),
	)
}

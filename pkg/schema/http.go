package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatRequest represents a query for the stylist
type ChatRequest struct {
	Query    string `json:"query" arg:"" help:"Query text"`
	MaxTurns uint   `json:"max_turns,omitempty" help:"Maximum number of model turns (0 uses the server default)"`
}

// ChatResponse represents the final answer to a chat request
type ChatResponse struct {
	Response string `json:"response"`
}

// HealthResponse reports service status and the configured tool servers
type HealthResponse struct {
	Status  string            `json:"status"`
	Backend string            `json:"backend,omitempty"`
	Servers map[string]string `json:"mcp_servers"`
}

// ListToolRequest represents a request to list tools
type ListToolRequest struct {
	Limit  *uint `json:"limit,omitempty" help:"Maximum number of tools to return"`
	Offset uint  `json:"offset,omitempty" help:"Offset for pagination"`
}

// ListToolResponse represents a page of tool descriptors
type ListToolResponse struct {
	Count  uint      `json:"count"`
	Offset uint      `json:"offset,omitzero"`
	Limit  *uint     `json:"limit,omitzero"`
	Body   Catalogue `json:"body,omitzero"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ChatRequest) String() string {
	return types.Stringify(r)
}

func (r ChatResponse) String() string {
	return types.Stringify(r)
}

func (r HealthResponse) String() string {
	return types.Stringify(r)
}

func (r ListToolResponse) String() string {
	return types.Stringify(r)
}

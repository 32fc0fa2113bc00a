package schema

import (
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is one entry in a transcript. The role determines which of the
// remaining fields are meaningful.
type Message struct {
	Role       string     `json:"role"`                   // "system", "user", "assistant", "tool"
	Text       string     `json:"text,omitempty"`         // Text content
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // Assistant only
	ToolCallID string     `json:"tool_call_id,omitempty"` // Tool result only
	Name       string     `json:"name,omitempty"`         // Tool result only: name of the tool called
}

// ToolCall represents a tool invocation requested by the model
type ToolCall struct {
	ID        string         `json:"id"`                  // Unique within a transcript
	Name      string         `json:"name"`                // Tool name
	Arguments map[string]any `json:"arguments,omitempty"` // Structured arguments
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewSystemMessage(text string) *Message {
	return &Message{Role: RoleSystem, Text: text}
}

func NewUserMessage(text string) *Message {
	return &Message{Role: RoleUser, Text: text}
}

// NewAssistantMessage returns an assistant message with optional text and
// the tool calls the model requested
func NewAssistantMessage(text string, calls ...ToolCall) *Message {
	return &Message{Role: RoleAssistant, Text: text, ToolCalls: calls}
}

// NewToolResultMessage returns the answer to a single tool call
func NewToolResultMessage(call ToolCall, text string) *Message {
	return &Message{Role: RoleTool, ToolCallID: call.ID, Name: call.Name, Text: text}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Terminal returns true if the message is an assistant message without any
// pending tool calls
func (m Message) Terminal() bool {
	return m.Role == RoleAssistant && len(m.ToolCalls) == 0
}

// Empty returns true if the message has neither text nor tool calls
func (m Message) Empty() bool {
	return strings.TrimSpace(m.Text) == "" && len(m.ToolCalls) == 0
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return types.Stringify(m)
}

func (c ToolCall) String() string {
	return types.Stringify(c)
}

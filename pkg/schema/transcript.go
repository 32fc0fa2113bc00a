package schema

import (
	"fmt"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Transcript is the ordered conversation history for a single run. It only
// ever grows by append.
type Transcript []*Message

// Completion is the response from a model backend for one turn. A completion
// without tool calls is terminal, and Text may then be empty.
type Completion struct {
	Text      string     `json:"text,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Reason    string     `json:"reason,omitempty"` // Provider finish reason, informational
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTranscript returns a transcript with the system instruction and the
// user query
func NewTranscript(system, query string) Transcript {
	return Transcript{NewSystemMessage(system), NewUserMessage(query)}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds messages to the end of the transcript
func (t *Transcript) Append(messages ...*Message) {
	*t = append(*t, messages...)
}

// Last returns the last message, or nil if the transcript is empty
func (t Transcript) Last() *Message {
	if len(t) == 0 {
		return nil
	}
	return t[len(t)-1]
}

// System returns the text of the system message, or an empty string
func (t Transcript) System() string {
	if len(t) > 0 && t[0].Role == RoleSystem {
		return t[0].Text
	}
	return ""
}

// Pending returns the tool calls of the last assistant message which have
// not yet been answered
func (t Transcript) Pending() []ToolCall {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role != RoleAssistant {
			continue
		}
		answered := len(t) - 1 - i
		if answered >= len(t[i].ToolCalls) {
			return nil
		}
		return t[i].ToolCalls[answered:]
	}
	return nil
}

// Validate checks the structure of the transcript: a system message first,
// then a user message, and every tool call answered by a tool result in the
// same order before the next assistant message
func (t Transcript) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("transcript too short: %d messages", len(t))
	}
	if t[0].Role != RoleSystem {
		return fmt.Errorf("first message must be %q, got %q", RoleSystem, t[0].Role)
	}
	if t[1].Role != RoleUser {
		return fmt.Errorf("second message must be %q, got %q", RoleUser, t[1].Role)
	}

	var pending []ToolCall
	ids := make(map[string]bool)
	for i, m := range t[2:] {
		i += 2
		switch m.Role {
		case RoleAssistant:
			if len(pending) > 0 {
				return fmt.Errorf("message %d: %d tool calls unanswered", i, len(pending))
			}
			if m.Empty() {
				return fmt.Errorf("message %d: assistant message has no text and no tool calls", i)
			}
			for _, call := range m.ToolCalls {
				if ids[call.ID] {
					return fmt.Errorf("message %d: duplicate tool call id %q", i, call.ID)
				}
				ids[call.ID] = true
			}
			pending = append(pending, m.ToolCalls...)
		case RoleTool:
			if len(pending) == 0 {
				return fmt.Errorf("message %d: unexpected tool result", i)
			}
			if m.ToolCallID != pending[0].ID {
				return fmt.Errorf("message %d: tool result for %q, expected %q", i, m.ToolCallID, pending[0].ID)
			}
			pending = pending[1:]
		default:
			return fmt.Errorf("message %d: unexpected role %q", i, m.Role)
		}
	}

	// Return success
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Transcript) String() string {
	return types.Stringify(t)
}

func (c Completion) String() string {
	return types.Stringify(c)
}

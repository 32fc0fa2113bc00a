package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is a collection of tools with unique names, which preserves
// the order in which tools were registered
type Toolkit struct {
	sync.RWMutex
	tools map[string]Tool
	order []string
}

var _ stylist.ToolRegistry = (*Toolkit)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools.
// Returns an error if any tool has an invalid or duplicate name.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]Tool),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in the toolkit, in registration order
func (tk *Toolkit) Tools() []Tool {
	tk.RLock()
	defer tk.RUnlock()

	result := make([]Tool, 0, len(tk.order))
	for _, name := range tk.order {
		result = append(result, tk.tools[name])
	}
	return result
}

// Register adds one or more tools to the toolkit.
// Returns an error if any tool has an invalid or duplicate name.
func (tk *Toolkit) Register(tools ...Tool) error {
	tk.Lock()
	defer tk.Unlock()

	for _, t := range tools {
		if t == nil {
			return stylist.ErrBadParameter.With("tool cannot be nil")
		}
		name := t.Name()
		if !types.IsIdentifier(name) {
			return stylist.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		if _, exists := tk.tools[name]; exists {
			return stylist.ErrBadParameter.Withf("duplicate tool name: %q", name)
		}
		tk.tools[name] = t
		tk.order = append(tk.order, name)
	}
	return nil
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	tk.RLock()
	defer tk.RUnlock()
	return tk.tools[name]
}

// Descriptors returns the catalogue of tools in registration order. Tools
// whose schema cannot be generated are advertised without one.
func (tk *Toolkit) Descriptors() schema.Catalogue {
	tools := tk.Tools()
	result := make(schema.Catalogue, 0, len(tools))
	for _, t := range tools {
		s, err := t.Schema()
		if err != nil {
			s = nil
		}
		result = append(result, schema.ToolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: s,
		})
	}
	return result
}

// Run executes a tool by name with the given input.
// The input should be json.RawMessage, a map or nil.
// Returns an error wrapping ErrToolNotFound if the tool is not found, or
// ErrHandler if the input does not match the schema or the tool fails.
func (tk *Toolkit) Run(ctx context.Context, name string, input any) (any, error) {
	// Lookup the tool
	tool := tk.Lookup(name)
	if tool == nil {
		return nil, stylist.ErrToolNotFound.Withf("%q", name)
	}

	// Convert input to json.RawMessage
	var rawInput json.RawMessage
	if input != nil {
		switch v := input.(type) {
		case json.RawMessage:
			rawInput = v
		case []byte:
			rawInput = json.RawMessage(v)
		default:
			data, err := json.Marshal(input)
			if err != nil {
				return nil, stylist.ErrHandler.Withf("failed to marshal input: %v", err)
			}
			rawInput = json.RawMessage(data)
		}
	}

	// Validate input against schema if provided
	if err := validate(tool, rawInput); err != nil {
		return nil, stylist.ErrHandler.Wrap(err)
	}

	// Run the tool with raw JSON
	result, err := tool.Run(ctx, rawInput)
	if err != nil {
		return nil, stylist.ErrHandler.Wrap(err)
	}
	return result, nil
}

// Invoke runs a tool and returns the result as text
func (tk *Toolkit) Invoke(ctx context.Context, name string, args map[string]any) (string, error) {
	var input any
	if args != nil {
		input = args
	}
	result, err := tk.Run(ctx, name, input)
	if err != nil {
		return "", err
	}
	return Text(result)
}

// Feedback returns a human-readable description of a tool call, including
// the tool name and its description when available.
func (tk *Toolkit) Feedback(call schema.ToolCall) string {
	if t := tk.Lookup(call.Name); t != nil && t.Description() != "" {
		return call.Name + ": " + t.Description()
	}
	return call.Name
}

// Text converts a tool result into the text fed back to the model. Strings
// are returned as-is, other values are encoded as JSON.
func Text(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", stylist.ErrHandler.Withf("failed to marshal result: %v", err)
		}
		return string(data), nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func validate(tool Tool, input json.RawMessage) error {
	s, err := tool.Schema()
	if err != nil {
		return fmt.Errorf("schema generation failed: %w", err)
	} else if s == nil {
		return nil
	}

	// Unmarshal into a map for validation, where no input is an empty object
	mapInput := map[string]any{}
	if len(input) > 0 && string(input) != "null" {
		if err := json.Unmarshal(input, &mapInput); err != nil {
			return stylist.ErrBadParameter.Withf("failed to unmarshal JSON input: %v", err)
		}
	}

	// Validate against schema
	resolved, err := s.Resolve(nil)
	if err != nil {
		return fmt.Errorf("schema resolution failed: %w", err)
	}
	if err := resolved.Validate(mapInput); err != nil {
		return stylist.ErrBadParameter.Withf("input validation failed: %v", err)
	}

	// Return success
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	return types.Stringify(tk.Descriptors())
}

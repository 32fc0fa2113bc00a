package schema

import (
	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolDescriptor is the provider-agnostic definition of a tool, which
// backends reshape into their own payloads
type ToolDescriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"input_schema,omitempty"`
}

// Catalogue is the ordered set of tools visible to the model for one run
type Catalogue []ToolDescriptor

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Lookup returns a descriptor by name, or nil
func (c Catalogue) Lookup(name string) *ToolDescriptor {
	for i := range c {
		if c[i].Name == name {
			return &c[i]
		}
	}
	return nil
}

// Names returns the tool names in catalogue order
func (c Catalogue) Names() []string {
	result := make([]string, 0, len(c))
	for _, t := range c {
		result = append(result, t.Name)
	}
	return result
}

// Page returns the tools from an offset, with at most limit tools when
// limit is not nil
func (c Catalogue) Page(req ListToolRequest) *ListToolResponse {
	total := uint(len(c))
	start := min(req.Offset, total)
	end := total
	if req.Limit != nil && *req.Limit < total-start {
		end = start + *req.Limit
	}
	return &ListToolResponse{
		Count:  total,
		Offset: req.Offset,
		Limit:  req.Limit,
		Body:   c[start:end],
	}
}

// Schema returns the input schema, or an empty object schema when the tool
// takes no arguments
func (t ToolDescriptor) Schema() *jsonschema.Schema {
	if t.InputSchema == nil {
		return &jsonschema.Schema{Type: "object"}
	}
	return t.InputSchema
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t ToolDescriptor) String() string {
	return types.Stringify(t)
}

func (c Catalogue) String() string {
	return types.Stringify(c)
}

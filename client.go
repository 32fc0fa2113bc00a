package stylist

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ModelBackend is the interface to a chat model which can request tool calls
type ModelBackend interface {
	// Return the backend name
	Name() string

	// Complete sends the transcript and the tool catalogue to the model and
	// returns either a final answer or the tool calls it requested. Errors
	// wrap ErrBackendUnavailable or ErrBackendProtocol.
	Complete(ctx context.Context, transcript schema.Transcript, catalogue schema.Catalogue) (*schema.Completion, error)
}

// ToolRegistry resolves tool names to handlers
type ToolRegistry interface {
	// Descriptors returns the catalogue of tools, in a stable order
	Descriptors() schema.Catalogue

	// Invoke runs a tool and returns its result as text. Errors wrap
	// ErrToolNotFound when the name cannot be resolved, or ErrHandler when
	// the tool ran and failed.
	Invoke(ctx context.Context, name string, args map[string]any) (string, error)
}

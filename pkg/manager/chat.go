package manager

import (
	"context"
	"errors"
	"sort"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat answers a query. The tools are gathered for each request, and a
// request with no tools available fails with ErrServiceUnavailable.
func (m *Manager) Chat(ctx context.Context, req schema.ChatRequest) (_ *schema.ChatResponse, err error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, stylist.ErrBadParameter.With("query is required")
	}
	maxTurns := m.maxTurns
	if req.MaxTurns > 0 {
		maxTurns = req.MaxTurns
	}

	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Chat",
		attribute.String("backend", m.backend.Name()),
		attribute.Int("max_turns", int(maxTurns)),
	)
	defer func() { endSpan(err) }()

	// Gather the tools
	registry, release, err := m.registry(ctx)
	if err != nil {
		return nil, err
	}
	defer m.release(ctx, release)
	catalogue := registry.Descriptors()
	if len(catalogue) == 0 {
		return nil, stylist.ErrServiceUnavailable.With("no tools available")
	}

	// Run the conversation
	answer, err := m.orchestrator.Run(ctx, query, m.system, catalogue, m.backend, registry, maxTurns)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			m.logger.ErrorContext(ctx, "chat failed", "query", query, "error", err)
		}
		return nil, err
	}

	// Return success
	return &schema.ChatResponse{Response: answer}, nil
}

// ListTools returns a page of the tools which would be offered to the model,
// sorted by name
func (m *Manager) ListTools(ctx context.Context, req schema.ListToolRequest) (*schema.ListToolResponse, error) {
	registry, release, err := m.registry(ctx)
	if err != nil {
		return nil, err
	}
	defer m.release(ctx, release)

	all := registry.Descriptors()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all.Page(req), nil
}

// Health reports the backend and the configured tool servers
func (m *Manager) Health(context.Context) *schema.HealthResponse {
	servers := make(map[string]string, len(m.endpoints))
	for _, endpoint := range m.endpoints {
		servers[endpoint.Name] = endpoint.URL
	}
	return &schema.HealthResponse{
		Status:  "ok",
		Backend: m.backend.Name(),
		Servers: servers,
	}
}

package manager

import (
	"context"
	"log/slog"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	client "github.com/mutablelogic/go-stylist/pkg/mcp/client"
	orchestrator "github.com/mutablelogic/go-stylist/pkg/orchestrator"
	tool "github.com/mutablelogic/go-stylist/pkg/tool"
	gootel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Manager answers chat requests with a model backend, using the tools of a
// local toolkit or of a set of MCP servers
type Manager struct {
	backend      stylist.ModelBackend
	endpoints    []client.Endpoint
	toolkit      *tool.Toolkit
	system       string
	maxTurns     uint
	logger       *slog.Logger
	tracer       trace.Tracer
	opts         []orchestrator.Opt
	orchestrator *orchestrator.Orchestrator
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	instrumentationName = "github.com/mutablelogic/go-stylist/pkg/manager"

	// DefaultMaxTurns is the number of model turns allowed per request
	DefaultMaxTurns = 5

	// DefaultSystemPrompt instructs the model to act as a stylist
	DefaultSystemPrompt = `You are a friendly AI fashion stylist for a small team.
Use the available tools to look up a member's profile, their recent outfit
history and the current weather at their location before recommending an
outfit. Recommend something that suits their style and the weather, and avoid
repeating recent outfits. Answer in Korean unless asked otherwise.`
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewManager returns a manager for a model backend. Tools are provided by
// either WithToolkit or WithEndpoints.
func NewManager(backend stylist.ModelBackend, opts ...Opt) (*Manager, error) {
	if backend == nil {
		return nil, stylist.ErrBadParameter.With("model backend is required")
	}

	m := &Manager{
		backend:  backend,
		system:   DefaultSystemPrompt,
		maxTurns: DefaultMaxTurns,
		logger:   slog.Default(),
		tracer:   gootel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.toolkit != nil && len(m.endpoints) > 0 {
		return nil, stylist.ErrBadParameter.With("toolkit and endpoints cannot both be set")
	}

	// Create the orchestrator
	o, err := orchestrator.New(append([]orchestrator.Opt{
		orchestrator.WithLogger(m.logger),
		orchestrator.WithTracer(m.tracer),
	}, m.opts...)...)
	if err != nil {
		return nil, err
	}
	m.orchestrator = o

	// Return success
	return m, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Backend returns the model backend
func (m *Manager) Backend() stylist.ModelBackend {
	return m.backend
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// registry returns the tool registry for a single request, and a function
// to release it. With endpoints, a new session is opened with each server.
func (m *Manager) registry(ctx context.Context) (stylist.ToolRegistry, func() error, error) {
	if m.toolkit != nil {
		return m.toolkit, func() error { return nil }, nil
	}
	registry, err := client.Connect(ctx, m.endpoints, client.WithLogger(m.logger), client.WithTracer(m.tracer))
	if err != nil {
		return nil, nil, err
	}
	return registry, registry.Close, nil
}

// release releases a tool registry, logging any failure
func (m *Manager) release(ctx context.Context, fn func() error) {
	if err := fn(); err != nil {
		m.logger.WarnContext(ctx, "releasing tools", "error", err)
	}
}

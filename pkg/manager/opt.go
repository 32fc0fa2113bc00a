package manager

import (
	"log/slog"
	"strings"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	client "github.com/mutablelogic/go-stylist/pkg/mcp/client"
	orchestrator "github.com/mutablelogic/go-stylist/pkg/orchestrator"
	tool "github.com/mutablelogic/go-stylist/pkg/tool"
	types "github.com/mutablelogic/go-server/pkg/types"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a manager
type Opt func(*Manager) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolkit serves requests from a local toolkit
func WithToolkit(toolkit *tool.Toolkit) Opt {
	return func(m *Manager) error {
		if toolkit == nil {
			return stylist.ErrBadParameter.With("toolkit is required")
		}
		m.toolkit = toolkit
		return nil
	}
}

// WithEndpoints serves requests from the tools of MCP servers
func WithEndpoints(endpoints ...client.Endpoint) Opt {
	return func(m *Manager) error {
		for _, endpoint := range endpoints {
			if !types.IsIdentifier(endpoint.Name) {
				return stylist.ErrBadParameter.Withf("invalid endpoint name %q", endpoint.Name)
			}
			for _, other := range m.endpoints {
				if other.Name == endpoint.Name {
					return stylist.ErrBadParameter.Withf("duplicate endpoint %q", endpoint.Name)
				}
			}
			m.endpoints = append(m.endpoints, endpoint)
		}
		return nil
	}
}

// WithSystemPrompt replaces the default system prompt
func WithSystemPrompt(value string) Opt {
	return func(m *Manager) error {
		if value = strings.TrimSpace(value); value != "" {
			m.system = value
		}
		return nil
	}
}

// WithMaxTurns sets the default number of model turns per request
func WithMaxTurns(value uint) Opt {
	return func(m *Manager) error {
		if value < 1 {
			return stylist.ErrBadParameter.With("max turns must be at least 1")
		}
		m.maxTurns = value
		return nil
	}
}

func WithLogger(logger *slog.Logger) Opt {
	return func(m *Manager) error {
		if logger == nil {
			return stylist.ErrBadParameter.With("logger is required")
		}
		m.logger = logger
		return nil
	}
}

func WithTracer(tracer trace.Tracer) Opt {
	return func(m *Manager) error {
		if tracer == nil {
			return stylist.ErrBadParameter.With("tracer is required")
		}
		m.tracer = tracer
		return nil
	}
}

// WithOrchestratorOpts passes options through to the orchestrator, for
// example to receive feedback as tools are called
func WithOrchestratorOpts(opts ...orchestrator.Opt) Opt {
	return func(m *Manager) error {
		m.opts = append(m.opts, opts...)
		return nil
	}
}

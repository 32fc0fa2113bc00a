package server

import (
	"log/slog"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	trace "go.opentelemetry.io/otel/trace"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

func WithLogger(v *slog.Logger) Opt {
	return func(server *Server) error {
		if v == nil {
			return stylist.ErrBadParameter.With("logger is nil")
		}
		server.logger = v
		return nil
	}
}

// WithTracer sets the tracer used for tool call spans
func WithTracer(v trace.Tracer) Opt {
	return func(server *Server) error {
		if v == nil {
			return stylist.ErrBadParameter.With("tracer is nil")
		}
		server.tracer = v
		return nil
	}
}

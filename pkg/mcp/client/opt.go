package client

import (
	"log/slog"
	"net/http"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Registry) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

func WithLogger(v *slog.Logger) Opt {
	return func(r *Registry) error {
		if v == nil {
			return stylist.ErrBadParameter.With("logger is nil")
		}
		r.logger = v
		return nil
	}
}

func WithTracer(v trace.Tracer) Opt {
	return func(r *Registry) error {
		if v == nil {
			return stylist.ErrBadParameter.With("tracer is nil")
		}
		r.tracer = v
		return nil
	}
}

// WithHTTPClient sets the client used by the SSE and streamable transports
func WithHTTPClient(v *http.Client) Opt {
	return func(r *Registry) error {
		r.http = v
		return nil
	}
}

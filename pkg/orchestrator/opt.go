package orchestrator

import (
	"log/slog"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring an orchestrator
type Opt func(*Orchestrator) error

// FeedbackFn is called with each message as it is appended to a transcript
type FeedbackFn func(*schema.Message)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Opt {
	return func(o *Orchestrator) error {
		if logger == nil {
			return stylist.ErrBadParameter.With("logger is required")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used for run, turn and tool call spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *Orchestrator) error {
		if tracer == nil {
			return stylist.ErrBadParameter.With("tracer is required")
		}
		o.tracer = tracer
		return nil
	}
}

// WithMeter sets the meter used for the turn and tool call counters
func WithMeter(meter metric.Meter) Opt {
	return func(o *Orchestrator) error {
		if meter == nil {
			return stylist.ErrBadParameter.With("meter is required")
		}
		o.meter = meter
		return nil
	}
}

// WithParallelTools executes the tool calls of a single turn concurrently.
// Results are still appended in the order the calls were made.
func WithParallelTools() Opt {
	return func(o *Orchestrator) error {
		o.parallel = true
		return nil
	}
}

// WithFeedback sets a function which receives every assistant message and
// tool result as it is appended
func WithFeedback(fn FeedbackFn) Opt {
	return func(o *Orchestrator) error {
		o.feedback = fn
		return nil
	}
}

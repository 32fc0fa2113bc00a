package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	gootel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Orchestrator drives a bounded conversation between a model backend and a
// tool registry. It holds no per-run state, so a single orchestrator can
// serve concurrent runs.
type Orchestrator struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	parallel bool
	feedback FeedbackFn

	// Counters
	turns metric.Int64Counter
	calls metric.Int64Counter
}

// State of a run
type State uint

// run is the state for a single call to Run
type run struct {
	*Orchestrator
	transcript schema.Transcript
	state      State
	turn       uint
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	StateAwaitingModel State = iota
	StateExecutingTools
	StateDone
	StateFailed
)

const (
	instrumentationName = "github.com/mutablelogic/go-stylist/pkg/orchestrator"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns an orchestrator. By default the global tracer and meter
// providers and the default logger are used.
func New(opts ...Opt) (*Orchestrator, error) {
	o := &Orchestrator{
		logger: slog.Default(),
		tracer: gootel.Tracer(instrumentationName),
		meter:  gootel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	// Create counters
	if counter, err := o.meter.Int64Counter("stylist.orchestrator.turns",
		metric.WithDescription("Number of model backend invocations"),
	); err != nil {
		return nil, err
	} else {
		o.turns = counter
	}
	if counter, err := o.meter.Int64Counter("stylist.orchestrator.tool_calls",
		metric.WithDescription("Number of tool calls, by outcome"),
	); err != nil {
		return nil, err
	} else {
		o.calls = counter
	}

	// Return success
	return o, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run answers a query. Each turn the backend is sent the transcript and the
// catalogue; any tool calls it requests are resolved against the registry in
// order, and each result is appended to the transcript before the next turn.
// The run ends when the backend returns a completion without tool calls, or
// fails with a *TurnLimitError after maxTurns backend invocations.
//
// Unknown tools and failing tools do not end the run: the failure is fed
// back to the model as the tool result text. Backend errors end the run.
func (o *Orchestrator) Run(ctx context.Context, query, system string, catalogue schema.Catalogue, backend stylist.ModelBackend, registry stylist.ToolRegistry, maxTurns uint) (answer string, err error) {
	if backend == nil {
		return "", stylist.ErrBadParameter.With("model backend is required")
	} else if registry == nil {
		return "", stylist.ErrBadParameter.With("tool registry is required")
	} else if maxTurns < 1 {
		return "", stylist.ErrBadParameter.Withf("max turns must be at least 1, got %d", maxTurns)
	}

	// Otel span
	ctx, endSpan := otel.StartSpan(o.tracer, ctx, "Run",
		attribute.String("backend", backend.Name()),
		attribute.Int("catalogue", len(catalogue)),
		attribute.Int("max_turns", int(maxTurns)),
	)
	defer func() { endSpan(err) }()

	r := &run{
		Orchestrator: o,
		transcript:   schema.NewTranscript(system, query),
		state:        StateAwaitingModel,
	}
	for r.turn = 1; r.turn <= maxTurns; r.turn++ {
		var completion *schema.Completion
		completion, err = r.complete(ctx, catalogue, backend)
		if err != nil {
			r.set(ctx, StateFailed)
			return "", err
		}

		// A completion without tool calls is the final answer
		if len(completion.ToolCalls) == 0 {
			r.set(ctx, StateDone)
			return completion.Text, nil
		}

		// Execute the tools and append the results
		r.set(ctx, StateExecutingTools)
		r.append(schema.NewAssistantMessage(completion.Text, r.normalise(completion.ToolCalls)...))
		r.execute(ctx, r.transcript.Pending(), registry)
		r.set(ctx, StateAwaitingModel)
	}

	// The model did not produce an answer within the turn limit
	r.set(ctx, StateFailed)
	return "", &TurnLimitError{Turns: maxTurns, Transcript: r.transcript}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// set transitions the state of the run
func (r *run) set(ctx context.Context, state State) {
	r.logger.DebugContext(ctx, "orchestrator", "turn", r.turn, "from", r.state, "to", state)
	r.state = state
}

// append adds a message to the transcript and reports it
func (r *run) append(message *schema.Message) {
	r.transcript.Append(message)
	if r.feedback != nil {
		r.feedback(message)
	}
}

// normalise assigns identifiers to tool calls which have none
func (r *run) normalise(calls []schema.ToolCall) []schema.ToolCall {
	result := make([]schema.ToolCall, len(calls))
	for i, call := range calls {
		if call.ID == "" {
			call.ID = fmt.Sprintf("call_%d_%d", r.turn, i)
		}
		result[i] = call
	}
	return result
}

// complete invokes the backend for one turn
func (r *run) complete(ctx context.Context, catalogue schema.Catalogue, backend stylist.ModelBackend) (completion *schema.Completion, err error) {
	ctx, endSpan := otel.StartSpan(r.tracer, ctx, "Complete",
		attribute.String("backend", backend.Name()),
		attribute.Int("turn", int(r.turn)),
		attribute.Int("messages", len(r.transcript)),
	)
	defer func() { endSpan(err) }()

	r.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("backend", backend.Name())))
	completion, err = backend.Complete(ctx, r.transcript, catalogue)
	switch {
	case err == nil && completion == nil:
		err = stylist.ErrBackendProtocol.With("empty completion")
	case err == nil:
		// Success
	case errors.Is(err, stylist.ErrBackendUnavailable), errors.Is(err, stylist.ErrBackendProtocol):
		// Already classified
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Caller cancellation
	default:
		err = stylist.ErrBackendUnavailable.Wrap(err)
	}
	if err != nil {
		return nil, err
	}
	return completion, nil
}

// execute runs the tool calls of one turn and appends a result for each,
// in call order
func (r *run) execute(ctx context.Context, calls []schema.ToolCall, registry stylist.ToolRegistry) {
	if !r.parallel || len(calls) < 2 {
		for _, call := range calls {
			r.append(schema.NewToolResultMessage(call, r.invoke(ctx, call, registry)))
		}
		return
	}

	// Run concurrently, then append in call order
	var g errgroup.Group
	results := make([]string, len(calls))
	for i, call := range calls {
		g.Go(func() error {
			results[i] = r.invoke(ctx, call, registry)
			return nil
		})
	}
	_ = g.Wait()
	for i, call := range calls {
		r.append(schema.NewToolResultMessage(call, results[i]))
	}
}

// invoke runs a single tool call and returns the text of the result. Failures
// are returned as text and never abort the run.
func (r *run) invoke(ctx context.Context, call schema.ToolCall, registry stylist.ToolRegistry) (text string) {
	var err error
	ctx, endSpan := otel.StartSpan(r.tracer, ctx, "Invoke",
		attribute.String("tool", call.Name),
		attribute.String("id", call.ID),
	)
	defer func() { endSpan(err) }()
	defer func() {
		if v := recover(); v != nil {
			err = stylist.ErrHandler.Withf("panic: %v", v)
			text = failureText(call, err)
		}
		r.calls.Add(ctx, 1, metric.WithAttributes(
			attribute.String("tool", call.Name),
			attribute.String("outcome", outcome(err)),
		))
	}()

	text, err = registry.Invoke(ctx, call.Name, call.Arguments)
	if err != nil {
		r.logger.WarnContext(ctx, "tool call failed", "tool", call.Name, "id", call.ID, "error", err)
		return failureText(call, err)
	}
	return text
}

// failureText returns the tool result text for a failed call
func failureText(call schema.ToolCall, err error) string {
	if errors.Is(err, stylist.ErrToolNotFound) {
		return fmt.Sprintf("tool not found: %s", call.Name)
	}
	return fmt.Sprintf("error calling %s: %v", call.Name, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, stylist.ErrToolNotFound):
		return "not_found"
	default:
		return "error"
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s State) String() string {
	switch s {
	case StateAwaitingModel:
		return "awaiting_model"
	case StateExecutingTools:
		return "executing_tools"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", uint(s))
}

package observe

import (
	"context"
	"time"
)

// OpFunc is an instrumented unit of work.
type OpFunc func(ctx context.Context) error

// Middleware wraps operations with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap returns a function safe for concurrent use.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// Wrap instruments fn as op.
func (m *Middleware) Wrap(op Op, fn OpFunc) OpFunc {
	return func(ctx context.Context) error {
		ctx, span := m.tracer.StartSpan(ctx, op)
		start := time.Now()

		err := fn(ctx)

		duration := time.Since(start)
		m.tracer.EndSpan(span, err)
		m.metrics.RecordOperation(ctx, op, duration, err)

		log := m.logger.WithOp(op)
		fields := []Field{{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000}}
		if err != nil {
			log.Error(ctx, "operation failed", append(fields, ErrorFields(err)...)...)
		} else {
			log.Debug(ctx, "operation completed", fields...)
		}
		return err
	}
}

// Run executes fn as op. An unnamed op is rejected before fn runs.
func (m *Middleware) Run(ctx context.Context, op Op, fn OpFunc) error {
	if err := op.Validate(); err != nil {
		return err
	}
	return m.Wrap(op, fn)(ctx)
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

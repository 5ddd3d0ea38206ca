package router

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/einblatt-dev/einblatt/pkg/router"

// transitionSpan is the span covering one synchronous part of a transition.
// The first starts when the strategy reports a path. A walk that waits on a
// continuation guard ends its span as pending, and the late next opens a
// resume span linked to it, so no span stays open while a walk is stranded.
type transitionSpan struct {
	span trace.Span
}

func (r *Router) startSpan(t *transition) *transitionSpan {
	_, span := r.tracer.Start(context.Background(), "router.transition",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("router.transition_id", t.id),
			attribute.String("router.from", t.from.Path),
			attribute.String("router.to", t.to.Path),
			attribute.String("router.route", t.to.Name),
			attribute.Int("router.guards", len(t.guards)),
		),
	)
	return &transitionSpan{span: span}
}

func (r *Router) resumeSpan(t *transition) *transitionSpan {
	opts := []trace.SpanStartOption{
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("router.transition_id", t.id),
			attribute.String("router.to", t.to.Path),
			attribute.Int("router.guard", t.index),
		),
	}
	if t.trace != nil {
		opts = append(opts, trace.WithLinks(trace.Link{SpanContext: t.trace.span.SpanContext()}))
	}
	_, span := r.tracer.Start(context.Background(), "router.transition.resume", opts...)
	return &transitionSpan{span: span}
}

// suspend ends the span while guard holds next.
func (s *transitionSpan) suspend(guard int) {
	if s == nil {
		return
	}
	s.span.SetAttributes(
		attribute.String("router.outcome", "pending"),
		attribute.Int("router.pending_guard", guard),
	)
	s.span.End()
}

func (s *transitionSpan) end(o Outcome) {
	if s == nil {
		return
	}
	s.span.SetAttributes(attribute.String("router.outcome", string(o)))
	if o == OutcomeCommitted {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

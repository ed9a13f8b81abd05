// Copyright © 2025 The lispindent authors

// Package tracing wraps an indentation provider with OpenTelemetry spans.
// The wrapper is strictly observational: the wrapped provider's result is
// returned untouched, so identical inputs yield identical columns with or
// without tracing installed.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/luthersystems/lispindent/indent"
	"github.com/luthersystems/lispindent/mode"
)

const tracerName = "lispindent"

var _ mode.IndentProvider = &Provider{}

// Provider is a traced mode.IndentProvider.
type Provider struct {
	inner mode.IndentProvider
	ctx   context.Context
}

// Option configures a Provider.
type Option func(*Provider)

// WithContext sets the parent context for spans.  Without it spans start
// from the background context.
func WithContext(ctx context.Context) Option {
	return func(p *Provider) { p.ctx = ctx }
}

// NewProvider wraps inner with span annotation.
func NewProvider(inner mode.IndentProvider, opts ...Option) *Provider {
	p := &Provider{inner: inner, ctx: context.Background()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Indent records one span per indentation query.
func (p *Provider) Indent(text string, cursor, topLevel int) indent.Result {
	tracer := otel.GetTracerProvider().Tracer(tracerName)
	_, span := tracer.Start(p.ctx, "indent.compute", trace.WithAttributes(
		attribute.Int("indent.cursor", cursor),
		attribute.Int("indent.top_level", topLevel),
	))
	defer span.End()

	r := p.inner.Indent(text, cursor, topLevel)
	span.SetAttributes(
		attribute.Int("indent.column", r.Column),
		attribute.Bool("indent.unchanged", r.Unchanged),
	)
	return r
}

// Package observability wraps transport connect/handshake operations in
// OpenTelemetry spans. It covers connection-level tracing only — this core
// has no query execution or connection pool to instrument, so only
// transport spans are wired here.
package observability

import (
	"context"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName    = "github.com/kestrelgraph/boltcore/transport"
	instrumentationVersion = "0.1.0"
)

var (
	enabled  bool
	enableMu sync.RWMutex
)

// Enable turns on span emission. Tracing is off by default (no-op tracer)
// until the caller opts in.
func Enable() {
	enableMu.Lock()
	defer enableMu.Unlock()
	enabled = true
}

// Disable turns span emission back off.
func Disable() {
	enableMu.Lock()
	defer enableMu.Unlock()
	enabled = false
}

func isEnabled() bool {
	enableMu.RLock()
	defer enableMu.RUnlock()
	return enabled
}

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(instrumentationVersion))
}

// NewStdoutTracerProvider builds a TracerProvider that pretty-prints spans
// to w, for local debugging of connect/handshake timing without standing up
// a collector. Registering it with otel.SetTracerProvider before calling
// Enable is how a consumer opts into seeing this core's spans; nothing in
// this package sets a global provider on its own.
func NewStdoutTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter)), nil
}

// StartSpan starts a span named name if tracing is enabled; otherwise it
// returns ctx unchanged and a nil span, so EndSpan can be called
// unconditionally.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isEnabled() {
		return ctx, nil
	}
	ctx, span := tracer().Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", "neo4j")))
	return ctx, span
}

// EndSpan records err (if any) and ends span. Safe to call with a nil span.
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

package otel

import (
	"context"
	"sync"

	"github.com/hanpama/protoc-gen-apollo/internal/eventbus"
	"github.com/hanpama/protoc-gen-apollo/internal/events"
	"github.com/hanpama/protoc-gen-apollo/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers to b.
// If endpoint is empty, no telemetry is configured.
func Setup(b *eventbus.Bus, endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	Register(b, tp.Tracer("protoc-gen-apollo"))
	return tp.Shutdown, nil
}

// Register records one span per generation run on tracer.
func Register(b *eventbus.Bus, tracer trace.Tracer) {
	s := &subscriber{tracer: tracer}
	s.register(b)
}

type subscriber struct {
	tracer trace.Tracer
	spans  sync.Map // rid -> trace.Span
}

func (s *subscriber) register(b *eventbus.Bus) {
	eventbus.Subscribe(b, func(ctx context.Context, e events.GenerateStart) {
		rid, _ := reqid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "apollo.generate")
		span.SetAttributes(
			attribute.String("apollo.run_id", rid),
			attribute.StringSlice("apollo.files", e.Files),
			attribute.StringSlice("apollo.targets", e.Targets),
			attribute.String("apollo.lang", e.Lang),
		)
		s.spans.Store(rid, span)
	})

	eventbus.Subscribe(b, func(ctx context.Context, e events.ArtifactRendered) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.spans.Load(rid)
		if !ok {
			return
		}
		v.(trace.Span).AddEvent("artifact", trace.WithAttributes(
			attribute.String("apollo.artifact.name", e.Name),
			attribute.Int("apollo.artifact.bytes", e.Bytes),
		))
	})

	eventbus.Subscribe(b, func(ctx context.Context, e events.GenerateFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.spans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("apollo.artifacts", e.Artifacts))
		if e.Err != nil {
			span.RecordError(e.Err)
			span.SetStatus(codes.Error, e.Err.Error())
		}
		span.End()
	})
}

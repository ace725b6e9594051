package observability

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerProvider wraps the OpenTelemetry tracer provider with the
// engine's configuration defaults
type TracerProvider struct {
	provider *sdktrace.TracerProvider // Underlying OTEL provider
	tracer   trace.Tracer             // Pre-configured tracer instance
	config   TracingConfig            // Configuration settings
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	ServiceName string
	Environment string
	Endpoint    string
	SampleRate  float64
	EnableDebug bool
}

// InitTracing initializes distributed tracing
func InitTracing(config TracingConfig) (*TracerProvider, error) {
	// Set default values
	if config.ServiceName == "" {
		config.ServiceName = "astrotune-backend"
	}
	if config.SampleRate == 0 {
		config.SampleRate = getSampleRate(config.Environment)
	}

	exporter, err := createOTLPExporter(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := createResource(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	sampler := createSampler(config)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	// Set global provider and propagator
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Enable error handler for debugging
	if config.EnableDebug {
		otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
			fmt.Printf("OpenTelemetry error: %v\n", err)
		}))
	}

	return &TracerProvider{
		provider: tp,
		tracer:   tp.Tracer(config.ServiceName),
		config:   config,
	}, nil
}

// createOTLPExporter creates an OTLP exporter
func createOTLPExporter(endpoint string) (sdktrace.SpanExporter, error) {
	if endpoint == "" {
		endpoint = "localhost:4317" // Default OTLP gRPC endpoint
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(endpoint),
	}

	// Use insecure connection for local development
	if endpoint == "localhost:4317" || endpoint == "127.0.0.1:4317" {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	return otlptrace.New(
		context.Background(),
		otlptracegrpc.NewClient(opts...),
	)
}

// createResource creates a resource with service metadata
func createResource(config TracingConfig) (*resource.Resource, error) {
	res := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(getServiceVersion()),
			attribute.String("deployment.environment", config.Environment),
		),
	}

	if hostname, err := os.Hostname(); err == nil {
		res = append(res, resource.WithAttributes(semconv.HostName(hostname)))
	}

	return resource.New(context.Background(), res...)
}

// createSampler creates a sampler based on environment
func createSampler(config TracingConfig) sdktrace.Sampler {
	switch config.Environment {
	case "production":
		return sdktrace.TraceIDRatioBased(config.SampleRate)
	case "staging":
		return sdktrace.TraceIDRatioBased(0.1)
	default:
		// Sample everything in development
		return sdktrace.AlwaysSample()
	}
}

// getSampleRate returns the default sample rate for an environment
func getSampleRate(environment string) float64 {
	switch environment {
	case "production":
		return 0.01 // 1% sampling
	case "staging":
		return 0.1 // 10% sampling
	default:
		return 1.0 // 100% sampling
	}
}

// getServiceVersion returns the service version from the environment
func getServiceVersion() string {
	if version := os.Getenv("SERVICE_VERSION"); version != "" {
		return version
	}
	return "unknown"
}

// Shutdown gracefully shuts down the tracer provider
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	return tp.provider.Shutdown(ctx)
}

// StartSpan starts a new span
func (tp *TracerProvider) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tp.tracer.Start(ctx, name, opts...)
}

// Tracer returns the pre-configured tracer
func (tp *TracerProvider) Tracer() trace.Tracer {
	return tp.tracer
}

package middleware

import (
	"context"
	"fmt"

	"github.com/vango-dev/vroute/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "vroute"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vroute").
	TracerName string

	// TracerProvider overrides the global provider when set.
	TracerProvider trace.TracerProvider

	// IncludeParams records bound path parameters as span attributes.
	// May contain sensitive information - disabled by default.
	IncludeParams bool

	// IncludePath includes the resolved path in traces.
	// Enabled by default.
	IncludePath bool

	// Filter determines which requests to trace.
	// Return true to trace the request, false to skip.
	// If nil, all requests are traced.
	Filter func(ctx *router.RequestContext) bool

	// AttributeExtractor extracts custom attributes from the context.
	// Called for each traced request.
	AttributeExtractor func(ctx *router.RequestContext) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeParams enables recording path parameters in traces.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithIncludePath enables/disables including the path in traces.
func WithIncludePath(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludePath = include
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(ctx *router.RequestContext) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx *router.RequestContext) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:    defaultTracerName,
		IncludeParams: false,
		IncludePath:   true,
		Filter:        nil,
	}
}

// OpenTelemetry creates middleware that traces every resolved route.
//
// The middleware:
//   - Creates a span around the handler with route name and query status
//   - Records query validation failures as a span event
//   - Wraps the page Loader and Meta so each runs in its own span,
//     parented on the caller's context and linked to the handler span
//   - Records loader and meta errors and sets span status
//
// Example:
//
//	r, err := router.Build(routes,
//	    router.Use(middleware.OpenTelemetry(
//	        middleware.WithTracerName("my-app"),
//	    )),
//	)
//
// Without WithTracerProvider the global provider is used. Configure it
// in main() before building the router:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return func(next router.Handler) router.Handler {
		return func(ctx *router.RequestContext) router.Page {
			if config.Filter != nil && !config.Filter(ctx) {
				return next(ctx)
			}

			attrs := requestAttributes(&config, ctx)
			_, span := config.tracer.Start(
				context.Background(),
				formatSpanName("resolve", ctx),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			if qe := ctx.QueryError; qe != nil {
				span.AddEvent("query.invalid", trace.WithAttributes(
					attribute.String("vroute.query.message", qe.Message),
					attribute.Int("vroute.query.issues", len(qe.Issues)),
				))
			}

			page := next(ctx)

			link := trace.Link{SpanContext: span.SpanContext()}
			if page.Loader != nil {
				page.Loader = traceLoader(config.tracer, formatSpanName("load", ctx), link, page.Loader)
			}
			if page.Meta != nil {
				page.Meta = traceMeta(config.tracer, formatSpanName("meta", ctx), link, page.Meta)
			}

			span.SetAttributes(
				attribute.Bool("vroute.page.loader", page.Loader != nil),
				attribute.Bool("vroute.page.meta", page.Meta != nil),
			)
			span.SetStatus(codes.Ok, "")
			return page
		}
	}
}

func requestAttributes(config *OTelConfig, ctx *router.RequestContext) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("vroute.route", ctx.RouteName()),
		attribute.String("vroute.query.status", queryStatus(ctx)),
	}
	if config.IncludePath {
		attrs = append(attrs, attribute.String("vroute.path", ctx.Path))
	}
	if config.IncludeParams {
		for name, value := range ctx.Params {
			attrs = append(attrs, attribute.String("vroute.param."+name, value))
		}
	}
	if config.AttributeExtractor != nil {
		attrs = append(attrs, config.AttributeExtractor(ctx)...)
	}
	return attrs
}

func traceLoader(tracer trace.Tracer, name string, link trace.Link, load router.LoaderFunc) router.LoaderFunc {
	return func(ctx context.Context) (any, error) {
		ctx, span := tracer.Start(ctx, name, trace.WithLinks(link))
		defer span.End()

		data, err := load(ctx)
		endSpan(span, err)
		return data, err
	}
}

func traceMeta(tracer trace.Tracer, name string, link trace.Link, meta router.MetaFunc) router.MetaFunc {
	return func(ctx context.Context, data any) (*router.PageMeta, error) {
		ctx, span := tracer.Start(ctx, name, trace.WithLinks(link))
		defer span.End()

		pm, err := meta(ctx, data)
		endSpan(span, err)
		return pm, err
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

// formatSpanName creates a span name from the matched route.
func formatSpanName(op string, ctx *router.RequestContext) string {
	name := ctx.RouteName()
	if name == "" {
		name = ctx.Path
	}
	return fmt.Sprintf("vroute.%s %s", op, name)
}

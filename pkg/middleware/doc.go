// Package middleware provides observability middleware for vroute routers.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//
// Both are plain router.Middleware values and are installed with router.Use
// or per route with router.WithMiddleware.
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware opens a span around each handler call. The
// span carries the route name, the resolved path and the query status. Page
// loaders and meta functions returned by the handler are wrapped so that
// each runs in its own span when the caller invokes it, linked back to the
// resolve span.
//
//	r, err := router.Build(routes,
//	    router.Use(middleware.OpenTelemetry()),
//	)
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithIncludeParams(true),
//	    middleware.WithRequestFilter(func(ctx *router.RequestContext) bool {
//	        return ctx.RouteName() != "health"
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - vroute_resolves_total: Resolves by route and query status
//   - vroute_handler_duration_seconds: Handler duration histogram
//   - vroute_query_issues_total: Query validation issues by route
//   - vroute_loads_total: Loader runs by route and status
//   - vroute_load_duration_seconds: Loader duration histogram
//
// Labels use route names, never raw paths.
//
//	r, err := router.Build(routes,
//	    router.Use(middleware.Prometheus()),
//	)
//
// Then expose metrics:
//
//	http.Handle("/metrics", promhttp.Handler())
package middleware

// Package middleware provides observability middleware for the HTTP
// handlers of the dev server.
//
// # OpenTelemetry Middleware
//
// OpenTelemetry starts a server span for every request, named after the
// chi route pattern that served it:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("hashview-dev"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/metrics"
//	    }),
//	))
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Handlers find the span with trace.SpanFromContext(r.Context()).
//
// # Prometheus Metrics
//
// Prometheus records, per route pattern:
//   - hashview_http_requests_total: requests by method, route and status code
//   - hashview_http_request_duration_seconds: latency histogram
//   - hashview_http_requests_in_flight: requests being served
//
//	reg := prometheus.NewRegistry()
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Routes that chi did not match are labelled "unmatched" to keep label
// cardinality bounded.
package middleware

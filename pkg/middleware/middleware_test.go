package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(mw ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chi.URLParam(r, "id")))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPrometheus_RecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRouter(Prometheus(WithRegistry(reg), WithSubsystem("test")))

	serve(r, "/items/1")
	serve(r, "/items/2")
	serve(r, "/boom")
	serve(r, "/nowhere")

	expected := `
# HELP hashview_test_requests_total HTTP requests served
# TYPE hashview_test_requests_total counter
hashview_test_requests_total{code="200",method="GET",route="/items/{id}"} 2
hashview_test_requests_total{code="404",method="GET",route="unmatched"} 1
hashview_test_requests_total{code="500",method="GET",route="/boom"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "hashview_test_requests_total"); err != nil {
		t.Error(err)
	}
	if n := testutil.CollectAndCount(reg, "hashview_test_request_duration_seconds"); n != 3 {
		t.Errorf("duration series = %d, want 3", n)
	}
}

func TestPrometheus_InFlight(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg), WithNamespace("ns"))

	var during float64
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mfs, _ := reg.Gather()
		for _, mf := range mfs {
			if mf.GetName() == "ns_http_requests_in_flight" {
				during = mf.GetMetric()[0].GetGauge().GetValue()
			}
		}
	}))
	serve(h, "/")

	if during != 1 {
		t.Errorf("in flight during request = %v, want 1", during)
	}
	if err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP ns_http_requests_in_flight HTTP requests currently being served
# TYPE ns_http_requests_in_flight gauge
ns_http_requests_in_flight 0
`), "ns_http_requests_in_flight"); err != nil {
		t.Error(err)
	}
}

// recordingProvider records the spans started through it.
type recordingProvider struct {
	embedded.TracerProvider

	mu    sync.Mutex
	spans []*recordingSpan
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{p: p}
}

type recordingTracer struct {
	embedded.Tracer
	p *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	_, base := noop.NewTracerProvider().Tracer("").Start(ctx, name)
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{Span: base, name: name, kind: cfg.SpanKind(), attrs: cfg.Attributes()}
	t.p.mu.Lock()
	t.p.spans = append(t.p.spans, s)
	t.p.mu.Unlock()
	return trace.ContextWithSpan(ctx, s), s
}

type recordingSpan struct {
	trace.Span
	name   string
	kind   trace.SpanKind
	attrs  []attribute.KeyValue
	status codes.Code
	ended  bool
}

func (s *recordingSpan) SetName(name string)                   { s.name = name }
func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordingSpan) SetStatus(code codes.Code, _ string)    { s.status = code }
func (s *recordingSpan) End(...trace.SpanEndOption)             { s.ended = true }

func (s *recordingSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOpenTelemetry_SpanPerRequest(t *testing.T) {
	tp := &recordingProvider{}
	var inHandler trace.Span
	r := chi.NewRouter()
	r.Use(OpenTelemetry(WithTracerProvider(tp)))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		inHandler = trace.SpanFromContext(r.Context())
	})

	serve(r, "/items/9")

	if len(tp.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.spans))
	}
	span := tp.spans[0]
	if span.name != "HTTP GET /items/{id}" {
		t.Errorf("name = %q", span.name)
	}
	if span.kind != trace.SpanKindServer {
		t.Errorf("kind = %v, want server", span.kind)
	}
	if !span.ended {
		t.Error("span not ended")
	}
	if inHandler != trace.Span(span) {
		t.Error("handler context should carry the request span")
	}
	if v, _ := span.attr("http.target"); v.AsString() != "/items/9" {
		t.Errorf("http.target = %q", v.AsString())
	}
	if v, _ := span.attr("http.status_code"); v.AsInt64() != 200 {
		t.Errorf("http.status_code = %d", v.AsInt64())
	}
	if span.status != codes.Unset {
		t.Errorf("status = %v, want unset", span.status)
	}
}

func TestOpenTelemetry_ServerError(t *testing.T) {
	tp := &recordingProvider{}
	r := newRouter(OpenTelemetry(WithTracerProvider(tp)))

	serve(r, "/boom")

	if len(tp.spans) != 1 || tp.spans[0].status != codes.Error {
		t.Fatalf("spans = %+v, want one failed span", tp.spans)
	}
}

func TestOpenTelemetry_Filter(t *testing.T) {
	tp := &recordingProvider{}
	r := newRouter(OpenTelemetry(
		WithTracerProvider(tp),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/boom" }),
	))

	serve(r, "/boom")
	if rec := serve(r, "/items/3"); rec.Body.String() != "3" {
		t.Errorf("body = %q", rec.Body.String())
	}

	if len(tp.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.spans))
	}
	if route, _ := tp.spans[0].attr("http.route"); route.AsString() != "/items/{id}" {
		t.Errorf("http.route = %q", route.AsString())
	}
}

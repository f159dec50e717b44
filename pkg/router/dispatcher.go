package router

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/hashview/pkg/router"

// state is everything a Dispatcher mutates.
type state struct {
	dynamic map[string]Handler
	static  map[string]Handler
	current *Route
	target  any
}

// Dispatcher routes navigation tokens to registered handlers.
type Dispatcher struct {
	surface Surface
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
	onError func(token string, err error)

	mu          sync.Mutex
	st          state
	unsubscribe func()
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithTracer sets the tracer used for dispatch spans.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

// WithMetrics records dispatch metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithErrorHandler sets the function receiving errors from dispatches
// triggered by surface changes. The default logs them.
func WithErrorHandler(fn func(token string, err error)) Option {
	return func(d *Dispatcher) {
		d.onError = fn
	}
}

// New creates a Dispatcher for surface. It does not subscribe until Init.
func New(surface Surface, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		surface: surface,
		st: state{
			dynamic: make(map[string]Handler),
			static:  make(map[string]Handler),
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	d.logger = d.logger.With("component", "router")
	if d.tracer == nil {
		d.tracer = otel.Tracer(tracerName)
	}
	if d.onError == nil {
		d.onError = func(token string, err error) {
			d.logger.Error("route dispatch failed", "token", token, "error", err)
		}
	}
	return d
}

// Register sets the dynamic handler for name, replacing any previous one.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.dynamic[name] = h
}

// Unregister removes the dynamic handler for name.
func (d *Dispatcher) Unregister(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.st.dynamic, name)
}

// RegisterStatic sets the handler for the literal token name.
func (d *Dispatcher) RegisterStatic(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.static[name] = h
}

// UnregisterStatic removes the static handler for name.
func (d *Dispatcher) UnregisterStatic(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.st.static, name)
}

// Clear removes every handler from both registries.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.dynamic = make(map[string]Handler)
	d.st.static = make(map[string]Handler)
}

// Current returns the most recently decoded route. It is not cleared by
// failed decodes.
func (d *Dispatcher) Current() (Route, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.st.current == nil {
		return Route{}, false
	}
	return *d.st.current, true
}

// Init subscribes to the surface, replacing the previous subscription, and
// dispatches the current token. target is passed to handlers as
// Call.Target. The result is that of the initial dispatch, so callers can
// fall back to a default page when it reports false.
func (d *Dispatcher) Init(target any) (bool, error) {
	d.mu.Lock()
	d.st.target = target
	prev := d.unsubscribe
	d.unsubscribe = nil
	d.mu.Unlock()

	if prev != nil {
		prev()
	}
	unsub := d.surface.Subscribe(d.onChange)

	d.mu.Lock()
	d.unsubscribe = unsub
	d.mu.Unlock()

	return d.Dispatch(d.surface.Token())
}

// Close removes the surface subscription.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	unsub := d.unsubscribe
	d.unsubscribe = nil
	d.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (d *Dispatcher) onChange(token string) {
	handled, err := d.Dispatch(token)
	if err != nil {
		d.onError(token, err)
		return
	}
	if !handled {
		d.logger.Debug("route not handled", "token", token)
	}
}

// Dispatch runs the handler for token and reports whether one ran.
//
// An empty token returns false. A token equal to a static name runs that
// handler without decoding. Otherwise the token is decoded: a malformed
// token is logged and returns false with a nil error; a route naming no
// dynamic handler returns a *HandlerNotFoundError.
func (d *Dispatcher) Dispatch(token string) (bool, error) {
	return d.DispatchContext(context.Background(), token)
}

// DispatchContext is Dispatch with a parent context for the dispatch span.
func (d *Dispatcher) DispatchContext(ctx context.Context, token string) (bool, error) {
	start := time.Now()
	if token == "" {
		d.metrics.observe(OutcomeEmpty, start)
		return false, nil
	}

	ctx, span := d.tracer.Start(ctx, "router.Dispatch")
	defer span.End()

	d.mu.Lock()
	h, ok := d.st.static[token]
	target := d.st.target
	d.mu.Unlock()

	if ok {
		span.SetAttributes(
			attribute.String("route.name", token),
			attribute.Bool("route.static", true),
		)
		h(&Call{Route: Route{Name: token}, Static: true, Target: target, ctx: ctx})
		d.metrics.observe(OutcomeStatic, start)
		return true, nil
	}

	route, err := Decode(token)
	if err != nil {
		d.logger.Warn("ignoring malformed route token", "token", token, "error", err)
		span.RecordError(err)
		d.metrics.observe(OutcomeDecodeError, start)
		return false, nil
	}
	span.SetAttributes(
		attribute.String("route.name", route.Name),
		attribute.Int("route.args", len(route.Args)),
	)

	d.mu.Lock()
	cur := route
	d.st.current = &cur
	h, ok = d.st.dynamic[route.Name]
	target = d.st.target
	d.mu.Unlock()

	if !ok {
		err := &HandlerNotFoundError{Route: route}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.metrics.observe(OutcomeNotFound, start)
		return false, err
	}

	h(&Call{Route: route, Target: target, ctx: ctx})
	d.metrics.observe(OutcomeDynamic, start)
	return true, nil
}

// Navigate sets the surface token to the route name(args...).
func (d *Dispatcher) Navigate(name string, args ...any) error {
	return d.NavigateValues(name, args)
}

// NavigateValues sets the surface token to the route with the given
// argument list.
func (d *Dispatcher) NavigateValues(name string, args []any) error {
	token, err := EncodeValues(name, args)
	if err != nil {
		return err
	}
	d.surface.SetToken(token)
	return nil
}

// NavigateStatic sets the surface token to name without encoding it.
func (d *Dispatcher) NavigateStatic(name string) {
	d.surface.SetToken(name)
}

package dev

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/hashview/internal/build"
	"github.com/vango-dev/hashview/internal/config"
	"github.com/vango-dev/hashview/internal/errors"
	hvmw "github.com/vango-dev/hashview/pkg/middleware"
	"github.com/vango-dev/hashview/pkg/hashsync"
	"github.com/vango-dev/hashview/pkg/router"
)

const (
	// HashPath is where the hash bridge socket is served.
	HashPath = "/_hashview/hash"

	// MetricsPath serves the Prometheus metrics of the dev server.
	MetricsPath = "/metrics"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	Logger *slog.Logger

	// Registry receives the build, request and runtime metrics served at
	// MetricsPath. Nil creates a private registry.
	Registry *prometheus.Registry

	// OnBuildComplete is called after every build.
	OnBuildComplete func(result *build.Result, err error)

	// OnReload is called when browsers are reloaded.
	OnReload func(clients int)

	// OnNavigate is called when a browser reports a new fragment. err is
	// non-nil when the fragment is not a route token.
	OnNavigate func(route router.Route, err error)
}

// Server is the development server.
type Server struct {
	config       *config.Config
	options      ServerOptions
	logger       *slog.Logger
	builder      *build.Builder
	watcher      *Watcher
	reloadServer *ReloadServer
	bridge       *hashsync.Bridge
	registry     *prometheus.Registry
	handler      http.Handler
	changeCh     chan Change
	httpServer   *http.Server
	hotReload    bool

	mu      sync.Mutex
	running bool
	last    *build.Result
	outputs map[string]bool
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := options.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
	}

	s := &Server{
		config:    cfg,
		options:   options,
		logger:    logger.With("component", "dev"),
		registry:  registry,
		hotReload: cfg.Dev.HotReload,
		outputs:   make(map[string]bool),
	}

	s.builder = build.New(cfg, build.Options{
		Logger:  logger,
		Metrics: build.NewMetrics(registry),
	})
	s.watcher = NewWatcher(WatcherConfig{
		Paths:    CollectWatchPaths(cfg),
		Ignore:   append(append([]string{}, DefaultIgnore...), cfg.Dev.Ignore...),
		Skip:     s.isOutput,
		Debounce: cfg.DebounceDuration(),
	})

	if s.hotReload {
		s.reloadServer = NewReloadServer(logger)
	}

	s.bridge = hashsync.New(hashsync.WithLogger(logger))
	s.bridge.Subscribe(s.onHash)

	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hvmw.Prometheus(hvmw.WithRegistry(s.registry), hvmw.WithSubsystem("dev")))
	r.Use(hvmw.OpenTelemetry(hvmw.WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != MetricsPath
	})))

	if s.reloadEnabled() {
		r.Get(ReloadPath, s.reloadServer.HandleWebSocket)
	}
	r.Handle(HashPath, s.bridge)
	r.Handle(MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Get("/*", s.serveStatic)
	})
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Bridge returns the hash bridge browsers connect to at HashPath.
// Subscribing to it replaces the server's own fragment logging and
// OnNavigate callback.
func (s *Server) Bridge() *hashsync.Bridge {
	return s.bridge
}

// Registry returns the metrics registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Start builds the page, watches for changes and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	s.Build(ctx)

	s.changeCh = make(chan Change, 64)
	s.watcher.OnChange(func(change Change) {
		select {
		case s.changeCh <- change:
		default:
		}
	})
	go s.watcher.Start(ctx)
	go s.processChanges(ctx)

	s.httpServer = &http.Server{
		Addr:              s.config.DevAddress(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("server running", "url", s.config.DevURL())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.watcher.Stop()
	if s.reloadServer != nil {
		s.reloadServer.Close()
	}
	s.bridge.Close()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// Build rebuilds the page and updates browsers' error overlays.
func (s *Server) Build(ctx context.Context) (*build.Result, error) {
	result, err := s.builder.Build(ctx)
	if s.options.OnBuildComplete != nil {
		s.options.OnBuildComplete(result, err)
	}
	if err != nil {
		s.notifyError(overlayText(err))
		return nil, err
	}

	s.mu.Lock()
	s.last = result
	for _, out := range result.Outputs {
		s.outputs[out] = true
	}
	if dep := s.config.DepFilePath(); dep != "" {
		s.outputs[dep] = true
	}
	s.mu.Unlock()

	s.clearReloadError()
	return result, nil
}

// processChanges serializes file change handling and coalesces bursts.
func (s *Server) processChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-s.changeCh:
			changes := []Change{change}
			draining := true
			for draining {
				select {
				case next := <-s.changeCh:
					changes = append(changes, next)
				default:
					draining = false
				}
			}
			s.handleChanges(ctx, changes)
		}
	}
}

// handleChanges rebuilds and reloads browsers. When only linked styles
// changed, browsers just refresh their stylesheets.
func (s *Server) handleChanges(ctx context.Context, changes []Change) {
	if len(changes) == 0 {
		return
	}
	styleOnly := true
	for _, change := range changes {
		s.logger.Info("changed", "path", change.Path, "type", change.Type)
		if change.Type != ChangeStyle {
			styleOnly = false
		}
	}

	if _, err := s.Build(ctx); err != nil {
		return
	}

	if styleOnly && !s.config.Page.Collapse && s.reloadEnabled() {
		s.reloadServer.NotifyCSS(changes[0].Path)
		return
	}
	s.notifyReload()
}

func (s *Server) onHash(token string) {
	route, err := router.Decode(token)
	switch {
	case token == "":
		s.logger.Debug("browser at root")
	case err != nil:
		s.logger.Warn("browser fragment is not a route", "token", token, "error", err)
	default:
		s.logger.Info("navigation", "route", route.Name, "args", route.Args)
	}
	if s.options.OnNavigate != nil {
		s.options.OnNavigate(route, err)
	}
}

// serveStatic serves files from the page's root directory. HTML pages get
// the reload and hash bridge scripts.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	root, index := s.site()
	name := path.Clean("/" + chi.URLParam(r, "*"))

	file := index
	if name != "/" {
		file = filepath.Join(root, filepath.FromSlash(name))
	}
	if file == "" {
		http.Error(w, "page not built", http.StatusServiceUnavailable)
		return
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".html", ".htm":
		data, err := os.ReadFile(file)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		page := InjectScripts(string(data), s.scripts()...)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(page)))
		w.Write([]byte(page))
	default:
		http.ServeFile(w, r, file)
	}
}

// site returns the root directory and HTML page of the last good build.
func (s *Server) site() (root, index string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || s.last.Page == nil {
		return filepath.Dir(s.config.PagePath()), ""
	}
	return s.last.Page.RootDir, s.last.HTML
}

func (s *Server) scripts() []string {
	scripts := []string{hashsync.ClientScript(HashPath)}
	if s.reloadEnabled() {
		scripts = append(scripts, DevClientScript)
	}
	return scripts
}

func (s *Server) isOutput(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputs[p]
}

func (s *Server) reloadEnabled() bool {
	return s.hotReload && s.reloadServer != nil
}

func (s *Server) notifyReload() {
	if !s.reloadEnabled() {
		s.logger.Info("rebuild complete (hot reload disabled)")
		return
	}
	s.reloadServer.NotifyReload()
	clients := s.reloadServer.ClientCount()
	if s.options.OnReload != nil {
		s.options.OnReload(clients)
	}
	s.logger.Info("reloaded browsers", "clients", clients)
}

func (s *Server) notifyError(msg string) {
	if !s.reloadEnabled() {
		return
	}
	s.reloadServer.NotifyError(msg)
}

func (s *Server) clearReloadError() {
	if !s.reloadEnabled() {
		return
	}
	s.reloadServer.ClearError()
}

// overlayText renders a build error for the browser overlay.
func overlayText(err error) string {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	text := e.FormatCompact()
	if e.Detail != "" {
		text += "\n\n" + e.Detail
	}
	if e.Wrapped != nil {
		text += "\n\n" + e.Wrapped.Error()
	}
	return text
}

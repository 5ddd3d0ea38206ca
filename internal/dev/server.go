package dev

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/einblatt-dev/einblatt/internal/config"
	"github.com/einblatt-dev/einblatt/internal/errors"
)

// MetricsPath is where the dev server exposes Prometheus metrics.
const MetricsPath = "/metrics"

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger receives request and reload logs.
	// Default: slog.Default().With("component", "dev")
	Logger *slog.Logger

	// Shell renders the app shell for a path when the static directory has
	// no index.html. Nil serves an empty page with an app container.
	Shell func(path string) (string, error)

	// Registry collects the server's metrics and is served at /metrics.
	// Pass the registry the app's router metrics use to expose both.
	// Default: a new registry.
	Registry *prometheus.Registry
}

// Server is the development server.
type Server struct {
	config     *config.Config
	options    ServerOptions
	logger     *slog.Logger
	watcher    *Watcher
	reload     *ReloadServer
	metrics    *serverMetrics
	handler    http.Handler
	httpServer *http.Server
	mu         sync.Mutex
	running    bool
	addr       net.Addr
	ready      chan struct{}
	readyOnce  sync.Once

	// shellFailed is set while browsers show the shell error overlay.
	shellFailed atomic.Bool
}

type serverMetrics struct {
	requests *prometheus.CounterVec
	reloads  *prometheus.CounterVec
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)
	return &serverMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "einblatt",
			Subsystem: "dev",
			Name:      "requests_total",
			Help:      "Requests served by the dev server, by kind (static, shell, not_found).",
		}, []string{"kind"}),
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "einblatt",
			Subsystem: "dev",
			Name:      "reloads_total",
			Help:      "Live reload messages broadcast, by type.",
		}, []string{"type"}),
	}
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	if cfg == nil {
		cfg = config.New()
		options.Config = cfg
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default().With("component", "dev")
	}
	if options.Registry == nil {
		options.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		config:  cfg,
		options: options,
		logger:  logger,
		metrics: newServerMetrics(options.Registry),
		ready:   make(chan struct{}),
	}

	if cfg.Dev.HotReload {
		s.reload = NewReloadServer(logger.With("component", "reload"))
		s.reload.OnSend(func(t ReloadMessageType) {
			s.metrics.reloads.WithLabelValues(string(t)).Inc()
		})
		s.watcher = NewWatcher(WatcherConfig{
			Paths:    cfg.WatchPaths(),
			Debounce: 100 * time.Millisecond,
		}, logger.With("component", "watcher"))
		s.watcher.OnChange(s.handleChanges)
	}

	s.handler = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Reload returns the live reload server, or nil when hot reload is off.
func (s *Server) Reload() *ReloadServer {
	return s.reload
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	if s.reload != nil {
		r.Get(ReloadPath, s.reload.HandleWebSocket)
	}
	if s.config.Dev.Metrics {
		r.Method(http.MethodGet, MetricsPath, promhttp.HandlerFor(s.options.Registry, promhttp.HandlerOpts{}))
	}

	base := s.config.Router.Basename
	if base != "" {
		r.Get(base, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, base+"/", http.StatusFound)
		})
	}
	r.Get(base+"/*", s.serveApp)
	return r
}

// logRequests logs every request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// serveApp serves a static file when one exists at the request path and
// the app shell otherwise. Paths with a file extension that match no file
// are 404s, so a missing asset never receives HTML.
func (s *Server) serveApp(w http.ResponseWriter, r *http.Request) {
	rel := path.Clean("/" + strings.TrimPrefix(r.URL.Path, s.config.Router.Basename))

	if file := s.staticFile(rel); file != "" {
		s.metrics.requests.WithLabelValues("static").Inc()
		if s.reload != nil && isHTML(file) {
			data, err := os.ReadFile(file)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			s.writeHTML(w, string(data))
			return
		}
		http.ServeFile(w, r, file)
		return
	}

	if path.Ext(rel) != "" {
		s.metrics.requests.WithLabelValues("not_found").Inc()
		http.NotFound(w, r)
		return
	}

	html, err := s.shell(rel)
	if err != nil {
		e := errors.New("E203").Wrap(err)
		s.logger.Error("shell failed", "code", e.Code, "path", rel, "error", err)
		if s.reload != nil {
			s.shellFailed.Store(true)
			s.reload.NotifyError(rel + ": " + e.Error())
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if s.reload != nil && s.shellFailed.CompareAndSwap(true, false) {
		s.reload.ClearError()
	}
	s.metrics.requests.WithLabelValues("shell").Inc()
	s.writeHTML(w, html)
}

// staticFile returns the file under the static directory that rel names,
// or "" when there is none. Directories never match.
func (s *Server) staticFile(rel string) string {
	root := s.config.StaticPath()
	if root == "" {
		return ""
	}
	file := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return ""
	}
	return file
}

func (s *Server) shell(rel string) (string, error) {
	if index := s.staticFile("/index.html"); index != "" {
		data, err := os.ReadFile(index)
		return string(data), err
	}
	if s.options.Shell != nil {
		return s.options.Shell(rel)
	}
	title := s.config.Name
	if title == "" {
		title = "einblatt"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body><div id="app"></div></body>
</html>`, title), nil
}

func (s *Server) writeHTML(w http.ResponseWriter, html string) {
	if s.reload != nil {
		html = InjectClient(html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, html)
}

func isHTML(file string) bool {
	return classifyChange(file) == ChangeHTML
}

// Start starts the development server. It blocks until ctx is done or the
// server fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	if static := s.config.StaticPath(); static != "" {
		if _, err := os.Stat(static); err != nil {
			s.logger.Warn("static directory not found", "code", "E403", "path", static)
		}
	}

	ln, err := net.Listen("tcp", s.config.DevAddress())
	if err != nil {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return errors.New("E402").
			WithDetailf("Could not listen on %s.", s.config.DevAddress()).
			Wrap(err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	if s.watcher != nil {
		go func() {
			if err := s.watcher.Start(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
				s.logger.Error("watcher stopped", "code", errors.Code(err), "error", err)
			}
		}()
	}

	s.logger.Info("server running", "url", s.URL(), "hot_reload", s.reload != nil, "metrics", s.config.Dev.Metrics)
	s.readyOnce.Do(func() { close(s.ready) })

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
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
		if err != nil {
			return errors.New("E402").Wrap(err)
		}
		return nil
	}
}

// Ready is closed once the server is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the address the server listens on, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// URL returns the app's URL on the running server.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == nil {
		return s.config.DevURL()
	}
	return "http://" + addr.String() + s.config.Router.Basename + "/"
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.reload != nil {
		s.reload.Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// handleChanges reloads stylesheets in place when only CSS changed and the
// whole page otherwise.
func (s *Server) handleChanges(changes []Change) {
	if s.reload == nil || len(changes) == 0 {
		return
	}

	cssOnly := true
	for _, c := range changes {
		s.logger.Info("changed", "path", c.Path, "type", c.Type, "removed", c.Removed)
		if c.Type != ChangeCSS || c.Removed {
			cssOnly = false
		}
	}

	if cssOnly {
		s.reload.NotifyCSS(s.urlPath(changes[0].Path))
	} else {
		s.reload.NotifyReload()
	}
	s.logger.Info("reloaded", "clients", s.reload.ClientCount(), "css_only", cssOnly)
}

// urlPath maps a file under the static directory to its URL path.
func (s *Server) urlPath(file string) string {
	rel, err := filepath.Rel(s.config.StaticPath(), file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(file)
	}
	return s.config.Router.Basename + "/" + filepath.ToSlash(rel)
}

package dev

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veld-dev/veld/internal/config"
	"github.com/veld-dev/veld/pkg/middleware"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the loaded project configuration.
	Config *config.Config

	// Root is the directory served to the browser, typically the build
	// output. Defaults to the configured build output directory.
	Root string

	// Logger receives server log lines. Defaults to stderr.
	Logger *log.Logger
}

// Server is the development server: static files over chi, a websocket
// live-reload channel, and a metrics endpoint.
type Server struct {
	opts     ServerOptions
	reload   *ReloadServer
	watcher  *Watcher
	registry *prometheus.Registry
	httpSrv  *http.Server
}

// NewServer creates a development server.
func NewServer(opts ServerOptions) *Server {
	if opts.Config == nil {
		opts.Config = config.New()
	}
	if opts.Root == "" {
		opts.Root = opts.Config.Build.Output
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "veld: ", log.LstdFlags)
	}

	return &Server{
		opts:     opts,
		registry: prometheus.NewRegistry(),
		reload:   NewReloadServer(),
		watcher: NewWatcher(WatcherConfig{
			Paths:  opts.Config.Dev.Watch,
			Ignore: opts.Config.Dev.Ignore,
		}),
	}
}

// Reload exposes the live-reload channel, mainly for tests and the build
// pipeline to push notifications through.
func (s *Server) Reload() *ReloadServer { return s.reload }

// Handler builds the dev server's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Prometheus(middleware.WithRegistry(s.registry)))
	r.Use(middleware.OpenTelemetry())

	r.Get("/_veld/reload", s.reload.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.NotFound(s.serveStatic)

	return r
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.opts.Config.Dev.Host, s.opts.Config.Dev.Port)
	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	if s.opts.Config.Dev.LiveReload {
		s.watcher.OnChange(s.handleChange)
		go s.watcher.Start(ctx)
	}

	s.log("serving %s on http://%s", s.opts.Root, addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.watcher.Stop()
	s.reload.Close()
	if s.httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutdownCtx)
	}
}

// handleChange maps a file change to the right reload message.
func (s *Server) handleChange(c Change) {
	switch c.Type {
	case ChangeCSS:
		s.log("css changed: %s", c.Path)
		s.reload.NotifyCSS(filepath.Base(c.Path))
	default:
		s.log("changed: %s", c.Path)
		s.reload.NotifyReload()
	}
}

// serveStatic serves files from the root directory. HTML responses get the
// reload client script injected; unknown paths fall back to index.html so
// client-side routes deep-link correctly.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	reqPath := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if reqPath == "." || reqPath == "" {
		reqPath = "index.html"
	}

	full := filepath.Join(s.opts.Root, reqPath)
	if !strings.HasPrefix(full, filepath.Clean(s.opts.Root)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		// SPA fallback
		full = filepath.Join(s.opts.Root, "index.html")
		if _, err := os.Stat(full); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	if strings.HasSuffix(full, ".html") && s.opts.Config.Dev.LiveReload {
		s.serveHTMLWithReload(w, r, full)
		return
	}
	http.ServeFile(w, r, full)
}

// serveHTMLWithReload writes an HTML file with the reload script before the
// closing body tag, or appended when no body tag exists.
func (s *Server) serveHTMLWithReload(w http.ResponseWriter, r *http.Request, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	html := string(data)
	if idx := strings.LastIndex(html, "</body>"); idx != -1 {
		html = html[:idx] + ReloadClientScript + html[idx:]
	} else {
		html += ReloadClientScript
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) log(format string, args ...any) {
	s.opts.Logger.Printf(format, args...)
}

package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Sentinel errors for server operations.
var (
	ErrNoPage  = errors.New("page not rendered yet")
	ErrReload  = errors.New("re-render failed")
	ErrListen  = errors.New("cannot listen")
	ErrNilFunc = errors.New("render function is nil")
)

// Defaults.
const (
	DefaultDebounce        = 300 * time.Millisecond
	defaultShutdownTimeout = 5 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

// RenderFunc produces the full HTML document.
type RenderFunc func(ctx context.Context) (string, error)

// snapshot is one immutable rendered page.
type snapshot struct {
	html       []byte
	etag       string
	renderedAt time.Time
}

// Server serves the most recent successful render.
type Server struct {
	render   RenderFunc
	logger   *slog.Logger
	debounce time.Duration
	page     atomic.Pointer[snapshot]
	reloads  atomic.Int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebounce sets how long the watcher waits for changes to settle
// before re-rendering.
func WithDebounce(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// New creates a Server. Call Reload once before serving.
func New(render RenderFunc, opts ...Option) (*Server, error) {
	if render == nil {
		return nil, ErrNilFunc
	}
	s := &Server{
		render:   render,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Reload renders the page and swaps it in. On failure the previous page
// stays in place.
func (s *Server) Reload(ctx context.Context) error {
	start := time.Now()
	html, err := s.render(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "re-render failed, keeping previous page",
			slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrReload, err)
	}

	sum := sha256.Sum256([]byte(html))
	s.page.Store(&snapshot{
		html:       []byte(html),
		etag:       `"` + hex.EncodeToString(sum[:8]) + `"`,
		renderedAt: time.Now(),
	})
	n := s.reloads.Add(1)

	s.logger.LogAttrs(ctx, slog.LevelInfo, "page rendered",
		slog.Int64("generation", n),
		slog.Int("bytes", len(html)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Generation counts successful renders.
func (s *Server) Generation() int64 {
	return s.reloads.Load()
}

// Handler returns the HTTP routes:
//
//	GET /            the rendered page
//	GET /index.html  the rendered page
//	GET /healthz     200 once a page is rendered, 503 before
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.servePage)
	r.Get("/index.html", s.servePage)
	r.Get("/healthz", s.serveHealth)

	return r
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	snap := s.page.Load()
	if snap == nil {
		http.Error(w, ErrNoPage.Error(), http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-cache")
	h.Set("ETag", snap.etag)
	h.Set("Last-Modified", snap.renderedAt.UTC().Format(http.TimeFormat))

	if etagMatches(r.Header.Get("If-None-Match"), snap.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	_, _ = w.Write(snap.html)
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.page.Load() == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("starting\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// requestLogger writes one slog record per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// ListenAndServe serves Handler on addr until ctx is canceled, then shuts
// down gracefully. onListen, if set, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, onListen func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListen, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	if onListen != nil {
		onListen(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

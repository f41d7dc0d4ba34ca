package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/finreply/internal/metrics"
	"github.com/mithrel/finreply/internal/render"
	"github.com/mithrel/finreply/pkg/api"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

const (
	routeHealth     = "/healthz"
	routeMetrics    = "/metrics"
	routeRender     = "/v1/render"
	routeRenderHTML = "/v1/render/html"
)

// Server serves the render API backed by a Renderer.
type Server struct {
	cfg      *viper.Viper
	renderer *render.Renderer
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func New(cfg *viper.Viper, r *render.Renderer, m *metrics.Metrics, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, renderer: r, metrics: m, log: log.Named("http")}
}

// Router returns an http.Handler with registered routes and middleware.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(routeHealth, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle(routeMetrics, s.metrics.Handler())
	mux.HandleFunc(routeRender, s.auth(s.handleRender))
	mux.HandleFunc(routeRenderHTML, s.auth(s.handleRenderHTML))

	var h http.Handler = mux
	h = s.metrics.Middleware(h, routeHealth, routeMetrics, routeRender, routeRenderHTML)
	h = requestID(h)
	// The chat frontend is served from a different origin.
	h = cors.AllowAll().Handler(h)
	return h
}

// Serve runs the server on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	timeout := s.cfg.GetDuration("server.shutdown_timeout")
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	s.log.Info("server stopped")
	return nil
}

// auth requires a matching bearer token when auth.token is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(s.cfg.GetString("auth.token"))
		if tok == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := r.Header.Get("Authorization")
		if !strings.HasPrefix(got, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(got, "Bearer ")) != tok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) reqLog(r *http.Request) *zap.Logger {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return s.log.With(zap.String("request_id", id))
	}
	return s.log
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	limit := s.cfg.GetInt64("server.max_body_bytes")
	if limit <= 0 {
		limit = 1 << 20
	}
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		s.reqLog(r).Warn("read body", zap.Error(err))
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return nil, false
	}
	return b, true
}

// notModified answers 304 when the client already holds the rendering of text.
func notModified(w http.ResponseWriter, r *http.Request, text string) bool {
	etag := `"` + api.Reply{Text: text}.Hash() + `"`
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// etagMatches applies the weak comparison If-None-Match calls for: the header
// may list several tags, any of them weak, or be "*".
func etagMatches(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" {
			return true
		}
		if strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	b, ok := s.readBody(w, r)
	if !ok {
		return
	}
	var req api.RenderRequest
	if err := json.Unmarshal(b, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if notModified(w, r, req.Texto) {
		return
	}
	res := s.renderer.RenderResult(req.Texto)
	if res.Degraded > 0 {
		s.reqLog(r).Debug("reply rendered with degraded cards", zap.Int("degraded", res.Degraded))
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		s.reqLog(r).Warn("write response", zap.Error(err))
	}
}

func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	b, ok := s.readBody(w, r)
	if !ok {
		return
	}
	text := string(b)
	if notModified(w, r, text) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(w, s.renderer.Render(text)); err != nil {
		s.reqLog(r).Warn("write response", zap.Error(err))
	}
}

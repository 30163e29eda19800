// Package server exposes inspection over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KaramelBytes/tabcheck/internal/analysis"
	"github.com/KaramelBytes/tabcheck/internal/logging"
	"github.com/KaramelBytes/tabcheck/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr          string
	MaxInputBytes int64
}

// Server serves the inspection API.
type Server struct {
	opt    Options
	router *chi.Mux
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// New builds a Server with its routes and middleware installed.
func New(opt Options) *Server {
	s := &Server{opt: opt, router: chi.NewRouter()}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/inspect", s.handleInspect)
		r.Get("/sample", s.handleSample)
	})
	return s
}

// ServeHTTP lets the Server be mounted or tested directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opt.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", s.opt.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "request"
	}
	text, err := utils.ReadLimited(name, r.Body, s.opt.MaxInputBytes)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	rep, err := analysis.Inspect(name, text)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	logging.WithFields(r.Context(), "report_id", rep.ID, "name", name).
		Debug("inspected", "rows", rep.Rows, "columns", len(rep.Columns))
	s.respondReport(w, r, rep)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	rep, err := analysis.Inspect(analysis.SampleName, analysis.SampleCSV)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondReport(w, r, rep)
}

func (s *Server) respondReport(w http.ResponseWriter, r *http.Request, rep *analysis.Report) {
	format := negotiateFormat(r)
	body, err := rep.Render(format)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	_, _ = w.Write(body)
}

// respondError logs the failure with the request ID and writes a JSON error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error(), Code: code})
}

func classify(err error) (int, string) {
	var empty *analysis.EmptyInputError
	var tooBig *utils.InputTooLargeError
	switch {
	case errors.As(err, &empty):
		return http.StatusBadRequest, "empty_input"
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge, "input_too_large"
	case errors.Is(err, analysis.ErrUnsupportedFormat):
		return http.StatusBadRequest, "bad_format"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// negotiateFormat prefers an explicit ?format=, then the Accept header, then JSON.
func negotiateFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	accept := r.Header.Get("Accept")
	switch {
	case strings.Contains(accept, "text/html"):
		return "html"
	case strings.Contains(accept, "text/markdown"):
		return "markdown"
	case strings.Contains(accept, "text/plain"):
		return "text"
	default:
		return "json"
	}
}

func contentType(format string) string {
	switch strings.ToLower(format) {
	case "html":
		return "text/html; charset=utf-8"
	case "markdown", "md":
		return "text/markdown; charset=utf-8"
	case "text":
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// requestLogger writes one slog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.FromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// Package server exposes the multipart decoder over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tomasbasham/multiform"
)

// DefaultMaxBodyBytes is used when Config.MaxBodyBytes is not set.
const DefaultMaxBodyBytes = 32 << 20

type Config struct {
	Decoder      *multiform.Decoder
	MaxBodyBytes int64
	Logger       *slog.Logger
}

type server struct {
	decoder      *multiform.Decoder
	maxBodyBytes int64
	log          *slog.Logger
}

// New returns a handler serving:
//
//	POST /forms    decode a multipart/form-data body and echo it as JSON
//	GET  /healthz  liveness probe
func New(cfg Config) http.Handler {
	s := &server{
		decoder:      cfg.Decoder,
		maxBodyBytes: cfg.MaxBodyBytes,
		log:          cfg.Logger,
	}
	if s.decoder == nil {
		s.decoder = multiform.NewDecoder()
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/forms", s.postForm)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) postForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	form, err := s.decoder.DecodeRequest(r)
	if err != nil {
		status := statusFor(err)
		s.log.Warn("rejecting form",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("status", status),
			slog.String("error", err.Error()))
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	s.log.Debug("decoded form",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("fields", len(form.Fields)),
		slog.Int("files", len(form.Files)))

	writeJSON(w, http.StatusOK, form)
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, multiform.ErrNotMultipart), errors.Is(err, multiform.ErrMissingBoundary):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request once it has been served.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

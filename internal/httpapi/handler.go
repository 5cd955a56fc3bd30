// Package httpapi serves the diagram pipeline over HTTP.
//
//	GET  /healthz         liveness probe
//	GET  /metrics         Prometheus metrics
//	GET  /api/v1/formats  supported sources and output formats
//	POST /api/v1/render   upload a node list, receive an artifact
//	POST /api/v1/inspect  upload a node list, receive a JSON summary
//
// Upload bodies are the raw input file. The source is taken from the
// "source" query parameter, or inferred from "filename".
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/metrics"
	"github.com/matzehuels/netdraw/pkg/pipeline"
	"github.com/matzehuels/netdraw/pkg/source"
)

// Default limits.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultMaxUploadBytes = 10 << 20
)

// Options configures a Handler.
type Options struct {
	// Defaults seeds every request's pipeline options.
	Defaults       pipeline.Options
	Timeout        time.Duration
	MaxUploadBytes int64
}

// Handler serves the render API.
type Handler struct {
	log     *log.Logger
	runner  *pipeline.Runner
	metrics *metrics.Metrics
	opts    Options
}

// NewHandler creates a handler. A nil metrics disables recording and makes
// /metrics answer 503.
func NewHandler(logger *log.Logger, runner *pipeline.Runner, m *metrics.Metrics, opts Options) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{log: logger, runner: runner, metrics: m, opts: opts}
}

// Router returns the chi router with middleware installed.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(h.opts.Timeout))
	r.Use(h.accessLog)

	r.Get("/healthz", h.handleHealthz)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/formats", h.handleFormats)
		r.Post("/render", h.handleRender)
		r.Post("/inspect", h.handleInspect)
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// Label metrics by route pattern to keep cardinality bounded.
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		duration := time.Since(start)
		h.metrics.ObserveHTTPRequest(r.Method, route, ww.Status(), duration)

		h.log.Info("http request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string) {
	h.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	})
}

// writeDomainError maps a pipeline error to a status code: defects in the
// uploaded data are 422, bad requests 400, oversized bodies 413 and
// everything else 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.writeError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE",
			"upload exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
		return
	}

	code := errs.GetCode(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "request_id", middleware.GetReqID(r.Context()), "err", err)
		if code == "" {
			code = errs.ErrCodeInternal
		}
	}
	h.writeError(w, status, string(code), errs.UserMessage(err))
}

func statusFor(err error) int {
	if errs.IsStructural(err) {
		return http.StatusUnprocessableEntity
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidOptions,
		errs.ErrCodeUnsupportedSource, errs.ErrCodeSheetNotFound:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleFormats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"sources": source.Names(),
		"formats": pipeline.FormatNames,
	})
}

package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spboyer/versus/internal/evaluation"
	"github.com/spboyer/versus/internal/models"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// maxBodySize bounds an evaluate request body.
const maxBodySize = 64 << 20

// Evaluator runs one evaluation. *evaluation.Service implements it.
type Evaluator interface {
	Evaluate(mode models.Mode, input string, opts evaluation.Options) (*models.Report, error)
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store    ReportStore
	eval     Evaluator
	defaults evaluation.Options
	metrics  *Metrics
	logger   *slog.Logger
}

// Config wires the handlers' dependencies. Eval may be nil, in which case the
// evaluate endpoints are not registered.
type Config struct {
	Store    ReportStore
	Eval     Evaluator
	Defaults evaluation.Options
	Metrics  *Metrics
	Logger   *slog.Logger
}

// NewHandlers creates a new Handlers from cfg.
func NewHandlers(cfg Config) *Handlers {
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handlers{
		store:    cfg.Store,
		eval:     cfg.Eval,
		defaults: cfg.Defaults,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleSummary returns aggregate metrics across all reports.
func (h *Handlers) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.store.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleReports returns a list of all reports, with optional sort/order query params.
func (h *Handlers) HandleReports(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")

	list, err := h.store.ListReports(sortField, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleReportDetail returns one report in full.
func (h *Handlers) HandleReportDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "report id is required")
		return
	}

	report, err := h.store.GetReport(id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleEvaluate returns a handler that evaluates the posted table in mode.
// Malformed bodies are 400; tables or options the evaluator rejects are 422.
func (h *Handlers) HandleEvaluate(mode models.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EvaluateRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if req.CSV == "" {
			writeError(w, http.StatusBadRequest, "csv is required")
			return
		}

		opts := h.defaults
		if len(req.Options) > 0 {
			optDec := json.NewDecoder(bytes.NewReader(req.Options))
			optDec.DisallowUnknownFields()
			if err := optDec.Decode(&opts); err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid options: %v", err))
				return
			}
		}

		start := time.Now()
		report, err := h.eval.Evaluate(mode, req.CSV, opts)
		elapsed := time.Since(start)
		if err != nil {
			h.metrics.recordEvaluation(string(mode), "invalid", elapsed, 0)
			h.logger.Debug("evaluation rejected", "mode", mode, "error", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.metrics.recordEvaluation(string(mode), "ok", elapsed, reportRows(report))

		if req.Source != "" {
			report.SetSource(req.Source)
		}
		if req.Save {
			if err := h.store.SaveReport(report); err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			h.logger.Info("saved report", "id", report.ReportID(), "mode", mode)
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/reports", h.HandleReports)
	mux.HandleFunc("GET /api/reports/{id}", h.HandleReportDetail)
	if h.eval != nil {
		mux.HandleFunc("POST /api/evaluate/classification", h.HandleEvaluate(models.ModeClassification))
		mux.HandleFunc("POST /api/evaluate/regression", h.HandleEvaluate(models.ModeRegression))
	}
	mux.Handle("GET /metrics", h.metrics.Handler())
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}

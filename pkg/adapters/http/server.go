package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/report"
)

// DefaultStepLimit bounds every run served over HTTP. A machine that never
// halts would otherwise hold the request forever.
const DefaultStepLimit = 1_000_000

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// MachineRequest carries a machine either as a structured definition or as
// text in the line-oriented format.
type MachineRequest struct {
	Definition json.RawMessage `json:"definition,omitempty"`
	Source     string          `json:"source,omitempty"`
}

// RunRequest is the body of POST /run.
type RunRequest struct {
	MachineRequest
	Input     *string `json:"input,omitempty"`
	StepLimit int     `json:"step_limit,omitempty"`
}

// RunResponse is the body returned by POST /run.
type RunResponse struct {
	Status     domain.RunStatus `json:"status"`
	State      domain.StateKey  `json:"state"`
	Steps      int              `json:"steps"`
	Head       int              `json:"head"`
	Tape       []domain.Cell    `json:"tape"`
	TapeString string           `json:"tape_string"`
	Error      string           `json:"error,omitempty"`
}

// ValidateResponse is the body returned by POST /validate.
type ValidateResponse struct {
	Valid          bool              `json:"valid"`
	Errors         string            `json:"errors,omitempty"`
	Unreachable    []domain.StateKey `json:"unreachable"`
	FinalReachable bool              `json:"final_reachable"`
}

// Server handles the machine endpoints. It keeps no machine between
// requests: each request builds, runs and discards its own.
type Server struct {
	stepLimit int
	hooks     domain.LifecycleHooks
	metrics   *observability.Metrics
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStepLimit sets the maximum number of steps per run. Requests may ask
// for less, never for more.
func WithStepLimit(n int) Option {
	return func(s *Server) {
		s.stepLimit = n
	}
}

// WithLifecycleHooks attaches hooks to every machine the server runs.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithMetrics registers the run metrics on reg and exposes them on /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = observability.NewMetrics(reg)
		s.gatherer = reg
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler. Requests to documented routes are
// validated against the embedded OpenAPI document before reaching the
// handlers.
func NewHandler(opts ...Option) (http.Handler, error) {
	server := &Server{
		stepLimit: DefaultStepLimit,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	router, err := newRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validateRequests(router))
		r.Get("/healthz", server.GetHealth)
		r.Get("/info", server.GetInfo(doc.Info.Version))
		r.Post("/run", server.Run)
		r.Post("/graph", server.Graph)
		r.Post("/validate", server.Validate)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Turing API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Run handles the POST /run request.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		s.logger.Warn("Run: Invalid request body", "error", err)
		return
	}

	def, err := body.MachineRequest.definition()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Input != nil {
		input, err := loader.ParseInput(*body.Input)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		def.Input = input
	}

	limit := s.stepLimit
	if body.StepLimit > 0 && (limit <= 0 || body.StepLimit < limit) {
		limit = body.StepLimit
	}

	hooks := s.hooks
	if s.metrics != nil {
		hooks = observability.Combine(s.metrics.Hooks(), hooks)
	}
	m, err := turing.FromDefinition(def,
		turing.WithStepLimit(limit),
		turing.WithLifecycleHooks(hooks),
		turing.WithLogger(s.logger),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := m.Run(r.Context(), def.Input)
	if res == nil {
		writeError(w, http.StatusInternalServerError, err)
		s.logger.Error("Run failed", "error", err)
		return
	}

	resp := RunResponse{
		Status:     res.Status,
		State:      res.State,
		Steps:      res.Steps,
		Head:       res.Head,
		Tape:       res.Tape,
		TapeString: report.TapeString(res.Tape),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	s.logger.Info("Run finished", "status", res.Status, "state", res.State, "steps", res.Steps)
	writeJSON(w, http.StatusOK, resp)
}

// Graph handles the POST /graph request.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	var body MachineRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	def, err := body.definition()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	m, err := turing.FromDefinition(def)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(m.Describe(), nil))
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body MachineRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	def, err := body.definition()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := ValidateResponse{
		Valid:          true,
		Unreachable:    validator.Unreachable(def),
		FinalReachable: validator.FinalReachable(def),
	}
	if resp.Unreachable == nil {
		resp.Unreachable = []domain.StateKey{}
	}
	if err := validator.Validate(def); err != nil {
		resp.Valid = false
		resp.Errors = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"app":         "turing-http",
			"version":     strings.TrimSpace(turing.Version),
			"api_version": apiVersion,
		})
	}
}

// -- Helpers --

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (m MachineRequest) definition() (*domain.Definition, error) {
	hasDef := len(m.Definition) > 0 && string(m.Definition) != "null"
	switch {
	case hasDef && m.Source != "":
		return nil, errors.New("provide either definition or source, not both")
	case hasDef:
		return loader.ParseJSON(m.Definition)
	case m.Source != "":
		return loader.ParseText(strings.NewReader(m.Source))
	}
	return nil, errors.New("missing definition or source")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

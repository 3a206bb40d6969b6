// Package server exposes the generation engine as a local HTTP service
// for design environments that prefer not to shell out to the CLI.
// Generation requests run synchronously; a websocket endpoint streams
// instruction lines for live preview rendering.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lborunda/rhinoFOAM/pkg/generator"
	"github.com/lborunda/rhinoFOAM/pkg/geometry"
	"github.com/lborunda/rhinoFOAM/pkg/profile"
)

// Version reported by /server/info.
const Version = "1.0.0"

// Server is the generation API server.
type Server struct {
	log       zerolog.Logger
	addr      string
	startTime time.Time

	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	lines    prometheus.Counter

	httpServer *http.Server
}

// Config holds server configuration.
type Config struct {
	// Addr is the HTTP address to listen on (e.g. ":7125").
	Addr string

	// Logger receives request and run logs.
	Logger zerolog.Logger
}

// New creates a generation API server.
func New(cfg Config) *Server {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rhinofoam",
		Name:      "generation_runs_total",
		Help:      "Generation runs by mode and outcome.",
	}, []string{"mode", "outcome"})
	lines := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rhinofoam",
		Name:      "instruction_lines_total",
		Help:      "Instruction lines emitted across all runs.",
	})
	registry.MustRegister(runs, lines)

	return &Server{
		log:       cfg.Logger,
		addr:      cfg.Addr,
		startTime: time.Now(),
		registry:  registry,
		runs:      runs,
		lines:     lines,
	}
}

// Handler builds the HTTP route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/server/info", s.handleServerInfo)
	r.Get("/api/modes", s.handleModes)
	r.Post("/api/generate", s.handleGenerate)
	r.Get("/websocket", s.handleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Start runs the server until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	s.log.Info().Str("addr", s.addr).Msg("generation API server starting")
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		s.log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// GenerateRequest is the body of POST /api/generate and of websocket
// generation messages. Profile is inline cfg text; geometry paths are
// raw [x, y, z] triples.
type GenerateRequest struct {
	Profile    string        `json:"profile"`
	Paths      [][][]float64 `json:"paths"`
	BaseHeader []string      `json:"baseHeader,omitempty"`
	BaseFooter []string      `json:"baseFooter,omitempty"`
}

// decode resolves the request into generator inputs.
func (gr *GenerateRequest) decode() ([]geometry.Polyline, *profile.Profile, generator.Options, error) {
	prof, err := profile.LoadString(gr.Profile)
	if err != nil {
		return nil, nil, generator.Options{}, err
	}
	geo, err := geometry.FromTriples(gr.Paths)
	if err != nil {
		return nil, nil, generator.Options{}, err
	}
	opts := generator.Options{
		BaseHeader: gr.BaseHeader,
		BaseFooter: gr.BaseFooter,
	}
	return geo, prof, opts, nil
}

// handleGenerate runs one generation pass and returns the full bundle.
func (s *Server) handleGenerate(w http.ResponseWriter, req *http.Request) {
	var gr GenerateRequest
	if err := json.NewDecoder(req.Body).Decode(&gr); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	geo, prof, opts, err := gr.decode()
	if err != nil {
		s.runs.WithLabelValues("unknown", "rejected").Inc()
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	bundle, err := generator.Generate(geo, prof, opts)
	if err != nil {
		s.runs.WithLabelValues(string(prof.Mode), "failed").Inc()
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.runs.WithLabelValues(string(prof.Mode), "ok").Inc()
	s.lines.Add(float64(len(bundle.Instructions)))
	s.log.Info().
		Str("mode", string(prof.Mode)).
		Int("toolpaths", bundle.Report.Toolpaths).
		Int("lines", len(bundle.Instructions)).
		Str("status", bundle.Report.Status).
		Msg("generation run complete")

	s.writeJSON(w, http.StatusOK, bundle)
}

// handleModes lists the supported modes with their parameter defaults.
func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	type modeInfo struct {
		Mode   profile.Mode       `json:"mode"`
		Params map[string]float64 `json:"params"`
	}
	modes := []modeInfo{
		{profile.ModeHot, profile.NewHot(profile.Cartesian, profile.Bed{}, nil).Params},
		{profile.ModeClay, profile.NewClay(profile.Cartesian, profile.Bed{}, nil).Params},
		{profile.ModePen, profile.NewPen(profile.Cartesian, profile.Bed{}, nil).Params},
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"modes": modes})
}

// handleServerInfo reports service identity and uptime.
func (s *Server) handleServerInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":    "rhinofoam",
		"version": Version,
		"uptime":  time.Since(s.startTime).Seconds(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("response encode failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

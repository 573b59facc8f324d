// Package httpapi exposes the incident map state over HTTP: health, metrics,
// the filtered incident feed, layer payloads, district options, and the
// language surface.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/openstreetarena/incident-map/internal/app"
	"github.com/openstreetarena/incident-map/internal/district"
	"github.com/openstreetarena/incident-map/internal/locale"
)

// Server exposes the map state over HTTP.
type Server struct {
	httpServer *http.Server
	controller *app.Controller
	renderer   *app.Renderer
	locale     *locale.Store
	logger     *slog.Logger
}

// NewServer wires the handlers around a shared controller and renderer pair.
func NewServer(addr string, controller *app.Controller, renderer *app.Renderer, loc *locale.Store, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		controller: controller,
		renderer:   renderer,
		locale:     loc,
		logger:     logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/incidents", s.handleIncidents)
	mux.HandleFunc("GET /api/layers", s.handleLayers)
	mux.HandleFunc("GET /api/districts", s.handleDistricts)
	mux.HandleFunc("GET /api/translations", s.handleTranslations)
	mux.HandleFunc("POST /api/language", s.handleSetLanguage)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.controller.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "dataset not loaded",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type incidentsResponse struct {
	Incidents any         `json:"incidents"`
	Total     int         `json:"total"`
	Filtered  int         `json:"filtered"`
	Filters   app.Filters `json:"filters"`
	Summary   string      `json:"summary"`
	Query     string      `json:"query"`
}

// handleIncidents returns the filtered subset. When a filter parameter is
// present the request transitions the shared state first, mirroring a control
// change.
func (s *Server) handleIncidents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("district") || q.Has("period") {
		s.controller.ApplyParams(q.Get("district"), q.Get("period"))
	}

	incidents := s.controller.Filtered()
	writeJSON(w, http.StatusOK, incidentsResponse{
		Incidents: incidents,
		Total:     s.controller.Total(),
		Filtered:  len(incidents),
		Filters:   s.controller.Filters(),
		Summary:   s.controller.Summary(),
		Query:     s.controller.Query(),
	})
}

type layersResponse struct {
	app.LayerSet
	Highlight *app.Marker `json:"highlight,omitempty"`
}

// handleLayers returns the payload for the active layer. A mode parameter
// switches the layer first; a pending highlight is reported exactly once.
func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	if mode := r.URL.Query().Get("mode"); mode != "" {
		s.renderer.SetMode(app.Mode(mode))
	}

	resp := layersResponse{LayerSet: s.renderer.Layers()}
	if m, ok := s.renderer.TakeHighlight(); ok {
		resp.Highlight = &m
	}
	writeJSON(w, http.StatusOK, resp)
}

type districtOption struct {
	Name string `json:"name"`
	Abbr string `json:"abbr,omitempty"`
}

// handleDistricts lists the dropdown options, collated for the active locale.
func (s *Server) handleDistricts(w http.ResponseWriter, _ *http.Request) {
	names := s.controller.DistrictNames()

	tag, err := language.Parse(s.locale.Locale())
	if err != nil {
		tag = language.English
	}
	collate.New(tag).SortStrings(names)

	options := make([]districtOption, 0, len(names))
	for _, name := range names {
		abbr, _ := district.Abbr(name)
		options = append(options, districtOption{Name: name, Abbr: abbr})
	}
	writeJSON(w, http.StatusOK, map[string]any{"districts": options})
}

type translationsResponse struct {
	Language  string       `json:"language"`
	Locale    string       `json:"locale"`
	Languages []string     `json:"languages"`
	Strings   locale.Table `json:"strings"`
}

// handleTranslations returns the string table for an explicit language, else
// the one negotiated from Accept-Language.
func (s *Server) handleTranslations(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = s.locale.Match(r.Header.Get("Accept-Language"))
	}

	writeJSON(w, http.StatusOK, translationsResponse{
		Language:  lang,
		Locale:    s.locale.Locale(),
		Languages: s.locale.Languages(),
		Strings:   s.locale.Strings(lang),
	})
}

type languageRequest struct {
	Language string `json:"language"`
}

// handleSetLanguage switches and persists the active language. Unknown codes
// fall back to the default; the switch broadcast fires either way.
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.locale.SetLanguage(req.Language)
	writeJSON(w, http.StatusOK, map[string]string{"language": s.locale.Language()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

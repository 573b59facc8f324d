package app

import (
	"log/slog"
	"sync"

	"github.com/openstreetarena/incident-map/internal/domain"
	"github.com/openstreetarena/incident-map/internal/locale"
	"github.com/openstreetarena/incident-map/internal/observability"
)

// Mode selects which layer is active. The two layers are mutually exclusive.
type Mode string

const (
	ModeMarkers Mode = "markers"
	ModeHeat    Mode = "heat"
)

// Popup is the rendered detail card for one incident. Absent fields carry
// translated placeholder text rather than empty strings.
type Popup struct {
	Title       string `json:"title"`
	Time        string `json:"time"`
	District    string `json:"district"`
	Category    string `json:"category"`
	SourceURL   string `json:"source_url,omitempty"`
	SourceLabel string `json:"source_label"`
	Notes       string `json:"notes"`
}

// Marker is one plottable incident on the marker layer.
type Marker struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup Popup   `json:"popup"`
}

// HeatPoint is one weighted coordinate on the heat layer. Weight decays with
// incident age.
type HeatPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
}

// LayerSet is the renderable output for the active mode. Exactly one of
// Markers and HeatPoints is populated.
type LayerSet struct {
	Mode       Mode        `json:"mode"`
	Markers    []Marker    `json:"markers,omitempty"`
	HeatPoints []HeatPoint `json:"heat_points,omitempty"`
}

// Renderer turns the controller's filtered subset into layer payloads. It is
// driven through Apply, normally wired as a controller subscriber.
type Renderer struct {
	mu      sync.Mutex
	locale  *locale.Store
	logger  *slog.Logger
	metrics *observability.Metrics

	mode    Mode
	markers []Marker
	heat    []HeatPoint
	byID    map[string]Marker

	highlightID   string
	highlightUsed bool
}

// NewRenderer creates a Renderer in marker mode.
func NewRenderer(loc *locale.Store, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	return &Renderer{
		locale:  loc,
		logger:  logger,
		metrics: metrics,
		mode:    ModeMarkers,
		byID:    map[string]Marker{},
	}
}

// Apply rebuilds both layers from an update. Records without a complete
// coordinate pair are kept in the dataset but never rendered.
func (r *Renderer) Apply(u Update) {
	markers := make([]Marker, 0, len(u.Incidents))
	heat := make([]HeatPoint, 0, len(u.Incidents))
	byID := make(map[string]Marker, len(u.Incidents))

	for _, in := range u.Incidents {
		if !in.Plottable() {
			continue
		}
		m := Marker{
			ID:    in.ID,
			Title: in.Title,
			Lat:   *in.Lat,
			Lng:   *in.Lng,
			Popup: r.buildPopup(in),
		}
		markers = append(markers, m)
		byID[m.ID] = m
		heat = append(heat, HeatPoint{
			Lat:    *in.Lat,
			Lng:    *in.Lng,
			Weight: domain.HeatWeight(in.DateTime),
		})
	}

	r.mu.Lock()
	r.markers = markers
	r.heat = heat
	r.byID = byID
	r.mu.Unlock()

	r.metrics.LayerRebuilds.Inc()
	r.logger.Debug("layers rebuilt", "markers", len(markers))
}

// SetMode switches the active layer.
func (r *Renderer) SetMode(mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mode == ModeHeat {
		r.mode = ModeHeat
	} else {
		r.mode = ModeMarkers
	}
}

// Mode returns the active layer mode.
func (r *Renderer) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// Layers returns the payload for the active mode only; the inactive layer is
// left empty so both can never render at once.
func (r *Renderer) Layers() LayerSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := LayerSet{Mode: r.mode}
	switch r.mode {
	case ModeHeat:
		set.HeatPoints = append([]HeatPoint(nil), r.heat...)
	default:
		set.Markers = append([]Marker(nil), r.markers...)
	}
	return set
}

// SetHighlight arms the one-shot highlight for a requested incident id. An
// empty id disarms it.
func (r *Renderer) SetHighlight(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlightID = id
	r.highlightUsed = false
}

// TakeHighlight resolves the armed highlight against the current marker set,
// at most once. An id that matches no marker is skipped silently.
func (r *Renderer) TakeHighlight() (Marker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.highlightID == "" || r.highlightUsed {
		return Marker{}, false
	}
	m, ok := r.byID[r.highlightID]
	if !ok {
		return Marker{}, false
	}
	r.highlightUsed = true
	return m, true
}

func (r *Renderer) buildPopup(in domain.Incident) Popup {
	p := Popup{
		Title:    in.Title,
		Time:     r.locale.T("popup.noTime", nil),
		District: r.locale.T("popup.noDistrict", nil),
		Category: r.locale.T("popup.noCategory", nil),
		Notes:    r.locale.T("popup.noNotes", nil),
	}

	if t, ok := in.When(); ok {
		p.Time = t.Format("2006-01-02 15:04:05")
	}
	if in.District != "" {
		p.District = in.District
		if in.Location != "" {
			p.District += r.locale.T("popup.locationSeparator", nil) + in.Location
		}
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.Source != "" {
		p.SourceURL = in.Source
		p.SourceLabel = r.locale.T("popup.source", nil)
	} else {
		p.SourceLabel = r.locale.T("popup.noSource", nil)
	}
	if in.Notes != "" {
		p.Notes = in.Notes
	}
	return p
}

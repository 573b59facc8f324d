// Package app owns the view state of the incident map: the loaded dataset,
// the active filters, the derived filtered subset, and the layer payloads
// rendered from it. State transitions are dispatched synchronously to
// subscribers; there is no queued delivery.
package app

import (
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/openstreetarena/incident-map/internal/dataset"
	"github.com/openstreetarena/incident-map/internal/district"
	"github.com/openstreetarena/incident-map/internal/domain"
	"github.com/openstreetarena/incident-map/internal/locale"
	"github.com/openstreetarena/incident-map/internal/observability"
)

// All is the wildcard value for a filter axis.
const All = "all"

// Filters is the two-axis filter state. A district is a resolved full name;
// a period is a bucket name; All disables the axis.
type Filters struct {
	District string `json:"district"`
	Period   string `json:"period"`
}

// FitRequest instructs the map to frame a district's bounding box. Emitted at
// most once per distinct district value until the selection changes.
type FitRequest struct {
	District string          `json:"district"`
	Bounds   district.Bounds `json:"bounds"`
}

// Update is one state transition pushed to subscribers.
type Update struct {
	Incidents []domain.Incident
	Summary   string
	Query     string
	Fit       *FitRequest
}

// Controller is the single owner of filter and dataset state. All mutation
// happens under one mutex; the original's sole-mutator model made explicit.
type Controller struct {
	mu      sync.Mutex
	locale  *locale.Store
	logger  *slog.Logger
	metrics *observability.Metrics

	incidents   []domain.Incident
	filtered    []domain.Incident
	filters     Filters
	query       url.Values
	source      string
	label       string
	highlightID string
	lastFit     string
	loaded      bool
	loadFailed  bool

	listeners []func(Update)
}

// NewController creates a Controller and subscribes it to language switches,
// which refresh labels and summary text without touching the data.
func NewController(loc *locale.Store, logger *slog.Logger, metrics *observability.Metrics) *Controller {
	c := &Controller{
		locale:  loc,
		logger:  logger,
		metrics: metrics,
		filters: Filters{District: All, Period: All},
		query:   url.Values{},
	}
	loc.Subscribe(c.onLanguageChange)
	return c
}

// Subscribe registers a listener for state transitions. Dispatch is
// synchronous and in registration order.
func (c *Controller) Subscribe(fn func(Update)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// SetDataset installs a freshly loaded dataset and applies the startup
// filters derived from the request parameters. The initial application does
// not rewrite the query mirror, so the startup URL survives the first render.
func (c *Controller) SetDataset(res dataset.Result, params url.Values) {
	c.mu.Lock()
	c.incidents = res.Incidents
	c.filtered = res.Incidents
	c.source = res.Source
	c.label = res.Label
	c.loaded = true
	c.loadFailed = false
	c.lastFit = ""
	c.highlightID = strings.TrimSpace(params.Get("id"))

	c.query = url.Values{}
	for k, vs := range params {
		c.query[k] = append([]string(nil), vs...)
	}

	initial := Filters{
		District: c.resolveDistrictLocked(params.Get("district")),
		Period:   resolvePeriodParam(params.Get("period")),
	}
	update := c.applyLocked(initial, true)
	c.mu.Unlock()

	c.dispatch(update)
}

// SetLoadFailed records a fatal load attempt. No partial dataset is shown;
// the summary carries the translated failure message.
func (c *Controller) SetLoadFailed() {
	c.mu.Lock()
	c.incidents = nil
	c.filtered = nil
	c.loaded = false
	c.loadFailed = true
	summary := c.locale.T("messages.loadFailed", nil)
	c.mu.Unlock()

	c.dispatch(Update{Summary: summary})
}

// Apply transitions the filter state from a UI control change. Empty fields
// keep their current value.
func (c *Controller) Apply(f Filters) {
	c.mu.Lock()
	update := c.applyLocked(f, false)
	c.mu.Unlock()

	c.dispatch(update)
}

// ApplyParams resolves raw request parameter values (district abbreviation or
// case-insensitive full name, period bucket name) and applies them.
func (c *Controller) ApplyParams(districtParam, periodParam string) {
	c.mu.Lock()
	f := Filters{
		District: c.resolveDistrictLocked(districtParam),
		Period:   resolvePeriodParam(periodParam),
	}
	update := c.applyLocked(f, false)
	c.mu.Unlock()

	c.dispatch(update)
}

func (c *Controller) applyLocked(f Filters, initial bool) Update {
	prevDistrict := c.filters.District
	if f.District != "" {
		c.filters.District = f.District
	}
	if f.Period != "" {
		c.filters.Period = f.Period
	}

	filters := c.filters
	c.filtered = lo.Filter(c.incidents, func(in domain.Incident, _ int) bool {
		if filters.District != All && in.District != filters.District {
			return false
		}
		if filters.Period != All && string(in.Period) != filters.Period {
			return false
		}
		return true
	})

	if !initial {
		c.syncQueryLocked()
	}

	var fit *FitRequest
	if c.filters.District != All && c.filters.District != prevDistrict {
		fit = c.fitLocked()
	}
	if c.filters.District == All {
		// Clearing the memory lets a future re-selection of any district,
		// including the one just left, trigger a fresh fit.
		c.lastFit = ""
	}

	c.metrics.FilterApplications.Inc()
	return Update{
		Incidents: append([]domain.Incident(nil), c.filtered...),
		Summary:   c.summaryLocked(),
		Query:     c.query.Encode(),
		Fit:       fit,
	}
}

// fitLocked resolves the bounding box for the active district: the registry
// box when known, else a box computed from the filtered coordinates. The
// lastFit guard keeps re-filtering on the same district from moving the
// camera again.
func (c *Controller) fitLocked() *FitRequest {
	d := c.filters.District
	if d == c.lastFit {
		return nil
	}
	if b, ok := district.BoundsFor(d); ok {
		c.lastFit = d
		return &FitRequest{District: d, Bounds: b}
	}

	var points []district.LatLng
	for _, in := range c.filtered {
		if in.District == d && in.Plottable() {
			points = append(points, district.LatLng{Lat: *in.Lat, Lng: *in.Lng})
		}
	}
	if b, ok := district.BoundsFrom(points); ok {
		c.lastFit = d
		return &FitRequest{District: d, Bounds: b}
	}
	return nil
}

// syncQueryLocked mirrors the filter state into the query values: wildcard
// axes drop their parameter, and the one-shot highlight id is always
// stripped.
func (c *Controller) syncQueryLocked() {
	if c.filters.District != All {
		c.query.Set("district", c.filters.District)
	} else {
		c.query.Del("district")
	}
	if c.filters.Period != All {
		c.query.Set("period", c.filters.Period)
	} else {
		c.query.Del("period")
	}
	c.query.Del("id")
}

func (c *Controller) summaryLocked() string {
	if c.loadFailed {
		return c.locale.T("messages.loadFailed", nil)
	}
	label := c.locale.DatasetLabel(c.source, c.label)
	total := len(c.incidents)
	filtered := len(c.filtered)
	if filtered == total {
		return c.locale.T("summaryInitial", map[string]any{"label": label, "filtered": filtered, "total": total})
	}
	return c.locale.T("summary", map[string]any{"label": label, "filtered": filtered, "total": total})
}

// resolveDistrictLocked maps a district request parameter to a full name: an
// abbreviation via the registry, else a case-insensitive match against the
// names present in the dataset, else the wildcard.
func (c *Controller) resolveDistrictLocked(param string) string {
	trimmed := strings.TrimSpace(param)
	if trimmed == "" {
		return All
	}
	if full, ok := district.FullName(strings.ToUpper(trimmed)); ok {
		return full
	}
	for _, name := range c.districtNamesLocked() {
		if strings.EqualFold(name, trimmed) {
			return name
		}
	}
	return All
}

func resolvePeriodParam(param string) string {
	if p, ok := domain.ParsePeriod(param); ok {
		return string(p)
	}
	return All
}

func (c *Controller) districtNamesLocked() []string {
	names := lo.FilterMap(c.incidents, func(in domain.Incident, _ int) (string, bool) {
		return in.District, in.District != ""
	})
	return lo.Uniq(names)
}

// DistrictNames lists the distinct district names present in the dataset, in
// first-appearance order.
func (c *Controller) DistrictNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.districtNamesLocked()
}

// Ready reports whether a dataset load has completed successfully.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Filters returns the active filter state.
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Filtered returns a copy of the current filtered subset, order preserved.
func (c *Controller) Filtered() []domain.Incident {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Incident(nil), c.filtered...)
}

// Total returns the size of the loaded dataset.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.incidents)
}

// Summary returns the dataset summary line for the current state.
func (c *Controller) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaryLocked()
}

// Query returns the canonical encoded query mirroring the filter state.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Encode()
}

// HighlightID returns the one-shot incident identifier requested at startup.
func (c *Controller) HighlightID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlightID
}

// onLanguageChange relabels without reloading: the same subset is re-pushed
// so popups and summary text pick up the new strings.
func (c *Controller) onLanguageChange(lang string) {
	c.mu.Lock()
	if !c.loaded && !c.loadFailed {
		c.mu.Unlock()
		return
	}
	update := Update{
		Incidents: append([]domain.Incident(nil), c.filtered...),
		Summary:   c.summaryLocked(),
		Query:     c.query.Encode(),
	}
	c.mu.Unlock()

	c.metrics.LanguageSwitches.WithLabelValues(lang).Inc()
	c.dispatch(update)
}

func (c *Controller) dispatch(u Update) {
	c.mu.Lock()
	listeners := append(([]func(Update))(nil), c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(u)
	}
}

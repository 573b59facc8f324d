package app

import (
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstreetarena/incident-map/internal/domain"
	"github.com/openstreetarena/incident-map/internal/locale"
	"github.com/openstreetarena/incident-map/internal/observability"
)

func newTestRenderer(t *testing.T) (*locale.Store, *Renderer) {
	t.Helper()
	loc := locale.NewStore(nil)
	return loc, NewRenderer(loc, slog.Default(), observability.NewMetricsForTesting())
}

func TestRenderer_BuildsLayersFromPlottableIncidents(t *testing.T) {
	hk := time.FixedZone("UTC+8", 8*60*60)
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 6, 15, 12, 0, 0, 0, hk)))
	defer domain.SetClock(nil)

	_, r := newTestRenderer(t)

	r.Apply(Update{Incidents: []domain.Incident{
		domain.Normalize(domain.Record{"id": "recent", "district_abbr": "WC", "date": "2024-06-01", "lat": 22.27, "lng": 114.17}),
		domain.Normalize(domain.Record{"id": "old", "district_abbr": "KT", "date": "2023-06-01", "lat": 22.31, "lng": 114.22}),
		domain.Normalize(domain.Record{"id": "nocoords", "district_abbr": "WC"}),
	}})

	set := r.Layers()
	assert.Equal(t, ModeMarkers, set.Mode)
	require.Len(t, set.Markers, 2)
	assert.Empty(t, set.HeatPoints)
	assert.Equal(t, "recent", set.Markers[0].ID)
	assert.Equal(t, 22.27, set.Markers[0].Lat)

	r.SetMode(ModeHeat)
	set = r.Layers()
	assert.Equal(t, ModeHeat, set.Mode)
	assert.Empty(t, set.Markers)
	require.Len(t, set.HeatPoints, 2)
	assert.Equal(t, 1.0, set.HeatPoints[0].Weight)
	assert.Equal(t, 0.6, set.HeatPoints[1].Weight)
}

func TestRenderer_SetModeRejectsUnknown(t *testing.T) {
	_, r := newTestRenderer(t)

	r.SetMode(ModeHeat)
	assert.Equal(t, ModeHeat, r.Mode())

	r.SetMode(Mode("satellite"))
	assert.Equal(t, ModeMarkers, r.Mode())
}

func TestRenderer_PopupPlaceholders(t *testing.T) {
	_, r := newTestRenderer(t)

	r.Apply(Update{Incidents: []domain.Incident{
		domain.Normalize(domain.Record{"id": "bare", "lat": 22.3, "lng": 114.2}),
	}})

	p := r.Layers().Markers[0].Popup
	assert.Equal(t, "未命名事件", p.Title)
	assert.Equal(t, "未提供", p.Time)
	assert.Equal(t, "NA", p.District)
	assert.Equal(t, "未标注", p.Category)
	assert.Equal(t, "未提供", p.SourceLabel)
	assert.Empty(t, p.SourceURL)
	assert.Equal(t, "暂无补充内容", p.Notes)
}

func TestRenderer_PopupFullRecord(t *testing.T) {
	_, r := newTestRenderer(t)

	r.Apply(Update{Incidents: []domain.Incident{
		domain.Normalize(domain.Record{
			"id":            "full",
			"title":         "旺角事件",
			"district_abbr": "YTM",
			"location":      "弥敦道",
			"category":      "纠纷",
			"date":          "2024-03-05",
			"time":          "9:30",
			"source":        "https://example.com/post/1",
			"notes":         "目击者两名",
			"lat":           22.30,
			"lng":           114.17,
		}),
	}})

	p := r.Layers().Markers[0].Popup
	assert.Equal(t, "旺角事件", p.Title)
	assert.Equal(t, "2024-03-05 09:30:00", p.Time)
	assert.Equal(t, "Yau Tsim Mong · 弥敦道", p.District)
	assert.Equal(t, "纠纷", p.Category)
	assert.Equal(t, "https://example.com/post/1", p.SourceURL)
	assert.Equal(t, "来源", p.SourceLabel)
	assert.Equal(t, "目击者两名", p.Notes)
}

func TestRenderer_PopupUsesActiveLanguage(t *testing.T) {
	loc, r := newTestRenderer(t)
	loc.SetLanguage("en")

	r.Apply(Update{Incidents: []domain.Incident{
		domain.Normalize(domain.Record{"id": "bare", "lat": 22.3, "lng": 114.2}),
	}})

	p := r.Layers().Markers[0].Popup
	assert.Equal(t, "Not provided", p.Time)
	assert.Equal(t, "No additional notes", p.Notes)
}

func TestRenderer_HighlightResolvesOnce(t *testing.T) {
	_, r := newTestRenderer(t)
	r.SetHighlight("a")

	r.Apply(Update{Incidents: []domain.Incident{
		domain.Normalize(domain.Record{"id": "a", "district_abbr": "WC", "lat": 22.27, "lng": 114.17}),
	}})

	m, ok := r.TakeHighlight()
	require.True(t, ok)
	assert.Equal(t, "a", m.ID)

	_, ok = r.TakeHighlight()
	assert.False(t, ok)
}

func TestRenderer_HighlightUnknownIDIsSkipped(t *testing.T) {
	_, r := newTestRenderer(t)
	r.SetHighlight("ghost")

	r.Apply(Update{Incidents: []domain.Incident{
		domain.Normalize(domain.Record{"id": "a", "district_abbr": "WC", "lat": 22.27, "lng": 114.17}),
	}})

	_, ok := r.TakeHighlight()
	assert.False(t, ok)
}

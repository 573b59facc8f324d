// Package dataset selects, fetches, and parses an incident data source and
// hands every raw row to the normalizer.
package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/openstreetarena/incident-map/internal/config"
	"github.com/openstreetarena/incident-map/internal/domain"
	"github.com/openstreetarena/incident-map/internal/observability"
)

// Fallback labels shown when no translation covers the source key.
var sourceLabels = map[string]string{
	config.SourceLocalJSON: "本地 JSON (./data/incidents.json)",
	config.SourceLocalCSV:  "本地 CSV (./data/incidents.csv)",
	config.SourceSheetsCSV: "Google Sheets CSV",
}

// Result is one complete dataset load.
type Result struct {
	Incidents []domain.Incident
	Source    string
	Label     string
}

// Loader fetches and normalizes incident datasets. A load is a single
// attempt: there is no retry, and any fetch failure propagates to the caller.
type Loader struct {
	defaultSource string
	jsonPath      string
	csvPath       string
	sheetsURL     string
	httpClient    *http.Client
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// NewLoader creates a Loader from the service configuration.
func NewLoader(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		defaultSource: cfg.DataSource,
		jsonPath:      cfg.LocalJSONPath,
		csvPath:       cfg.LocalCSVPath,
		sheetsURL:     strings.TrimSpace(cfg.SheetsCSVURL),
		httpClient:    &http.Client{Timeout: cfg.FetchTimeout},
		logger:        logger,
		metrics:       metrics,
	}
}

// DetectSource resolves the source selector: a request parameter valued
// "sheets" (case-insensitive) selects the remote CSV feed, anything else
// falls through to the configured default.
func (l *Loader) DetectSource(sourceParam string) string {
	if strings.EqualFold(strings.TrimSpace(sourceParam), "sheets") {
		return config.SourceSheetsCSV
	}
	return l.defaultSource
}

// Load fetches, parses, and normalizes the selected dataset.
func (l *Loader) Load(ctx context.Context, sourceParam string) (Result, error) {
	source := l.DetectSource(sourceParam)
	start := time.Now()

	res, err := l.load(ctx, source)
	if err != nil {
		l.metrics.DatasetLoads.WithLabelValues(source, "error").Inc()
		return Result{}, err
	}

	l.metrics.DatasetLoads.WithLabelValues(res.Source, "success").Inc()
	l.metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	l.metrics.IncidentsLoaded.Set(float64(len(res.Incidents)))
	l.metrics.DatasetReady.Set(1)
	l.logger.Info("dataset loaded",
		"source", res.Source,
		"incidents", len(res.Incidents),
		"duration", time.Since(start),
	)
	return res, nil
}

func (l *Loader) load(ctx context.Context, source string) (Result, error) {
	switch source {
	case config.SourceLocalCSV:
		return l.loadLocalCSV()
	case config.SourceSheetsCSV:
		return l.loadSheetsCSV(ctx)
	default:
		return l.loadLocalJSON()
	}
}

// loadLocalJSON reads the local JSON resource. The body may be an array of
// raw rows or a keyed mapping of rows; mapping keys are discarded.
func (l *Loader) loadLocalJSON() (Result, error) {
	b, err := os.ReadFile(l.jsonPath)
	if err != nil {
		return Result{}, fmt.Errorf("load local json: %w", err)
	}

	var rows []domain.Record
	if err := json.Unmarshal(b, &rows); err != nil {
		var keyed map[string]domain.Record
		if err2 := json.Unmarshal(b, &keyed); err2 != nil {
			return Result{}, fmt.Errorf("load local json: %w", err)
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, keyed[k])
		}
	}

	return Result{
		Incidents: l.normalizeAll(rows),
		Source:    config.SourceLocalJSON,
		Label:     sourceLabels[config.SourceLocalJSON],
	}, nil
}

func (l *Loader) loadLocalCSV() (Result, error) {
	f, err := os.Open(l.csvPath)
	if err != nil {
		return Result{}, fmt.Errorf("load local csv: %w", err)
	}
	defer f.Close()

	rows, err := parseCSV(f)
	if err != nil {
		return Result{}, fmt.Errorf("load local csv: %w", err)
	}

	return Result{
		Incidents: l.normalizeAll(rows),
		Source:    config.SourceLocalCSV,
		Label:     sourceLabels[config.SourceLocalCSV],
	}, nil
}

// loadSheetsCSV fetches the remote CSV feed. An unset endpoint degrades
// gracefully to the local JSON path instead of failing.
func (l *Loader) loadSheetsCSV(ctx context.Context) (Result, error) {
	if l.sheetsURL == "" {
		l.logger.Warn("SHEETS_CSV_URL is not set, falling back to local JSON")
		l.metrics.DatasetLoads.WithLabelValues(config.SourceSheetsCSV, "fallback").Inc()
		return l.loadLocalJSON()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.sheetsURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("load sheets csv: %w", err)
	}
	// Always retrieve fresh data.
	req.Header.Set("Cache-Control", "no-store")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("load sheets csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("load sheets csv: status %d", resp.StatusCode)
	}

	rows, err := parseCSV(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("load sheets csv: %w", err)
	}

	return Result{
		Incidents: l.normalizeAll(rows),
		Source:    config.SourceSheetsCSV,
		Label:     sourceLabels[config.SourceSheetsCSV],
	}, nil
}

func (l *Loader) normalizeAll(rows []domain.Record) []domain.Incident {
	incidents := make([]domain.Incident, 0, len(rows))
	for _, row := range rows {
		in := domain.Normalize(row)
		l.metrics.IncidentsNormalized.Inc()
		if !in.Plottable() {
			l.metrics.UnplottableRecords.Inc()
		}
		incidents = append(incidents, in)
	}
	return incidents
}

// parseCSV reads rows with header-row semantics: the first row names the
// fields, blank lines are skipped, and short rows keep whatever columns they
// have.
func parseCSV(r io.Reader) ([]domain.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv")
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []domain.Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(fields) {
			continue
		}
		row := make(domain.Record, len(header))
		for i, name := range header {
			if name == "" || i >= len(fields) {
				continue
			}
			row[name] = fields[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

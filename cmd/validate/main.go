// Command validate runs integrity checks over a JSON/CSV incident fixture
// pair: row parity across the two sources, identifier uniqueness, period
// bucket membership, datetime shape, and coordinate pairing. It normalizes
// through the actual domain package so the checks see what the map would see.
//
// Usage:
//
//	go run ./cmd/validate -json data/incidents.json -csv data/incidents.csv
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openstreetarena/incident-map/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	jsonPath := flag.String("json", "data/incidents.json", "path to the JSON fixture")
	csvPath := flag.String("csv", "data/incidents.csv", "path to the CSV fixture")
	flag.Parse()

	if code := run(*jsonPath, *csvPath); code != 0 {
		os.Exit(code)
	}
}

func run(jsonPath, csvPath string) int {
	// Fixed clock matching genmock, so normalization output is reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 26, 12, 0, 0, 0, time.FixedZone("UTC+8", 8*60*60)),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Incident Fixture Validation ===")
	fmt.Println()

	jsonRows, err := loadJSONRows(jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load json fixture: %v\n", err)
		return 1
	}
	csvRows, err := loadCSVRows(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load csv fixture: %v\n", err)
		return 1
	}

	jsonIncidents := normalizeAll(jsonRows)
	csvIncidents := normalizeAll(csvRows)

	phases := []*phase{
		validateParity(jsonIncidents, csvIncidents),
		validateIDs(jsonIncidents),
		validatePeriods(jsonIncidents),
		validateDatetimes(jsonIncidents),
		validateCoordinates(jsonIncidents),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-32s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d JSON, %d CSV\n", len(jsonIncidents), len(csvIncidents))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i >= 20 {
				fmt.Printf("  ... and %d more\n", len(p.errors)-i)
				break
			}
			fmt.Printf("  %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	return 0
}

// validateParity checks that both fixture files describe the same dataset:
// equal row counts and matching identifiers in the same order.
func validateParity(jsonIncidents, csvIncidents []domain.Incident) *phase {
	p := &phase{name: "json/csv parity"}

	if len(jsonIncidents) != len(csvIncidents) {
		p.errorf("row count mismatch: %d JSON vs %d CSV", len(jsonIncidents), len(csvIncidents))
		return p
	}
	for i := range jsonIncidents {
		if jsonIncidents[i].ID != csvIncidents[i].ID {
			p.errorf("row %d: id %q in JSON vs %q in CSV", i, jsonIncidents[i].ID, csvIncidents[i].ID)
		}
		if jsonIncidents[i].DateTime != csvIncidents[i].DateTime {
			p.errorf("row %d (%s): datetime %q in JSON vs %q in CSV", i, jsonIncidents[i].ID, jsonIncidents[i].DateTime, csvIncidents[i].DateTime)
		}
		if jsonIncidents[i].District != csvIncidents[i].District {
			p.errorf("row %d (%s): district %q in JSON vs %q in CSV", i, jsonIncidents[i].ID, jsonIncidents[i].District, csvIncidents[i].District)
		}
	}
	return p
}

func validateIDs(incidents []domain.Incident) *phase {
	p := &phase{name: "identifier uniqueness"}

	seen := map[string]int{}
	for i, in := range incidents {
		if in.ID == "" {
			p.errorf("row %d: empty id after normalization", i)
			continue
		}
		if prev, ok := seen[in.ID]; ok {
			p.errorf("row %d: id %q already used by row %d", i, in.ID, prev)
		}
		seen[in.ID] = i
	}
	return p
}

func validatePeriods(incidents []domain.Incident) *phase {
	p := &phase{name: "period membership"}

	valid := map[domain.Period]bool{domain.PeriodUnknown: true}
	for _, bucket := range domain.Periods {
		valid[bucket] = true
	}
	for i, in := range incidents {
		if !valid[in.Period] {
			p.errorf("row %d (%s): period %q is not a known bucket", i, in.ID, in.Period)
		}
	}
	return p
}

// validateDatetimes checks the composed datetime shape: empty (missing date)
// or parseable ISO-8601 with the +08:00 offset.
func validateDatetimes(incidents []domain.Incident) *phase {
	p := &phase{name: "datetime shape"}

	for i, in := range incidents {
		if in.DateTime == "" {
			continue
		}
		if !strings.HasSuffix(in.DateTime, "+08:00") {
			p.errorf("row %d (%s): datetime %q lacks the +08:00 offset", i, in.ID, in.DateTime)
			continue
		}
		if _, ok := in.When(); !ok {
			p.errorf("row %d (%s): datetime %q does not parse", i, in.ID, in.DateTime)
		}
	}
	return p
}

// validateCoordinates flags half pairs: a fixture row should carry both
// coordinates or neither.
func validateCoordinates(incidents []domain.Incident) *phase {
	p := &phase{name: "coordinate pairing"}

	for i, in := range incidents {
		if (in.Lat == nil) != (in.Lng == nil) {
			p.errorf("row %d (%s): incomplete coordinate pair", i, in.ID)
		}
	}
	return p
}

func normalizeAll(rows []domain.Record) []domain.Incident {
	incidents := make([]domain.Incident, 0, len(rows))
	for _, row := range rows {
		incidents = append(incidents, domain.Normalize(row))
	}
	return incidents
}

func loadJSONRows(path string) ([]domain.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []domain.Record
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func loadCSVRows(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []domain.Record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		blank := true
		for _, v := range fields {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}
		row := make(domain.Record, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[strings.TrimSpace(name)] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

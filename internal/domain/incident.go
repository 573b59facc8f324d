package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is the coarse time-of-day bucket assigned to an incident. It is
// always one of the fixed values below, never a raw input label.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodNoon      Period = "noon"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
	PeriodNight     Period = "night"
	PeriodMidnight  Period = "midnight"
	PeriodDawn      Period = "dawn"
	PeriodUnknown   Period = "unknown"
)

// Periods lists the selectable buckets in display order. PeriodUnknown is a
// normalization outcome, not a selectable option.
var Periods = []Period{
	PeriodMorning,
	PeriodNoon,
	PeriodAfternoon,
	PeriodEvening,
	PeriodNight,
	PeriodMidnight,
	PeriodDawn,
}

// ParsePeriod matches a request parameter against the bucket enumeration,
// case-insensitively. Unrecognized values report false.
func ParsePeriod(s string) (Period, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Periods {
		if string(p) == lower {
			return p, true
		}
	}
	return "", false
}

// Record is one raw input row: an arbitrary mapping of field names to
// primitive values. JSON rows may carry numbers for lat/lng; CSV rows carry
// strings for everything. Only the normalizer reads records; downstream code
// sees the canonical Incident.
type Record map[string]any

// Field returns the named value coerced to a trimmed string. Missing keys and
// nulls yield the empty string.
func (r Record) Field(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// firstField returns the first non-empty value among the given keys.
func (r Record) firstField(keys ...string) string {
	for _, k := range keys {
		if v := r.Field(k); v != "" {
			return v
		}
	}
	return ""
}

// Incident is the canonical geolocated event record produced by Normalize.
type Incident struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	DateTime     string   `json:"datetime,omitempty"` // ISO-8601 with +08:00 offset; empty when the date was missing
	Period       Period   `json:"period"`
	District     string   `json:"district"`
	DistrictAbbr string   `json:"district_abbr"`
	Location     string   `json:"location,omitempty"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	Category     string   `json:"category,omitempty"`
	Source       string   `json:"source,omitempty"`
	Notes        string   `json:"notes,omitempty"`

	// Raw keeps the unmodified input row for traceability.
	Raw Record `json:"-"`

	NormalizedAt time.Time `json:"-"`
}

// Plottable reports whether the incident carries a complete coordinate pair.
// Unplottable incidents stay in the dataset and in filter results; they are
// only excluded from map layers.
func (in Incident) Plottable() bool {
	return in.Lat != nil && in.Lng != nil
}

// When returns the parsed event time and whether parsing succeeded.
func (in Incident) When() (time.Time, bool) {
	if in.DateTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateTimeLayout, in.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

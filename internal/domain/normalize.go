package domain

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/openstreetarena/incident-map/internal/district"
)

const (
	// dateTimeLayout is the composed datetime shape; the dataset is pinned to
	// the UTC+8 offset.
	dateTimeLayout = "2006-01-02T15:04:05-07:00"
	tzSuffix       = "+08:00"

	// titlePlaceholder fills in for rows without a title.
	titlePlaceholder = "未命名事件"
)

var (
	timeHM  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	timeHMS = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}$`)
)

// periodLabels maps the dataset's short Chinese period labels to buckets.
var periodLabels = map[string]Period{
	"早":  PeriodMorning,
	"中":  PeriodNoon,
	"下":  PeriodAfternoon,
	"晚":  PeriodEvening,
	"夜":  PeriodNight,
	"半夜": PeriodMidnight,
	"凌晨": PeriodDawn,
}

// Normalize converts one raw row into a canonical Incident. Malformed fields
// are never fatal: bad values coerce to a safe default and the record is kept.
func Normalize(raw Record) Incident {
	abbr, full := district.Resolve(raw.firstField("district_abbr", "district"))

	title := raw.Field("title")
	if title == "" {
		title = titlePlaceholder
	}

	return Incident{
		ID:           normalizeID(raw.Field("id")),
		Title:        title,
		DateTime:     composeDateTime(raw.Field("date"), raw.Field("time")),
		Period:       normalizePeriod(raw.Field("period_zh")),
		District:     full,
		DistrictAbbr: abbr,
		Location:     raw.Field("location"),
		Lat:          parseCoord(raw["lat"]),
		Lng:          parseCoord(raw["lng"]),
		Category:     raw.Field("category"),
		Source:       raw.Field("source"),
		Notes:        raw.Field("notes"),
		Raw:          raw,
		NormalizedAt: clock.Now(),
	}
}

// composeDateTime joins separate date and time fields into a single
// "DATE T TIME +08:00" string. A missing date yields the empty string; a
// missing time defaults to midnight; "H:MM" extends to "H:MM:00"; anything
// still not matching "H:MM:SS" is forced to "00:00:00". Malformed time input
// is coerced rather than rejected.
func composeDateTime(dateStr, timeStr string) string {
	if dateStr == "" {
		return ""
	}
	t := timeStr
	if t == "" {
		t = "00:00"
	}
	if timeHM.MatchString(t) {
		t += ":00"
	}
	if !timeHMS.MatchString(t) {
		t = "00:00:00"
	}
	if len(t) == len("H:MM:SS") {
		t = "0" + t
	}
	return dateStr + "T" + t + tzSuffix
}

// normalizePeriod maps a short locale label to a bucket: exact match first,
// then the label's first rune, else unknown.
func normalizePeriod(label string) Period {
	if label == "" {
		return PeriodUnknown
	}
	if p, ok := periodLabels[label]; ok {
		return p
	}
	first, _ := firstRune(label)
	if p, ok := periodLabels[first]; ok {
		return p
	}
	return PeriodUnknown
}

func firstRune(s string) (string, bool) {
	for _, r := range s {
		return string(r), true
	}
	return "", false
}

// parseCoord coerces a raw value into a coordinate. Any non-finite result
// (NaN, ±Inf, missing, unparseable) becomes nil, never a number.
func parseCoord(v any) *float64 {
	var n float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// normalizeID keeps a supplied identifier, or synthesizes one. Uniqueness of
// synthesized identifiers is best-effort, not guaranteed.
func normalizeID(id string) string {
	if id != "" {
		return id
	}
	if u, err := uuid.NewRandom(); err == nil {
		return u.String()
	}
	return fmt.Sprintf("inc-%d-%04d", clock.Now().UnixMilli(), rand.Intn(10000))
}

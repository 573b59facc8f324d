package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		raw := Record{
			"id":            "inc-001",
			"title":         "旺角持械傷人",
			"date":          "2024-01-05",
			"time":          "9:30",
			"period_zh":     "早",
			"district_abbr": "ytm",
			"location":      "彌敦道",
			"lat":           22.3186,
			"lng":           114.1700,
			"category":      "assault",
			"source":        "https://example.com/report/1",
			"notes":         "目擊者三名",
		}

		in := Normalize(raw)

		assert.Equal(t, "inc-001", in.ID)
		assert.Equal(t, "旺角持械傷人", in.Title)
		assert.Equal(t, "2024-01-05T09:30:00+08:00", in.DateTime)
		assert.Equal(t, PeriodMorning, in.Period)
		assert.Equal(t, "Yau Tsim Mong", in.District)
		assert.Equal(t, "YTM", in.DistrictAbbr)
		assert.Equal(t, "彌敦道", in.Location)
		require.True(t, in.Plottable())
		assert.Equal(t, 22.3186, *in.Lat)
		assert.Equal(t, 114.1700, *in.Lng)
		assert.Equal(t, raw, in.Raw)
	})

	t.Run("empty row gets safe defaults", func(t *testing.T) {
		in := Normalize(Record{})

		assert.NotEmpty(t, in.ID)
		assert.Equal(t, "未命名事件", in.Title)
		assert.Empty(t, in.DateTime)
		assert.Equal(t, PeriodUnknown, in.Period)
		assert.Equal(t, "NA", in.District)
		assert.Equal(t, "NA", in.DistrictAbbr)
		assert.Nil(t, in.Lat)
		assert.Nil(t, in.Lng)
	})

	t.Run("district falls back to full field", func(t *testing.T) {
		in := Normalize(Record{"district": "ssp"})
		assert.Equal(t, "Sham Shui Po", in.District)
		assert.Equal(t, "SSP", in.DistrictAbbr)
	})

	t.Run("unregistered district passes through uppercased", func(t *testing.T) {
		in := Normalize(Record{"district_abbr": " zz "})
		assert.Equal(t, "ZZ", in.District)
		assert.Equal(t, "ZZ", in.DistrictAbbr)
	})

	t.Run("CSV-style string coordinates", func(t *testing.T) {
		in := Normalize(Record{"lat": "22.30", "lng": "114.17"})
		require.True(t, in.Plottable())
		assert.Equal(t, 22.30, *in.Lat)
	})

	t.Run("one missing coordinate keeps the other but is unplottable", func(t *testing.T) {
		in := Normalize(Record{"lat": "22.30"})
		assert.NotNil(t, in.Lat)
		assert.Nil(t, in.Lng)
		assert.False(t, in.Plottable())
	})

	t.Run("non-finite coordinates become nil", func(t *testing.T) {
		for _, v := range []any{"NaN", "Inf", "-Inf", "bogus", ""} {
			in := Normalize(Record{"lat": v, "lng": v})
			assert.Nil(t, in.Lat, "lat for %q", v)
			assert.Nil(t, in.Lng, "lng for %q", v)
		}
	})

	t.Run("supplied id is trimmed", func(t *testing.T) {
		in := Normalize(Record{"id": "  abc  "})
		assert.Equal(t, "abc", in.ID)
	})

	t.Run("generated ids are distinct", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			in := Normalize(Record{})
			assert.False(t, seen[in.ID], "duplicate id %s", in.ID)
			seen[in.ID] = true
		}
	})
}

func TestComposeDateTime(t *testing.T) {
	tests := []struct {
		name string
		date string
		time string
		want string
	}{
		{"date and H:MM time", "2024-01-05", "9:30", "2024-01-05T09:30:00+08:00"},
		{"full HH:MM:SS time", "2024-01-05", "21:15:42", "2024-01-05T21:15:42+08:00"},
		{"empty time defaults to midnight", "2024-01-05", "", "2024-01-05T00:00:00+08:00"},
		{"malformed time coerced not rejected", "2024-01-05", "bogus", "2024-01-05T00:00:00+08:00"},
		{"partial time coerced", "2024-01-05", "9", "2024-01-05T00:00:00+08:00"},
		{"missing date yields null", "", "9:30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, composeDateTime(tt.date, tt.time))
		})
	}
}

func TestNormalizePeriod(t *testing.T) {
	t.Run("exact labels", func(t *testing.T) {
		assert.Equal(t, PeriodMorning, normalizePeriod("早"))
		assert.Equal(t, PeriodMidnight, normalizePeriod("半夜"))
		assert.Equal(t, PeriodDawn, normalizePeriod("凌晨"))
	})

	t.Run("first rune match", func(t *testing.T) {
		assert.Equal(t, PeriodMorning, normalizePeriod("早上"))
		assert.Equal(t, PeriodEvening, normalizePeriod("晚間"))
	})

	t.Run("unrecognized label", func(t *testing.T) {
		assert.Equal(t, PeriodUnknown, normalizePeriod("週末"))
		assert.Equal(t, PeriodUnknown, normalizePeriod(""))
	})

	t.Run("output is always a member of the enumeration", func(t *testing.T) {
		members := map[Period]bool{PeriodUnknown: true}
		for _, p := range Periods {
			members[p] = true
		}
		for _, label := range []string{"早", "晚上", "midnight", "???", "x", "半", "夜半"} {
			assert.True(t, members[normalizePeriod(label)], "label %q", label)
		}
	})
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod("Morning")
	assert.True(t, ok)
	assert.Equal(t, PeriodMorning, p)

	// unknown is an outcome, not a selectable option
	_, ok = ParsePeriod("unknown")
	assert.False(t, ok)

	_, ok = ParsePeriod("brunch")
	assert.False(t, ok)
}

func TestRecordField(t *testing.T) {
	r := Record{"s": "  hi  ", "n": 3.5, "b": true, "nil": nil}
	assert.Equal(t, "hi", r.Field("s"))
	assert.Equal(t, "3.5", r.Field("n"))
	assert.Equal(t, "true", r.Field("b"))
	assert.Equal(t, "", r.Field("nil"))
	assert.Equal(t, "", r.Field("missing"))
}

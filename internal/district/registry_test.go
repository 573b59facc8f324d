package district

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantAbbr string
		wantFull string
	}{
		{"known code", "SSP", "SSP", "Sham Shui Po"},
		{"lowercase input", "ssp", "SSP", "Sham Shui Po"},
		{"whitespace trimmed", "  wc  ", "WC", "Wan Chai"},
		{"alias code", "CA", "CA", "Central and Western"},
		{"unknown code passes through", "XYZ", "XYZ", "XYZ"},
		{"empty input", "", NotAvailable, NotAvailable},
		{"blank input", "   ", NotAvailable, NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abbr, full := Resolve(tt.input)
			assert.Equal(t, tt.wantAbbr, abbr)
			assert.Equal(t, tt.wantFull, full)
		})
	}
}

func TestAbbr_FirstMappingWins(t *testing.T) {
	// CW and CA both map to Central and Western; the reverse table keeps CW
	// because it is listed first.
	abbr, ok := Abbr("Central and Western")
	assert.True(t, ok)
	assert.Equal(t, "CW", abbr)

	abbr, ok = Abbr("Yau Tsim Mong")
	assert.True(t, ok)
	assert.Equal(t, "YTM", abbr)
}

func TestAbbr_Unknown(t *testing.T) {
	_, ok := Abbr("Atlantis")
	assert.False(t, ok)
}

func TestBoundsFor(t *testing.T) {
	b, ok := BoundsFor("Wan Chai")
	assert.True(t, ok)
	assert.Equal(t, 22.2663, b.SouthWest.Lat)
	assert.Equal(t, 114.1907, b.NorthEast.Lng)

	// Aliased-only names without a box are simply unknown.
	_, ok = BoundsFor("Tseung Kwan O")
	assert.False(t, ok)
}

func TestBoundsFrom(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, ok := BoundsFrom(nil)
		assert.False(t, ok)
	})

	t.Run("single point", func(t *testing.T) {
		b, ok := BoundsFrom([]LatLng{{22.30, 114.17}})
		assert.True(t, ok)
		assert.Equal(t, b.SouthWest, b.NorthEast)
	})

	t.Run("encloses all points", func(t *testing.T) {
		b, ok := BoundsFrom([]LatLng{
			{22.30, 114.20},
			{22.25, 114.25},
			{22.35, 114.15},
		})
		assert.True(t, ok)
		assert.Equal(t, LatLng{22.25, 114.15}, b.SouthWest)
		assert.Equal(t, LatLng{22.35, 114.25}, b.NorthEast)
	})
}

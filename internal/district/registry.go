// Package district holds the static mapping between short district codes and
// full district names, plus the bounding boxes used for map framing. The
// tables are fixed for the process lifetime.
package district

import "strings"

// NotAvailable is the sentinel used when a record carries no district field.
const NotAvailable = "NA"

// mapping pairs a short code with its full name. Declared as a slice so the
// derived full→abbr table is built in a deterministic order: when several
// codes alias the same full name, the first one listed wins.
type mapping struct {
	Abbr string
	Full string
}

var mappings = []mapping{
	{"CW", "Central and Western"},
	{"EW", "Eastern"},
	{"SO", "Southern"},
	{"WC", "Wan Chai"},
	{"KT", "Kwun Tong"},
	{"KC", "Kowloon City"},
	{"SSP", "Sham Shui Po"},
	{"YTM", "Yau Tsim Mong"},
	{"WCY", "Wong Tai Sin"},
	{"IS", "Islands"},
	{"TW", "Tsuen Wan"},
	{"TM", "Tuen Mun"},
	{"YL", "Yuen Long"},
	{"ST", "Sha Tin"},
	{"TP", "Tai Po"},
	{"N", "North"},
	{"SK", "Sai Kung"},
	{"KCW", "Kwai Tsing"},
	{"TMK", "Tseung Kwan O"},
	{"SSPW", "Sham Shui Po West"},
	{"YLNW", "Yuen Long North West"},
	{"KTSE", "Kwun Tong South East"},
	{"CA", "Central and Western"}, // alias
	{"YM", "Yau Tsim Mong"},       // alias
	{"TPW", "Tai Po West"},
}

var (
	abbrToFull = make(map[string]string, len(mappings))
	fullToAbbr = make(map[string]string, len(mappings))
)

func init() {
	for _, m := range mappings {
		abbrToFull[m.Abbr] = m.Full
		if _, ok := fullToAbbr[m.Full]; !ok {
			fullToAbbr[m.Full] = m.Abbr
		}
	}
}

// LatLng is a WGS-84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a rectangular bounding box given by its south-west and
// north-east corners.
type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

var bounds = map[string]Bounds{
	"Central and Western": {LatLng{22.2604, 114.1208}, LatLng{22.2928, 114.1589}},
	"Eastern":             {LatLng{22.2676, 114.1985}, LatLng{22.3082, 114.2561}},
	"Southern":            {LatLng{22.2105, 114.1357}, LatLng{22.2528, 114.2156}},
	"Wan Chai":            {LatLng{22.2663, 114.1663}, LatLng{22.2869, 114.1907}},
	"Kwun Tong":           {LatLng{22.2839, 114.2205}, LatLng{22.3363, 114.2518}},
	"Kowloon City":        {LatLng{22.3073, 114.1745}, LatLng{22.3356, 114.2022}},
	"Sham Shui Po":        {LatLng{22.3195, 114.1498}, LatLng{22.3444, 114.1752}},
	"Yau Tsim Mong":       {LatLng{22.2905, 114.1583}, LatLng{22.3237, 114.1831}},
	"Wong Tai Sin":        {LatLng{22.3332, 114.1764}, LatLng{22.3622, 114.2166}},
	"Islands":             {LatLng{22.1493, 113.8649}, LatLng{22.3043, 114.2750}},
	"Tsuen Wan":           {LatLng{22.3375, 114.0821}, LatLng{22.3989, 114.1356}},
	"Tuen Mun":            {LatLng{22.3517, 113.9578}, LatLng{22.4321, 114.0138}},
	"Yuen Long":           {LatLng{22.4146, 113.9839}, LatLng{22.4936, 114.0982}},
	"Sha Tin":             {LatLng{22.3614, 114.1711}, LatLng{22.4285, 114.2426}},
	"Tai Po":              {LatLng{22.4164, 114.1425}, LatLng{22.5077, 114.2186}},
	"North":               {LatLng{22.4626, 114.0629}, LatLng{22.5641, 114.2059}},
	"Sai Kung":            {LatLng{22.3269, 114.2492}, LatLng{22.4725, 114.4056}},
	"Kwai Tsing":          {LatLng{22.3302, 114.0849}, LatLng{22.3797, 114.1461}},
}

// Resolve maps a raw district field to an (abbreviation, full name) pair.
// The input is trimmed and uppercased before lookup; codes absent from the
// table pass through verbatim as both abbreviation and full name. An empty
// input resolves to the NotAvailable sentinel.
func Resolve(input string) (abbr, full string) {
	upper := strings.ToUpper(strings.TrimSpace(input))
	if upper == "" {
		return NotAvailable, NotAvailable
	}
	if name, ok := abbrToFull[upper]; ok {
		return upper, name
	}
	return upper, upper
}

// FullName returns the full name for an already-normalized abbreviation.
func FullName(abbr string) (string, bool) {
	full, ok := abbrToFull[abbr]
	return full, ok
}

// Abbr returns the canonical abbreviation for a full district name. When
// several codes alias the name, the first mapping listed wins.
func Abbr(full string) (string, bool) {
	abbr, ok := fullToAbbr[full]
	return abbr, ok
}

// BoundsFor returns the framing box for a full district name, if one is known.
func BoundsFor(full string) (Bounds, bool) {
	b, ok := bounds[full]
	return b, ok
}

// BoundsFrom computes the smallest box enclosing the given points.
// Returns false when the slice is empty.
func BoundsFrom(points []LatLng) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		if p.Lat < b.SouthWest.Lat {
			b.SouthWest.Lat = p.Lat
		}
		if p.Lng < b.SouthWest.Lng {
			b.SouthWest.Lng = p.Lng
		}
		if p.Lat > b.NorthEast.Lat {
			b.NorthEast.Lat = p.Lat
		}
		if p.Lng > b.NorthEast.Lng {
			b.NorthEast.Lng = p.Lng
		}
	}
	return b, true
}

package domain

import "time"

// hongKong is the fixed dataset offset; month arithmetic for heat decay is
// evaluated in it so weights do not shift with the server's local zone.
var hongKong = time.FixedZone("UTC+8", 8*60*60)

// HeatWeight maps an incident datetime to a heatmap intensity, stepped down
// by whole-month recency: up to 3 months 1.0, up to 12 months 0.6, up to 24
// months 0.3, older 0.15. Missing and unparseable datetimes weigh 1.0 —
// undated records are treated as recent on the heat layer even though popups
// show a "not provided" placeholder for the same records.
func HeatWeight(datetime string) float64 {
	if datetime == "" {
		return 1
	}
	t, err := time.Parse(dateTimeLayout, datetime)
	if err != nil {
		return 1
	}
	return heatWeightAt(clock.Now(), t)
}

func heatWeightAt(now, event time.Time) float64 {
	now = now.In(hongKong)
	event = event.In(hongKong)
	months := (now.Year()-event.Year())*12 + int(now.Month()) - int(event.Month())
	switch {
	case months <= 3:
		return 1
	case months <= 12:
		return 0.6
	case months <= 24:
		return 0.3
	default:
		return 0.15
	}
}

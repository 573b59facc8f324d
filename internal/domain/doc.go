// Package domain models community-reported street incident data.
//
// # Data Source
//
// Incident rows originate from a community-maintained spreadsheet published as
// CSV, with local JSON/CSV snapshots checked in for offline development. Rows
// are loosely structured: every field may be missing, and malformed values are
// coerced rather than rejected so a single bad row never hides the rest of the
// dataset.
//
// # Dataset Conventions
//
// District format ("district_abbr", falling back to "district"):
//
//	Short uppercase codes, e.g. "YTM" → "Yau Tsim Mong". Several codes alias
//	the same district (e.g. "CA" and "CW"). Codes absent from the table pass
//	through verbatim; an empty field resolves to the "NA" sentinel. See
//	the district package for the full table.
//
// Date and time format ("date" + "time"):
//
//	Dates are "YYYY-MM-DD"; times are "H:MM" or "H:MM:SS" in local time. The
//	dataset is pinned to UTC+8, so both compose into
//	"YYYY-MM-DDTHH:MM:SS+08:00". A blank time means midnight; a time that
//	fits neither shape is forced to "00:00:00"; a blank date leaves the
//	datetime empty entirely. See [composeDateTime].
//
// Period labels ("period_zh"):
//
//	Single-character Chinese time-of-day labels: 早 (morning), 中 (noon),
//	下 (afternoon), 晚 (evening), 夜 (night), plus the two-character 半夜
//	(midnight) and 凌晨 (dawn). Longer free-form labels match on their first
//	character; anything else buckets as unknown.
//
// Coordinates ("lat", "lng"):
//
//	Decimal degrees, as JSON numbers or CSV strings. Each coordinate is
//	independently nullable; non-finite and unparseable values become null.
//	A record needs both coordinates to appear on a map layer, but it stays
//	in the dataset and in filter results either way.
//
// # ID Generation
//
// Supplied identifiers pass through untouched. Rows without one get a random
// UUID, so synthesized identifiers are stable only within a single load.
package domain

package engine

import (
	"time"

	"salesdash/internal/models"
)

const dayLayout = "2006-01-02"

// ParseDay parses a calendar day at day granularity.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FilterByRange returns the records whose date falls within [start, end]
// inclusive. Pure: the input slice is never mutated. An inverted range
// simply matches nothing, and a nil record list yields an empty result.
func FilterByRange(records []models.Record, start, end time.Time) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		d, ok := ParseDay(r.Date)
		if !ok {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Active picks the record list the aggregators should run over: the filtered
// subset when it has rows, otherwise the full dataset. This mirrors the
// dashboard behavior where every page falls back to all records until a
// filter produces matches.
func Active(all, filtered []models.Record) []models.Record {
	if len(filtered) > 0 {
		return filtered
	}
	return all
}

package engine

import (
	"testing"

	"salesdash/internal/models"
)

func TestFilterByRangeInclusiveBounds(t *testing.T) {
	// 1. Setup
	records := []models.Record{
		{Date: "2024-01-15", Category: "Furniture", Segment: "Consumer", Value: 100},
		{Date: "2024-02-01", Category: "Technology", Segment: "Consumer", Value: 200},
		{Date: "2024-02-28", Category: "Office Supplies", Segment: "Corporate", Value: 50},
		{Date: "2024-03-01", Category: "Technology", Segment: "Consumer", Value: 75},
	}
	start, _ := ParseDay("2024-02-01")
	end, _ := ParseDay("2024-02-28")

	// 2. Run
	filtered := FilterByRange(records, start, end)

	// 3. Assertions: both boundary days are included.
	if len(filtered) != 2 {
		t.Fatalf("expected 2 records, got %d", len(filtered))
	}
	var total float64
	for _, r := range filtered {
		total += r.Value
	}
	if total != 250 {
		t.Errorf("expected total 250, got %f", total)
	}

	cats := AggregateByCategory(filtered)
	if len(cats) != 2 || cats[0].Name != "Technology" || cats[1].Name != "Office Supplies" {
		t.Errorf("unexpected category breakdown: %+v", cats)
	}
	if cats[0].Sales != 200 || cats[1].Sales != 50 {
		t.Errorf("unexpected category sales: %+v", cats)
	}
}

func TestFilterByRangeInverted(t *testing.T) {
	records := []models.Record{
		{Date: "2024-02-10", Category: "Technology", Segment: "Consumer", Value: 10},
	}
	start, _ := ParseDay("2024-03-01")
	end, _ := ParseDay("2024-02-01")

	filtered := FilterByRange(records, start, end)

	if len(filtered) != 0 {
		t.Errorf("inverted range must match nothing, got %d records", len(filtered))
	}
}

func TestFilterByRangeSkipsBadDates(t *testing.T) {
	records := []models.Record{
		{Date: "not-a-date", Category: "Technology", Segment: "Consumer", Value: 10},
		{Date: "2024-02-10", Category: "Furniture", Segment: "Consumer", Value: 20},
	}
	start, _ := ParseDay("2024-01-01")
	end, _ := ParseDay("2024-12-31")

	filtered := FilterByRange(records, start, end)

	if len(filtered) != 1 || filtered[0].Value != 20 {
		t.Errorf("unparseable dates must be skipped, got %+v", filtered)
	}
}

func TestFilterByRangeIdempotent(t *testing.T) {
	records := []models.Record{
		{Date: "2024-02-10", Category: "Technology", Segment: "Consumer", Value: 10},
		{Date: "2024-05-01", Category: "Furniture", Segment: "Corporate", Value: 20},
	}
	start, _ := ParseDay("2024-02-01")
	end, _ := ParseDay("2024-02-28")

	once := FilterByRange(records, start, end)
	twice := FilterByRange(once, start, end)

	if len(once) != len(twice) {
		t.Errorf("filtering twice changed the result: %d vs %d", len(once), len(twice))
	}
	// The input slice must be untouched.
	if len(records) != 2 {
		t.Errorf("input slice was mutated, len %d", len(records))
	}
}

func TestActiveFallback(t *testing.T) {
	all := []models.Record{
		{Date: "2024-01-01", Category: "Technology", Segment: "Consumer", Value: 10},
	}

	if got := Active(all, nil); len(got) != 1 {
		t.Errorf("nil filtered must fall back to the full set, got %d", len(got))
	}
	if got := Active(all, []models.Record{}); len(got) != 1 {
		t.Errorf("empty filtered must fall back to the full set, got %d", len(got))
	}

	filtered := []models.Record{
		{Date: "2024-01-01", Category: "Furniture", Segment: "Consumer", Value: 5},
	}
	got := Active(all, filtered)
	if len(got) != 1 || got[0].Value != 5 {
		t.Errorf("non-empty filtered must win, got %+v", got)
	}
}

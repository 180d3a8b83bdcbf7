package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"salesdash/internal/models"
)

// PageSizeAll disables pagination: one page holding every filtered record.
const PageSizeAll = 0

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// TableState is the sort/page state machine behind the raw data table.
type TableState struct {
	SortField string
	SortDir   string
	Page      int
	PageSize  int
}

// NewTableState returns the dashboard defaults: date ascending, page 1 of 50.
func NewTableState() TableState {
	return TableState{SortField: "date", SortDir: SortAsc, Page: 1, PageSize: 50}
}

// SetSort selects a sort column; selecting the current column flips the
// direction instead.
func (s *TableState) SetSort(field string) {
	if s.SortField == field {
		if s.SortDir == SortAsc {
			s.SortDir = SortDesc
		} else {
			s.SortDir = SortAsc
		}
		return
	}
	s.SortField = field
	s.SortDir = SortAsc
}

// SetPageSize changes the page size and jumps back to the first page.
func (s *TableState) SetPageSize(size int) {
	s.PageSize = size
	s.Page = 1
}

// ParsePageSize accepts a positive integer or the "all" sentinel.
func ParsePageSize(v string) (int, error) {
	if strings.EqualFold(v, "all") {
		return PageSizeAll, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid page size %q", v)
	}
	return n, nil
}

// TotalPages computes the page count for a filtered record count. A count of
// zero yields zero pages, which makes every page move a no-op.
func (s TableState) TotalPages(count int) int {
	if count == 0 {
		return 0
	}
	size := s.PageSize
	if size == PageSizeAll {
		size = count
	}
	return (count + size - 1) / size
}

// ChangePage moves by delta pages, staying inside [1, totalPages]. Moves
// outside the bounds do nothing.
func (s *TableState) ChangePage(delta, count int) {
	next := s.Page + delta
	if next >= 1 && next <= s.TotalPages(count) {
		s.Page = next
	}
}

// SortAndPaginate slices the current page window out of the already-filtered
// records, then sorts that window. Sorting the page slice rather than the
// whole set matches the shipped dashboard, so sorted order is per page.
func (s TableState) SortAndPaginate(records []models.Record) []models.Record {
	start := 0
	end := len(records)
	if s.PageSize != PageSizeAll {
		start = (s.Page - 1) * s.PageSize
		if start > len(records) {
			start = len(records)
		}
		end = start + s.PageSize
		if end > len(records) {
			end = len(records)
		}
	}

	page := make([]models.Record, end-start)
	copy(page, records[start:end])
	sortRecords(page, s.SortField, s.SortDir)
	return page
}

// sortKey is the single place that maps a column name onto a record field,
// so the missing-field policy lives here rather than in each comparator.
func sortKey(r models.Record, field string) (str string, num float64, numeric bool) {
	switch field {
	case "value":
		return "", r.Value, true
	case "profit":
		return "", r.Profit, true
	case "quantity":
		return "", float64(r.Quantity), true
	case "shipping_days":
		return "", r.ShippingDays, true
	case "shipping_cost":
		return "", r.ShippingCost, true
	case "category":
		return r.Category, 0, false
	case "segment":
		return r.Segment, 0, false
	case "region":
		return r.Region, 0, false
	case "state":
		return r.State, 0, false
	case "city":
		return r.City, 0, false
	case "shipping_mode":
		return r.ShippingMode, 0, false
	case "customer_name":
		return r.CustomerName, 0, false
	case "product_name":
		return r.ProductName, 0, false
	default:
		return r.Date, 0, false
	}
}

func sortRecords(records []models.Record, field, dir string) {
	if field == "date" {
		sort.SliceStable(records, func(i, j int) bool {
			a, _ := ParseDay(records[i].Date)
			b, _ := ParseDay(records[j].Date)
			if dir == SortDesc {
				return a.After(b)
			}
			return a.Before(b)
		})
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		as, an, numeric := sortKey(records[i], field)
		bs, bn, _ := sortKey(records[j], field)
		if numeric {
			if dir == SortDesc {
				return an > bn
			}
			return an < bn
		}
		if dir == SortDesc {
			return as > bs
		}
		return as < bs
	})
}

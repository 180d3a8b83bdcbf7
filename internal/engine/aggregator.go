package engine

import (
	"math"
	"sort"

	"salesdash/internal/models"
)

// Aggregators are pure functions over a record slice. Buckets are built fresh
// on every call; nothing is cached or updated incrementally, so a filter
// change can never leave a stale bucket behind.

// AssumedMargin is applied when a dataset carries no profit data at all.
const AssumedMargin = 0.125

// Summarize computes the headline KPIs. If any record carries a non-zero
// profit the real sums are used; otherwise profit is estimated at the
// assumed 12.5% margin so datasets without profit data still render.
func Summarize(records []models.Record) models.KPI {
	var kpi models.KPI
	kpi.TotalOrders = len(records)

	hasProfit := false
	for _, r := range records {
		kpi.TotalSales += r.Value
		if r.Profit != 0 {
			hasProfit = true
		}
	}

	if hasProfit {
		for _, r := range records {
			kpi.TotalProfit += r.Profit
		}
		if kpi.TotalSales > 0 {
			kpi.ProfitMargin = kpi.TotalProfit / kpi.TotalSales * 100
		}
	} else {
		kpi.TotalProfit = kpi.TotalSales * AssumedMargin
		kpi.ProfitMargin = AssumedMargin * 100
	}
	return kpi
}

// --- Time aggregation ---

// AggregateByMonth groups records into "YYYY-MM" buckets, ascending.
func AggregateByMonth(records []models.Record) []models.PeriodBucket {
	return aggregateByPeriod(records, "2006-01")
}

// AggregateByDay groups records into "YYYY-MM-DD" buckets, ascending.
func AggregateByDay(records []models.Record) []models.PeriodBucket {
	return aggregateByPeriod(records, dayLayout)
}

func aggregateByPeriod(records []models.Record, layout string) []models.PeriodBucket {
	grouped := make(map[string]*models.PeriodBucket)

	for _, r := range records {
		d, ok := ParseDay(r.Date)
		if !ok {
			continue
		}
		key := d.Format(layout)
		b := grouped[key]
		if b == nil {
			b = &models.PeriodBucket{Period: key}
			grouped[key] = b
		}
		b.Sales += r.Value
		b.Profit += r.Profit
		b.Orders++
	}

	out := make([]models.PeriodBucket, 0, len(grouped))
	for _, b := range grouped {
		out = append(out, *b)
	}
	// Zero-padded keys sort lexicographically into chronological order.
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// --- Category / Segment aggregation ---

// AggregateByCategory groups by category value, "Unknown" when missing.
// Output order is first-seen insertion order, not magnitude order.
func AggregateByCategory(records []models.Record) []models.CategoryStat {
	grouped := make(map[string]*models.CategoryStat)
	order := make([]string, 0)

	for _, r := range records {
		key := orDefault(r.Category)
		s := grouped[key]
		if s == nil {
			s = &models.CategoryStat{Name: key}
			grouped[key] = s
			order = append(order, key)
		}
		s.Sales += r.Value
		s.Orders++
	}

	out := make([]models.CategoryStat, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out
}

// AggregateBySegment groups by segment value, first-seen order like
// AggregateByCategory.
func AggregateBySegment(records []models.Record) []models.SegmentStat {
	grouped := make(map[string]*models.SegmentStat)
	order := make([]string, 0)

	for _, r := range records {
		key := orDefault(r.Segment)
		s := grouped[key]
		if s == nil {
			s = &models.SegmentStat{Name: key}
			grouped[key] = s
			order = append(order, key)
		}
		s.Sales += r.Value
		s.Orders++
	}

	out := make([]models.SegmentStat, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out
}

// --- Region aggregation ---

type regionBucket struct {
	stat         models.RegionStat
	stateSeen    map[string]bool
	shippingDays []float64
	catOrder     []string
	segOrder     []string
}

// AggregateByRegion groups by region ("Unknown" when missing) and derives
// per-region averages and top sub-dimensions. Unlike the category/segment
// aggregators the final list is sorted descending by total sales.
func AggregateByRegion(records []models.Record) ([]models.RegionStat, models.RegionSummary) {
	grouped := make(map[string]*regionBucket)
	order := make([]string, 0)

	for _, r := range records {
		key := orDefault(r.Region)
		b := grouped[key]
		if b == nil {
			b = &regionBucket{
				stat: models.RegionStat{
					Name:          key,
					States:        []string{},
					CategorySales: make(map[string]float64),
					SegmentSales:  make(map[string]float64),
				},
				stateSeen: make(map[string]bool),
			}
			grouped[key] = b
			order = append(order, key)
		}

		b.stat.Sales += r.Value
		b.stat.Profit += r.Profit
		b.stat.Orders++

		state := orDefault(r.State)
		if !b.stateSeen[state] {
			b.stateSeen[state] = true
			b.stat.States = append(b.stat.States, state)
		}

		// Zero means no observation, not a same-day delivery.
		if r.ShippingDays != 0 {
			b.shippingDays = append(b.shippingDays, r.ShippingDays)
		}

		cat := orDefault(r.Category)
		if _, seen := b.stat.CategorySales[cat]; !seen {
			b.catOrder = append(b.catOrder, cat)
		}
		b.stat.CategorySales[cat] += r.Value

		seg := orDefault(r.Segment)
		if _, seen := b.stat.SegmentSales[seg]; !seen {
			b.segOrder = append(b.segOrder, seg)
		}
		b.stat.SegmentSales[seg] += r.Value
	}

	regions := make([]models.RegionStat, 0, len(order))
	for _, key := range order {
		b := grouped[key]
		b.stat.AvgShippingDays = mean(b.shippingDays)
		b.stat.TopCategory = topEntry(b.stat.CategorySales, b.catOrder)
		b.stat.TopSegment = topEntry(b.stat.SegmentSales, b.segOrder)
		regions = append(regions, b.stat)
	}

	sort.SliceStable(regions, func(i, j int) bool { return regions[i].Sales > regions[j].Sales })

	summary := models.RegionSummary{TotalRegions: len(regions)}
	if len(regions) > 0 {
		summary.TopSalesRegion = &regions[0]
		top := 0
		var daysTotal float64
		for i := range regions {
			if regions[i].Profit > regions[top].Profit {
				top = i
			}
			daysTotal += regions[i].AvgShippingDays
		}
		summary.TopProfitRegion = &regions[top]
		summary.AvgShippingDays = daysTotal / float64(len(regions))
	}
	return regions, summary
}

// --- Shipping-mode aggregation ---

type shippingBucket struct {
	stat          models.ShippingModeStat
	shippingDays  []float64
	shippingCosts []float64
	catOrder      []string
}

// AggregateByShippingMode groups by shipping mode, symmetric to the region
// aggregator, with cost totals on top. The summary's fastest mode considers
// only modes with at least one shipping-day observation.
func AggregateByShippingMode(records []models.Record) ([]models.ShippingModeStat, models.ShippingSummary) {
	grouped := make(map[string]*shippingBucket)
	order := make([]string, 0)

	for _, r := range records {
		key := orDefault(r.ShippingMode)
		b := grouped[key]
		if b == nil {
			b = &shippingBucket{
				stat: models.ShippingModeStat{
					Name:          key,
					CategorySales: make(map[string]float64),
				},
			}
			grouped[key] = b
			order = append(order, key)
		}

		b.stat.Orders++
		b.stat.Sales += r.Value
		b.stat.Profit += r.Profit

		if r.ShippingDays > 0 {
			b.shippingDays = append(b.shippingDays, r.ShippingDays)
		}
		if r.ShippingCost > 0 {
			b.shippingCosts = append(b.shippingCosts, r.ShippingCost)
		}

		cat := orDefault(r.Category)
		if _, seen := b.stat.CategorySales[cat]; !seen {
			b.catOrder = append(b.catOrder, cat)
		}
		b.stat.CategorySales[cat] += r.Value
	}

	modes := make([]models.ShippingModeStat, 0, len(order))
	for _, key := range order {
		b := grouped[key]
		b.stat.AvgShippingDays = mean(b.shippingDays)
		b.stat.AvgShippingCost = mean(b.shippingCosts)
		b.stat.TotalShippingCost = sum(b.shippingCosts)
		b.stat.TopCategory = topEntry(b.stat.CategorySales, b.catOrder)
		modes = append(modes, b.stat)
	}

	sort.SliceStable(modes, func(i, j int) bool { return modes[i].Sales > modes[j].Sales })

	summary := models.ShippingSummary{FastestMode: "Unknown"}
	fastest := math.Inf(1)
	var daysTotal float64
	for _, m := range modes {
		summary.TotalOrders += m.Orders
		summary.TotalShippingCost += m.TotalShippingCost
		daysTotal += m.AvgShippingDays
		if m.AvgShippingDays > 0 && m.AvgShippingDays < fastest {
			fastest = m.AvgShippingDays
			summary.FastestMode = m.Name
		}
	}
	if len(modes) > 0 {
		summary.AvgShippingDays = daysTotal / float64(len(modes))
	}
	return modes, summary
}

// --- helpers ---

func orDefault(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

func sum(vals []float64) float64 {
	var total float64
	for _, v := range vals {
		total += v
	}
	return total
}

// mean returns 0 for an empty list; averages never produce NaN.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return sum(vals) / float64(len(vals))
}

// topEntry picks the key with the largest summed value. Ties go to the key
// seen first in iteration order.
func topEntry(sums map[string]float64, order []string) string {
	if len(order) == 0 {
		return "Unknown"
	}
	best := order[0]
	for _, key := range order[1:] {
		if sums[key] > sums[best] {
			best = key
		}
	}
	return best
}

package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"salesdash/internal/models"
)

// Page builders: each one recomputes its aggregates in full from the record
// slice it is handed. No cross-page caching, no diffing — at thousands of
// records a full pass is cheaper than being clever.

// BuildKPIDisplay applies the compact display contract to the headline KPIs.
func BuildKPIDisplay(kpi models.KPI) models.KPIDisplay {
	return models.KPIDisplay{
		TotalSales:   FormatCompactCurrency(kpi.TotalSales),
		TotalOrders:  FormatCompactNumber(float64(kpi.TotalOrders)),
		TotalProfit:  FormatCompactCurrency(kpi.TotalProfit),
		ProfitMargin: FormatPercent(kpi.ProfitMargin),
	}
}

// BuildOverview assembles the landing page: KPIs, monthly trend, category
// breakdown and segment distribution.
func BuildOverview(records []models.Record) models.OverviewPage {
	kpi := Summarize(records)

	return models.OverviewPage{
		KPI:      kpi,
		Display:  BuildKPIDisplay(kpi),
		Monthly:  trendSeries(AggregateByMonth(records), monthLabel),
		Category: dimensionSeries(AggregateByCategory(records)),
		Segments: segmentSlices(AggregateBySegment(records)),
	}
}

func BuildGeography(records []models.Record) models.GeographyPage {
	regions, summary := AggregateByRegion(records)

	display := models.GeographyDisplay{
		TotalRegions:        strconv.Itoa(summary.TotalRegions),
		TopRegionSales:      "--",
		TopRegionName:       "--",
		TopRegionProfit:     "--",
		TopRegionProfitName: "--",
		AvgShippingDays:     "--",
	}
	if summary.TopSalesRegion != nil {
		display.TopRegionSales = FormatCompactCurrency(summary.TopSalesRegion.Sales)
		display.TopRegionName = summary.TopSalesRegion.Name
	}
	if summary.TopProfitRegion != nil {
		display.TopRegionProfit = FormatCompactCurrency(summary.TopProfitRegion.Profit)
		display.TopRegionProfitName = summary.TopProfitRegion.Name
	}
	if summary.AvgShippingDays != 0 {
		display.AvgShippingDays = formatDays(summary.AvgShippingDays)
	}

	table := models.TableData{
		Columns: []string{"Region", "States", "Sales", "Profit", "Orders", "Avg Ship Days", "Top Category"},
	}
	for _, r := range regions {
		table.Rows = append(table.Rows, []string{
			r.Name,
			strings.Join(r.States, ", "),
			FormatCompactCurrency(r.Sales),
			FormatCompactCurrency(r.Profit),
			FormatCompactNumber(float64(r.Orders)),
			formatDays(r.AvgShippingDays),
			r.TopCategory,
		})
	}

	return models.GeographyPage{Regions: regions, Summary: summary, Display: display, Table: table}
}

func BuildProducts(records []models.Record) models.ProductsPage {
	cats := AggregateByCategory(records)

	pie := make([]models.PieSlice, 0, len(cats))
	table := models.TableData{Columns: []string{"Category", "Sales", "Orders"}}
	for _, c := range cats {
		pie = append(pie, models.PieSlice{Name: c.Name, Value: c.Sales})
		table.Rows = append(table.Rows, []string{
			c.Name,
			FormatCurrency(c.Sales, 2),
			FormatNumber(c.Orders),
		})
	}

	return models.ProductsPage{Category: dimensionSeries(cats), Pie: pie, Table: table}
}

func BuildCustomers(records []models.Record) models.CustomersPage {
	segs := AggregateBySegment(records)

	pie := make([]models.PieSlice, 0, len(segs))
	table := models.TableData{Columns: []string{"Segment", "Sales", "Orders"}}
	for _, s := range segs {
		pie = append(pie, models.PieSlice{Name: s.Name, Value: s.Sales})
		table.Rows = append(table.Rows, []string{
			s.Name,
			FormatCurrency(s.Sales, 2),
			FormatNumber(s.Orders),
		})
	}

	return models.CustomersPage{Segments: segs, Pie: pie, Table: table}
}

func BuildTime(records []models.Record) models.TimePage {
	days := AggregateByDay(records)

	table := models.TableData{Columns: []string{"Date", "Sales", "Profit", "Orders"}}
	for _, d := range days {
		table.Rows = append(table.Rows, []string{
			dayLabel(d.Period),
			FormatCurrency(d.Sales, 2),
			FormatCurrency(d.Profit, 2),
			FormatNumber(d.Orders),
		})
	}

	return models.TimePage{Daily: trendSeries(days, dayLabel), Table: table}
}

func BuildOperations(records []models.Record) models.OperationsPage {
	modes, summary := AggregateByShippingMode(records)

	display := models.OperationsDisplay{
		TotalOrders:       FormatCompactNumber(float64(summary.TotalOrders)),
		AvgShippingDays:   "--",
		TotalShippingCost: FormatCompactCurrency(summary.TotalShippingCost),
		FastestMode:       "--",
	}
	if summary.AvgShippingDays != 0 {
		display.AvgShippingDays = formatDays(summary.AvgShippingDays)
	}
	if summary.FastestMode != "Unknown" {
		display.FastestMode = summary.FastestMode
	}

	table := models.TableData{
		Columns: []string{"Ship Mode", "Orders", "Sales", "Profit", "Avg Ship Days", "Ship Cost", "Top Category"},
	}
	for _, m := range modes {
		table.Rows = append(table.Rows, []string{
			m.Name,
			FormatCompactNumber(float64(m.Orders)),
			FormatCompactCurrency(m.Sales),
			FormatCompactCurrency(m.Profit),
			formatDays(m.AvgShippingDays),
			FormatCompactCurrency(m.TotalShippingCost),
			m.TopCategory,
		})
	}

	return models.OperationsPage{Modes: modes, Summary: summary, Display: display, Table: table}
}

// BuildRecordsPage renders one page of the raw data table from the filtered
// subset, applying the table controller's slice-then-sort behavior.
func BuildRecordsPage(filtered []models.Record, st TableState) models.RecordsPage {
	page := st.SortAndPaginate(filtered)

	rows := make([][]string, 0, len(page))
	for _, r := range page {
		rows = append(rows, []string{
			FormatDate(r.Date),
			r.Category,
			r.Segment,
			FormatCurrency(r.Value, 0),
			dashUnless(r.Profit != 0, func() string { return FormatCurrency(r.Profit, 0) }),
			dashUnless(r.Quantity != 0, func() string { return FormatNumber(r.Quantity) }),
			dashUnless(r.Region != "", func() string { return r.Region }),
			dashUnless(r.ShippingMode != "", func() string { return r.ShippingMode }),
		})
	}

	start := 0
	if st.PageSize != PageSizeAll {
		start = (st.Page - 1) * st.PageSize
		if start > len(filtered) {
			start = len(filtered)
		}
	}
	info := "Showing 0-0"
	if len(rows) > 0 {
		info = fmt.Sprintf("Showing %d-%d", start+1, start+len(rows))
	}

	return models.RecordsPage{
		Rows:         rows,
		TotalRecords: len(filtered),
		Displayed:    len(rows),
		Page:         st.Page,
		TotalPages:   st.TotalPages(len(filtered)),
		PageInfo:     info,
	}
}

// --- series helpers ---

func trendSeries(buckets []models.PeriodBucket, label func(string) string) models.TrendSeries {
	s := models.TrendSeries{
		Labels:  make([]string, 0, len(buckets)),
		Sales:   make([]float64, 0, len(buckets)),
		Profits: make([]float64, 0, len(buckets)),
		Orders:  make([]int, 0, len(buckets)),
	}
	for _, b := range buckets {
		s.Labels = append(s.Labels, label(b.Period))
		s.Sales = append(s.Sales, b.Sales)
		s.Profits = append(s.Profits, b.Profit)
		s.Orders = append(s.Orders, b.Orders)
	}
	return s
}

func dimensionSeries(cats []models.CategoryStat) models.DimensionSeries {
	s := models.DimensionSeries{
		Names:  make([]string, 0, len(cats)),
		Sales:  make([]float64, 0, len(cats)),
		Orders: make([]int, 0, len(cats)),
	}
	for _, c := range cats {
		s.Names = append(s.Names, c.Name)
		s.Sales = append(s.Sales, c.Sales)
		s.Orders = append(s.Orders, c.Orders)
	}
	return s
}

func segmentSlices(segs []models.SegmentStat) []models.PieSlice {
	out := make([]models.PieSlice, 0, len(segs))
	for _, s := range segs {
		out = append(out, models.PieSlice{Name: s.Name, Value: s.Sales})
	}
	return out
}

// monthLabel turns "2024-01" into "Jan 2024".
func monthLabel(period string) string {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return period
	}
	return t.Format("Jan 2006")
}

// dayLabel turns "2024-01-05" into "Jan 5".
func dayLabel(period string) string {
	t, ok := ParseDay(period)
	if !ok {
		return period
	}
	return t.Format("Jan 2")
}

func formatDays(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + " days"
}

func dashUnless(present bool, format func() string) string {
	if !present {
		return "--"
	}
	return format()
}

package models

// Record is one order line item. Date, Category, Segment and Value are
// guaranteed by the data producer; everything else is optional enrichment.
type Record struct {
	Date         string  `json:"date"`
	Category     string  `json:"category"`
	Segment      string  `json:"segment"`
	Value        float64 `json:"value"`
	Profit       float64 `json:"profit,omitempty"`
	ProfitMargin float64 `json:"profit_margin,omitempty"`
	Quantity     int     `json:"quantity,omitempty"`
	Region       string  `json:"region,omitempty"`
	State        string  `json:"state,omitempty"`
	City         string  `json:"city,omitempty"`
	PostalCode   string  `json:"postal_code,omitempty"`
	ShippingMode string  `json:"shipping_mode,omitempty"`
	ShippingDays float64 `json:"shipping_days,omitempty"`
	ShippingCost float64 `json:"shipping_cost,omitempty"`
	CustomerName string  `json:"customer_name,omitempty"`
	ProductName  string  `json:"product_name,omitempty"`
}

// FieldList mirrors the producer's declared schema.
type FieldList struct {
	Required []string `json:"required,omitempty"`
	Optional []string `json:"optional,omitempty"`
}

type Meta struct {
	GeneratedAt    string    `json:"generatedAt,omitempty"`
	EnhancedAt     string    `json:"enhancedAt,omitempty"`
	Source         string    `json:"source,omitempty"`
	DatasourceLUID string    `json:"datasourceLuid,omitempty"`
	Months         string    `json:"months,omitempty"`
	TotalRecords   int       `json:"totalRecords,omitempty"`
	Fields         FieldList `json:"fields,omitempty"`
}

type Dataset struct {
	Meta    Meta     `json:"meta"`
	Records []Record `json:"records"`
}

// --- Aggregate buckets ---

// PeriodBucket is one month or day of accumulated metrics.
// Period is a zero-padded "YYYY-MM" or "YYYY-MM-DD" key.
type PeriodBucket struct {
	Period string  `json:"period"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
	Orders int     `json:"orders"`
}

type CategoryStat struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type SegmentStat struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type RegionStat struct {
	Name            string             `json:"name"`
	States          []string           `json:"states"`
	Sales           float64            `json:"sales"`
	Profit          float64            `json:"profit"`
	Orders          int                `json:"orders"`
	AvgShippingDays float64            `json:"avgShippingDays"`
	TopCategory     string             `json:"topCategory"`
	TopSegment      string             `json:"topSegment"`
	CategorySales   map[string]float64 `json:"categorySales,omitempty"`
	SegmentSales    map[string]float64 `json:"segmentSales,omitempty"`
}

type RegionSummary struct {
	TotalRegions    int         `json:"totalRegions"`
	TopSalesRegion  *RegionStat `json:"topSalesRegion,omitempty"`
	TopProfitRegion *RegionStat `json:"topProfitRegion,omitempty"`
	AvgShippingDays float64     `json:"avgShippingDays"`
}

type ShippingModeStat struct {
	Name              string             `json:"name"`
	Orders            int                `json:"orders"`
	Sales             float64            `json:"sales"`
	Profit            float64            `json:"profit"`
	AvgShippingDays   float64            `json:"avgShippingDays"`
	TotalShippingCost float64            `json:"totalShippingCost"`
	AvgShippingCost   float64            `json:"avgShippingCost"`
	TopCategory       string             `json:"topCategory"`
	CategorySales     map[string]float64 `json:"categorySales,omitempty"`
}

type ShippingSummary struct {
	TotalOrders       int     `json:"totalOrders"`
	AvgShippingDays   float64 `json:"avgShippingDays"`
	TotalShippingCost float64 `json:"totalShippingCost"`
	FastestMode       string  `json:"fastestMode"`
}

// KPI holds the headline totals shown at the top of the dashboard.
type KPI struct {
	TotalSales   float64 `json:"totalSales"`
	TotalOrders  int     `json:"totalOrders"`
	TotalProfit  float64 `json:"totalProfit"`
	ProfitMargin float64 `json:"profitMargin"`
}

// KPIDisplay is the KPI formatted per the display contract.
type KPIDisplay struct {
	TotalSales   string `json:"totalSales"`
	TotalOrders  string `json:"totalOrders"`
	TotalProfit  string `json:"totalProfit"`
	ProfitMargin string `json:"profitMargin"`
}

// --- Render-ready payloads ---
// The renderer (echarts on the client) gets plain series and pre-formatted
// table cells; it never reaches back into aggregation.

// TrendSeries is a time axis plus aligned metric arrays, ready for charting.
type TrendSeries struct {
	Labels  []string  `json:"labels"`
	Sales   []float64 `json:"sales"`
	Profits []float64 `json:"profits"`
	Orders  []int     `json:"orders"`
}

// DimensionSeries is a category-style axis plus aligned metric arrays.
type DimensionSeries struct {
	Names  []string  `json:"names"`
	Sales  []float64 `json:"sales"`
	Orders []int     `json:"orders"`
}

// PieSlice is one wedge of a distribution chart.
type PieSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TableData is a rendered table: column headers plus formatted string cells.
type TableData struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type OverviewPage struct {
	KPI      KPI             `json:"kpi"`
	Display  KPIDisplay      `json:"display"`
	Monthly  TrendSeries     `json:"monthly"`
	Category DimensionSeries `json:"category"`
	Segments []PieSlice      `json:"segments"`
}

type GeographyDisplay struct {
	TotalRegions        string `json:"totalRegions"`
	TopRegionSales      string `json:"topRegionSales"`
	TopRegionName       string `json:"topRegionName"`
	TopRegionProfit     string `json:"topRegionProfit"`
	TopRegionProfitName string `json:"topRegionProfitName"`
	AvgShippingDays     string `json:"avgShippingDays"`
}

type GeographyPage struct {
	Regions []RegionStat     `json:"regions"`
	Summary RegionSummary    `json:"summary"`
	Display GeographyDisplay `json:"display"`
	Table   TableData        `json:"table"`
}

type ProductsPage struct {
	Category DimensionSeries `json:"category"`
	Pie      []PieSlice      `json:"pie"`
	Table    TableData       `json:"table"`
}

type CustomersPage struct {
	Segments []SegmentStat `json:"segments"`
	Pie      []PieSlice    `json:"pie"`
	Table    TableData     `json:"table"`
}

type TimePage struct {
	Daily TrendSeries `json:"daily"`
	Table TableData   `json:"table"`
}

type OperationsDisplay struct {
	TotalOrders       string `json:"totalOrders"`
	AvgShippingDays   string `json:"avgShippingDays"`
	TotalShippingCost string `json:"totalShippingCost"`
	FastestMode       string `json:"fastestMode"`
}

type OperationsPage struct {
	Modes   []ShippingModeStat `json:"modes"`
	Summary ShippingSummary    `json:"summary"`
	Display OperationsDisplay  `json:"display"`
	Table   TableData          `json:"table"`
}

// RecordsPage is one page of the raw data table plus paging metadata.
type RecordsPage struct {
	Rows         [][]string `json:"rows"`
	TotalRecords int        `json:"totalRecords"`
	Displayed    int        `json:"displayed"`
	Page         int        `json:"page"`
	TotalPages   int        `json:"totalPages"`
	PageInfo     string     `json:"pageInfo"`
}

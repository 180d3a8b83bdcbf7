package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"salesdash/internal/engine"
	"salesdash/internal/models"
)

func newTestServer(ds *models.Dataset) *echo.Echo {
	e := echo.New()
	e.JSONSerializer = JSONSerializer{}
	store := engine.NewStore()
	if ds != nil {
		store.SetData(ds, "latest.json")
	}
	NewHandler(store).RegisterRoutes(e)
	return e
}

func testDataset() *models.Dataset {
	return &models.Dataset{
		Meta: models.Meta{Source: "tableau", TotalRecords: 4},
		Records: []models.Record{
			{Date: "2024-01-05", Category: "Technology", Segment: "Consumer", Value: 1000, Profit: 200},
			{Date: "2024-01-20", Category: "Furniture", Segment: "Corporate", Value: 500, Profit: 75},
			{Date: "2024-02-10", Category: "Technology", Segment: "Consumer", Value: 300, Profit: 60},
			{Date: "2024-03-01", Category: "Office Supplies", Segment: "Home Office", Value: 50, Profit: 5},
		},
	}
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEndpointsBeforeDataLoads(t *testing.T) {
	// 1. Setup: no dataset loaded yet.
	e := newTestServer(nil)

	// 2. Run / 3. Assertions: every endpoint answers 503.
	for _, path := range []string{"/api/meta", "/api/summary", "/api/overview", "/api/records"} {
		rec := doGet(e, path)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", path, rec.Code)
		}
	}
}

func TestGetSummaryWithRange(t *testing.T) {
	// 1. Setup
	e := newTestServer(testDataset())

	// 2. Run
	rec := doGet(e, "/api/summary?start=2024-01-01&end=2024-01-31")

	// 3. Assertions
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		KPI     models.KPI        `json:"kpi"`
		Display models.KPIDisplay `json:"display"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.KPI.TotalSales != 1500 || body.KPI.TotalOrders != 2 {
		t.Errorf("unexpected KPIs: %+v", body.KPI)
	}
	if body.Display.TotalSales != "$1.5K" {
		t.Errorf("unexpected display: %+v", body.Display)
	}
}

func TestGetSummaryEmptyMatchDegradesToZero(t *testing.T) {
	// The summary endpoint works on the filtered subset directly; a range
	// with no matches yields zeros rather than falling back.
	e := newTestServer(testDataset())

	rec := doGet(e, "/api/summary?start=2030-01-01&end=2030-12-31")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		KPI models.KPI `json:"kpi"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.KPI.TotalSales != 0 || body.KPI.TotalOrders != 0 {
		t.Errorf("expected zero KPIs, got %+v", body.KPI)
	}
}

func TestGetOverviewFallsBackOnEmptyMatch(t *testing.T) {
	// Page endpoints fall back to the full dataset when the range matches
	// nothing.
	e := newTestServer(testDataset())

	rec := doGet(e, "/api/overview?start=2030-01-01&end=2030-12-31")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page models.OverviewPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.KPI.TotalOrders != 4 {
		t.Errorf("expected full-dataset fallback (4 orders), got %+v", page.KPI)
	}
}

func TestSingleDateBoundRejected(t *testing.T) {
	e := newTestServer(testDataset())

	for _, target := range []string{
		"/api/summary?start=2024-01-01",
		"/api/summary?end=2024-01-31",
	} {
		rec := doGet(e, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestInvalidDateRejected(t *testing.T) {
	e := newTestServer(testDataset())

	rec := doGet(e, "/api/summary?start=yesterday&end=2024-01-31")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetRecordsPagination(t *testing.T) {
	// 1. Setup
	e := newTestServer(testDataset())

	// 2. Run: page size 2, second page.
	rec := doGet(e, "/api/records?size=2&page=2")

	// 3. Assertions
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page models.RecordsPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.TotalRecords != 4 || page.TotalPages != 2 || page.Page != 2 {
		t.Errorf("unexpected metadata: %+v", page)
	}
	if page.Displayed != 2 || len(page.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", page.Displayed)
	}
	if page.PageInfo != "Showing 3-4" {
		t.Errorf("expected Showing 3-4, got %s", page.PageInfo)
	}
}

func TestGetRecordsPageClampedToLast(t *testing.T) {
	e := newTestServer(testDataset())

	rec := doGet(e, "/api/records?size=2&page=99")

	var page models.RecordsPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Page != 2 {
		t.Errorf("expected clamp to page 2, got %d", page.Page)
	}
}

func TestGetRecordsBadPageSize(t *testing.T) {
	e := newTestServer(testDataset())

	rec := doGet(e, "/api/records?size=banana")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetRecordsSortParams(t *testing.T) {
	e := newTestServer(testDataset())

	rec := doGet(e, "/api/records?sort=value&dir=desc&size=all")

	var page models.RecordsPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if len(page.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(page.Rows))
	}
	if page.Rows[0][3] != "$1,000" {
		t.Errorf("expected the largest value first, got %s", page.Rows[0][3])
	}
	if page.TotalPages != 1 {
		t.Errorf("size=all must be a single page, got %d", page.TotalPages)
	}
}

func TestGetMeta(t *testing.T) {
	e := newTestServer(testDataset())

	rec := doGet(e, "/api/meta")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Meta        models.Meta `json:"meta"`
		Source      string      `json:"source"`
		LastUpdated string      `json:"lastUpdated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Meta.Source != "tableau" || body.Source != "latest.json" {
		t.Errorf("unexpected meta payload: %+v", body)
	}
	if body.LastUpdated == "" {
		t.Error("lastUpdated must be populated")
	}
}

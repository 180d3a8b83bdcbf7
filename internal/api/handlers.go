package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"salesdash/internal/engine"
	"salesdash/internal/models"
)

// Handler serves the dashboard payloads. It is registered before the data
// finishes loading; until then every endpoint reports 503.
type Handler struct {
	store *engine.Store
}

func NewHandler(store *engine.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/meta", h.GetMeta)
	api.GET("/summary", h.GetSummary)
	api.GET("/overview", h.GetOverview)
	api.GET("/geography", h.GetGeography)
	api.GET("/products", h.GetProducts)
	api.GET("/customers", h.GetCustomers)
	api.GET("/time", h.GetTime)
	api.GET("/operations", h.GetOperations)
	api.GET("/records", h.GetRecords)
}

// querySubset reads the optional start/end date range and returns the
// filtered subset plus the full record list. Supplying only one bound is the
// "empty date input" error; the filter is not applied.
func (h *Handler) querySubset(c echo.Context) (filtered, all []models.Record, err error) {
	if !h.store.Ready() {
		return nil, nil, echo.NewHTTPError(http.StatusServiceUnavailable, "Failed to load data: no data files found")
	}
	all = h.store.Records()

	startStr := c.QueryParam("start")
	endStr := c.QueryParam("end")
	if startStr == "" && endStr == "" {
		return all, all, nil
	}
	if startStr == "" || endStr == "" {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Please select start and end dates")
	}

	start, ok := engine.ParseDay(startStr)
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid start date %q", startStr))
	}
	end, ok := engine.ParseDay(endStr)
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid end date %q", endStr))
	}

	return engine.FilterByRange(all, start, end), all, nil
}

// --- HANDLERS ---

func (h *Handler) GetMeta(c echo.Context) error {
	if !h.store.Ready() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Failed to load data: no data files found")
	}
	meta, source, loadedAt := h.store.Meta()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"meta":        meta,
		"source":      source,
		"loadedAt":    loadedAt,
		"lastUpdated": fmt.Sprintf("Last updated: %s (%s)", loadedAt.Format(time.DateTime), source),
	})
}

// GetSummary reports the headline KPIs over the filtered subset. An empty
// match is valid and degrades to zeros.
func (h *Handler) GetSummary(c echo.Context) error {
	filtered, _, err := h.querySubset(c)
	if err != nil {
		return err
	}
	kpi := engine.Summarize(filtered)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"kpi":     kpi,
		"display": engine.BuildKPIDisplay(kpi),
	})
}

func (h *Handler) GetOverview(c echo.Context) error {
	filtered, all, err := h.querySubset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildOverview(engine.Active(all, filtered)))
}

func (h *Handler) GetGeography(c echo.Context) error {
	filtered, all, err := h.querySubset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildGeography(engine.Active(all, filtered)))
}

func (h *Handler) GetProducts(c echo.Context) error {
	filtered, all, err := h.querySubset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildProducts(engine.Active(all, filtered)))
}

func (h *Handler) GetCustomers(c echo.Context) error {
	filtered, all, err := h.querySubset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildCustomers(engine.Active(all, filtered)))
}

func (h *Handler) GetTime(c echo.Context) error {
	filtered, all, err := h.querySubset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildTime(engine.Active(all, filtered)))
}

func (h *Handler) GetOperations(c echo.Context) error {
	filtered, all, err := h.querySubset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildOperations(engine.Active(all, filtered)))
}

// GetRecords serves one page of the raw data table. The table works on the
// filtered subset directly — no full-dataset fallback here, an empty range
// shows an empty table.
func (h *Handler) GetRecords(c echo.Context) error {
	filtered, _, err := h.querySubset(c)
	if err != nil {
		return err
	}

	st := engine.NewTableState()
	if field := c.QueryParam("sort"); field != "" {
		st.SortField = field
	}
	if dir := c.QueryParam("dir"); dir == engine.SortDesc {
		st.SortDir = engine.SortDesc
	}
	if sizeStr := c.QueryParam("size"); sizeStr != "" {
		size, err := engine.ParsePageSize(sizeStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		st.SetPageSize(size)
	}
	if pageStr := c.QueryParam("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			page = 1
		}
		if total := st.TotalPages(len(filtered)); total > 0 && page > total {
			page = total
		}
		st.Page = page
	}

	return c.JSON(http.StatusOK, engine.BuildRecordsPage(filtered, st))
}

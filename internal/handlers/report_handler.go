package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go-parfait-pos/internal/database"
	"go-parfait-pos/internal/models"
	"go-parfait-pos/internal/report"

	"github.com/gin-gonic/gin"
)

// DashboardData is the analytics payload behind the admin dashboard and
// the staff "my sales" screen.
type DashboardData struct {
	Cursor     report.Cursor       `json:"cursor"`
	KPI        report.KPI          `json:"kpi"`
	Trend      []report.TrendPoint `json:"trend"`
	Delta      report.Delta        `json:"delta"`
	DeltaLabel string              `json:"deltaLabel"`
	Sales      []report.Record     `json:"sales"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	DayOptions []int               `json:"dayOptions"`
}

// --- GET: /api/reports/dashboard?year=&month=&day=&page= ---
// Everything is re-derived from the full snapshot on each call; there is
// no incremental state to get out of sync with the live stream.
func (a *API) GetDashboard(c *gin.Context) {
	records, ok := a.snapshot(c)
	if !ok {
		return
	}

	now := time.Now()
	cursor := cursorFromQuery(c, now)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	trend := report.Trend(records, now)
	filtered := report.FilterByCursor(records, cursor)
	pageRecords, totalPages := report.Paginate(filtered, page)
	delta := report.MonthDelta(trend)

	c.JSON(http.StatusOK, DashboardData{
		Cursor:     cursor,
		KPI:        report.Rollup(records, cursor),
		Trend:      trend,
		Delta:      delta,
		DeltaLabel: delta.String(),
		Sales:      pageRecords,
		Page:       page,
		TotalPages: totalPages,
		DayOptions: report.DayOptions(),
	})
}

// --- GET: /api/reports/export?year=&month=&day= ---
// Exports the cursor day's filtered listing, not the whole dataset.
func (a *API) ExportSales(c *gin.Context) {
	records, ok := a.snapshot(c)
	if !ok {
		return
	}

	cursor := cursorFromQuery(c, time.Now())
	filtered := report.FilterByCursor(records, cursor)
	csv := report.ExportCSV(filtered)

	c.Header("Content-Disposition", `attachment; filename="`+report.ExportFilename(cursor)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// snapshot fetches the full set of sales visible to the viewer: own
// records for staff, everything for admins.
func (a *API) snapshot(c *gin.Context) ([]report.Record, bool) {
	var (
		sales []models.Sale
		err   error
	)
	if isAdmin(c) {
		sales, err = database.AllSales(a.DB)
	} else {
		sales, err = database.SalesForUser(a.DB, currentUserID(c))
	}
	if err != nil {
		storeError(c, "fetch sales", err)
		return nil, false
	}
	return database.ToRecords(sales), true
}

// cursorFromQuery reads the three-part date cursor, defaulting each part
// to today.
func cursorFromQuery(c *gin.Context, now time.Time) report.Cursor {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil || day < 1 || day > 31 {
		day = now.Day()
	}
	return report.Cursor{Year: year, Month: month, Day: day}
}

// Package report derives dashboard figures from a snapshot of sale records.
// It holds no incremental state: every live-update notification re-runs the
// same pure functions over the full current snapshot.
package report

import (
	"fmt"
	"sort"
	"time"
)

// Record is the aggregation view of a sale. Date may be a plain
// "YYYY-MM-DD" string, a timestamp string, or empty (legacy rows),
// in which case CreatedAt stands in.
type Record struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserEmail   string    `json:"userEmail,omitempty"`
	Product     string    `json:"product"`
	Flavor      string    `json:"flavor"`
	Unit        int       `json:"unit"`
	Price       float64   `json:"price"`
	Total       float64   `json:"total"`
	PaymentMode string    `json:"paymentMode"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"` // "HH:MM:SS" or empty
	CreatedAt   time.Time `json:"createdAt"`
}

// Cursor is the admin-selected (year, month, day) driving KPIs and the listing.
type Cursor struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
	Day   int `json:"day"`   // 1-31
}

func (c Cursor) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month, c.Day)
}

// ExtractDate normalizes a record's date to "YYYY-MM-DD".
// A timestamp string keeps only its date part; an empty date falls back to
// CreatedAt in local time. Returns false when no date can be resolved, which
// excludes the record from every aggregate.
func ExtractDate(r Record) (string, bool) {
	if d := r.Date; d != "" {
		if len(d) > 10 {
			d = d[:10]
		}
		if !validDate(d) {
			return "", false
		}
		return d, true
	}
	if r.CreatedAt.IsZero() {
		return "", false
	}
	return r.CreatedAt.Local().Format("2006-01-02"), true
}

func validDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

// KPI holds the day/month/year roll-up for a cursor date. Matching is
// hierarchical: a record counted for the day also counts for month and year.
type KPI struct {
	DayTotal   float64 `json:"dayTotal"`
	DayCount   int     `json:"dayCount"`
	MonthTotal float64 `json:"monthTotal"`
	MonthCount int     `json:"monthCount"`
	YearTotal  float64 `json:"yearTotal"`
	YearCount  int     `json:"yearCount"`
}

// Rollup computes the KPI totals for the cursor date. Records with no
// resolvable date are dropped, never reported.
func Rollup(records []Record, c Cursor) KPI {
	day := c.String()
	month := day[:8] // "YYYY-MM-" prefix
	year := day[:5]  // "YYYY-" prefix

	var k KPI
	for _, r := range records {
		d, ok := ExtractDate(r)
		if !ok {
			continue
		}
		if d[:5] != year {
			continue
		}
		k.YearTotal += r.Total
		k.YearCount++
		if d[:8] != month {
			continue
		}
		k.MonthTotal += r.Total
		k.MonthCount++
		if d == day {
			k.DayTotal += r.Total
			k.DayCount++
		}
	}
	return k
}

// TrendPoint is one month bucket of the revenue chart.
type TrendPoint struct {
	Label string  `json:"label"` // e.g. "Mar 24"
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// TrendMonths is the fixed width of the revenue chart.
const TrendMonths = 6

// Trend buckets every record by (year, month) and returns exactly six
// buckets ending at now's month. The series is anchored to now, not the
// cursor, so changing the cursor never shifts the chart.
func Trend(records []Record, now time.Time) []TrendPoint {
	sums := make(map[string]float64)
	for _, r := range records {
		d, ok := ExtractDate(r)
		if !ok {
			continue
		}
		sums[d[:7]] += r.Total // "YYYY-MM" key
	}

	points := make([]TrendPoint, 0, TrendMonths)
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := TrendMonths - 1; i >= 0; i-- {
		m := anchor.AddDate(0, -i, 0)
		points = append(points, TrendPoint{
			Label: m.Format("Jan 06"),
			Year:  m.Year(),
			Month: int(m.Month()),
			Total: sums[m.Format("2006-01")],
		})
	}
	return points
}

// DeltaKind classifies the month-over-month movement.
type DeltaKind string

const (
	DeltaNeutral DeltaKind = "neutral" // both months zero
	DeltaNew     DeltaKind = "new"     // from zero to something
	DeltaUp      DeltaKind = "up"
	DeltaDown    DeltaKind = "down"
)

// Delta is the month-over-month comparison of the last two trend buckets.
type Delta struct {
	Kind    DeltaKind `json:"kind"`
	Percent float64   `json:"percent"` // signed; meaningless for neutral/new
}

// Classify compares the previous and current month totals. A zero previous
// month with positive current reports "new" instead of dividing by zero.
func Classify(previous, current float64) Delta {
	switch {
	case previous == 0 && current == 0:
		return Delta{Kind: DeltaNeutral}
	case previous == 0:
		return Delta{Kind: DeltaNew}
	}
	pct := (current - previous) / previous * 100
	if pct < 0 {
		return Delta{Kind: DeltaDown, Percent: pct}
	}
	return Delta{Kind: DeltaUp, Percent: pct}
}

// String renders the delta the way the dashboard badge shows it.
func (d Delta) String() string {
	switch d.Kind {
	case DeltaNeutral:
		return "0%"
	case DeltaNew:
		return "new"
	case DeltaDown:
		return fmt.Sprintf("%.1f%%", d.Percent)
	default:
		return fmt.Sprintf("+%.1f%%", d.Percent)
	}
}

// MonthDelta classifies the last two buckets of a trend series.
func MonthDelta(trend []TrendPoint) Delta {
	if len(trend) < 2 {
		return Delta{Kind: DeltaNeutral}
	}
	return Classify(trend[len(trend)-2].Total, trend[len(trend)-1].Total)
}

// FilterByCursor returns the records dated exactly on the cursor date,
// sorted by time-of-day descending. Missing times compare as the empty
// string, so they sort last. The sort is stable to keep store order for ties.
func FilterByCursor(records []Record, c Cursor) []Record {
	day := c.String()
	var out []Record
	for _, r := range records {
		if d, ok := ExtractDate(r); ok && d == day {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time > out[j].Time
	})
	return out
}

// PageSize is the fixed listing page length.
const PageSize = 5

// Paginate slices records into the 1-based page. Out-of-range pages clamp
// to the nearest valid page; totalPages is at least 1 even when empty.
func Paginate(records []Record, page int) (pageRecords []Record, totalPages int) {
	totalPages = (len(records) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start >= len(records) {
		return nil, totalPages
	}
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], totalPages
}

// DayOptions always enumerates 1-31 regardless of the selected month's
// length; picking day 31 in a 30-day month just matches nothing.
func DayOptions() []int {
	days := make([]int, 31)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// View couples a cursor with a current page, mirroring the dashboard's
// selection state. Changing the cursor resets the page to 1.
type View struct {
	Cursor Cursor
	Page   int
}

// NewView starts at now's date, page 1.
func NewView(now time.Time) *View {
	return &View{
		Cursor: Cursor{Year: now.Year(), Month: int(now.Month()), Day: now.Day()},
		Page:   1,
	}
}

func (v *View) SetCursor(c Cursor) {
	if c != v.Cursor {
		v.Cursor = c
		v.Page = 1
	}
}

func (v *View) SetPage(p int) {
	if p >= 1 {
		v.Page = p
	}
}

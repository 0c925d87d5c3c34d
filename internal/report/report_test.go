package report

import (
	"fmt"
	"testing"
	"time"
)

func rec(date, tod string, total float64) Record {
	return Record{ID: "r", Date: date, Time: tod, Total: total}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		in   Record
		want string
		ok   bool
	}{
		{"plain date", rec("2024-03-05", "", 0), "2024-03-05", true},
		{"timestamp keeps date part", rec("2024-03-05T10:22:00Z", "", 0), "2024-03-05", true},
		{"garbage excluded", rec("not-a-date", "", 0), "", false},
		{"short garbage excluded", rec("2024-3", "", 0), "", false},
		{"empty with no created-at excluded", Record{}, "", false},
		{
			"empty falls back to created-at",
			Record{CreatedAt: time.Date(2024, 3, 5, 23, 0, 0, 0, time.Local)},
			"2024-03-05", true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDate(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ExtractDate = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTimestampAndPlainDateCountIdentically(t *testing.T) {
	c := Cursor{Year: 2024, Month: 3, Day: 5}
	k := Rollup([]Record{
		rec("2024-03-05T10:22:00Z", "", 100),
		rec("2024-03-05", "", 100),
	}, c)
	if k.DayCount != 2 || k.DayTotal != 200 {
		t.Errorf("day = (%d, %v), want (2, 200)", k.DayCount, k.DayTotal)
	}
}

func TestRollupSameDayCollapses(t *testing.T) {
	// All records on the cursor day: the three granularities must agree.
	c := Cursor{Year: 2024, Month: 3, Day: 5}
	records := []Record{
		rec("2024-03-05", "09:00:00", 400),
		rec("2024-03-05", "10:00:00", 600),
		rec("2024-03-05", "", 250),
	}
	k := Rollup(records, c)

	if k.DayCount != k.MonthCount || k.MonthCount != k.YearCount {
		t.Errorf("counts differ: day=%d month=%d year=%d", k.DayCount, k.MonthCount, k.YearCount)
	}
	if k.DayTotal != k.MonthTotal || k.MonthTotal != k.YearTotal {
		t.Errorf("totals differ: day=%v month=%v year=%v", k.DayTotal, k.MonthTotal, k.YearTotal)
	}
	if k.DayCount != 3 || k.DayTotal != 1250 {
		t.Errorf("day = (%d, %v), want (3, 1250)", k.DayCount, k.DayTotal)
	}
}

func TestRollupHierarchicalInclusion(t *testing.T) {
	c := Cursor{Year: 2024, Month: 3, Day: 5}
	records := []Record{
		rec("2024-03-05", "", 100), // day + month + year
		rec("2024-03-20", "", 100), // month + year
		rec("2024-07-01", "", 100), // year only
		rec("2023-03-05", "", 100), // excluded entirely
	}
	k := Rollup(records, c)

	if k.DayCount != 1 || k.MonthCount != 2 || k.YearCount != 3 {
		t.Errorf("counts = (%d, %d, %d), want (1, 2, 3)", k.DayCount, k.MonthCount, k.YearCount)
	}
	if k.DayTotal != 100 || k.MonthTotal != 200 || k.YearTotal != 300 {
		t.Errorf("totals = (%v, %v, %v), want (100, 200, 300)", k.DayTotal, k.MonthTotal, k.YearTotal)
	}
}

func TestDatelessRecordExcludedEverywhere(t *testing.T) {
	ghost := Record{Total: 9999} // no date, no created-at
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	c := Cursor{Year: 2024, Month: 3, Day: 15}

	k := Rollup([]Record{ghost}, c)
	if k.DayCount+k.MonthCount+k.YearCount != 0 {
		t.Errorf("dateless record leaked into KPIs: %+v", k)
	}
	for _, p := range Trend([]Record{ghost}, now) {
		if p.Total != 0 {
			t.Errorf("dateless record leaked into trend bucket %s", p.Label)
		}
	}
	if got := FilterByCursor([]Record{ghost}, c); len(got) != 0 {
		t.Errorf("dateless record leaked into listing: %d rows", len(got))
	}
}

func TestTrendAnchoredToNow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []Record{
		rec("2024-03-01", "", 500),
		rec("2024-01-10", "", 300),
		rec("2023-10-02", "", 700), // before the 6-month window
	}

	trend := Trend(records, now)
	if len(trend) != TrendMonths {
		t.Fatalf("len(trend) = %d, want %d", len(trend), TrendMonths)
	}

	// Labels strictly increasing in time, last bucket is the real current month.
	for i := 1; i < len(trend); i++ {
		prev := time.Date(trend[i-1].Year, time.Month(trend[i-1].Month), 1, 0, 0, 0, 0, time.UTC)
		cur := time.Date(trend[i].Year, time.Month(trend[i].Month), 1, 0, 0, 0, 0, time.UTC)
		if !cur.After(prev) {
			t.Errorf("bucket %d (%s) not after bucket %d (%s)", i, trend[i].Label, i-1, trend[i-1].Label)
		}
	}
	last := trend[len(trend)-1]
	if last.Year != 2024 || last.Month != 3 {
		t.Errorf("last bucket = %d-%02d, want 2024-03", last.Year, last.Month)
	}
	if last.Label != "Mar 24" {
		t.Errorf("last label = %q, want %q", last.Label, "Mar 24")
	}
	if last.Total != 500 {
		t.Errorf("last total = %v, want 500", last.Total)
	}
	if first := trend[0]; first.Year != 2023 || first.Month != 10 || first.Total != 700 {
		t.Errorf("first bucket = %+v, want Oct 23 with 700", first)
	}

	// Empty months resolve to zero, not missing buckets.
	if trend[1].Total != 0 || trend[2].Total != 0 {
		t.Errorf("empty months = (%v, %v), want zeros", trend[1].Total, trend[2].Total)
	}
}

func TestTrendIgnoresCursor(t *testing.T) {
	// The cursor never appears in the trend computation; assert the anchor
	// follows now across a year boundary.
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	trend := Trend(nil, now)
	first, last := trend[0], trend[len(trend)-1]
	if last.Year != 2025 || last.Month != 1 {
		t.Errorf("last bucket = %d-%02d, want 2025-01", last.Year, last.Month)
	}
	if first.Year != 2024 || first.Month != 8 {
		t.Errorf("first bucket = %d-%02d, want 2024-08", first.Year, first.Month)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		prev, cur float64
		kind      DeltaKind
		str       string
	}{
		{0, 0, DeltaNeutral, "0%"},
		{0, 500, DeltaNew, "new"},
		{1000, 1500, DeltaUp, "+50.0%"},
		{1000, 500, DeltaDown, "-50.0%"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_to_%v", tt.prev, tt.cur), func(t *testing.T) {
			d := Classify(tt.prev, tt.cur)
			if d.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", d.Kind, tt.kind)
			}
			if d.String() != tt.str {
				t.Errorf("String() = %q, want %q", d.String(), tt.str)
			}
		})
	}
}

func TestMonthDelta(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	records := []Record{
		rec("2024-02-10", "", 1000),
		rec("2024-03-01", "", 1500),
	}
	d := MonthDelta(Trend(records, now))
	if d.Kind != DeltaUp || d.String() != "+50.0%" {
		t.Errorf("delta = %+v (%s), want +50.0%%", d, d)
	}
}

func TestFilterByCursorSortsTimeDescending(t *testing.T) {
	c := Cursor{Year: 2024, Month: 3, Day: 5}
	records := []Record{
		rec("2024-03-05", "08:15:00", 1),
		rec("2024-03-05", "", 2), // no time sorts last
		rec("2024-03-05", "17:40:12", 3),
		rec("2024-03-06", "09:00:00", 4), // other day, filtered out
	}

	got := FilterByCursor(records, c)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantTimes := []string{"17:40:12", "08:15:00", ""}
	for i, w := range wantTimes {
		if got[i].Time != w {
			t.Errorf("got[%d].Time = %q, want %q", i, got[i].Time, w)
		}
	}
}

func TestPaginate(t *testing.T) {
	records := make([]Record, 12)
	for i := range records {
		records[i] = rec("2024-03-05", fmt.Sprintf("%02d:00:00", i), 1)
	}

	sizes := []int{5, 5, 2}
	for page, want := range sizes {
		got, total := Paginate(records, page+1)
		if total != 3 {
			t.Fatalf("totalPages = %d, want 3", total)
		}
		if len(got) != want {
			t.Errorf("page %d size = %d, want %d", page+1, len(got), want)
		}
	}

	// Out-of-range pages clamp instead of panicking.
	if got, _ := Paginate(records, 99); len(got) != 2 {
		t.Errorf("clamped page size = %d, want 2", len(got))
	}
	if _, total := Paginate(nil, 1); total != 1 {
		t.Errorf("empty totalPages = %d, want 1", total)
	}
}

func TestViewCursorChangeResetsPage(t *testing.T) {
	v := NewView(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	v.SetPage(3)
	if v.Page != 3 {
		t.Fatalf("page = %d, want 3", v.Page)
	}

	v.SetCursor(Cursor{Year: 2024, Month: 3, Day: 6})
	if v.Page != 1 {
		t.Errorf("page after cursor change = %d, want 1", v.Page)
	}

	// Re-selecting the same cursor keeps the page.
	v.SetPage(2)
	v.SetCursor(v.Cursor)
	if v.Page != 2 {
		t.Errorf("page after no-op cursor set = %d, want 2", v.Page)
	}
}

func TestDayOptions(t *testing.T) {
	days := DayOptions()
	if len(days) != 31 || days[0] != 1 || days[30] != 31 {
		t.Errorf("DayOptions = %v", days)
	}
}

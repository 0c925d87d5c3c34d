package report

import (
	"strings"
	"testing"
)

func TestExportCSVQuoting(t *testing.T) {
	records := []Record{
		{
			ID:          "abc-123",
			UserID:      "7",
			UserEmail:   "alice@x.com",
			Product:     `Parfait "Deluxe"`, // embedded quotes must double
			Flavor:      "Mango",
			Unit:        2,
			Price:       750,
			Total:       1500,
			PaymentMode: "POS",
			Date:        "2024-03-05",
			Time:        "10:22:00",
		},
	}

	out := ExportCSV(records)
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}

	if !strings.HasPrefix(lines[0], `"id","date","time","product"`) {
		t.Errorf("header = %q", lines[0])
	}

	row := lines[1]
	if !strings.Contains(row, `"Parfait ""Deluxe"""`) {
		t.Errorf("product not quote-escaped: %q", row)
	}

	// Date column is wrapped in a formula so spreadsheets leave it alone.
	if !strings.Contains(row, `"=""2024-03-05"""`) {
		t.Errorf("date not formula-wrapped: %q", row)
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	values := []string{
		`plain`,
		`with "quotes"`,
		`""`,
		`trailing"`,
		`comma, separated`,
		``,
	}
	for _, v := range values {
		got, ok := Unquote(quote(v))
		if !ok || got != v {
			t.Errorf("round trip of %q = (%q, %v)", v, got, ok)
		}
	}

	if _, ok := Unquote(`no quotes`); ok {
		t.Error("Unquote accepted unquoted input")
	}
}

func TestExportFilename(t *testing.T) {
	c := Cursor{Year: 2024, Month: 3, Day: 5}
	if got := ExportFilename(c); got != "sales-2024-03-05.csv" {
		t.Errorf("filename = %q", got)
	}
}

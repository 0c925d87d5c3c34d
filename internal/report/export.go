package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Columns is the fixed export column order.
var Columns = []string{
	"id", "date", "time", "product", "flavor",
	"unit", "price", "total", "paymentMode", "userId", "userEmail",
}

// ExportCSV serializes the filtered listing (not the whole dataset) as
// comma-delimited text. Every field is quoted with embedded quotes doubled;
// the date column is additionally wrapped in an ="..." formula so
// spreadsheets don't rewrite it into their own date format.
func ExportCSV(records []Record) string {
	var b strings.Builder

	for i, col := range Columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(col))
	}
	b.WriteString("\r\n")

	for _, r := range records {
		date, _ := ExtractDate(r)
		fields := []string{
			r.ID,
			`="` + date + `"`,
			r.Time,
			r.Product,
			r.Flavor,
			strconv.Itoa(r.Unit),
			formatAmount(r.Price),
			formatAmount(r.Total),
			r.PaymentMode,
			r.UserID,
			r.UserEmail,
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(f))
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

// ExportFilename embeds the cursor date, e.g. "sales-2024-03-05.csv".
func ExportFilename(c Cursor) string {
	return fmt.Sprintf("sales-%s.csv", c)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Unquote reverses quote: strips the outer quotes and undoubles embedded
// ones. Used by tests and import tooling; returns false for malformed input.
func Unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`), true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

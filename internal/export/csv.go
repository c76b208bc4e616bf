// Package export formats the transaction sequence as delimited text for
// download.
package export

import (
	"strconv"
	"strings"
	"time"

	"hisab/internal/core"
)

const header = "Date,Type,Category,Amount"

// CSV renders the sequence in its current order (newest first), one row per
// transaction: locale-formatted date, upper-cased type, category, plain
// decimal amount. Fields are joined verbatim with commas — a category
// containing a comma corrupts its row. Known limitation, kept for
// compatibility with existing exports.
func CSV(seq []core.Transaction) string {
	rows := make([]string, 0, len(seq)+1)
	rows = append(rows, header)
	for _, t := range seq {
		rows = append(rows, strings.Join([]string{
			t.Date.Display(),
			strings.ToUpper(string(t.Kind)),
			t.Category,
			amount(t.Amount),
		}, ","))
	}
	return strings.Join(rows, "\n")
}

// Filename is expenses_<ISO-date>.csv for the given moment.
func Filename(now time.Time) string {
	return "expenses_" + now.Format("2006-01-02") + ".csv"
}

func amount(m core.Money) string {
	if m.Cents%100 == 0 {
		return strconv.FormatInt(m.Cents/100, 10)
	}
	return strconv.FormatFloat(m.Rupees(), 'f', 2, 64)
}

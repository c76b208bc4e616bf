package core

import (
	"fmt"
	"strconv"
)

// FormatINR renders cents as a rupee string with Indian digit grouping
// (₹12,34,567.89): the last three integer digits form one group, the rest
// pair off in twos. Whole-rupee amounts omit the paise, matching the
// en-IN locale output of toLocaleString.
func FormatINR(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	rupees := cents / 100
	paise := cents % 100

	s := groupIndian(strconv.FormatInt(rupees, 10))
	if paise != 0 {
		s += fmt.Sprintf(".%02d", paise)
	}
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}

// SignedINR prefixes the amount with + for income and - for expense, the
// way the transaction list displays it.
func SignedINR(t Transaction) string {
	if t.Kind == Income {
		return "+" + FormatINR(t.Amount.Cents)
	}
	return "-" + FormatINR(t.Amount.Cents)
}

// Display renders the date as DD/MM/YYYY for list rows and CSV export.
func (d Date) Display() string {
	t := d.Time()
	if t.IsZero() {
		return string(d)
	}
	return t.Format("02/01/2006")
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	out := ""
	for _, g := range groups {
		out += g + ","
	}
	return out + tail
}

package core

// Aggregates are pure single-pass scans over the given sequence. They are
// recomputed from scratch after every mutation; at personal-ledger scale
// memoization buys nothing.

// TotalIncome sums the amounts of all income transactions.
func TotalIncome(seq []Transaction) Money {
	var cents int64
	for _, t := range seq {
		if t.Kind == Income {
			cents += t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// TotalExpense sums the amounts of all expense transactions.
func TotalExpense(seq []Transaction) Money {
	var cents int64
	for _, t := range seq {
		if t.Kind == Expense {
			cents += t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// Balance is income minus expense; it may be negative.
func Balance(seq []Transaction) Money {
	return Money{Cents: TotalIncome(seq).Cents - TotalExpense(seq).Cents}
}

// ExpenseByCategory maps category label to the summed expense amount.
// Categories without expenses are absent, not present with zero.
func ExpenseByCategory(seq []Transaction) map[string]Money {
	out := make(map[string]Money)
	for _, t := range seq {
		if t.Kind != Expense {
			continue
		}
		m := out[t.Category]
		m.Cents += t.Amount.Cents
		out[t.Category] = m
	}
	return out
}

// FilterByMonth returns the subsequence whose date starts with the given
// year-month token (e.g. "2024-03"), preserving relative order. An empty
// token returns the sequence unchanged. This is a prefix match on the
// canonical date string, not calendar-range logic.
func FilterByMonth(seq []Transaction, month string) []Transaction {
	if month == "" {
		return seq
	}
	var out []Transaction
	for _, t := range seq {
		if len(t.Date) >= len(month) && string(t.Date[:len(month)]) == month {
			out = append(out, t)
		}
	}
	return out
}

// Dataset is the declarative input of the chart collaborator: parallel
// label, value and color slices for a proportional breakdown.
type Dataset struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// ChartDataset builds the expense-breakdown dataset from a sequence, one
// slice per category in first-seen order. Known categories keep their table
// color; the rest cycle through the palette.
func ChartDataset(seq []Transaction) Dataset {
	totals := ExpenseByCategory(seq)

	var labels []string
	seen := make(map[string]bool)
	for _, t := range seq {
		if t.Kind != Expense || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		labels = append(labels, t.Category)
	}

	pal := palette()
	ds := Dataset{}
	for i, label := range labels {
		color, ok := categoryColors[label]
		if !ok {
			color = pal[i%len(pal)]
		}
		ds.Labels = append(ds.Labels, label)
		ds.Values = append(ds.Values, totals[label].Rupees())
		ds.Colors = append(ds.Colors, color)
	}
	return ds
}

package core

import "sort"

// FallbackColor is the neutral color used when a transaction references a
// category that no longer exists.
const FallbackColor = "#cbd5e1"

// FallbackCategoryName labels the synthetic bucket for unresolved
// categories.
const FallbackCategoryName = "Outros"

// PendingWindowDays is the forward window for the bills-to-pay badge.
const PendingWindowDays = 3

type (
	// MonthSummary aggregates the transactions of one calendar month.
	MonthSummary struct {
		Year         int
		Month        int // 1-12
		Transactions []Transaction
		TotalIncome  Money
		TotalExpense Money
		Balance      int64 // cents, income minus expense
	}

	// CategoryAmount is one slice of the expense distribution.
	CategoryAmount struct {
		CategoryID string
		Name       string
		Color      string
		Amount     Money
	}

	// MonthFlow is one point of the twelve-point yearly series.
	MonthFlow struct {
		Month   int // 1-12
		Income  Money
		Expense Money
	}
)

// SummarizeMonth filters transactions to the given calendar month and year
// and totals them per type. Summation is exact cents arithmetic; rounding
// happens only at formatted-output time.
func SummarizeMonth(transactions []Transaction, year, month int) MonthSummary {
	s := MonthSummary{Year: year, Month: month}
	for _, t := range transactions {
		if t.Date.Year() != year || t.Date.Month() != month {
			continue
		}
		s.Transactions = append(s.Transactions, t)
		switch t.Type {
		case Income:
			s.TotalIncome.Cents += t.Amount.Cents
		case Expense:
			s.TotalExpense.Cents += t.Amount.Cents
		}
	}
	s.Balance = s.TotalIncome.Cents - s.TotalExpense.Cents
	return s
}

// CategoryBreakdown groups the month's expenses by category, summing
// amounts per group, sorted descending by sum. Transactions whose category
// no longer resolves fall into the synthetic "Outros" bucket with a
// neutral color; a dangling reference is a normal case, never an error.
func CategoryBreakdown(monthTransactions []Transaction, categories []Category) []CategoryAmount {
	byID := make(map[string]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	sums := make(map[string]int64)
	var order []string
	for _, t := range monthTransactions {
		if t.Type != Expense {
			continue
		}
		if _, seen := sums[t.CategoryID]; !seen {
			order = append(order, t.CategoryID)
		}
		sums[t.CategoryID] += t.Amount.Cents
	}

	breakdown := make([]CategoryAmount, 0, len(order))
	for _, id := range order {
		entry := CategoryAmount{
			CategoryID: id,
			Name:       FallbackCategoryName,
			Color:      FallbackColor,
			Amount:     Money{Cents: sums[id]},
		}
		if cat, ok := byID[id]; ok {
			entry.Name = cat.Name
			entry.Color = cat.Color
		}
		breakdown = append(breakdown, entry)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.Cents > breakdown[j].Amount.Cents
	})
	return breakdown
}

// PendingTransactions returns unpaid expenses due within the next
// PendingWindowDays days or already past due, regardless of the selected
// month. Income records are never pending.
func PendingTransactions(transactions []Transaction, today Date) []Transaction {
	cutoff := today.AddDays(PendingWindowDays)
	var pending []Transaction
	for _, t := range transactions {
		if t.Type != Expense || t.Paid {
			continue
		}
		if t.Date.After(cutoff) {
			continue
		}
		pending = append(pending, t)
	}
	return pending
}

// YearlyFlow computes the twelve-point income/expense series for the
// monthly chart. Grouping reads only the month component of each date: the
// year is ignored, so same-named months from different years aggregate
// together. That mirrors the reference behavior and is kept deliberately;
// changing it would silently alter what existing charts display.
func YearlyFlow(transactions []Transaction) []MonthFlow {
	flows := make([]MonthFlow, 12)
	for i := range flows {
		flows[i].Month = i + 1
	}
	for _, t := range transactions {
		f := &flows[t.Date.Month()-1]
		switch t.Type {
		case Income:
			f.Income.Cents += t.Amount.Cents
		case Expense:
			f.Expense.Cents += t.Amount.Cents
		}
	}
	return flows
}

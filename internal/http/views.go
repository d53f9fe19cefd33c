package http

import (
	"github.com/davidsnrn/fincontrol/internal/core"
)

// transactionRow is a transaction joined with its category and account
// labels for rendering. Dangling references fall back to neutral
// labels instead of erroring.
type transactionRow struct {
	core.Transaction
	CategoryName  string
	CategoryIcon  string
	CategoryColor string
	AccountName   string
}

type dashboardView struct {
	Year      int
	Month     int
	PrevYear  int
	PrevMonth int
	NextYear  int
	NextMonth int

	TotalIncome  int64
	TotalExpense int64
	Balance      int64

	ConsolidatedBalance int64

	Breakdown []core.CategoryAmount
	Pending   []transactionRow
	Recent    []transactionRow
	Flow      []core.MonthFlow

	ProfileName string
}

func buildRows(transactions []core.Transaction, categories []core.Category, accounts []core.Account) []transactionRow {
	catByID := make(map[string]core.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}
	accByID := make(map[string]core.Account, len(accounts))
	for _, a := range accounts {
		accByID[a.ID] = a
	}

	rows := make([]transactionRow, 0, len(transactions))
	for _, t := range transactions {
		row := transactionRow{
			Transaction:   t,
			CategoryName:  core.FallbackCategoryName,
			CategoryColor: core.FallbackColor,
		}
		if c, ok := catByID[t.CategoryID]; ok {
			row.CategoryName = c.Name
			row.CategoryIcon = c.Icon
			row.CategoryColor = c.Color
		}
		if a, ok := accByID[t.AccountID]; ok {
			row.AccountName = a.Name
		}
		rows = append(rows, row)
	}
	return rows
}

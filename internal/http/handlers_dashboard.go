package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/davidsnrn/fincontrol/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	key := fmt.Sprintf("%04d-%02d", year, month)
	if view, ok := s.dashboardCache.Get(key); ok {
		s.render(w, r, "dashboard.html", view)
		return
	}

	view, err := s.buildDashboard(r, year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard build failed", "error", err, "year", year, "month", month)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.dashboardCache.Set(key, view)
	s.render(w, r, "dashboard.html", view)
}

func (s *Server) buildDashboard(r *http.Request, year, month int) (dashboardView, error) {
	ctx := r.Context()

	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		return dashboardView{}, fmt.Errorf("list transactions: %w", err)
	}
	categories, err := s.store.Categories(ctx)
	if err != nil {
		return dashboardView{}, fmt.Errorf("list categories: %w", err)
	}
	accounts, err := s.store.Accounts(ctx)
	if err != nil {
		return dashboardView{}, fmt.Errorf("list accounts: %w", err)
	}
	profile, err := s.profiles.Profile(ctx)
	if err != nil {
		return dashboardView{}, fmt.Errorf("read profile: %w", err)
	}

	summary := core.SummarizeMonth(transactions, year, month)
	pending := core.PendingTransactions(transactions, core.Today())

	recent := append([]core.Transaction(nil), summary.Transactions...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	prevYear, prevMonth := year, month-1
	if prevMonth < 1 {
		prevYear, prevMonth = year-1, 12
	}
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}

	return dashboardView{
		Year:                year,
		Month:               month,
		PrevYear:            prevYear,
		PrevMonth:           prevMonth,
		NextYear:            nextYear,
		NextMonth:           nextMonth,
		TotalIncome:         summary.TotalIncome.Cents,
		TotalExpense:        summary.TotalExpense.Cents,
		Balance:             summary.Balance,
		ConsolidatedBalance: core.ConsolidatedBalance(accounts),
		Breakdown:           core.CategoryBreakdown(summary.Transactions, categories),
		Pending:             buildRows(pending, categories, accounts),
		Recent:              buildRows(recent, categories, accounts),
		Flow:                core.YearlyFlow(transactions),
		ProfileName:         profile.Name,
	}, nil
}

package http

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/davidsnrn/fincontrol/internal/core"
)

type transactionListView struct {
	Filter string
	Rows   []transactionRow
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := strings.TrimSpace(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = "all"
	}

	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List transactions failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	categories, err := s.store.Categories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List categories failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	accounts, err := s.store.Accounts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List accounts failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var filtered []core.Transaction
	switch filter {
	case "income":
		for _, t := range transactions {
			if t.Type == core.Income {
				filtered = append(filtered, t)
			}
		}
	case "expense":
		for _, t := range transactions {
			if t.Type == core.Expense {
				filtered = append(filtered, t)
			}
		}
	case "pending":
		filtered = core.PendingTransactions(transactions, core.Today())
	default:
		filter = "all"
		filtered = transactions
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	s.render(w, r, "transactions.html", transactionListView{
		Filter: filter,
		Rows:   buildRows(filtered, categories, accounts),
	})
}

type transactionFormView struct {
	IsEdit      bool
	Transaction core.Transaction
	Categories  []core.Category
	Accounts    []core.Account
	Error       string
}

func (s *Server) handleTransactionForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := transactionFormView{
		Transaction: core.Transaction{Date: core.Today(), Type: core.Expense},
	}

	if id := r.PathValue("id"); id != "" {
		t, found, err := s.store.GetTransaction(ctx, id)
		if err != nil {
			slog.ErrorContext(ctx, "Read transaction failed", "error", err, "id", id)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Redirect(w, r, "/transactions", http.StatusSeeOther)
			return
		}
		view.IsEdit = true
		view.Transaction = t
	}

	var err error
	if view.Categories, err = s.store.Categories(ctx); err != nil {
		slog.ErrorContext(ctx, "List categories failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if view.Accounts, err = s.store.Accounts(ctx); err != nil {
		slog.ErrorContext(ctx, "List accounts failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "transaction_form.html", view)
}

func (s *Server) handleTransactionSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	cents, amountErr := core.ParseDecimalToCents(strings.TrimSpace(r.Form.Get("amount")))

	draft := core.Transaction{
		ID:          strings.TrimSpace(r.Form.Get("id")),
		Description: sanitizeInput(r.Form.Get("description")),
		Amount:      core.Money{Cents: cents},
		Date:        parseDateOrToday(r.Form.Get("date")),
		CategoryID:  strings.TrimSpace(r.Form.Get("categoryId")),
		AccountID:   strings.TrimSpace(r.Form.Get("accountId")),
		Type:        core.TransactionType(strings.TrimSpace(r.Form.Get("type"))),
		IsFixed:     parseCheckbox(r.Form.Get("isFixed")),
		Paid:        parseCheckbox(r.Form.Get("paid")),
		Notes:       sanitizeInput(r.Form.Get("notes")),
	}
	installments := parseIntField(r.Form.Get("installments"), 1)

	if amountErr != nil {
		s.renderTransactionFormError(w, r, draft, "invalid amount")
		return
	}

	if _, err := s.transactions.Save(ctx, draft, installments); err != nil {
		slog.WarnContext(ctx, "Transaction save rejected", "error", err)
		s.renderTransactionFormError(w, r, draft, err.Error())
		return
	}

	s.dashboardCache.Purge()
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}

// renderTransactionFormError re-renders the form with the submitted
// values so a rejected draft is not lost.
func (s *Server) renderTransactionFormError(w http.ResponseWriter, r *http.Request, draft core.Transaction, msg string) {
	ctx := r.Context()
	view := transactionFormView{
		IsEdit:      draft.ID != "",
		Transaction: draft,
		Error:       msg,
	}
	var err error
	if view.Categories, err = s.store.Categories(ctx); err != nil {
		slog.ErrorContext(ctx, "List categories failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if view.Accounts, err = s.store.Accounts(ctx); err != nil {
		slog.ErrorContext(ctx, "List accounts failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.render(w, r, "transaction_form.html", view)
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.transactions.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Transaction delete failed", "error", err, "id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.dashboardCache.Purge()
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}

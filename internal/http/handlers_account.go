package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/davidsnrn/fincontrol/internal/core"
)

type accountListView struct {
	Accounts            []core.Account
	ConsolidatedBalance int64
}

func (s *Server) handleAccountList(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.Accounts(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List accounts failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "accounts.html", accountListView{
		Accounts:            accounts,
		ConsolidatedBalance: core.ConsolidatedBalance(accounts),
	})
}

type accountFormView struct {
	IsEdit  bool
	Account core.Account
	Error   string
}

func (s *Server) handleAccountForm(w http.ResponseWriter, r *http.Request) {
	view := accountFormView{
		Account: core.Account{Type: core.Wallet, Status: core.AccountActive},
	}
	// Optional type hint, e.g. /account/new?type=CREDIT_CARD.
	if hint := strings.TrimSpace(r.URL.Query().Get("type")); hint != "" {
		view.Account.Type = core.AccountType(hint)
	}

	if id := r.PathValue("id"); id != "" {
		accounts, err := s.store.Accounts(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "List accounts failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		for _, a := range accounts {
			if a.ID == id {
				view.IsEdit = true
				view.Account = a
				break
			}
		}
		if !view.IsEdit {
			http.Redirect(w, r, "/accounts", http.StatusSeeOther)
			return
		}
	}

	s.render(w, r, "account_form.html", view)
}

func (s *Server) handleAccountSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	balance := int64(0)
	if v := strings.TrimSpace(r.Form.Get("balance")); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err == nil {
			balance = cents
		} else if strings.HasPrefix(v, "-") {
			if cents, err := core.ParseDecimalToCents(v[1:]); err == nil {
				balance = -cents
			}
		}
	}

	draft := core.Account{
		ID:          strings.TrimSpace(r.Form.Get("id")),
		Name:        sanitizeInput(r.Form.Get("name")),
		Type:        core.AccountType(strings.TrimSpace(r.Form.Get("type"))),
		Balance:     balance,
		Color:       sanitizeInput(r.Form.Get("color")),
		Institution: sanitizeInput(r.Form.Get("institution")),
		Status:      core.AccountStatus(strings.TrimSpace(r.Form.Get("status"))),
	}

	switch draft.Type {
	case core.CreditCard:
		limit, err := core.ParseDecimalToCents(strings.TrimSpace(r.Form.Get("creditLimit")))
		if err != nil {
			limit = 0
		}
		draft.CreditCard = &core.CreditCardDetails{
			CreditLimit:       core.Money{Cents: limit},
			DueDay:            parseIntField(r.Form.Get("dueDay"), 1),
			ClosingDay:        parseIntField(r.Form.Get("closingDay"), 1),
			AllowInstallments: parseCheckbox(r.Form.Get("allowInstallments")),
		}
	case core.DebitCard:
		draft.DebitCard = &core.DebitCardDetails{
			LinkedBankAccount: sanitizeInput(r.Form.Get("linkedBankAccount")),
		}
	case core.Wallet:
		alert := int64(0)
		if v := strings.TrimSpace(r.Form.Get("lowBalanceAlert")); v != "" {
			if cents, err := core.ParseDecimalToCents(v); err == nil {
				alert = cents
			}
		}
		draft.Wallet = &core.WalletDetails{
			LowBalanceAlert: core.Money{Cents: alert},
		}
	}

	if _, err := s.accounts.Save(ctx, draft); err != nil {
		slog.WarnContext(ctx, "Account save rejected", "error", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, r, "account_form.html", accountFormView{
			IsEdit:  draft.ID != "",
			Account: draft,
			Error:   err.Error(),
		})
		return
	}

	s.dashboardCache.Purge()
	http.Redirect(w, r, "/accounts", http.StatusSeeOther)
}

func (s *Server) handleAccountDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.accounts.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Account delete failed", "error", err, "id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.dashboardCache.Purge()
	http.Redirect(w, r, "/accounts", http.StatusSeeOther)
}

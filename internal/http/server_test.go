package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davidsnrn/fincontrol/internal/core"
	"github.com/davidsnrn/fincontrol/internal/services"
	"github.com/davidsnrn/fincontrol/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "fincontrol.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	srv := NewServer(
		":0",
		store,
		services.NewTransactionService(store, nil),
		services.NewCategoryService(store),
		services.NewAccountService(store),
		services.NewProfileService(store),
		0, // no auth delay in tests
	)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func authenticate(t *testing.T, srv *Server) {
	t.Helper()
	if err := srv.profiles.SetAuthenticated(context.Background(), true); err != nil {
		t.Fatalf("set authenticated: %v", err)
	}
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(w, r)
	return w
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(w, r)
	return w
}

func TestDashboardRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/dashboard")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth" {
		t.Fatalf("redirect to %q, want /auth", loc)
	}
}

func TestAuthFlowUnlocksDashboard(t *testing.T) {
	srv := newTestServer(t)

	w := postForm(srv, "/auth", url.Values{})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("auth submit: status %d location %q", w.Code, w.Header().Get("Location"))
	}

	w = get(srv, "/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard after auth: status %d", w.Code)
	}
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/no-such-page")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("status %d location %q, want 303 /", w.Code, w.Header().Get("Location"))
	}
}

func TestWelcomeRedirectsWhenAuthenticated(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)

	w := get(srv, "/")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("status %d location %q, want 303 /dashboard", w.Code, w.Header().Get("Location"))
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		if w := get(srv, path); w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
		}
	}
}

func TestTransactionSaveCreatesInstallmentSeries(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)
	ctx := context.Background()

	before, _ := srv.store.Transactions(ctx)

	w := postForm(srv, "/transaction/save", url.Values{
		"description":  {"Notebook"},
		"amount":       {"1.000,00"},
		"date":         {"2024-01-15"},
		"categoryId":   {"1"},
		"accountId":    {"a1"},
		"type":         {"EXPENSE"},
		"installments": {"3"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("save status = %d, body %s", w.Code, w.Body.String())
	}

	after, _ := srv.store.Transactions(ctx)
	if len(after) != len(before)+3 {
		t.Fatalf("stored %d transactions, want %d", len(after), len(before)+3)
	}
}

func TestTransactionSaveRejectsInvalidAmount(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)

	w := postForm(srv, "/transaction/save", url.Values{
		"description": {"Mercado"},
		"amount":      {"abc"},
		"type":        {"EXPENSE"},
		"categoryId":  {"1"},
		"accountId":   {"a1"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `class="error"`) {
		t.Fatal("rejection did not re-render the form with an error")
	}
	if !strings.Contains(body, "Mercado") {
		t.Fatal("re-rendered form lost the submitted description")
	}
}

func TestTransactionListFilters(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)

	for _, filter := range []string{"all", "income", "expense", "pending"} {
		w := get(srv, "/transactions?filter="+filter)
		if w.Code != http.StatusOK {
			t.Errorf("filter %s: status %d", filter, w.Code)
		}
	}
}

func TestCategorySaveAndCascadeDelete(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)
	ctx := context.Background()

	w := postForm(srv, "/category/save", url.Values{
		"name":     {"Padaria"},
		"icon":     {"bakery"},
		"color":    {"#f59e0b"},
		"type":     {"EXPENSE"},
		"parentId": {"1"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("category save status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/categories/1" {
		t.Fatalf("redirect to %q, want /categories/1", loc)
	}

	w = postForm(srv, "/category/delete/1", url.Values{})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("category delete status = %d", w.Code)
	}

	categories, _ := srv.store.Categories(ctx)
	for _, c := range categories {
		if c.ID == "1" || c.ParentID == "1" {
			t.Fatalf("category %s survived cascade", c.ID)
		}
	}
}

func TestAccountSaveCreditCard(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)
	ctx := context.Background()

	w := postForm(srv, "/account/save", url.Values{
		"name":        {"Cartão Roxo"},
		"type":        {"CREDIT_CARD"},
		"institution": {"nubank"},
		"creditLimit": {"5.000,00"},
		"dueDay":      {"10"},
		"closingDay":  {"3"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("account save status = %d, body %s", w.Code, w.Body.String())
	}

	accounts, _ := srv.store.Accounts(ctx)
	var card *core.Account
	for i := range accounts {
		if accounts[i].Name == "Cartão Roxo" {
			card = &accounts[i]
			break
		}
	}
	if card == nil {
		t.Fatal("credit card not stored")
	}
	if card.CreditCard == nil || card.CreditCard.AvailableLimit.Cents != 500000 {
		t.Fatalf("credit card details = %+v", card.CreditCard)
	}
}

func TestAccountSaveWalletAlertAmount(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)
	ctx := context.Background()

	w := postForm(srv, "/account/save", url.Values{
		"name":            {"Carteira Nova"},
		"type":            {"WALLET"},
		"lowBalanceAlert": {"50,00"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("account save status = %d, body %s", w.Code, w.Body.String())
	}

	accounts, _ := srv.store.Accounts(ctx)
	for _, a := range accounts {
		if a.Name == "Carteira Nova" {
			if a.Wallet == nil || a.Wallet.LowBalanceAlert.Cents != 5000 {
				t.Fatalf("wallet details = %+v", a.Wallet)
			}
			return
		}
	}
	t.Fatal("wallet not stored")
}

func TestAccountSaveMissingInstitution(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)

	w := postForm(srv, "/account/save", url.Values{
		"name":        {"Cartão"},
		"type":        {"CREDIT_CARD"},
		"creditLimit": {"1.000,00"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `class="error"`) {
		t.Fatal("rejection did not re-render the form with an error")
	}
	if !strings.Contains(body, "Cartão") {
		t.Fatal("re-rendered form lost the submitted name")
	}
}

func TestCategorySaveUnknownParentShowsForm(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)

	w := postForm(srv, "/category/save", url.Values{
		"name":     {"Padaria"},
		"type":     {"EXPENSE"},
		"parentId": {"nope"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `class="error"`) {
		t.Fatal("rejection did not re-render the form with an error")
	}
	if !strings.Contains(body, "Padaria") {
		t.Fatal("re-rendered form lost the submitted name")
	}
}

func TestSettingsProfileSave(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)
	ctx := context.Background()

	w := postForm(srv, "/settings/profile", url.Values{
		"name":          {"Maria Souza"},
		"theme":         {"dark"},
		"backupEnabled": {"on"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("profile save status = %d", w.Code)
	}

	profile, _ := srv.profiles.Profile(ctx)
	if profile.Name != "Maria Souza" || profile.Theme != "dark" {
		t.Fatalf("profile = %+v", profile)
	}
	if profile.BiometryEnabled {
		t.Fatal("unchecked biometry stayed enabled")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)

	w := postForm(srv, "/settings/logout", url.Values{})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("logout: status %d location %q", w.Code, w.Header().Get("Location"))
	}

	w = get(srv, "/dashboard")
	if w.Header().Get("Location") != "/auth" {
		t.Fatal("dashboard reachable after logout")
	}
}

func TestResetRestoresSeedData(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)
	ctx := context.Background()

	if _, err := srv.transactions.Save(ctx, core.Transaction{
		Description: "Extra",
		Amount:      core.Money{Cents: 1000},
		Date:        core.Today(),
		CategoryID:  "1",
		AccountID:   "a1",
		Type:        core.Expense,
	}, 1); err != nil {
		t.Fatalf("save: %v", err)
	}

	w := postForm(srv, "/settings/reset", url.Values{"confirm": {"1"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("reset status = %d", w.Code)
	}

	transactions, _ := srv.store.Transactions(ctx)
	if len(transactions) != 5 {
		t.Fatalf("after reset: %d transactions, want 5 seeds", len(transactions))
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	srv := newTestServer(t)
	authenticate(t, srv)
	ctx := context.Background()

	if _, err := srv.transactions.Save(ctx, core.Transaction{
		Description: "Extra",
		Amount:      core.Money{Cents: 1000},
		Date:        core.Today(),
		CategoryID:  "1",
		AccountID:   "a1",
		Type:        core.Expense,
	}, 1); err != nil {
		t.Fatalf("save: %v", err)
	}

	w := postForm(srv, "/settings/reset", url.Values{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed reset status = %d, want 400", w.Code)
	}

	transactions, _ := srv.store.Transactions(ctx)
	if len(transactions) != 6 {
		t.Fatalf("unconfirmed reset changed data: %d transactions", len(transactions))
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/")
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options header")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options header")
	}
}

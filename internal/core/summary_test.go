package core

import "testing"

func tx(id string, typ TransactionType, cents int64, date Date, categoryID string, paid bool) Transaction {
	return Transaction{
		ID:          id,
		Description: id,
		Amount:      Money{Cents: cents},
		Date:        date,
		CategoryID:  categoryID,
		AccountID:   "a1",
		Type:        typ,
		Paid:        paid,
	}
}

func TestSummarizeMonth(t *testing.T) {
	transactions := []Transaction{
		tx("t1", Income, 500000, NewDate(2024, 1, 5), "1", true),
		tx("t2", Expense, 45050, NewDate(2024, 1, 12), "3-1", true),
		tx("t3", Expense, 22000, NewDate(2024, 2, 1), "4-1", true),
		tx("t4", Expense, 8590, NewDate(2023, 1, 20), "3-2", true),
	}
	s := SummarizeMonth(transactions, 2024, 1)
	if len(s.Transactions) != 2 {
		t.Fatalf("expected 2 transactions in 2024-01, got %d", len(s.Transactions))
	}
	if s.TotalIncome.Cents != 500000 {
		t.Errorf("income = %d, want 500000", s.TotalIncome.Cents)
	}
	if s.TotalExpense.Cents != 45050 {
		t.Errorf("expense = %d, want 45050", s.TotalExpense.Cents)
	}
	if s.Balance != 454950 {
		t.Errorf("balance = %d, want 454950", s.Balance)
	}
}

func TestSummarizeMonthBoundary(t *testing.T) {
	// The last calendar day of a month belongs to that month, never the next.
	transactions := []Transaction{
		tx("t1", Expense, 100, NewDate(2024, 1, 31), "3", true),
	}
	if got := len(SummarizeMonth(transactions, 2024, 1).Transactions); got != 1 {
		t.Fatalf("January 31st must aggregate into January, got %d records", got)
	}
	if got := len(SummarizeMonth(transactions, 2024, 2).Transactions); got != 0 {
		t.Fatalf("January 31st must not leak into February, got %d records", got)
	}
}

func TestCategoryBreakdownOrderingAndFallback(t *testing.T) {
	categories := []Category{
		{ID: "A", Name: "Alimentação", Color: "#f59e0b", Type: Expense},
		{ID: "B", Name: "Casa", Color: "#8b5cf6", Type: Expense},
		{ID: "C", Name: "Transporte", Color: "#3b82f6", Type: Expense},
	}
	month := []Transaction{
		tx("t1", Expense, 3000, NewDate(2024, 1, 3), "A", true),
		tx("t2", Expense, 10000, NewDate(2024, 1, 4), "B", true),
		tx("t3", Expense, 1000, NewDate(2024, 1, 5), "C", true),
		tx("t4", Expense, 500, NewDate(2024, 1, 6), "gone", true),
		tx("t5", Income, 99999, NewDate(2024, 1, 7), "A", true),
	}
	breakdown := CategoryBreakdown(month, categories)
	if len(breakdown) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(breakdown))
	}
	wantOrder := []string{"Casa", "Alimentação", "Transporte", FallbackCategoryName}
	for i, want := range wantOrder {
		if breakdown[i].Name != want {
			t.Errorf("bucket %d = %q, want %q", i, breakdown[i].Name, want)
		}
	}
	last := breakdown[3]
	if last.Color != FallbackColor {
		t.Errorf("dangling category must use the neutral color, got %q", last.Color)
	}
	if last.Amount.Cents != 500 {
		t.Errorf("fallback bucket sum = %d, want 500", last.Amount.Cents)
	}
}

func TestPendingTransactions(t *testing.T) {
	today := NewDate(2024, 6, 10)
	transactions := []Transaction{
		tx("due-soon", Expense, 100, today.AddDays(2), "3", false),
		tx("window-edge", Expense, 100, today.AddDays(3), "3", false),
		tx("too-far", Expense, 100, today.AddDays(4), "3", false),
		tx("overdue", Expense, 100, today.AddDays(-30), "3", false),
		tx("paid", Expense, 100, today, "3", true),
		tx("income", Income, 100, today, "1", false),
	}
	pending := PendingTransactions(transactions, today)
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending transactions, got %d", len(pending))
	}
	want := map[string]bool{"due-soon": true, "window-edge": true, "overdue": true}
	for _, p := range pending {
		if !want[p.ID] {
			t.Errorf("unexpected pending transaction %q", p.ID)
		}
	}
}

func TestConsolidatedBalance(t *testing.T) {
	accounts := []Account{
		{ID: "a1", Name: "Carteira", Type: Wallet, Balance: 50000, Status: AccountActive},
		{ID: "a2", Name: "Cartão", Type: CreditCard, Balance: -20000, Status: AccountActive},
		{ID: "a3", Name: "Poupança", Type: Bank, Balance: 0, Status: AccountInactive},
	}
	if got := ConsolidatedBalance(accounts); got != 30000 {
		t.Fatalf("consolidated balance = %d, want 30000 (liabilities included raw)", got)
	}
}

func TestYearlyFlowIgnoresYear(t *testing.T) {
	// Documented quirk: the chart series groups by month component only,
	// so March 2023 and March 2024 land in the same bucket.
	transactions := []Transaction{
		tx("t1", Expense, 1000, NewDate(2023, 3, 10), "3", true),
		tx("t2", Expense, 2000, NewDate(2024, 3, 10), "3", true),
		tx("t3", Income, 7000, NewDate(2024, 12, 1), "1", true),
	}
	flows := YearlyFlow(transactions)
	if len(flows) != 12 {
		t.Fatalf("expected 12 points, got %d", len(flows))
	}
	if flows[2].Expense.Cents != 3000 {
		t.Errorf("March bucket = %d, want 3000 (years aggregated together)", flows[2].Expense.Cents)
	}
	if flows[11].Income.Cents != 7000 {
		t.Errorf("December income = %d, want 7000", flows[11].Income.Cents)
	}
}

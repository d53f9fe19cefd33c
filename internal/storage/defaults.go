package storage

import "github.com/davidsnrn/fincontrol/internal/core"

// Seed data returned whenever a collection is absent or unparseable. The
// hierarchy and the example transactions mirror what a fresh install shows
// before the user records anything of their own.

// DefaultCategories is the stock two-level hierarchy: ten top-level
// categories, several of them with subcategories.
func DefaultCategories() []core.Category {
	return []core.Category{
		{ID: "1", Name: "Salário", Icon: "payments", Color: "#078838", Type: core.Income},
		{ID: "2", Name: "Freelance", Icon: "work", Color: "#137fec", Type: core.Income},
		{ID: "3", Name: "Alimentação", Icon: "restaurant", Color: "#f59e0b", Type: core.Expense},
		{ID: "3-1", Name: "Supermercado", Icon: "shopping_cart", Color: "#f59e0b", Type: core.Expense, ParentID: "3"},
		{ID: "3-2", Name: "Restaurantes", Icon: "lunch_dining", Color: "#f59e0b", Type: core.Expense, ParentID: "3"},
		{ID: "4", Name: "Transporte", Icon: "directions_car", Color: "#3b82f6", Type: core.Expense},
		{ID: "4-1", Name: "Combustível", Icon: "local_gas_station", Color: "#3b82f6", Type: core.Expense, ParentID: "4"},
		{ID: "4-2", Name: "Uber/App", Icon: "hail", Color: "#3b82f6", Type: core.Expense, ParentID: "4"},
		{ID: "4-3", Name: "Oficina", Icon: "build", Color: "#3b82f6", Type: core.Expense, ParentID: "4"},
		{ID: "5", Name: "Casa", Icon: "home", Color: "#8b5cf6", Type: core.Expense},
		{ID: "5-1", Name: "Aluguel", Icon: "apartment", Color: "#8b5cf6", Type: core.Expense, ParentID: "5"},
		{ID: "5-2", Name: "Luz", Icon: "lightbulb", Color: "#eab308", Type: core.Expense, ParentID: "5"},
		{ID: "5-3", Name: "Água", Icon: "water_drop", Color: "#3b82f6", Type: core.Expense, ParentID: "5"},
		{ID: "5-4", Name: "Internet", Icon: "wifi", Color: "#8b5cf6", Type: core.Expense, ParentID: "5"},
		{ID: "5-5", Name: "Manutenção", Icon: "construction", Color: "#8b5cf6", Type: core.Expense, ParentID: "5"},
		{ID: "6", Name: "Saúde", Icon: "health_and_safety", Color: "#ef4444", Type: core.Expense},
		{ID: "6-1", Name: "Farmácia", Icon: "medication", Color: "#ef4444", Type: core.Expense, ParentID: "6"},
		{ID: "6-2", Name: "Médico", Icon: "medical_services", Color: "#ef4444", Type: core.Expense, ParentID: "6"},
		{ID: "7", Name: "Educação", Icon: "school", Color: "#10b981", Type: core.Expense},
		{ID: "8", Name: "Lazer", Icon: "sports_esports", Color: "#ec4899", Type: core.Expense},
		{ID: "9", Name: "Tecnologia", Icon: "computer", Color: "#6366f1", Type: core.Expense},
		{ID: "10", Name: "Outros", Icon: "more_horiz", Color: "#94a3b8", Type: core.Expense},
	}
}

// DefaultTransactions is the small example set shown on first launch,
// dated today so the current month's dashboard is not empty.
func DefaultTransactions() []core.Transaction {
	today := core.Today()
	return []core.Transaction{
		{ID: "m1", Description: "Salário Mensal", Amount: core.Money{Cents: 500000}, Type: core.Income, CategoryID: "1", AccountID: "a1", Date: today, IsFixed: true, Paid: true},
		{ID: "m2", Description: "Supermercado", Amount: core.Money{Cents: 45050}, Type: core.Expense, CategoryID: "3-1", AccountID: "a1", Date: today, Paid: true},
		{ID: "m3", Description: "Gasolina", Amount: core.Money{Cents: 22000}, Type: core.Expense, CategoryID: "4-1", AccountID: "a1", Date: today, Paid: true},
		{ID: "m4", Description: "Aluguel", Amount: core.Money{Cents: 150000}, Type: core.Expense, CategoryID: "5-1", AccountID: "a1", Date: today, IsFixed: true, Paid: true},
		{ID: "m5", Description: "Jantar", Amount: core.Money{Cents: 8590}, Type: core.Expense, CategoryID: "3-2", AccountID: "a2", Date: today, Paid: true},
	}
}

// DefaultAccounts seeds a wallet and one bank account.
func DefaultAccounts() []core.Account {
	return []core.Account{
		{ID: "a1", Name: "Carteira", Type: core.Wallet, Balance: 0, Color: "#137fec", Status: core.AccountActive, Wallet: &core.WalletDetails{}},
		{ID: "a2", Name: "Nubank", Type: core.Bank, Balance: 0, Color: "#8b5cf6", Status: core.AccountActive, Institution: "nubank"},
	}
}

// DefaultProfile is the stock settings record.
func DefaultProfile() core.UserProfile {
	return core.UserProfile{
		Name:            "João Silva",
		Email:           "joao.silva@email.com",
		Currency:        "BRL",
		BiometryEnabled: true,
		BackupEnabled:   true,
		Theme:           "light",
	}
}

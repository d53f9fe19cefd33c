// Package storage persists the application's collections in a local SQLite
// database used as a key-value store: one row per logical collection, each
// holding the whole collection as a JSON document. Every mutation follows
// read-modify-write-whole-collection semantics, serialized by a mutex so
// concurrent HTTP handlers cannot interleave partial updates.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/davidsnrn/fincontrol/internal/core"

	_ "modernc.org/sqlite"
)

// Logical collection names. The auth flag rides in the same table as the
// data collections.
const (
	CollectionTransactions = "transactions"
	CollectionCategories   = "categories"
	CollectionAccounts     = "accounts"
	CollectionProfile      = "user_profile"
	CollectionAuth         = "auth"
)

type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// read unmarshals the named collection into v. Returns false when the row
// is absent. An unparseable document is reported as absent so callers fall
// back to the documented defaults; corruption is recoverable, not fatal.
func (s *Store) read(ctx context.Context, name string, v any) (bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read collection %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		slog.WarnContext(ctx, "Collection unparseable, falling back to defaults",
			"collection", name, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) write(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	return nil
}

// Transactions returns the full transaction collection, seeding the
// defaults when the collection has never been written.
func (s *Store) Transactions(ctx context.Context) ([]core.Transaction, error) {
	var transactions []core.Transaction
	found, err := s.read(ctx, CollectionTransactions, &transactions)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultTransactions(), nil
	}
	return transactions, nil
}

// SaveTransaction upserts one record: a matching id replaces in place,
// otherwise the record is appended.
func (s *Store) SaveTransaction(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.Transactions(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range transactions {
		if transactions[i].ID == t.ID {
			transactions[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		transactions = append(transactions, t)
	}
	return s.write(ctx, CollectionTransactions, transactions)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.Transactions(ctx)
	if err != nil {
		return err
	}
	kept := transactions[:0]
	for _, t := range transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.write(ctx, CollectionTransactions, kept)
}

func (s *Store) Categories(ctx context.Context) ([]core.Category, error) {
	var categories []core.Category
	found, err := s.read(ctx, CollectionCategories, &categories)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultCategories(), nil
	}
	return categories, nil
}

func (s *Store) SaveCategory(ctx context.Context, c core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range categories {
		if categories[i].ID == c.ID {
			categories[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		categories = append(categories, c)
	}
	return s.write(ctx, CollectionCategories, categories)
}

// DeleteCategory removes the category and cascades to every category whose
// ParentID references it. Transactions pointing at the deleted ids are
// deliberately left untouched; display layers substitute a fallback label.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	kept := categories[:0]
	for _, c := range categories {
		if c.ID != id && c.ParentID != id {
			kept = append(kept, c)
		}
	}
	return s.write(ctx, CollectionCategories, kept)
}

func (s *Store) Accounts(ctx context.Context) ([]core.Account, error) {
	var accounts []core.Account
	found, err := s.read(ctx, CollectionAccounts, &accounts)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultAccounts(), nil
	}
	return accounts, nil
}

func (s *Store) SaveAccount(ctx context.Context, a core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.Accounts(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range accounts {
		if accounts[i].ID == a.ID {
			accounts[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		accounts = append(accounts, a)
	}
	return s.write(ctx, CollectionAccounts, accounts)
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.Accounts(ctx)
	if err != nil {
		return err
	}
	kept := accounts[:0]
	for _, a := range accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return s.write(ctx, CollectionAccounts, kept)
}

func (s *Store) Profile(ctx context.Context) (core.UserProfile, error) {
	var profile core.UserProfile
	found, err := s.read(ctx, CollectionProfile, &profile)
	if err != nil {
		return core.UserProfile{}, err
	}
	if !found {
		return DefaultProfile(), nil
	}
	return profile, nil
}

func (s *Store) SaveProfile(ctx context.Context, p core.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, CollectionProfile, p)
}

// Authenticated reads the session flag; absent means unauthenticated.
func (s *Store) Authenticated(ctx context.Context) (bool, error) {
	var flag bool
	found, err := s.read(ctx, CollectionAuth, &flag)
	if err != nil {
		return false, err
	}
	return found && flag, nil
}

func (s *Store) SetAuthenticated(ctx context.Context, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, CollectionAuth, v)
}

// GetTransaction looks a single record up by id for backup mirroring.
func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, bool, error) {
	transactions, err := s.Transactions(ctx)
	if err != nil {
		return core.Transaction{}, false, err
	}
	for _, t := range transactions {
		if t.ID == id {
			return t, true, nil
		}
	}
	return core.Transaction{}, false, nil
}

// ResetAll drops every collection row. The next read of each collection
// re-seeds the documented defaults. Irreversible; callers must have
// confirmed with the user first.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("reset collections: %w", err)
	}
	slog.InfoContext(ctx, "All collections reset to defaults")
	return nil
}

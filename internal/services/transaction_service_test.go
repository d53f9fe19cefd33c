package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/davidsnrn/fincontrol/internal/amqp"
	"github.com/davidsnrn/fincontrol/internal/core"
	"github.com/davidsnrn/fincontrol/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "fincontrol.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type capturingPublisher struct {
	messages []*amqp.BackupMessage
}

func (p *capturingPublisher) PublishBackup(_ context.Context, msg *amqp.BackupMessage) error {
	p.messages = append(p.messages, msg)
	return nil
}

func draftExpense(desc string, cents int64) core.Transaction {
	return core.Transaction{
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Date:        core.NewDate(2024, 1, 15),
		CategoryID:  "1",
		AccountID:   "a1",
		Type:        core.Expense,
	}
}

func TestSaveCreateExpandsInstallments(t *testing.T) {
	store := newTestStore(t)
	svc := NewTransactionService(store, nil)
	ctx := context.Background()

	before, err := store.Transactions(ctx)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}

	records, err := svc.Save(ctx, draftExpense("Notebook", 300000), 3)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	seen := map[string]bool{}
	for _, r := range records {
		if r.ID == "" {
			t.Fatal("record saved without id")
		}
		if seen[r.ID] {
			t.Fatalf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
	}

	after, err := store.Transactions(ctx)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(after) != len(before)+3 {
		t.Fatalf("expected %d stored transactions, got %d", len(before)+3, len(after))
	}
}

func TestSaveEditNeverReExpands(t *testing.T) {
	store := newTestStore(t)
	svc := NewTransactionService(store, nil)
	ctx := context.Background()

	records, err := svc.Save(ctx, draftExpense("Sofá", 240000), 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	edit := records[0]
	edit.Description = "Sofá novo (1/2)"
	edited, err := svc.Save(ctx, edit, 4)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(edited) != 1 {
		t.Fatalf("edit produced %d records, want 1", len(edited))
	}
	if edited[0].ID != edit.ID {
		t.Fatalf("edit changed id from %s to %s", edit.ID, edited[0].ID)
	}
}

func TestSaveInvalidDraftWritesNothing(t *testing.T) {
	store := newTestStore(t)
	svc := NewTransactionService(store, nil)
	ctx := context.Background()

	before, _ := store.Transactions(ctx)

	draft := draftExpense("", 1000)
	if _, err := svc.Save(ctx, draft, 1); err == nil {
		t.Fatal("expected validation error")
	}

	after, _ := store.Transactions(ctx)
	if len(after) != len(before) {
		t.Fatalf("invalid save changed stored count from %d to %d", len(before), len(after))
	}
}

func TestSavePublishesWhenBackupEnabled(t *testing.T) {
	store := newTestStore(t)
	pub := &capturingPublisher{}
	svc := NewTransactionService(store, pub)
	ctx := context.Background()

	if _, err := svc.Save(ctx, draftExpense("Mercado", 12345), 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 backup message, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Collection != storage.CollectionTransactions || msg.Op != amqp.OpUpsert {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestSaveSkipsPublishWhenBackupDisabled(t *testing.T) {
	store := newTestStore(t)
	pub := &capturingPublisher{}
	svc := NewTransactionService(store, pub)
	profiles := NewProfileService(store)
	ctx := context.Background()

	profile, err := profiles.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	profile.BackupEnabled = false
	if err := profiles.Save(ctx, profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	if _, err := svc.Save(ctx, draftExpense("Farmácia", 4500), 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(pub.messages) != 0 {
		t.Fatalf("expected no backup messages, got %d", len(pub.messages))
	}
}

func TestDeletePublishesDelete(t *testing.T) {
	store := newTestStore(t)
	pub := &capturingPublisher{}
	svc := NewTransactionService(store, pub)
	ctx := context.Background()

	records, err := svc.Save(ctx, draftExpense("Cinema", 6000), 1)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	pub.messages = nil

	if err := svc.Delete(ctx, records[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.messages) != 1 || pub.messages[0].Op != amqp.OpDelete {
		t.Fatalf("expected one delete message, got %+v", pub.messages)
	}
}

// Package services orchestrates validation, installment expansion and
// persistence on top of the collection store, and hands mutations to the
// backup transport when the profile asks for it.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/davidsnrn/fincontrol/internal/amqp"
	"github.com/davidsnrn/fincontrol/internal/core"
	"github.com/davidsnrn/fincontrol/internal/storage"
)

// BackupPublisher is the slice of the AMQP client the services need.
type BackupPublisher interface {
	PublishBackup(ctx context.Context, msg *amqp.BackupMessage) error
}

// TransactionService persists transaction drafts. Creation expands
// installment series; edits never do.
type TransactionService struct {
	store     *storage.Store
	publisher BackupPublisher
}

func NewTransactionService(store *storage.Store, publisher BackupPublisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

// Save validates the draft and persists the resulting records. A draft
// without an id is a creation: it is expanded into totalInstallments
// records, each with a freshly generated id. A draft with an id is an
// edit and is stored as-is; changing the installment count on an edit
// never re-triggers expansion. Validation failure writes nothing.
func (s *TransactionService) Save(ctx context.Context, draft core.Transaction, totalInstallments int) ([]core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var records []core.Transaction
	if draft.ID == "" {
		records = core.ExpandInstallments(draft, totalInstallments)
		for i := range records {
			records[i].ID = uuid.NewString()
		}
	} else {
		// Edits keep the original installment marker; the series is
		// expanded once, at creation.
		if draft.Installments == nil {
			existing, found, err := s.store.GetTransaction(ctx, draft.ID)
			if err != nil {
				return nil, fmt.Errorf("read transaction: %w", err)
			}
			if found {
				draft.Installments = existing.Installments
			}
		}
		records = []core.Transaction{draft}
	}

	for _, t := range records {
		if err := s.store.SaveTransaction(ctx, t); err != nil {
			return nil, fmt.Errorf("save transaction: %w", err)
		}
		s.publish(ctx, t.ID, amqp.OpUpsert)
	}

	slog.InfoContext(ctx, "Transactions saved",
		"count", len(records),
		"description", draft.Description,
		"amount_cents", draft.Amount.Cents)
	return records, nil
}

// Delete removes a single record. Installment siblings are independent
// records and are not touched.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publish(ctx, id, amqp.OpDelete)
	return nil
}

// publish hands the mutation to the backup queue when the profile has
// backup enabled. The local save already succeeded; a publish failure is
// logged and swallowed.
func (s *TransactionService) publish(ctx context.Context, id, op string) {
	if s.publisher == nil {
		return
	}
	profile, err := s.store.Profile(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Skipping backup publish, profile unreadable", "error", err)
		return
	}
	if !profile.BackupEnabled {
		return
	}
	msg := amqp.NewBackupMessage(storage.CollectionTransactions, id, op)
	if err := s.publisher.PublishBackup(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish backup message",
			"id", id, "op", op, "error", err)
	}
}

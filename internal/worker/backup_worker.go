// Package worker consumes backup messages and mirrors transactions to
// the configured backup target.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davidsnrn/fincontrol/internal/amqp"
	"github.com/davidsnrn/fincontrol/internal/backup"
	"github.com/davidsnrn/fincontrol/internal/storage"
)

// BackupWorker replays collection mutations against a backup target.
// The store is the source of truth: every upsert message triggers a
// fresh read, so stale or reordered messages converge on the current
// record state.
type BackupWorker struct {
	store     *storage.Store
	target    backup.Target
	batchSize int
}

func NewBackupWorker(store *storage.Store, target backup.Target, batchSize int) *BackupWorker {
	return &BackupWorker{store: store, target: target, batchSize: batchSize}
}

// HandleBackupMessage processes a single message from the queue. An
// upsert for a record that was deleted in the meantime is treated as a
// delete, not an error.
func (w *BackupWorker) HandleBackupMessage(ctx context.Context, msg *amqp.BackupMessage) error {
	slog.InfoContext(ctx, "Processing backup message",
		"collection", msg.Collection,
		"id", msg.ID,
		"op", msg.Op)

	if msg.Collection != storage.CollectionTransactions {
		slog.WarnContext(ctx, "Ignoring backup message for unhandled collection",
			"collection", msg.Collection)
		return nil
	}

	switch msg.Op {
	case amqp.OpDelete:
		return w.remove(ctx, msg.ID)
	case amqp.OpUpsert:
		t, found, err := w.store.GetTransaction(ctx, msg.ID)
		if err != nil {
			return fmt.Errorf("read transaction %s: %w", msg.ID, err)
		}
		if !found {
			return w.remove(ctx, msg.ID)
		}
		if err := w.target.AppendTransaction(ctx, t); err != nil {
			return fmt.Errorf("append transaction %s: %w", msg.ID, err)
		}
		slog.InfoContext(ctx, "Transaction backed up",
			"id", t.ID,
			"description", t.Description,
			"amount_cents", t.Amount.Cents)
		return nil
	default:
		slog.WarnContext(ctx, "Dropping backup message with unknown op", "op", msg.Op)
		return nil
	}
}

// FullBackup pushes every stored transaction to the target, batchSize
// records per pass. It recovers from lost queue messages and is meant
// to run on startup and on a timer.
func (w *BackupWorker) FullBackup(ctx context.Context) error {
	transactions, err := w.store.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}
	if len(transactions) == 0 {
		slog.InfoContext(ctx, "No transactions to back up")
		return nil
	}

	synced := 0
	failed := 0
	for i, t := range transactions {
		if w.batchSize > 0 && i > 0 && i%w.batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		if err := w.target.AppendTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to back up transaction",
				"id", t.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Full backup completed",
		"total", len(transactions),
		"synced", synced,
		"errors", failed)
	if failed > 0 {
		return fmt.Errorf("full backup finished with %d errors", failed)
	}
	return nil
}

func (w *BackupWorker) remove(ctx context.Context, id string) error {
	if err := w.target.RemoveTransaction(ctx, id); err != nil {
		return fmt.Errorf("remove transaction %s: %w", id, err)
	}
	slog.InfoContext(ctx, "Transaction removed from backup", "id", id)
	return nil
}

// Package backup defines the ports for mirroring records to an external
// backup target. The worker is one-way: local storage stays canonical and
// the target is a disposable copy, never a sync peer.
package backup

import (
	"context"

	"github.com/davidsnrn/fincontrol/internal/core"
)

// Target receives mirrored transaction records.
type Target interface {
	// AppendTransaction mirrors one record, replacing any previous copy
	// with the same id.
	AppendTransaction(ctx context.Context, t core.Transaction) error

	// RemoveTransaction drops the mirrored copy of a deleted record.
	// Removing an id that was never mirrored is not an error.
	RemoveTransaction(ctx context.Context, id string) error
}

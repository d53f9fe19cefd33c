package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/davidsnrn/fincontrol/internal/core"
	"github.com/davidsnrn/fincontrol/internal/storage"
)

// AccountService persists accounts and fills in the derived credit card
// fields a draft usually leaves blank.
type AccountService struct {
	store *storage.Store
}

func NewAccountService(store *storage.Store) *AccountService {
	return &AccountService{store: store}
}

// Save normalizes and upserts an account. New credit cards start with
// the full limit available, and the best purchase day defaults to the
// closing day when the form leaves it unset.
func (s *AccountService) Save(ctx context.Context, draft core.Account) (core.Account, error) {
	if draft.Status == "" {
		draft.Status = core.AccountActive
	}
	if cc := draft.CreditCard; cc != nil {
		if cc.AvailableLimit.Cents == 0 {
			cc.AvailableLimit = cc.CreditLimit
			if draft.ID != "" {
				// Forms do not round-trip the available limit, so an
				// edit keeps the stored value.
				if existing, found, err := s.findAccount(ctx, draft.ID); err != nil {
					return core.Account{}, err
				} else if found && existing.CreditCard != nil {
					cc.AvailableLimit = existing.CreditCard.AvailableLimit
				}
			}
		}
		if cc.BestPurchaseDay == 0 {
			cc.BestPurchaseDay = cc.ClosingDay
		}
	}
	if err := draft.Validate(); err != nil {
		return core.Account{}, err
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if err := s.store.SaveAccount(ctx, draft); err != nil {
		return core.Account{}, fmt.Errorf("save account: %w", err)
	}
	slog.InfoContext(ctx, "Account saved", "id", draft.ID, "name", draft.Name, "type", draft.Type)
	return draft, nil
}

// Delete removes an account. Transactions pointing at it keep the id
// and show up without an account label.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (s *AccountService) findAccount(ctx context.Context, id string) (core.Account, bool, error) {
	accounts, err := s.store.Accounts(ctx)
	if err != nil {
		return core.Account{}, false, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, true, nil
		}
	}
	return core.Account{}, false, nil
}

// ConsolidatedBalance sums every stored balance in cents.
func (s *AccountService) ConsolidatedBalance(ctx context.Context) (int64, error) {
	accounts, err := s.store.Accounts(ctx)
	if err != nil {
		return 0, err
	}
	return core.ConsolidatedBalance(accounts), nil
}

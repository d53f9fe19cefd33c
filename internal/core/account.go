package core

import (
	"errors"
	"strings"
)

const (
	Wallet     AccountType = "WALLET"
	Bank       AccountType = "BANK"
	CreditCard AccountType = "CREDIT_CARD"
	DebitCard  AccountType = "DEBIT_CARD"
	Investment AccountType = "INVESTMENT"

	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

type (
	AccountType   string
	AccountStatus string
	CardBrand     string

	// CreditCardDetails holds the fields meaningful only for credit cards.
	// Balance on the owning account represents the current invoice amount,
	// a liability, not an asset.
	CreditCardDetails struct {
		CreditLimit       Money `json:"creditLimit"`
		AvailableLimit    Money `json:"availableLimit"`
		DueDay            int   `json:"dueDay,omitempty"`
		ClosingDay        int   `json:"closingDay,omitempty"`
		BestPurchaseDay   int   `json:"bestPurchaseDay,omitempty"`
		AllowInstallments bool  `json:"allowInstallments"`
	}

	// DebitCardDetails holds the fields meaningful only for debit cards.
	DebitCardDetails struct {
		LinkedBankAccount string `json:"linkedBankAccount,omitempty"`
	}

	// WalletDetails holds the fields meaningful only for wallets.
	WalletDetails struct {
		LowBalanceAlert Money `json:"lowBalanceAlert"`
	}

	// Account is a tagged record: the common fields apply to every type
	// while at most one of the detail variants is set, matching Type.
	// Consumers switch exhaustively on Type instead of probing optional
	// fields.
	Account struct {
		ID          string        `json:"id"`
		Name        string        `json:"name"`
		Type        AccountType   `json:"type"`
		Balance     int64         `json:"balance"` // cents; negative for card invoices
		Color       string        `json:"color"`
		Status      AccountStatus `json:"status"`
		Brand       CardBrand     `json:"brand,omitempty"`
		LastDigits  string        `json:"lastDigits,omitempty"`
		Institution string        `json:"institution,omitempty"`
		Notes       string        `json:"notes,omitempty"`

		CreditCard *CreditCardDetails `json:"creditCard,omitempty"`
		DebitCard  *DebitCardDetails  `json:"debitCard,omitempty"`
		Wallet     *WalletDetails     `json:"wallet,omitempty"`
	}
)

var (
	ErrMissingInstitution = errors.New("missing institution for card account")
	ErrMissingCreditLimit = errors.New("missing credit limit for credit card")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrVariantMismatch    = errors.New("account details do not match account type")
)

func (t AccountType) Validate() error {
	switch t {
	case Wallet, Bank, CreditCard, DebitCard, Investment:
		return nil
	}
	return ErrInvalidAccountType
}

// Validate checks required fields and that the detail variant agrees with
// the account type. Institution is required for both card types; a credit
// limit is required for credit cards.
func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrMissingName
	}
	if err := a.Type.Validate(); err != nil {
		return err
	}
	switch a.Type {
	case CreditCard:
		if a.DebitCard != nil || a.Wallet != nil {
			return ErrVariantMismatch
		}
		if strings.TrimSpace(a.Institution) == "" {
			return ErrMissingInstitution
		}
		if a.CreditCard == nil || a.CreditCard.CreditLimit.Cents <= 0 {
			return ErrMissingCreditLimit
		}
	case DebitCard:
		if a.CreditCard != nil || a.Wallet != nil {
			return ErrVariantMismatch
		}
		if strings.TrimSpace(a.Institution) == "" {
			return ErrMissingInstitution
		}
	case Wallet:
		if a.CreditCard != nil || a.DebitCard != nil {
			return ErrVariantMismatch
		}
	case Bank, Investment:
		if a.CreditCard != nil || a.DebitCard != nil || a.Wallet != nil {
			return ErrVariantMismatch
		}
	}
	return nil
}

// ConsolidatedBalance sums the balances of all accounts, regardless of
// status. Credit-card invoices contribute their raw (negative) figure;
// this is an arithmetic total, not a net-worth calculation.
func ConsolidatedBalance(accounts []Account) int64 {
	var total int64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}

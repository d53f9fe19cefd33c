package core

import (
	"errors"
	"strings"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

type (
	TransactionType string

	// Category is one node of the two-level category hierarchy. A category
	// without ParentID is top-level; one whose ParentID references another
	// category is a subcategory. The model supports no deeper nesting.
	Category struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Icon     string          `json:"icon"`
		Color    string          `json:"color"`
		Type     TransactionType `json:"type"`
		ParentID string          `json:"parentId,omitempty"`
	}

	// Installments marks one record of an installment series. Current is
	// 1-indexed; siblings share only the Total value, there is no linkage
	// between their ids.
	Installments struct {
		Current int `json:"current"`
		Total   int `json:"total"`
	}

	// Transaction is a single income or expense record. Amount is always
	// positive; the sign is derived from Type at aggregation time.
	Transaction struct {
		ID           string          `json:"id"`
		Description  string          `json:"description"`
		Amount       Money           `json:"amount"`
		Date         Date            `json:"date"`
		CategoryID   string          `json:"categoryId"`
		AccountID    string          `json:"accountId"`
		Type         TransactionType `json:"type"`
		IsFixed      bool            `json:"isFixed"`
		Paid         bool            `json:"paid"`
		Installments *Installments   `json:"installments,omitempty"`
		Notes        string          `json:"notes,omitempty"`
	}

	// UserProfile is the singleton settings record.
	UserProfile struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Currency        string `json:"currency"`
		BiometryEnabled bool   `json:"biometryEnabled"`
		BackupEnabled   bool   `json:"backupEnabled"`
		Theme           string `json:"theme"`
	}
)

var (
	ErrMissingAmount      = errors.New("missing amount")
	ErrMissingDescription = errors.New("missing description")
	ErrMissingCategory    = errors.New("missing category")
	ErrMissingAccount     = errors.New("missing account")
	ErrMissingName        = errors.New("missing name")
	ErrInvalidType        = errors.New("invalid transaction type")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

// Validate checks the required fields of a transaction draft. A failing
// draft must not be persisted, not even partially.
func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrMissingDescription
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrMissingCategory
	}
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrMissingAccount
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	return t.Date.Validate()
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingName
	}
	return c.Type.Validate()
}

// IsTopLevel reports whether the category has no parent.
func (c Category) IsTopLevel() bool { return c.ParentID == "" }

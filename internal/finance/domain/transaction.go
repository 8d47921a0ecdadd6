package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	financeErrors "wealthtracker/internal/finance/errors"
)

// Transaction is a signed monetary event in the cash ledger. The sign
// of Amount is never user-supplied: it is derived from the subcategory's
// parent category at the write boundary (see NormalizeAmount).
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	UserID        string          `json:"-"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	SubCategoryID uuid.UUID       `json:"subcategory_id"`
	LocationID    *uuid.UUID      `json:"location_id,omitempty"`
}

func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return financeErrors.NewValidationError("Transaction date is required")
	}
	if t.SubCategoryID == uuid.Nil {
		return financeErrors.NewValidationError("Transaction requires a subcategory")
	}
	if len(t.Description) > 200 {
		return financeErrors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}

// NormalizeAmount forces the sign an amount must carry under a category
// type: negative for expenses, positive for income. The magnitude of
// the user-entered value is preserved, and renormalizing an already
// stored amount is a no-op.
func NormalizeAmount(amount decimal.Decimal, transactionType string) decimal.Decimal {
	if transactionType == TransactionTypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// LedgerEntry is a transaction joined with the classification of its
// parent category, the shape every cash-flow metric consumes.
type LedgerEntry struct {
	Transaction
	CategoryName    string `json:"category_name"`
	SubCategoryName string `json:"subcategory_name"`
	TransactionType string `json:"transaction_type"`
	ExpenseType     string `json:"expense_type"`
	IsHousing       bool   `json:"is_housing"`
}

type TransactionRepository interface {
	Save(ctx context.Context, transaction *Transaction) error
	Update(ctx context.Context, transaction *Transaction) (int64, error)
	FindByID(ctx context.Context, transactionID uuid.UUID) (*Transaction, error)
	Delete(ctx context.Context, transactionID uuid.UUID, userID string) error
	// FindEntriesForPeriod returns the user's ledger entries for one
	// calendar month, joined with category classification.
	FindEntriesForPeriod(ctx context.Context, userID string, year int, month time.Month) ([]LedgerEntry, error)
	// FindEntriesForYear returns the user's ledger entries for a whole
	// year, ordered by date ascending.
	FindEntriesForYear(ctx context.Context, userID string, year int) ([]LedgerEntry, error)
	AvailableYears(ctx context.Context, userID string) ([]int, error)
	AvailableMonths(ctx context.Context, userID string, year int) ([]time.Month, error)
}

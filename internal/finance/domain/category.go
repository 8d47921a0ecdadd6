package domain

import (
	"context"

	"github.com/google/uuid"
	financeErrors "wealthtracker/internal/finance/errors"
)

const (
	TransactionTypeIncome  = "INCOME"
	TransactionTypeExpense = "EXPENSE"

	ExpenseTypeFixed         = "FIXED"
	ExpenseTypeVariable      = "VARIABLE"
	ExpenseTypeNotApplicable = "N/A"
)

func IsValidTransactionType(transactionType string) bool {
	return transactionType == TransactionTypeIncome || transactionType == TransactionTypeExpense
}

// Category classifies transactions into income or expense and, for
// expenses, fixed vs. variable. Every user owns a private taxonomy.
type Category struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"-"`
	Name            string    `json:"name"`
	TransactionType string    `json:"transaction_type"`
	ExpenseType     string    `json:"expense_type"`
	IsHousing       bool      `json:"is_housing"`
}

// Validate enforces the type pairing: an expense category must be fixed
// or variable, an income category carries no expense type.
func (c *Category) Validate() error {
	if c.Name == "" {
		return financeErrors.NewValidationError("Category name is required")
	}
	if !IsValidTransactionType(c.TransactionType) {
		return financeErrors.NewValidationError("Transaction type must be 'INCOME' or 'EXPENSE'")
	}
	if c.TransactionType == TransactionTypeExpense {
		if c.ExpenseType != ExpenseTypeFixed && c.ExpenseType != ExpenseTypeVariable {
			return financeErrors.NewValidationError("Expense category must be 'FIXED' or 'VARIABLE'")
		}
	}
	if c.TransactionType == TransactionTypeIncome && c.ExpenseType != ExpenseTypeNotApplicable {
		return financeErrors.NewValidationError("Income category must use expense type 'N/A'")
	}
	return nil
}

// SubCategory refines a category. Its transaction and expense types are
// inherited from the parent, never stored twice.
type SubCategory struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"-"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	IsEssential bool      `json:"is_essential"`
}

func (s *SubCategory) Validate() error {
	if s.Name == "" {
		return financeErrors.NewValidationError("Subcategory name is required")
	}
	if s.CategoryID == uuid.Nil {
		return financeErrors.NewValidationError("Subcategory requires a parent category")
	}
	return nil
}

// Location is an optional tag on a transaction with no aggregation
// semantics.
type Location struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"-"`
	Name   string    `json:"name"`
}

type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) (int64, error)
	FindByID(ctx context.Context, categoryID uuid.UUID) (*Category, error)
	FindByUser(ctx context.Context, userID string) ([]Category, error)
	ExistsByName(ctx context.Context, userID, name string) (bool, error)
	CountSubCategories(ctx context.Context, categoryID uuid.UUID) (int, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

type SubCategoryRepository interface {
	Save(ctx context.Context, subCategory *SubCategory) error
	FindByID(ctx context.Context, subCategoryID uuid.UUID) (*SubCategory, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]SubCategory, error)
	FindByUser(ctx context.Context, userID string) ([]SubCategory, error)
	ExistsByName(ctx context.Context, categoryID uuid.UUID, name string) (bool, error)
	CountTransactions(ctx context.Context, subCategoryID uuid.UUID) (int, error)
	Delete(ctx context.Context, subCategoryID uuid.UUID) error
}

type LocationRepository interface {
	Save(ctx context.Context, location *Location) error
	FindByUser(ctx context.Context, userID string) ([]Location, error)
	ExistsByName(ctx context.Context, userID, name string) (bool, error)
	Delete(ctx context.Context, locationID uuid.UUID, userID string) error
}

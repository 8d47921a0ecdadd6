package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"wealthtracker/internal/finance/domain"
	financeErrors "wealthtracker/internal/finance/errors"
	"wealthtracker/internal/finance/infrastructure"
)

type stubCategoryResolver struct {
	category *domain.Category
	err      error
}

func (s *stubCategoryResolver) GetCategoryBySubCategory(ctx context.Context, subCategoryID uuid.UUID, userID string) (*domain.Category, error) {
	return s.category, s.err
}

func TestCreateTransaction_ExpenseStoredNegative(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	resolver := &stubCategoryResolver{category: &domain.Category{
		TransactionType: domain.TransactionTypeExpense,
		ExpenseType:     domain.ExpenseTypeVariable,
	}}
	service := NewTransactionService(repo, resolver)

	transaction := &domain.Transaction{
		UserID:        "user-1",
		Date:          time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(100),
		SubCategoryID: uuid.New(),
	}
	err := service.CreateTransaction(context.Background(), transaction)
	assert.NoError(t, err)

	assert.Len(t, repo.Saved, 1)
	assert.True(t, repo.Saved[0].Amount.Equal(decimal.NewFromInt(-100)), "stored amount: %s", repo.Saved[0].Amount)
	assert.NotEqual(t, uuid.Nil, repo.Saved[0].ID)
}

func TestCreateTransaction_IncomeStoredPositive(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	resolver := &stubCategoryResolver{category: &domain.Category{
		TransactionType: domain.TransactionTypeIncome,
		ExpenseType:     domain.ExpenseTypeNotApplicable,
	}}
	service := NewTransactionService(repo, resolver)

	transaction := &domain.Transaction{
		UserID:        "user-1",
		Date:          time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(100),
		SubCategoryID: uuid.New(),
	}
	err := service.CreateTransaction(context.Background(), transaction)
	assert.NoError(t, err)
	assert.True(t, repo.Saved[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestCreateTransaction_InvalidSubCategory(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	resolver := &stubCategoryResolver{err: financeErrors.ErrInvalidSubCategory}
	service := NewTransactionService(repo, resolver)

	err := service.CreateTransaction(context.Background(), &domain.Transaction{
		UserID:        "user-1",
		Date:          time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(10),
		SubCategoryID: uuid.New(),
	})
	assert.ErrorIs(t, err, financeErrors.ErrInvalidSubCategory)
	assert.Empty(t, repo.Saved)
}

func TestUpdateTransaction_RenormalizesSign(t *testing.T) {
	transactionID := uuid.New()
	repo := &infrastructure.MockTransactionRepository{
		Entries: []domain.LedgerEntry{{
			Transaction: domain.Transaction{
				ID:     transactionID,
				UserID: "user-1",
				Date:   time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
				Amount: decimal.NewFromInt(-100),
			},
		}},
	}
	resolver := &stubCategoryResolver{category: &domain.Category{
		TransactionType: domain.TransactionTypeExpense,
		ExpenseType:     domain.ExpenseTypeFixed,
	}}
	service := NewTransactionService(repo, resolver)

	// Re-saving an already normalized amount keeps the same value.
	err := service.UpdateTransaction(context.Background(), &domain.Transaction{
		ID:            transactionID,
		UserID:        "user-1",
		Date:          time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(-100),
		SubCategoryID: uuid.New(),
	})
	assert.NoError(t, err)
	assert.Len(t, repo.Updated, 1)
	assert.True(t, repo.Updated[0].Amount.Equal(decimal.NewFromInt(-100)))
}

func TestUpdateTransaction_OtherUsersTransaction(t *testing.T) {
	transactionID := uuid.New()
	repo := &infrastructure.MockTransactionRepository{
		Entries: []domain.LedgerEntry{{
			Transaction: domain.Transaction{
				ID:     transactionID,
				UserID: "someone-else",
				Date:   time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
				Amount: decimal.NewFromInt(-100),
			},
		}},
	}
	resolver := &stubCategoryResolver{category: &domain.Category{TransactionType: domain.TransactionTypeExpense}}
	service := NewTransactionService(repo, resolver)

	err := service.UpdateTransaction(context.Background(), &domain.Transaction{
		ID:            transactionID,
		UserID:        "user-1",
		Date:          time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(50),
		SubCategoryID: uuid.New(),
	})
	assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
}

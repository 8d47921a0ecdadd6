package application

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
	financeErrors "wealthtracker/internal/finance/errors"
)

// CategoryResolver yields the parent category a subcategory belongs to,
// scoped to the owning user. The transaction service needs it to derive
// the stored sign of every amount.
type CategoryResolver interface {
	GetCategoryBySubCategory(ctx context.Context, subCategoryID uuid.UUID, userID string) (*domain.Category, error)
}

type TransactionService struct {
	repo       domain.TransactionRepository
	categories CategoryResolver
}

func NewTransactionService(repo domain.TransactionRepository, categories CategoryResolver) *TransactionService {
	return &TransactionService{repo: repo, categories: categories}
}

// CreateTransaction validates the transaction and applies the sign
// convention before persisting: the user enters a magnitude, the parent
// category decides whether it is stored negative or positive.
func (s *TransactionService) CreateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	category, err := s.categories.GetCategoryBySubCategory(ctx, transaction.SubCategoryID, transaction.UserID)
	if err != nil {
		return err
	}
	transaction.ID = uuid.New()
	transaction.Amount = domain.NormalizeAmount(transaction.Amount, category.TransactionType)
	return s.repo.Save(ctx, transaction)
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, transaction.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return financeErrors.ErrTransactionNotFound
		}
		return err
	}
	if existing.UserID != transaction.UserID {
		return financeErrors.ErrTransactionNotFound
	}
	category, err := s.categories.GetCategoryBySubCategory(ctx, transaction.SubCategoryID, transaction.UserID)
	if err != nil {
		return err
	}
	transaction.Amount = domain.NormalizeAmount(transaction.Amount, category.TransactionType)
	affected, err := s.repo.Update(ctx, transaction)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID uuid.UUID, userID string) error {
	existing, err := s.repo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return financeErrors.ErrTransactionNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return financeErrors.ErrTransactionNotFound
	}
	return s.repo.Delete(ctx, transactionID, userID)
}

func (s *TransactionService) GetPeriodTransactions(ctx context.Context, userID string, year int, month time.Month) ([]domain.LedgerEntry, error) {
	return s.repo.FindEntriesForPeriod(ctx, userID, year, month)
}

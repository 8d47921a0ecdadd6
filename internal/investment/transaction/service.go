package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	assets "wealthtracker/internal/investment/asset"
	"wealthtracker/internal/investment/models"
)

var (
	ErrTransactionNotFound = errors.New("investment transaction doesn't exist")
	ErrInvalidAction       = errors.New("action must be BUY or SELL")
	ErrInvalidShares       = errors.New("shares must be greater than zero")
	ErrInvalidPrice        = errors.New("price per share must be greater than zero")
)

// AssetSource narrows the asset service to the ownership check.
type AssetSource interface {
	GetAssetByID(ctx context.Context, assetID uuid.UUID, userID string) (*assets.Asset, error)
}

type Service interface {
	RecordTransaction(ctx context.Context, userID string, transaction *models.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID uuid.UUID, userID string) error
	GetAssetTransactions(ctx context.Context, assetID uuid.UUID, userID string) ([]models.Transaction, error)
	GetUserTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	SumInvested(ctx context.Context, assetID uuid.UUID, until *time.Time) (decimal.Decimal, error)
	MonthlyNet(ctx context.Context, userID string, year int) (map[time.Month]decimal.Decimal, error)
}

type service struct {
	repo       Repository
	assetStore AssetSource
}

func NewTransactionService(repo Repository, assetStore AssetSource) Service {
	return &service{repo: repo, assetStore: assetStore}
}

func (s *service) RecordTransaction(ctx context.Context, userID string, transaction *models.Transaction) error {
	if transaction.Action != models.ActionBuy && transaction.Action != models.ActionSell {
		return ErrInvalidAction
	}
	if !transaction.Shares.IsPositive() {
		return ErrInvalidShares
	}
	if !transaction.PricePerShare.IsPositive() {
		return ErrInvalidPrice
	}
	if _, err := s.assetStore.GetAssetByID(ctx, transaction.AssetID, userID); err != nil {
		return err
	}
	transaction.ID = uuid.New()
	transaction.Amount = models.NormalizedAmount(transaction.Shares, transaction.PricePerShare, transaction.Action)
	return s.repo.createTransaction(ctx, transaction)
}

func (s *service) DeleteTransaction(ctx context.Context, transactionID uuid.UUID, userID string) error {
	existing, err := s.repo.getTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransactionNotFound
		}
		return err
	}
	if _, err := s.assetStore.GetAssetByID(ctx, existing.AssetID, userID); err != nil {
		return ErrTransactionNotFound
	}
	return s.repo.deleteTransaction(ctx, transactionID)
}

func (s *service) GetAssetTransactions(ctx context.Context, assetID uuid.UUID, userID string) ([]models.Transaction, error) {
	if _, err := s.assetStore.GetAssetByID(ctx, assetID, userID); err != nil {
		return nil, err
	}
	return s.repo.findByAsset(ctx, assetID)
}

func (s *service) GetUserTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.repo.findByUser(ctx, userID)
}

func (s *service) SumInvested(ctx context.Context, assetID uuid.UUID, until *time.Time) (decimal.Decimal, error) {
	return s.repo.sumAmountByAsset(ctx, assetID, until)
}

func (s *service) MonthlyNet(ctx context.Context, userID string, year int) (map[time.Month]decimal.Decimal, error) {
	return s.repo.monthlyNetByUser(ctx, userID, year)
}

package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	assets "wealthtracker/internal/investment/asset"
	"wealthtracker/internal/investment/models"
)

var (
	ErrEntryNotFound = errors.New("valuation entry doesn't exist")
	ErrEntryExists   = errors.New("a valuation for this asset and date already exists")
)

// AssetSource narrows the asset service to the ownership check.
type AssetSource interface {
	GetAssetByID(ctx context.Context, assetID uuid.UUID, userID string) (*assets.Asset, error)
}

type Service interface {
	RecordValuation(ctx context.Context, userID string, entry *models.AssetHistory) error
	DeleteValuation(ctx context.Context, entryID uuid.UUID, userID string) error
	GetAssetValuations(ctx context.Context, assetID uuid.UUID, userID string) ([]models.AssetHistory, error)
	Latest(ctx context.Context, assetID uuid.UUID) (*models.AssetHistory, error)
	Through(ctx context.Context, assetID uuid.UUID, cutoff time.Time) ([]models.AssetHistory, error)
}

type service struct {
	repo       Repository
	assetStore AssetSource
}

func NewHistoryService(repo Repository, assetStore AssetSource) Service {
	return &service{repo: repo, assetStore: assetStore}
}

func (s *service) RecordValuation(ctx context.Context, userID string, entry *models.AssetHistory) error {
	if _, err := s.assetStore.GetAssetByID(ctx, entry.AssetID, userID); err != nil {
		return err
	}
	exists, err := s.repo.doesEntryExist(ctx, entry.AssetID, entry.Date)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntryExists
	}
	entry.ID = uuid.New()
	return s.repo.createEntry(ctx, entry)
}

func (s *service) DeleteValuation(ctx context.Context, entryID uuid.UUID, userID string) error {
	existing, err := s.repo.getEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEntryNotFound
		}
		return err
	}
	if _, err := s.assetStore.GetAssetByID(ctx, existing.AssetID, userID); err != nil {
		return ErrEntryNotFound
	}
	return s.repo.deleteEntry(ctx, entryID)
}

func (s *service) GetAssetValuations(ctx context.Context, assetID uuid.UUID, userID string) ([]models.AssetHistory, error) {
	if _, err := s.assetStore.GetAssetByID(ctx, assetID, userID); err != nil {
		return nil, err
	}
	return s.repo.findByAssetThrough(ctx, assetID, time.Now())
}

func (s *service) Latest(ctx context.Context, assetID uuid.UUID) (*models.AssetHistory, error) {
	entry, err := s.repo.latestByAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *service) Through(ctx context.Context, assetID uuid.UUID, cutoff time.Time) ([]models.AssetHistory, error) {
	return s.repo.findByAssetThrough(ctx, assetID, cutoff)
}

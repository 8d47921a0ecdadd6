package assets

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAssetNotFound   = errors.New("asset doesn't exist")
	ErrAssetNameTaken  = errors.New("an asset with this name already exists")
	ErrInvalidCategory = errors.New("invalid asset category")
	ErrAssetInUse      = errors.New("asset has transactions and cannot be deleted")
)

var validCategories = map[string]bool{
	CategoryCrypto:    true,
	CategoryIndexFund: true,
	CategoryCommodity: true,
	CategoryStock:     true,
}

type Service interface {
	CreateAsset(ctx context.Context, asset *Asset) error
	UpdateAsset(ctx context.Context, asset *Asset) error
	GetAssetByID(ctx context.Context, assetID uuid.UUID, userID string) (*Asset, error)
	GetUserAssets(ctx context.Context, userID string) ([]Asset, error)
	GetActiveAssets(ctx context.Context, userID string) ([]Asset, error)
	DeleteAsset(ctx context.Context, assetID uuid.UUID, userID string) error
}

type service struct {
	repo Repository
}

func NewAssetService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAsset(ctx context.Context, asset *Asset) error {
	if !validCategories[asset.Category] {
		return ErrInvalidCategory
	}
	exists, err := s.repo.doesAssetExist(ctx, asset.UserID, asset.Name)
	if err != nil {
		return err
	}
	if exists {
		return ErrAssetNameTaken
	}
	asset.ID = uuid.New()
	asset.IsActive = true
	return s.repo.createAsset(ctx, asset)
}

func (s *service) UpdateAsset(ctx context.Context, asset *Asset) error {
	if !validCategories[asset.Category] {
		return ErrInvalidCategory
	}
	err := s.repo.updateAsset(ctx, asset)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAssetNotFound
	}
	return err
}

func (s *service) GetAssetByID(ctx context.Context, assetID uuid.UUID, userID string) (*Asset, error) {
	asset, err := s.repo.getAssetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	if asset.UserID != userID {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}

func (s *service) GetUserAssets(ctx context.Context, userID string) ([]Asset, error) {
	return s.repo.findByUser(ctx, userID, false)
}

func (s *service) GetActiveAssets(ctx context.Context, userID string) ([]Asset, error) {
	return s.repo.findByUser(ctx, userID, true)
}

func (s *service) DeleteAsset(ctx context.Context, assetID uuid.UUID, userID string) error {
	if _, err := s.GetAssetByID(ctx, assetID, userID); err != nil {
		return err
	}
	count, err := s.repo.countTransactions(ctx, assetID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAssetInUse
	}
	return s.repo.deleteAsset(ctx, assetID)
}

package assets

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	CategoryCrypto    = "CRYPTO"
	CategoryIndexFund = "INDEX_FUND"
	CategoryCommodity = "COMMODITY"
	CategoryStock     = "STOCK"
)

type Asset struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	ISIN      *string   `json:"isin,omitempty"`
	Platform  string    `json:"platform"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	createAsset(ctx context.Context, asset *Asset) error
	updateAsset(ctx context.Context, asset *Asset) error
	getAssetByID(ctx context.Context, assetID uuid.UUID) (*Asset, error)
	findByUser(ctx context.Context, userID string, onlyActive bool) ([]Asset, error)
	doesAssetExist(ctx context.Context, userID, name string) (bool, error)
	deleteAsset(ctx context.Context, assetID uuid.UUID) error
	countTransactions(ctx context.Context, assetID uuid.UUID) (int, error)
}

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) Repository {
	return &assetRepository{db: db}
}

func (r *assetRepository) createAsset(ctx context.Context, asset *Asset) error {
	query := `
        INSERT INTO assets (id, user_id, name, category, isin, platform, currency, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
    `
	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.UserID,
		asset.Name,
		asset.Category,
		asset.ISIN,
		asset.Platform,
		asset.Currency,
		asset.IsActive,
	)
	return err
}

func (r *assetRepository) updateAsset(ctx context.Context, asset *Asset) error {
	query := `
        UPDATE assets
        SET name = $1, category = $2, isin = $3, platform = $4, currency = $5, is_active = $6, updated_at = NOW()
        WHERE id = $7 AND user_id = $8
    `
	result, err := r.db.ExecContext(ctx, query,
		asset.Name,
		asset.Category,
		asset.ISIN,
		asset.Platform,
		asset.Currency,
		asset.IsActive,
		asset.ID,
		asset.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *assetRepository) getAssetByID(ctx context.Context, assetID uuid.UUID) (*Asset, error) {
	query := `
        SELECT id, user_id, name, category, isin, platform, currency, is_active, created_at, updated_at
        FROM assets WHERE id = $1
    `
	asset := &Asset{}
	err := r.db.QueryRowContext(ctx, query, assetID).Scan(
		&asset.ID,
		&asset.UserID,
		&asset.Name,
		&asset.Category,
		&asset.ISIN,
		&asset.Platform,
		&asset.Currency,
		&asset.IsActive,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (r *assetRepository) findByUser(ctx context.Context, userID string, onlyActive bool) ([]Asset, error) {
	query := `
        SELECT id, user_id, name, category, isin, platform, currency, is_active, created_at, updated_at
        FROM assets WHERE user_id = $1
    `
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assetList []Asset
	for rows.Next() {
		var asset Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.UserID,
			&asset.Name,
			&asset.Category,
			&asset.ISIN,
			&asset.Platform,
			&asset.Currency,
			&asset.IsActive,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		); err != nil {
			return nil, err
		}
		assetList = append(assetList, asset)
	}
	return assetList, rows.Err()
}

func (r *assetRepository) doesAssetExist(ctx context.Context, userID, name string) (bool, error) {
	query := `SELECT COUNT(1) FROM assets WHERE user_id = $1 AND name = $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if asset exists: %w", err)
	}
	return count > 0, nil
}

func (r *assetRepository) deleteAsset(ctx context.Context, assetID uuid.UUID) error {
	query := `DELETE FROM assets WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, assetID)
	return err
}

func (r *assetRepository) countTransactions(ctx context.Context, assetID uuid.UUID) (int, error) {
	query := `SELECT COUNT(1) FROM investment_transactions WHERE asset_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, assetID).Scan(&count)
	return count, err
}

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"wealthtracker/internal/investment/models"
)

type Repository interface {
	createEntry(ctx context.Context, entry *models.AssetHistory) error
	updateEntry(ctx context.Context, entry *models.AssetHistory) error
	deleteEntry(ctx context.Context, entryID uuid.UUID) error
	getEntryByID(ctx context.Context, entryID uuid.UUID) (*models.AssetHistory, error)
	latestByAsset(ctx context.Context, assetID uuid.UUID) (*models.AssetHistory, error)
	findByAssetThrough(ctx context.Context, assetID uuid.UUID, cutoff time.Time) ([]models.AssetHistory, error)
	doesEntryExist(ctx context.Context, assetID uuid.UUID, date time.Time) (bool, error)
}

type historyRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) Repository {
	return &historyRepository{db: db}
}

func (r *historyRepository) createEntry(ctx context.Context, entry *models.AssetHistory) error {
	query := `
        INSERT INTO asset_history (id, asset_id, date, value, created_at)
        VALUES ($1, $2, $3, $4, NOW())
    `
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.AssetID, entry.Date, entry.Value)
	return err
}

func (r *historyRepository) updateEntry(ctx context.Context, entry *models.AssetHistory) error {
	query := `UPDATE asset_history SET value = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, entry.Value, entry.ID)
	return err
}

func (r *historyRepository) deleteEntry(ctx context.Context, entryID uuid.UUID) error {
	query := `DELETE FROM asset_history WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, entryID)
	return err
}

func (r *historyRepository) getEntryByID(ctx context.Context, entryID uuid.UUID) (*models.AssetHistory, error) {
	query := `SELECT id, asset_id, date, value, created_at FROM asset_history WHERE id = $1`
	entry := &models.AssetHistory{}
	err := r.db.QueryRowContext(ctx, query, entryID).Scan(
		&entry.ID,
		&entry.AssetID,
		&entry.Date,
		&entry.Value,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *historyRepository) latestByAsset(ctx context.Context, assetID uuid.UUID) (*models.AssetHistory, error) {
	query := `
        SELECT id, asset_id, date, value, created_at
        FROM asset_history
        WHERE asset_id = $1
        ORDER BY date DESC
        LIMIT 1
    `
	entry := &models.AssetHistory{}
	err := r.db.QueryRowContext(ctx, query, assetID).Scan(
		&entry.ID,
		&entry.AssetID,
		&entry.Date,
		&entry.Value,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *historyRepository) findByAssetThrough(ctx context.Context, assetID uuid.UUID, cutoff time.Time) ([]models.AssetHistory, error) {
	query := `
        SELECT id, asset_id, date, value, created_at
        FROM asset_history
        WHERE asset_id = $1 AND date <= $2
        ORDER BY date ASC
    `
	rows, err := r.db.QueryContext(ctx, query, assetID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AssetHistory
	for rows.Next() {
		var entry models.AssetHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.AssetID,
			&entry.Date,
			&entry.Value,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *historyRepository) doesEntryExist(ctx context.Context, assetID uuid.UUID, date time.Time) (bool, error) {
	query := `SELECT COUNT(1) FROM asset_history WHERE asset_id = $1 AND date = $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, assetID, date).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if history entry exists: %w", err)
	}
	return count > 0, nil
}

package infrastructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
)

type LocationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Save(ctx context.Context, location *domain.Location) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (id, user_id, name) VALUES ($1, $2, $3)`,
		location.ID, location.UserID, location.Name,
	)
	return err
}

func (r *LocationRepository) FindByUser(ctx context.Context, userID string) ([]domain.Location, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name FROM locations WHERE user_id = $1 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(&location.ID, &location.UserID, &location.Name); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) ExistsByName(ctx context.Context, userID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM locations WHERE user_id = $1 AND name = $2)`,
		userID, name,
	).Scan(&exists)
	return exists, err
}

func (r *LocationRepository) Delete(ctx context.Context, locationID uuid.UUID, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1 AND user_id = $2`, locationID, userID)
	return err
}

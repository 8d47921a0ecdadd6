package infrastructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name, transaction_type, expense_type, is_housing)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.UserID, category.Name, category.TransactionType, category.ExpenseType, category.IsHousing,
	)
	return err
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, transaction_type = $2, expense_type = $3, is_housing = $4
         WHERE id = $5 AND user_id = $6`,
		category.Name, category.TransactionType, category.ExpenseType, category.IsHousing, category.ID, category.UserID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *CategoryRepository) FindByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, transaction_type, expense_type, is_housing FROM categories WHERE id = $1`,
		categoryID,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.TransactionType, &category.ExpenseType, &category.IsHousing)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, transaction_type, expense_type, is_housing
         FROM categories WHERE user_id = $1 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.TransactionType, &category.ExpenseType, &category.IsHousing); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, userID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = $1 AND name = $2)`,
		userID, name,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) CountSubCategories(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM subcategories WHERE category_id = $1`,
		categoryID,
	).Scan(&count)
	return count, err
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	return err
}

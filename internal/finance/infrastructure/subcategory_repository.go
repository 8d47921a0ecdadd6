package infrastructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
)

type SubCategoryRepository struct {
	db *sql.DB
}

func NewSubCategoryRepository(db *sql.DB) *SubCategoryRepository {
	return &SubCategoryRepository{db: db}
}

func (r *SubCategoryRepository) Save(ctx context.Context, subCategory *domain.SubCategory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subcategories (id, user_id, category_id, name, is_essential)
         VALUES ($1, $2, $3, $4, $5)`,
		subCategory.ID, subCategory.UserID, subCategory.CategoryID, subCategory.Name, subCategory.IsEssential,
	)
	return err
}

func (r *SubCategoryRepository) FindByID(ctx context.Context, subCategoryID uuid.UUID) (*domain.SubCategory, error) {
	var subCategory domain.SubCategory
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, category_id, name, is_essential FROM subcategories WHERE id = $1`,
		subCategoryID,
	).Scan(&subCategory.ID, &subCategory.UserID, &subCategory.CategoryID, &subCategory.Name, &subCategory.IsEssential)
	if err != nil {
		return nil, err
	}
	return &subCategory, nil
}

func (r *SubCategoryRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.SubCategory, error) {
	return r.query(ctx,
		`SELECT id, user_id, category_id, name, is_essential
         FROM subcategories WHERE category_id = $1 ORDER BY name`,
		categoryID)
}

func (r *SubCategoryRepository) FindByUser(ctx context.Context, userID string) ([]domain.SubCategory, error) {
	return r.query(ctx,
		`SELECT id, user_id, category_id, name, is_essential
         FROM subcategories WHERE user_id = $1 ORDER BY name`,
		userID)
}

func (r *SubCategoryRepository) query(ctx context.Context, query string, arg interface{}) ([]domain.SubCategory, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subCategories []domain.SubCategory
	for rows.Next() {
		var subCategory domain.SubCategory
		if err := rows.Scan(&subCategory.ID, &subCategory.UserID, &subCategory.CategoryID, &subCategory.Name, &subCategory.IsEssential); err != nil {
			return nil, err
		}
		subCategories = append(subCategories, subCategory)
	}
	return subCategories, rows.Err()
}

func (r *SubCategoryRepository) ExistsByName(ctx context.Context, categoryID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM subcategories WHERE category_id = $1 AND name = $2)`,
		categoryID, name,
	).Scan(&exists)
	return exists, err
}

func (r *SubCategoryRepository) CountTransactions(ctx context.Context, subCategoryID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM transactions WHERE subcategory_id = $1`,
		subCategoryID,
	).Scan(&count)
	return count, err
}

func (r *SubCategoryRepository) Delete(ctx context.Context, subCategoryID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subcategories WHERE id = $1`, subCategoryID)
	return err
}

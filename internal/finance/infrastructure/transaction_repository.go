package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(ctx context.Context, transaction *domain.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, date, amount, description, subcategory_id, location_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transaction.ID, transaction.UserID, transaction.Date, transaction.Amount,
		transaction.Description, transaction.SubCategoryID, transaction.LocationID,
	)
	return err
}

func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET date = $1, amount = $2, description = $3, subcategory_id = $4, location_id = $5
         WHERE id = $6 AND user_id = $7`,
		transaction.Date, transaction.Amount, transaction.Description,
		transaction.SubCategoryID, transaction.LocationID, transaction.ID, transaction.UserID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *TransactionRepository) FindByID(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, amount, description, subcategory_id, location_id
         FROM transactions WHERE id = $1`,
		transactionID,
	).Scan(&transaction.ID, &transaction.UserID, &transaction.Date, &transaction.Amount,
		&transaction.Description, &transaction.SubCategoryID, &transaction.LocationID)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, transactionID uuid.UUID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	return err
}

const ledgerEntrySelect = `
    SELECT t.id, t.user_id, t.date, t.amount, t.description, t.subcategory_id, t.location_id,
           c.name, s.name, c.transaction_type, c.expense_type, c.is_housing
    FROM transactions t
    JOIN subcategories s ON s.id = t.subcategory_id
    JOIN categories c ON c.id = s.category_id`

func (r *TransactionRepository) FindEntriesForPeriod(ctx context.Context, userID string, year int, month time.Month) ([]domain.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		ledgerEntrySelect+`
        WHERE t.user_id = $1
          AND EXTRACT(YEAR FROM t.date) = $2
          AND EXTRACT(MONTH FROM t.date) = $3
        ORDER BY t.date`,
		userID, year, int(month),
	)
	if err != nil {
		return nil, err
	}
	return scanLedgerEntries(rows)
}

func (r *TransactionRepository) FindEntriesForYear(ctx context.Context, userID string, year int) ([]domain.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		ledgerEntrySelect+`
        WHERE t.user_id = $1 AND EXTRACT(YEAR FROM t.date) = $2
        ORDER BY t.date`,
		userID, year,
	)
	if err != nil {
		return nil, err
	}
	return scanLedgerEntries(rows)
}

func scanLedgerEntries(rows *sql.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Date, &entry.Amount, &entry.Description,
			&entry.SubCategoryID, &entry.LocationID, &entry.CategoryName, &entry.SubCategoryName,
			&entry.TransactionType, &entry.ExpenseType, &entry.IsHousing); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *TransactionRepository) AvailableYears(ctx context.Context, userID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS y
         FROM transactions WHERE user_id = $1 ORDER BY y DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

func (r *TransactionRepository) AvailableMonths(ctx context.Context, userID string, year int) ([]time.Month, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT EXTRACT(MONTH FROM date)::int AS m
         FROM transactions WHERE user_id = $1 AND EXTRACT(YEAR FROM date) = $2 ORDER BY m`,
		userID, year,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []time.Month
	for rows.Next() {
		var month int
		if err := rows.Scan(&month); err != nil {
			return nil, err
		}
		months = append(months, time.Month(month))
	}
	return months, rows.Err()
}

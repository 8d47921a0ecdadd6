package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wealthtracker/internal/investment/models"
)

type Repository interface {
	createTransaction(ctx context.Context, transaction *models.Transaction) error
	deleteTransaction(ctx context.Context, transactionID uuid.UUID) error
	getTransactionByID(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error)
	findByAsset(ctx context.Context, assetID uuid.UUID) ([]models.Transaction, error)
	findByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	sumAmountByAsset(ctx context.Context, assetID uuid.UUID, until *time.Time) (decimal.Decimal, error)
	monthlyNetByUser(ctx context.Context, userID string, year int) (map[time.Month]decimal.Decimal, error)
}

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) Repository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) createTransaction(ctx context.Context, transaction *models.Transaction) error {
	query := `
        INSERT INTO investment_transactions (id, asset_id, date, action, shares, price_per_share, amount, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
    `
	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.AssetID,
		transaction.Date,
		transaction.Action,
		transaction.Shares,
		transaction.PricePerShare,
		transaction.Amount,
		transaction.Notes,
	)
	return err
}

func (r *transactionRepository) deleteTransaction(ctx context.Context, transactionID uuid.UUID) error {
	query := `DELETE FROM investment_transactions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, transactionID)
	return err
}

func (r *transactionRepository) getTransactionByID(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error) {
	query := `
        SELECT id, asset_id, date, action, shares, price_per_share, amount, notes, created_at
        FROM investment_transactions WHERE id = $1
    `
	transaction := &models.Transaction{}
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&transaction.ID,
		&transaction.AssetID,
		&transaction.Date,
		&transaction.Action,
		&transaction.Shares,
		&transaction.PricePerShare,
		&transaction.Amount,
		&transaction.Notes,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (r *transactionRepository) findByAsset(ctx context.Context, assetID uuid.UUID) ([]models.Transaction, error) {
	query := `
        SELECT id, asset_id, date, action, shares, price_per_share, amount, notes, created_at
        FROM investment_transactions
        WHERE asset_id = $1
        ORDER BY date ASC
    `
	rows, err := r.db.QueryContext(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionRepository) findByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
        SELECT t.id, t.asset_id, t.date, t.action, t.shares, t.price_per_share, t.amount, t.notes, t.created_at
        FROM investment_transactions t
        JOIN assets a ON a.id = t.asset_id
        WHERE a.user_id = $1
        ORDER BY t.date ASC
    `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// sumAmountByAsset totals the signed cash flows of one asset. A nil
// cutoff means the whole ledger.
func (r *transactionRepository) sumAmountByAsset(ctx context.Context, assetID uuid.UUID, until *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM investment_transactions WHERE asset_id = $1`
	args := []interface{}{assetID}
	if until != nil {
		query += ` AND date <= $2`
		args = append(args, *until)
	}
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *transactionRepository) monthlyNetByUser(ctx context.Context, userID string, year int) (map[time.Month]decimal.Decimal, error) {
	query := `
        SELECT EXTRACT(MONTH FROM t.date)::int, COALESCE(SUM(t.amount), 0)
        FROM investment_transactions t
        JOIN assets a ON a.id = t.asset_id
        WHERE a.user_id = $1 AND EXTRACT(YEAR FROM t.date) = $2
        GROUP BY 1
    `
	rows, err := r.db.QueryContext(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[time.Month]decimal.Decimal)
	for rows.Next() {
		var month int
		var total decimal.Decimal
		if err := rows.Scan(&month, &total); err != nil {
			return nil, err
		}
		totals[time.Month(month)] = total
	}
	return totals, rows.Err()
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var transaction models.Transaction
		if err := rows.Scan(
			&transaction.ID,
			&transaction.AssetID,
			&transaction.Date,
			&transaction.Action,
			&transaction.Shares,
			&transaction.PricePerShare,
			&transaction.Amount,
			&transaction.Notes,
			&transaction.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

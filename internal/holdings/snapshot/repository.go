package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the balance of one bank account on one date. At most one
// snapshot exists per account and date.
type Snapshot struct {
	ID             uuid.UUID       `json:"id"`
	AccountID      uuid.UUID       `json:"account_id"`
	Date           time.Time       `json:"date"`
	Balance        decimal.Decimal `json:"balance"`
	InterestEarned decimal.Decimal `json:"interest_earned"`
	CreatedAt      time.Time       `json:"created_at"`
}

type Repository interface {
	createSnapshot(ctx context.Context, snapshot *Snapshot) error
	updateSnapshot(ctx context.Context, snapshot *Snapshot) error
	deleteSnapshot(ctx context.Context, snapshotID uuid.UUID) error
	getSnapshotByID(ctx context.Context, snapshotID uuid.UUID) (*Snapshot, error)
	latestByAccount(ctx context.Context, accountID uuid.UUID) (*Snapshot, error)
	findByAccountThrough(ctx context.Context, accountID uuid.UUID, cutoff time.Time) ([]Snapshot, error)
	doesSnapshotExist(ctx context.Context, accountID uuid.UUID, date time.Time) (bool, error)
	sumInterestForYear(ctx context.Context, userID string, year int) (decimal.Decimal, error)
}

type snapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) Repository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) createSnapshot(ctx context.Context, snapshot *Snapshot) error {
	query := `
        INSERT INTO account_balance_snapshots (id, account_id, date, balance, interest_earned, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
    `
	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.AccountID,
		snapshot.Date,
		snapshot.Balance,
		snapshot.InterestEarned,
	)
	return err
}

func (r *snapshotRepository) updateSnapshot(ctx context.Context, snapshot *Snapshot) error {
	query := `
        UPDATE account_balance_snapshots
        SET balance = $1, interest_earned = $2
        WHERE id = $3
    `
	_, err := r.db.ExecContext(ctx, query, snapshot.Balance, snapshot.InterestEarned, snapshot.ID)
	return err
}

func (r *snapshotRepository) deleteSnapshot(ctx context.Context, snapshotID uuid.UUID) error {
	query := `DELETE FROM account_balance_snapshots WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, snapshotID)
	return err
}

func (r *snapshotRepository) getSnapshotByID(ctx context.Context, snapshotID uuid.UUID) (*Snapshot, error) {
	query := `
        SELECT id, account_id, date, balance, interest_earned, created_at
        FROM account_balance_snapshots WHERE id = $1
    `
	snapshot := &Snapshot{}
	err := r.db.QueryRowContext(ctx, query, snapshotID).Scan(
		&snapshot.ID,
		&snapshot.AccountID,
		&snapshot.Date,
		&snapshot.Balance,
		&snapshot.InterestEarned,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *snapshotRepository) latestByAccount(ctx context.Context, accountID uuid.UUID) (*Snapshot, error) {
	query := `
        SELECT id, account_id, date, balance, interest_earned, created_at
        FROM account_balance_snapshots
        WHERE account_id = $1
        ORDER BY date DESC
        LIMIT 1
    `
	snapshot := &Snapshot{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&snapshot.ID,
		&snapshot.AccountID,
		&snapshot.Date,
		&snapshot.Balance,
		&snapshot.InterestEarned,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *snapshotRepository) findByAccountThrough(ctx context.Context, accountID uuid.UUID, cutoff time.Time) ([]Snapshot, error) {
	query := `
        SELECT id, account_id, date, balance, interest_earned, created_at
        FROM account_balance_snapshots
        WHERE account_id = $1 AND date <= $2
        ORDER BY date ASC
    `
	rows, err := r.db.QueryContext(ctx, query, accountID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snapshot Snapshot
		if err := rows.Scan(
			&snapshot.ID,
			&snapshot.AccountID,
			&snapshot.Date,
			&snapshot.Balance,
			&snapshot.InterestEarned,
			&snapshot.CreatedAt,
		); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

func (r *snapshotRepository) doesSnapshotExist(ctx context.Context, accountID uuid.UUID, date time.Time) (bool, error) {
	query := `SELECT COUNT(1) FROM account_balance_snapshots WHERE account_id = $1 AND date = $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, accountID, date).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if snapshot exists: %w", err)
	}
	return count > 0, nil
}

func (r *snapshotRepository) sumInterestForYear(ctx context.Context, userID string, year int) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(s.interest_earned), 0)
        FROM account_balance_snapshots s
        JOIN bank_accounts a ON a.id = s.account_id
        WHERE a.user_id = $1 AND EXTRACT(YEAR FROM s.date) = $2
    `
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, userID, year).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

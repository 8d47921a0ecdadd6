package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	AccountTypeChecking = "CHECKING"
	AccountTypeSavings  = "SAVINGS"
	AccountTypeCash     = "CASH"
	AccountTypeDebt     = "DEBT"
)

type BankAccount struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Institution string    `json:"institution"`
	AccountType string    `json:"account_type"`
	Currency    string    `json:"currency"`
	IBAN        *string   `json:"iban,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Repository interface {
	createAccount(ctx context.Context, account *BankAccount) error
	updateAccount(ctx context.Context, account *BankAccount) error
	getAccountByID(ctx context.Context, accountID uuid.UUID) (*BankAccount, error)
	findByUser(ctx context.Context, userID string, onlyActive bool) ([]BankAccount, error)
	doesAccountExist(ctx context.Context, userID, name, institution string) (bool, error)
	deactivateAccount(ctx context.Context, accountID uuid.UUID) error
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) Repository {
	return &accountRepository{db: db}
}

func (r *accountRepository) createAccount(ctx context.Context, account *BankAccount) error {
	query := `
        INSERT INTO bank_accounts (id, user_id, name, institution, account_type, currency, iban, notes, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
    `
	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.Name,
		account.Institution,
		account.AccountType,
		account.Currency,
		account.IBAN,
		account.Notes,
		account.IsActive,
	)
	return err
}

func (r *accountRepository) updateAccount(ctx context.Context, account *BankAccount) error {
	query := `
        UPDATE bank_accounts
        SET name = $1, institution = $2, account_type = $3, currency = $4, iban = $5, notes = $6, is_active = $7, updated_at = NOW()
        WHERE id = $8 AND user_id = $9
    `
	result, err := r.db.ExecContext(ctx, query,
		account.Name,
		account.Institution,
		account.AccountType,
		account.Currency,
		account.IBAN,
		account.Notes,
		account.IsActive,
		account.ID,
		account.UserID,
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

func (r *accountRepository) getAccountByID(ctx context.Context, accountID uuid.UUID) (*BankAccount, error) {
	query := `
        SELECT id, user_id, name, institution, account_type, currency, iban, notes, is_active, created_at, updated_at
        FROM bank_accounts WHERE id = $1
    `
	account := &BankAccount{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Institution,
		&account.AccountType,
		&account.Currency,
		&account.IBAN,
		&account.Notes,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) findByUser(ctx context.Context, userID string, onlyActive bool) ([]BankAccount, error) {
	query := `
        SELECT id, user_id, name, institution, account_type, currency, iban, notes, is_active, created_at, updated_at
        FROM bank_accounts WHERE user_id = $1
    `
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY institution, name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []BankAccount
	for rows.Next() {
		var account BankAccount
		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.Name,
			&account.Institution,
			&account.AccountType,
			&account.Currency,
			&account.IBAN,
			&account.Notes,
			&account.IsActive,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) doesAccountExist(ctx context.Context, userID, name, institution string) (bool, error) {
	query := `SELECT COUNT(1) FROM bank_accounts WHERE user_id = $1 AND name = $2 AND institution = $3`
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, name, institution).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if account exists: %w", err)
	}
	return count > 0, nil
}

func (r *accountRepository) deactivateAccount(ctx context.Context, accountID uuid.UUID) error {
	query := `UPDATE bank_accounts SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, accountID)
	return err
}

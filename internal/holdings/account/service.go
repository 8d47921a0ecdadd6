package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound    = errors.New("bank account doesn't exist")
	ErrAccountNameTaken   = errors.New("an account with this name already exists at this institution")
	ErrInvalidAccountType = errors.New("invalid account type")
)

var validAccountTypes = map[string]bool{
	AccountTypeChecking: true,
	AccountTypeSavings:  true,
	AccountTypeCash:     true,
	AccountTypeDebt:     true,
}

type Service interface {
	CreateAccount(ctx context.Context, account *BankAccount) error
	UpdateAccount(ctx context.Context, account *BankAccount) error
	GetAccountByID(ctx context.Context, accountID uuid.UUID, userID string) (*BankAccount, error)
	GetUserAccounts(ctx context.Context, userID string) ([]BankAccount, error)
	GetActiveAccounts(ctx context.Context, userID string) ([]BankAccount, error)
	DeactivateAccount(ctx context.Context, accountID uuid.UUID, userID string) error
}

type service struct {
	repo Repository
}

func NewAccountService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAccount(ctx context.Context, account *BankAccount) error {
	if !validAccountTypes[account.AccountType] {
		return ErrInvalidAccountType
	}
	exists, err := s.repo.doesAccountExist(ctx, account.UserID, account.Name, account.Institution)
	if err != nil {
		return err
	}
	if exists {
		return ErrAccountNameTaken
	}
	account.ID = uuid.New()
	account.IsActive = true
	return s.repo.createAccount(ctx, account)
}

func (s *service) UpdateAccount(ctx context.Context, account *BankAccount) error {
	if !validAccountTypes[account.AccountType] {
		return ErrInvalidAccountType
	}
	err := s.repo.updateAccount(ctx, account)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	return err
}

func (s *service) GetAccountByID(ctx context.Context, accountID uuid.UUID, userID string) (*BankAccount, error) {
	account, err := s.repo.getAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (s *service) GetUserAccounts(ctx context.Context, userID string) ([]BankAccount, error) {
	return s.repo.findByUser(ctx, userID, false)
}

func (s *service) GetActiveAccounts(ctx context.Context, userID string) ([]BankAccount, error) {
	return s.repo.findByUser(ctx, userID, true)
}

func (s *service) DeactivateAccount(ctx context.Context, accountID uuid.UUID, userID string) error {
	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return err
	}
	return s.repo.deactivateAccount(ctx, accountID)
}

package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wealthtracker/internal/holdings/account"
	"wealthtracker/internal/timeseries"
)

var (
	ErrSnapshotNotFound = errors.New("balance snapshot doesn't exist")
	ErrSnapshotExists   = errors.New("a snapshot for this account and date already exists")
)

// AccountSource narrows the account service to what snapshots need.
type AccountSource interface {
	GetAccountByID(ctx context.Context, accountID uuid.UUID, userID string) (*account.BankAccount, error)
	GetActiveAccounts(ctx context.Context, userID string) ([]account.BankAccount, error)
}

// CashPosition is the sum of every active account's most recent balance.
// AsOf is the oldest of the per-account snapshot dates, so it reflects
// how stale the least recently updated account is. It is nil when no
// account has a snapshot yet.
type CashPosition struct {
	Total decimal.Decimal `json:"total"`
	AsOf  *time.Time      `json:"as_of,omitempty"`
}

// AccountColumn identifies one column of the balance evolution matrix.
type AccountColumn struct {
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
}

// MonthlyBalanceRow holds one month's balances, ordered like Accounts in
// the enclosing BalanceEvolution.
type MonthlyBalanceRow struct {
	Month    int               `json:"month"`
	Date     time.Time         `json:"date"`
	Balances []decimal.Decimal `json:"balances"`
	Total    decimal.Decimal   `json:"total"`
}

type BalanceEvolution struct {
	Accounts []AccountColumn     `json:"accounts"`
	Rows     []MonthlyBalanceRow `json:"rows"`
}

type Service interface {
	RecordSnapshot(ctx context.Context, userID string, snapshot *Snapshot) error
	UpdateSnapshot(ctx context.Context, userID string, snapshot *Snapshot) error
	DeleteSnapshot(ctx context.Context, snapshotID uuid.UUID, userID string) error
	GetAccountHistory(ctx context.Context, accountID uuid.UUID, userID string) ([]Snapshot, error)
	GetCurrentCashValue(ctx context.Context, userID string) (CashPosition, error)
	GetAnnualBalanceEvolution(ctx context.Context, userID string, year int) (*BalanceEvolution, error)
	GetInterestForYear(ctx context.Context, userID string, year int) (decimal.Decimal, error)
}

type service struct {
	repo     Repository
	accounts AccountSource
}

func NewSnapshotService(repo Repository, accounts AccountSource) Service {
	return &service{repo: repo, accounts: accounts}
}

func (s *service) RecordSnapshot(ctx context.Context, userID string, snapshot *Snapshot) error {
	if _, err := s.accounts.GetAccountByID(ctx, snapshot.AccountID, userID); err != nil {
		return err
	}
	exists, err := s.repo.doesSnapshotExist(ctx, snapshot.AccountID, snapshot.Date)
	if err != nil {
		return err
	}
	if exists {
		return ErrSnapshotExists
	}
	snapshot.ID = uuid.New()
	return s.repo.createSnapshot(ctx, snapshot)
}

func (s *service) UpdateSnapshot(ctx context.Context, userID string, snapshot *Snapshot) error {
	existing, err := s.repo.getSnapshotByID(ctx, snapshot.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSnapshotNotFound
		}
		return err
	}
	if _, err := s.accounts.GetAccountByID(ctx, existing.AccountID, userID); err != nil {
		return err
	}
	return s.repo.updateSnapshot(ctx, snapshot)
}

func (s *service) DeleteSnapshot(ctx context.Context, snapshotID uuid.UUID, userID string) error {
	existing, err := s.repo.getSnapshotByID(ctx, snapshotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSnapshotNotFound
		}
		return err
	}
	if _, err := s.accounts.GetAccountByID(ctx, existing.AccountID, userID); err != nil {
		return err
	}
	return s.repo.deleteSnapshot(ctx, snapshotID)
}

func (s *service) GetAccountHistory(ctx context.Context, accountID uuid.UUID, userID string) ([]Snapshot, error) {
	if _, err := s.accounts.GetAccountByID(ctx, accountID, userID); err != nil {
		return nil, err
	}
	return s.repo.findByAccountThrough(ctx, accountID, time.Now())
}

// GetCurrentCashValue sums the most recent balance of every active
// account. Accounts without any snapshot contribute nothing; each
// account's latest snapshot is looked up independently, so one stale
// account does not hide fresher ones.
func (s *service) GetCurrentCashValue(ctx context.Context, userID string) (CashPosition, error) {
	accounts, err := s.accounts.GetActiveAccounts(ctx, userID)
	if err != nil {
		return CashPosition{}, err
	}

	position := CashPosition{Total: decimal.Zero}
	for _, acc := range accounts {
		latest, err := s.repo.latestByAccount(ctx, acc.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return CashPosition{}, err
		}
		position.Total = position.Total.Add(latest.Balance)
		if position.AsOf == nil || latest.Date.Before(*position.AsOf) {
			date := latest.Date
			position.AsOf = &date
		}
	}
	return position, nil
}

// GetAnnualBalanceEvolution builds the month-by-month balance matrix for
// one calendar year. Each cell is the account's latest snapshot on or
// before that month's end, so balances carry forward across months and
// across the year boundary.
func (s *service) GetAnnualBalanceEvolution(ctx context.Context, userID string, year int) (*BalanceEvolution, error) {
	accounts, err := s.accounts.GetActiveAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	evolution := &BalanceEvolution{}
	histories := make([][]Snapshot, 0, len(accounts))
	yearEnd := timeseries.MonthEnd(year, time.December)
	for _, acc := range accounts {
		snapshots, err := s.repo.findByAccountThrough(ctx, acc.ID, yearEnd)
		if err != nil {
			return nil, err
		}
		evolution.Accounts = append(evolution.Accounts, AccountColumn{AccountID: acc.ID, Name: acc.Name})
		histories = append(histories, snapshots)
	}

	for month := time.January; month <= time.December; month++ {
		cutoff := timeseries.MonthEnd(year, month)
		row := MonthlyBalanceRow{
			Month: int(month),
			Date:  cutoff,
			Total: decimal.Zero,
		}
		for _, snapshots := range histories {
			balance := decimal.Zero
			latest, ok := timeseries.LatestOnOrBefore(snapshots, cutoff, func(s Snapshot) time.Time { return s.Date })
			if ok {
				balance = latest.Balance
			}
			row.Balances = append(row.Balances, balance)
			row.Total = row.Total.Add(balance)
		}
		evolution.Rows = append(evolution.Rows, row)
	}
	return evolution, nil
}

func (s *service) GetInterestForYear(ctx context.Context, userID string, year int) (decimal.Decimal, error) {
	return s.repo.sumInterestForYear(ctx, userID, year)
}

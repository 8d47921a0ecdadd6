package snapshot

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"wealthtracker/internal/holdings/account"
)

type mockRepository struct {
	snapshots map[uuid.UUID][]Snapshot
	created   []*Snapshot
	interest  decimal.Decimal
}

func newMockRepository() *mockRepository {
	return &mockRepository{snapshots: make(map[uuid.UUID][]Snapshot)}
}

func (m *mockRepository) createSnapshot(ctx context.Context, snapshot *Snapshot) error {
	m.created = append(m.created, snapshot)
	m.snapshots[snapshot.AccountID] = append(m.snapshots[snapshot.AccountID], *snapshot)
	return nil
}

func (m *mockRepository) updateSnapshot(ctx context.Context, snapshot *Snapshot) error {
	return nil
}

func (m *mockRepository) deleteSnapshot(ctx context.Context, snapshotID uuid.UUID) error {
	return nil
}

func (m *mockRepository) getSnapshotByID(ctx context.Context, snapshotID uuid.UUID) (*Snapshot, error) {
	for _, snapshots := range m.snapshots {
		for _, s := range snapshots {
			if s.ID == snapshotID {
				return &s, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockRepository) latestByAccount(ctx context.Context, accountID uuid.UUID) (*Snapshot, error) {
	snapshots := m.snapshots[accountID]
	if len(snapshots) == 0 {
		return nil, sql.ErrNoRows
	}
	latest := snapshots[0]
	for _, s := range snapshots[1:] {
		if s.Date.After(latest.Date) {
			latest = s
		}
	}
	return &latest, nil
}

func (m *mockRepository) findByAccountThrough(ctx context.Context, accountID uuid.UUID, cutoff time.Time) ([]Snapshot, error) {
	var result []Snapshot
	for _, s := range m.snapshots[accountID] {
		if !s.Date.After(cutoff) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockRepository) doesSnapshotExist(ctx context.Context, accountID uuid.UUID, date time.Time) (bool, error) {
	for _, s := range m.snapshots[accountID] {
		if s.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) sumInterestForYear(ctx context.Context, userID string, year int) (decimal.Decimal, error) {
	return m.interest, nil
}

type stubAccountSource struct {
	accounts []account.BankAccount
}

func (s *stubAccountSource) GetAccountByID(ctx context.Context, accountID uuid.UUID, userID string) (*account.BankAccount, error) {
	for _, acc := range s.accounts {
		if acc.ID == accountID && acc.UserID == userID {
			return &acc, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (s *stubAccountSource) GetActiveAccounts(ctx context.Context, userID string) ([]account.BankAccount, error) {
	var active []account.BankAccount
	for _, acc := range s.accounts {
		if acc.UserID == userID && acc.IsActive {
			active = append(active, acc)
		}
	}
	return active, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGetCurrentCashValue(t *testing.T) {
	checkingID, savingsID := uuid.New(), uuid.New()
	repo := newMockRepository()
	repo.snapshots[checkingID] = []Snapshot{
		{ID: uuid.New(), AccountID: checkingID, Date: date(2024, time.January, 15), Balance: decimal.NewFromInt(900)},
		{ID: uuid.New(), AccountID: checkingID, Date: date(2024, time.January, 31), Balance: decimal.NewFromInt(1000)},
	}
	repo.snapshots[savingsID] = []Snapshot{
		{ID: uuid.New(), AccountID: savingsID, Date: date(2024, time.January, 15), Balance: decimal.NewFromInt(2000)},
	}
	accounts := &stubAccountSource{accounts: []account.BankAccount{
		{ID: checkingID, UserID: "user-1", Name: "Checking", IsActive: true},
		{ID: savingsID, UserID: "user-1", Name: "Savings", IsActive: true},
	}}
	service := NewSnapshotService(repo, accounts)

	position, err := service.GetCurrentCashValue(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.True(t, position.Total.Equal(decimal.NewFromInt(3000)))
	// Savings was updated less recently, so its date is the reference.
	assert.Equal(t, date(2024, time.January, 15), *position.AsOf)
}

func TestGetCurrentCashValueSkipsAccountsWithoutSnapshots(t *testing.T) {
	withSnapshots, withoutSnapshots := uuid.New(), uuid.New()
	repo := newMockRepository()
	repo.snapshots[withSnapshots] = []Snapshot{
		{ID: uuid.New(), AccountID: withSnapshots, Date: date(2024, time.March, 31), Balance: decimal.NewFromInt(500)},
	}
	accounts := &stubAccountSource{accounts: []account.BankAccount{
		{ID: withSnapshots, UserID: "user-1", IsActive: true},
		{ID: withoutSnapshots, UserID: "user-1", IsActive: true},
	}}
	service := NewSnapshotService(repo, accounts)

	position, err := service.GetCurrentCashValue(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.True(t, position.Total.Equal(decimal.NewFromInt(500)))
}

func TestGetCurrentCashValueNoAccounts(t *testing.T) {
	service := NewSnapshotService(newMockRepository(), &stubAccountSource{})

	position, err := service.GetCurrentCashValue(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.True(t, position.Total.IsZero())
	assert.Nil(t, position.AsOf)
}

func TestGetAnnualBalanceEvolutionCarriesForward(t *testing.T) {
	accountID := uuid.New()
	repo := newMockRepository()
	repo.snapshots[accountID] = []Snapshot{
		{ID: uuid.New(), AccountID: accountID, Date: date(2023, time.December, 31), Balance: decimal.NewFromInt(500)},
		{ID: uuid.New(), AccountID: accountID, Date: date(2024, time.March, 31), Balance: decimal.NewFromInt(800)},
	}
	accounts := &stubAccountSource{accounts: []account.BankAccount{
		{ID: accountID, UserID: "user-1", Name: "Checking", IsActive: true},
	}}
	service := NewSnapshotService(repo, accounts)

	evolution, err := service.GetAnnualBalanceEvolution(context.Background(), "user-1", 2024)
	assert.NoError(t, err)
	assert.Len(t, evolution.Accounts, 1)
	assert.Len(t, evolution.Rows, 12)

	// December 2023 balance carries into January and February.
	assert.True(t, evolution.Rows[0].Total.Equal(decimal.NewFromInt(500)))
	assert.True(t, evolution.Rows[1].Total.Equal(decimal.NewFromInt(500)))
	// From March onward the new snapshot takes over.
	assert.True(t, evolution.Rows[2].Total.Equal(decimal.NewFromInt(800)))
	assert.True(t, evolution.Rows[11].Total.Equal(decimal.NewFromInt(800)))
}

func TestGetAnnualBalanceEvolutionSumsAccounts(t *testing.T) {
	firstID, secondID := uuid.New(), uuid.New()
	repo := newMockRepository()
	repo.snapshots[firstID] = []Snapshot{
		{ID: uuid.New(), AccountID: firstID, Date: date(2024, time.January, 31), Balance: decimal.NewFromInt(1000)},
	}
	repo.snapshots[secondID] = []Snapshot{
		{ID: uuid.New(), AccountID: secondID, Date: date(2024, time.January, 31), Balance: decimal.NewFromInt(2000)},
	}
	accounts := &stubAccountSource{accounts: []account.BankAccount{
		{ID: firstID, UserID: "user-1", Name: "Checking", IsActive: true},
		{ID: secondID, UserID: "user-1", Name: "Savings", IsActive: true},
	}}
	service := NewSnapshotService(repo, accounts)

	evolution, err := service.GetAnnualBalanceEvolution(context.Background(), "user-1", 2024)
	assert.NoError(t, err)
	assert.Len(t, evolution.Rows[0].Balances, 2)
	assert.True(t, evolution.Rows[0].Total.Equal(decimal.NewFromInt(3000)))
}

func TestRecordSnapshotDuplicateDate(t *testing.T) {
	accountID := uuid.New()
	repo := newMockRepository()
	repo.snapshots[accountID] = []Snapshot{
		{ID: uuid.New(), AccountID: accountID, Date: date(2024, time.January, 31), Balance: decimal.NewFromInt(100)},
	}
	accounts := &stubAccountSource{accounts: []account.BankAccount{
		{ID: accountID, UserID: "user-1", IsActive: true},
	}}
	service := NewSnapshotService(repo, accounts)

	err := service.RecordSnapshot(context.Background(), "user-1", &Snapshot{
		AccountID: accountID,
		Date:      date(2024, time.January, 31),
		Balance:   decimal.NewFromInt(200),
	})
	assert.ErrorIs(t, err, ErrSnapshotExists)
}

func TestRecordSnapshotUnknownAccount(t *testing.T) {
	service := NewSnapshotService(newMockRepository(), &stubAccountSource{})

	err := service.RecordSnapshot(context.Background(), "user-1", &Snapshot{
		AccountID: uuid.New(),
		Date:      date(2024, time.January, 31),
		Balance:   decimal.NewFromInt(200),
	})
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

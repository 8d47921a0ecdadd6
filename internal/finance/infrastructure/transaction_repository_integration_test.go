package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"wealthtracker/internal/finance/domain"
)

const ledgerSchema = `
CREATE TABLE categories (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    name VARCHAR(100) NOT NULL,
    transaction_type VARCHAR(10) NOT NULL,
    expense_type VARCHAR(10) NOT NULL,
    is_housing BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE subcategories (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    category_id UUID NOT NULL REFERENCES categories (id),
    name VARCHAR(100) NOT NULL,
    is_essential BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE transactions (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    date DATE NOT NULL,
    amount NUMERIC(14, 2) NOT NULL,
    description VARCHAR(200) NOT NULL DEFAULT '',
    subcategory_id UUID NOT NULL REFERENCES subcategories (id),
    location_id UUID
);
`

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("wealthtracker_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, ledgerSchema)
	require.NoError(t, err)

	return db
}

func seedCategory(t *testing.T, db *sql.DB, userID, transactionType, expenseType string) uuid.UUID {
	t.Helper()
	categoryID := uuid.New()
	subCategoryID := uuid.New()

	_, err := db.Exec(
		`INSERT INTO categories (id, user_id, name, transaction_type, expense_type, is_housing)
         VALUES ($1, $2, $3, $4, $5, FALSE)`,
		categoryID, userID, "Category "+categoryID.String()[:8], transactionType, expenseType,
	)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO subcategories (id, user_id, category_id, name, is_essential)
         VALUES ($1, $2, $3, $4, FALSE)`,
		subCategoryID, userID, categoryID, "Subcategory "+subCategoryID.String()[:8],
	)
	require.NoError(t, err)

	return subCategoryID
}

func TestTransactionRepository_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := startPostgres(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.NewString()
	otherUserID := uuid.NewString()
	incomeSubCategory := seedCategory(t, db, userID, domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable)
	expenseSubCategory := seedCategory(t, db, userID, domain.TransactionTypeExpense, domain.ExpenseTypeVariable)

	salary := &domain.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(5000),
		Description:   "Salary",
		SubCategoryID: incomeSubCategory,
	}
	groceries := &domain.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(-350),
		Description:   "Groceries",
		SubCategoryID: expenseSubCategory,
	}
	previousYear := &domain.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(-120),
		Description:   "Gifts",
		SubCategoryID: expenseSubCategory,
	}
	require.NoError(t, repo.Save(ctx, salary))
	require.NoError(t, repo.Save(ctx, groceries))
	require.NoError(t, repo.Save(ctx, previousYear))

	t.Run("finds transaction by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, salary.ID)
		require.NoError(t, err)
		assert.Equal(t, salary.ID, found.ID)
		assert.True(t, found.Amount.Equal(decimal.NewFromInt(5000)))
		assert.Equal(t, "Salary", found.Description)
	})

	t.Run("returns ledger entries for a period with category classification", func(t *testing.T) {
		entries, err := repo.FindEntriesForPeriod(ctx, userID, 2024, time.March)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "Salary", entries[0].Description)
		assert.Equal(t, domain.TransactionTypeIncome, entries[0].TransactionType)
		assert.Equal(t, "Groceries", entries[1].Description)
		assert.Equal(t, domain.TransactionTypeExpense, entries[1].TransactionType)
		assert.Equal(t, domain.ExpenseTypeVariable, entries[1].ExpenseType)
	})

	t.Run("period query excludes other months and users", func(t *testing.T) {
		entries, err := repo.FindEntriesForPeriod(ctx, userID, 2023, time.December)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Gifts", entries[0].Description)

		entries, err = repo.FindEntriesForPeriod(ctx, otherUserID, 2024, time.March)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("returns ledger entries for a whole year ordered by date", func(t *testing.T) {
		entries, err := repo.FindEntriesForYear(ctx, userID, 2024)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].Date.Before(entries[1].Date))
	})

	t.Run("lists available years newest first and months ascending", func(t *testing.T) {
		years, err := repo.AvailableYears(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []int{2024, 2023}, years)

		months, err := repo.AvailableMonths(ctx, userID, 2024)
		require.NoError(t, err)
		assert.Equal(t, []time.Month{time.March}, months)
	})

	t.Run("updates only the owner's transaction", func(t *testing.T) {
		groceries.Amount = decimal.NewFromInt(-400)
		affected, err := repo.Update(ctx, groceries)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		foreign := *groceries
		foreign.UserID = otherUserID
		affected, err = repo.Update(ctx, &foreign)
		require.NoError(t, err)
		assert.EqualValues(t, 0, affected)
	})

	t.Run("deletes a transaction", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, previousYear.ID, userID))

		_, err := repo.FindByID(ctx, previousYear.ID)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"wealthtracker/internal/finance/domain"
)

func entry(date time.Time, amount float64, categoryName, transactionType, expenseType string, isHousing bool) domain.LedgerEntry {
	return domain.LedgerEntry{
		Transaction: domain.Transaction{
			UserID: "user-1",
			Date:   date,
			Amount: decimal.NewFromFloat(amount),
		},
		CategoryName:    categoryName,
		TransactionType: transactionType,
		ExpenseType:     expenseType,
		IsHousing:       isHousing,
	}
}

func january(day int) time.Time {
	return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestPeriodMetrics(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(january(1), 5000, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
		entry(january(5), -1500, "Rent", domain.TransactionTypeExpense, domain.ExpenseTypeFixed, true),
		entry(january(10), -500, "Groceries", domain.TransactionTypeExpense, domain.ExpenseTypeVariable, false),
	}

	stats := PeriodMetrics(entries, DefaultIncompleteIncomeThreshold)

	assert.True(t, stats.Income.Equal(decimal.NewFromInt(5000)), "income: %s", stats.Income)
	assert.True(t, stats.Expenses.Equal(decimal.NewFromInt(2000)), "expenses: %s", stats.Expenses)
	assert.True(t, stats.Savings.Equal(decimal.NewFromInt(3000)), "savings: %s", stats.Savings)
	assert.True(t, stats.Fixed.Equal(decimal.NewFromInt(1500)), "fixed: %s", stats.Fixed)
	assert.True(t, stats.Variable.Equal(decimal.NewFromInt(500)), "variable: %s", stats.Variable)
	// Rent is a housing expense, so only groceries remain.
	assert.True(t, stats.NoHousing.Equal(decimal.NewFromInt(500)), "no_housing: %s", stats.NoHousing)
	assert.False(t, stats.IsIncomplete)
}

func TestPeriodMetrics_NoHousingIncludesAllWhenNotHousing(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(january(5), -1500, "Insurance", domain.TransactionTypeExpense, domain.ExpenseTypeFixed, false),
		entry(january(10), -500, "Groceries", domain.TransactionTypeExpense, domain.ExpenseTypeVariable, false),
	}

	stats := PeriodMetrics(entries, DefaultIncompleteIncomeThreshold)
	assert.True(t, stats.NoHousing.Equal(decimal.NewFromInt(2000)), "no_housing: %s", stats.NoHousing)
}

func TestPeriodMetrics_EmptyPeriod(t *testing.T) {
	stats := PeriodMetrics(nil, DefaultIncompleteIncomeThreshold)

	assert.True(t, stats.Income.IsZero())
	assert.True(t, stats.Expenses.IsZero())
	assert.True(t, stats.Savings.IsZero())
	assert.True(t, stats.Fixed.IsZero())
	assert.True(t, stats.Variable.IsZero())
	assert.True(t, stats.NoHousing.IsZero())
	assert.False(t, stats.IsIncomplete)
}

func TestPeriodMetrics_IncompleteHeuristic(t *testing.T) {
	// Negative savings and income below the threshold: the month is
	// most likely missing an income entry.
	incomplete := PeriodMetrics([]domain.LedgerEntry{
		entry(january(1), 500, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
		entry(january(5), -900, "Rent", domain.TransactionTypeExpense, domain.ExpenseTypeFixed, true),
	}, DefaultIncompleteIncomeThreshold)
	assert.True(t, incomplete.IsIncomplete)

	// Negative savings with a full salary recorded is a genuinely bad
	// month, not missing data.
	overspent := PeriodMetrics([]domain.LedgerEntry{
		entry(january(1), 3000, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
		entry(january(5), -3500, "Rent", domain.TransactionTypeExpense, domain.ExpenseTypeFixed, true),
	}, DefaultIncompleteIncomeThreshold)
	assert.False(t, overspent.IsIncomplete)
}

func TestPreviousPeriod(t *testing.T) {
	year, month := PreviousPeriod(2024, time.January)
	assert.Equal(t, 2023, year)
	assert.Equal(t, time.December, month)

	year, month = PreviousPeriod(2024, time.July)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.June, month)
}

func TestExpenseDistribution(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(january(1), -1000, "Rent", domain.TransactionTypeExpense, domain.ExpenseTypeFixed, true),
		entry(january(2), -200, "Groceries", domain.TransactionTypeExpense, domain.ExpenseTypeVariable, false),
		entry(january(3), 5000, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
		entry(january(4), -150, "Groceries", domain.TransactionTypeExpense, domain.ExpenseTypeVariable, false),
	}

	chart := ExpenseDistribution(entries)

	assert.Equal(t, []string{"Rent", "Groceries"}, chart.Labels)
	assert.Equal(t, []float64{1000, 350}, chart.Data)
}

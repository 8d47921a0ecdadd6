package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"wealthtracker/internal/finance/domain"
	"wealthtracker/internal/finance/infrastructure"
)

func TestGetPreviousMonthIncome_CrossYearBoundary(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Entries: []domain.LedgerEntry{
			entry(time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC), 4000, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
			entry(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), 4500, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
		},
	}
	service := NewSummaryService(repo, DefaultIncompleteIncomeThreshold)

	// Asking for January 2024 must look at December 2023.
	income, err := service.GetPreviousMonthIncome(context.Background(), "user-1", 2024, time.January)
	assert.NoError(t, err)
	assert.True(t, income.Equal(decimal.NewFromInt(4000)), "prev income: %s", income)
}

func TestGetPreviousMonthIncome_NoData(t *testing.T) {
	service := NewSummaryService(&infrastructure.MockTransactionRepository{}, DefaultIncompleteIncomeThreshold)

	income, err := service.GetPreviousMonthIncome(context.Background(), "user-1", 2024, time.March)
	assert.NoError(t, err)
	assert.True(t, income.IsZero())
}

func TestGetAnnualCashflowSummary(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Entries: []domain.LedgerEntry{
			entry(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 5000, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
			entry(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), -1500, "Rent", domain.TransactionTypeExpense, domain.ExpenseTypeFixed, true),
			entry(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), -500, "Groceries", domain.TransactionTypeExpense, domain.ExpenseTypeVariable, false),
			// Different year, must not leak in.
			entry(time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), 9000, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
		},
	}
	service := NewSummaryService(repo, DefaultIncompleteIncomeThreshold)

	monthly, err := service.GetAnnualCashflowSummary(context.Background(), "user-1", 2024)
	assert.NoError(t, err)
	assert.Len(t, monthly, 12)

	january := monthly[0]
	assert.Equal(t, 1, january.Month)
	assert.True(t, january.Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, january.Savings.Equal(decimal.NewFromInt(3500)))
	assert.InDelta(t, 70.0, january.SavingsRate, 0.001)

	march := monthly[2]
	assert.True(t, march.Expenses.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 0.0, march.SavingsRate)

	// Months without transactions appear with all-zero stats.
	july := monthly[6]
	assert.True(t, july.Income.IsZero())
	assert.True(t, july.Expenses.IsZero())
	assert.True(t, july.Savings.IsZero())
}

func TestGetMonthlySummary(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Entries: []domain.LedgerEntry{
			entry(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 5000, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
			entry(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), -800, "Groceries", domain.TransactionTypeExpense, domain.ExpenseTypeVariable, false),
			entry(time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC), 4200, "Salary", domain.TransactionTypeIncome, domain.ExpenseTypeNotApplicable, false),
		},
	}
	service := NewSummaryService(repo, DefaultIncompleteIncomeThreshold)

	summary, err := service.GetMonthlySummary(context.Background(), "user-1", 2024, time.January)
	assert.NoError(t, err)

	assert.True(t, summary.Stats.Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, summary.PrevIncome.Equal(decimal.NewFromInt(4200)))
	assert.Equal(t, []string{"Groceries"}, summary.ExpenseChart.Labels)
	assert.Len(t, summary.Transactions, 2)
	assert.Contains(t, summary.Years, 2024)
	assert.Contains(t, summary.Years, 2023)
	assert.Equal(t, []time.Month{time.January}, summary.Months)
}

package application

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"wealthtracker/internal/finance/domain"
)

// DefaultIncompleteIncomeThreshold marks a period as likely missing
// income entries: negative savings combined with an income below this
// value almost always means a salary was not recorded yet, not that the
// month really ended in the red.
var DefaultIncompleteIncomeThreshold = decimal.NewFromInt(2000)

// PeriodStats is the cash-flow summary of one period. All totals are
// absolute values; the stored sign convention (expenses negative) is an
// implementation detail of the ledger.
type PeriodStats struct {
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Fixed        decimal.Decimal `json:"fixed"`
	Variable     decimal.Decimal `json:"variable"`
	NoHousing    decimal.Decimal `json:"no_housing"`
	Savings      decimal.Decimal `json:"savings"`
	IsIncomplete bool            `json:"is_incomplete"`
}

// PeriodMetrics consolidates ledger entries already filtered to one
// user and period. Empty input yields all-zero stats, never an error.
func PeriodMetrics(entries []domain.LedgerEntry, incompleteIncomeThreshold decimal.Decimal) PeriodStats {
	var income, expenses, fixed, variable, noHousing decimal.Decimal

	for _, entry := range entries {
		amount := entry.Amount.Abs()
		switch entry.TransactionType {
		case domain.TransactionTypeIncome:
			income = income.Add(amount)
		case domain.TransactionTypeExpense:
			expenses = expenses.Add(amount)
			if !entry.IsHousing {
				noHousing = noHousing.Add(amount)
			}
		}
		switch entry.ExpenseType {
		case domain.ExpenseTypeFixed:
			fixed = fixed.Add(amount)
		case domain.ExpenseTypeVariable:
			variable = variable.Add(amount)
		}
	}

	savings := income.Sub(expenses)
	return PeriodStats{
		Income:       income,
		Expenses:     expenses,
		Fixed:        fixed,
		Variable:     variable,
		NoHousing:    noHousing,
		Savings:      savings,
		IsIncomplete: savings.IsNegative() && income.LessThan(incompleteIncomeThreshold),
	}
}

// PreviousPeriod shifts a (year, month) reference one calendar month
// back, rolling January over to December of the previous year.
func PreviousPeriod(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// ChartSeries is label/value pairs shaped for the charting layer.
// Values leave decimal precision here and never feed back into storage.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// ExpenseDistribution sums absolute expense amounts per category,
// largest first.
func ExpenseDistribution(entries []domain.LedgerEntry) ChartSeries {
	totals := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		if entry.TransactionType != domain.TransactionTypeExpense {
			continue
		}
		totals[entry.CategoryName] = totals[entry.CategoryName].Add(entry.Amount.Abs())
	}

	labels := make([]string, 0, len(totals))
	for name := range totals {
		labels = append(labels, name)
	}
	sort.Slice(labels, func(i, j int) bool {
		return totals[labels[i]].GreaterThan(totals[labels[j]])
	})

	chart := ChartSeries{Labels: labels}
	for _, name := range labels {
		chart.Data = append(chart.Data, totals[name].InexactFloat64())
	}
	return chart
}

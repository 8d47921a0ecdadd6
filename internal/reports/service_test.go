package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"wealthtracker/internal/finance/application"
	"wealthtracker/internal/holdings/snapshot"
	"wealthtracker/internal/investment/portfolio"
)

type stubCashflowSource struct {
	monthly []application.MonthlyCashflow
}

func (s *stubCashflowSource) GetAnnualCashflowSummary(ctx context.Context, userID string, year int) ([]application.MonthlyCashflow, error) {
	return s.monthly, nil
}

type stubPortfolioSource struct {
	rows []portfolio.MonthlyValuation
}

func (s *stubPortfolioSource) GetAnnualEvolution(ctx context.Context, userID string, year int) ([]portfolio.MonthlyValuation, error) {
	return s.rows, nil
}

type stubHoldingsSource struct {
	evolution *snapshot.BalanceEvolution
	interest  decimal.Decimal
}

func (s *stubHoldingsSource) GetAnnualBalanceEvolution(ctx context.Context, userID string, year int) (*snapshot.BalanceEvolution, error) {
	if s.evolution != nil {
		return s.evolution, nil
	}
	return &snapshot.BalanceEvolution{}, nil
}

func (s *stubHoldingsSource) GetInterestForYear(ctx context.Context, userID string, year int) (decimal.Decimal, error) {
	return s.interest, nil
}

func cashflowRow(month int, income, expenses, savings int64, rate float64) application.MonthlyCashflow {
	return application.MonthlyCashflow{
		Month:       month,
		Income:      decimal.NewFromInt(income),
		Expenses:    decimal.NewFromInt(expenses),
		Savings:     decimal.NewFromInt(savings),
		SavingsRate: rate,
	}
}

func TestFinancialReportAveragesOnlyActiveMonths(t *testing.T) {
	monthly := []application.MonthlyCashflow{
		cashflowRow(1, 5000, 2000, 3000, 60),
		cashflowRow(2, 5000, 3000, 2000, 40),
	}
	for month := 3; month <= 12; month++ {
		monthly = append(monthly, cashflowRow(month, 0, 0, 0, 0))
	}
	service := NewReportService(&stubCashflowSource{monthly: monthly}, &stubPortfolioSource{}, &stubHoldingsSource{})

	report, err := service.GetFinancialReport(context.Background(), "user-1", 2024)
	assert.NoError(t, err)
	assert.True(t, report.TotalIncome.Equal(decimal.NewFromInt(10000)))
	assert.True(t, report.TotalExpenses.Equal(decimal.NewFromInt(5000)))
	assert.True(t, report.TotalSavings.Equal(decimal.NewFromInt(5000)))
	// Two active months, not twelve.
	assert.True(t, report.AvgMonthlyExpenses.Equal(decimal.NewFromInt(2500)))
	assert.InDelta(t, 50.0, report.AvgSavingsRate, 0.001)
	assert.Len(t, report.SavingsChart.Labels, 12)
	assert.Equal(t, "Jan 24", report.SavingsChart.Labels[0])
}

func TestFinancialReportEmptyYear(t *testing.T) {
	var monthly []application.MonthlyCashflow
	for month := 1; month <= 12; month++ {
		monthly = append(monthly, cashflowRow(month, 0, 0, 0, 0))
	}
	service := NewReportService(&stubCashflowSource{monthly: monthly}, &stubPortfolioSource{}, &stubHoldingsSource{})

	report, err := service.GetFinancialReport(context.Background(), "user-1", 2024)
	assert.NoError(t, err)
	assert.True(t, report.AvgMonthlyExpenses.IsZero())
	assert.Equal(t, 0.0, report.AvgSavingsRate)
}

func TestInvestmentReport(t *testing.T) {
	rows := make([]portfolio.MonthlyValuation, 12)
	for i := range rows {
		rows[i] = portfolio.MonthlyValuation{
			Month:         i + 1,
			Date:          time.Date(2024, time.Month(i+1), 28, 0, 0, 0, 0, time.UTC),
			MarketValue:   decimal.NewFromInt(int64(1000 + i*100)),
			Invested:      decimal.NewFromInt(int64(900 + (i+1)*50)),
			Contributions: decimal.NewFromInt(50),
			Profit:        decimal.NewFromInt(50),
		}
	}
	service := NewReportService(&stubCashflowSource{}, &stubPortfolioSource{rows: rows}, &stubHoldingsSource{})

	report, err := service.GetInvestmentReport(context.Background(), "user-1", 2024)
	assert.NoError(t, err)
	assert.True(t, report.TotalContributions.Equal(decimal.NewFromInt(600)))
	assert.True(t, report.TotalProfit.Equal(decimal.NewFromInt(600)))
	assert.True(t, report.FinalMarketValue.Equal(decimal.NewFromInt(2100)))
	assert.True(t, report.FinalInvested.Equal(decimal.NewFromInt(1500)))
	assert.InDelta(t, 40.0, report.AnnualROI, 0.001)
}

func TestInvestmentReportROIGuardedWithoutInvestedCapital(t *testing.T) {
	rows := []portfolio.MonthlyValuation{
		{Month: 1, MarketValue: decimal.NewFromInt(5000), Contributions: decimal.Zero, Profit: decimal.NewFromInt(5000)},
	}
	service := NewReportService(&stubCashflowSource{}, &stubPortfolioSource{rows: rows}, &stubHoldingsSource{})

	report, err := service.GetInvestmentReport(context.Background(), "user-1", 2024)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, report.AnnualROI)
}

func TestHoldingsReport(t *testing.T) {
	rows := make([]snapshot.MonthlyBalanceRow, 12)
	for i := range rows {
		rows[i] = snapshot.MonthlyBalanceRow{Month: i + 1, Total: decimal.NewFromInt(int64(1000 + i*100))}
	}
	holdings := &stubHoldingsSource{
		evolution: &snapshot.BalanceEvolution{Rows: rows},
		interest:  decimal.NewFromInt(42),
	}
	service := NewReportService(&stubCashflowSource{}, &stubPortfolioSource{}, holdings)

	report, err := service.GetHoldingsReport(context.Background(), "user-1", 2024)
	assert.NoError(t, err)
	assert.True(t, report.StartBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, report.EndBalance.Equal(decimal.NewFromInt(2100)))
	assert.True(t, report.BalanceChange.Equal(decimal.NewFromInt(1100)))
	assert.True(t, report.InterestEarned.Equal(decimal.NewFromInt(42)))
}

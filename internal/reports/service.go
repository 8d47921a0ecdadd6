package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"wealthtracker/internal/finance/application"
	"wealthtracker/internal/holdings/snapshot"
	"wealthtracker/internal/investment/portfolio"
)

type CashflowSource interface {
	GetAnnualCashflowSummary(ctx context.Context, userID string, year int) ([]application.MonthlyCashflow, error)
}

type PortfolioSource interface {
	GetAnnualEvolution(ctx context.Context, userID string, year int) ([]portfolio.MonthlyValuation, error)
}

type HoldingsSource interface {
	GetAnnualBalanceEvolution(ctx context.Context, userID string, year int) (*snapshot.BalanceEvolution, error)
	GetInterestForYear(ctx context.Context, userID string, year int) (decimal.Decimal, error)
}

// FinancialReport aggregates one year of cash flow. Averages only count
// months that actually have activity, so a report generated mid-year is
// not diluted by empty future months.
type FinancialReport struct {
	Year               int             `json:"year"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	TotalSavings       decimal.Decimal `json:"total_savings"`
	AvgMonthlyExpenses decimal.Decimal `json:"avg_monthly_expenses"`
	AvgSavingsRate     float64         `json:"avg_savings_rate"`
	SavingsChart       ChartRows       `json:"savings_chart"`
}

type InvestmentReport struct {
	Year               int             `json:"year"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	FinalInvested      decimal.Decimal `json:"final_invested"`
	FinalMarketValue   decimal.Decimal `json:"final_market_value"`
	AnnualROI          float64         `json:"annual_roi"`
}

type HoldingsReport struct {
	Year           int             `json:"year"`
	StartBalance   decimal.Decimal `json:"start_balance"`
	EndBalance     decimal.Decimal `json:"end_balance"`
	BalanceChange  decimal.Decimal `json:"balance_change"`
	InterestEarned decimal.Decimal `json:"interest_earned"`
}

type AnnualReport struct {
	Financial   *FinancialReport  `json:"financial"`
	Investments *InvestmentReport `json:"investments"`
	Holdings    *HoldingsReport   `json:"holdings"`
}

type ChartRows struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type Service interface {
	GetFinancialReport(ctx context.Context, userID string, year int) (*FinancialReport, error)
	GetInvestmentReport(ctx context.Context, userID string, year int) (*InvestmentReport, error)
	GetHoldingsReport(ctx context.Context, userID string, year int) (*HoldingsReport, error)
	GetAnnualReport(ctx context.Context, userID string, year int) (*AnnualReport, error)
}

type service struct {
	cashflow  CashflowSource
	portfolio PortfolioSource
	holdings  HoldingsSource
}

func NewReportService(cashflow CashflowSource, portfolioSource PortfolioSource, holdings HoldingsSource) Service {
	return &service{cashflow: cashflow, portfolio: portfolioSource, holdings: holdings}
}

func (s *service) GetFinancialReport(ctx context.Context, userID string, year int) (*FinancialReport, error) {
	monthly, err := s.cashflow.GetAnnualCashflowSummary(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	report := &FinancialReport{
		Year:               year,
		TotalIncome:        decimal.Zero,
		TotalExpenses:      decimal.Zero,
		TotalSavings:       decimal.Zero,
		AvgMonthlyExpenses: decimal.Zero,
	}
	activeMonths := 0
	rateSum := 0.0
	rateMonths := 0
	for _, row := range monthly {
		report.TotalIncome = report.TotalIncome.Add(row.Income)
		report.TotalExpenses = report.TotalExpenses.Add(row.Expenses)
		report.TotalSavings = report.TotalSavings.Add(row.Savings)
		if row.Income.IsPositive() || row.Expenses.IsPositive() {
			activeMonths++
		}
		if row.Income.IsPositive() {
			rateSum += row.SavingsRate
			rateMonths++
		}

		label := time.Date(year, time.Month(row.Month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 06")
		report.SavingsChart.Labels = append(report.SavingsChart.Labels, label)
		report.SavingsChart.Data = append(report.SavingsChart.Data, row.Savings.InexactFloat64())
	}
	if activeMonths > 0 {
		report.AvgMonthlyExpenses = report.TotalExpenses.Div(decimal.NewFromInt(int64(activeMonths)))
	}
	if rateMonths > 0 {
		report.AvgSavingsRate = rateSum / float64(rateMonths)
	}
	return report, nil
}

func (s *service) GetInvestmentReport(ctx context.Context, userID string, year int) (*InvestmentReport, error) {
	rows, err := s.portfolio.GetAnnualEvolution(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	report := &InvestmentReport{
		Year:               year,
		TotalContributions: decimal.Zero,
		TotalProfit:        decimal.Zero,
		FinalInvested:      decimal.Zero,
		FinalMarketValue:   decimal.Zero,
	}
	for _, row := range rows {
		report.TotalContributions = report.TotalContributions.Add(row.Contributions)
		report.TotalProfit = report.TotalProfit.Add(row.Profit)
	}
	if len(rows) > 0 {
		final := rows[len(rows)-1]
		report.FinalMarketValue = final.MarketValue
		report.FinalInvested = final.Invested
	}

	if report.FinalInvested.IsPositive() {
		report.AnnualROI = report.TotalProfit.Div(report.FinalInvested).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return report, nil
}

func (s *service) GetHoldingsReport(ctx context.Context, userID string, year int) (*HoldingsReport, error) {
	evolution, err := s.holdings.GetAnnualBalanceEvolution(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	interest, err := s.holdings.GetInterestForYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	report := &HoldingsReport{
		Year:           year,
		StartBalance:   decimal.Zero,
		EndBalance:     decimal.Zero,
		InterestEarned: interest,
	}
	if len(evolution.Rows) > 0 {
		report.StartBalance = evolution.Rows[0].Total
		report.EndBalance = evolution.Rows[len(evolution.Rows)-1].Total
	}
	report.BalanceChange = report.EndBalance.Sub(report.StartBalance)
	return report, nil
}

func (s *service) GetAnnualReport(ctx context.Context, userID string, year int) (*AnnualReport, error) {
	financial, err := s.GetFinancialReport(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	investments, err := s.GetInvestmentReport(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	holdings, err := s.GetHoldingsReport(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	return &AnnualReport{
		Financial:   financial,
		Investments: investments,
		Holdings:    holdings,
	}, nil
}

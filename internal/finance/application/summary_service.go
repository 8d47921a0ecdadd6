package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"wealthtracker/internal/finance/domain"
)

// MonthlyCashflow is one row of the annual cash-flow table.
type MonthlyCashflow struct {
	Month        int             `json:"month"`
	Date         time.Time       `json:"date"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Fixed        decimal.Decimal `json:"fixed"`
	Variable     decimal.Decimal `json:"variable"`
	Savings      decimal.Decimal `json:"savings"`
	SavingsRate  float64         `json:"savings_rate"`
	IsIncomplete bool            `json:"is_incomplete"`
}

// MonthlySummary backs the monthly summary page: period stats plus
// navigation data and the month-over-month income comparison.
type MonthlySummary struct {
	Year         int                  `json:"year"`
	Month        time.Month           `json:"month"`
	Stats        PeriodStats          `json:"stats"`
	PrevIncome   decimal.Decimal      `json:"prev_income"`
	ExpenseChart ChartSeries          `json:"expense_chart"`
	Years        []int                `json:"years"`
	Months       []time.Month         `json:"months"`
	Transactions []domain.LedgerEntry `json:"transactions"`
}

type SummaryService struct {
	repo domain.TransactionRepository
	// threshold for the incomplete-period heuristic, see
	// DefaultIncompleteIncomeThreshold.
	incompleteIncomeThreshold decimal.Decimal
}

func NewSummaryService(repo domain.TransactionRepository, incompleteIncomeThreshold decimal.Decimal) *SummaryService {
	return &SummaryService{repo: repo, incompleteIncomeThreshold: incompleteIncomeThreshold}
}

func (s *SummaryService) GetPeriodMetrics(ctx context.Context, userID string, year int, month time.Month) (PeriodStats, error) {
	entries, err := s.repo.FindEntriesForPeriod(ctx, userID, year, month)
	if err != nil {
		return PeriodStats{}, err
	}
	return PeriodMetrics(entries, s.incompleteIncomeThreshold), nil
}

// GetPreviousMonthIncome returns the absolute income total of the
// calendar month preceding the given one, crossing the year boundary
// when needed.
func (s *SummaryService) GetPreviousMonthIncome(ctx context.Context, userID string, year int, month time.Month) (decimal.Decimal, error) {
	prevYear, prevMonth := PreviousPeriod(year, month)
	entries, err := s.repo.FindEntriesForPeriod(ctx, userID, prevYear, prevMonth)
	if err != nil {
		return decimal.Zero, err
	}
	return PeriodMetrics(entries, s.incompleteIncomeThreshold).Income, nil
}

func (s *SummaryService) GetMonthlySummary(ctx context.Context, userID string, year int, month time.Month) (*MonthlySummary, error) {
	entries, err := s.repo.FindEntriesForPeriod(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	prevIncome, err := s.GetPreviousMonthIncome(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	years, err := s.repo.AvailableYears(ctx, userID)
	if err != nil {
		return nil, err
	}
	months, err := s.repo.AvailableMonths(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	return &MonthlySummary{
		Year:         year,
		Month:        month,
		Stats:        PeriodMetrics(entries, s.incompleteIncomeThreshold),
		PrevIncome:   prevIncome,
		ExpenseChart: ExpenseDistribution(entries),
		Years:        years,
		Months:       months,
		Transactions: entries,
	}, nil
}

// GetAnnualCashflowSummary produces one row per calendar month,
// including months without any transactions.
func (s *SummaryService) GetAnnualCashflowSummary(ctx context.Context, userID string, year int) ([]MonthlyCashflow, error) {
	entries, err := s.repo.FindEntriesForYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[time.Month][]domain.LedgerEntry)
	for _, entry := range entries {
		byMonth[entry.Date.Month()] = append(byMonth[entry.Date.Month()], entry)
	}

	monthly := make([]MonthlyCashflow, 0, 12)
	for month := time.January; month <= time.December; month++ {
		stats := PeriodMetrics(byMonth[month], s.incompleteIncomeThreshold)

		savingsRate := 0.0
		if stats.Income.IsPositive() {
			savingsRate = stats.Savings.Div(stats.Income).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		monthly = append(monthly, MonthlyCashflow{
			Month:        int(month),
			Date:         time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			Income:       stats.Income,
			Expenses:     stats.Expenses,
			Fixed:        stats.Fixed,
			Variable:     stats.Variable,
			Savings:      stats.Savings,
			SavingsRate:  savingsRate,
			IsIncomplete: stats.IsIncomplete,
		})
	}
	return monthly, nil
}

func (s *SummaryService) GetAvailableYears(ctx context.Context, userID string) ([]int, error) {
	return s.repo.AvailableYears(ctx, userID)
}

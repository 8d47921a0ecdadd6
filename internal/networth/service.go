package networth

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"wealthtracker/internal/holdings/snapshot"
	"wealthtracker/internal/investment/portfolio"
)

// StaleAfter is how old the reference date may be before the net worth
// figure is flagged as stale.
const StaleAfter = 30 * 24 * time.Hour

type CashSource interface {
	GetCurrentCashValue(ctx context.Context, userID string) (snapshot.CashPosition, error)
	GetAnnualBalanceEvolution(ctx context.Context, userID string, year int) (*snapshot.BalanceEvolution, error)
}

type InvestmentSource interface {
	GetPortfolioOverview(ctx context.Context, userID string) (*portfolio.Overview, error)
	GetAnnualEvolution(ctx context.Context, userID string, year int) ([]portfolio.MonthlyValuation, error)
}

// NetWorth is the combined picture of cash and investments. The
// reference date is the oldest of the underlying dates, so IsStale
// flags the figure as soon as any input stops being updated.
type NetWorth struct {
	Cash          decimal.Decimal `json:"cash"`
	Investments   decimal.Decimal `json:"investments"`
	Total         decimal.Decimal `json:"total"`
	ReferenceDate *time.Time      `json:"reference_date,omitempty"`
	IsStale       bool            `json:"is_stale"`
}

// EvolutionPoint is one month of the net worth history.
type EvolutionPoint struct {
	Month       int             `json:"month"`
	Date        time.Time       `json:"date"`
	Cash        decimal.Decimal `json:"cash"`
	Investments decimal.Decimal `json:"investments"`
	Total       decimal.Decimal `json:"total"`
}

type Service interface {
	CalculateNetWorth(ctx context.Context, userID string) (*NetWorth, error)
	GetNetWorthEvolution(ctx context.Context, userID string, year int) ([]EvolutionPoint, error)
}

type service struct {
	cash        CashSource
	investments InvestmentSource
	now         func() time.Time
}

func NewNetWorthService(cash CashSource, investments InvestmentSource, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{cash: cash, investments: investments, now: now}
}

func (s *service) CalculateNetWorth(ctx context.Context, userID string) (*NetWorth, error) {
	position, err := s.cash.GetCurrentCashValue(ctx, userID)
	if err != nil {
		return nil, err
	}
	overview, err := s.investments.GetPortfolioOverview(ctx, userID)
	if err != nil {
		return nil, err
	}

	netWorth := &NetWorth{
		Cash:        position.Total,
		Investments: overview.TotalValue,
		Total:       position.Total.Add(overview.TotalValue),
	}

	netWorth.ReferenceDate = oldest(position.AsOf, overview.LastMarketDate)
	if netWorth.ReferenceDate != nil {
		netWorth.IsStale = s.now().Sub(*netWorth.ReferenceDate) > StaleAfter
	}
	return netWorth, nil
}

func (s *service) GetNetWorthEvolution(ctx context.Context, userID string, year int) ([]EvolutionPoint, error) {
	balances, err := s.cash.GetAnnualBalanceEvolution(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	valuations, err := s.investments.GetAnnualEvolution(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	points := make([]EvolutionPoint, 0, 12)
	for i := 0; i < 12; i++ {
		cash := decimal.Zero
		var pointDate time.Time
		if i < len(balances.Rows) {
			cash = balances.Rows[i].Total
			pointDate = balances.Rows[i].Date
		}
		invested := decimal.Zero
		if i < len(valuations) {
			invested = valuations[i].MarketValue
			if pointDate.IsZero() {
				pointDate = valuations[i].Date
			}
		}
		points = append(points, EvolutionPoint{
			Month:       i + 1,
			Date:        pointDate,
			Cash:        cash,
			Investments: invested,
			Total:       cash.Add(invested),
		})
	}
	return points, nil
}

func oldest(dates ...*time.Time) *time.Time {
	var result *time.Time
	for _, date := range dates {
		if date == nil {
			continue
		}
		if result == nil || date.Before(*result) {
			result = date
		}
	}
	return result
}

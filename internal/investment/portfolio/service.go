package portfolio

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	assets "wealthtracker/internal/investment/asset"
	"wealthtracker/internal/investment/history"
	"wealthtracker/internal/investment/models"
	"wealthtracker/internal/timeseries"
)

// DefaultExcludedAssetName is the externally managed position that stays
// in the portfolio table and the global totals but is left out of the
// no-family rollup, the performance history and the contribution chart.
const DefaultExcludedAssetName = "Family Investments"

type AssetSource interface {
	GetActiveAssets(ctx context.Context, userID string) ([]assets.Asset, error)
}

type TransactionSource interface {
	SumInvested(ctx context.Context, assetID uuid.UUID, until *time.Time) (decimal.Decimal, error)
	MonthlyNet(ctx context.Context, userID string, year int) (map[time.Month]decimal.Decimal, error)
	GetUserTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
}

type HistorySource interface {
	Latest(ctx context.Context, assetID uuid.UUID) (*models.AssetHistory, error)
	Through(ctx context.Context, assetID uuid.UUID, cutoff time.Time) ([]models.AssetHistory, error)
}

// Position is one asset's line in the portfolio table. Invested counts
// only cash flows dated on or before the asset's latest valuation, so a
// contribution made after the last mark-to-market doesn't show up as an
// instant loss. An asset with no valuations is carried at cost.
type Position struct {
	AssetID         uuid.UUID       `json:"asset_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Platform        string          `json:"platform"`
	Invested        decimal.Decimal `json:"invested"`
	CurrentValue    decimal.Decimal `json:"current_value"`
	ProfitLoss      decimal.Decimal `json:"profit_loss"`
	ROI             float64         `json:"roi"`
	AllocationPct   float64         `json:"allocation_pct"`
	AllocationWidth int             `json:"allocation_width"`
	LastValuation   *time.Time      `json:"last_valuation,omitempty"`
}

// Overview reports every asset, the family holding included, with each
// allocation taken against the global current value. The no-family
// figures are a secondary rollup over the same rows minus the excluded
// asset, and ChartAssets is that filtered subset for charting.
type Overview struct {
	Positions          []Position      `json:"positions"`
	TotalInvested      decimal.Decimal `json:"total_invested"`
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalProfitLoss    decimal.Decimal `json:"total_profit_loss"`
	TotalROI           float64         `json:"total_roi"`
	NoFamilyInvested   decimal.Decimal `json:"no_family_invested"`
	NoFamilyValue      decimal.Decimal `json:"no_family_value"`
	NoFamilyProfitLoss decimal.Decimal `json:"no_family_profit_loss"`
	NoFamilyROI        float64         `json:"no_family_roi"`
	ChartAssets        []Position      `json:"chart_assets"`
	// LastMarketDate is the oldest of the per-asset latest valuation
	// dates: the whole portfolio is only as fresh as its stalest asset.
	LastMarketDate *time.Time `json:"last_market_date,omitempty"`
}

// MonthlyValuation is one row of the annual portfolio table. Profit is
// the value change net of that month's contributions; Invested is the
// cumulative contribution total through the month's end.
type MonthlyValuation struct {
	Month         int             `json:"month"`
	Date          time.Time       `json:"date"`
	MarketValue   decimal.Decimal `json:"market_value"`
	Invested      decimal.Decimal `json:"invested"`
	Contributions decimal.Decimal `json:"contributions"`
	Profit        decimal.Decimal `json:"profit"`
}

// PerformancePoint compares the portfolio's market value with the
// cumulative amount invested at one month's end.
type PerformancePoint struct {
	Date        time.Time       `json:"date"`
	MarketValue decimal.Decimal `json:"market_value"`
	Invested    decimal.Decimal `json:"invested"`
	ProfitLoss  decimal.Decimal `json:"profit_loss"`
}

// ContributionSeries is one asset's bar series in the contribution
// chart, aligned with the chart's month labels.
type ContributionSeries struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type ContributionsChart struct {
	Labels   []string             `json:"labels"`
	Datasets []ContributionSeries `json:"datasets"`
}

type Service interface {
	GetPortfolioOverview(ctx context.Context, userID string) (*Overview, error)
	GetAnnualEvolution(ctx context.Context, userID string, year int) ([]MonthlyValuation, error)
	GetPerformanceHistory(ctx context.Context, userID string) ([]PerformancePoint, error)
	GetMonthlyContributions(ctx context.Context, userID string) (*ContributionsChart, error)
}

type service struct {
	assetStore        AssetSource
	transactions      TransactionSource
	valuations        HistorySource
	excludedAssetName string
	now               func() time.Time
}

func NewPortfolioService(assetStore AssetSource, transactions TransactionSource, valuations HistorySource, excludedAssetName string, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		assetStore:        assetStore,
		transactions:      transactions,
		valuations:        valuations,
		excludedAssetName: excludedAssetName,
		now:               now,
	}
}

func (s *service) GetPortfolioOverview(ctx context.Context, userID string) (*Overview, error) {
	assetList, err := s.assetStore.GetActiveAssets(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		TotalInvested:      decimal.Zero,
		TotalValue:         decimal.Zero,
		TotalProfitLoss:    decimal.Zero,
		NoFamilyInvested:   decimal.Zero,
		NoFamilyValue:      decimal.Zero,
		NoFamilyProfitLoss: decimal.Zero,
	}
	for _, asset := range assetList {
		position, err := s.buildPosition(ctx, asset)
		if err != nil {
			return nil, err
		}

		overview.TotalInvested = overview.TotalInvested.Add(position.Invested)
		overview.TotalValue = overview.TotalValue.Add(position.CurrentValue)
		overview.TotalProfitLoss = overview.TotalProfitLoss.Add(position.ProfitLoss)
		if position.LastValuation != nil {
			if overview.LastMarketDate == nil || position.LastValuation.Before(*overview.LastMarketDate) {
				overview.LastMarketDate = position.LastValuation
			}
		}
		overview.Positions = append(overview.Positions, position)
	}

	for i := range overview.Positions {
		if overview.TotalValue.IsPositive() {
			pct := overview.Positions[i].CurrentValue.Div(overview.TotalValue).Mul(decimal.NewFromInt(100)).InexactFloat64()
			overview.Positions[i].AllocationPct = math.Round(pct*10) / 10
			overview.Positions[i].AllocationWidth = int(math.Round(pct))
		}
	}

	for _, position := range overview.Positions {
		if position.Name == s.excludedAssetName {
			continue
		}
		overview.NoFamilyInvested = overview.NoFamilyInvested.Add(position.Invested)
		overview.NoFamilyValue = overview.NoFamilyValue.Add(position.CurrentValue)
		overview.ChartAssets = append(overview.ChartAssets, position)
	}
	overview.NoFamilyProfitLoss = overview.NoFamilyValue.Sub(overview.NoFamilyInvested)

	if !overview.TotalInvested.IsZero() {
		overview.TotalROI = overview.TotalProfitLoss.Div(overview.TotalInvested).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	if !overview.NoFamilyInvested.IsZero() {
		overview.NoFamilyROI = overview.NoFamilyProfitLoss.Div(overview.NoFamilyInvested).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return overview, nil
}

func (s *service) buildPosition(ctx context.Context, asset assets.Asset) (Position, error) {
	position := Position{
		AssetID:  asset.ID,
		Name:     asset.Name,
		Category: asset.Category,
		Platform: asset.Platform,
	}

	latest, err := s.valuations.Latest(ctx, asset.ID)
	switch {
	case errors.Is(err, history.ErrEntryNotFound):
		// No mark-to-market yet: carry the position at cost.
		invested, err := s.transactions.SumInvested(ctx, asset.ID, nil)
		if err != nil {
			return Position{}, err
		}
		position.Invested = invested
		position.CurrentValue = invested
	case err != nil:
		return Position{}, err
	default:
		invested, err := s.transactions.SumInvested(ctx, asset.ID, &latest.Date)
		if err != nil {
			return Position{}, err
		}
		position.Invested = invested
		position.CurrentValue = latest.Value
		date := latest.Date
		position.LastValuation = &date
	}

	position.ProfitLoss = position.CurrentValue.Sub(position.Invested)
	if !position.Invested.IsZero() {
		position.ROI = position.ProfitLoss.Div(position.Invested).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return position, nil
}

// GetAnnualEvolution builds the month-by-month portfolio table for one
// calendar year. The starting point is the value at the end of the
// previous December, so January's profit is measured against it.
func (s *service) GetAnnualEvolution(ctx context.Context, userID string, year int) ([]MonthlyValuation, error) {
	assetList, err := s.assetStore.GetActiveAssets(ctx, userID)
	if err != nil {
		return nil, err
	}

	yearEnd := timeseries.MonthEnd(year, time.December)
	histories := make([][]models.AssetHistory, 0, len(assetList))
	for _, asset := range assetList {
		entries, err := s.valuations.Through(ctx, asset.ID, yearEnd)
		if err != nil {
			return nil, err
		}
		histories = append(histories, entries)
	}

	contributions, err := s.transactions.MonthlyNet(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Contributions made before this year count toward the cumulative
	// invested total, not toward any of the year's rows.
	invested := decimal.Zero
	for _, transaction := range transactions {
		if transaction.Date.Year() < year {
			invested = invested.Add(transaction.Amount)
		}
	}

	previous := sumValuesAt(histories, timeseries.MonthEnd(year-1, time.December))
	rows := make([]MonthlyValuation, 0, 12)
	for month := time.January; month <= time.December; month++ {
		cutoff := timeseries.MonthEnd(year, month)
		marketValue := sumValuesAt(histories, cutoff)
		contributed := contributions[month]
		invested = invested.Add(contributed)
		rows = append(rows, MonthlyValuation{
			Month:         int(month),
			Date:          cutoff,
			MarketValue:   marketValue,
			Invested:      invested,
			Contributions: contributed,
			Profit:        marketValue.Sub(previous).Sub(contributed),
		})
		previous = marketValue
	}
	return rows, nil
}

// GetPerformanceHistory charts market value against cumulative invested
// capital, one point per month, from the first valuation to the latest.
// The excluded asset is left out entirely.
func (s *service) GetPerformanceHistory(ctx context.Context, userID string) ([]PerformancePoint, error) {
	assetList, err := s.assetStore.GetActiveAssets(ctx, userID)
	if err != nil {
		return nil, err
	}

	excludedAssets := make(map[uuid.UUID]bool)
	entriesByAsset := make(map[uuid.UUID][]models.AssetHistory)
	var includedAssetIDs []uuid.UUID
	var first, last time.Time
	for _, asset := range assetList {
		if asset.Name == s.excludedAssetName {
			excludedAssets[asset.ID] = true
			continue
		}
		includedAssetIDs = append(includedAssetIDs, asset.ID)
		entries, err := s.valuations.Through(ctx, asset.ID, s.now())
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			continue
		}
		entriesByAsset[asset.ID] = entries
		if first.IsZero() || entries[0].Date.Before(first) {
			first = entries[0].Date
		}
		if entries[len(entries)-1].Date.After(last) {
			last = entries[len(entries)-1].Date
		}
	}
	if first.IsZero() {
		return nil, nil
	}

	transactions, err := s.transactions.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	transactionsByAsset := make(map[uuid.UUID][]models.Transaction)
	for _, transaction := range transactions {
		if excludedAssets[transaction.AssetID] {
			continue
		}
		transactionsByAsset[transaction.AssetID] = append(transactionsByAsset[transaction.AssetID], transaction)
	}

	var points []PerformancePoint
	for cursor := timeseries.TruncateToMonth(first); !cursor.After(last); cursor = cursor.AddDate(0, 1, 0) {
		cutoff := timeseries.MonthEnd(cursor.Year(), cursor.Month())

		marketValue := decimal.Zero
		invested := decimal.Zero
		for _, assetID := range includedAssetIDs {
			cost := decimal.Zero
			for _, transaction := range transactionsByAsset[assetID] {
				if !transaction.Date.After(cutoff) {
					cost = cost.Add(transaction.Amount)
				}
			}
			invested = invested.Add(cost)

			// Assets not yet marked to market by this cutoff are
			// counted at cost, like in the overview.
			if entry, ok := timeseries.LatestOnOrBefore(entriesByAsset[assetID], cutoff, valuationDate); ok {
				marketValue = marketValue.Add(entry.Value)
			} else {
				marketValue = marketValue.Add(cost)
			}
		}

		points = append(points, PerformancePoint{
			Date:        cutoff,
			MarketValue: marketValue,
			Invested:    invested,
			ProfitLoss:  marketValue.Sub(invested),
		})
	}
	return points, nil
}

// GetMonthlyContributions builds one bar series per asset over every
// month that saw a contribution, the excluded asset left out.
func (s *service) GetMonthlyContributions(ctx context.Context, userID string) (*ContributionsChart, error) {
	assetList, err := s.assetStore.GetActiveAssets(ctx, userID)
	if err != nil {
		return nil, err
	}
	assetNames := make(map[uuid.UUID]string)
	for _, asset := range assetList {
		if asset.Name == s.excludedAssetName {
			continue
		}
		assetNames[asset.ID] = asset.Name
	}

	transactions, err := s.transactions.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]map[time.Time]decimal.Decimal)
	monthSet := make(map[time.Time]bool)
	for _, transaction := range transactions {
		name, ok := assetNames[transaction.AssetID]
		if !ok {
			continue
		}
		month := timeseries.TruncateToMonth(transaction.Date)
		monthSet[month] = true
		if totals[name] == nil {
			totals[name] = make(map[time.Time]decimal.Decimal)
		}
		totals[name][month] = totals[name][month].Add(transaction.Amount)
	}

	months := make([]time.Time, 0, len(monthSet))
	for month := range monthSet {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	chart := &ContributionsChart{}
	for _, month := range months {
		chart.Labels = append(chart.Labels, month.Format("Jan 06"))
	}
	for _, name := range names {
		series := ContributionSeries{Label: name}
		for _, month := range months {
			series.Data = append(series.Data, totals[name][month].InexactFloat64())
		}
		chart.Datasets = append(chart.Datasets, series)
	}
	return chart, nil
}

func valuationDate(entry models.AssetHistory) time.Time { return entry.Date }

// sumValuesAt totals each asset's latest valuation on or before the
// cutoff. Assets with no valuation by then contribute nothing.
func sumValuesAt(histories [][]models.AssetHistory, cutoff time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, entries := range histories {
		entry, ok := timeseries.LatestOnOrBefore(entries, cutoff, valuationDate)
		if ok {
			total = total.Add(entry.Value)
		}
	}
	return total
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Transaction is one buy or sell in an asset's ledger. Amount is the
// signed cash flow: positive for buys, negative for sells.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	AssetID       uuid.UUID       `json:"asset_id"`
	Date          time.Time       `json:"date"`
	Action        string          `json:"action"`
	Shares        decimal.Decimal `json:"shares"`
	PricePerShare decimal.Decimal `json:"price_per_share"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NormalizedAmount derives the signed cash flow from shares, price and
// action, regardless of any sign the caller supplied.
func NormalizedAmount(shares, pricePerShare decimal.Decimal, action string) decimal.Decimal {
	amount := shares.Abs().Mul(pricePerShare.Abs())
	if action == ActionSell {
		return amount.Neg()
	}
	return amount
}

// AssetHistory is a dated mark-to-market of an asset's whole position.
// At most one entry exists per asset and date.
type AssetHistory struct {
	ID        uuid.UUID       `json:"id"`
	AssetID   uuid.UUID       `json:"asset_id"`
	Date      time.Time       `json:"date"`
	Value     decimal.Decimal `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

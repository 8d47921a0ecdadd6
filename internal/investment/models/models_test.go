package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizedAmount(t *testing.T) {
	shares := decimal.NewFromInt(10)
	price := decimal.NewFromFloat(12.5)

	buy := NormalizedAmount(shares, price, ActionBuy)
	assert.True(t, buy.Equal(decimal.NewFromInt(125)))

	sell := NormalizedAmount(shares, price, ActionSell)
	assert.True(t, sell.Equal(decimal.NewFromInt(-125)))
}

func TestNormalizedAmountIgnoresInputSigns(t *testing.T) {
	amount := NormalizedAmount(decimal.NewFromInt(-10), decimal.NewFromFloat(-12.5), ActionBuy)
	assert.True(t, amount.Equal(decimal.NewFromInt(125)))
}

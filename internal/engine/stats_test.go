package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tradesFromReturns(amounts ...float64) []Trade {
	trades := make([]Trade, len(amounts))
	for i, amount := range amounts {
		trades[i] = Trade{
			EntryPrice:       100,
			ExitPrice:        100 + amount,
			ReturnAmount:     amount,
			ReturnPercentage: amount, // entry price of 100 makes amount == percentage
		}
	}
	return trades
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    float64
	}{
		{name: "no trades", amounts: nil, want: 0},
		{name: "single win", amounts: []float64{5}, want: 0},
		{name: "monotonic gains", amounts: []float64{1, 2, 3}, want: 0},
		{name: "single loss", amounts: []float64{-4}, want: 4},
		{name: "peak then trough", amounts: []float64{10, 5, -20, 10}, want: 20},
		{name: "recovery does not erase drawdown", amounts: []float64{10, -15, 30}, want: 15},
		{name: "drawdown before any gain", amounts: []float64{-3, -2, 10}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxDrawdown(tradesFromReturns(tt.amounts...))
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestSharpeRatio(t *testing.T) {
	t.Run("no trades", func(t *testing.T) {
		assert.Equal(t, 0.0, SharpeRatio(nil))
	})

	t.Run("identical returns", func(t *testing.T) {
		// Zero deviation must not divide; ratio is defined as 0.
		assert.Equal(t, 0.0, SharpeRatio(tradesFromReturns(5, 5, 5)))
	})

	t.Run("mean over population stddev", func(t *testing.T) {
		// Returns 2 and 4: mean 3, population stddev 1.
		got := SharpeRatio(tradesFromReturns(2, 4))
		assert.InDelta(t, 3.0, got, 1e-9)
	})

	t.Run("negative mean", func(t *testing.T) {
		got := SharpeRatio(tradesFromReturns(-2, -4))
		assert.InDelta(t, -3.0, got, 1e-9)
	})
}

package engine

import "math"

// MaxDrawdown walks the trade sequence keeping a cumulative sum of
// ReturnAmount and its running peak; the result is the largest peak-to-current
// decline observed. This is equity-curve drawdown with one unit of capital
// re-risked per trade in order, not peak-to-trough price drawdown. Always >= 0.
func MaxDrawdown(trades []Trade) float64 {
	var cumulative, peak, maxDrawdown float64
	for _, trade := range trades {
		cumulative += trade.ReturnAmount
		if cumulative > peak {
			peak = cumulative
		}
		if drawdown := peak - cumulative; drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}

// SharpeRatio is mean / population standard deviation of the trades'
// ReturnPercentage values. It is per-trade, not annualized, and subtracts no
// risk-free rate. Zero trades or zero deviation yield 0.
func SharpeRatio(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	var sum float64
	for _, trade := range trades {
		sum += trade.ReturnPercentage
	}
	mean := sum / float64(len(trades))

	var variance float64
	for _, trade := range trades {
		diff := trade.ReturnPercentage - mean
		variance += diff * diff
	}
	variance /= float64(len(trades))

	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev
}

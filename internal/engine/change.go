package engine

import "math"

// trailingChanges computes the percentage change of each close versus the
// close lookback bars earlier. Indices without a full window, and indices
// whose base close is zero or negative, carry NaN so that no threshold band
// can ever match them.
func trailingChanges(bars []PriceBar, lookback int) []float64 {
	changes := make([]float64, len(bars))
	for i := range bars {
		if i < lookback {
			changes[i] = math.NaN()
			continue
		}
		base := bars[i-lookback].Close
		if base <= 0 {
			changes[i] = math.NaN()
			continue
		}
		changes[i] = (bars[i].Close - base) / base * 100
	}
	return changes
}

// TrailingChanges returns the trailing percentage change series for the given
// lookback. Warm-up indices (i < lookback) report 0, matching the shape
// callers expect for charting; they are still excluded from match detection,
// which works on the NaN-marked internal series. A zero or negative base
// close reports NaN rather than raising a divide fault.
func TrailingChanges(bars []PriceBar, lookback int) []float64 {
	changes := trailingChanges(bars, lookback)
	for i := 0; i < lookback && i < len(changes); i++ {
		changes[i] = 0
	}
	return changes
}

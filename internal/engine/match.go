package engine

// FindMatches returns the indices of all bars whose trailing change satisfies
// the strategy's direction and threshold band. Output is strictly ascending;
// each index is evaluated exactly once so duplicates are impossible. Bars
// inside the warm-up window never match.
//
// NaN trailing changes (warm-up bars, zero-close bases) fail every comparison
// below, which is exactly the non-matching behavior we want.
func FindMatches(bars []PriceBar, params StrategyParams) []int {
	changes := trailingChanges(bars, params.LookbackPeriod)

	var matches []int
	for i, change := range changes {
		if matchesBand(change, params) {
			matches = append(matches, i)
		}
	}
	return matches
}

func matchesBand(change float64, params StrategyParams) bool {
	if params.Direction == DirectionDown {
		return change >= -params.ThresholdMax && change <= -params.ThresholdMin
	}
	return change >= params.ThresholdMin && change <= params.ThresholdMax
}

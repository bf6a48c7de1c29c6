package engine

// AnalyzeStrategy reports every match together with its trailing change and
// the forward return over analysisHorizon bars measured from the match bar
// itself. Unlike RunBacktest there is no one-bar entry offset; the two views
// intentionally measure slightly different things and must stay separate.
// Matches without enough forward bars are omitted.
func AnalyzeStrategy(bars []PriceBar, params StrategyParams, analysisHorizon int) StrategyAnalysis {
	if !params.StartDate.IsZero() {
		bars = filterFromDate(bars, params)
	}

	changes := trailingChanges(bars, params.LookbackPeriod)

	analysis := StrategyAnalysis{Matches: []StrategyMatch{}}
	for _, m := range FindMatches(bars, params) {
		forward := m + analysisHorizon
		if forward >= len(bars) {
			continue
		}

		matchBar := bars[m]
		var forwardReturn float64
		if matchBar.Close > 0 {
			forwardReturn = (bars[forward].Close - matchBar.Close) / matchBar.Close * 100
		}

		analysis.Matches = append(analysis.Matches, StrategyMatch{
			Index:            m,
			Date:             matchBar.Date,
			Close:            matchBar.Close,
			ChangePercentage: changes[m],
			ForwardReturn:    forwardReturn,
		})
	}
	return analysis
}

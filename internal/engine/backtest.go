package engine

// RunBacktest simulates the strategy over the series: for every match, enter
// on the following bar and exit analysisHorizon bars after entry. Matches
// whose exit would fall past the end of the series are discarded silently.
// An empty series, or one too short to produce any trade, yields a zero-value
// result rather than an error.
func RunBacktest(bars []PriceBar, params StrategyParams, analysisHorizon int) BacktestResult {
	if !params.StartDate.IsZero() {
		bars = filterFromDate(bars, params)
	}

	var trades []Trade
	for _, m := range FindMatches(bars, params) {
		entry := m + 1
		exit := entry + analysisHorizon
		if exit >= len(bars) {
			continue
		}

		entryBar, exitBar := bars[entry], bars[exit]
		amount := exitBar.Close - entryBar.Close
		trade := Trade{
			EntryDate:    entryBar.Date,
			EntryPrice:   entryBar.Close,
			ExitDate:     exitBar.Date,
			ExitPrice:    exitBar.Close,
			ReturnAmount: amount,
		}
		// A non-positive entry close would make the percentage meaningless;
		// keep it at zero instead of dividing.
		if entryBar.Close > 0 {
			trade.ReturnPercentage = amount / entryBar.Close * 100
		}
		trades = append(trades, trade)
	}

	return summarize(bars, trades)
}

// filterFromDate drops bars before the strategy's start date. The remaining
// bars re-index from zero, so the lookback window is computed entirely within
// the filtered range.
func filterFromDate(bars []PriceBar, params StrategyParams) []PriceBar {
	start := 0
	for start < len(bars) && bars[start].Date.Before(params.StartDate) {
		start++
	}
	return bars[start:]
}

func summarize(bars []PriceBar, trades []Trade) BacktestResult {
	result := BacktestResult{Trades: trades}
	if len(trades) == 0 {
		result.Trades = []Trade{}
		return result
	}

	for _, trade := range trades {
		result.TotalTrades++
		result.TotalReturn += trade.ReturnAmount
		if trade.ReturnAmount > 0 {
			result.ProfitableTrades++
		}
	}

	result.WinRate = float64(result.ProfitableTrades) / float64(result.TotalTrades) * 100

	// Normalized, non-compounding aggregate: total dollar return over
	// (trade count x first close of the working series).
	if firstClose := bars[0].Close; firstClose > 0 {
		result.TotalReturnPercentage = result.TotalReturn / (float64(result.TotalTrades) * firstClose) * 100
	}

	result.MaxDrawdown = MaxDrawdown(trades)
	result.SharpeRatio = SharpeRatio(trades)

	return result
}

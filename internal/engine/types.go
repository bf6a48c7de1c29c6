package engine

import "time"

// Direction is the sign of the trailing move a strategy looks for.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// PriceBar is one daily OHLCV record. Series handed to the engine must be
// sorted ascending by date with at most one bar per trading day; indices are
// trading-day offsets, not calendar-day offsets.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// StrategyParams describes a percentage-change rule: flag every bar whose
// trailing change over LookbackPeriod bars has the given direction and a
// magnitude within [ThresholdMin, ThresholdMax] inclusive. Threshold ordering
// is a caller precondition; the engine does not re-validate it.
type StrategyParams struct {
	ThresholdMin   float64
	ThresholdMax   float64
	LookbackPeriod int
	Direction      Direction

	// StartDate, when non-zero, restricts the series to bars on or after it
	// before any lookback is computed. The lookback window therefore never
	// reaches bars earlier than the filtered start.
	StartDate time.Time
}

// Trade is one simulated round trip: entry on the bar after a match, exit
// AnalysisHorizon bars later.
type Trade struct {
	EntryDate        time.Time `json:"entry_date"`
	EntryPrice       float64   `json:"entry_price"`
	ExitDate         time.Time `json:"exit_date"`
	ExitPrice        float64   `json:"exit_price"`
	ReturnAmount     float64   `json:"return_amount"`
	ReturnPercentage float64   `json:"return_percentage"`
}

// BacktestResult aggregates all trades produced by a run.
//
// TotalReturnPercentage is deliberately simple and non-compounding: total
// dollar return divided by (trade count x the series' first close), times 100.
// SharpeRatio is the per-trade mean/stddev of ReturnPercentage, not annualized
// and with no risk-free rate. Downstream consumers depend on these exact
// formulas.
type BacktestResult struct {
	TotalReturn           float64 `json:"total_return"`
	TotalReturnPercentage float64 `json:"total_return_percentage"`
	WinRate               float64 `json:"win_rate"`
	TotalTrades           int     `json:"total_trades"`
	ProfitableTrades      int     `json:"profitable_trades"`
	Trades                []Trade `json:"trades"`
	MaxDrawdown           float64 `json:"max_drawdown"`
	SharpeRatio           float64 `json:"sharpe_ratio"`
}

// StrategyMatch is one flagged bar with its trailing change and the forward
// return measured from the match bar itself (no entry offset).
type StrategyMatch struct {
	Index            int       `json:"index"`
	Date             time.Time `json:"date"`
	Close            float64   `json:"close"`
	ChangePercentage float64   `json:"change_percentage"`
	ForwardReturn    float64   `json:"forward_return"`
}

// StrategyAnalysis is the read-only companion view to RunBacktest.
type StrategyAnalysis struct {
	Matches []StrategyMatch `json:"matches"`
}

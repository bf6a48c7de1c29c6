package dto

import (
	"time"

	"strategy-backtest/internal/engine"
)

// BacktestRequest carries the strategy parameters for a backtest run.
// Threshold ordering and bounds are validated here, before the engine sees
// them.
type BacktestRequest struct {
	Symbol          string  `json:"symbol" validate:"required"`
	ThresholdMin    float64 `json:"threshold_min" validate:"required,gt=0,lte=50"`
	ThresholdMax    float64 `json:"threshold_max" validate:"required,gtefield=ThresholdMin,lte=50"`
	LookbackPeriod  int     `json:"lookback_period" validate:"required,gt=0"`
	Direction       string  `json:"direction" validate:"required,oneof=up down"`
	AnalysisHorizon int     `json:"analysis_horizon" validate:"required,gt=0"`
	StartDate       string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// EngineParams converts the validated request into engine parameters.
func (r BacktestRequest) EngineParams() (engine.StrategyParams, error) {
	params := engine.StrategyParams{
		ThresholdMin:   r.ThresholdMin,
		ThresholdMax:   r.ThresholdMax,
		LookbackPeriod: r.LookbackPeriod,
		Direction:      engine.Direction(r.Direction),
	}
	if r.StartDate != "" {
		start, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return engine.StrategyParams{}, err
		}
		params.StartDate = start
	}
	return params, nil
}

type BacktestResponse struct {
	Symbol string                `json:"symbol"`
	Bars   int                   `json:"bars"`
	Result engine.BacktestResult `json:"result"`
}

type AnalyzeResponse struct {
	Symbol   string                  `json:"symbol"`
	Bars     int                     `json:"bars"`
	Analysis engine.StrategyAnalysis `json:"analysis"`
}

type BacktestRunSummary struct {
	ID          uint      `json:"id"`
	Symbol      string    `json:"symbol"`
	TotalTrades int       `json:"total_trades"`
	WinRate     float64   `json:"win_rate"`
	CreatedAt   time.Time `json:"created_at"`
}

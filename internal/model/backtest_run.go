package model

import (
	"time"

	"gorm.io/datatypes"
)

// BacktestRun is the persisted record of one backtest invocation: the request
// parameters and the summary metrics, stored as JSON documents, plus a few
// denormalized columns for listing.
type BacktestRun struct {
	ID          uint           `gorm:"primarykey"`
	Symbol      string         `gorm:"not null;index"`
	Parameters  datatypes.JSON `gorm:"type:jsonb"`
	Summary     datatypes.JSON `gorm:"type:jsonb"`
	TotalTrades int            `gorm:"not null"`
	WinRate     float64        `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}

package model

import "time"

// PriceData is one daily OHLCV bar for an asset. Unique per (asset_id, date).
type PriceData struct {
	ID        uint      `gorm:"primarykey"`
	AssetID   uint      `gorm:"not null;uniqueIndex:idx_price_data_asset_date"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_price_data_asset_date"`
	Open      float64   `gorm:"not null"`
	High      float64   `gorm:"not null"`
	Low       float64   `gorm:"not null"`
	Close     float64   `gorm:"not null"`
	Volume    int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Asset *Asset `gorm:"foreignKey:AssetID"`
}

func (PriceData) TableName() string {
	return "price_data"
}

type GetPriceSeriesParam struct {
	AssetID   uint
	StartDate time.Time
	EndDate   time.Time
}
